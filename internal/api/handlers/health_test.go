package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"sales-forecast/internal/api/models"
	"sales-forecast/internal/pipeline"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	info := pipeline.Info{
		Name:     "sales_model_pipeline2",
		Version:  "2",
		Features: []string{"Sales_Lag1"},
		Steps:    []string{pipeline.StepStandardScaler, pipeline.StepLinearRegression},
	}
	h := NewModelHandler(info)

	r := gin.New()
	r.GET("/health", h.Health)
	r.GET("/model", h.Describe)
	r.NoRoute(NotFound)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.HealthResponse{Status: "ok", Model: "sales_model_pipeline2"},
		decode[models.HealthResponse](t, w))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/model", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, info, decode[pipeline.Info](t, w))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, models.CodeNotFound, decode[models.ErrorResponse](t, w).Error.Code)
}
