package handlers

import (
	"net/http"

	"sales-forecast/internal/api/models"
	"sales-forecast/internal/pipeline"

	"github.com/gin-gonic/gin"
)

// ModelHandler reports on the loaded pipeline.
type ModelHandler struct {
	info pipeline.Info
}

// NewModelHandler creates a new model handler
func NewModelHandler(info pipeline.Info) *ModelHandler {
	return &ModelHandler{info: info}
}

// Health handles GET /health
func (h *ModelHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{Status: "ok", Model: h.info.Name})
}

// Describe handles GET /model
func (h *ModelHandler) Describe(c *gin.Context) {
	c.JSON(http.StatusOK, models.ModelInfoResponse{Info: h.info})
}

// NotFound answers unknown routes with the standard error envelope.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, models.NewError(models.CodeNotFound, "route not found"))
}
