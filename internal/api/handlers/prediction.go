package handlers

import (
	"errors"
	"net/http"
	"time"

	"sales-forecast/internal/api/middleware"
	"sales-forecast/internal/api/models"
	"sales-forecast/internal/metrics"
	"sales-forecast/internal/pipeline"
	"sales-forecast/internal/scenario"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	endpointPredict = "predict"
	endpointWhatIf  = "whatif"
)

// PredictionHandler serves point predictions and what-if comparisons from one loaded pipeline.
type PredictionHandler struct {
	predictor pipeline.Predictor
	metrics   *metrics.Collector
	logger    *zap.Logger
}

// NewPredictionHandler creates a prediction handler. collector may be nil.
func NewPredictionHandler(predictor pipeline.Predictor, collector *metrics.Collector, logger *zap.Logger) *PredictionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PredictionHandler{predictor: predictor, metrics: collector, logger: logger}
}

// Predict handles POST /predict
func (h *PredictionHandler) Predict(c *gin.Context) {
	var req models.StoreWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.rejectRequest(c, endpointPredict, err)
		return
	}

	start := time.Now()
	y, err := h.predictor.Predict(req.ToModel())
	if err != nil {
		h.predictionFailed(c, endpointPredict, time.Since(start), err)
		return
	}
	h.metrics.ObservePrediction(endpointPredict, metrics.OutcomeOK, time.Since(start))

	c.JSON(http.StatusOK, models.PredictResponse{PredictedSales: y})
}

// WhatIf handles POST /whatif
func (h *PredictionHandler) WhatIf(c *gin.Context) {
	var req models.WhatIfRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.rejectRequest(c, endpointWhatIf, err)
		return
	}

	start := time.Now()
	res, err := scenario.Evaluate(h.predictor, req.ToModel(), req.Adjustments())
	if err != nil {
		h.predictionFailed(c, endpointWhatIf, time.Since(start), err)
		return
	}
	h.metrics.ObservePrediction(endpointWhatIf, metrics.OutcomeOK, time.Since(start))
	h.metrics.ObserveImpact(res.ImpactPct)

	h.logger.Debug("what-if evaluated",
		zap.String("request_id", middleware.RequestIDFrom(c)),
		zap.Float64("baseline", res.Baseline),
		zap.Float64("scenario", res.Scenario),
		zap.Float64("impact_pct", res.ImpactPct))

	c.JSON(http.StatusOK, models.NewWhatIfResponse(res))
}

func (h *PredictionHandler) rejectRequest(c *gin.Context, endpoint string, err error) {
	h.metrics.ObservePrediction(endpoint, metrics.OutcomeInvalid, 0)
	status, resp := models.BindError(err)
	_ = c.Error(err).SetType(gin.ErrorTypeBind)
	c.JSON(status, resp)
}

func (h *PredictionHandler) predictionFailed(c *gin.Context, endpoint string, d time.Duration, err error) {
	h.metrics.ObservePrediction(endpoint, metrics.OutcomeError, d)
	_ = c.Error(err)

	if errors.Is(err, pipeline.ErrNonFinitePrediction) {
		c.JSON(http.StatusUnprocessableEntity,
			models.NewError(models.CodeOutOfRange, "model produced a non-finite prediction for this input"))
		return
	}

	h.logger.Error("prediction failed",
		zap.String("endpoint", endpoint),
		zap.String("request_id", middleware.RequestIDFrom(c)),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError,
		models.NewError(models.CodePredictionFailed, "prediction failed"))
}
