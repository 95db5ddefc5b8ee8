package api

import (
	"sales-forecast/internal/api/handlers"
	"sales-forecast/internal/api/middleware"
	"sales-forecast/internal/config"
	"sales-forecast/internal/metrics"
	"sales-forecast/internal/pipeline"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Options wires the HTTP layer to the loaded pipeline and the ambient services.
type Options struct {
	Predictor pipeline.Predictor
	Info      pipeline.Info
	// Metrics and Gatherer may be nil, which disables instrumentation and /metrics.
	Metrics  *metrics.Collector
	Gatherer prometheus.Gatherer
	Logger   *zap.Logger
	Config   *config.Config
}

// NewRouter builds the gin engine with middleware and routes.
func NewRouter(opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = &config.Config{}
	}

	router := gin.New()

	// Recovery runs inside logging and metrics so panics are recorded as 500s.
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	if opts.Metrics != nil {
		router.Use(middleware.Metrics(opts.Metrics))
	}
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	router.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	modelHandler := handlers.NewModelHandler(opts.Info)
	predictionHandler := handlers.NewPredictionHandler(opts.Predictor, opts.Metrics, logger)

	router.GET("/health", modelHandler.Health)
	router.GET("/model", modelHandler.Describe)
	router.POST("/predict", predictionHandler.Predict)
	router.POST("/whatif", predictionHandler.WhatIf)

	if cfg.Metrics.Enabled && opts.Gatherer != nil {
		router.GET(cfg.Metrics.Path, gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	router.NoRoute(handlers.NotFound)
	return router
}
