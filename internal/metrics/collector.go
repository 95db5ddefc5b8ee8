package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prediction outcomes.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// Collector records service metrics. A nil *Collector is valid and records nothing.
type Collector struct {
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
	predictions        *prometheus.CounterVec
	predictionDuration *prometheus.HistogramVec
	whatIfImpact       prometheus.Histogram
}

// NewCollector registers the service metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sales_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"route", "method", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sales_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"route", "method"},
		),
		predictions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sales_predictions_total",
				Help: "Total number of prediction requests by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),
		predictionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sales_prediction_duration_seconds",
				Help:    "Time spent inside the model per request",
				Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
			},
			[]string{"endpoint"},
		),
		whatIfImpact: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sales_whatif_impact_percent",
				Help:    "Scenario impact relative to baseline, in percent",
				Buckets: []float64{-50, -20, -10, -5, -1, 0, 1, 5, 10, 20, 50},
			},
		),
	}
}

// ObserveHTTP records one finished HTTP request.
func (c *Collector) ObserveHTTP(route, method string, status int, d time.Duration) {
	if c == nil {
		return
	}
	c.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	c.httpDuration.WithLabelValues(route, method).Observe(d.Seconds())
}

// ObservePrediction records one prediction request outcome. d is only observed for
// requests that reached the model.
func (c *Collector) ObservePrediction(endpoint, outcome string, d time.Duration) {
	if c == nil {
		return
	}
	c.predictions.WithLabelValues(endpoint, outcome).Inc()
	if outcome != OutcomeInvalid {
		c.predictionDuration.WithLabelValues(endpoint).Observe(d.Seconds())
	}
}

// ObserveImpact records the impact percentage of a what-if scenario.
func (c *Collector) ObserveImpact(pct float64) {
	if c == nil {
		return
	}
	c.whatIfImpact.Observe(pct)
}
