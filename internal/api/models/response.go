package models

import (
	"sales-forecast/internal/pipeline"
	"sales-forecast/internal/scenario"
)

// PredictResponse is returned by POST /predict.
type PredictResponse struct {
	PredictedSales float64 `json:"Predicted_Sales"`
}

// WhatIfResponse is returned by POST /whatif.
type WhatIfResponse struct {
	BasePredictedSales     float64 `json:"Base_Predicted_Sales"`
	ScenarioPredictedSales float64 `json:"Scenario_Predicted_Sales"`
	Delta                  float64 `json:"Delta"`
	Impact                 string  `json:"Impact"` // signed percent, e.g. "+3.25%"
	FuelPriceAdjusted      float64 `json:"Fuel_Price_Adjusted"`
	SalesMA3Adjusted       float64 `json:"Sales_MA3_Adjusted"`
	SalesMA7Adjusted       float64 `json:"Sales_MA7_Adjusted"`
	IsHolidayAdjusted      int     `json:"IsHoliday_Adjusted"`
}

// NewWhatIfResponse flattens a scenario result into the wire shape.
func NewWhatIfResponse(r *scenario.Result) WhatIfResponse {
	return WhatIfResponse{
		BasePredictedSales:     r.Baseline,
		ScenarioPredictedSales: r.Scenario,
		Delta:                  r.Delta,
		Impact:                 r.Impact(),
		FuelPriceAdjusted:      r.Adjusted.FuelPrice,
		SalesMA3Adjusted:       r.Adjusted.SalesMA3,
		SalesMA7Adjusted:       r.Adjusted.SalesMA7,
		IsHolidayAdjusted:      r.Adjusted.IsHoliday,
	}
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Model  string `json:"model"`
}

// ModelInfoResponse is returned by GET /model.
type ModelInfoResponse struct {
	pipeline.Info
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// FieldError describes one rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes.
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodePayloadTooLarge  = "PAYLOAD_TOO_LARGE"
	CodeOutOfRange       = "PREDICTION_OUT_OF_RANGE"
	CodePredictionFailed = "PREDICTION_FAILED"
	CodeInternal         = "INTERNAL_ERROR"
	CodeNotFound         = "NOT_FOUND"
)

// NewError builds an error envelope without field details.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}
