package models

import (
	"sales-forecast/internal/model"
	"sales-forecast/internal/scenario"
)

// StoreWeekRequest is the body of POST /predict.
// Pointer fields let "required" distinguish a missing value from an explicit zero.
type StoreWeekRequest struct {
	SalesLag1   *Number  `json:"Sales_Lag1" binding:"required"`
	SalesLag2   *Number  `json:"Sales_Lag2" binding:"required"`
	SalesMA3    *Number  `json:"Sales_MA3" binding:"required"`
	SalesMA7    *Number  `json:"Sales_MA7" binding:"required"`
	FuelPrice   *Number  `json:"Fuel_Price" binding:"required"`
	Temperature *Number  `json:"Temperature" binding:"required"`
	CPI         *Number  `json:"CPI" binding:"required"`
	Week        *Integer `json:"Week" binding:"required"`
	Month       *Integer `json:"Month" binding:"required"`
	Day         *Integer `json:"Day" binding:"required"`
	IsHoliday   *Integer `json:"IsHoliday_x" binding:"required"`
}

// WhatIfRequest is the body of POST /whatif.
type WhatIfRequest struct {
	StoreWeekRequest
	FuelIncreasePct     Number `json:"fuel_increase_pct"`
	MarkdownIncreasePct Number `json:"markdown_increase_pct"`
	// ToggleHoliday overrides IsHoliday_x in the scenario when present.
	ToggleHoliday *Integer `json:"toggle_holiday"`
}

// ToModel converts a bound request into a feature row. Call only after validation.
func (r StoreWeekRequest) ToModel() model.StoreWeek {
	return model.StoreWeek{
		SalesLag1:   float64(deref(r.SalesLag1)),
		SalesLag2:   float64(deref(r.SalesLag2)),
		SalesMA3:    float64(deref(r.SalesMA3)),
		SalesMA7:    float64(deref(r.SalesMA7)),
		FuelPrice:   float64(deref(r.FuelPrice)),
		Temperature: float64(deref(r.Temperature)),
		CPI:         float64(deref(r.CPI)),
		Week:        int(deref(r.Week)),
		Month:       int(deref(r.Month)),
		Day:         int(deref(r.Day)),
		IsHoliday:   int(deref(r.IsHoliday)),
	}
}

// Adjustments returns the scenario settings carried by the request.
func (r WhatIfRequest) Adjustments() scenario.Adjustments {
	adj := scenario.Adjustments{
		FuelIncreasePct:     float64(r.FuelIncreasePct),
		MarkdownIncreasePct: float64(r.MarkdownIncreasePct),
	}
	if r.ToggleHoliday != nil {
		v := int(*r.ToggleHoliday)
		adj.ToggleHoliday = &v
	}
	return adj
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
