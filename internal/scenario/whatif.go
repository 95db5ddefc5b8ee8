package scenario

import (
	"fmt"
	"math"

	"sales-forecast/internal/model"
	"sales-forecast/internal/pipeline"
)

// MarkdownLongHorizonDamping scales the markdown effect applied to the 7-week moving
// average relative to the 3-week one.
const MarkdownLongHorizonDamping = 0.8

// Adjustments describes a hypothetical change to a store week.
// Percentages are not range-checked; negative values model decreases.
type Adjustments struct {
	FuelIncreasePct     float64
	MarkdownIncreasePct float64
	// ToggleHoliday overrides the holiday flag when non-nil.
	ToggleHoliday *int
}

// Result compares the baseline and scenario predictions.
type Result struct {
	Baseline  float64
	Scenario  float64
	Delta     float64
	ImpactPct float64
	// Adjusted is the row the scenario prediction was made on.
	Adjusted model.StoreWeek
}

// Impact renders ImpactPct as a signed percentage with two decimals, e.g. "+3.25%".
func (r Result) Impact() string {
	return FormatImpact(r.ImpactPct)
}

// Apply derives the scenario row from base.
func Apply(base model.StoreWeek, adj Adjustments) model.StoreWeek {
	out := base
	if adj.FuelIncreasePct != 0 {
		out.FuelPrice *= 1 + adj.FuelIncreasePct/100.0
	}
	if adj.MarkdownIncreasePct != 0 {
		out.SalesMA3 *= 1 + adj.MarkdownIncreasePct/100.0
		out.SalesMA7 *= 1 + (adj.MarkdownIncreasePct*MarkdownLongHorizonDamping)/100.0
	}
	if adj.ToggleHoliday != nil {
		out.IsHoliday = *adj.ToggleHoliday
	}
	return out
}

// Evaluate predicts base and its adjusted counterpart with p and compares them.
func Evaluate(p pipeline.Predictor, base model.StoreWeek, adj Adjustments) (*Result, error) {
	baseline, err := p.Predict(base)
	if err != nil {
		return nil, fmt.Errorf("baseline prediction: %w", err)
	}

	adjusted := Apply(base, adj)
	scenario, err := p.Predict(adjusted)
	if err != nil {
		return nil, fmt.Errorf("scenario prediction: %w", err)
	}

	delta := scenario - baseline
	impact := ImpactPct(baseline, delta)
	if !isFinite(delta) || !isFinite(impact) {
		return nil, fmt.Errorf("comparison overflows: %w", pipeline.ErrNonFinitePrediction)
	}
	return &Result{
		Baseline:  baseline,
		Scenario:  scenario,
		Delta:     delta,
		ImpactPct: impact,
		Adjusted:  adjusted,
	}, nil
}

// ImpactPct is delta as a percentage of baseline, or 0 when baseline is 0.
func ImpactPct(baseline, delta float64) float64 {
	if baseline == 0 {
		return 0
	}
	return (delta / baseline) * 100
}

// FormatImpact formats a percentage the way the API reports it.
func FormatImpact(pct float64) string {
	return fmt.Sprintf("%+.2f%%", pct)
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
