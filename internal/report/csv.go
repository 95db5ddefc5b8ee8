package report

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"sales-forecast/internal/model"
	"sales-forecast/internal/scenario"
)

// Header is the first row of every what-if report.
var Header = []string{"metric", "baseline", "scenario", "delta"}

// WriteWhatIfCSV writes one row per quantity the scenario can change, then the predicted
// sales and the impact percentage.
func WriteWhatIfCSV(out io.Writer, base model.StoreWeek, res *scenario.Result) error {
	w := csv.NewWriter(out)

	if err := w.Write(Header); err != nil {
		return err
	}

	adj := res.Adjusted
	rows := [][]string{
		metricRow(model.FeatureFuelPrice, base.FuelPrice, adj.FuelPrice),
		metricRow(model.FeatureSalesMA3, base.SalesMA3, adj.SalesMA3),
		metricRow(model.FeatureSalesMA7, base.SalesMA7, adj.SalesMA7),
		metricRow(model.FeatureIsHoliday, float64(base.IsHoliday), float64(adj.IsHoliday)),
		metricRow("Predicted_Sales", res.Baseline, res.Scenario),
		{"Impact_Pct", "", "", fmtFloat(res.ImpactPct)},
	}
	for _, r := range rows {
		if err := w.Write(r); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// WriteWhatIfFile writes the report to path, creating parent directories as needed.
func WriteWhatIfFile(path string, base model.StoreWeek, res *scenario.Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteWhatIfCSV(f, base, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func metricRow(name string, baseline, alt float64) []string {
	return []string{name, fmtFloat(baseline), fmtFloat(alt), fmtFloat(alt - baseline)}
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
