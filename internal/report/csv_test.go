package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"sales-forecast/internal/model"
	"sales-forecast/internal/scenario"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() (model.StoreWeek, *scenario.Result) {
	base := model.StoreWeek{FuelPrice: 3, SalesMA3: 100, SalesMA7: 50}
	adjusted := base
	adjusted.FuelPrice = 3.5
	adjusted.IsHoliday = 1
	return base, &scenario.Result{
		Baseline:  200,
		Scenario:  150,
		Delta:     -50,
		ImpactPct: -25,
		Adjusted:  adjusted,
	}
}

func TestWriteWhatIfCSV(t *testing.T) {
	base, res := sampleResult()
	var buf bytes.Buffer
	require.NoError(t, WriteWhatIfCSV(&buf, base, res))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 7)
	assert.Equal(t, Header, records[0])
	assert.Equal(t, []string{"Fuel_Price", "3.000000", "3.500000", "0.500000"}, records[1])
	assert.Equal(t, []string{"Sales_MA3", "100.000000", "100.000000", "0.000000"}, records[2])
	assert.Equal(t, []string{"IsHoliday_x", "0.000000", "1.000000", "1.000000"}, records[4])
	assert.Equal(t, []string{"Predicted_Sales", "200.000000", "150.000000", "-50.000000"}, records[5])
	assert.Equal(t, []string{"Impact_Pct", "", "", "-25.000000"}, records[6])
}

func TestWriteWhatIfFileCreatesDirs(t *testing.T) {
	base, res := sampleResult()
	path := filepath.Join(t.TempDir(), "results", "whatif.csv")
	require.NoError(t, WriteWhatIfFile(path, base, res))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "metric,baseline,scenario,delta\n")
}
