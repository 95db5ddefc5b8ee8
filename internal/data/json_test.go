package data

import (
	"os"
	"path/filepath"
	"testing"

	"sales-forecast/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadStoreWeek(t *testing.T) {
	row, err := LoadStoreWeek(filepath.Join("testdata", "row.json"))
	require.NoError(t, err)
	assert.Equal(t, 24924.5, row.SalesLag1)
	assert.Equal(t, 2.572, row.FuelPrice)
	assert.Equal(t, 5, row.Week)
	assert.Equal(t, 0, row.IsHoliday)
}

func TestLoadWhatIf(t *testing.T) {
	row, adj, err := LoadWhatIf(filepath.Join("testdata", "whatif.json"))
	require.NoError(t, err)
	assert.Equal(t, 41595.55, row.SalesMA3)
	assert.Equal(t, 10.0, adj.FuelIncreasePct)
	assert.Equal(t, 5.0, adj.MarkdownIncreasePct)
	require.NotNil(t, adj.ToggleHoliday)
	assert.Equal(t, 1, *adj.ToggleHoliday)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadStoreWeek(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestDecodeRequestRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"missing fields", `{"Sales_Lag1": 1}`, "Sales_Lag2 is required"},
		{"wrong type", `{"Week": "five"}`, "Week must be an integer"},
		{"malformed", `{`, "request body must be a JSON object"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := DecodeRequest([]byte(tt.raw), &models.StoreWeekRequest{})
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadReportsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"CPI": 1}`), 0o644))

	_, err := LoadStoreWeek(path)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), path)
}
