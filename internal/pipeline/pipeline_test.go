package pipeline

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"sales-forecast/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRow() model.StoreWeek {
	return model.StoreWeek{
		SalesLag1:   100,
		SalesLag2:   90,
		SalesMA3:    95,
		SalesMA7:    92,
		FuelPrice:   3.5,
		Temperature: 55,
		CPI:         211.1,
		Week:        6,
		Month:       2,
		Day:         10,
		IsHoliday:   1,
	}
}

func TestLoadLinearJSON(t *testing.T) {
	p, err := Load(filepath.Join("testdata", "linear.json"))
	require.NoError(t, err)

	got, err := p.Predict(sampleRow())
	require.NoError(t, err)

	want := 50 + 0.5*100 + 0.25*90 - 100*((3.5-3)/0.5) + 1000*1
	assert.Equal(t, want, got)

	info := p.Info()
	assert.Equal(t, "linear_fixture", info.Name)
	assert.Equal(t, "1", info.Version)
	assert.Equal(t, "Weekly_Sales", info.Target)
	assert.Equal(t, []string{StepStandardScaler, StepLinearRegression}, info.Steps)
	assert.Equal(t, model.FeatureNames(), info.Features)
}

func TestLoadTreeEnsembleYAML(t *testing.T) {
	p, err := Load(filepath.Join("testdata", "trees.yaml"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		fuel    float64
		holiday int
		want    float64
	}{
		{"cheap fuel holiday", 3.0, 1, 100 + 0.5*(10+40)},
		{"threshold goes left", 3.25, 0, 100 + 0.5*(10+0)},
		{"expensive fuel no holiday", 3.5, 0, 100 + 0.5*(-10+0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := sampleRow()
			row.FuelPrice = tt.fuel
			row.IsHoliday = tt.holiday
			got, err := p.Predict(row)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, []string{model.FeatureFuelPrice, model.FeatureIsHoliday}, p.Info().Features)
}

func TestTreeEnsembleMean(t *testing.T) {
	a := &Artifact{
		Format:   ArtifactFormat,
		Name:     "forest",
		Features: []string{model.FeatureWeek},
		Steps: []StepSpec{{
			Type:        StepTreeEnsemble,
			Aggregation: AggregateMean,
			Trees: []TreeSpec{
				{Nodes: []NodeSpec{{Left: -1, Right: -1, Value: 10}}},
				{Nodes: []NodeSpec{{Left: -1, Right: -1, Value: 20}}},
			},
		}},
	}
	p, err := Build(a)
	require.NoError(t, err)

	got, err := p.Predict(sampleRow())
	require.NoError(t, err)
	assert.Equal(t, 15.0, got)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "does-not-exist.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestDecodeRejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{"format":`},
		{"empty", `null`},
		{"wrong format", `{"format":"pickle","name":"x","features":["CPI"],"steps":[{"type":"linear_regression","coef":[1]}]}`},
		{"missing steps", `{"format":"sales-pipeline/v1","name":"x","features":["CPI"]}`},
		{"unknown step type", `{"format":"sales-pipeline/v1","name":"x","features":["CPI"],"steps":[{"type":"svr"}]}`},
		{"scaler without scale", `{"format":"sales-pipeline/v1","name":"x","features":["CPI"],"steps":[{"type":"standard_scaler","mean":[1]},{"type":"linear_regression","coef":[1]}]}`},
		{"string coefficient", `{"format":"sales-pipeline/v1","name":"x","features":["CPI"],"steps":[{"type":"linear_regression","coef":["1"]}]}`},
		{"duplicate features", `{"format":"sales-pipeline/v1","name":"x","features":["CPI","CPI"],"steps":[{"type":"linear_regression","coef":[1,1]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.raw), false)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidArtifact)
		})
	}
}

func TestBuildRejectsInconsistentArtifacts(t *testing.T) {
	base := func() *Artifact {
		return &Artifact{
			Format:   ArtifactFormat,
			Name:     "x",
			Features: []string{model.FeatureCPI, model.FeatureWeek},
			Steps: []StepSpec{
				{Type: StepStandardScaler, Mean: []float64{0, 0}, Scale: []float64{1, 1}},
				{Type: StepLinearRegression, Coef: []float64{1, 2}},
			},
		}
	}

	tests := []struct {
		name   string
		mutate func(a *Artifact)
	}{
		{"unknown feature", func(a *Artifact) { a.Features[1] = "Markdown1" }},
		{"coef width", func(a *Artifact) { a.Steps[1].Coef = []float64{1} }},
		{"mean width", func(a *Artifact) { a.Steps[0].Mean = []float64{0, 0, 0} }},
		{"zero scale", func(a *Artifact) { a.Steps[0].Scale = []float64{1, 0} }},
		{"scaler last", func(a *Artifact) { a.Steps = a.Steps[:1] }},
		{"regressor first", func(a *Artifact) { a.Steps[0], a.Steps[1] = a.Steps[1], a.Steps[0] }},
		{"tree child before parent", func(a *Artifact) {
			a.Steps[1] = StepSpec{Type: StepTreeEnsemble, Trees: []TreeSpec{{Nodes: []NodeSpec{
				{Feature: 0, Threshold: 1, Left: 1, Right: 0},
				{Left: -1, Right: -1, Value: 1},
			}}}}
		}},
		{"tree feature out of range", func(a *Artifact) {
			a.Steps[1] = StepSpec{Type: StepTreeEnsemble, Trees: []TreeSpec{{Nodes: []NodeSpec{
				{Feature: 2, Threshold: 1, Left: 1, Right: 2},
				{Left: -1, Right: -1, Value: 1},
				{Left: -1, Right: -1, Value: 2},
			}}}}
		}},
		{"bad aggregation", func(a *Artifact) {
			a.Steps[1] = StepSpec{Type: StepTreeEnsemble, Aggregation: "median", Trees: []TreeSpec{{Nodes: []NodeSpec{
				{Left: -1, Right: -1, Value: 1},
			}}}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := base()
			tt.mutate(a)
			_, err := Build(a)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidArtifact)
		})
	}

	_, err := Build(base())
	require.NoError(t, err)
}

func TestPredictNonFinite(t *testing.T) {
	p, err := Build(&Artifact{
		Format:   ArtifactFormat,
		Name:     "overflow",
		Features: []string{model.FeatureSalesLag1},
		Steps:    []StepSpec{{Type: StepLinearRegression, Coef: []float64{1e308}}},
	})
	require.NoError(t, err)

	row := sampleRow()
	row.SalesLag1 = 1e308
	_, err = p.Predict(row)
	assert.ErrorIs(t, err, ErrNonFinitePrediction)
}

func TestInfoReturnsCopy(t *testing.T) {
	p, err := Load(filepath.Join("testdata", "linear.json"))
	require.NoError(t, err)

	info := p.Info()
	info.Features[0] = "mutated"
	info.Steps[0] = "mutated"

	assert.Equal(t, model.FeatureSalesLag1, p.Info().Features[0])
	assert.Equal(t, StepStandardScaler, p.Info().Steps[0])
}

func TestPredictConcurrent(t *testing.T) {
	p, err := Load(filepath.Join("testdata", "linear.json"))
	require.NoError(t, err)

	want, err := p.Predict(sampleRow())
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]float64, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = p.Predict(sampleRow())
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestBundledArtifactLoads(t *testing.T) {
	p, err := Load(filepath.Join("..", "..", "models", "sales_model_pipeline2.json"))
	require.NoError(t, err)

	got, err := p.Predict(sampleRow())
	require.NoError(t, err)
	assert.False(t, math.IsNaN(got) || math.IsInf(got, 0))
	assert.Equal(t, "sales_model_pipeline2", p.Info().Name)
}
