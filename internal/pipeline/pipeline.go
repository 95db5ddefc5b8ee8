package pipeline

import (
	"errors"
	"fmt"
	"math"

	"sales-forecast/internal/model"
)

var (
	// ErrInvalidArtifact is returned when an artifact cannot be decoded or does not describe a usable pipeline.
	ErrInvalidArtifact = errors.New("invalid model artifact")
	// ErrNonFinitePrediction is returned when the pipeline produces NaN or ±Inf.
	ErrNonFinitePrediction = errors.New("prediction is not a finite number")
)

// Predictor maps one feature row to a scalar prediction.
// Implementations must be safe for concurrent use.
type Predictor interface {
	Predict(row model.StoreWeek) (float64, error)
}

// Info describes a loaded pipeline.
type Info struct {
	Name     string   `json:"name"`
	Version  string   `json:"version,omitempty"`
	Target   string   `json:"target,omitempty"`
	Features []string `json:"features"`
	Steps    []string `json:"steps"`
}

// Pipeline is a fitted, read-only sequence of transformers followed by a regressor.
// It is never mutated after Build returns, so a single instance can serve all requests.
type Pipeline struct {
	info       Info
	columns    []int
	transforms []transformer
	regressor  regressor
}

// Build validates an artifact and assembles the pipeline it describes.
func Build(a *Artifact) (*Pipeline, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: artifact is nil", ErrInvalidArtifact)
	}
	if a.Format != ArtifactFormat {
		return nil, fmt.Errorf("%w: format %q, want %q", ErrInvalidArtifact, a.Format, ArtifactFormat)
	}
	if len(a.Features) == 0 {
		return nil, fmt.Errorf("%w: no features", ErrInvalidArtifact)
	}
	if len(a.Steps) == 0 {
		return nil, fmt.Errorf("%w: no steps", ErrInvalidArtifact)
	}

	p := &Pipeline{
		info: Info{
			Name:     a.Name,
			Version:  a.Version,
			Target:   a.Target,
			Features: append([]string(nil), a.Features...),
			Steps:    make([]string, 0, len(a.Steps)),
		},
		columns: make([]int, len(a.Features)),
	}

	seen := make(map[string]bool, len(a.Features))
	for i, name := range a.Features {
		idx, ok := model.FeatureIndex(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown feature %q", ErrInvalidArtifact, name)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: duplicate feature %q", ErrInvalidArtifact, name)
		}
		seen[name] = true
		p.columns[i] = idx
	}

	width := len(a.Features)
	last := len(a.Steps) - 1
	for i, spec := range a.Steps {
		label := spec.Name
		if label == "" {
			label = spec.Type
		}
		if err := p.addStep(spec, width, i == last); err != nil {
			return nil, fmt.Errorf("%w: step %d (%s): %v", ErrInvalidArtifact, i, label, err)
		}
		p.info.Steps = append(p.info.Steps, spec.Type)
	}
	return p, nil
}

func (p *Pipeline) addStep(spec StepSpec, width int, last bool) error {
	switch spec.Type {
	case StepStandardScaler:
		if last {
			return fmt.Errorf("%s cannot be the final step", spec.Type)
		}
		s, err := newStandardScaler(spec, width)
		if err != nil {
			return err
		}
		p.transforms = append(p.transforms, s)
	case StepLinearRegression, StepTreeEnsemble:
		if !last {
			return fmt.Errorf("%s must be the final step", spec.Type)
		}
		var (
			r   regressor
			err error
		)
		if spec.Type == StepLinearRegression {
			r, err = newLinearRegression(spec, width)
		} else {
			r, err = newTreeEnsemble(spec, width)
		}
		if err != nil {
			return err
		}
		p.regressor = r
	default:
		return fmt.Errorf("unsupported step type %q", spec.Type)
	}
	return nil
}

// Info returns a copy of the pipeline metadata.
func (p *Pipeline) Info() Info {
	out := p.info
	out.Features = append([]string(nil), p.info.Features...)
	out.Steps = append([]string(nil), p.info.Steps...)
	return out
}

// Predict runs the row through every step and returns the regressor output.
func (p *Pipeline) Predict(row model.StoreWeek) (float64, error) {
	full := row.Vector()
	x := make([]float64, len(p.columns))
	for i, col := range p.columns {
		x[i] = full[col]
	}
	for _, t := range p.transforms {
		x = t.transform(x)
	}
	y := p.regressor.predict(x)
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, ErrNonFinitePrediction
	}
	return y, nil
}
