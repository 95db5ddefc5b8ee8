package pipeline

import (
	"errors"
	"fmt"
)

// transformer maps a feature vector to a new vector of the same width.
// Implementations must not modify their input.
type transformer interface {
	transform(x []float64) []float64
}

// regressor is the terminal step of a pipeline.
type regressor interface {
	predict(x []float64) float64
}

type standardScaler struct {
	mean  []float64
	scale []float64
}

func newStandardScaler(spec StepSpec, width int) (*standardScaler, error) {
	if len(spec.Mean) != width {
		return nil, fmt.Errorf("mean has %d values, want %d", len(spec.Mean), width)
	}
	if len(spec.Scale) != width {
		return nil, fmt.Errorf("scale has %d values, want %d", len(spec.Scale), width)
	}
	for i, s := range spec.Scale {
		if s == 0 {
			return nil, fmt.Errorf("scale[%d] must be non-zero", i)
		}
	}
	return &standardScaler{
		mean:  append([]float64(nil), spec.Mean...),
		scale: append([]float64(nil), spec.Scale...),
	}, nil
}

func (s *standardScaler) transform(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = (v - s.mean[i]) / s.scale[i]
	}
	return out
}

type linearRegression struct {
	coef      []float64
	intercept float64
}

func newLinearRegression(spec StepSpec, width int) (*linearRegression, error) {
	if len(spec.Coef) != width {
		return nil, fmt.Errorf("coef has %d values, want %d", len(spec.Coef), width)
	}
	return &linearRegression{
		coef:      append([]float64(nil), spec.Coef...),
		intercept: spec.Intercept,
	}, nil
}

func (l *linearRegression) predict(x []float64) float64 {
	y := l.intercept
	for i, c := range l.coef {
		y += c * x[i]
	}
	return y
}

type treeEnsemble struct {
	trees        [][]NodeSpec
	baseScore    float64
	learningRate float64
	mean         bool
}

func newTreeEnsemble(spec StepSpec, width int) (*treeEnsemble, error) {
	if len(spec.Trees) == 0 {
		return nil, errors.New("no trees")
	}
	e := &treeEnsemble{
		trees:        make([][]NodeSpec, len(spec.Trees)),
		baseScore:    spec.BaseScore,
		learningRate: 1,
	}
	if spec.LearningRate != nil {
		if *spec.LearningRate <= 0 {
			return nil, errors.New("learning_rate must be > 0")
		}
		e.learningRate = *spec.LearningRate
	}
	switch spec.Aggregation {
	case "", AggregateSum:
	case AggregateMean:
		e.mean = true
	default:
		return nil, fmt.Errorf("unsupported aggregation %q", spec.Aggregation)
	}

	for t, tree := range spec.Trees {
		if err := checkTree(tree.Nodes, width); err != nil {
			return nil, fmt.Errorf("tree %d: %w", t, err)
		}
		e.trees[t] = append([]NodeSpec(nil), tree.Nodes...)
	}
	return e, nil
}

// checkTree rejects trees that could index out of range or loop forever.
// Children must sit after their parent in the node array.
func checkTree(nodes []NodeSpec, width int) error {
	if len(nodes) == 0 {
		return errors.New("no nodes")
	}
	for i, n := range nodes {
		if n.isLeaf() {
			continue
		}
		if n.Feature < 0 || n.Feature >= width {
			return fmt.Errorf("node %d: feature %d out of range [0,%d)", i, n.Feature, width)
		}
		for _, child := range []int{n.Left, n.Right} {
			if child <= i || child >= len(nodes) {
				return fmt.Errorf("node %d: child %d out of range (%d,%d)", i, child, i, len(nodes))
			}
		}
	}
	return nil
}

func (e *treeEnsemble) predict(x []float64) float64 {
	sum := 0.0
	for _, nodes := range e.trees {
		sum += evalTree(nodes, x)
	}
	if e.mean {
		sum /= float64(len(e.trees))
	}
	return e.baseScore + e.learningRate*sum
}

func evalTree(nodes []NodeSpec, x []float64) float64 {
	i := 0
	for {
		n := nodes[i]
		if n.isLeaf() {
			return n.Value
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}
