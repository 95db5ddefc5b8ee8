package pipeline

// ArtifactFormat identifies the on-disk pipeline layout this package understands.
const ArtifactFormat = "sales-pipeline/v1"

// Step types.
const (
	StepStandardScaler   = "standard_scaler"
	StepLinearRegression = "linear_regression"
	StepTreeEnsemble     = "tree_ensemble"
)

// Tree aggregation modes.
const (
	AggregateSum  = "sum"
	AggregateMean = "mean"
)

// Artifact is the serialized shape of a fitted pipeline (JSON or YAML).
//
// Example:
//
//	{
//	  "format": "sales-pipeline/v1",
//	  "name": "sales_model_pipeline2",
//	  "features": ["Sales_Lag1", ...],
//	  "steps": [
//	    {"type": "standard_scaler", "mean": [...], "scale": [...]},
//	    {"type": "linear_regression", "coef": [...], "intercept": 0}
//	  ]
//	}
type Artifact struct {
	Format   string     `json:"format"`
	Name     string     `json:"name"`
	Version  string     `json:"version,omitempty"`
	Target   string     `json:"target,omitempty"`
	Features []string   `json:"features"`
	Steps    []StepSpec `json:"steps"`
}

// StepSpec holds the parameters of one pipeline step. Which fields apply depends on Type.
type StepSpec struct {
	Name string `json:"name,omitempty"`
	Type string `json:"type"`

	// standard_scaler
	Mean  []float64 `json:"mean,omitempty"`
	Scale []float64 `json:"scale,omitempty"`

	// linear_regression
	Coef      []float64 `json:"coef,omitempty"`
	Intercept float64   `json:"intercept,omitempty"`

	// tree_ensemble
	BaseScore    float64    `json:"base_score,omitempty"`
	LearningRate *float64   `json:"learning_rate,omitempty"`
	Aggregation  string     `json:"aggregation,omitempty"`
	Trees        []TreeSpec `json:"trees,omitempty"`
}

// TreeSpec is a flattened regression tree. Node 0 is the root.
type TreeSpec struct {
	Nodes []NodeSpec `json:"nodes"`
}

// NodeSpec follows the scikit-learn tree layout: Left and Right are -1 on leaves,
// and a sample goes left when x[Feature] <= Threshold.
type NodeSpec struct {
	Feature   int     `json:"feature,omitempty"`
	Threshold float64 `json:"threshold,omitempty"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value,omitempty"`
}

func (n NodeSpec) isLeaf() bool {
	return n.Left == -1 && n.Right == -1
}
