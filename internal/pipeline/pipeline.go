// Package pipeline loads and applies a previously fit classification
// pipeline. The artifact is produced by the training workflow and treated
// as opaque here: it is deserialized, validated for shape, and used only
// through Predict.
package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/clinml/heartfail/internal/dataset"
)

// ErrBadArtifact reports an absent, corrupt, or incompatible artifact.
var ErrBadArtifact = errors.New("invalid pipeline artifact")

// #region artifact

// Artifact is the JSON-serialized fitted pipeline: feature names, the
// standardization parameters baked in at fit time, and the logistic
// decision function.
type Artifact struct {
	Model        string    `json:"model"`
	Features     []string  `json:"features"`
	Means        []float64 `json:"means,omitempty"`
	Scales       []float64 `json:"scales,omitempty"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
	Threshold    float64   `json:"threshold,omitempty"`
	Predicted    string    `json:"predicted,omitempty"`
}

func (a Artifact) validate() error {
	if len(a.Features) == 0 {
		return fmt.Errorf("%w: no features", ErrBadArtifact)
	}
	if len(a.Coefficients) != len(a.Features) {
		return fmt.Errorf("%w: %d coefficients for %d features",
			ErrBadArtifact, len(a.Coefficients), len(a.Features))
	}
	if len(a.Means) != 0 && len(a.Means) != len(a.Features) {
		return fmt.Errorf("%w: %d means for %d features",
			ErrBadArtifact, len(a.Means), len(a.Features))
	}
	if len(a.Scales) != len(a.Means) {
		return fmt.Errorf("%w: %d scales for %d means",
			ErrBadArtifact, len(a.Scales), len(a.Means))
	}
	for i, s := range a.Scales {
		if s == 0 {
			return fmt.Errorf("%w: zero scale for feature %s", ErrBadArtifact, a.Features[i])
		}
	}
	return nil
}

// #endregion artifact

// #region load-save

// Load reads and validates a pipeline artifact from disk.
// Any failure here is fatal for the caller: a pipeline that cannot be
// deserialized cannot be partially used.
func Load(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pipeline artifact: %w", err)
	}

	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrBadArtifact, path, err)
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return &Pipeline{artifact: a}, nil
}

// Save writes an artifact to disk. The training workflow owns artifact
// production; this exists for fixtures and round-trip checks.
func Save(path string, a Artifact) error {
	if err := a.validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("encode pipeline artifact: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write pipeline artifact: %w", err)
	}
	return nil
}

// #endregion load-save

// #region pipeline

// Pipeline is a fitted predictor. It maps feature columns to one
// predicted 0/1 label per row, in input order.
type Pipeline struct {
	artifact Artifact
}

// Features returns the feature columns the pipeline was fit on.
func (p *Pipeline) Features() []string {
	return p.artifact.Features
}

// Predicted returns the name of the prediction column.
func (p *Pipeline) Predicted() string {
	if p.artifact.Predicted == "" {
		return "predicted"
	}
	return p.artifact.Predicted
}

func (p *Pipeline) threshold() float64 {
	if p.artifact.Threshold == 0 {
		return 0.5
	}
	return p.artifact.Threshold
}

// Predict applies the pipeline to every row of the dataset.
// The dataset must supply every fitted feature column.
func (p *Pipeline) Predict(ds dataset.Dataset) ([]int, error) {
	cols := make([][]float64, len(p.artifact.Features))
	for i, name := range p.artifact.Features {
		vals, err := ds.Floats(name)
		if err != nil {
			return nil, fmt.Errorf("pipeline input: %w", err)
		}
		cols[i] = vals
	}

	n := ds.NRows()
	labels := make([]int, n)
	for r := 0; r < n; r++ {
		z := p.artifact.Intercept
		for i, col := range cols {
			x := col[r]
			if len(p.artifact.Means) > 0 {
				x = (x - p.artifact.Means[i]) / p.artifact.Scales[i]
			}
			z += p.artifact.Coefficients[i] * x
		}
		prob := 1.0 / (1.0 + math.Exp(-z))
		if prob >= p.threshold() {
			labels[r] = 1
		}
	}
	return labels, nil
}

// #endregion pipeline
