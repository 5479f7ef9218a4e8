// Package policy checks a correlation matrix against a maximum
// pairwise-correlation threshold.
package policy

import (
	"fmt"
	"math"

	"github.com/clinml/heartfail/internal/correlation"
)

// #region types

// FeatureCorrelation holds the threshold for the feature-feature
// correlation check. A dataset passes when no off-diagonal pair has
// absolute correlation above the threshold.
type FeatureCorrelation struct {
	Threshold float64
	MaxPairs  int // violating pairs tolerated before failing
}

// DefaultFeatureCorrelation returns the standard policy.
func DefaultFeatureCorrelation() FeatureCorrelation {
	return FeatureCorrelation{Threshold: 0.92, MaxPairs: 0}
}

// Violation is one feature pair exceeding the threshold.
type Violation struct {
	Feature1    string
	Feature2    string
	Correlation float64
}

// Result is the outcome of the policy check.
type Result struct {
	Passed     bool
	Violations []Violation
	Reason     string
}

// #endregion types

// #region check

// Check counts feature pairs whose absolute correlation exceeds the
// threshold. Each unordered pair is counted once; the diagonal is
// ignored. NaN correlations (constant columns) never violate.
func (p FeatureCorrelation) Check(m correlation.Matrix) Result {
	var violations []Violation
	for i := 0; i < m.Dim(); i++ {
		for j := i + 1; j < m.Dim(); j++ {
			r := m.At(i, j)
			if math.IsNaN(r) {
				continue
			}
			if math.Abs(r) > p.Threshold {
				violations = append(violations, Violation{
					Feature1:    m.Names[i],
					Feature2:    m.Names[j],
					Correlation: r,
				})
			}
		}
	}

	if len(violations) > p.MaxPairs {
		v := violations[0]
		return Result{
			Passed:     false,
			Violations: violations,
			Reason: fmt.Sprintf("%d feature pair(s) exceed correlation threshold %.2f, first: %s vs %s (%.4f)",
				len(violations), p.Threshold, v.Feature1, v.Feature2, v.Correlation),
		}
	}
	return Result{Passed: true, Violations: violations, Reason: "all feature-feature correlation checks passed"}
}

// #endregion check
