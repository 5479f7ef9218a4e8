package policy

import (
	"math"
	"strings"
	"testing"

	"github.com/clinml/heartfail/internal/correlation"
)

func matrixOf(names []string, values [][]float64) correlation.Matrix {
	return correlation.Matrix{Names: names, Values: values}
}

func TestCheckPassesBelowThreshold(t *testing.T) {
	m := matrixOf([]string{"a", "b"}, [][]float64{
		{1, 0.5},
		{0.5, 1},
	})

	res := DefaultFeatureCorrelation().Check(m)
	if !res.Passed {
		t.Fatalf("expected pass, got: %s", res.Reason)
	}
	if len(res.Violations) != 0 {
		t.Fatalf("unexpected violations: %+v", res.Violations)
	}
}

func TestCheckFailsAboveThreshold(t *testing.T) {
	m := matrixOf([]string{"a", "b", "c"}, [][]float64{
		{1, 0.95, 0.1},
		{0.95, 1, 0.2},
		{0.1, 0.2, 1},
	})

	res := DefaultFeatureCorrelation().Check(m)
	if res.Passed {
		t.Fatal("expected failure for pair above threshold")
	}
	if len(res.Violations) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(res.Violations))
	}
	if !strings.Contains(res.Reason, "a vs b") {
		t.Fatalf("reason does not name the pair: %s", res.Reason)
	}
}

func TestCheckCountsNegativeCorrelations(t *testing.T) {
	m := matrixOf([]string{"a", "b"}, [][]float64{
		{1, -0.99},
		{-0.99, 1},
	})

	res := FeatureCorrelation{Threshold: 0.92}.Check(m)
	if res.Passed {
		t.Fatal("expected failure for strong negative correlation")
	}
}

func TestCheckIgnoresDiagonalAndNaN(t *testing.T) {
	m := matrixOf([]string{"a", "b"}, [][]float64{
		{1, math.NaN()},
		{math.NaN(), 1},
	})

	res := FeatureCorrelation{Threshold: 0.5}.Check(m)
	if !res.Passed {
		t.Fatalf("NaN pair should not violate: %s", res.Reason)
	}
}

func TestCheckToleratesAllowedPairCount(t *testing.T) {
	m := matrixOf([]string{"a", "b"}, [][]float64{
		{1, 0.99},
		{0.99, 1},
	})

	res := FeatureCorrelation{Threshold: 0.92, MaxPairs: 1}.Check(m)
	if !res.Passed {
		t.Fatalf("one violation should be tolerated with MaxPairs=1: %s", res.Reason)
	}
	if len(res.Violations) != 1 {
		t.Fatalf("violations should still be reported, got %d", len(res.Violations))
	}
}
