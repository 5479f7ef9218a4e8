package correlation

import (
	"math"
	"testing"

	"github.com/clinml/heartfail/internal/preprocess"
)

func fixtureData() preprocess.Transformed {
	return preprocess.Transformed{
		Names: []string{"a", "b", "c"},
		Columns: [][]float64{
			{1, 2, 3, 4, 5},
			{2, 4, 6, 8, 10},
			{5, 3, 8, 1, 9},
		},
	}
}

func TestComputeSymmetricWithUnitDiagonal(t *testing.T) {
	m, err := Compute(fixtureData())
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	for i := 0; i < m.Dim(); i++ {
		if math.Abs(m.At(i, i)-1) > 1e-9 {
			t.Fatalf("diagonal [%d][%d] = %v, want 1", i, i, m.At(i, i))
		}
		for j := 0; j < m.Dim(); j++ {
			if math.Abs(m.At(i, j)-m.At(j, i)) > 1e-9 {
				t.Fatalf("matrix not symmetric at (%d,%d)", i, j)
			}
		}
	}
}

func TestComputePerfectlyCorrelatedPair(t *testing.T) {
	m, err := Compute(fixtureData())
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	// b is an exact multiple of a.
	if math.Abs(m.At(0, 1)-1) > 1e-9 {
		t.Fatalf("corr(a,b) = %v, want 1", m.At(0, 1))
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	m1, err := Compute(fixtureData())
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	m2, err := Compute(fixtureData())
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	for i := 0; i < m1.Dim(); i++ {
		for j := 0; j < m1.Dim(); j++ {
			if m1.At(i, j) != m2.At(i, j) {
				t.Fatalf("re-run differs at (%d,%d): %v vs %v", i, j, m1.At(i, j), m2.At(i, j))
			}
		}
	}
}

func TestComputeRejectsDegenerateInput(t *testing.T) {
	if _, err := Compute(preprocess.Transformed{}); err == nil {
		t.Fatal("expected error for empty input")
	}
	one := preprocess.Transformed{Names: []string{"a"}, Columns: [][]float64{{1}}}
	if _, err := Compute(one); err == nil {
		t.Fatal("expected error for single-row input")
	}
}

func TestMeltCoversAllPairs(t *testing.T) {
	m, err := Compute(fixtureData())
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	pairs := m.Melt()
	if len(pairs) != 9 {
		t.Fatalf("melt produced %d triples, want 9", len(pairs))
	}
	if pairs[0].Feature1 != "a" || pairs[0].Feature2 != "a" || pairs[0].Correlation != 1 {
		t.Fatalf("first triple = %+v", pairs[0])
	}
	if pairs[1].Feature1 != "a" || pairs[1].Feature2 != "b" {
		t.Fatalf("second triple = %+v", pairs[1])
	}
}
