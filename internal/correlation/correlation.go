// Package correlation computes pairwise Pearson correlations among
// transformed feature columns.
package correlation

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/clinml/heartfail/internal/preprocess"
)

// Matrix is a symmetric feature-feature Pearson correlation matrix
// with exact 1.0 on the diagonal.
type Matrix struct {
	Names  []string
	Values [][]float64
}

// Pair is one long-format entry of the melted correlation matrix.
type Pair struct {
	Feature1    string
	Feature2    string
	Correlation float64
}

// Compute builds the correlation matrix of the transformed columns.
func Compute(data preprocess.Transformed) (Matrix, error) {
	d := len(data.Columns)
	if d == 0 {
		return Matrix{}, fmt.Errorf("correlation: no columns")
	}
	if data.NRows() < 2 {
		return Matrix{}, fmt.Errorf("correlation: need at least 2 rows, have %d", data.NRows())
	}

	m := Matrix{
		Names:  append([]string(nil), data.Names...),
		Values: make([][]float64, d),
	}
	for i := range m.Values {
		m.Values[i] = make([]float64, d)
		m.Values[i][i] = 1
	}
	for i := 0; i < d; i++ {
		for j := i + 1; j < d; j++ {
			r := stat.Correlation(data.Columns[i], data.Columns[j], nil)
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m, nil
}

// Dim returns the number of features.
func (m Matrix) Dim() int {
	return len(m.Names)
}

// At returns the correlation between features i and j.
func (m Matrix) At(i, j int) float64 {
	return m.Values[i][j]
}

// Melt reshapes the matrix into (Feature 1, Feature 2, Correlation)
// triples, row-major, diagonal included.
func (m Matrix) Melt() []Pair {
	pairs := make([]Pair, 0, m.Dim()*m.Dim())
	for i, a := range m.Names {
		for j, b := range m.Names {
			pairs = append(pairs, Pair{Feature1: a, Feature2: b, Correlation: m.Values[i][j]})
		}
	}
	return pairs
}
