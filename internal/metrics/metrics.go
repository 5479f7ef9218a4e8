// Package metrics computes binary classification metrics with the
// positive label fixed to 1.
package metrics

import (
	"fmt"
	"log"
)

// #region confusion-matrix

// ConfusionMatrix is a fixed 2x2 cross-tabulation of actual vs.
// predicted labels. Cells are indexed [actual][predicted].
type ConfusionMatrix struct {
	Cells [2][2]int
}

// Crosstab tabulates actual against predicted labels.
// Labels outside {0,1} are rejected.
func Crosstab(actual, predicted []int) (ConfusionMatrix, error) {
	if len(actual) != len(predicted) {
		return ConfusionMatrix{}, fmt.Errorf("crosstab: %d actual vs %d predicted labels",
			len(actual), len(predicted))
	}
	var m ConfusionMatrix
	for i := range actual {
		a, p := actual[i], predicted[i]
		if a < 0 || a > 1 || p < 0 || p > 1 {
			return ConfusionMatrix{}, fmt.Errorf("crosstab: non-binary label pair (%d,%d) at row %d", a, p, i)
		}
		m.Cells[a][p]++
	}
	return m, nil
}

// Cell returns the count of rows with the given actual and predicted labels.
func (m ConfusionMatrix) Cell(actual, predicted int) int {
	return m.Cells[actual][predicted]
}

// Total returns the number of tabulated rows.
func (m ConfusionMatrix) Total() int {
	return m.Cells[0][0] + m.Cells[0][1] + m.Cells[1][0] + m.Cells[1][1]
}

// TruePositives etc. read the matrix in positive-label-1 terms.
func (m ConfusionMatrix) TruePositives() int  { return m.Cells[1][1] }
func (m ConfusionMatrix) FalsePositives() int { return m.Cells[0][1] }
func (m ConfusionMatrix) TrueNegatives() int  { return m.Cells[0][0] }
func (m ConfusionMatrix) FalseNegatives() int { return m.Cells[1][0] }

// #endregion confusion-matrix

// #region scores

// Scores is the single-row summary metrics table.
type Scores struct {
	Accuracy  float64
	Precision float64
	Recall    float64
	F1        float64
}

// Score derives summary metrics from a confusion matrix.
// When no positive predictions exist, precision is 0 with a warning;
// same for recall when no positive actuals exist. F1 is 0 when both
// precision and recall are 0.
func Score(m ConfusionMatrix) Scores {
	var s Scores
	n := m.Total()
	if n == 0 {
		return s
	}

	tp := float64(m.TruePositives())
	fp := float64(m.FalsePositives())
	fn := float64(m.FalseNegatives())

	s.Accuracy = (tp + float64(m.TrueNegatives())) / float64(n)

	if tp+fp > 0 {
		s.Precision = tp / (tp + fp)
	} else {
		log.Print("metrics: no positive predictions, precision set to 0")
	}
	if tp+fn > 0 {
		s.Recall = tp / (tp + fn)
	} else {
		log.Print("metrics: no positive actual labels, recall set to 0")
	}
	if s.Precision+s.Recall > 0 {
		s.F1 = 2 * s.Precision * s.Recall / (s.Precision + s.Recall)
	}
	return s
}

// #endregion scores
