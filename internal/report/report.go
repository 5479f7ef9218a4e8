// Package report writes the evaluation output tables.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/clinml/heartfail/internal/correlation"
	"github.com/clinml/heartfail/internal/metrics"
)

// Output file names written into the results directory.
const (
	ConfusionMatrixFile = "confusion_matrix.csv"
	TestScoresFile      = "test_scores.csv"
)

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteConfusionMatrix writes the 2x2 matrix with explicit
// "Actual"/"Predicted" axis labels:
//
//	Predicted,0,1
//	Actual,,
//	0,<cell>,<cell>
//	1,<cell>,<cell>
func WriteConfusionMatrix(path string, m metrics.ConfusionMatrix) error {
	rows := [][]string{
		{"Predicted", "0", "1"},
		{"Actual", "", ""},
	}
	for actual := 0; actual <= 1; actual++ {
		rows = append(rows, []string{
			strconv.Itoa(actual),
			strconv.Itoa(m.Cell(actual, 0)),
			strconv.Itoa(m.Cell(actual, 1)),
		})
	}
	return writeCSV(path, rows)
}

// WriteScores writes the single-row metrics table with the fixed
// column order accuracy, precision, recall, f1.
func WriteScores(path string, s metrics.Scores) error {
	rows := [][]string{
		{"accuracy", "precision", "recall", "f1"},
		{formatFloat(s.Accuracy), formatFloat(s.Precision), formatFloat(s.Recall), formatFloat(s.F1)},
	}
	return writeCSV(path, rows)
}

// WriteCorrelationPairs writes the melted correlation matrix as a
// long-format (Feature 1, Feature 2, Correlation) table.
func WriteCorrelationPairs(path string, pairs []correlation.Pair) error {
	rows := [][]string{{"Feature 1", "Feature 2", "Correlation"}}
	for _, p := range pairs {
		rows = append(rows, []string{p.Feature1, p.Feature2, formatFloat(p.Correlation)})
	}
	return writeCSV(path, rows)
}
