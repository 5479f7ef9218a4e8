package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/clinml/heartfail/internal/dataset"
	"github.com/clinml/heartfail/internal/metrics"
	"github.com/clinml/heartfail/internal/pipeline"
	"github.com/clinml/heartfail/internal/report"
	"github.com/clinml/heartfail/internal/runlog"
)

// #region main

func main() {
	testData := flag.String("scaled-test-data", "", "path to the scaled test data CSV")
	pipelineFrom := flag.String("pipeline-from", "", "path to the fit pipeline artifact")
	resultsTo := flag.String("results-to", "", "directory the result tables are written to")
	flag.Int("seed", 123, "random seed (accepted for interface compatibility; evaluation is deterministic)")
	logDB := flag.String("log-db", "", "optional run-history SQLite database (or HEARTFAIL_DB)")
	flag.Parse()

	if *testData == "" || *pipelineFrom == "" || *resultsTo == "" {
		fmt.Fprintln(os.Stderr, "usage: evaluate --scaled-test-data data.csv --pipeline-from pipeline.json --results-to results/ [--seed N] [--log-db runs.db]")
		os.Exit(2)
	}

	db := *logDB
	if db == "" {
		db = envOr("HEARTFAIL_DB", "")
	}

	if err := run(*testData, *pipelineFrom, *resultsTo, db); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region run

func run(testPath, pipelinePath, resultsTo, logDB string) error {
	ds, err := dataset.Load(testPath)
	if err != nil {
		return err
	}

	pipe, err := pipeline.Load(pipelinePath)
	if err != nil {
		return err
	}

	predicted, err := pipe.Predict(ds)
	if err != nil {
		return err
	}
	actual, err := ds.Labels(dataset.LabelColumn)
	if err != nil {
		return err
	}

	cm, err := metrics.Crosstab(actual, predicted)
	if err != nil {
		return err
	}
	scores := metrics.Score(cm)

	if err := os.MkdirAll(resultsTo, 0o755); err != nil {
		return fmt.Errorf("create results directory: %w", err)
	}
	if err := report.WriteConfusionMatrix(filepath.Join(resultsTo, report.ConfusionMatrixFile), cm); err != nil {
		return err
	}
	if err := report.WriteScores(filepath.Join(resultsTo, report.TestScoresFile), scores); err != nil {
		return err
	}

	fmt.Printf("Evaluated %d rows: accuracy=%.4f precision=%.4f recall=%.4f f1=%.4f\n",
		cm.Total(), scores.Accuracy, scores.Precision, scores.Recall, scores.F1)
	fmt.Printf("Results written to %s\n", resultsTo)

	logRun(logDB, []string{testPath, pipelinePath}, scores)
	return nil
}

// logRun appends the run to the history database when one is
// configured. Failures here are warnings, never fatal.
func logRun(logDB string, inputs []string, scores metrics.Scores) {
	if logDB == "" {
		return
	}
	store, err := runlog.Open(logDB)
	if err != nil {
		log.Printf("run log disabled: %v", err)
		return
	}
	defer store.Close()

	if _, err := store.Append(runlog.Entry{
		Tool:   "evaluate",
		Inputs: inputs,
		Result: map[string]float64{
			"accuracy":  scores.Accuracy,
			"precision": scores.Precision,
			"recall":    scores.Recall,
			"f1":        scores.F1,
		},
	}); err != nil {
		log.Printf("run log append failed: %v", err)
	}
}

// #endregion run

// #region helpers

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion helpers
