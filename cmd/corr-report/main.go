package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/clinml/heartfail/internal/correlation"
	"github.com/clinml/heartfail/internal/dataset"
	"github.com/clinml/heartfail/internal/heatmap"
	"github.com/clinml/heartfail/internal/policy"
	"github.com/clinml/heartfail/internal/preprocess"
	"github.com/clinml/heartfail/internal/report"
	"github.com/clinml/heartfail/internal/runlog"
)

// #region main

func main() {
	trainFile := flag.String("train_file", "", "path to the training dataset CSV file")
	testFile := flag.String("test_file", "", "path to the test dataset CSV file")
	outputFile := flag.String("output_file", "", "path to save the correlation heatmap (optional)")
	threshold := flag.Float64("threshold_feature_feature", 0.92, "maximum feature-feature correlation threshold")
	logDB := flag.String("log-db", "", "optional run-history SQLite database (or HEARTFAIL_DB)")
	flag.Parse()

	if *trainFile == "" || *testFile == "" {
		fmt.Fprintln(os.Stderr, "usage: corr-report --train_file train.csv --test_file test.csv [--output_file heatmap.png] [--threshold_feature_feature 0.92] [--log-db runs.db]")
		os.Exit(2)
	}
	for _, path := range []string{*trainFile, *testFile} {
		if _, err := os.Stat(path); err != nil {
			fmt.Fprintf(os.Stderr, "error: input file %s: %v\n", path, err)
			os.Exit(2)
		}
	}

	db := *logDB
	if db == "" {
		db = envOr("HEARTFAIL_DB", "")
	}

	if err := run(*trainFile, *testFile, *outputFile, *threshold, db); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region run

func run(trainPath, testPath, outputPath string, threshold float64, logDB string) error {
	train, err := dataset.Load(trainPath)
	if err != nil {
		return err
	}
	test, err := dataset.Load(testPath)
	if err != nil {
		return err
	}

	train, err = train.CastBool(dataset.BinaryColumns...)
	if err != nil {
		return err
	}
	test, err = test.CastBool(dataset.BinaryColumns...)
	if err != nil {
		return err
	}

	ct := preprocess.NewColumnTransformer(dataset.NumericColumns, dataset.BinaryColumns)
	scaledTrain, err := ct.FitTransform(train)
	if err != nil {
		return err
	}
	// Transformed test output feeds nothing downstream; transforming it
	// still surfaces train/test schema drift before anything is written.
	if _, err := ct.Transform(test); err != nil {
		return err
	}

	corr, err := correlation.Compute(scaledTrain)
	if err != nil {
		return err
	}

	savedTo := outputPath
	if savedTo == "" {
		// No interactive chart window; render to the temp directory and
		// point the user at it.
		savedTo = filepath.Join(os.TempDir(), "correlation_heatmap.png")
	}
	if err := heatmap.Save(corr, savedTo); err != nil {
		return err
	}

	if outputPath != "" {
		longPath := strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + "_long.csv"
		if err := report.WriteCorrelationPairs(longPath, corr.Melt()); err != nil {
			return err
		}
		fmt.Printf("Correlation table saved to %s.\n", longPath)
	}

	check := policy.FeatureCorrelation{Threshold: threshold}.Check(corr)
	logRun(logDB, []string{trainPath, testPath}, savedTo, check)
	if !check.Passed {
		return fmt.Errorf("feature-feature correlation exceeds the maximum acceptable threshold: %s", check.Reason)
	}
	fmt.Println("All feature-feature correlation checks passed.")
	return nil
}

// logRun appends the run outcome to the history database when one is
// configured. Failures here are warnings, never fatal.
func logRun(logDB string, inputs []string, heatmapPath string, check policy.Result) {
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
		Tool:   "corr-report",
		Inputs: inputs,
		Result: map[string]any{
			"heatmap":    heatmapPath,
			"passed":     check.Passed,
			"violations": len(check.Violations),
			"reason":     check.Reason,
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
