// Package preprocess fits column-wise feature transformations on
// training data and replays them, with the train-fitted parameters,
// on any compatible dataset.
package preprocess

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/clinml/heartfail/internal/dataset"
)

// ErrNotFitted reports Transform called before Fit.
var ErrNotFitted = errors.New("transformer is not fitted")

// #region types

// Transformed holds the output of a column transformation: stable
// column names and column-major float data.
type Transformed struct {
	Names   []string
	Columns [][]float64
}

// NRows returns the number of transformed rows.
func (t Transformed) NRows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0])
}

// Column returns the values for a named output column.
func (t Transformed) Column(name string) ([]float64, bool) {
	for i, n := range t.Names {
		if n == name {
			return t.Columns[i], true
		}
	}
	return nil, false
}

// ColumnTransformer standardizes numeric columns, one-hot encodes
// binary columns (dropping one level when exactly two categories were
// seen at fit time), and passes every other column through unchanged.
type ColumnTransformer struct {
	Numeric []string
	Binary  []string

	fitted      bool
	means       map[string]float64
	scales      map[string]float64
	categories  map[string][]string
	passthrough []string
}

// NewColumnTransformer builds an unfitted transformer over the given
// numeric and binary column lists.
func NewColumnTransformer(numeric, binary []string) *ColumnTransformer {
	return &ColumnTransformer{Numeric: numeric, Binary: binary}
}

// #endregion types

// #region fit

// Fit learns standardization parameters and binary categories from the
// training dataset only. Standard deviation is the population std; a
// zero-variance column gets scale 1 so transformed values stay finite.
func (t *ColumnTransformer) Fit(ds dataset.Dataset) error {
	t.means = make(map[string]float64, len(t.Numeric))
	t.scales = make(map[string]float64, len(t.Numeric))
	for _, name := range t.Numeric {
		vals, err := ds.Floats(name)
		if err != nil {
			return fmt.Errorf("fit: %w", err)
		}
		mean := stat.Mean(vals, nil)
		scale := math.Sqrt(stat.MomentAbout(2, vals, mean, nil))
		if scale == 0 {
			scale = 1
		}
		t.means[name] = mean
		t.scales[name] = scale
	}

	t.categories = make(map[string][]string, len(t.Binary))
	for _, name := range t.Binary {
		cats, err := observedCategories(ds, name)
		if err != nil {
			return fmt.Errorf("fit: %w", err)
		}
		t.categories[name] = cats
	}

	transformed := make(map[string]bool, len(t.Numeric)+len(t.Binary))
	for _, name := range t.Numeric {
		transformed[name] = true
	}
	for _, name := range t.Binary {
		transformed[name] = true
	}
	t.passthrough = nil
	for _, name := range ds.Names() {
		if !transformed[name] {
			t.passthrough = append(t.passthrough, name)
		}
	}

	t.fitted = true
	return nil
}

func observedCategories(ds dataset.Dataset, name string) ([]string, error) {
	if !ds.Has(name) {
		return nil, fmt.Errorf("%w: %s", dataset.ErrMissingColumn, name)
	}
	col := ds.Frame().Col(name)
	if col.Err != nil {
		return nil, fmt.Errorf("column %s: %w", name, col.Err)
	}
	seen := map[string]bool{}
	var cats []string
	for _, rec := range col.Records() {
		if !seen[rec] {
			seen[rec] = true
			cats = append(cats, rec)
		}
	}
	sort.Strings(cats)
	return cats, nil
}

// #endregion fit

// #region transform

// Transform applies the fitted parameters to a dataset. It never
// refits: test data reuses the train statistics. Categories unseen at
// fit time encode to all zeros.
func (t *ColumnTransformer) Transform(ds dataset.Dataset) (Transformed, error) {
	if !t.fitted {
		return Transformed{}, ErrNotFitted
	}

	var out Transformed
	for _, name := range t.Numeric {
		vals, err := ds.Floats(name)
		if err != nil {
			return Transformed{}, fmt.Errorf("transform: %w", err)
		}
		scaled := make([]float64, len(vals))
		for i, v := range vals {
			scaled[i] = (v - t.means[name]) / t.scales[name]
		}
		out.Names = append(out.Names, name)
		out.Columns = append(out.Columns, scaled)
	}

	for _, name := range t.Binary {
		if !ds.Has(name) {
			return Transformed{}, fmt.Errorf("transform: %w: %s", dataset.ErrMissingColumn, name)
		}
		col := ds.Frame().Col(name)
		if col.Err != nil {
			return Transformed{}, fmt.Errorf("transform column %s: %w", name, col.Err)
		}
		recs := col.Records()
		for _, kept := range keptCategories(t.categories[name]) {
			encoded := make([]float64, len(recs))
			for i, rec := range recs {
				if rec == kept {
					encoded[i] = 1
				}
			}
			out.Names = append(out.Names, name+"_"+kept)
			out.Columns = append(out.Columns, encoded)
		}
	}

	for _, name := range t.passthrough {
		vals, err := ds.Floats(name)
		if err != nil {
			return Transformed{}, fmt.Errorf("transform: %w", err)
		}
		out.Names = append(out.Names, name)
		out.Columns = append(out.Columns, vals)
	}

	return out, nil
}

// keptCategories drops one level when exactly two categories exist, so
// a binary column emits a single 0/1 indicator instead of two.
func keptCategories(cats []string) []string {
	if len(cats) == 2 {
		return cats[1:]
	}
	return cats
}

// FitTransform fits on the dataset and transforms it in one call.
func (t *ColumnTransformer) FitTransform(ds dataset.Dataset) (Transformed, error) {
	if err := t.Fit(ds); err != nil {
		return Transformed{}, err
	}
	return t.Transform(ds)
}

// #endregion transform
