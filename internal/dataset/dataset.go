package dataset

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ErrMissingColumn reports a column the caller expected but the data lacks.
var ErrMissingColumn = errors.New("missing column")

// #region dataset

// Dataset is a named-column table loaded from CSV, one row per subject.
type Dataset struct {
	df dataframe.DataFrame
}

// Load reads a CSV file into a Dataset. The first row is the header.
func Load(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f)
	if df.Err != nil {
		return Dataset{}, fmt.Errorf("read csv %s: %w", path, df.Err)
	}
	return Dataset{df: df}, nil
}

// New wraps an existing dataframe.
func New(df dataframe.DataFrame) Dataset {
	return Dataset{df: df}
}

// Frame returns the underlying dataframe.
func (d Dataset) Frame() dataframe.DataFrame {
	return d.df
}

// NRows returns the number of subject rows.
func (d Dataset) NRows() int {
	return d.df.Nrow()
}

// Names returns the column names in table order.
func (d Dataset) Names() []string {
	return d.df.Names()
}

// Has reports whether the named column exists.
func (d Dataset) Has(name string) bool {
	for _, n := range d.df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// #endregion dataset

// #region columns

// Floats extracts a column as float64 values.
// A missing column is a schema mismatch, not a zero value.
func (d Dataset) Floats(name string) ([]float64, error) {
	if !d.Has(name) {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
	}
	col := d.df.Col(name)
	if col.Err != nil {
		return nil, fmt.Errorf("column %s: %w", name, col.Err)
	}
	vals := col.Float()
	for i, v := range vals {
		if math.IsNaN(v) {
			return nil, fmt.Errorf("column %s: non-numeric value at row %d", name, i)
		}
	}
	return vals, nil
}

// Labels extracts a binary 0/1 column as ints.
func (d Dataset) Labels(name string) ([]int, error) {
	vals, err := d.Floats(name)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(vals))
	for i, v := range vals {
		if v != 0 && v != 1 {
			return nil, fmt.Errorf("column %s: value %v at row %d is not a 0/1 label", name, v, i)
		}
		out[i] = int(v)
	}
	return out, nil
}

// CastBool returns a copy of the dataset with the named columns
// converted from 0/1 numerics to booleans.
func (d Dataset) CastBool(names ...string) (Dataset, error) {
	df := d.df
	for _, name := range names {
		vals, err := d.Floats(name)
		if err != nil {
			return Dataset{}, err
		}
		bools := make([]bool, len(vals))
		for i, v := range vals {
			bools[i] = v != 0
		}
		df = df.Mutate(series.New(bools, series.Bool, name))
		if df.Err != nil {
			return Dataset{}, fmt.Errorf("cast column %s: %w", name, df.Err)
		}
	}
	return Dataset{df: df}, nil
}

// #endregion columns
