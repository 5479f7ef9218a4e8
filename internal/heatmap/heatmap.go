// Package heatmap renders a correlation matrix as a colored grid.
package heatmap

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/clinml/heartfail/internal/correlation"
)

// Chart size is fixed at 600x600.
const chartSize = vg.Length(600)

// grid adapts a correlation matrix to the plotter grid interface.
type grid struct {
	m correlation.Matrix
}

func (g grid) Dims() (c, r int) { return g.m.Dim(), g.m.Dim() }
func (g grid) Z(c, r int) float64 {
	return g.m.At(r, c)
}
func (g grid) X(c int) float64 { return float64(c) }
func (g grid) Y(r int) float64 { return float64(r) }

// Render builds the heatmap plot with feature names on both axes and a
// color scale pinned to [-1, 1].
func Render(m correlation.Matrix) (*plot.Plot, error) {
	if m.Dim() == 0 {
		return nil, fmt.Errorf("heatmap: empty correlation matrix")
	}

	h := plotter.NewHeatMap(grid{m: m}, palette.Heat(16, 1))
	h.Min = -1
	h.Max = 1

	p := plot.New()
	p.Title.Text = "Correlation Heatmap"
	p.Add(h)
	p.NominalX(m.Names...)
	p.NominalY(m.Names...)
	return p, nil
}

// Save renders the matrix and writes it to path, creating missing
// parent directories first. The image format follows the file
// extension. Progress is printed for each observable side effect.
func Save(m correlation.Matrix, path string) error {
	p, err := Render(m)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
			fmt.Printf("Directory %s created.\n", dir)
		}
	}

	if err := p.Save(chartSize, chartSize, path); err != nil {
		return fmt.Errorf("save heatmap: %w", err)
	}
	fmt.Printf("Heatmap saved to %s.\n", path)
	return nil
}
