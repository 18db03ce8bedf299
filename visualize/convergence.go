// Package visualize renders optimizer traces with gonum/plot.
package visualize

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/descent/pkg/errors"
)

type plotConfig struct {
	title  string
	xLabel string
	yLabel string
	width  vg.Length
	height vg.Length
	color  color.Color
	logY   *bool
}

// PlotOption configures SaveConvergencePlot.
type PlotOption func(*plotConfig)

// WithTitle sets the plot title.
func WithTitle(title string) PlotOption {
	return func(c *plotConfig) { c.title = title }
}

// WithYLabel sets the label of the objective axis.
func WithYLabel(label string) PlotOption {
	return func(c *plotConfig) { c.yLabel = label }
}

// WithSize sets the canvas size.
func WithSize(width, height vg.Length) PlotOption {
	return func(c *plotConfig) {
		c.width = width
		c.height = height
	}
}

// WithLineColor sets the color of the objective line.
func WithLineColor(col color.Color) PlotOption {
	return func(c *plotConfig) { c.color = col }
}

// WithLogScale forces the objective axis to be log-scaled (true) or linear
// (false). By default it is log-scaled when every value is positive.
func WithLogScale(on bool) PlotOption {
	return func(c *plotConfig) { c.logY = &on }
}

// supportedFormats は plot.Save が拡張子から判定できる出力形式
var supportedFormats = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".svg": true,
	".pdf": true, ".eps": true, ".tif": true, ".tiff": true,
}

// ConvergencePlot builds a line chart of history against the iteration index.
func ConvergencePlot(history []float64, opts ...PlotOption) (*plot.Plot, error) {
	cfg, err := newConfig(history, opts)
	if err != nil {
		return nil, err
	}
	return buildPlot(history, cfg)
}

func buildPlot(history []float64, cfg *plotConfig) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = cfg.title
	p.X.Label.Text = cfg.xLabel
	p.Y.Label.Text = cfg.yLabel
	if *cfg.logY {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	pts := make(plotter.XYs, len(history))
	for i, v := range history {
		pts[i].X = float64(i)
		pts[i].Y = v
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, errors.Wrap(err, "visualize: build line")
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = cfg.color

	p.Add(plotter.NewGrid(), line)
	return p, nil
}

// SaveConvergencePlot writes the objective history of an optimization run to
// path. The image format follows the file extension (png, svg, pdf, ...).
func SaveConvergencePlot(history []float64, path string, opts ...PlotOption) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !supportedFormats[ext] {
		return errors.NewValidationError("path", "unsupported image format", path)
	}
	cfg, err := newConfig(history, opts)
	if err != nil {
		return err
	}
	p, err := buildPlot(history, cfg)
	if err != nil {
		return err
	}
	if err := p.Save(cfg.width, cfg.height, path); err != nil {
		return errors.Wrapf(err, "visualize: save %s", path)
	}
	return nil
}

func newConfig(history []float64, opts []PlotOption) (*plotConfig, error) {
	if len(history) == 0 {
		return nil, errors.NewValueError("ConvergencePlot", "history is empty")
	}
	positive := true
	for i, v := range history {
		if !errors.IsFinite(v) {
			return nil, errors.NewValueError("ConvergencePlot", fmt.Sprintf("history contains a non-finite value at iteration %d", i))
		}
		if v <= 0 {
			positive = false
		}
	}

	cfg := &plotConfig{
		title:  "Gradient descent convergence",
		xLabel: "iteration",
		yLabel: "cost",
		width:  6 * vg.Inch,
		height: 4 * vg.Inch,
		color:  color.RGBA{R: 31, G: 119, B: 180, A: 255},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logY == nil {
		cfg.logY = &positive
	} else if *cfg.logY && !positive {
		return nil, errors.NewValidationError("log_scale", "requires every value to be positive", false)
	}
	return cfg, nil
}
