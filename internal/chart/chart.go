// Package chart draws the report's line charts as PNG images.
package chart

import (
	"bytes"
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Default picture size, fitting the text width of an A4 page.
const (
	DefaultWidth  = 6 * vg.Inch
	DefaultHeight = 4 * vg.Inch
)

var ErrNoSeries = errors.New("chart: no series")

// Series is one named line.
type Series struct {
	Name   string
	X, Y   []float64
	Dashed bool
}

// Chart is a line chart with a legend.
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	Series []Series

	// Marks are vertical reference lines (e.g. the break-even volume).
	Marks []Mark
}

// Mark is a labelled vertical line at X.
type Mark struct {
	Name string
	X    float64
}

// Validate reports a chart that cannot be drawn.
func (c Chart) Validate() error {
	if len(c.Series) == 0 {
		return ErrNoSeries
	}
	for _, s := range c.Series {
		if len(s.X) != len(s.Y) {
			return fmt.Errorf("chart: series %q has %d x and %d y values", s.Name, len(s.X), len(s.Y))
		}
		if len(s.X) == 0 {
			return fmt.Errorf("chart: series %q is empty", s.Name)
		}
	}
	return nil
}

// PNG renders the chart at the given size.
func (c Chart) PNG(width, height vg.Length) ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel
	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(plotter.NewGrid())

	ymin, ymax := 0.0, 0.0
	for i, s := range c.Series {
		xys := make(plotter.XYs, len(s.X))
		for j := range s.X {
			xys[j].X, xys[j].Y = s.X[j], s.Y[j]
			ymin, ymax = min(ymin, s.Y[j]), max(ymax, s.Y[j])
		}
		l, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("chart: series %q: %w", s.Name, err)
		}
		l.Color = plotutil.Color(i)
		l.Width = vg.Points(1.5)
		if s.Dashed {
			l.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
		}
		p.Add(l)
		p.Legend.Add(s.Name, l)
	}

	for i, m := range c.Marks {
		l, err := plotter.NewLine(plotter.XYs{{X: m.X, Y: ymin}, {X: m.X, Y: ymax}})
		if err != nil {
			return nil, fmt.Errorf("chart: mark %q: %w", m.Name, err)
		}
		l.Color = plotutil.Color(len(c.Series) + i)
		l.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
		p.Add(l)
		if m.Name != "" {
			p.Legend.Add(m.Name, l)
		}
	}
	p.Y.Min = min(p.Y.Min, 0)

	canvas := vgimg.New(width, height)
	p.Draw(draw.New(canvas))
	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: canvas}).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("chart: encode png: %w", err)
	}
	return buf.Bytes(), nil
}
