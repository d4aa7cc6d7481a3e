package chart

import (
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

const (
	figWidth  = 6.4 * vg.Inch
	figHeight = 4.8 * vg.Inch
	barWidth  = 48 // points
	headroom  = 1.1
)

// Plot lays c out as a gonum plot: one bar chart per category so each keeps
// its own color, value labels above the bars and a horizontal grid.
func (c Chart) Plot() (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = c.Title
	p.Y.Label.Text = c.YLabel

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	p.Add(grid)

	if len(c.Bars) > 0 {
		names := make([]string, len(c.Bars))
		xys := make(plotter.XYs, len(c.Bars))
		texts := make([]string, len(c.Bars))
		for i, b := range c.Bars {
			bars, err := plotter.NewBarChart(plotter.Values{b.Value}, vg.Points(barWidth))
			if err != nil {
				return nil, fmt.Errorf("bar %s: %w", b.Category, err)
			}
			bars.XMin = float64(i)
			bars.Color = parseHex(b.Color)
			bars.LineStyle.Width = 0
			p.Add(bars)

			names[i] = b.Category
			xys[i] = plotter.XY{X: float64(i), Y: b.Value}
			texts[i] = b.Label
		}

		labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
		if err != nil {
			return nil, fmt.Errorf("value labels: %w", err)
		}
		for i := range labels.TextStyle {
			labels.TextStyle[i].XAlign = text.XCenter
		}
		labels.Offset = vg.Point{Y: vg.Points(4)}
		p.Add(labels)
		p.NominalX(names...)
	}

	// An all-zero chart still gets a unit axis.
	top := c.Max()
	if top <= 0 {
		top = 1
	}
	p.X.Min = -0.5
	p.X.Max = float64(len(c.Bars)) - 0.5
	p.Y.Min = 0
	p.Y.Max = top * headroom
	return p, nil
}

// WriteSVG draws c as a standalone SVG document.
func (c Chart) WriteSVG(w io.Writer) error {
	p, err := c.Plot()
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(figWidth, figHeight, "svg")
	if err != nil {
		return fmt.Errorf("svg canvas: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

// parseHex reads a #RRGGBB color; anything else is black.
func parseHex(s string) color.Color {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "#"), 16, 32)
	if err != nil || len(s) != 7 {
		return color.Black
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
