// Package chart builds the macro breakdown bar chart for a food record and
// draws it as SVG.
package chart

import (
	"fmt"

	"github.com/korjavin/fitnourish/internal/nutrition"
)

const (
	Title  = "Macro Breakdown"
	YLabel = "Amount"
)

// Bar categories, in display order.
const (
	Calories      = "Calories"
	Protein       = "Protein"
	Fat           = "Fat"
	Carbohydrates = "Carbohydrates"
)

// Fixed per-category fill colors.
var colors = map[string]string{
	Calories:      "#FFC300",
	Protein:       "#28B463",
	Fat:           "#FF5733",
	Carbohydrates: "#5DADE2",
}

// Bar is one column of the chart. Label is the value text drawn above it.
type Bar struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
	Label    string  `json:"label"`
	Color    string  `json:"color"`
}

// Chart is a renderer-independent bar chart.
type Chart struct {
	Title  string `json:"title"`
	YLabel string `json:"y_label"`
	Bars   []Bar  `json:"bars"`
}

// Render builds the four-bar macro chart for r. Missing or unparsable cells
// produce zero-height bars.
func Render(r nutrition.Record) Chart {
	m := r.Macros()
	return Chart{
		Title:  Title,
		YLabel: YLabel,
		Bars: []Bar{
			newBar(Calories, m.Calories),
			newBar(Protein, m.Protein),
			newBar(Fat, m.Fat),
			newBar(Carbohydrates, m.Carbs),
		},
	}
}

func newBar(category string, v float64) Bar {
	return Bar{
		Category: category,
		Value:    v,
		Label:    fmt.Sprintf("%.1f", v),
		Color:    colors[category],
	}
}

// Heights returns the bar values in display order.
func (c Chart) Heights() []float64 {
	out := make([]float64, len(c.Bars))
	for i, b := range c.Bars {
		out[i] = b.Value
	}
	return out
}

// Max returns the tallest bar value, or 0 for an empty or all-negative chart.
func (c Chart) Max() float64 {
	var m float64
	for _, b := range c.Bars {
		if b.Value > m {
			m = b.Value
		}
	}
	return m
}
