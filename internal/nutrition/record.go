// Package nutrition holds the food record model, numeric coercion of raw
// nutrient cells and the goal verdict classifier.
package nutrition

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Missing is stored in place of any cell that was empty in the source table.
const Missing = "N/A"

// Record is one row of the nutrition table. Nutrient fields keep the raw cell
// text so the summary can show exactly what the source said; use Macros for
// arithmetic.
type Record struct {
	Name     string `json:"name"`
	Source   string `json:"source"`
	Calories string `json:"calories"`
	Protein  string `json:"protein_g"`
	Fat      string `json:"fat_g"`
	Carbs    string `json:"carbs_g"`
}

// Macros are the coerced numeric nutrient values of a Record.
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein_g"`
	Fat      float64 `json:"fat_g"`
	Carbs    float64 `json:"carbs_g"`
}

// Macros coerces the four nutrient cells. Unparsable cells count as zero.
func (r Record) Macros() Macros {
	return Macros{
		Calories: Coerce(r.Calories),
		Protein:  Coerce(r.Protein),
		Fat:      Coerce(r.Fat),
		Carbs:    Coerce(r.Carbs),
	}
}

// Coerce converts a raw field value to a float64. Numbers pass through and
// numeric strings are parsed; everything else, including Missing, nil,
// malformed text and non-finite values, yields 0.
func Coerce(raw any) float64 {
	switch v := raw.(type) {
	case nil:
		return 0
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return float64(v)
	case int8:
		return float64(v)
	case int16:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint8:
		return float64(v)
	case uint16:
		return float64(v)
	case uint32:
		return float64(v)
	case uint64:
		return float64(v)
	case json.Number:
		return parse(string(v))
	case string:
		return parse(v)
	case []byte:
		return parse(string(v))
	}
	return 0
}

func parse(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == Missing {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return finite(f)
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
