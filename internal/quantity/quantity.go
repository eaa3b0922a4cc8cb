// Package quantity parses and formats free-text ingredient amounts.
package quantity

import (
	"math"
	"strconv"
	"strings"
)

// Tolerance is how close a value must be to an integer or a table fraction
// to be rendered as one.
const Tolerance = 0.01

// Fraction is a culinary fraction the formatter prefers over decimals.
type Fraction struct {
	Value float64
	Label string
}

// CommonFractions is checked in ascending order.
var CommonFractions = []Fraction{
	{Value: 1.0 / 8, Label: "1/8"},
	{Value: 1.0 / 5, Label: "1/5"},
	{Value: 1.0 / 4, Label: "1/4"},
	{Value: 1.0 / 3, Label: "1/3"},
	{Value: 3.0 / 8, Label: "3/8"},
	{Value: 2.0 / 5, Label: "2/5"},
	{Value: 1.0 / 2, Label: "1/2"},
	{Value: 3.0 / 5, Label: "3/5"},
	{Value: 5.0 / 8, Label: "5/8"},
	{Value: 2.0 / 3, Label: "2/3"},
	{Value: 3.0 / 4, Label: "3/4"},
	{Value: 4.0 / 5, Label: "4/5"},
	{Value: 7.0 / 8, Label: "7/8"},
}

// ParseAmount converts an amount such as "2", "0.5", "1/2" or "1 1/2" into
// a number. The boolean is false when the text is empty or not one of those
// forms; callers treat that as "not scalable", not as a failure.
func ParseAmount(text string) (float64, bool) {
	clean := strings.TrimSpace(text)
	if clean == "" {
		return 0, false
	}

	if strings.Contains(clean, " ") && strings.Contains(clean, "/") {
		if v, ok := parseMixed(clean); ok {
			return v, true
		}
	}

	if strings.Contains(clean, "/") {
		if v, ok := parseFraction(clean); ok {
			return v, true
		}
	}

	v, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseMixed(s string) (float64, bool) {
	parts := strings.Split(s, " ")
	if len(parts) != 2 {
		return 0, false
	}
	whole, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, false
	}
	frac, ok := parseFraction(parts[1])
	if !ok {
		return 0, false
	}
	return whole + frac, true
}

func parseFraction(s string) (float64, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return 0, false
	}
	num, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, false
	}
	den, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || den == 0 {
		return 0, false
	}
	return num / den, true
}

// FormatAmount renders a number for display, preferring whole numbers and
// common fractions ("1 1/2", "3/4") and falling back to one decimal place.
func FormatAmount(value float64) string {
	rounded := math.Round(value)
	if math.Abs(value-rounded) < Tolerance {
		if rounded == 0 {
			return "0"
		}
		return strconv.FormatFloat(rounded, 'f', 0, 64)
	}

	whole := math.Floor(value)
	rest := value - whole
	for _, f := range CommonFractions {
		if math.Abs(rest-f.Value) < Tolerance {
			if whole > 0 {
				return strconv.FormatFloat(whole, 'f', 0, 64) + " " + f.Label
			}
			if whole == 0 {
				return f.Label
			}
			break
		}
	}

	return strconv.FormatFloat(value, 'f', 1, 64)
}
