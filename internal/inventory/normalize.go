package inventory

// normalize.go converts loose export cells into numbers.
//
// Real exports mix typed numbers with text such as "1,234", "$12.50",
// "(40)", "85%", "NO SALE" or "-". None of these may abort an analysis, so
// every function here is total: anything unparseable becomes 0.

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numericRegex validates a cleaned numeric string: integers, decimals and
// scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// numericPrefixRegex finds a leading number in text such as "12 units".
var numericPrefixRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// sentinels are upper-cased tokens exports use for "nothing here".
var sentinels = map[string]bool{
	"NO SALE": true,
	"N/A":     true,
	"-":       true,
}

const (
	// PercentScaleTolerance is the largest bare number still read as a
	// fraction. Anything above is a whole-number percentage (85 -> 0.85).
	// The band above 1.0 admits slightly-over-100% fractions unscaled.
	PercentScaleTolerance = 1.1

	// DefaultOnTimeDeliveryRate applies when the dataset has no on-time
	// delivery column, which keeps unmeasured suppliers out of the risk bucket.
	DefaultOnTimeDeliveryRate = 1.0
)

// NormalizeNumeric converts a cell to a float. Text is trimmed and
// upper-cased; sentinels, blanks and unparseable text give 0. Currency
// symbols, thousands separators and accounting parentheses are accepted.
func NormalizeNumeric(v Value) float64 {
	switch v.Kind() {
	case KindNumber:
		f, _ := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	case KindText:
		return parseNumericText(v.String())
	default:
		return 0
	}
}

// NormalizePercentage converts a cell to a fraction.
//
//   - resolved=false: the column is absent from the whole dataset and
//     missing is returned for every row.
//   - text with a percent sign: the sign is dropped and the number divided by 100.
//   - a number above PercentScaleTolerance: divided by 100.
//   - anything else passes through NormalizeNumeric unchanged.
//
// Negative results are clamped to 0.
func NormalizePercentage(v Value, resolved bool, missing float64) float64 {
	if !resolved {
		return missing
	}

	var n float64
	if v.Kind() == KindText && strings.Contains(v.String(), "%") {
		n = parseNumericText(strings.ReplaceAll(v.String(), "%", "")) / 100
	} else {
		n = NormalizeNumeric(v)
		if n > PercentScaleTolerance {
			n /= 100
		}
	}

	if n < 0 {
		return 0
	}
	return n
}

// NormalizeText trims a cell and substitutes fallback when it is blank.
func NormalizeText(v Value, fallback string) string {
	s := strings.TrimSpace(v.String())
	if s == "" {
		return fallback
	}
	return s
}

func parseNumericText(s string) float64 {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" || sentinels[s] {
		return 0
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.NewReplacer("$", "", "€", "", "£", "", ",", "").Replace(s)
	s = strings.TrimSpace(s)

	var f float64
	if numericRegex.MatchString(s) {
		f, _ = strconv.ParseFloat(s, 64)
	} else if prefix := numericPrefixRegex.FindString(s); prefix != "" {
		f, _ = strconv.ParseFloat(prefix, 64)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if negative {
		return -f
	}
	return f
}
