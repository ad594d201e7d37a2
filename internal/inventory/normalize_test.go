package inventory

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeNumeric(t *testing.T) {
	tests := []struct {
		name  string
		input Value
		want  float64
	}{
		{name: "absent", input: Absent(), want: 0},
		{name: "number passes through", input: Number(42.5), want: 42.5},
		{name: "negative number", input: Number(-3), want: -3},
		{name: "NaN becomes zero", input: Number(math.NaN()), want: 0},
		{name: "infinity becomes zero", input: Number(math.Inf(1)), want: 0},
		{name: "plain text integer", input: Text("120"), want: 120},
		{name: "padded decimal", input: Text("  3.75 "), want: 3.75},
		{name: "NO SALE sentinel", input: Text("NO SALE"), want: 0},
		{name: "sentinel is case insensitive", input: Text(" no sale "), want: 0},
		{name: "N/A sentinel", input: Text("n/a"), want: 0},
		{name: "dash sentinel", input: Text("-"), want: 0},
		{name: "blank text", input: Text("   "), want: 0},
		{name: "garbage text", input: Text("abc"), want: 0},
		{name: "thousands separator", input: Text("1,234"), want: 1234},
		{name: "currency", input: Text("$1,250.50"), want: 1250.5},
		{name: "accounting negative", input: Text("(40)"), want: -40},
		{name: "scientific notation", input: Text("1.5e2"), want: 150},
		{name: "leading number with unit", input: Text("12 units"), want: 12},
		{name: "overflow becomes zero", input: Text("1e999"), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, NormalizeNumeric(tt.input), 1e-9)
		})
	}
}

func TestNormalizePercentage(t *testing.T) {
	tests := []struct {
		name     string
		input    Value
		resolved bool
		missing  float64
		want     float64
	}{
		{name: "percent text", input: Text("85%"), resolved: true, want: 0.85},
		{name: "percent text with spaces", input: Text(" 92.5 % "), resolved: true, want: 0.925},
		{name: "hundred percent text", input: Text("100%"), resolved: true, want: 1.0},
		{name: "whole number is rescaled", input: Number(85), resolved: true, want: 0.85},
		{name: "whole number text is rescaled", input: Text("70"), resolved: true, want: 0.7},
		{name: "fraction is kept", input: Number(0.85), resolved: true, want: 0.85},
		{name: "exactly one is kept", input: Number(1), resolved: true, want: 1},
		{name: "tolerance edge is kept", input: Number(1.1), resolved: true, want: 1.1},
		{name: "just above tolerance is rescaled", input: Number(1.2), resolved: true, want: 0.012},
		{name: "absent cell in resolved column", input: Absent(), resolved: true, missing: 1, want: 0},
		{name: "sentinel in resolved column", input: Text("N/A"), resolved: true, want: 0},
		{name: "unresolved column uses missing default", input: Text("50%"), resolved: false, missing: 1, want: 1},
		{name: "unresolved column with zero default", input: Number(0.9), resolved: false, missing: 0, want: 0},
		{name: "negative is clamped", input: Text("-5%"), resolved: true, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePercentage(tt.input, tt.resolved, tt.missing)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "SKU-1", NormalizeText(Text("  SKU-1 "), UnknownText))
	assert.Equal(t, UnknownText, NormalizeText(Text("   "), UnknownText))
	assert.Equal(t, UnknownSupplier, NormalizeText(Absent(), UnknownSupplier))
	assert.Equal(t, "10042", NormalizeText(Number(10042), UnknownText))
}
