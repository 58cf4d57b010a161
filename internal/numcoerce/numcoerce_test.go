package numcoerce

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Empty string", "", "0"},
		{"Literal zero", "0", "0"},
		{"Dash placeholder", "-", "0"},
		{"Whitespace only", "   ", "0"},
		{"Simple decimal", "123.45", "123.45"},
		{"Integer", "100", "100"},
		{"Comma decimal separator", "45,00", "45"},
		{"European format", "1.234,56", "1234.56"},
		{"Anglo format", "1,234.56", "1234.56"},
		{"Currency suffix euro", "45,00 €", "45"},
		{"Currency prefix dollar", "$123.45", "123.45"},
		{"Currency code", "CHF 1234.50", "1234.5"},
		{"Negative hyphen", "-150", "-150"},
		{"Parentheses negative", "(150)", "-150"},
		{"Parentheses with currency", "(1.234,56 €)", "-1234.56"},
		{"Hyphen inside keeps negative", "1-50", "-150"},
		{"Unparsable text", "n/a", "0"},
		{"Garbage", "abc", "0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			expected, err := decimal.NewFromString(tc.expected)
			assert.NoError(t, err)
			result := Parse(tc.input)
			assert.True(t, expected.Equal(result),
				"Parse(%q) = %s, want %s", tc.input, result, expected)
		})
	}
}

func TestParseIsTotal(t *testing.T) {
	// Any string input must produce a value; none of these may panic.
	inputs := []string{"", "-", "(", ")", "()", "--", ",,", "..", "1,2,3.4.5", "\"", "€", "∞", "NaN"}
	for _, in := range inputs {
		assert.NotPanics(t, func() { Parse(in) }, "input %q", in)
	}
}

func TestFloat(t *testing.T) {
	assert.InDelta(t, 1234.56, Float("1.234,56"), 0.0001)
	assert.Zero(t, Float("no numbers here"))
}

func TestParseAbs(t *testing.T) {
	assert.True(t, decimal.NewFromInt(150).Equal(ParseAbs("(150)")))
	assert.True(t, decimal.NewFromInt(150).Equal(ParseAbs("-150")))
}
