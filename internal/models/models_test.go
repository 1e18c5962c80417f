package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalar_String(t *testing.T) {
	tests := []struct {
		name     string
		scalar   Scalar
		expected string
	}{
		{"null", Null(), "null"},
		{"true", Bool(true), "true"},
		{"false", Bool(false), "false"},
		{"string", String("a b=c"), "a b=c"},
		{"empty string", String(""), ""},
		{"integer", Number("42"), "42"},
		{"negative", Number("-7"), "-7"},
		{"trailing zero", Number("1.0"), "1"},
		{"fraction", Number("3.140"), "3.14"},
		{"exponent literal", Number("1.5e3"), "1500"},
		{"negative zero", Number("-0"), "0"},
		{"large", Number("1e21"), "1e+21"},
		{"just below large", Number("123456789012345678901"), "123456789012345680000"},
		{"small", Number("0.000001"), "0.000001"},
		{"tiny", Number("0.00000015"), "1.5e-7"},
		{"negative tiny", Number("-1e-10"), "-1e-10"},
		{"overflow", Number("1e400"), "Infinity"},
		{"negative overflow", Number("-1e400"), "-Infinity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.scalar.String())
		})
	}
}

func TestPair_String(t *testing.T) {
	assert.Equal(t, "a_b=1", Pair{Key: "a_b", Value: "1"}.String())
}

func TestParseStyle(t *testing.T) {
	for _, raw := range []string{"snake", "SNAKE", " Snake "} {
		style, err := ParseStyle(raw)
		require.NoError(t, err)
		assert.Equal(t, StyleSnake, style)
	}

	style, err := ParseStyle("Dot")
	require.NoError(t, err)
	assert.Equal(t, StyleDot, style)

	_, err = ParseStyle("kebab")
	assert.EqualError(t, err, "invalid style 'kebab'. Allowed: snake, camel, dot")
}
