package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is a parsed JSON value. It is one of Object, Array or Scalar.
// Values are immutable once parsed.
type Value interface {
	isValue()
}

// Member is a single key/value entry of a JSON object.
type Member struct {
	Key   string
	Value Value
}

// Object represents a JSON object. Members keep the order they had in the source document.
type Object []Member

// Array represents a JSON array.
type Array []Value

// ScalarKind identifies the JSON type of a Scalar.
type ScalarKind int

const (
	KindNull ScalarKind = iota
	KindBool
	KindNumber
	KindString
)

// Scalar is a JSON leaf. Raw holds the decoded string for strings, the
// literal text for numbers and "true"/"false" for booleans.
type Scalar struct {
	Kind ScalarKind
	Raw  string
}

func (Object) isValue() {}
func (Array) isValue()  {}
func (Scalar) isValue() {}

// Null returns the JSON null scalar.
func Null() Scalar { return Scalar{Kind: KindNull} }

// Bool returns a boolean scalar.
func Bool(b bool) Scalar { return Scalar{Kind: KindBool, Raw: strconv.FormatBool(b)} }

// Number returns a number scalar for the given JSON number literal.
func Number(literal string) Scalar { return Scalar{Kind: KindNumber, Raw: literal} }

// String returns a string scalar.
func String(s string) Scalar { return Scalar{Kind: KindString, Raw: s} }

// String renders the scalar the way it is written to the env file:
// null becomes "null", booleans "true"/"false", strings are verbatim and
// numbers use their shortest round-trip form.
func (s Scalar) String() string {
	switch s.Kind {
	case KindNull:
		return "null"
	case KindNumber:
		return formatNumber(s.Raw)
	default:
		return s.Raw
	}
}

// formatNumber renders a JSON number literal in its shortest form, with an
// exponent only for magnitudes >= 1e21 or < 1e-6 ("1.0" -> "1", "1e21" -> "1e+21").
func formatNumber(literal string) string {
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil && !math.IsInf(f, 0) {
		return literal
	}
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		// Go writes "1.5e-07"; drop the exponent's zero padding.
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Pair is a single flattened KEY=VALUE entry.
type Pair struct {
	Key   string
	Value string
}

// String implements fmt.Stringer
func (p Pair) String() string {
	return p.Key + "=" + p.Value
}

// Style is the naming convention used to render a flattened key.
type Style string

const (
	StyleSnake Style = "snake"
	StyleCamel Style = "camel"
	StyleDot   Style = "dot"
)

// DefaultStyle is used when no style is configured.
const DefaultStyle = StyleSnake

// Styles lists every supported style.
var Styles = []Style{StyleSnake, StyleCamel, StyleDot}

// ParseStyle lower-cases s and checks it against the supported styles.
func ParseStyle(s string) (Style, error) {
	style := Style(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Styles {
		if style == known {
			return style, nil
		}
	}
	return "", fmt.Errorf("invalid style '%s'. Allowed: snake, camel, dot", style)
}
