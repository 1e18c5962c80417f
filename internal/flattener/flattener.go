package flattener

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mcncl/envflat/internal/models"
)

var separators = strings.NewReplacer(".", "_", "-", "_")

// Flatten walks value depth-first in pre-order and returns one pair per scalar leaf.
// Object members are visited in their stored order and array elements by ascending index.
// Keys are not deduplicated: two paths that render to the same key both appear, in
// traversal order, so the later assignment wins when the env file is loaded.
func Flatten(value models.Value, style models.Style) []models.Pair {
	var pairs []models.Pair
	walk(value, nil, func(path []string, leaf models.Scalar) {
		pairs = append(pairs, models.Pair{Key: Key(path, style), Value: leaf.String()})
	})
	return pairs
}

// Paths returns the raw path segment sequence of every scalar leaf, in the same
// order Flatten emits pairs. It does not depend on any naming style.
func Paths(value models.Value) [][]string {
	var paths [][]string
	walk(value, nil, func(path []string, _ models.Scalar) {
		paths = append(paths, path)
	})
	return paths
}

func walk(value models.Value, path []string, emit func([]string, models.Scalar)) {
	switch v := value.(type) {
	case models.Object:
		for _, member := range v {
			walk(member.Value, extend(path, member.Key), emit)
		}
	case models.Array:
		for i, element := range v {
			walk(element, extend(path, strconv.Itoa(i)), emit)
		}
	case models.Scalar:
		emit(path, v)
	}
}

// extend returns a copy of path with segment appended, so sibling branches never share a backing array.
func extend(path []string, segment string) []string {
	next := make([]string, len(path), len(path)+1)
	copy(next, path)
	return append(next, segment)
}

// Tokenize normalizes one raw path segment: "." and "-" become "_", the result is
// split on "_", empty tokens are dropped and every token is lower-cased.
func Tokenize(segment string) []string {
	parts := strings.Split(separators.Replace(segment), "_")
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		tokens = append(tokens, strings.ToLower(part))
	}
	return tokens
}

// Key renders a path segment sequence as a single key. The tokens of all segments are
// concatenated into one list before joining.
func Key(path []string, style models.Style) string {
	var tokens []string
	for _, segment := range path {
		tokens = append(tokens, Tokenize(segment)...)
	}
	return Join(tokens, style)
}

// Join renders tokens using style. Unknown styles fall back to snake.
func Join(tokens []string, style models.Style) string {
	switch style {
	case models.StyleCamel:
		return joinCamel(tokens)
	case models.StyleDot:
		return strings.Join(tokens, ".")
	default:
		return strings.Join(tokens, "_")
	}
}

func joinCamel(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(strings.ToLower(tokens[0]))
	for _, token := range tokens[1:] {
		b.WriteString(capitalize(strings.ToLower(token)))
	}
	return b.String()
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
