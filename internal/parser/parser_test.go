package parser

import (
	"testing"

	"github.com/mcncl/envflat/internal/errors"
	"github.com/mcncl/envflat/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SimpleObject(t *testing.T) {
	value, err := Parse([]byte(`{"name": "John Doe", "age": 30, "isStudent": false, "city": null}`))
	require.NoError(t, err)

	expected := models.Object{
		{Key: "name", Value: models.String("John Doe")},
		{Key: "age", Value: models.Number("30")},
		{Key: "isStudent", Value: models.Bool(false)},
		{Key: "city", Value: models.Null()},
	}
	assert.Equal(t, expected, value)
}

func TestParse_KeepsMemberOrder(t *testing.T) {
	value, err := Parse([]byte(`{"zeta": 1, "alpha": 2, "mid": {"y": true, "b": false}}`))
	require.NoError(t, err)

	obj, ok := value.(models.Object)
	require.True(t, ok, "root is %T", value)
	require.Len(t, obj, 3)
	assert.Equal(t, "zeta", obj[0].Key)
	assert.Equal(t, "alpha", obj[1].Key)
	assert.Equal(t, "mid", obj[2].Key)

	nested, ok := obj[2].Value.(models.Object)
	require.True(t, ok)
	assert.Equal(t, "y", nested[0].Key)
	assert.Equal(t, "b", nested[1].Key)
}

func TestParse_DuplicateKeyKeepsFirstPositionLastValue(t *testing.T) {
	value, err := Parse([]byte(`{"a": 1, "b": 2, "a": 3}`))
	require.NoError(t, err)

	expected := models.Object{
		{Key: "a", Value: models.Number("3")},
		{Key: "b", Value: models.Number("2")},
	}
	assert.Equal(t, expected, value)
}

func TestParse_ArrayIndexKeysFirst(t *testing.T) {
	value, err := Parse([]byte(`{"b": "x", "2": "y", "-1": "n", "01": "z", "1": "w", "4294967295": "big", "0": "v", "2": "y2"}`))
	require.NoError(t, err)

	expected := models.Object{
		{Key: "0", Value: models.String("v")},
		{Key: "1", Value: models.String("w")},
		{Key: "2", Value: models.String("y2")},
		{Key: "b", Value: models.String("x")},
		{Key: "-1", Value: models.String("n")},
		{Key: "01", Value: models.String("z")},
		{Key: "4294967295", Value: models.String("big")},
	}
	assert.Equal(t, expected, value)
}

func TestParse_InvalidUTF8IsReplaced(t *testing.T) {
	value, err := Parse([]byte("{\"k\xff\": \"a\xffb\"}"))
	require.NoError(t, err)

	expected := models.Object{
		{Key: "k\uFFFD", Value: models.String("a\uFFFDb")},
	}
	assert.Equal(t, expected, value)
}

func TestParse_SimpleArray(t *testing.T) {
	value, err := Parse([]byte(`[1, "test", true, null, 3.14]`))
	require.NoError(t, err)

	expected := models.Array{
		models.Number("1"),
		models.String("test"),
		models.Bool(true),
		models.Null(),
		models.Number("3.14"),
	}
	assert.Equal(t, expected, value)
}

func TestParse_EmptyContainers(t *testing.T) {
	value, err := Parse([]byte(`{"a": {}, "b": []}`))
	require.NoError(t, err)

	expected := models.Object{
		{Key: "a", Value: models.Object{}},
		{Key: "b", Value: models.Array{}},
	}
	assert.Equal(t, expected, value)
}

func TestParse_RootScalars(t *testing.T) {
	tests := []struct {
		input    string
		expected models.Value
	}{
		{`42`, models.Number("42")},
		{`  -1.5e3  `, models.Number("-1.5e3")},
		{`"hello"`, models.String("hello")},
		{`"esc\"aped\né"`, models.String("esc\"aped\né")},
		{`true`, models.Bool(true)},
		{`null`, models.Null()},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			value, err := Parse([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		sentinel error
	}{
		{"empty", ``, errors.ErrEmptyBody},
		{"whitespace only", "  \n\t ", errors.ErrEmptyBody},
		{"not json", `<html>oops</html>`, errors.ErrInvalidJSON},
		{"truncated object", `{"a": 1`, errors.ErrInvalidJSON},
		{"truncated array", `[1, 2`, errors.ErrInvalidJSON},
		{"truncated string", `{"a": "b`, errors.ErrInvalidJSON},
		{"bad literal", `{"a": tru}`, errors.ErrInvalidJSON},
		{"bad number", `{"a": 1-2}`, errors.ErrInvalidJSON},
		{"leading zero", `01`, errors.ErrInvalidJSON},
		{"trailing garbage", `{"a": 1} x`, errors.ErrInvalidJSON},
		{"multiple values", `{"a": 1} {"b": 2}`, errors.ErrMultipleJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.ErrorIs(t, err, &errors.AppError{Type: errors.ErrorTypeParsing})
		})
	}
}
