package parser

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/mcncl/envflat/internal/errors"
	"github.com/mcncl/envflat/internal/models"

	jsoniter "github.com/json-iterator/go"
)

// api only drives the Iterator; values are built by hand so object member order survives.
var api = jsoniter.Config{UseNumber: true}.Froze()

var numberLiteral = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// Parse decodes a single JSON document into a models.Value.
//
// Object members follow JavaScript property order: array-index keys first in
// ascending numeric order, then the remaining keys in document order. A key
// repeated inside one object keeps its first position and takes the last value.
// Invalid UTF-8 in strings is replaced with U+FFFD.
func Parse(data []byte) (models.Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.NewParsingError("Invalid JSON format", errors.ErrEmptyBody)
	}

	iter := jsoniter.ParseBytes(api, data)
	root := readValue(iter)
	if failed(iter) {
		return nil, errors.NewParsingError("Invalid JSON format", fmt.Errorf("%w: %v", errors.ErrInvalidJSON, iter.Error))
	}

	// Only whitespace may follow the root value.
	next := iter.WhatIsNext()
	switch {
	case stderrors.Is(iter.Error, io.EOF):
		return root, nil
	case next != jsoniter.InvalidValue:
		return nil, errors.NewParsingError("Invalid JSON format", errors.ErrMultipleJSON)
	default:
		return nil, errors.NewParsingError("Invalid JSON format", fmt.Errorf("%w: invalid trailing data after first JSON value", errors.ErrInvalidJSON))
	}
}

func readValue(iter *jsoniter.Iterator) models.Value {
	switch iter.WhatIsNext() {
	case jsoniter.ObjectValue:
		return readObject(iter)
	case jsoniter.ArrayValue:
		arr := models.Array{}
		iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			arr = append(arr, readValue(it))
			return !failed(it)
		})
		return arr
	case jsoniter.StringValue:
		return models.String(strings.ToValidUTF8(iter.ReadString(), "\uFFFD"))
	case jsoniter.NumberValue:
		literal := iter.ReadNumber().String()
		if !numberLiteral.MatchString(literal) {
			iter.ReportError("readValue", fmt.Sprintf("invalid number %q", literal))
			return nil
		}
		return models.Number(literal)
	case jsoniter.BoolValue:
		return models.Bool(iter.ReadBool())
	case jsoniter.NilValue:
		iter.ReadNil()
		return models.Null()
	default:
		iter.ReportError("readValue", "expect a JSON value")
		return nil
	}
}

func readObject(iter *jsoniter.Iterator) models.Object {
	obj := models.Object{}
	index := make(map[string]int)
	iter.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
		value := readValue(it)
		key = strings.ToValidUTF8(key, "\uFFFD")
		if i, seen := index[key]; seen {
			obj[i].Value = value
		} else {
			index[key] = len(obj)
			obj = append(obj, models.Member{Key: key, Value: value})
		}
		return !failed(it)
	})

	sort.SliceStable(obj, func(i, j int) bool {
		a, aIndex := arrayIndex(obj[i].Key)
		b, bIndex := arrayIndex(obj[j].Key)
		if aIndex && bIndex {
			return a < b
		}
		return aIndex && !bIndex
	})
	return obj
}

// maxArrayIndex is 2^32-1. Keys below it in canonical decimal form are array indices.
const maxArrayIndex = 1<<32 - 1

func arrayIndex(key string) (uint64, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}
	n, err := strconv.ParseUint(key, 10, 64)
	if err != nil || n >= maxArrayIndex {
		return 0, false
	}
	return n, true
}

// failed reports a real decode error. io.EOF alone is left behind by a number
// that ends the input and is resolved by the enclosing reader.
func failed(iter *jsoniter.Iterator) bool {
	return iter.Error != nil && !stderrors.Is(iter.Error, io.EOF)
}
