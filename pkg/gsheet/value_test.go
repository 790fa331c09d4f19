package gsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertCell(t *testing.T) {
	tests := []struct {
		input    string
		expected Value
	}{
		{"TRUE", Bool(true)},
		{"FALSE", Bool(false)},
		{"True", String("True")},
		{"None", Null()},
		{BlankMarker, String("")},
		{"123", Int(123)},
		{"-100", Int(-100)},
		{" 7 ", Int(7)},
		{"123.45", String("123.45")},
		{"99999999999999999999", String("99999999999999999999")},
		{"hello", String("hello")},
		{"", String("")},
		{"[1,2,3]", List(Int(1), Int(2), Int(3))},
		{"[a, 2]", List(String("a"), Int(2))},
		{"[x, y z ]", List(String("x"), String("y z"))},
		{"1_000", Int(1000)},
		{"-2_5", Int(-25)},
		{"1__0", String("1__0")},
		{"_1", String("_1")},
		{"1_", String("1_")},
		{"0x_1", String("0x_1")},
		{"[1,,TRUE,None]", List(Int(1), Bool(true), Null())},
		{"[]", String("")},
		{"[,,]", String("")},
		{"[<blank>]", String("")},
		{"[", String("[")},
	}

	for _, tt := range tests {
		result := ConvertCell(tt.input)
		assert.Equal(t, tt.expected, result, "ConvertCell(%q)", tt.input)
	}
}

func TestConvertCellRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "42", "-3", "None", "plain text"} {
		assert.Equal(t, s, ConvertCell(s).String(), "round trip %q", s)
	}
	for _, v := range []Value{List(Int(1), Int(2)), List(String("a"), Int(-4))} {
		assert.Equal(t, v, ConvertCell(stringify(v.Interface())), "round trip %s", v)
	}
}

func TestValueIsEmpty(t *testing.T) {
	assert.True(t, String("").IsEmpty())
	assert.True(t, List().IsEmpty())
	assert.True(t, Table(nil).IsEmpty())
	assert.False(t, Null().IsEmpty())
	assert.False(t, Bool(false).IsEmpty())
	assert.False(t, Int(0).IsEmpty())
	assert.False(t, String(" ").IsEmpty())
}

func TestValueAccessors(t *testing.T) {
	v := Int(5)
	i, ok := v.Int()
	assert.True(t, ok)
	assert.Equal(t, int64(5), i)
	_, ok = v.Str()
	assert.False(t, ok)
	assert.Equal(t, KindInt, v.Kind())

	list := List(Int(1), String("a"))
	assert.Equal(t, "[1, a]", list.String())
	assert.Equal(t, []any{int64(1), "a"}, list.Interface())

	table := Table([]ResolvedRecord{{{Key: "k", Value: Bool(true)}}})
	records, ok := table.Table()
	assert.True(t, ok)
	assert.Len(t, records, 1)
	assert.Equal(t, `[{"k":true}]`, table.String())
	assert.Equal(t, []map[string]any{{"k": true}}, table.Interface())
}

func TestStringify(t *testing.T) {
	tests := []struct {
		input    any
		expected string
	}{
		{nil, ""},
		{"a", "a"},
		{true, "True"},
		{false, "False"},
		{1, "1"},
		{int64(-2), "-2"},
		{2.5, "2.5"},
		{float64(4), "4"},
		{Null(), "None"},
		{[]string{"a", "b"}, "[a, b]"},
		{[]any{1, "x", true}, "[1, x, True]"},
		{[2]int{3, 4}, "[3, 4]"},
		{[]byte("raw"), "raw"},
		{struct{ A int }{1}, "{1}"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, stringify(tt.input), "stringify(%#v)", tt.input)
	}
}
