package gsheet

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// BlankMarker is the cell text meaning "explicitly empty, keep me".
const BlankMarker = "<blank>"

// Kind enumerates the variants of Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindString
	KindList
	// KindTable holds the records of a resolved cross-reference.
	KindTable
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindTable:
		return "table"
	default:
		return "unknown"
	}
}

// Value is a converted cell value. The zero Value is null.
type Value struct {
	kind  Kind
	b     bool
	i     int64
	s     string
	list  []Value
	table []ResolvedRecord
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool wraps b.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int wraps i.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// String wraps s.
func String(s string) Value { return Value{kind: KindString, s: s} }

// List wraps values.
func List(values ...Value) Value { return Value{kind: KindList, list: values} }

// Table wraps resolved records.
func Table(records []ResolvedRecord) Value { return Value{kind: KindTable, table: records} }

// Kind reports the variant held.
func (v Value) Kind() Kind { return v.kind }

// Bool returns the boolean and whether v holds one.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBool }

// Int returns the integer and whether v holds one.
func (v Value) Int() (int64, bool) { return v.i, v.kind == KindInt }

// Str returns the string and whether v holds one.
func (v Value) Str() (string, bool) { return v.s, v.kind == KindString }

// List returns the elements and whether v holds a list.
func (v Value) List() ([]Value, bool) { return v.list, v.kind == KindList }

// Table returns the nested records and whether v holds a table.
func (v Value) Table() ([]ResolvedRecord, bool) { return v.table, v.kind == KindTable }

// IsEmpty reports an empty string, list or table. Null, false and 0 are
// not empty.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case KindString:
		return v.s == ""
	case KindList:
		return len(v.list) == 0
	case KindTable:
		return len(v.table) == 0
	default:
		return false
	}
}

// String renders v as text: True/False, None, decimal integers, strings
// verbatim and lists as [a, b].
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "None"
	case KindBool:
		if v.b {
			return "True"
		}
		return "False"
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindString:
		return v.s
	case KindList:
		parts := make([]string, len(v.list))
		for i, e := range v.list {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindTable:
		b, _ := json.Marshal(v.table)
		return string(b)
	default:
		return ""
	}
}

// Interface returns v as plain Go data (nil, bool, int64, string, []any,
// []map[string]any).
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindString:
		return v.s
	case KindList:
		out := make([]any, len(v.list))
		for i, e := range v.list {
			out[i] = e.Interface()
		}
		return out
	case KindTable:
		out := make([]map[string]any, len(v.table))
		for i, r := range v.table {
			out[i] = r.Map()
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON encodes the plain form of v.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// ConvertCell converts the raw text of a cell that is not a cross-reference.
func ConvertCell(cell string) Value {
	switch {
	case cell == "TRUE":
		return Bool(true)
	case cell == "FALSE":
		return Bool(false)
	case cell == "None":
		return Null()
	case cell == BlankMarker:
		return String("")
	case len(cell) >= 2 && cell[0] == '[' && cell[len(cell)-1] == ']':
		var items []Value
		for _, part := range strings.Split(cell[1:len(cell)-1], ",") {
			if item := ConvertCell(strings.TrimSpace(part)); !item.IsEmpty() {
				items = append(items, item)
			}
		}
		if len(items) == 0 {
			return String("")
		}
		return List(items...)
	}
	if i, ok := parseInt(cell); ok {
		return Int(i)
	}
	return String(cell)
}

// parseInt reads a base 10 integer surrounded by optional spaces. Single
// underscores between digits are allowed as separators.
func parseInt(cell string) (int64, bool) {
	text := strings.TrimSpace(cell)
	if strings.Contains(text, "_") {
		for i := 0; i < len(text); i++ {
			if text[i] != '_' {
				continue
			}
			if i == 0 || i == len(text)-1 || !isDigit(text[i-1]) || !isDigit(text[i+1]) {
				return 0, false
			}
		}
		text = strings.ReplaceAll(text, "_", "")
	}
	i, err := strconv.ParseInt(text, 10, 64)
	return i, err == nil
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }
