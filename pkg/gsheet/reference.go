package gsheet

import (
	"bytes"
	"context"
	"fmt"
	"regexp"

	"github.com/goccy/go-json"
	"github.com/ukaji3/gsheet-go/pkg/gsheet/backend"
)

var referenceFormat = regexp.MustCompile(`^(?P<worksheet>[A-Za-z0-9_]+)!(?P<start>[A-Z0-9]+):(?P<end>[A-Z0-9]+)$`)

// Reference names a rectangular range of a worksheet in the same spreadsheet,
// written as "Worksheet!A1:C10".
type Reference struct {
	Worksheet string
	Start     Coord
	End       Coord
}

// ParseReference parses s. ok is false when s does not have the reference
// shape; err is set when it does but the cell addresses are invalid.
func ParseReference(s string) (ref Reference, ok bool, err error) {
	m := referenceFormat.FindStringSubmatch(s)
	if m == nil {
		return Reference{}, false, nil
	}
	ref.Worksheet = m[referenceFormat.SubexpIndex("worksheet")]
	if ref.Start, err = ParseAddr(m[referenceFormat.SubexpIndex("start")]); err != nil {
		return Reference{}, true, fmt.Errorf("%w %q: %v", ErrInvalidReference, s, err)
	}
	if ref.End, err = ParseAddr(m[referenceFormat.SubexpIndex("end")]); err != nil {
		return Reference{}, true, fmt.Errorf("%w %q: %v", ErrInvalidReference, s, err)
	}
	return ref, true, nil
}

// IsReference reports whether s has the cross-reference shape.
func IsReference(s string) bool {
	return referenceFormat.MatchString(s)
}

func (r Reference) String() string {
	start, _ := FormatAddr(r.Start)
	end, _ := FormatAddr(r.End)
	return fmt.Sprintf("%s!%s:%s", r.Worksheet, start, end)
}

// Entry is one header-keyed value of a ResolvedRecord.
type Entry struct {
	Key   string
	Value Value
}

// ResolvedRecord is one non-empty row of a resolved range, in header order.
type ResolvedRecord []Entry

// Get returns the value under key.
func (r ResolvedRecord) Get(key string) (Value, bool) {
	for _, e := range r {
		if e.Key == key {
			return e.Value, true
		}
	}
	return Value{}, false
}

// Map returns the record as plain Go data.
func (r ResolvedRecord) Map() map[string]any {
	m := make(map[string]any, len(r))
	for _, e := range r {
		m[e.Key] = e.Value.Interface()
	}
	return m
}

// MarshalJSON encodes the record as an object, keeping header order.
func (r ResolvedRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// set stores v under key, replacing an earlier value with the same key.
func (r ResolvedRecord) set(key string, v Value) ResolvedRecord {
	for i := range r {
		if r[i].Key == key {
			r[i].Value = v
			return r
		}
	}
	return append(r, Entry{Key: key, Value: v})
}

// ResolveRange resolves a cross-reference string against the active
// spreadsheet. A string that is not a reference yields no records.
// The active worksheet is left unchanged.
func (s *Session) ResolveRange(ctx context.Context, ref string) ([]ResolvedRecord, error) {
	if err := s.requireWorksheet(); err != nil {
		return nil, err
	}
	parsed, ok, err := ParseReference(ref)
	if err != nil || !ok {
		return nil, err
	}
	return s.ResolveReference(ctx, parsed)
}

// ResolveReference reads ref's rows keyed by row 1 of its worksheet,
// expanding nested references recursively. Only the row span of ref is
// used; every row is read in full. A reference leading back to itself
// returns ErrReferenceCycle.
func (s *Session) ResolveReference(ctx context.Context, ref Reference) ([]ResolvedRecord, error) {
	if err := s.requireWorksheet(); err != nil {
		return nil, err
	}
	r := &resolver{session: s, visiting: make(map[string]bool)}
	return r.resolve(ctx, ref)
}

// resolver expands references against explicit worksheet handles. visiting
// holds the references on the current recursion path.
type resolver struct {
	session  *Session
	visiting map[string]bool
}

func (r *resolver) resolve(ctx context.Context, ref Reference) ([]ResolvedRecord, error) {
	key := ref.String()
	if r.visiting[key] {
		return nil, fmt.Errorf("%w: %s", ErrReferenceCycle, key)
	}
	r.visiting[key] = true
	defer delete(r.visiting, key)

	ws, err := r.session.lookupWorksheet(ctx, WorksheetByTitle(ref.Worksheet))
	if err != nil {
		return nil, err
	}
	headers, err := ws.Row(ctx, 1)
	if err != nil {
		return nil, err
	}

	// Row 1 holds the headers and is never returned as data.
	var records []ResolvedRecord
	for row := max(ref.Start.Row, 2); row <= ref.End.Row; row++ {
		record, err := r.resolveRow(ctx, ws, headers, row)
		if err != nil {
			return nil, err
		}
		if len(record) > 0 {
			records = append(records, record)
		}
	}
	r.session.log.Debug().Str("reference", key).Int("records", len(records)).Msg("Resolved reference")
	return records, nil
}

func (r *resolver) resolveRow(ctx context.Context, ws backend.Worksheet, headers []string, row int) (ResolvedRecord, error) {
	cells, err := ws.Row(ctx, row)
	if err != nil {
		return nil, err
	}

	var record ResolvedRecord
	for col, cell := range cells {
		var v Value
		nested, ok, err := ParseReference(cell)
		switch {
		case err != nil:
			return nil, err
		case ok:
			table, err := r.resolve(ctx, nested)
			if err != nil {
				return nil, err
			}
			v = Table(table)
		default:
			v = ConvertCell(cell)
		}

		if cell != BlankMarker && v.IsEmpty() {
			continue
		}
		if col >= len(headers) {
			r.session.log.Debug().Str("worksheet", ws.Title()).Int("row", row).Int("col", col+1).Msg("Skipping cell without header")
			continue
		}
		record = record.set(headers[col], v)
	}
	return record, nil
}
