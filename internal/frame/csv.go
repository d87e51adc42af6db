package frame

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Field declares one column a loader expects in a raw CSV extract. Source is
// matched against the normalized raw header; Name is the canonical column
// name in the resulting frame (defaults to Source when empty).
type Field struct {
	Source  string
	Name    string
	Kind    Kind
	Layouts []string // parse layouts for Date/DateTime fields, tried in order
}

// Schema is the set of required columns for a table. Raw columns not named
// by the schema are dropped. A missing required column fails the load.
type Schema struct {
	Fields []Field
}

// LoadResult carries a cleaned frame together with the load bookkeeping the
// validate command reports.
type LoadResult struct {
	Frame      *Frame
	RawRows    int
	Duplicates int
	Dropped    []string // normalized names of raw columns the schema dropped
}

// ReadCSVFile loads, types, and de-duplicates a CSV extract against a schema.
func ReadCSVFile(path string, name string, sch Schema) (*LoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()
	return ReadCSV(f, name, sch)
}

// ReadCSV reads a delimited extract into a typed frame. Header names are
// normalized to lowercase_snake before schema matching. Any cell that does
// not parse as its declared kind fails the load; empty numeric and string
// cells become nulls, empty date cells are treated as malformed.
func ReadCSV(r io.Reader, name string, sch Schema) (*LoadResult, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("table %s: empty input", name)
		}
		return nil, fmt.Errorf("table %s: read header: %w", name, err)
	}

	norm := make([]string, len(header))
	rawIdx := make(map[string]int, len(header))
	for i, h := range header {
		norm[i] = NormalizeName(h)
		rawIdx[norm[i]] = i
	}

	type binding struct {
		field Field
		src   int
		col   *Column
	}
	bindings := make([]binding, 0, len(sch.Fields))
	kept := make(map[string]struct{}, len(sch.Fields))
	for _, fld := range sch.Fields {
		src, ok := rawIdx[fld.Source]
		if !ok {
			return nil, fmt.Errorf("table %s: missing required column %s", name, fld.Source)
		}
		outName := fld.Name
		if outName == "" {
			outName = fld.Source
		}
		bindings = append(bindings, binding{field: fld, src: src, col: NewColumn(outName, fld.Kind)})
		kept[fld.Source] = struct{}{}
	}

	var dropped []string
	for _, n := range norm {
		if _, ok := kept[n]; !ok {
			dropped = append(dropped, n)
		}
	}

	res := &LoadResult{Dropped: dropped}
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("table %s: read row %d: %w", name, res.RawRows+1, err)
		}
		res.RawRows++
		for i := range bindings {
			b := &bindings[i]
			var raw string
			if b.src < len(rec) {
				raw = strings.TrimSpace(rec[b.src])
			}
			if err := appendCell(b.col, b.field, raw); err != nil {
				return nil, fmt.Errorf("table %s: row %d: %w", name, res.RawRows, err)
			}
		}
	}

	cols := make([]*Column, len(bindings))
	for i, b := range bindings {
		cols[i] = b.col
	}
	full, err := New(name, cols...)
	if err != nil {
		return nil, err
	}
	res.Frame = full.Dedup()
	res.Duplicates = full.NumRows() - res.Frame.NumRows()
	return res, nil
}

func appendCell(col *Column, fld Field, raw string) error {
	switch fld.Kind {
	case String:
		if raw == "" {
			col.AppendNull()
			return nil
		}
		col.AppendString(raw)
	case Float:
		if raw == "" {
			col.AppendNull()
			return nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("column %s: invalid numeric value %q", col.Name(), raw)
		}
		col.AppendFloat(v)
	case Date, DateTime:
		t, err := parseTime(raw, fld.Layouts)
		if err != nil {
			return fmt.Errorf("column %s: %w", col.Name(), err)
		}
		if fld.Kind == Date {
			t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
		col.AppendTime(t)
	default:
		return fmt.Errorf("column %s: unsupported kind %v", col.Name(), fld.Kind)
	}
	return nil
}

func parseTime(raw string, layouts []string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errors.New("empty date value")
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date value %q", raw)
}

// NormalizeName converts a raw header name to lowercase_snake: CamelCase
// boundaries become underscores, and runs of separators collapse to one.
func NormalizeName(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	prevLower := false
	prevSep := false
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			if prevLower && !prevSep {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			prevLower = false
			prevSep = false
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
			prevSep = false
		default:
			if !prevSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			prevLower = false
			prevSep = true
		}
	}
	return strings.Trim(b.String(), "_")
}
