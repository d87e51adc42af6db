package frame

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind is the declared type of a column. Every cell in a column is either a
// value of that kind or an explicit null; there is no implicit coercion.
type Kind int

const (
	String Kind = iota
	Float
	Date     // day precision
	DateTime // day + time-of-day precision
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Float:
		return "float"
	case Date:
		return "date"
	case DateTime:
		return "datetime"
	}
	return "unknown"
}

// Column is a typed column with a per-cell null tag.
type Column struct {
	name string
	kind Kind

	strs  []string
	nums  []float64
	times []time.Time
	null  []bool
}

// NewColumn returns an empty column of the given kind.
func NewColumn(name string, kind Kind) *Column {
	return &Column{name: name, kind: kind}
}

func (c *Column) Name() string { return c.name }
func (c *Column) Kind() Kind   { return c.kind }
func (c *Column) Len() int     { return len(c.null) }

// IsNull reports whether the cell at row i is null.
func (c *Column) IsNull(i int) bool { return c.null[i] }

// Str returns the string cell at row i. Only valid for String columns with a
// non-null cell.
func (c *Column) Str(i int) string { return c.strs[i] }

// Float returns the numeric cell at row i.
func (c *Column) Float(i int) float64 { return c.nums[i] }

// Time returns the date or datetime cell at row i.
func (c *Column) Time(i int) time.Time { return c.times[i] }

func (c *Column) AppendString(v string) {
	c.strs = append(c.strs, v)
	c.null = append(c.null, false)
}

func (c *Column) AppendFloat(v float64) {
	c.nums = append(c.nums, v)
	c.null = append(c.null, false)
}

func (c *Column) AppendTime(v time.Time) {
	c.times = append(c.times, v)
	c.null = append(c.null, false)
}

func (c *Column) AppendNull() {
	switch c.kind {
	case String:
		c.strs = append(c.strs, "")
	case Float:
		c.nums = append(c.nums, 0)
	case Date, DateTime:
		c.times = append(c.times, time.Time{})
	}
	c.null = append(c.null, true)
}

// appendFrom copies the cell at row i of src onto the end of c. The columns
// must share a kind.
func (c *Column) appendFrom(src *Column, i int) {
	if src.null[i] {
		c.AppendNull()
		return
	}
	switch c.kind {
	case String:
		c.AppendString(src.strs[i])
	case Float:
		c.AppendFloat(src.nums[i])
	case Date, DateTime:
		c.AppendTime(src.times[i])
	}
}

// cellKey renders the cell at row i as a string that distinguishes values,
// kinds, and nulls. Used for row fingerprints and join keys.
func (c *Column) cellKey(i int) string {
	if c.null[i] {
		return "\x00"
	}
	switch c.kind {
	case String:
		return "s:" + c.strs[i]
	case Float:
		return "f:" + strconv.FormatFloat(c.nums[i], 'g', -1, 64)
	case Date, DateTime:
		return "t:" + c.times[i].Format(time.RFC3339Nano)
	}
	return ""
}

// Frame is an immutable column-oriented table. Operations return new frames;
// nothing mutates in place after construction.
type Frame struct {
	name   string
	cols   []*Column
	byName map[string]int
	nrows  int
}

// New builds a frame from columns of equal length. The name is used in error
// messages only.
func New(name string, cols ...*Column) (*Frame, error) {
	f := &Frame{name: name, byName: make(map[string]int, len(cols))}
	for i, c := range cols {
		if i == 0 {
			f.nrows = c.Len()
		} else if c.Len() != f.nrows {
			return nil, fmt.Errorf("frame %s: column %s has %d rows, want %d", name, c.name, c.Len(), f.nrows)
		}
		if _, dup := f.byName[c.name]; dup {
			return nil, fmt.Errorf("frame %s: duplicate column %s", name, c.name)
		}
		f.byName[c.name] = i
		f.cols = append(f.cols, c)
	}
	return f, nil
}

func (f *Frame) Name() string { return f.name }
func (f *Frame) NumRows() int { return f.nrows }
func (f *Frame) NumCols() int { return len(f.cols) }

// Names returns the column names in declaration order.
func (f *Frame) Names() []string {
	out := make([]string, len(f.cols))
	for i, c := range f.cols {
		out[i] = c.name
	}
	return out
}

// Col returns the named column.
func (f *Frame) Col(name string) (*Column, error) {
	i, ok := f.byName[name]
	if !ok {
		return nil, fmt.Errorf("frame %s: no column %s", f.name, name)
	}
	return f.cols[i], nil
}

// HasCol reports whether the frame has the named column.
func (f *Frame) HasCol(name string) bool {
	_, ok := f.byName[name]
	return ok
}

// WithColumn returns a new frame with col appended. The column length must
// match the frame's row count.
func (f *Frame) WithColumn(col *Column) (*Frame, error) {
	if col.Len() != f.nrows {
		return nil, fmt.Errorf("frame %s: column %s has %d rows, want %d", f.name, col.name, col.Len(), f.nrows)
	}
	cols := make([]*Column, 0, len(f.cols)+1)
	cols = append(cols, f.cols...)
	cols = append(cols, col)
	return New(f.name, cols...)
}

// Rename returns a new frame with one column renamed.
func (f *Frame) Rename(old, new string) (*Frame, error) {
	i, ok := f.byName[old]
	if !ok {
		return nil, fmt.Errorf("frame %s: no column %s", f.name, old)
	}
	cols := make([]*Column, len(f.cols))
	copy(cols, f.cols)
	renamed := *f.cols[i]
	renamed.name = new
	cols[i] = &renamed
	return New(f.name, cols...)
}

// rowKey builds a fingerprint of an entire row across the given column
// indexes.
func (f *Frame) rowKey(row int, colIdx []int) string {
	var b strings.Builder
	for _, ci := range colIdx {
		b.WriteString(f.cols[ci].cellKey(row))
		b.WriteByte('\x1f')
	}
	return b.String()
}

// Dedup returns a new frame with exact-duplicate rows removed, keeping the
// first occurrence. Two rows are duplicates only if every cell matches,
// including null tags. Applying Dedup to its own output is a no-op.
func (f *Frame) Dedup() *Frame {
	all := make([]int, len(f.cols))
	for i := range all {
		all[i] = i
	}
	seen := make(map[string]struct{}, f.nrows)
	keep := make([]int, 0, f.nrows)
	for r := 0; r < f.nrows; r++ {
		k := f.rowKey(r, all)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keep = append(keep, r)
	}
	return f.takeRows(keep)
}

// takeRows materializes a new frame holding the given rows in order.
func (f *Frame) takeRows(rows []int) *Frame {
	cols := make([]*Column, len(f.cols))
	for i, c := range f.cols {
		nc := NewColumn(c.name, c.kind)
		for _, r := range rows {
			nc.appendFrom(c, r)
		}
		cols[i] = nc
	}
	out, _ := New(f.name, cols...)
	return out
}

// FloatValues collects the non-null values of a Float column.
func (f *Frame) FloatValues(name string) ([]float64, error) {
	c, err := f.Col(name)
	if err != nil {
		return nil, err
	}
	if c.kind != Float {
		return nil, fmt.Errorf("frame %s: column %s is %s, want float", f.name, name, c.kind)
	}
	out := make([]float64, 0, c.Len())
	for i := 0; i < c.Len(); i++ {
		if !c.null[i] {
			out = append(out, c.nums[i])
		}
	}
	return out, nil
}
