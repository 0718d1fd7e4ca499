// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

// Column names the survey sheet is expected to carry.
const (
	ColQuestionID    = "QuestionID"
	ColQuestionText  = "QuestionText"
	ColResponseValue = "ResponseValue"
	ColGender        = "Gender"
	ColLocation      = "Location"
	ColMaritalStatus = "MaritalStatus"
	ColAge           = "Age"
)

// Header is the ordered set of column names shared by every row of a dataset.
type Header struct {
	names []string
	index map[string]int
}

func newHeader(names []string) *Header {
	h := &Header{names: names, index: make(map[string]int, len(names))}
	// Later columns win on duplicate names
	for i, n := range names {
		h.index[n] = i
	}
	return h
}

// Names returns a copy of the column names in sheet order.
func (h *Header) Names() []string {
	if h == nil {
		return nil
	}
	out := make([]string, len(h.names))
	copy(out, h.names)
	return out
}

// Field is one name/value pair of a row.
type Field struct {
	Name  string
	Value string
}

// Row is a single parsed record. Rows are never modified after parsing.
type Row struct {
	header *Header
	values []string
}

// Get returns the value of the named column. ok is false when the column does
// not exist or the record was too short to reach it.
func (r Row) Get(name string) (string, bool) {
	if r.header == nil {
		return "", false
	}
	i, exists := r.header.index[name]
	if !exists || i >= len(r.values) {
		return "", false
	}
	return r.values[i], true
}

// Value is Get without the presence flag.
func (r Row) Value(name string) string {
	v, _ := r.Get(name)
	return v
}

// Fields returns the present fields in header order.
func (r Row) Fields() []Field {
	if r.header == nil {
		return nil
	}
	n := min(len(r.values), len(r.header.names))
	out := make([]Field, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Field{Name: r.header.names[i], Value: r.values[i]})
	}
	return out
}

func (r Row) QuestionID() string    { return r.Value(ColQuestionID) }
func (r Row) QuestionText() string  { return r.Value(ColQuestionText) }
func (r Row) ResponseValue() string { return r.Value(ColResponseValue) }
func (r Row) Gender() string        { return r.Value(ColGender) }
func (r Row) Location() string      { return r.Value(ColLocation) }
func (r Row) MaritalStatus() string { return r.Value(ColMaritalStatus) }
func (r Row) Age() string           { return r.Value(ColAge) }

// Dataset is the full ordered collection of rows from one fetch.
type Dataset struct {
	header *Header
	rows   []Row
}

// Header returns the dataset's column names.
func (d *Dataset) Header() []string {
	if d == nil {
		return nil
	}
	return d.header.Names()
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.rows)
}

// Rows returns a copy of the row slice so callers cannot reorder the dataset.
func (d *Dataset) Rows() []Row {
	if d == nil {
		return nil
	}
	out := make([]Row, len(d.rows))
	copy(out, d.rows)
	return out
}

// Distinct returns the non-empty values observed for a column, in the order
// they first appear.
func (d *Dataset) Distinct(column string) []string {
	if d == nil {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, r := range d.rows {
		v := r.Value(column)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// Contains reports whether value was observed in column.
func (d *Dataset) Contains(column, value string) bool {
	if d == nil {
		return false
	}
	for _, r := range d.rows {
		if r.Value(column) == value {
			return true
		}
	}
	return false
}
