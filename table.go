package vartable

import (
	"errors"
	"fmt"

	"github.com/carbocation/pfx"
)

var (
	ErrNoTable        = errors.New("variant table is not available: no decomposition has completed")
	ErrLayoutMismatch = errors.New("tables do not share a column layout")
)

// ColumnType is the storage type of a table column. Cells hold string,
// int64, float64 or bool respectively, or nil for a missing value.
type ColumnType int

const (
	ColumnString ColumnType = iota
	ColumnInteger
	ColumnFloat
	ColumnBool
)

func (c ColumnType) String() string {
	switch c {
	case ColumnString:
		return "String"
	case ColumnInteger:
		return "Integer"
	case ColumnFloat:
		return "Float"
	case ColumnBool:
		return "Bool"

	default:
		return "Illegal selection"
	}
}

// Column is one named, typed column of a Table.
type Column struct {
	Name   string
	Type   ColumnType
	Values []interface{}
}

type columnSpec struct {
	Name string
	Type ColumnType
}

// Table is a columnar collection of decomposed rows. Its column set is fixed
// when it is created. Row order carries no meaning.
type Table struct {
	columns []*Column
	index   map[string]int
	nRows   int
}

func newTable(layout []columnSpec) *Table {
	t := &Table{
		columns: make([]*Column, len(layout)),
		index:   make(map[string]int, len(layout)),
	}
	for i, spec := range layout {
		t.columns[i] = &Column{Name: spec.Name, Type: spec.Type}
		t.index[spec.Name] = i
	}
	return t
}

// appendRow expects one cell per column, in column order.
func (t *Table) appendRow(row []interface{}) {
	for i, c := range t.columns {
		c.Values = append(c.Values, row[i])
	}
	t.nRows++
}

// Len is the number of rows.
func (t *Table) Len() int {
	return t.nRows
}

// Columns returns the table's columns in layout order. The columns are
// shared with the table and must not be modified.
func (t *Table) Columns() []*Column {
	return t.columns
}

// ColumnNames lists the column names in layout order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.columns[i], true
}

// Value returns the cell at row in the named column. Unknown columns and
// missing values both yield nil.
func (t *Table) Value(row int, name string) interface{} {
	c, ok := t.Column(name)
	if !ok {
		return nil
	}
	return c.Values[row]
}

// Row returns row i keyed by column name.
func (t *Table) Row(i int) (map[string]interface{}, error) {
	if i < 0 || i >= t.nRows {
		return nil, pfx.Err(fmt.Errorf("row %d is out of range [0, %d)", i, t.nRows))
	}

	out := make(map[string]interface{}, len(t.columns))
	for _, c := range t.columns {
		out[c.Name] = c.Values[i]
	}
	return out, nil
}

// Concat appends tables, in argument order, into a new table. Every table
// must have the same column layout.
func Concat(tables ...*Table) (*Table, error) {
	if len(tables) == 0 {
		return nil, pfx.Err(fmt.Errorf("no tables to concatenate"))
	}

	layout := make([]columnSpec, len(tables[0].columns))
	for i, c := range tables[0].columns {
		layout[i] = columnSpec{Name: c.Name, Type: c.Type}
	}

	total := 0
	for _, t := range tables {
		if !t.hasLayout(layout) {
			return nil, pfx.Err(ErrLayoutMismatch)
		}
		total += t.nRows
	}

	out := newTable(layout)
	for i, c := range out.columns {
		c.Values = make([]interface{}, 0, total)
		for _, t := range tables {
			c.Values = append(c.Values, t.columns[i].Values...)
		}
	}
	out.nRows = total

	return out, nil
}

func (t *Table) hasLayout(layout []columnSpec) bool {
	if len(t.columns) != len(layout) {
		return false
	}
	for i, c := range t.columns {
		if c.Name != layout[i].Name || c.Type != layout[i].Type {
			return false
		}
	}
	return true
}
