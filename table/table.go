// Package table implements the tabular data model shared by all FeaGo
// transformers: an ordered collection of named, typed columns backed by a
// gota DataFrame, optionally aligned by a row index.
//
// Columns carry one of two roles derived from their series type: String and
// Bool series are categorical, Int and Float series are numerical. The role
// drives how transformers route each variable.
package table

import (
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/YuminosukeSato/feago/pkg/errors"
)

// Role classifies a column as categorical or numerical.
type Role int

const (
	// Numerical marks Int and Float columns.
	Numerical Role = iota
	// Categorical marks String and Bool columns.
	Categorical
)

// String returns the role name.
func (r Role) String() string {
	if r == Categorical {
		return "categorical"
	}
	return "numerical"
}

// Table is an in-memory collection of named, typed columns aligned by an
// optional row index. The zero value is not usable; construct tables with
// New or FromFrame.
type Table struct {
	df    dataframe.DataFrame
	index *Index
}

// New builds a table from the given series. All series must have the same
// length and distinct names.
func New(ss ...series.Series) (*Table, error) {
	if len(ss) == 0 {
		return nil, errors.NewModelError("table.New", "no columns", errors.ErrEmptyData)
	}
	df := dataframe.New(ss...)
	if df.Err != nil {
		return nil, errors.Wrap(df.Err, "table.New")
	}
	return &Table{df: df}, nil
}

// FromFrame wraps an existing gota DataFrame.
func FromFrame(df dataframe.DataFrame) (*Table, error) {
	if df.Err != nil {
		return nil, errors.Wrap(df.Err, "table.FromFrame")
	}
	if df.Ncol() == 0 {
		return nil, errors.NewModelError("table.FromFrame", "no columns", errors.ErrEmptyData)
	}
	return &Table{df: df}, nil
}

// WithIndex returns a copy of the table aligned by the given index. The
// index length must match the number of rows.
func (t *Table) WithIndex(idx *Index) (*Table, error) {
	if idx != nil && idx.Len() != t.NumRows() {
		return nil, errors.NewValueError("Table.WithIndex",
			"index length does not match the number of rows")
	}
	return &Table{df: t.df.Copy(), index: idx}, nil
}

// Frame returns the underlying gota DataFrame.
func (t *Table) Frame() dataframe.DataFrame {
	return t.df
}

// Index returns the row index, or nil when rows are aligned by position only.
func (t *Table) Index() *Index {
	return t.index
}

// Names returns the column names in order.
func (t *Table) Names() []string {
	return t.df.Names()
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	return t.df.Nrow()
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	return t.df.Ncol()
}

// HasColumn reports whether a column with the given name exists.
func (t *Table) HasColumn(name string) bool {
	for _, n := range t.df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// Column returns the named column.
func (t *Table) Column(name string) (series.Series, error) {
	if !t.HasColumn(name) {
		return series.Series{}, errors.NewValueError("Table.Column",
			"column '"+name+"' not found")
	}
	return t.df.Col(name), nil
}

// Role returns the role of the named column.
func (t *Table) Role(name string) (Role, error) {
	s, err := t.Column(name)
	if err != nil {
		return Numerical, err
	}
	return roleOf(s.Type()), nil
}

// Roles returns the role of every column, in column order.
func (t *Table) Roles() map[string]Role {
	roles := make(map[string]Role, t.df.Ncol())
	types := t.df.Types()
	for i, name := range t.df.Names() {
		roles[name] = roleOf(types[i])
	}
	return roles
}

func roleOf(tp series.Type) Role {
	if tp == series.String || tp == series.Bool {
		return Categorical
	}
	return Numerical
}

// Float returns the named column as a float slice. Missing entries come back
// as NaN. The column must be numerical.
func (t *Table) Float(name string) ([]float64, error) {
	s, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	if roleOf(s.Type()) != Numerical {
		return nil, errors.NewValueError("Table.Float",
			"column '"+name+"' is not numerical")
	}
	return s.Float(), nil
}

// Records returns the named column rendered as strings, missing entries as
// "NaN".
func (t *Table) Records(name string) ([]string, error) {
	s, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	return s.Records(), nil
}

// Select returns a new table holding only the named columns, preserving the
// index.
func (t *Table) Select(names []string) (*Table, error) {
	for _, n := range names {
		if !t.HasColumn(n) {
			return nil, errors.NewValueError("Table.Select",
				"column '"+n+"' not found")
		}
	}
	df := t.df.Select(names)
	if df.Err != nil {
		return nil, errors.Wrap(df.Err, "Table.Select")
	}
	return &Table{df: df, index: t.index}, nil
}

// Drop returns a new table without the named columns, preserving the index.
func (t *Table) Drop(names []string) (*Table, error) {
	for _, n := range names {
		if !t.HasColumn(n) {
			return nil, errors.NewValueError("Table.Drop",
				"column '"+n+"' not found")
		}
	}
	df := t.df.Drop(names)
	if df.Err != nil {
		return nil, errors.Wrap(df.Err, "Table.Drop")
	}
	return &Table{df: df, index: t.index}, nil
}

// WithColumn returns a copy of the table where the given series replaces the
// column of the same name, or is appended when no such column exists.
func (t *Table) WithColumn(s series.Series) (*Table, error) {
	if s.Len() != t.NumRows() {
		return nil, errors.NewValueError("Table.WithColumn",
			"series length does not match the number of rows")
	}
	df := t.df.Mutate(s)
	if df.Err != nil {
		return nil, errors.Wrap(df.Err, "Table.WithColumn")
	}
	return &Table{df: df, index: t.index}, nil
}

// Copy returns a deep copy of the table. The index is shared; indexes are
// immutable once attached.
func (t *Table) Copy() *Table {
	return &Table{df: t.df.Copy(), index: t.index}
}

// HasMissing reports whether any of the named columns contains a missing
// value, and returns the affected column names. With no names given, every
// column is checked.
func (t *Table) HasMissing(names ...string) []string {
	if len(names) == 0 {
		names = t.df.Names()
	}
	var affected []string
	for _, name := range names {
		if !t.HasColumn(name) {
			continue
		}
		s := t.df.Col(name)
		if columnHasMissing(s) {
			affected = append(affected, name)
		}
	}
	return affected
}

func columnHasMissing(s series.Series) bool {
	if s.HasNaN() {
		return true
	}
	if roleOf(s.Type()) == Numerical {
		for _, v := range s.Float() {
			if math.IsNaN(v) {
				return true
			}
		}
	}
	return false
}
