package table

import (
	"math"
	"testing"

	"github.com/go-gota/gota/series"
)

func newTestTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := New(
		series.New([]string{"a", "b", "a"}, series.String, "colour"),
		series.New([]float64{1.5, 2.5, 3.5}, series.Float, "size"),
		series.New([]int{1, 2, 3}, series.Int, "count"),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return tbl
}

func TestNew(t *testing.T) {
	tbl := newTestTable(t)

	if got := tbl.NumRows(); got != 3 {
		t.Errorf("NumRows() = %d, want 3", got)
	}
	if got := tbl.NumCols(); got != 3 {
		t.Errorf("NumCols() = %d, want 3", got)
	}
	want := []string{"colour", "size", "count"}
	got := tbl.Names()
	for i, name := range want {
		if got[i] != name {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], name)
		}
	}
}

func TestNewEmpty(t *testing.T) {
	if _, err := New(); err == nil {
		t.Error("New() with no columns should fail")
	}
}

func TestRoles(t *testing.T) {
	tbl := newTestTable(t)

	tests := []struct {
		column string
		want   Role
	}{
		{"colour", Categorical},
		{"size", Numerical},
		{"count", Numerical},
	}

	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			got, err := tbl.Role(tt.column)
			if err != nil {
				t.Fatalf("Role(%q) error = %v", tt.column, err)
			}
			if got != tt.want {
				t.Errorf("Role(%q) = %v, want %v", tt.column, got, tt.want)
			}
		})
	}

	if _, err := tbl.Role("missing"); err == nil {
		t.Error("Role() on an unknown column should fail")
	}
}

func TestFloat(t *testing.T) {
	tbl := newTestTable(t)

	got, err := tbl.Float("size")
	if err != nil {
		t.Fatalf("Float() error = %v", err)
	}
	want := []float64{1.5, 2.5, 3.5}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Float()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if _, err := tbl.Float("colour"); err == nil {
		t.Error("Float() on a categorical column should fail")
	}
}

func TestSelectAndDrop(t *testing.T) {
	tbl := newTestTable(t)

	selected, err := tbl.Select([]string{"colour", "size"})
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if selected.NumCols() != 2 {
		t.Errorf("Select() NumCols = %d, want 2", selected.NumCols())
	}
	if _, err := tbl.Select([]string{"missing"}); err == nil {
		t.Error("Select() on an unknown column should fail")
	}

	dropped, err := tbl.Drop([]string{"count"})
	if err != nil {
		t.Fatalf("Drop() error = %v", err)
	}
	if dropped.HasColumn("count") {
		t.Error("Drop() left the dropped column in place")
	}
	if !tbl.HasColumn("count") {
		t.Error("Drop() modified the original table")
	}
}

func TestSelectPreservesIndex(t *testing.T) {
	tbl := newTestTable(t)
	idx := NewLabelIndex([]string{"r1", "r2", "r3"})
	indexed, err := tbl.WithIndex(idx)
	if err != nil {
		t.Fatalf("WithIndex() error = %v", err)
	}

	selected, err := indexed.Select([]string{"size"})
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if selected.Index() == nil {
		t.Error("Select() dropped the index")
	}
}

func TestWithIndexLengthMismatch(t *testing.T) {
	tbl := newTestTable(t)
	if _, err := tbl.WithIndex(NewLabelIndex([]string{"r1"})); err == nil {
		t.Error("WithIndex() with a short index should fail")
	}
}

func TestWithColumn(t *testing.T) {
	tbl := newTestTable(t)

	replaced, err := tbl.WithColumn(series.New([]float64{9, 9, 9}, series.Float, "size"))
	if err != nil {
		t.Fatalf("WithColumn() error = %v", err)
	}
	if replaced.NumCols() != 3 {
		t.Errorf("replacing a column changed NumCols to %d", replaced.NumCols())
	}
	got, _ := replaced.Float("size")
	if got[0] != 9 {
		t.Errorf("WithColumn() did not replace values, got %v", got[0])
	}

	appended, err := tbl.WithColumn(series.New([]float64{1, 2, 3}, series.Float, "extra"))
	if err != nil {
		t.Fatalf("WithColumn() error = %v", err)
	}
	if appended.NumCols() != 4 {
		t.Errorf("appending a column gave NumCols %d, want 4", appended.NumCols())
	}

	if _, err := tbl.WithColumn(series.New([]float64{1}, series.Float, "short")); err == nil {
		t.Error("WithColumn() with a short series should fail")
	}
}

func TestHasMissing(t *testing.T) {
	clean := newTestTable(t)
	if affected := clean.HasMissing(); len(affected) != 0 {
		t.Errorf("HasMissing() on a clean table = %v, want none", affected)
	}

	dirty, err := New(
		series.New([]float64{1, math.NaN(), 3}, series.Float, "size"),
		series.New([]string{"a", "b", "c"}, series.String, "colour"),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	affected := dirty.HasMissing()
	if len(affected) != 1 || affected[0] != "size" {
		t.Errorf("HasMissing() = %v, want [size]", affected)
	}
	if affected := dirty.HasMissing("colour"); len(affected) != 0 {
		t.Errorf("HasMissing(colour) = %v, want none", affected)
	}
}

func TestRecords(t *testing.T) {
	dirty, err := New(series.New([]float64{1.5, math.NaN()}, series.Float, "size"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	got, err := dirty.Records("size")
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	if got[1] != "NaN" {
		t.Errorf("Records() renders missing as %q, want NaN", got[1])
	}
}
