package table

import (
	"sync"
	"testing"
	"time"
)

func TestLabelIndex(t *testing.T) {
	tests := []struct {
		name        string
		labels      []string
		wantMissing bool
		wantUnique  bool
	}{
		{"clean", []string{"a", "b", "c"}, false, true},
		{"missing entry", []string{"a", "", "c"}, true, true},
		{"duplicate entry", []string{"a", "b", "a"}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := NewLabelIndex(tt.labels)
			if idx.Kind() != LabelIndex {
				t.Errorf("Kind() = %v, want LabelIndex", idx.Kind())
			}
			if got := idx.Len(); got != len(tt.labels) {
				t.Errorf("Len() = %d, want %d", got, len(tt.labels))
			}
			if got := idx.HasMissing(); got != tt.wantMissing {
				t.Errorf("HasMissing() = %v, want %v", got, tt.wantMissing)
			}
			if got := idx.IsUnique(); got != tt.wantUnique {
				t.Errorf("IsUnique() = %v, want %v", got, tt.wantUnique)
			}
		})
	}
}

func TestTimeIndex(t *testing.T) {
	base := time.Date(2022, 5, 15, 12, 0, 0, 0, time.UTC)
	times := []time.Time{base, base.Add(15 * time.Minute), base.Add(30 * time.Minute)}

	idx := NewTimeIndex(times)
	if idx.Kind() != TimeIndex {
		t.Errorf("Kind() = %v, want TimeIndex", idx.Kind())
	}
	if idx.HasMissing() {
		t.Error("HasMissing() = true on a complete index")
	}
	if !idx.IsUnique() {
		t.Error("IsUnique() = false on distinct timestamps")
	}
	if got := idx.TimeAt(1); !got.Equal(times[1]) {
		t.Errorf("TimeAt(1) = %v, want %v", got, times[1])
	}

	withZero := NewTimeIndex([]time.Time{base, {}})
	if !withZero.HasMissing() {
		t.Error("HasMissing() = false on an index with a zero time")
	}

	withDup := NewTimeIndex([]time.Time{base, base})
	if withDup.IsUnique() {
		t.Error("IsUnique() = true on duplicate timestamps")
	}
}

func TestLookupTime(t *testing.T) {
	base := time.Date(2022, 5, 15, 12, 0, 0, 0, time.UTC)
	times := []time.Time{base, base.Add(15 * time.Minute), base.Add(30 * time.Minute)}
	idx := NewTimeIndex(times)

	pos, ok := idx.LookupTime(base.Add(15 * time.Minute))
	if !ok || pos != 1 {
		t.Errorf("LookupTime() = (%d, %v), want (1, true)", pos, ok)
	}
	if _, ok := idx.LookupTime(base.Add(time.Hour)); ok {
		t.Error("LookupTime() found a timestamp not in the index")
	}
	if _, ok := NewLabelIndex([]string{"a"}).LookupTime(base); ok {
		t.Error("LookupTime() on a label index should not resolve")
	}
}

func TestLookupTimeConcurrent(t *testing.T) {
	base := time.Date(2022, 5, 15, 12, 0, 0, 0, time.UTC)
	times := make([]time.Time, 64)
	for i := range times {
		times[i] = base.Add(time.Duration(i) * 15 * time.Minute)
	}
	idx := NewTimeIndex(times)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range times {
				pos, ok := idx.LookupTime(times[i])
				if !ok || pos != i {
					t.Errorf("LookupTime() = (%d, %v), want (%d, true)", pos, ok, i)
					return
				}
			}
		}()
	}
	wg.Wait()
}
