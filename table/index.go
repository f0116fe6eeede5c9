package table

import (
	"time"
)

// IndexKind identifies what a row index is made of.
type IndexKind int

const (
	// LabelIndex holds arbitrary string row labels.
	LabelIndex IndexKind = iota
	// TimeIndex holds timestamps and supports duration-based lookup.
	TimeIndex
)

// Index holds the row labels of a table. Indexes are immutable once built.
//
// Missing entries are representable (an empty label, a zero time) so that
// integrity checks can reject them before any index-aligned operation runs.
type Index struct {
	kind   IndexKind
	labels []string
	times  []time.Time

	byTime map[int64]int
}

// NewLabelIndex builds an index of string labels. An empty string marks a
// missing entry.
func NewLabelIndex(labels []string) *Index {
	return &Index{kind: LabelIndex, labels: append([]string(nil), labels...)}
}

// NewTimeIndex builds an index of timestamps. The zero time marks a missing
// entry. The lookup map is built here so the index is read-only afterwards
// and safe for concurrent use.
func NewTimeIndex(times []time.Time) *Index {
	ts := append([]time.Time(nil), times...)
	byTime := make(map[int64]int, len(ts))
	for i, t := range ts {
		byTime[t.UnixNano()] = i
	}
	return &Index{kind: TimeIndex, times: ts, byTime: byTime}
}

// Kind returns the index kind.
func (ix *Index) Kind() IndexKind {
	return ix.kind
}

// Len returns the number of entries.
func (ix *Index) Len() int {
	if ix.kind == TimeIndex {
		return len(ix.times)
	}
	return len(ix.labels)
}

// HasMissing reports whether any entry is missing.
func (ix *Index) HasMissing() bool {
	if ix.kind == TimeIndex {
		for _, t := range ix.times {
			if t.IsZero() {
				return true
			}
		}
		return false
	}
	for _, l := range ix.labels {
		if l == "" {
			return true
		}
	}
	return false
}

// IsUnique reports whether all entries are distinct.
func (ix *Index) IsUnique() bool {
	if ix.kind == TimeIndex {
		seen := make(map[int64]struct{}, len(ix.times))
		for _, t := range ix.times {
			k := t.UnixNano()
			if _, ok := seen[k]; ok {
				return false
			}
			seen[k] = struct{}{}
		}
		return true
	}
	seen := make(map[string]struct{}, len(ix.labels))
	for _, l := range ix.labels {
		if _, ok := seen[l]; ok {
			return false
		}
		seen[l] = struct{}{}
	}
	return true
}

// TimeAt returns the timestamp at position i. Valid only for time indexes.
func (ix *Index) TimeAt(i int) time.Time {
	return ix.times[i]
}

// LabelAt returns the label at position i. Valid only for label indexes.
func (ix *Index) LabelAt(i int) string {
	return ix.labels[i]
}

// Times returns a copy of the timestamps. Valid only for time indexes.
func (ix *Index) Times() []time.Time {
	return append([]time.Time(nil), ix.times...)
}

// LookupTime returns the position of the given timestamp. The index must be
// unique for results to be meaningful.
func (ix *Index) LookupTime(t time.Time) (int, bool) {
	if ix.kind != TimeIndex {
		return 0, false
	}
	i, ok := ix.byTime[t.UnixNano()]
	return i, ok
}
