package report

import "sort"

// topEntry pairs an on-disk size with the record's store index.
type topEntry struct {
	Size  uint32
	Index int
}

// topN keeps the n largest entries seen, held in ascending size order. A
// candidate is accepted only when the keeper has room or it beats the
// current minimum, so the result is independent of insertion order.
type topN struct {
	n       int
	entries []topEntry
}

func newTopN(n int) *topN {
	return &topN{n: n}
}

func (t *topN) Add(size uint32, index int) {
	if len(t.entries) >= t.n && size <= t.entries[0].Size {
		return
	}
	pos := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].Size > size
	})
	t.entries = append(t.entries, topEntry{})
	copy(t.entries[pos+1:], t.entries[pos:])
	t.entries[pos] = topEntry{Size: size, Index: index}
	if len(t.entries) > t.n {
		t.entries = t.entries[1:]
	}
}

// Descending returns the kept entries, largest first.
func (t *topN) Descending() []topEntry {
	out := make([]topEntry, len(t.entries))
	for i, e := range t.entries {
		out[len(out)-1-i] = e
	}
	return out
}
