package profile

import "fmt"

// DefaultCapacity is the number of distinct labels a [Profiler] can hold
// unless configured otherwise.
const DefaultCapacity = 4096

// Anchor aggregates the measurements of every block opened with one label.
type Anchor struct {
	// Label names the region.
	Label string
	// ExclusiveCycles counts cycles spent in the region itself, with nested
	// blocks subtracted out.
	ExclusiveCycles uint64
	// InclusiveCycles counts cycles spent in the region including nested
	// blocks, as of its last outermost completion.
	InclusiveCycles uint64
	// Hits counts completed blocks.
	Hits uint64
	// BytesProcessed sums the payload sizes declared by the blocks.
	BytesProcessed uint64
}

// anchorTable is a preallocated anchor array with a lazily built label
// registry. Slot 0 is the root: it has no label and absorbs the exclusive
// subtraction of top-level blocks.
type anchorTable struct {
	anchors []Anchor
	indexes map[string]int
}

func newAnchorTable(capacity int) anchorTable {
	return anchorTable{
		anchors: make([]Anchor, capacity+1),
		indexes: make(map[string]int, capacity),
	}
}

// resolve returns the index for label, assigning the next free one on first
// use. Running out of slots is a programming error.
func (t *anchorTable) resolve(label string) int {
	idx, ok := t.indexes[label]
	if ok {
		return idx
	}

	idx = len(t.indexes) + 1
	if idx >= len(t.anchors) {
		panic(fmt.Sprintf("profile: more than %d distinct labels, cannot register %q",
			len(t.anchors)-1, label))
	}

	t.indexes[label] = idx

	return idx
}

func (t *anchorTable) reset() {
	clear(t.anchors)
	clear(t.indexes)
}

// registered returns the anchors with an assigned index, in index order.
func (t *anchorTable) registered() []Anchor {
	return t.anchors[1 : len(t.indexes)+1]
}
