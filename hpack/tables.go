package hpack

import "errors"

const defaultMaxTableSize = 4096

// headerTable is the combined index space over the static table and one
// dynamic table. It is the compression context of a single Encoder and is
// never shared between two encoders.
type headerTable struct {
	// dynamicTable[0] is the most recently inserted entry, addressed on the
	// wire as index len(staticTable); older entries follow at higher indices.
	dynamicTable []Header
	size         int
	maxSize      int
}

func newHeaderTable() *headerTable {
	return &headerTable{
		dynamicTable: make([]Header, 0),
		maxSize:      defaultMaxTableSize,
	}
}

// find reports where a header can be referenced in the combined index space.
// An index of 0 means the name appears in neither table. An exact match
// anywhere beats a name-only match anywhere; within each pass the static
// table is checked first (lowest index wins), then the dynamic table from
// newest to oldest.
func (t *headerTable) find(name, value string) (index int, matchesValue bool) {
	nameIdx := 0
	for i := 1; i < len(staticTable); i++ {
		if staticTable[i].Name != name {
			continue
		}
		if staticTable[i].Value == value {
			return i, true
		}
		if nameIdx == 0 {
			nameIdx = i
		}
	}
	for i, h := range t.dynamicTable {
		if h.Name != name {
			continue
		}
		if h.Value == value {
			return len(staticTable) + i, true
		}
		if nameIdx == 0 {
			nameIdx = len(staticTable) + i
		}
	}
	return nameIdx, false
}

// add inserts h as the newest dynamic entry, then evicts oldest-first until
// the total cost fits the capacity again. An entry whose own cost exceeds
// the capacity leaves the table empty. Insertion never fails; entries are
// appended even when the same name is already present with another value.
func (t *headerTable) add(h Header) {
	t.dynamicTable = append([]Header{h}, t.dynamicTable...)
	t.size += h.Size()
	t.evict()
}

func (t *headerTable) evict() {
	for t.size > t.maxSize {
		last := len(t.dynamicTable) - 1
		t.size -= t.dynamicTable[last].Size()
		t.dynamicTable = t.dynamicTable[:last]
	}
}

// setMaxSize changes the table capacity, evicting immediately if the new
// capacity is below the current usage. Signalling the change to the peer via
// a dynamic table size update is the caller's concern.
func (t *headerTable) setMaxSize(n int) {
	t.maxSize = n
	t.evict()
}

var errTableIndex = errors.New("index not in addressable space")

// get translates a combined index back into the header it denotes.
func (t *headerTable) get(index int) (Header, error) {
	if index <= 0 {
		return Header{}, errTableIndex
	}
	if index < len(staticTable) {
		return staticTable[index], nil
	}
	index -= len(staticTable)
	if index < len(t.dynamicTable) {
		return t.dynamicTable[index], nil
	}
	return Header{}, errTableIndex
}
