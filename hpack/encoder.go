package hpack

import (
	"bytes"
	"io"
)

// Encoder compresses lists of headers into the HPACK wire form. Headers
// already present in its table are sent as bare indices; newly seen names
// are sent as literals and indexed so later occurrences compress.
//
// The table the Encoder builds must stay in lock-step with the peer
// decoder's copy, so every table-mutating byte it emits has to reach the
// peer in order. An Encoder belongs to exactly one logical stream of header
// blocks and is not safe for concurrent use.
type Encoder struct {
	table *headerTable
}

// NewEncoder returns an Encoder backed by the standard static table and an
// empty dynamic table at the default 4096-octet capacity.
func NewEncoder() *Encoder {
	return &Encoder{
		table: newHeaderTable(),
	}
}

// Encode encodes headers in order and returns the block as a new slice.
func (e *Encoder) Encode(headers []Header) []byte {
	var buf bytes.Buffer
	e.EncodeInto(headers, &buf)
	return buf.Bytes()
}

// EncodeInto encodes headers in order into w. The first write error aborts
// the rest of the batch and is returned as-is. Table updates made before the
// failure are not rolled back, so the peer decoder can no longer be kept in
// sync: after an error the Encoder must not be reused.
func (e *Encoder) EncodeInto(headers []Header, w io.Writer) error {
	for _, h := range headers {
		if err := e.EncodeHeaderInto(h, w); err != nil {
			return err
		}
	}
	return nil
}

// EncodeHeaderInto encodes a single header into w, for callers that
// interleave header encoding with other writes.
func (e *Encoder) EncodeHeaderInto(h Header, w io.Writer) error {
	index, matchesValue := e.table.find(h.Name, h.Value)
	switch {
	case index == 0:
		// Name in no table: literal name and value, indexed so later
		// occurrences can be referenced.
		if err := e.encodeLiteral(h, true, w); err != nil {
			return err
		}
		e.table.add(h)
		return nil
	case !matchesValue:
		// Known name, different value: literal value against the indexed
		// name, without recording the value in the table.
		return e.encodeIndexedName(index, h.Value, false, w)
	default:
		return e.encodeIndexed(index, w)
	}
}

// encodeLiteral writes h with both name and value as string literals.
// shouldIndex picks the control octet: 0x40 tells the peer to add the entry
// to its dynamic table, 0x00 leaves its table alone.
func (e *Encoder) encodeLiteral(h Header, shouldIndex bool, w io.Writer) error {
	var control byte
	if shouldIndex {
		control = 0x40
	}
	if _, err := w.Write([]byte{control}); err != nil {
		return err
	}
	if err := encodeStringLiteralInto(h.Name, w); err != nil {
		return err
	}
	return encodeStringLiteralInto(h.Value, w)
}

// encodeIndexedName writes a header whose name is referenced by table index
// while the value goes out as a literal. shouldIndex selects between the
// incremental-indexing form (6-bit prefix, 01 flag) and the without-indexing
// form (4-bit prefix, 0000 flag).
func (e *Encoder) encodeIndexedName(index int, value string, shouldIndex bool, w io.Writer) error {
	leading, prefix := byte(0x00), 4
	if shouldIndex {
		leading, prefix = 0x40, 6
	}
	if err := EncodeIntegerInto(uint64(index), prefix, leading, w); err != nil {
		return err
	}
	return encodeStringLiteralInto(value, w)
}

// encodeIndexed writes a header that is fully present in the table as its
// bare index, bit pattern 1xxxxxxx.
func (e *Encoder) encodeIndexed(index int, w io.Writer) error {
	return EncodeIntegerInto(uint64(index), 7, 0x80, w)
}
