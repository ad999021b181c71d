package hpack

import (
	"bytes"
	"io"
)

// EncodeIntegerInto writes the variable-length representation of value to w.
// prefixBits (1..8) selects how many low-order bits of the first octet carry
// the integer; the remaining high-order bits are taken from leadingBits. Any
// bits of leadingBits that fall inside the prefix are cleared first, so flag
// bits and integer bits never collide.
//
// Values that don't fit the prefix spill into base-128 continuation octets
// (top bit set) followed by a terminal octet with the top bit clear.
func EncodeIntegerInto(value uint64, prefixBits int, leadingBits byte, w io.Writer) error {
	mask := byte(0xff)
	if prefixBits < 8 {
		mask = 1<<prefixBits - 1
	}
	leadingBits &^= mask

	if value < uint64(mask) {
		_, err := w.Write([]byte{leadingBits | byte(value)})
		return err
	}
	if _, err := w.Write([]byte{leadingBits | mask}); err != nil {
		return err
	}
	value -= uint64(mask)
	for value >= 128 {
		if _, err := w.Write([]byte{byte(value%128) | 0x80}); err != nil {
			return err
		}
		value /= 128
	}
	_, err := w.Write([]byte{byte(value)})
	return err
}

// EncodeInteger returns the representation of value with no leading flag
// bits, in a newly allocated slice.
func EncodeInteger(value uint64, prefixBits int) []byte {
	var buf bytes.Buffer
	EncodeIntegerInto(value, prefixBits, 0, &buf)
	return buf.Bytes()
}

// encodeStringLiteralInto writes s as a length-prefixed string literal: the
// length as a 7-bit-prefix integer, then the raw octets. The top bit of the
// length octet stays clear, literals are never Huffman-coded here.
func encodeStringLiteralInto(s string, w io.Writer) error {
	if err := EncodeIntegerInto(uint64(len(s)), 7, 0, w); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}
