// Package ebml implements the variable-length-integer element tree
// that backs the Matroska/WebM container format: reading and writing
// VINTs, walking a Segment's children via SeekHead, and falling back
// to a bounded linear scan when no index is available.
package ebml

import "github.com/gocontainer/avmeta/internal/types"

// MaxVIntLength is the longest a VINT can be per the EBML spec: an
// 8-bit length marker leaves at most 8 bytes total.
const MaxVIntLength = 8

// ReadVInt decodes a VINT starting at buf[0]. stripMarker is true for
// size VINTs (the leading-one length marker bit is cleared before the
// value is assembled) and false for element-id VINTs (the marker bit
// is kept, since an element id's wire encoding includes it).
//
// Returns the decoded value, the number of bytes consumed, and whether
// the payload-size special case "all payload bits are 1" applies
// (meaningful only when stripMarker is true).
func ReadVInt(buf []byte, stripMarker bool) (value uint64, length int, allOnes bool, err error) {
	if len(buf) == 0 {
		return 0, 0, false, &types.TruncatedDataError{What: "VINT", Wanted: 1, Got: 0}
	}

	first := buf[0]
	length = leadingZeroRun(first) + 1
	if length > MaxVIntLength {
		return 0, 0, false, &types.InvalidDataError{
			What:   "VINT length marker",
			Reason: "leading byte has no set bit within the first 8 bits",
		}
	}
	if length > len(buf) {
		return 0, 0, false, &types.TruncatedDataError{What: "VINT", Wanted: int64(length), Got: int64(len(buf))}
	}

	markerBit := uint8(1) << uint(8-length)

	value = uint64(first)
	if stripMarker {
		value = uint64(first &^ markerBit)
	}
	for i := 1; i < length; i++ {
		value = value<<8 | uint64(buf[i])
	}

	if stripMarker {
		maxValue := uint64(1)<<uint(7*length) - 1
		allOnes = value == maxValue
	}

	return value, length, allOnes, nil
}

// WriteVInt encodes value using the shortest VINT length that can hold
// it. When stripMarker is true (sizes) that is at most 7*length bits of
// payload, since the marker consumes one bit of the first byte, and the
// marker is set. When stripMarker is false (element ids) value already
// carries its marker, so it is written verbatim in the fewest bytes.
func WriteVInt(value uint64, stripMarker bool) []byte {
	length := 1
	for length < MaxVIntLength {
		limit := uint64(1)<<uint(7*length) - 1
		if !stripMarker {
			limit = uint64(1)<<uint(8*length) - 1
		}
		if value <= limit {
			break
		}
		length++
	}

	buf := make([]byte, length)
	v := value
	for i := length - 1; i >= 0; i-- {
		buf[i] = byte(v)
		v >>= 8
	}

	if stripMarker {
		buf[0] |= uint8(1) << uint(8-length)
	}
	return buf
}

// leadingZeroRun counts the number of leading zero bits in b before
// the first set bit, within the 8-bit byte (0..7). A value of 7 means
// only bit 0 is set (the longest VINT, length 8).
func leadingZeroRun(b byte) int {
	n := 0
	for mask := byte(0x80); mask != 0; mask >>= 1 {
		if b&mask != 0 {
			return n
		}
		n++
	}
	return 8 // no bit set at all: invalid, caller rejects length > MaxVIntLength
}
