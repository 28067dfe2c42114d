// Package binary provides type-safe binary writing primitives with offset tracking.
package binary

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/aler9/writerseeker"
)

// SafeWriter wraps io.Writer with position tracking.
type SafeWriter struct {
	w      io.Writer
	offset int64
}

// NewSafeWriter creates a new SafeWriter.
func NewSafeWriter(w io.Writer) *SafeWriter {
	return &SafeWriter{
		w:      w,
		offset: 0,
	}
}

// NewSeekableWriter creates a SafeWriter backed by an in-memory
// seekable buffer, for staging a region that needs a length-prefixed
// field patched after the fact once the final size is known (a Vorbis
// comment field count, an EBML size VINT, an MP4 atom size). Use
// PatchUint32LE and Bytes with writers created this way.
func NewSeekableWriter() *SafeWriter {
	return &SafeWriter{w: &writerseeker.WriterSeeker{}}
}

// PatchUint32LE overwrites the little-endian uint32 at offset without
// disturbing the writer's current append position. Only valid on a
// SafeWriter returned by NewSeekableWriter.
func (sw *SafeWriter) PatchUint32LE(offset int64, v uint32) error {
	seeker, ok := sw.w.(io.Seeker)
	if !ok {
		return fmt.Errorf("binary: PatchUint32LE requires a seekable writer")
	}
	if _, err := seeker.Seek(offset, io.SeekStart); err != nil {
		return err
	}
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	if _, err := sw.w.Write(buf[:]); err != nil {
		return err
	}
	_, err := seeker.Seek(sw.offset, io.SeekStart)
	return err
}

// Bytes returns a copy of everything written so far; the buffer is left
// intact, so later writes extend it. Only valid on a SafeWriter
// returned by NewSeekableWriter.
func (sw *SafeWriter) Bytes() ([]byte, error) {
	ws, ok := sw.w.(*writerseeker.WriterSeeker)
	if !ok {
		return nil, fmt.Errorf("binary: Bytes requires a seekable writer")
	}
	return io.ReadAll(ws.BytesReader())
}

// Offset returns the current position (number of bytes written).
func (sw *SafeWriter) Offset() int64 {
	return sw.offset
}

// WriteBytes writes raw bytes to the underlying writer.
func (sw *SafeWriter) WriteBytes(b []byte) error {
	n, err := sw.w.Write(b)
	sw.offset += int64(n)
	return err
}

// WriteString writes a string as bytes to the underlying writer.
func (sw *SafeWriter) WriteString(s string) error {
	return sw.WriteBytes([]byte(s))
}

// Write writes a value of type T in big-endian byte order.
// T must be uint8, uint16, uint32, or uint64.
func Write[T uint8 | uint16 | uint32 | uint64](sw *SafeWriter, val T) error {
	var buf []byte

	// Determine size and encode based on type
	var zero T
	switch any(zero).(type) {
	case uint8:
		buf = []byte{byte(val)}
	case uint16:
		buf = make([]byte, 2)
		binary.BigEndian.PutUint16(buf, uint16(val))
	case uint32:
		buf = make([]byte, 4)
		binary.BigEndian.PutUint32(buf, uint32(val))
	case uint64:
		buf = make([]byte, 8)
		binary.BigEndian.PutUint64(buf, uint64(val))
	}

	return sw.WriteBytes(buf)
}

// WriteLE writes a value of type T in little-endian byte order.
// T must be uint8, uint16, uint32, or uint64.
func WriteLE[T uint8 | uint16 | uint32 | uint64](sw *SafeWriter, val T) error {
	var buf []byte

	// Determine size and encode based on type
	var zero T
	switch any(zero).(type) {
	case uint8:
		buf = []byte{byte(val)}
	case uint16:
		buf = make([]byte, 2)
		binary.LittleEndian.PutUint16(buf, uint16(val))
	case uint32:
		buf = make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, uint32(val))
	case uint64:
		buf = make([]byte, 8)
		binary.LittleEndian.PutUint64(buf, uint64(val))
	}

	return sw.WriteBytes(buf)
}
