package ebml

import (
	"github.com/gocontainer/avmeta/internal/binary"
	"github.com/gocontainer/avmeta/internal/types"
)

// Well-known element IDs needed to walk a Segment without a full
// schema. Matroska defines many more; callers needing payload
// interpretation beyond structural walking decode children themselves.
const (
	IDEBMLHeader   uint32 = 0x1A45DFA3
	IDSegment      uint32 = 0x18538067
	IDSeekHead     uint32 = 0x114D9B74
	IDSeek         uint32 = 0x4DBB
	IDSeekID       uint32 = 0x53AB
	IDSeekPosition uint32 = 0x53AC
	IDInfo         uint32 = 0x1549A966
	IDTracks       uint32 = 0x1654AE6B
	IDTags         uint32 = 0x1254C367
	IDChapters     uint32 = 0x1043A770
	IDAttachments  uint32 = 0x1941A469
	IDVoid         uint32 = 0xEC
	IDCRC32        uint32 = 0xBF
	IDDocType      uint32 = 0x4282
)

// noParent marks an Element with no parent (the document root).
const noParent = -1

// Element is one node in the flat element slab. Parent, FirstChild,
// and NextSibling are indices into Tree.elements rather than pointers:
// an EBML document is a forest of elements all owned by the Tree that
// parsed them, so there's no independent ownership to model with Go
// pointers and no cycle risk to guard against.
type Element struct {
	ID            uint32
	Size          uint64
	SizeUnknown   bool
	HeaderOffset  int64
	PayloadOffset int64
	Parent        int
	FirstChild    int
	NextSibling   int
}

// End returns the absolute offset one past the element's payload, or
// -1 if Size is unknown (the caller must bound the scan by context).
func (e Element) End() int64 {
	if e.SizeUnknown {
		return -1
	}
	return e.PayloadOffset + int64(e.Size)
}

// Config replaces the teacher's process-wide mutable
// "maxFullParseSize" setting with a value owned by the Tree instance,
// so concurrent parses of different files never race on it.
type Config struct {
	// MaxFullParseSize bounds the linear sibling scan fallback used
	// when no SeekHead entry locates a facet. Files larger than this
	// skip the scan and the facet is reported NotSupported.
	MaxFullParseSize int64
	// MaxIDLength / MaxSizeLength cap the id and size VINT lengths of
	// reads inside the Segment (0 means the defaults 4 and 8). The EBML
	// header's own max-id-length / max-size-length elements are not read.
	MaxIDLength   int
	MaxSizeLength int
}

// DefaultConfig sets a 50 MiB full-parse cap and leaves the id/size
// length caps at 0, i.e. the defaults 4 and 8.
func DefaultConfig() Config {
	return Config{MaxFullParseSize: 50 * 1024 * 1024}
}

// Tree is a parsed EBML document: a flat slab of Elements plus the
// merged SeekHead index for the Segment, if one was found.
type Tree struct {
	elements []Element
	seekHead map[uint32]int64
	cfg      Config

	SegmentIndex int // index into elements of the Segment element, or -1
	DocType      string
}

func newTree(cfg Config) *Tree {
	return &Tree{seekHead: make(map[uint32]int64), cfg: cfg, SegmentIndex: -1}
}

func (t *Tree) addElement(e Element) int {
	e.FirstChild = noParent
	e.NextSibling = noParent
	t.elements = append(t.elements, e)
	return len(t.elements) - 1
}

// Element returns the node at idx. idx of -1 (noParent) is invalid;
// callers check index validity before calling.
func (t *Tree) Element(idx int) Element {
	return t.elements[idx]
}

// Children returns the indices of idx's direct children in document order.
func (t *Tree) Children(idx int) []int {
	var out []int
	for c := t.elements[idx].FirstChild; c != noParent; c = t.elements[c].NextSibling {
		out = append(out, c)
	}
	return out
}

// SeekOffset returns the absolute offset of elementID from the merged
// SeekHead index, if present.
func (t *Tree) SeekOffset(elementID uint32) (int64, bool) {
	off, ok := t.seekHead[elementID]
	return off, ok
}

// readElementHeader reads one element's id+size VINTs at offset and
// returns the populated Element (Parent/children left unset).
func readElementHeader(sr *binary.SafeReader, offset int64, maxIDLen, maxSizeLen int) (Element, error) {
	idBuf := make([]byte, MaxVIntLength)
	n := len(idBuf)
	if remaining := sr.Size() - offset; remaining < int64(n) {
		n = int(remaining)
	}
	if n <= 0 {
		return Element{}, &types.TruncatedDataError{What: "element id", Offset: offset}
	}
	if err := sr.ReadAt(idBuf[:n], offset, "element id"); err != nil {
		return Element{}, err
	}

	id, idLen, _, err := ReadVInt(idBuf[:n], false)
	if err != nil {
		return Element{}, err
	}
	if maxIDLen > 0 && idLen > maxIDLen {
		return Element{}, &types.InvalidDataError{What: "element id", Offset: offset, Reason: "exceeds maxIdLength"}
	}

	sizeOffset := offset + int64(idLen)
	sizeBuf := make([]byte, MaxVIntLength)
	n = len(sizeBuf)
	if remaining := sr.Size() - sizeOffset; remaining < int64(n) {
		n = int(remaining)
	}
	if n <= 0 {
		return Element{}, &types.TruncatedDataError{What: "element size", Offset: sizeOffset}
	}
	if err := sr.ReadAt(sizeBuf[:n], sizeOffset, "element size"); err != nil {
		return Element{}, err
	}

	size, sizeLen, allOnes, err := ReadVInt(sizeBuf[:n], true)
	if err != nil {
		return Element{}, err
	}
	if maxSizeLen > 0 && sizeLen > maxSizeLen {
		return Element{}, &types.InvalidDataError{What: "element size", Offset: sizeOffset, Reason: "exceeds maxSizeLength"}
	}

	return Element{
		ID:            uint32(id),
		Size:          size,
		SizeUnknown:   allOnes,
		HeaderOffset:  offset,
		PayloadOffset: sizeOffset + int64(sizeLen),
		Parent:        noParent,
	}, nil
}
