package ebml

import (
	"github.com/gocontainer/avmeta/internal/binary"
	"github.com/gocontainer/avmeta/internal/types"
)

// Parse reads the EBML header and locates the Segment element,
// building the merged SeekHead index. It reads the header of each of
// Segment's level-1 children but descends only into SeekHeads; finding
// any other element happens on demand via Tree.Locate.
func Parse(sr *binary.SafeReader, cfg Config) (*Tree, []types.Diagnostic, error) {
	t := newTree(cfg)
	var diags []types.Diagnostic

	header, err := readElementHeader(sr, 0, 0, 0)
	if err != nil {
		return nil, diags, err
	}
	if header.ID != IDEBMLHeader {
		return nil, diags, &types.InvalidDataError{
			Path: sr.Path(), What: "EBML header", Offset: 0,
			Reason: "file does not start with the EBML header element",
		}
	}
	headerIdx := t.addElement(header)

	maxIDLen, maxSizeLen := 4, 8
	if cfg.MaxIDLength > 0 {
		maxIDLen = cfg.MaxIDLength
	}
	if cfg.MaxSizeLength > 0 {
		maxSizeLen = cfg.MaxSizeLength
	}

	if docType, ok := readDocType(sr, t.elements[headerIdx]); ok {
		t.DocType = docType
	}

	segOffset := header.End()
	if header.SizeUnknown || segOffset < 0 {
		segOffset = header.PayloadOffset
	}

	segHeader, err := readElementHeader(sr, segOffset, maxIDLen, maxSizeLen)
	if err != nil {
		return t, diags, err
	}
	if segHeader.ID != IDSegment {
		return t, diags, &types.InvalidDataError{
			Path: sr.Path(), What: "Segment element", Offset: segOffset,
			Reason: "expected Segment immediately after the EBML header",
		}
	}
	t.SegmentIndex = t.addElement(segHeader)

	segEnd := segHeader.End()
	if segHeader.SizeUnknown || segEnd < 0 || segEnd > sr.Size() {
		segEnd = sr.Size()
	}

	// Record the header of every level-1 child and collect every
	// SeekHead. The scan runs to the Segment end (or EOF); it stops
	// early only at an unreadable header or an unknown-size child, not
	// after the region near the front where SeekHeads usually sit.
	offset := segHeader.PayloadOffset
	var seekHeads []int
	for offset < segEnd {
		child, err := readElementHeader(sr, offset, maxIDLen, maxSizeLen)
		if err != nil {
			diags = append(diags, types.Diagnostic{
				Level: types.DiagWarning, Stage: "container",
				Message: "stopped scanning Segment children: " + err.Error(), Offset: offset,
			})
			break
		}
		child.Parent = t.SegmentIndex
		idx := t.addElement(child)
		linkChild(t, t.SegmentIndex, idx)

		if child.ID == IDSeekHead {
			seekHeads = append(seekHeads, idx)
		}

		if child.SizeUnknown {
			break // can't safely skip past an unknown-size sibling
		}
		next := child.End()
		if next <= offset {
			break
		}
		offset = next
	}

	for _, idx := range seekHeads {
		entries, err := parseSeekHead(sr, t.elements[idx], segHeader.PayloadOffset, maxIDLen, maxSizeLen)
		if err != nil {
			diags = append(diags, types.Diagnostic{
				Level: types.DiagWarning, Stage: "container",
				Message: "failed to parse SeekHead: " + err.Error(), Offset: t.elements[idx].HeaderOffset,
			})
			continue
		}
		for id, pos := range entries {
			if existing, ok := t.seekHead[id]; ok && existing != pos {
				diags = append(diags, types.Diagnostic{
					Level: types.DiagInfo, Stage: "container",
					Message: "conflicting SeekHead entries for the same element id; keeping the first",
					Offset: pos,
				})
				continue
			}
			t.seekHead[id] = pos
		}
	}

	return t, diags, nil
}

func linkChild(t *Tree, parentIdx, childIdx int) {
	p := &t.elements[parentIdx]
	if p.FirstChild == noParent {
		p.FirstChild = childIdx
		return
	}
	c := p.FirstChild
	for t.elements[c].NextSibling != noParent {
		c = t.elements[c].NextSibling
	}
	t.elements[c].NextSibling = childIdx
}

// readDocType scans the EBML header's payload for the DocType element
// (0x4282), a simple ASCII string child.
func readDocType(sr *binary.SafeReader, header Element) (string, bool) {
	end := header.End()
	if header.SizeUnknown || end < 0 {
		return "", false
	}
	offset := header.PayloadOffset
	for offset < end {
		child, err := readElementHeader(sr, offset, 4, 8)
		if err != nil {
			return "", false
		}
		if child.ID == IDDocType && !child.SizeUnknown {
			buf := make([]byte, child.Size)
			if err := sr.ReadAt(buf, child.PayloadOffset, "DocType"); err == nil {
				return string(buf), true
			}
			return "", false
		}
		if child.SizeUnknown {
			return "", false
		}
		offset = child.End()
	}
	return "", false
}

// parseSeekHead decodes one SeekHead's Seek/SeekID/SeekPosition
// children into an (elementId → absolute offset) map. SeekPosition is
// stored relative to the Segment's payload start per the Matroska
// spec, so segmentPayloadOffset rebases each entry to an absolute
// file offset.
func parseSeekHead(sr *binary.SafeReader, seekHead Element, segmentPayloadOffset int64, maxIDLen, maxSizeLen int) (map[uint32]int64, error) {
	entries := make(map[uint32]int64)
	end := seekHead.End()
	if seekHead.SizeUnknown || end < 0 {
		return entries, &types.InvalidDataError{What: "SeekHead", Offset: seekHead.HeaderOffset, Reason: "unknown size"}
	}

	offset := seekHead.PayloadOffset
	for offset < end {
		seek, err := readElementHeader(sr, offset, maxIDLen, maxSizeLen)
		if err != nil {
			return entries, err
		}
		if seek.ID != IDSeek || seek.SizeUnknown {
			offset = seek.End()
			if offset <= seek.HeaderOffset {
				break
			}
			continue
		}

		var id uint32
		var pos int64
		var haveID, havePos bool

		child := seek.PayloadOffset
		seekEnd := seek.End()
		for child < seekEnd {
			c, err := readElementHeader(sr, child, maxIDLen, maxSizeLen)
			if err != nil {
				break
			}
			switch c.ID {
			case IDSeekID:
				buf := make([]byte, c.Size)
				if sr.ReadAt(buf, c.PayloadOffset, "SeekID") == nil {
					// SeekID's binary payload is the target element's id
					// in its own VINT wire encoding, marker bit included.
					v, _, _, vErr := ReadVInt(buf, false)
					if vErr == nil {
						id = uint32(v)
						haveID = true
					}
				}
			case IDSeekPosition:
				buf := make([]byte, c.Size)
				if sr.ReadAt(buf, c.PayloadOffset, "SeekPosition") == nil {
					var v int64
					for _, b := range buf {
						v = v<<8 | int64(b)
					}
					pos = v
					havePos = true
				}
			}
			if c.SizeUnknown {
				break
			}
			child = c.End()
		}

		if haveID && havePos {
			if _, dup := entries[id]; !dup {
				entries[id] = segmentPayloadOffset + pos
			}
		}

		offset = seek.End()
	}

	return entries, nil
}
