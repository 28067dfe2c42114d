package ebml

import (
	"github.com/gocontainer/avmeta/internal/binary"
	"github.com/gocontainer/avmeta/internal/types"
)

// Locate finds the absolute offset of the first level-1 child of
// Segment with the given id, consulting the SeekHead index first and
// falling back to a bounded linear scan of Segment's direct children.
//
// ok is false when the element isn't indexed and either the scan was
// skipped (fileSize > cfg.MaxFullParseSize) or it completed without
// finding the element; the caller distinguishes these via scanned.
func (t *Tree) Locate(sr *binary.SafeReader, id uint32, fileSize int64) (offset int64, ok bool, scanned bool) {
	if off, found := t.SeekOffset(id); found {
		return off, true, false
	}

	limit := t.cfg.MaxFullParseSize
	if limit <= 0 {
		limit = DefaultConfig().MaxFullParseSize
	}
	if fileSize > limit {
		return 0, false, false
	}

	seg := t.elements[t.SegmentIndex]
	segEnd := seg.End()
	if seg.SizeUnknown || segEnd < 0 || segEnd > fileSize {
		segEnd = fileSize
	}

	maxIDLen, maxSizeLen := 4, 8
	if t.cfg.MaxIDLength > 0 {
		maxIDLen = t.cfg.MaxIDLength
	}
	if t.cfg.MaxSizeLength > 0 {
		maxSizeLen = t.cfg.MaxSizeLength
	}

	offset = seg.PayloadOffset
	for offset < segEnd {
		child, err := readElementHeader(sr, offset, maxIDLen, maxSizeLen)
		if err != nil {
			return 0, false, true
		}
		if child.ID == id {
			return child.HeaderOffset, true, true
		}
		if child.SizeUnknown {
			return 0, false, true
		}
		next := child.End()
		if next <= offset {
			return 0, false, true
		}
		offset = next
	}
	return 0, false, true
}

// ValidateIndex cross-checks every SeekHead entry against the element
// actually present at its recorded offset, returning a Warning-level
// Diagnostic per mismatch. Mismatches are non-fatal: Locate still
// trusts the index (spec §4.2 step 4 treats this as reporting, not
// correction).
func (t *Tree) ValidateIndex(sr *binary.SafeReader) []types.Diagnostic {
	var diags []types.Diagnostic
	maxIDLen, maxSizeLen := 4, 8
	if t.cfg.MaxIDLength > 0 {
		maxIDLen = t.cfg.MaxIDLength
	}
	if t.cfg.MaxSizeLength > 0 {
		maxSizeLen = t.cfg.MaxSizeLength
	}

	for id, offset := range t.seekHead {
		actual, err := readElementHeader(sr, offset, maxIDLen, maxSizeLen)
		if err != nil {
			diags = append(diags, types.Diagnostic{
				Level: types.DiagWarning, Stage: "container", Offset: offset,
				Message: "SeekHead entry points outside the file or at an unreadable header",
			})
			continue
		}
		if actual.ID != id {
			diags = append(diags, types.Diagnostic{
				Level: types.DiagWarning, Stage: "container", Offset: offset,
				Message: "SeekHead entry does not match the element present at that offset",
			})
		}
	}
	return diags
}
