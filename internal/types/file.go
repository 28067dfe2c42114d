// Package types provides core data structures for audio file metadata.
//
// This package defines the File, Tags, AudioInfo, Chapter, and Artwork types
// that represent parsed audio file information across all supported formats.
package types

import (
	"io"
)

// File represents an opened audio file with parsed metadata.
//
// File provides access to format-agnostic metadata (Tags), technical
// audio properties (AudioInfo), and optional embedded artwork.
//
// File uses lazy loading - opening a file reads only metadata, not
// audio content or artwork. Call ExtractArtwork() to load images.
//
// Always call Close() when done to release file resources:
//
//	file, err := audiometa.Open("song.flac")
//	if err != nil {
//		return err
//	}
//	defer file.Close()
type File struct {
	Reader_     io.ReaderAt         //nolint:revive // Underscore indicates internal/unexported semantics
	Parser_     interface{}        //nolint:revive // Underscore indicates internal/unexported semantics
	Container_  interface{}        //nolint:revive // Underscore indicates internal/unexported semantics; concrete container instance, nil for flat formats
	RawTags_    map[string][]RawTag //nolint:revive // Underscore indicates internal/unexported semantics
	Path        string
	Chapters    []Chapter
	Attachments []Attachment
	Tracks      []Track
	Warnings    []Warning
	Diagnostics []Diagnostic
	Artwork_    []Artwork //nolint:revive // Underscore indicates internal/unexported semantics
	Tags        Tags
	Audio       AudioInfo
	Format      Format

	// ContainerOffset is the absolute offset where the container's magic
	// bytes begin (non-zero when an ID3v2 header precedes a FLAC/WAV/AIFF
	// payload and was transparently skipped during signature detection).
	ContainerOffset int64

	// PaddingSize is the amount of padding detected around the tag/index
	// region during the last parse, used by the rewrite planner to decide
	// between a splice and a full rewrite.
	PaddingSize int64

	// MinPadding, MaxPadding, and PreferredPadding bound a later
	// Save/SaveAs's splice-vs-rewrite decision (see internal/rewrite).
	// Recorded at Open time from the caller's options so applyChanges can
	// see them without a second pass of options.
	MinPadding       int64
	MaxPadding       int64
	PreferredPadding int64

	// TagPosition and IndexPosition request where a container that
	// supports more than one placement should keep these regions on a
	// later rewrite; the Force variants turn an unsupported request into
	// a NotSupportedError instead of falling back silently.
	TagPosition        ElementPosition
	IndexPosition      ElementPosition
	ForceTagPosition   bool
	ForceIndexPosition bool

	// ForceRewrite skips the splice-in-place fast path on a later
	// Save/SaveAs and always performs a full rewrite.
	ForceRewrite bool

	Size int64

	ContainerStatus   ParsingStatus
	TracksStatus      ParsingStatus
	TagsStatus        ParsingStatus
	ChaptersStatus    ParsingStatus
	AttachmentsStatus ParsingStatus
}
