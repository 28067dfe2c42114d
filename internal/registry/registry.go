// Package registry manages format-specific parsers for audio file types.
package registry

import (
	"io"

	"github.com/gocontainer/avmeta/internal/rewrite"
	"github.com/gocontainer/avmeta/internal/types"
)

// FormatParser is the interface all format parsers implement.
type FormatParser interface {
	// Parse extracts metadata from an audio file.
	// Returns a partially initialized File (Path, Format, Size set by caller).
	Parse(r io.ReaderAt, size int64, path string) (*types.File, error)
}

// ArtworkExtractor is an optional interface for parsers that support artwork extraction.
type ArtworkExtractor interface {
	// ExtractArtwork extracts embedded artwork from the file.
	ExtractArtwork(r io.ReaderAt, size int64, path string) ([]types.Artwork, error)
}

// FormatWriter is the interface format writers implement.
type FormatWriter interface {
	// Write writes the file's metadata to w.
	// original provides read access to the source file for copying audio data.
	Write(w io.Writer, file *types.File, original io.ReaderAt, originalSize int64) error
}

// ContainerOps is the capability interface a container format
// implements when it has enough internal structure (nested elements,
// multiple facets parsed independently, a rewrite-in-place path) that a
// flat FormatParser/FormatWriter pair can't express it. MakeFile
// replaces FormatWriter.Write for containers registered here, letting
// SaveAs dispatch to whichever of the two a format actually registered.
// No format package in this module registers a ContainerOps, so
// GetContainer returns nil for every format.
//
// Each Parse* method parses exactly one facet and is idempotent: safe
// to call multiple times, reporting ParsingStatus.Ok/NotSupported/
// CriticalFailure to the caller rather than mixing facets together the
// way a single monolithic Parse call would.
type ContainerOps interface {
	ParseHeader(r io.ReaderAt, size int64, path string) (*types.File, error)
	ParseTags(r io.ReaderAt, file *types.File) error
	ParseTracks(r io.ReaderAt, file *types.File) error
	ParseChapters(r io.ReaderAt, file *types.File) error
	ParseAttachments(r io.ReaderAt, file *types.File) error

	// DetermineTagPosition and DetermineIndexPosition report where this
	// container instance currently keeps its Tags/SeekHead region,
	// informing the rewrite planner's padding-budget decision.
	DetermineTagPosition() types.ElementPosition
	DetermineIndexPosition() types.ElementPosition

	// MakeFile writes file's current state to w, using policy to decide
	// between an in-place splice and a full rewrite with fresh padding.
	MakeFile(w io.Writer, file *types.File, original io.ReaderAt, originalSize int64, policy rewrite.Policy) error

	// Reset clears any state cached across the Parse* calls above, so
	// the same ContainerOps instance can be reused for a second file
	// (format packages register one shared instance per format).
	Reset()
}

// parsers maps formats to their parsers.
var parsers = make(map[types.Format]FormatParser)

// writers maps formats to their writers.
var writers = make(map[types.Format]FormatWriter)

// containers maps formats to their ContainerOps implementation.
var containers = make(map[types.Format]ContainerOps)

// RegisterContainer registers a ContainerOps for a format. Unlike
// Register/RegisterWriter, a single ContainerOps instance covers both
// read and write, since the capability interface's whole point is that
// the two share parsed-element state.
func RegisterContainer(format types.Format, ops ContainerOps) {
	containers[format] = ops
}

// GetContainer returns the ContainerOps registered for a format, or nil
// if the format uses the flatter FormatParser/FormatWriter pair instead.
func GetContainer(format types.Format) ContainerOps {
	return containers[format]
}

// Register registers a parser for a format.
// This is called by format packages during initialization (init functions).
func Register(format types.Format, parser FormatParser) {
	parsers[format] = parser
}

// Get returns the parser for a given format.
// Returns nil if no parser is registered for the format.
func Get(format types.Format) FormatParser {
	return parsers[format]
}

// RegisterWriter registers a writer for a format.
// This is called by format packages during initialization (init functions).
func RegisterWriter(format types.Format, writer FormatWriter) {
	writers[format] = writer
}

// GetWriter returns the writer for a given format.
// Returns nil if no writer is registered for the format.
func GetWriter(format types.Format) FormatWriter {
	return writers[format]
}
