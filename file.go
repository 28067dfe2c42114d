package audiometa

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/gocontainer/avmeta/internal/registry"
	"github.com/gocontainer/avmeta/internal/types"
	"golang.org/x/sync/errgroup"
)

// File represents an opened audio file with parsed metadata.
//
// File embeds internal/types.File so that every format package and the
// root package share one definition of what a parsed file looks like.
// The Parsing*Status fields report, per facet, whether that part of the
// file has been parsed yet and how it went; ClearParsingResults resets
// them so a facet can be re-parsed (after ForceFullParse, for example).
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
	types.File
}

// Open opens an audio file and reads its metadata.
//
// Parsed formats: FLAC, MP3, M4A, M4B, Ogg Vorbis, Ogg Opus. Matroska,
// WebM, WAV, AIFF, Monkey's Audio and WavPack are recognized by
// DetectFormat, but no parser is registered for them, so Open returns an
// *UnsupportedFormatError.
//
// Open performs lazy loading - audio content is not read into memory,
// only metadata is parsed. Use ExtractArtwork() to retrieve embedded images.
//
// If the file is corrupted or has invalid tags, Open may return a partial
// File with warnings instead of an error. Check File.Warnings and
// File.Diagnostics for details.
//
// Options can be provided to customize parsing behavior:
//
//	file, err := audiometa.Open("song.flac",
//	    audiometa.WithStrictParsing(),
//	    audiometa.WithArtworkPreload(),
//	)
//
// Example:
//
//	file, err := audiometa.Open("song.flac")
//	if err != nil {
//		return err
//	}
//	defer file.Close()
//	fmt.Printf("%s - %s\n", file.Tags.Artist, file.Tags.Title)
func Open(path string, opts ...Option) (*File, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close() //nolint:errcheck // best-effort cleanup, open already failing
		return nil, fmt.Errorf("stat file: %w", err)
	}
	size := stat.Size()

	file, err := openReader(f, size, path, options)
	if err != nil {
		f.Close() //nolint:errcheck // best-effort cleanup, open already failing
		return nil, err
	}

	file.Reader_ = f

	if options.strictParsing && len(file.Warnings) > 0 {
		f.Close() //nolint:errcheck // best-effort cleanup, strict mode rejects this file
		return nil, fmt.Errorf("strict parsing failed: %s", file.Warnings[0].Message)
	}

	if options.preloadArtwork {
		if _, err := file.ExtractArtwork(); err != nil {
			file.Warnings = append(file.Warnings, types.Warning{
				Stage:   "artwork",
				Message: fmt.Sprintf("preload artwork failed: %v", err),
			})
		}
	}

	return file, nil
}

// openReader opens from an io.ReaderAt (internal, for testing).
func openReader(r io.ReaderAt, size int64, path string, options *openOptions) (*File, error) {
	format, err := DetectFormat(r, size, path)
	if err != nil {
		return nil, err
	}

	rawParser := findParser(format)
	if rawParser == nil {
		return nil, &UnsupportedFormatError{
			Path:   path,
			Reason: fmt.Sprintf("no parser available for format %s", format),
		}
	}

	parsed, err := runParser(rawParser, r, size, path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", format, err)
	}

	parsed.Path = path
	parsed.Format = format
	parsed.Size = size
	parsed.Parser_ = rawParser

	parsed.ContainerStatus = types.Ok
	parsed.TagsStatus = types.Ok
	parsed.TracksStatus = types.Ok
	parsed.ChaptersStatus = types.Ok
	parsed.AttachmentsStatus = types.Ok

	parsed.MinPadding = options.minPadding
	parsed.MaxPadding = options.maxPadding
	parsed.PreferredPadding = options.preferredPadding
	parsed.TagPosition = options.tagPosition
	parsed.IndexPosition = options.indexPosition
	parsed.ForceTagPosition = options.forceTagPosition
	parsed.ForceIndexPosition = options.forceIndexPosition

	if options.forceFullParse {
		if ops := registry.GetContainer(format); ops != nil {
			if reparsed, err := ops.ParseHeader(r, size, path); err == nil {
				parsed.Audio = reparsed.Audio
				parsed.ContainerOffset = reparsed.ContainerOffset
			}
		}
	}

	if options.ignoreWarnings {
		parsed.Warnings = nil
	}

	return &File{File: *parsed}, nil
}

// runParser dispatches to whichever of the two parser registries
// produced rawParser. The root package's own FormatParser (used by the
// mp3/m4a packages) returns *File; internal/registry's FormatParser
// (used by flac/ogg, and anything registered only there) returns
// *types.File directly. Both are normalized to *types.File here so
// openReader has one shape to finish populating.
func runParser(rawParser any, r io.ReaderAt, size int64, path string) (*types.File, error) {
	switch p := rawParser.(type) {
	case FormatParser:
		rf, err := p.Parse(r, size, path)
		if err != nil {
			return nil, err
		}
		return &rf.File, nil
	case registry.FormatParser:
		return p.Parse(r, size, path)
	default:
		return nil, fmt.Errorf("parser has unrecognized type %T", rawParser)
	}
}

// Close releases resources held by the file.
//
// After Close is called, the File should not be used.
func (f *File) Close() error {
	if closer, ok := f.Reader_.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// ExtractArtwork extracts embedded artwork from the file.
//
// Artwork is lazily loaded - it is not parsed during Open(). The first
// call to ExtractArtwork() reads and caches the artwork. Subsequent
// calls return the cached data.
//
// Returns an empty slice if the file contains no artwork.
//
// Example:
//
//	artwork, err := file.ExtractArtwork()
//	if err != nil {
//		return err
//	}
//	if len(artwork) > 0 {
//		cover := artwork[0] // First image (usually front cover)
//		os.WriteFile("cover.jpg", cover.Data, 0644)
//	}
func (f *File) ExtractArtwork() ([]Artwork, error) {
	if f.Artwork_ != nil {
		return f.Artwork_, nil
	}

	extractor, ok := f.Parser_.(ArtworkExtractor)
	if !ok {
		return nil, nil
	}

	artwork, err := extractor.ExtractArtwork(f.Reader_, f.Size, f.Path)
	if err != nil {
		return nil, fmt.Errorf("extract artwork: %w", err)
	}

	f.Artwork_ = artwork

	return artwork, nil
}

// RawTags returns format-specific raw tag data.
//
// This provides access to tags that may not be mapped to the standard
// Tags fields. Useful for preserving unknown or custom tags.
//
// The returned map should not be modified.
func (f *File) RawTags() map[string][]RawTag {
	return f.RawTags_
}

// ClearParsingResults discards the cached result of every facet
// (container header, tags, tracks, chapters, attachments), resetting
// each status to NotParsedYet. The next call to a Parse* method
// re-parses that facet from the underlying reader. Does not close or
// reopen the file.
func (f *File) ClearParsingResults() {
	f.Tags = types.Tags{}
	f.Tracks = nil
	f.Chapters = nil
	f.Attachments = nil
	f.Artwork_ = nil
	f.Diagnostics = nil

	f.ContainerStatus = types.NotParsedYet
	f.TagsStatus = types.NotParsedYet
	f.TracksStatus = types.NotParsedYet
	f.ChaptersStatus = types.NotParsedYet
	f.AttachmentsStatus = types.NotParsedYet

	if ops := registry.GetContainer(f.Format); ops != nil {
		ops.Reset()
	}
}

// ParseContainerFormat ensures the container header facet (technical
// audio properties in File.Audio) has been parsed, re-parsing it if
// ClearParsingResults discarded the previous result. Idempotent: a
// second call while already Ok returns nil immediately.
func (f *File) ParseContainerFormat() error {
	return f.ensureFacet(&f.ContainerStatus, func(ops registry.ContainerOps) error {
		nf, err := ops.ParseHeader(f.Reader_, f.Size, f.Path)
		if err != nil {
			return err
		}
		f.Audio = nf.Audio
		f.ContainerOffset = nf.ContainerOffset
		return nil
	})
}

// ParseTags ensures the tags facet has been parsed.
func (f *File) ParseTags() error {
	return f.ensureFacet(&f.TagsStatus, func(ops registry.ContainerOps) error {
		return ops.ParseTags(f.Reader_, &f.File)
	})
}

// ParseTracks ensures the tracks facet has been parsed.
func (f *File) ParseTracks() error {
	return f.ensureFacet(&f.TracksStatus, func(ops registry.ContainerOps) error {
		return ops.ParseTracks(f.Reader_, &f.File)
	})
}

// ParseChapters ensures the chapters facet has been parsed.
func (f *File) ParseChapters() error {
	return f.ensureFacet(&f.ChaptersStatus, func(ops registry.ContainerOps) error {
		return ops.ParseChapters(f.Reader_, &f.File)
	})
}

// ParseAttachments ensures the attachments facet has been parsed.
func (f *File) ParseAttachments() error {
	return f.ensureFacet(&f.AttachmentsStatus, func(ops registry.ContainerOps) error {
		return ops.ParseAttachments(f.Reader_, &f.File)
	})
}

// ParseEverything ensures every facet has been parsed, stopping at the
// first CriticalFailure.
func (f *File) ParseEverything() error {
	for _, parse := range []func() error{
		f.ParseContainerFormat, f.ParseTags, f.ParseTracks, f.ParseChapters, f.ParseAttachments,
	} {
		if err := parse(); err != nil {
			return err
		}
	}
	return nil
}

// ensureFacet implements one facet's idempotent parse-or-reuse logic. A
// format registered as a registry.ContainerOps gets genuinely
// independent per-facet parsing via containerFn. Every other (flat)
// format parsed everything in one Parse call already, so the facet
// simply re-runs that same parser and is marked Ok again; this is an
// approximation for flat formats but gives ClearParsingResults/Parse*
// well-defined, idempotent behavior uniformly across all formats.
func (f *File) ensureFacet(status *types.ParsingStatus, containerFn func(registry.ContainerOps) error) error {
	if *status == types.Ok {
		return nil
	}

	if ops := registry.GetContainer(f.Format); ops != nil {
		if err := containerFn(ops); err != nil {
			*status = types.CriticalFailure
			return err
		}
		*status = types.Ok
		return nil
	}

	rawParser := f.Parser_
	if rawParser == nil {
		*status = types.NotSupported
		return nil
	}
	parsed, err := runParser(rawParser, f.Reader_, f.Size, f.Path)
	if err != nil {
		*status = types.CriticalFailure
		return err
	}
	f.Tags = parsed.Tags
	f.Audio = parsed.Audio
	f.Tracks = parsed.Tracks
	f.Chapters = parsed.Chapters
	f.Attachments = parsed.Attachments
	f.Warnings = append(f.Warnings, parsed.Warnings...)
	f.Diagnostics = append(f.Diagnostics, parsed.Diagnostics...)
	*status = types.Ok
	return nil
}

// OpenContext opens a file with context support for cancellation.
//
// This is a thin wrapper around Open() that checks context before starting.
// Future enhancements (streaming, network files) will use context throughout
// the parsing process.
//
// Options can be provided just like with Open():
//
//	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
//	defer cancel()
//
//	file, err := audiometa.OpenContext(ctx, "song.flac",
//	    audiometa.WithStrictParsing(),
//	)
//	if err != nil {
//		return err
//	}
//	defer file.Close()
func OpenContext(ctx context.Context, path string, opts ...Option) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// TODO: In future, pass context through parsing for incremental cancellation
	return Open(path, opts...)
}

// OpenMany opens multiple audio files concurrently.
//
// Files are parsed in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths.
//
// If any file fails to open, all successfully opened files are closed
// and an error is returned.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//
//	files, err := audiometa.OpenMany(ctx, paths...)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer func() {
//		for _, f := range files {
//			f.Close()
//		}
//	}()
//
//	for _, f := range files {
//		fmt.Printf("%s: %s - %s\n", f.Format, f.Tags.Artist, f.Tags.Title)
//	}
func OpenMany(ctx context.Context, paths ...string) ([]*File, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*File, len(paths))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			file, err := Open(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			results[i] = file
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, file := range results {
			if file != nil {
				file.Close() //nolint:errcheck // best-effort cleanup after a sibling failed
			}
		}
		return nil, err
	}

	return results, nil
}

// FormatParser is the interface all format parsers implement.
//
// This interface is public to allow internal format packages to implement it,
// but it's not intended for external use. Do not implement custom parsers.
type FormatParser interface {
	// Parse extracts metadata from an audio file.
	// Returns a partially initialized File (Path, Format, Size set by caller).
	Parse(r io.ReaderAt, size int64, path string) (*File, error)
}

// ArtworkExtractor is an optional interface for parsers that support artwork extraction.
type ArtworkExtractor interface {
	// ExtractArtwork extracts embedded artwork from the file.
	ExtractArtwork(r io.ReaderAt, size int64, path string) ([]Artwork, error)
}

// findParser returns the registered parser for a format, checking the
// root package's own registry (mp3, m4a) first and internal/registry's
// separate registry (flac, ogg, and anything container-based) second.
// The two exist because internal/registry also serves ContainerOps
// formats, which have no business importing the root package; returns
// nil if neither has an entry.
func findParser(format Format) any {
	if p, ok := parsers[format]; ok {
		return p
	}
	if p := registry.Get(format); p != nil {
		return p
	}
	return nil
}

// parsers maps formats to their parsers.
// This will be populated in each format package's init() function.
var parsers = make(map[Format]FormatParser)

// RegisterParser registers a parser for a format.
// This is called by format packages during initialization (init functions).
//
// This function is public to allow internal format packages to register themselves,
// but it's not intended for external use. Do not call this function.
func RegisterParser(format Format, parser FormatParser) {
	parsers[format] = parser
}
