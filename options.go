package audiometa

import "github.com/gocontainer/avmeta/internal/types"

// Option configures behavior when opening audio files.
//
// Options use the functional options pattern for clean, extensible APIs.
//
// Example:
//
//	file, err := audiometa.Open("song.flac",
//	    audiometa.WithStrictParsing(),
//	    audiometa.WithArtworkPreload(),
//	)
type Option func(*openOptions)

// openOptions holds configuration for opening files.
type openOptions struct {
	strictParsing  bool // Fail on any warning
	preloadArtwork bool // Load artwork immediately instead of lazily
	ignoreWarnings bool // Suppress all warnings
	maxArtworkSize int  // Maximum artwork size in bytes (0 = no limit)

	// forceFullParse skips the SeekHead/atom-index fast path and walks
	// the whole container linearly, for files whose index is suspected
	// stale or missing.
	forceFullParse bool

	// minPadding, maxPadding, and preferredPadding bound the rewrite
	// planner's splice-vs-rewrite decision on a subsequent Save/SaveAs;
	// recorded at Open time so applyChanges can see them without a
	// second option pass.
	minPadding       int64
	maxPadding       int64
	preferredPadding int64

	// tagPosition and indexPosition request where a container that
	// supports more than one placement should keep these regions;
	// forceTagPosition/forceIndexPosition turn an unsupported request
	// into a NotSupportedError instead of falling back silently.
	tagPosition        types.ElementPosition
	indexPosition      types.ElementPosition
	forceTagPosition   bool
	forceIndexPosition bool
}

// defaultOptions returns the default configuration.
func defaultOptions() *openOptions {
	return &openOptions{
		strictParsing:    false,
		preloadArtwork:   false,
		ignoreWarnings:   false,
		maxArtworkSize:   0, // No limit
		minPadding:       0,
		maxPadding:       0,
		preferredPadding: 0,
		tagPosition:      types.PositionKeep,
		indexPosition:    types.PositionKeep,
	}
}

// WithStrictParsing treats any warning as a fatal error.
//
// By default, audiometa continues parsing when it encounters issues
// like invalid tag encodings or corrupted artwork, returning warnings
// alongside the parsed data.
//
// With strict parsing enabled, any warning becomes a fatal error.
//
// Example:
//
//	file, err := audiometa.Open("song.flac", audiometa.WithStrictParsing())
//	// err != nil if ANY issue is encountered
func WithStrictParsing() Option {
	return func(o *openOptions) {
		o.strictParsing = true
	}
}

// WithArtworkPreload loads artwork immediately instead of lazily.
//
// By default, artwork is only loaded when ExtractArtwork() is called.
// This option loads it during Open() for convenience.
//
// Use this when you know you'll need the artwork and want to fail fast
// if artwork extraction has issues.
//
// Example:
//
//	file, err := audiometa.Open("song.flac", audiometa.WithArtworkPreload())
//	// file.ExtractArtwork() will return cached data
func WithArtworkPreload() Option {
	return func(o *openOptions) {
		o.preloadArtwork = true
	}
}

// WithIgnoreWarnings suppresses all warnings.
//
// By default, warnings about non-fatal issues (invalid encodings, etc.)
// are collected in File.Warnings. This option discards them.
//
// Use this for performance-critical code where you don't care about
// data quality issues.
//
// Example:
//
//	file, err := audiometa.Open("song.flac", audiometa.WithIgnoreWarnings())
//	// file.Warnings will always be empty
func WithIgnoreWarnings() Option {
	return func(o *openOptions) {
		o.ignoreWarnings = true
	}
}

// WithMaxArtworkSize sets a maximum size limit for artwork extraction.
//
// If artwork exceeds this size (in bytes), it will be skipped with a warning.
// This protects against excessively large embedded images.
//
// Default is 0 (no limit).
//
// Example:
//
//	// Limit artwork to 10MB
//	file, err := audiometa.Open("song.flac",
//	    audiometa.WithMaxArtworkSize(10*1024*1024),
//	)
func WithMaxArtworkSize(bytes int) Option {
	return func(o *openOptions) {
		o.maxArtworkSize = bytes
	}
}

// WithForceFullParse skips a container's SeekHead/index fast path and
// walks its structure linearly instead, for files whose index is
// suspected stale, corrupted, or simply absent in a way the container
// didn't flag.
func WithForceFullParse() Option {
	return func(o *openOptions) {
		o.forceFullParse = true
	}
}

// WithPaddingBudget bounds how much padding a later Save/SaveAs may
// absorb a size delta into (min/max) and how much padding to leave
// behind on a full rewrite (preferred). Values are recorded at Open time
// so they travel with the File into applyChanges without a second pass
// of options.
func WithPaddingBudget(min, max, preferred int64) Option {
	return func(o *openOptions) {
		o.minPadding = min
		o.maxPadding = max
		o.preferredPadding = preferred
	}
}

// WithTagPosition requests where a container that supports more than
// one placement should keep its Tags region on a later rewrite. force
// turns an unsupported request into a NotSupportedError instead of the
// container silently keeping the region where it already is.
func WithTagPosition(position types.ElementPosition, force bool) Option {
	return func(o *openOptions) {
		o.tagPosition = position
		o.forceTagPosition = force
	}
}

// WithIndexPosition is WithTagPosition's counterpart for a container's
// seek/index region (Matroska's SeekHead, for instance).
func WithIndexPosition(position types.ElementPosition, force bool) Option {
	return func(o *openOptions) {
		o.indexPosition = position
		o.forceIndexPosition = force
	}
}
