package types

// ParsingStatus describes the outcome of parsing one facet of a File
// (its container header, tracks, tags, chapters, or attachments).
//
// Facets are independent: a CriticalFailure in one never regresses the
// status of another below NotParsedYet.
type ParsingStatus int

const (
	// NotParsedYet means the facet has not been requested yet, or its
	// cached result was discarded by ClearParsingResults.
	NotParsedYet ParsingStatus = iota // NotParsedYet
	// Ok means the facet parsed successfully (possibly with warnings).
	Ok // Ok
	// NotSupported means the format or file is recognized but this facet
	// has no engine for it (e.g. WAV has no tag facet), or a heuristic
	// skipped a deep scan (e.g. a Matroska file with no SeekHead larger
	// than the configured full-parse size limit).
	NotSupported // NotSupported
	// CriticalFailure means parsing the facet hit a structural problem
	// severe enough that no usable data could be produced for it.
	CriticalFailure // CriticalFailure
)

// String returns a human-readable status name.
func (s ParsingStatus) String() string {
	switch s {
	case NotParsedYet:
		return "NotParsedYet"
	case Ok:
		return "Ok"
	case NotSupported:
		return "NotSupported"
	case CriticalFailure:
		return "CriticalFailure"
	default:
		return "Unknown"
	}
}
