package types

import "fmt"

// OutOfBoundsError is returned when attempting to read beyond file bounds.
type OutOfBoundsError struct {
	Path   string
	What   string
	Offset int64
	Length int
	Size   int64
}

func (e *OutOfBoundsError) Error() string {
	if e.Offset >= e.Size {
		return fmt.Sprintf("%s: offset %d out of bounds (file size: %d) while reading %s",
			e.Path, e.Offset, e.Size, e.What)
	}
	return fmt.Sprintf("%s: read of %d bytes at offset %d would exceed file size %d while reading %s",
		e.Path, e.Length, e.Offset, e.Size, e.What)
}

// UnsupportedFormatError is returned when the file format is not recognized
// or no parser is available for it.
type UnsupportedFormatError struct {
	Path   string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported format: %s", e.Path, e.Reason)
}

// CorruptedFileError is returned when file structure is invalid.
type CorruptedFileError struct {
	Path   string
	Reason string
	Offset int64
}

func (e *CorruptedFileError) Error() string {
	return fmt.Sprintf("%s: corrupted file at offset %d: %s", e.Path, e.Offset, e.Reason)
}

// Warning represents a non-fatal issue encountered during parsing.
//
// Warnings indicate problems that don't prevent metadata extraction but
// may indicate corrupted or unusual data. Examples include:
//   - Missing optional fields
//   - Invalid encoding in a tag
//   - Corrupted artwork
//   - Unknown tag keys
//
// Warnings are collected in File.Warnings during parsing.
type Warning struct {
	// Stage where the warning occurred
	Stage string // "metadata", "technical", "chapters", "artwork"

	// Warning message
	Message string

	// File offset where the issue occurred (0 if not applicable)
	Offset int64
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("%s (at offset %d): %s", w.Stage, w.Offset, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}

// UnsupportedWriteError indicates write is not supported for this format.
type UnsupportedWriteError struct {
	Reason string
	Format Format
}

func (e *UnsupportedWriteError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("write not supported for %s: %s", e.Format, e.Reason)
	}
	return fmt.Sprintf("write not supported for %s", e.Format)
}

// InvalidDataError is returned when a structure is well-formed enough to
// locate but its contents violate the format's own rules (a Vorbis
// comment vendor length longer than the element that carries it, an
// EBML element ID that decodes to the reserved all-ones pattern).
type InvalidDataError struct {
	Path   string
	What   string
	Reason string
	Offset int64
}

func (e *InvalidDataError) Error() string {
	return fmt.Sprintf("%s: invalid %s at offset %d: %s", e.Path, e.What, e.Offset, e.Reason)
}

// TruncatedDataError is returned when a read stops at EOF before a
// structure that declared a larger size could be fully consumed.
type TruncatedDataError struct {
	Path   string
	What   string
	Offset int64
	Wanted int64
	Got    int64
}

func (e *TruncatedDataError) Error() string {
	return fmt.Sprintf("%s: truncated %s at offset %d: wanted %d bytes, got %d",
		e.Path, e.What, e.Offset, e.Wanted, e.Got)
}

// ConversionError is returned when SetValue or a codec-level writer is
// asked to store a TagValue whose Kind cannot be represented by the
// target field or wire type (a TagValueBinary assigned to a text field,
// an Integer out of the wire format's range).
type ConversionError struct {
	Field    KnownField
	FromKind TagValueKind
	Reason   string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot store %v value into field %s: %s", e.FromKind, e.Field, e.Reason)
}

// NotSupportedError is returned by an operation a container or tag
// format does not implement (rewrite.Plan returns it when a forced
// tag/index position is not supported by the container).
type NotSupportedError struct {
	Operation string
	Format    Format
}

func (e *NotSupportedError) Error() string {
	return fmt.Sprintf("%s not supported for %s", e.Operation, e.Format)
}

// OperationAbortedError is returned when an AbortableProgressFeedback
// callback requests cancellation mid-operation. The partially written
// temp file, if any, has already been removed by the time this error
// reaches the caller.
type OperationAbortedError struct {
	Operation string
	Stage     string
}

func (e *OperationAbortedError) Error() string {
	return fmt.Sprintf("%s aborted during %s", e.Operation, e.Stage)
}
