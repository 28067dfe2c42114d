package audiometa

import (
	"github.com/gocontainer/avmeta/internal/types"
)

// Track is an alias to types.Track for backwards compatibility.
// Re-exporting from internal/types to maintain public API.
type Track = types.Track

// Attachment is an alias to types.Attachment for backwards compatibility.
// Re-exporting from internal/types to maintain public API.
type Attachment = types.Attachment

// TagField is an alias to types.TagField for backwards compatibility.
// Re-exporting from internal/types to maintain public API.
type TagField = types.TagField

// TagValue is an alias to types.TagValue for backwards compatibility.
// Re-exporting from internal/types to maintain public API.
type TagValue = types.TagValue

// TagValueKind is an alias to types.TagValueKind for backwards compatibility.
// Re-exporting from internal/types to maintain public API.
type TagValueKind = types.TagValueKind

const (
	TagValueText    = types.TagValueText
	TagValueInteger = types.TagValueInteger
	TagValueDate    = types.TagValueDate
	TagValuePicture = types.TagValuePicture
	TagValueBinary  = types.TagValueBinary
)

// TagTarget is an alias to types.TagTarget for backwards compatibility.
// Re-exporting from internal/types to maintain public API.
type TagTarget = types.TagTarget

const (
	TargetFile    = types.TargetFile
	TargetTrack   = types.TargetTrack
	TargetChapter = types.TargetChapter
	TargetEdition = types.TargetEdition
	TargetAlbum   = types.TargetAlbum
)

// TagType is an alias to types.TagType for backwards compatibility.
// Re-exporting from internal/types to maintain public API.
type TagType = types.TagType

const (
	TagTypeUnknown       = types.TagTypeUnknown
	TagTypeID3v1         = types.TagTypeID3v1
	TagTypeID3v2         = types.TagTypeID3v2
	TagTypeVorbisComment = types.TagTypeVorbisComment
	TagTypeMP4Ilst       = types.TagTypeMP4Ilst
	TagTypeMatroskaTag   = types.TagTypeMatroskaTag
)

// KnownField is an alias to types.KnownField for backwards compatibility.
// Re-exporting from internal/types to maintain public API.
type KnownField = types.KnownField

const (
	FieldInvalid         = types.FieldInvalid
	FieldAlbum           = types.FieldAlbum
	FieldArtist          = types.FieldArtist
	FieldAlbumArtist     = types.FieldAlbumArtist
	FieldTitle           = types.FieldTitle
	FieldSubtitle        = types.FieldSubtitle
	FieldRecordDate      = types.FieldRecordDate
	FieldOriginalDate    = types.FieldOriginalDate
	FieldGenre           = types.FieldGenre
	FieldTrackPosition   = types.FieldTrackPosition
	FieldTrackTotal      = types.FieldTrackTotal
	FieldDiskPosition    = types.FieldDiskPosition
	FieldDiskTotal       = types.FieldDiskTotal
	FieldComposer        = types.FieldComposer
	FieldEncoder         = types.FieldEncoder
	FieldEncoderSettings = types.FieldEncoderSettings
	FieldDescription     = types.FieldDescription
	FieldGrouping        = types.FieldGrouping
	FieldRecordLabel     = types.FieldRecordLabel
	FieldPerformers      = types.FieldPerformers
	FieldLanguage        = types.FieldLanguage
	FieldLyricist        = types.FieldLyricist
	FieldLyrics          = types.FieldLyrics
	FieldComment         = types.FieldComment
	FieldCover           = types.FieldCover
	FieldVendor          = types.FieldVendor
)

// ParsingStatus is an alias to types.ParsingStatus for backwards compatibility.
// Re-exporting from internal/types to maintain public API.
type ParsingStatus = types.ParsingStatus

const (
	NotParsedYet    = types.NotParsedYet
	Ok              = types.Ok
	NotSupported    = types.NotSupported
	CriticalFailure = types.CriticalFailure
)

// Diagnostic is an alias to types.Diagnostic for backwards compatibility.
// Re-exporting from internal/types to maintain public API.
type Diagnostic = types.Diagnostic

// DiagnosticLevel is an alias to types.DiagnosticLevel for backwards compatibility.
// Re-exporting from internal/types to maintain public API.
type DiagnosticLevel = types.DiagnosticLevel

const (
	DiagDebug    = types.DiagDebug
	DiagInfo     = types.DiagInfo
	DiagWarning  = types.DiagWarning
	DiagCritical = types.DiagCritical
)

// ElementPosition is an alias to types.ElementPosition for backwards compatibility.
// Re-exporting from internal/types to maintain public API.
type ElementPosition = types.ElementPosition

const (
	PositionKeep       = types.PositionKeep
	PositionBeforeData = types.PositionBeforeData
	PositionAfterData  = types.PositionAfterData
)

// InvalidDataError is an alias to types.InvalidDataError for backwards compatibility.
// Re-exporting from internal/types to maintain public API.
type InvalidDataError = types.InvalidDataError

// TruncatedDataError is an alias to types.TruncatedDataError for backwards compatibility.
// Re-exporting from internal/types to maintain public API.
type TruncatedDataError = types.TruncatedDataError

// ConversionError is an alias to types.ConversionError for backwards compatibility.
// Re-exporting from internal/types to maintain public API.
type ConversionError = types.ConversionError

// NotSupportedError is an alias to types.NotSupportedError for backwards compatibility.
// Re-exporting from internal/types to maintain public API.
type NotSupportedError = types.NotSupportedError

// OperationAbortedError is an alias to types.OperationAbortedError for backwards compatibility.
// Re-exporting from internal/types to maintain public API.
type OperationAbortedError = types.OperationAbortedError
