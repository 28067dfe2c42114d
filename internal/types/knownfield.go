package types

// KnownField is a portable, format-independent metadata field identifier.
// Each concrete tag format supplies a two-way translation between
// KnownField and its own identifier space (see TagType.FieldID /
// TagType.KnownFieldFor implementations in the format packages).
type KnownField int

const (
	FieldInvalid KnownField = iota // Invalid

	FieldAlbum           // Album
	FieldArtist          // Artist
	FieldAlbumArtist     // AlbumArtist
	FieldTitle           // Title
	FieldSubtitle        // Subtitle
	FieldRecordDate      // RecordDate
	FieldOriginalDate    // OriginalDate
	FieldGenre           // Genre
	FieldTrackPosition   // TrackPosition
	FieldTrackTotal      // TrackTotal
	FieldDiskPosition    // DiskPosition
	FieldDiskTotal       // DiskTotal
	FieldComposer        // Composer
	FieldEncoder         // Encoder
	FieldEncoderSettings // EncoderSettings
	FieldDescription     // Description
	FieldGrouping        // Grouping
	FieldRecordLabel     // RecordLabel
	FieldPerformers      // Performers
	FieldLanguage        // Language
	FieldLyricist        // Lyricist
	FieldLyrics          // Lyrics
	FieldComment         // Comment
	FieldCover           // Cover
	FieldVendor          // Vendor
)

// String returns a human-readable field name.
func (f KnownField) String() string {
	names := [...]string{
		"Invalid", "Album", "Artist", "AlbumArtist", "Title", "Subtitle",
		"RecordDate", "OriginalDate", "Genre", "TrackPosition", "TrackTotal",
		"DiskPosition", "DiskTotal", "Composer", "Encoder", "EncoderSettings",
		"Description", "Grouping", "RecordLabel", "Performers", "Language",
		"Lyricist", "Lyrics", "Comment", "Cover", "Vendor",
	}
	if int(f) < 0 || int(f) >= len(names) {
		return "Unknown"
	}
	return names[f]
}

// Value returns the value currently stored for a KnownField.
//
// Integer fields (TrackPosition, TrackTotal, DiskPosition, DiskTotal)
// are rendered as TagValueInteger; everything else, RecordDate included
// (the Date string), as TagValueText. Artwork is not held by Tags, so
// FieldCover always returns the zero TagValue; cover art is read with
// File.ExtractArtwork().
func (t *Tags) Value(field KnownField) TagValue { //nolint:gocyclo // One branch per KnownField, mirrors SetValue
	switch field {
	case FieldAlbum:
		return textValue(t.Album)
	case FieldArtist:
		return textValue(t.Artist)
	case FieldAlbumArtist:
		return textValue(t.AlbumArtist)
	case FieldTitle:
		return textValue(t.Title)
	case FieldSubtitle:
		return textValue(t.Subtitle)
	case FieldRecordDate:
		return textValue(t.Date)
	case FieldOriginalDate:
		return textValue(t.OriginalDate)
	case FieldGenre:
		if len(t.Genres) > 0 {
			return textValue(t.Genres[0])
		}
		return TagValue{Kind: TagValueText}
	case FieldTrackPosition:
		return TagValue{Kind: TagValueInteger, Integer: int64(t.TrackNumber)}
	case FieldTrackTotal:
		return TagValue{Kind: TagValueInteger, Integer: int64(t.TrackTotal)}
	case FieldDiskPosition:
		return TagValue{Kind: TagValueInteger, Integer: int64(t.DiscNumber)}
	case FieldDiskTotal:
		return TagValue{Kind: TagValueInteger, Integer: int64(t.DiscTotal)}
	case FieldComposer:
		if len(t.Composers) > 0 {
			return textValue(t.Composers[0])
		}
		return TagValue{Kind: TagValueText}
	case FieldEncoder:
		return textValue(t.Encoder)
	case FieldEncoderSettings:
		return textValue(t.EncoderSettings)
	case FieldDescription:
		return textValue(t.Description)
	case FieldGrouping:
		return textValue(t.Grouping)
	case FieldRecordLabel:
		return textValue(t.Label)
	case FieldPerformers:
		if len(t.Performers) > 0 {
			return textValue(t.Performers[0])
		}
		return TagValue{Kind: TagValueText}
	case FieldLanguage:
		return textValue(t.Language)
	case FieldLyricist:
		return textValue(t.Lyricist)
	case FieldLyrics:
		return textValue(t.Lyrics)
	case FieldComment:
		return textValue(t.Comment)
	case FieldVendor:
		return textValue(t.Vendor)
	default:
		return TagValue{Kind: TagValueText}
	}
}

// SetValue assigns v to field, converting as needed. Returns false if
// field is unrecognized or v's Kind cannot be converted to the field's
// expected shape (spec's Conversion error kind, downgraded to a bool
// here since Tags has no diagnostics sink of its own).
func (t *Tags) SetValue(field KnownField, v TagValue) bool { //nolint:gocyclo // One branch per KnownField, mirrors Value
	switch field {
	case FieldAlbum:
		t.Album = v.Text
	case FieldArtist:
		t.Artist = v.Text
	case FieldAlbumArtist:
		t.AlbumArtist = v.Text
	case FieldTitle:
		t.Title = v.Text
	case FieldSubtitle:
		t.Subtitle = v.Text
	case FieldRecordDate:
		t.Date = v.Text
	case FieldOriginalDate:
		t.OriginalDate = v.Text
	case FieldGenre:
		t.Genres = setFirst(t.Genres, v.Text)
	case FieldTrackPosition:
		if v.Kind != TagValueInteger {
			return false
		}
		t.TrackNumber = int(v.Integer)
	case FieldTrackTotal:
		if v.Kind != TagValueInteger {
			return false
		}
		t.TrackTotal = int(v.Integer)
	case FieldDiskPosition:
		if v.Kind != TagValueInteger {
			return false
		}
		t.DiscNumber = int(v.Integer)
	case FieldDiskTotal:
		if v.Kind != TagValueInteger {
			return false
		}
		t.DiscTotal = int(v.Integer)
	case FieldComposer:
		t.Composers = setFirst(t.Composers, v.Text)
	case FieldEncoder:
		t.Encoder = v.Text
	case FieldEncoderSettings:
		t.EncoderSettings = v.Text
	case FieldDescription:
		t.Description = v.Text
	case FieldGrouping:
		t.Grouping = v.Text
	case FieldRecordLabel:
		t.Label = v.Text
	case FieldPerformers:
		t.Performers = setFirst(t.Performers, v.Text)
	case FieldLanguage:
		t.Language = v.Text
	case FieldLyricist:
		t.Lyricist = v.Text
	case FieldLyrics:
		t.Lyrics = v.Text
	case FieldComment:
		t.Comment = v.Text
	case FieldVendor:
		t.Vendor = v.Text
	default:
		return false
	}
	return true
}

func textValue(s string) TagValue {
	return TagValue{Kind: TagValueText, Text: s}
}

func setFirst(list []string, v string) []string {
	if v == "" {
		return list
	}
	if len(list) == 0 {
		return []string{v}
	}
	list[0] = v
	return list
}

// TagTarget identifies the scope a tag applies to in formats that
// support per-level tagging (Matroska Tag/Targets; ID3v2 and Vorbis
// comments are implicitly file-level and always report TargetFile).
type TagTarget int

const (
	TargetFile TagTarget = iota
	TargetTrack
	TargetChapter
	TargetEdition
	TargetAlbum
)

// String returns a human-readable target name.
func (t TagTarget) String() string {
	switch t {
	case TargetTrack:
		return "Track"
	case TargetChapter:
		return "Chapter"
	case TargetEdition:
		return "Edition"
	case TargetAlbum:
		return "Album"
	default:
		return "File"
	}
}

// TagType identifies the concrete wire format of a Tag instance.
type TagType int

const (
	TagTypeUnknown TagType = iota
	TagTypeID3v1
	TagTypeID3v2
	TagTypeVorbisComment
	TagTypeMP4Ilst
	TagTypeMatroskaTag
)

// String returns a human-readable tag type name.
func (t TagType) String() string {
	switch t {
	case TagTypeID3v1:
		return "ID3v1"
	case TagTypeID3v2:
		return "ID3v2"
	case TagTypeVorbisComment:
		return "VorbisComment"
	case TagTypeMP4Ilst:
		return "MP4Ilst"
	case TagTypeMatroskaTag:
		return "MatroskaTag"
	default:
		return "Unknown"
	}
}
