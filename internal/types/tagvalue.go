package types

import "time"

// TagValueKind discriminates the payload carried by a TagValue.
type TagValueKind int

const (
	TagValueText TagValueKind = iota
	TagValueInteger
	TagValueDate
	TagValuePicture
	TagValueBinary
)

// TagValue is a typed scalar or binary variant, the smallest unit a
// format's codec reads or writes for one field.
//
// Only the member matching Kind is meaningful; the others are zero.
type TagValue struct {
	Kind     TagValueKind
	Text     string
	Encoding string // "UTF-8", "UTF-16LE", "ISO-8859-1", "" for non-text kinds
	Integer  int64
	Date     time.Time
	Picture  *Artwork
	Binary   []byte
}

// String renders the value for display/debugging. It does not attempt a
// lossless round-trip for binary/picture kinds.
func (v TagValue) String() string {
	switch v.Kind {
	case TagValueText:
		return v.Text
	case TagValueInteger:
		return itoa(v.Integer)
	case TagValueDate:
		return v.Date.Format("2006-01-02")
	case TagValuePicture:
		if v.Picture != nil {
			return v.Picture.String()
		}
		return "<picture>"
	case TagValueBinary:
		return binaryPreview(v.Binary)
	default:
		return ""
	}
}

func itoa(n int64) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func binaryPreview(b []byte) string {
	return formatSize(len(b)) + " of binary data"
}

// TagField is a single (identifier, value) entry in a Tag's multi-map,
// with optional type metadata and nested fields (EBML SimpleTag nesting,
// ID3v2 chapter sub-frames).
//
// The identifier type is format-specific: 4-byte ASCII for ID3v2.3+,
// free text for Vorbis comments, a hex-rendered 32-bit id for Matroska.
type TagField struct {
	ID     string
	Value  TagValue
	Type   string
	Nested []TagField
}
