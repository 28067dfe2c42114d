// Package id3v1 reads and writes the 128-byte ID3v1 tag trailer used
// by plain MP3/ADTS streams alongside (or instead of) ID3v2.
package id3v1

import (
	"bytes"
	"strconv"
	"strings"

	binutil "github.com/gocontainer/avmeta/internal/binary"
	"github.com/gocontainer/avmeta/internal/types"
)

// Size is the fixed length of an ID3v1 tag, magic included.
const Size = 128

var genres = [...]string{
	"Blues", "Classic Rock", "Country", "Dance", "Disco", "Funk", "Grunge",
	"Hip-Hop", "Jazz", "Metal", "New Age", "Oldies", "Other", "Pop", "R&B",
	"Rap", "Reggae", "Rock", "Techno", "Industrial", "Alternative", "Ska",
	"Death Metal", "Pranks", "Soundtrack", "Euro-Techno", "Ambient",
	"Trip-Hop", "Vocal", "Jazz+Funk", "Fusion", "Trance", "Classical",
	"Instrumental", "Acid", "House", "Game", "Sound Clip", "Gospel",
	"Noise", "AlternRock", "Bass", "Soul", "Punk", "Space", "Meditative",
	"Instrumental Pop", "Instrumental Rock", "Ethnic", "Gothic",
	"Darkwave", "Techno-Industrial", "Electronic", "Pop-Folk",
	"Eurodance", "Dream", "Southern Rock", "Comedy", "Cult", "Gangsta",
	"Top 40", "Christian Rap", "Pop/Funk", "Jungle", "Native American",
	"Cabaret", "New Wave", "Psychedelic", "Rave", "Showtunes", "Trailer",
	"Lo-Fi", "Tribal", "Acid Punk", "Acid Jazz", "Polka", "Retro",
	"Musical", "Rock & Roll", "Hard Rock",
}

// Tag is a decoded ID3v1 (or ID3v1.1, distinguished by Track != 0)
// trailer.
type Tag struct {
	Title   string
	Artist  string
	Album   string
	Year    string
	Comment string
	Genre   string
	Track   int // 0 if the tag is plain ID3v1 rather than ID3v1.1
}

// FindAt reports whether the last 128 bytes of a size-byte stream form
// an ID3v1 tag (magic "TAG" at the start of that region) and, if so,
// its absolute start offset.
func FindAt(sr *binutil.SafeReader, size int64) (offset int64, ok bool) {
	if size < Size {
		return 0, false
	}
	offset = size - Size
	magic := make([]byte, 3)
	if err := sr.ReadAt(magic, offset, "ID3v1 magic"); err != nil {
		return 0, false
	}
	return offset, string(magic) == "TAG"
}

// Parse decodes the 128-byte region at offset into a Tag. Callers must
// have already confirmed the region via FindAt.
func Parse(sr *binutil.SafeReader, offset int64) (Tag, error) {
	buf := make([]byte, Size)
	if err := sr.ReadAt(buf, offset, "ID3v1 tag"); err != nil {
		return Tag{}, err
	}
	if string(buf[0:3]) != "TAG" {
		return Tag{}, &types.InvalidDataError{
			Path:   sr.Path(),
			What:   "ID3v1 magic",
			Offset: offset,
			Reason: "expected \"TAG\"",
		}
	}

	t := Tag{
		Title:   trimField(buf[3:33]),
		Artist:  trimField(buf[33:63]),
		Album:   trimField(buf[63:93]),
		Year:    trimField(buf[93:97]),
		Comment: trimField(buf[97:125]),
	}

	// ID3v1.1: byte 125 is zero and byte 126 holds the track number.
	if buf[125] == 0 && buf[126] != 0 {
		t.Track = int(buf[126])
		t.Comment = trimField(buf[97:125])
	}

	genreIdx := int(buf[127])
	if genreIdx >= 0 && genreIdx < len(genres) {
		t.Genre = genres[genreIdx]
	}

	return t, nil
}

// Encode renders t as a 128-byte ID3v1/ID3v1.1 trailer.
func Encode(t Tag) [Size]byte {
	var buf [Size]byte
	copy(buf[0:3], "TAG")
	putField(buf[3:33], t.Title)
	putField(buf[33:63], t.Artist)
	putField(buf[63:93], t.Album)
	putField(buf[93:97], t.Year)

	if t.Track > 0 && t.Track <= 255 {
		putField(buf[97:125], t.Comment)
		buf[125] = 0
		buf[126] = byte(t.Track)
	} else {
		putField(buf[97:125], t.Comment)
	}

	buf[127] = byte(genreIndex(t.Genre))
	return buf
}

func genreIndex(name string) int {
	for i, g := range genres {
		if strings.EqualFold(g, name) {
			return i
		}
	}
	return 255 // "Other"/unknown per convention
}

func trimField(b []byte) string {
	return strings.TrimRight(string(bytes.TrimRight(b, "\x00")), " ")
}

func putField(dst []byte, s string) {
	n := copy(dst, s)
	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
}

// YearAsInt parses the 4-digit Year field, returning 0 if it isn't a
// valid number (some encoders leave it blank or non-numeric).
func (t Tag) YearAsInt() int {
	n, err := strconv.Atoi(strings.TrimSpace(t.Year))
	if err != nil {
		return 0
	}
	return n
}
