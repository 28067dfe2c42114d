// Package vorbis provides the Vorbis comment codec shared by FLAC, Ogg
// Vorbis, and Ogg Opus: all three carry the same vendor+KEY=VALUE field
// list, differing only in the framing around it (signature bytes, a
// trailing framing bit) which ParseFlags lets each caller describe.
package vorbis

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gocontainer/avmeta/internal/binary"
	"github.com/gocontainer/avmeta/internal/types"
)

// ParseFlags describe how a concrete wire variant deviates from the
// canonical comment header: FLAC's METADATA_BLOCK_VORBIS_COMMENT has
// neither the leading "\x03vorbis" signature nor the trailing framing
// bit; Ogg Opus's OpusTags header has no framing bit either.
type ParseFlags struct {
	NoSignature   bool
	NoFramingByte bool
	NoCovers      bool
}

// Comment is a parsed comment header: a vendor string and an ordered,
// case-preserved KEY=VALUE field list.
type Comment struct {
	Vendor string
	Fields []types.TagField
}

// ParseBlock decodes a Vorbis comment block per the wire layout in
// https://xiph.org/vorbis/doc/v-comment.html: an optional signature
// (a packet-type byte in the range 0x01-0x05, followed by "vorbis"), an LE32
// vendor length plus UTF-8 vendor string, an LE32 field count, each
// field as an LE32-length-prefixed "KEY=VALUE" string, and an optional
// trailing framing byte whose low bit must be set.
//
// Truncation inside the field list stops the loop and reports a
// Warning diagnostic rather than failing outright, since the vendor and
// any fields already read are still usable.
func ParseBlock(data []byte, flags ParseFlags) (Comment, []types.Diagnostic, error) {
	var diags []types.Diagnostic
	offset := 0

	if !flags.NoSignature {
		if len(data) < 7 {
			return Comment{}, diags, &types.TruncatedDataError{
				What: "Vorbis comment signature", Wanted: 7, Got: int64(len(data)),
			}
		}
		if data[0] < 0x01 || data[0] > 0x05 {
			return Comment{}, diags, &types.InvalidDataError{
				What: "Vorbis packet type", Reason: fmt.Sprintf("unexpected leading byte 0x%02x", data[0]),
			}
		}
		if string(data[1:7]) != "vorbis" {
			return Comment{}, diags, &types.InvalidDataError{
				What: "Vorbis signature", Reason: fmt.Sprintf("got %q", data[1:7]),
			}
		}
		offset = 7
	}

	vendor, n, err := readLengthPrefixed(data, offset, "vendor string")
	if err != nil {
		return Comment{}, diags, err
	}
	offset = n
	if !utf8.Valid(vendor) {
		diags = append(diags, types.Diagnostic{
			Level: types.DiagWarning, Stage: "tags", Offset: int64(offset),
			Message: "Vorbis vendor string is not valid UTF-8",
		})
	}

	if offset+4 > len(data) {
		return Comment{}, diags, &types.TruncatedDataError{
			What: "field count", Offset: int64(offset), Wanted: 4, Got: int64(len(data) - offset),
		}
	}
	count := leUint32(data[offset:])
	offset += 4

	c := Comment{Vendor: string(vendor)}
	for i := uint32(0); i < count; i++ {
		raw, next, err := readLengthPrefixed(data, offset, fmt.Sprintf("field %d", i))
		if err != nil {
			diags = append(diags, types.Diagnostic{
				Level: types.DiagWarning, Stage: "tags", Offset: int64(offset),
				Message: fmt.Sprintf("truncated field %d, stopping early: %v", i, err),
			})
			break
		}
		offset = next
		if !utf8.Valid(raw) {
			diags = append(diags, types.Diagnostic{
				Level: types.DiagWarning, Stage: "tags", Offset: int64(offset),
				Message: fmt.Sprintf("field %d is not valid UTF-8", i),
			})
		}
		key, value, ok := splitField(string(raw))
		if !ok {
			diags = append(diags, types.Diagnostic{
				Level: types.DiagWarning, Stage: "tags", Offset: int64(offset),
				Message: fmt.Sprintf("field %d has no '=' separator: %q", i, raw),
			})
			continue
		}
		c.Fields = append(c.Fields, types.TagField{
			ID: key, Type: "vorbis-comment",
			Value: types.TagValue{Kind: types.TagValueText, Text: value},
		})
	}

	if !flags.NoFramingByte && offset < len(data) {
		if data[offset]&0x01 == 0 {
			diags = append(diags, types.Diagnostic{
				Level: types.DiagWarning, Stage: "tags", Offset: int64(offset),
				Message: "Vorbis comment framing bit not set",
			})
		}
	}

	return c, diags, nil
}

func readLengthPrefixed(data []byte, offset int, what string) ([]byte, int, error) {
	if offset+4 > len(data) {
		return nil, 0, &types.TruncatedDataError{What: what + " length", Offset: int64(offset), Wanted: 4, Got: int64(len(data) - offset)}
	}
	length := int(leUint32(data[offset:]))
	offset += 4
	if length < 0 || offset+length > len(data) {
		return nil, 0, &types.TruncatedDataError{What: what, Offset: int64(offset), Wanted: int64(length), Got: int64(len(data) - offset)}
	}
	return data[offset : offset+length], offset + length, nil
}

func splitField(s string) (key, value string, ok bool) {
	eq := strings.IndexByte(s, '=')
	if eq < 0 {
		return "", "", false
	}
	return s[:eq], s[eq+1:], true
}

func leUint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// ApplyTo maps c's fields onto tags (and rg, when a REPLAYGAIN_* field is
// present), normalizing a bare YEAR field into DATE when DATE itself is
// absent (spec's YEAR->DATE rule). Field matching is case-insensitive;
// the original case is preserved in the raw tag map via Tags.Set.
func (c Comment) ApplyTo(tags *types.Tags, rg **types.ReplayGainInfo) {
	tags.Vendor = c.Vendor
	var sawYear string
	for _, f := range c.Fields {
		if strings.EqualFold(f.ID, "YEAR") {
			sawYear = f.Value.Text
		}
		ApplyField(tags, rg, f.ID, f.Value.Text)
	}
	if tags.Date == "" && sawYear != "" {
		tags.Date = sawYear
		if year, err := strconv.Atoi(sawYear); err == nil {
			tags.Year = year
		}
	}
}

// ApplyField maps a single KEY=VALUE comment field onto tags (and rg for
// REPLAYGAIN_* keys), in addition to recording it in tags' raw map via
// Tags.Set. Key matching is case-insensitive. A bare YEAR field is left
// to the caller to fold into Date (see ApplyTo); applied on its own it
// has no dedicated Tags field.
func ApplyField(tags *types.Tags, rg **types.ReplayGainInfo, key, value string) {
	switch strings.ToUpper(key) {
	case "TITLE":
		tags.Title = value
	case "SUBTITLE":
		tags.Subtitle = value
	case "ARTIST":
		tags.Artist = value
		tags.Artists = append(tags.Artists, value)
	case "ALBUM":
		tags.Album = value
	case "ALBUMARTIST":
		tags.AlbumArtist = value
	case "DATE":
		tags.Date = value
		if len(value) >= 4 {
			if year, err := strconv.Atoi(value[:4]); err == nil && year > 0 {
				tags.Year = year
			}
		}
	case "ORIGINALDATE":
		tags.OriginalDate = value
	case "TRACKNUMBER":
		tags.TrackNumber = atoiBestEffort(value)
	case "TRACKTOTAL", "TOTALTRACKS":
		tags.TrackTotal = atoiBestEffort(value)
	case "DISCNUMBER":
		tags.DiscNumber = atoiBestEffort(value)
	case "DISCTOTAL", "TOTALDISCS":
		tags.DiscTotal = atoiBestEffort(value)
	case "GENRE":
		tags.Genres = append(tags.Genres, value)
	case "COMPOSER":
		tags.Composers = append(tags.Composers, value)
	case "PERFORMER":
		tags.Performers = append(tags.Performers, value)
	case "COMMENT":
		tags.Comment = value
	case "LYRICS":
		tags.Lyrics = value
	case "NARRATOR":
		tags.Narrator = value
	case "PUBLISHER":
		tags.Publisher = value
	case "SERIES":
		tags.Series = value
	case "SERIESPART":
		tags.SeriesPart = value
	case "ISBN":
		tags.ISBN = value
	case "ASIN", "AUDIBLE_ASIN":
		tags.ASIN = value
	case "LANGUAGE", "LANG":
		tags.Language = value
	case "DESCRIPTION":
		if tags.Description == "" {
			tags.Description = value
		}
	case "MUSICBRAINZ_TRACKID":
		tags.MusicBrainzTrackID = value
	case "MUSICBRAINZ_ALBUMID":
		tags.MusicBrainzAlbumID = value
	case "MUSICBRAINZ_ARTISTID":
		tags.MusicBrainzArtistID = value
	case "ISRC":
		tags.ISRC = value
	case "BARCODE":
		tags.Barcode = value
	case "CATALOGNUMBER":
		tags.CatalogNumber = value
	case "LABEL":
		tags.Label = value
	case "COPYRIGHT":
		tags.Copyright = value
	case "ENCODER":
		tags.Encoder = value
	case "REPLAYGAIN_TRACK_GAIN":
		ensureReplayGain(rg).TrackGain = parseReplayGainValue(value)
	case "REPLAYGAIN_TRACK_PEAK":
		ensureReplayGain(rg).TrackPeak = parseReplayGainPeak(value)
	case "REPLAYGAIN_ALBUM_GAIN":
		ensureReplayGain(rg).AlbumGain = parseReplayGainValue(value)
	case "REPLAYGAIN_ALBUM_PEAK":
		ensureReplayGain(rg).AlbumPeak = parseReplayGainPeak(value)
	}
	tags.Set(key, value)
}

func ensureReplayGain(rg **types.ReplayGainInfo) *types.ReplayGainInfo {
	if *rg == nil {
		*rg = &types.ReplayGainInfo{}
	}
	return *rg
}

func atoiBestEffort(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s)) //nolint:errcheck // best-effort, zero value is fine
	return n
}

// parseReplayGainValue parses a ReplayGain gain value like "-6.50 dB" or "-6.50".
func parseReplayGainValue(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, " dB")
	s = strings.TrimSuffix(s, "dB")
	val, _ := strconv.ParseFloat(strings.TrimSpace(s), 64) //nolint:errcheck // best-effort, zero value is fine
	return val
}

// parseReplayGainPeak parses a ReplayGain peak value like "0.988127".
func parseReplayGainPeak(s string) float64 {
	val, _ := strconv.ParseFloat(strings.TrimSpace(s), 64) //nolint:errcheck // best-effort, zero value is fine
	return val
}

// Pictures decodes the Xiph "METADATA_BLOCK_PICTURE" convention (a
// base64-encoded FLAC PICTURE block) and the legacy "COVERART" field
// (raw base64 image data, MIME type in a sibling COVERART_MIME field)
// into Artwork. Returns nothing when flags.NoCovers is set.
func (c Comment) Pictures(flags ParseFlags) ([]types.Artwork, []types.Diagnostic) {
	if flags.NoCovers {
		return nil, nil
	}
	var pics []types.Artwork
	var diags []types.Diagnostic
	var coverArtMIME string
	for _, f := range c.Fields {
		if strings.EqualFold(f.ID, "COVERART_MIME") {
			coverArtMIME = f.Value.Text
		}
	}
	for _, f := range c.Fields {
		switch strings.ToUpper(f.ID) {
		case "METADATA_BLOCK_PICTURE":
			raw, err := base64.StdEncoding.DecodeString(f.Value.Text)
			if err != nil {
				diags = append(diags, types.Diagnostic{Level: types.DiagWarning, Stage: "artwork", Message: "invalid base64 in METADATA_BLOCK_PICTURE"})
				continue
			}
			pic, err := decodeFLACPictureBlock(raw)
			if err != nil {
				diags = append(diags, types.Diagnostic{Level: types.DiagWarning, Stage: "artwork", Message: "malformed METADATA_BLOCK_PICTURE: " + err.Error()})
				continue
			}
			pics = append(pics, pic)
		case "COVERART":
			raw, err := base64.StdEncoding.DecodeString(f.Value.Text)
			if err != nil {
				diags = append(diags, types.Diagnostic{Level: types.DiagWarning, Stage: "artwork", Message: "invalid base64 in COVERART"})
				continue
			}
			pics = append(pics, types.Artwork{
				Data:     raw,
				MIMEType: coverArtMIME,
				Type:     types.ArtworkFrontCover,
			})
		}
	}
	return pics, diags
}

// decodeFLACPictureBlock parses the structure the FLAC spec defines for
// a PICTURE metadata block, reused verbatim by the METADATA_BLOCK_PICTURE
// Vorbis comment convention.
func decodeFLACPictureBlock(data []byte) (types.Artwork, error) {
	sr := binary.NewSafeReader(sliceReaderAt(data), int64(len(data)), "METADATA_BLOCK_PICTURE")
	pictureType, err := binary.Read[uint32](sr, 0, "picture type")
	if err != nil {
		return types.Artwork{}, err
	}
	mimeLen, err := binary.Read[uint32](sr, 4, "MIME length")
	if err != nil {
		return types.Artwork{}, err
	}
	off := int64(8)
	mime := make([]byte, mimeLen)
	if err := sr.ReadAt(mime, off, "MIME type"); err != nil {
		return types.Artwork{}, err
	}
	off += int64(mimeLen)
	descLen, err := binary.Read[uint32](sr, off, "description length")
	if err != nil {
		return types.Artwork{}, err
	}
	off += 4
	desc := make([]byte, descLen)
	if descLen > 0 {
		if err := sr.ReadAt(desc, off, "description"); err != nil {
			return types.Artwork{}, err
		}
	}
	off += int64(descLen)
	width, err := binary.Read[uint32](sr, off, "width")
	if err != nil {
		return types.Artwork{}, err
	}
	height, err := binary.Read[uint32](sr, off+4, "height")
	if err != nil {
		return types.Artwork{}, err
	}
	off += 16 // width, height, color depth, indexed colors
	dataLen, err := binary.Read[uint32](sr, off, "picture data length")
	if err != nil {
		return types.Artwork{}, err
	}
	off += 4
	pic := make([]byte, dataLen)
	if err := sr.ReadAt(pic, off, "picture data"); err != nil {
		return types.Artwork{}, err
	}

	artType := types.ArtworkOther
	switch pictureType {
	case 3:
		artType = types.ArtworkFrontCover
	case 4:
		artType = types.ArtworkBackCover
	}

	return types.Artwork{
		Data: pic, MIMEType: string(mime), Description: string(desc),
		Width: int(width), Height: int(height), Type: artType,
	}, nil
}

type sliceReaderAt []byte

func (s sliceReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= int64(len(s)) {
		return 0, fmt.Errorf("offset %d out of range", off)
	}
	n := copy(p, s[off:])
	return n, nil
}

// Make serializes c back into a comment header, mirroring ParseBlock's
// layout. The field count is written as a placeholder and back-patched
// once every field has been encoded, via SafeWriter's seekable buffer.
func Make(c Comment, flags ParseFlags) ([]byte, error) {
	w := binary.NewSeekableWriter()

	if !flags.NoSignature {
		if err := w.WriteBytes([]byte{0x03}); err != nil {
			return nil, err
		}
		if err := w.WriteString("vorbis"); err != nil {
			return nil, err
		}
	}

	vendor := []byte(c.Vendor)
	if err := binary.WriteLE(w, uint32(len(vendor))); err != nil {
		return nil, err
	}
	if err := w.WriteBytes(vendor); err != nil {
		return nil, err
	}

	countOffset := w.Offset()
	if err := binary.WriteLE(w, uint32(0)); err != nil {
		return nil, err
	}

	var written uint32
	for _, f := range c.Fields {
		raw := f.ID + "=" + f.Value.Text
		if err := binary.WriteLE(w, uint32(len(raw))); err != nil {
			return nil, err
		}
		if err := w.WriteString(raw); err != nil {
			return nil, err
		}
		written++
	}

	if err := w.PatchUint32LE(countOffset, written); err != nil {
		return nil, err
	}

	if !flags.NoFramingByte {
		if err := w.WriteBytes([]byte{0x01}); err != nil {
			return nil, err
		}
	}

	return w.Bytes()
}
