package ogg

import (
	"encoding/binary"
	"fmt"

	"github.com/gocontainer/avmeta/internal/types"
	"github.com/gocontainer/avmeta/internal/vorbis"
)

// parseVorbisIdentification parses the Vorbis identification header (packet type 0x01).
//
// The identification header contains audio properties:
//   - Sample rate
//   - Number of channels
//   - Bitrate (nominal, maximum, minimum)
//
// Returns an error if the header is invalid or too short.
func parseVorbisIdentification(data []byte, file *types.File) error {
	if len(data) < 30 {
		return fmt.Errorf("identification header too short: %d bytes", len(data))
	}

	// Verify packet type (0x01 = identification)
	if data[0] != 0x01 {
		return fmt.Errorf("not an identification header (type 0x%02x)", data[0])
	}

	// Verify "vorbis" magic marker
	if string(data[1:7]) != "vorbis" {
		return fmt.Errorf("invalid vorbis magic: %q", string(data[1:7]))
	}

	// Parse Vorbis version (should be 0)
	vorbisVersion := binary.LittleEndian.Uint32(data[7:11])
	if vorbisVersion != 0 {
		return fmt.Errorf("unsupported Vorbis version: %d", vorbisVersion)
	}

	// Parse audio properties (all little-endian)
	channels := data[11]
	sampleRate := binary.LittleEndian.Uint32(data[12:16])
	// bitrateMaximum := binary.LittleEndian.Uint32(data[16:20]) // Optional, can be 0
	bitrateNominal := binary.LittleEndian.Uint32(data[20:24])
	// bitrateMinimum := binary.LittleEndian.Uint32(data[24:28]) // Optional, can be 0

	// Populate file.Audio
	file.Audio.Codec = "Vorbis"
	file.Audio.Container = "Ogg"
	file.Audio.SampleRate = int(sampleRate)
	file.Audio.Channels = int(channels)
	file.Audio.Bitrate = int(bitrateNominal)
	file.Audio.Lossless = false
	file.Audio.VBR = true // Vorbis is typically VBR

	return nil
}

// parseVorbisComment parses the Vorbis comment header (packet type 0x03),
// delegating the wire decoding to the shared internal/vorbis codec. The
// Ogg encapsulation keeps both the "\x03vorbis" signature and the
// trailing framing byte, unlike FLAC's embedded copy.
func parseVorbisComment(data []byte, file *types.File) error {
	comment, diags, err := vorbis.ParseBlock(data, vorbis.ParseFlags{})
	if err != nil {
		return fmt.Errorf("parse Vorbis comment header: %w", err)
	}
	file.Diagnostics = append(file.Diagnostics, diags...)

	comment.ApplyTo(&file.Tags, &file.Audio.ReplayGain)

	pics, picDiags := comment.Pictures(vorbis.ParseFlags{})
	file.Diagnostics = append(file.Diagnostics, picDiags...)
	file.Artwork_ = append(file.Artwork_, pics...)

	if len(comment.Fields) > 0 {
		raw := make([]string, len(comment.Fields))
		for i, f := range comment.Fields {
			raw[i] = f.ID + "=" + f.Value.Text
		}
		file.Chapters = vorbis.ParseChapters(raw, file.Audio.Duration)
	}

	return nil
}
