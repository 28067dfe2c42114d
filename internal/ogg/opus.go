package ogg

import (
	"encoding/binary"
	"fmt"

	"github.com/gocontainer/avmeta/internal/types"
	"github.com/gocontainer/avmeta/internal/vorbis"
)

// parseOpusHead parses the OpusHead identification header.
//
// The OpusHead header contains audio properties:
//   - Version (must be 1)
//   - Number of channels
//   - Pre-skip (samples to skip at start)
//   - Input sample rate (original recording rate, informational)
//   - Output gain (playback volume adjustment)
//   - Channel mapping family
//
// Note: Opus always outputs at 48kHz regardless of input sample rate.
//
// Returns an error if the header is invalid or unsupported.
func parseOpusHead(data []byte, file *types.File) error {
	if len(data) < 19 {
		return fmt.Errorf("OpusHead packet too short: %d bytes (need at least 19)", len(data))
	}

	// Verify "OpusHead" magic marker
	if string(data[0:8]) != "OpusHead" {
		return fmt.Errorf("invalid OpusHead magic: %q (expected \"OpusHead\")", string(data[0:8]))
	}

	// Verify version (must be 1)
	version := data[8]
	if version != 1 {
		return fmt.Errorf("unsupported Opus version: %d (only version 1 is supported)", version)
	}

	// Parse audio properties (all little-endian)
	channels := data[9]
	preSkip := binary.LittleEndian.Uint16(data[10:12])
	inputSampleRate := binary.LittleEndian.Uint32(data[12:16])
	outputGain := int16(binary.LittleEndian.Uint16(data[16:18]))
	mappingFamily := data[18]

	// Populate file.Audio
	file.Audio.Codec = "Opus"
	file.Audio.Container = containerOgg
	file.Audio.SampleRate = 48000 // Opus always outputs at 48kHz
	file.Audio.Channels = int(channels)
	file.Audio.Lossless = false
	file.Audio.VBR = true // Opus is VBR

	// Add informational warnings for non-default values
	if inputSampleRate != 48000 && inputSampleRate > 0 {
		file.Warnings = append(file.Warnings, types.Warning{
			Stage:   "technical",
			Message: fmt.Sprintf("original sample rate was %d Hz (Opus outputs at 48 kHz)", inputSampleRate),
		})
	}

	if outputGain != 0 {
		gainDB := float64(outputGain) / 256.0
		file.Warnings = append(file.Warnings, types.Warning{
			Stage:   "technical",
			Message: fmt.Sprintf("output gain: %.2f dB", gainDB),
		})
	}

	// Pre-skip and mapping family are informational, not needed for metadata
	_ = preSkip
	_ = mappingFamily

	return nil
}

// parseOpusTags parses the OpusTags comment header, delegating the wire
// decoding to the shared internal/vorbis codec. OpusTags uses the same
// vendor+field-list layout as a Vorbis comment header but with its own
// "OpusTags" magic and no trailing framing byte.
func parseOpusTags(data []byte, file *types.File) error {
	if len(data) < 8 {
		return fmt.Errorf("OpusTags packet too short: %d bytes (need at least 8)", len(data))
	}
	if string(data[0:8]) != "OpusTags" {
		return fmt.Errorf("invalid OpusTags magic: %q (expected \"OpusTags\")", string(data[0:8]))
	}

	comment, diags, err := vorbis.ParseBlock(data[8:], vorbis.ParseFlags{NoSignature: true, NoFramingByte: true})
	if err != nil {
		return fmt.Errorf("parse OpusTags block: %w", err)
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
