package types

import "time"

// Track is a parsed codec/stream descriptor.
//
// None of the parsers in this module (FLAC, MP3, M4A/M4B, Ogg) fills
// File.Tracks, so it stays empty; stream properties are reported in
// File.Audio instead.
type Track struct {
	Format        string // codec identifier, e.g. "mp4a.40.2", "A_VORBIS", "PCM"
	Channels      int
	ChannelConfig int // raw channel-configuration code (ADTS) where applicable
	SampleRate    int
	BitDepth      int
	Duration      time.Duration
	Language      string // BCP-47 / ISO 639-2, format-dependent
	Label         string
}
