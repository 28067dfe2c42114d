package id3v1

import (
	"bytes"
	"testing"

	binutil "github.com/gocontainer/avmeta/internal/binary"
)

func TestRoundTrip_PlainTag(t *testing.T) {
	want := Tag{
		Title:   "Test Title",
		Artist:  "Test Artist",
		Album:   "Test Album",
		Year:    "1999",
		Comment: "a comment",
		Genre:   "Rock",
	}

	encoded := Encode(want)
	data := append(make([]byte, 1000), encoded[:]...) //nolint:gocritic // test fixture

	sr := binutil.NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.mp3")
	offset, ok := FindAt(sr, int64(len(data)))
	if !ok {
		t.Fatal("FindAt did not recognize the tag")
	}

	got, err := Parse(sr, offset)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if got.Title != want.Title || got.Artist != want.Artist || got.Album != want.Album ||
		got.Year != want.Year || got.Comment != want.Comment || got.Genre != want.Genre {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestRoundTrip_TrackNumber(t *testing.T) {
	want := Tag{Title: "T", Artist: "A", Track: 7}

	encoded := Encode(want)
	sr := binutil.NewSafeReader(bytes.NewReader(encoded[:]), Size, "test.mp3")

	got, err := Parse(sr, 0)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got.Track != 7 {
		t.Errorf("Track = %d, want 7", got.Track)
	}
}

func TestFindAt_NoTag(t *testing.T) {
	data := make([]byte, 200)
	sr := binutil.NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.mp3")
	if _, ok := FindAt(sr, int64(len(data))); ok {
		t.Error("FindAt reported a tag where none exists")
	}
}
