// Package mimekit sniffs MIME types for embedded binary payloads
// (cover art, Matroska attachments) whose wire format doesn't carry
// its own trustworthy MIME string, or carries one worth double-checking.
package mimekit

import "github.com/gabriel-vasile/mimetype"

// Detect returns the sniffed MIME type for data. Empty data yields
// "application/octet-stream".
func Detect(data []byte) string {
	return mimetype.Detect(data).String()
}

// Matches reports whether data's sniffed type, or one of its aliases,
// equals mt. Parent types in mimetype's detection tree do not match,
// and wildcards such as "image/*" are not supported.
func Matches(data []byte, mt string) bool {
	return mimetype.Detect(data).Is(mt)
}

// ExtensionFor returns the file extension (with leading dot) mimetype
// associates with data's sniffed type, or "" if none is known.
func ExtensionFor(data []byte) string {
	return mimetype.Detect(data).Extension()
}
