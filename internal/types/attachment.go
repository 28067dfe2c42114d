package types

import "fmt"

// Attachment is an arbitrary file embedded in a container (Matroska
// AttachedFile; MP4 containers have no native equivalent and always
// report zero attachments).
type Attachment struct {
	UID         uint64 // Matroska FileUID; zero where the format has no concept of one
	Name        string
	Description string
	MIMEType    string
	Data        []byte
}

// String returns a human-readable summary.
func (a Attachment) String() string {
	return fmt.Sprintf("%s (%s, %s)", a.Name, a.MIMEType, formatSize(len(a.Data)))
}
