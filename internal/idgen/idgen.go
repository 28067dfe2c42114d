// Package idgen generates identifiers used outside the metadata itself:
// attachment file UIDs and diagnostic correlation IDs.
package idgen

import (
	"crypto/rand"
	"encoding/binary"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// AttachmentUID returns a random, non-zero 64-bit value suitable for a
// Matroska AttachedFile's FileUID. Matroska forbids zero, so the low
// bits are forced on when the random draw happens to come up empty.
func AttachmentUID() uint64 {
	u := uuid.New()
	v := binary.BigEndian.Uint64(u[:8])
	if v == 0 {
		v = 1
	}
	return v
}

// CorrelationID returns a new lexically-sortable ID for a Diagnostic
// batch, so entries from a concurrent OpenMany run can be merged and
// sorted back into emission order.
func CorrelationID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
