package types

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// IDGenerator allocates segment identifiers.
// Injected into the converter so parsing stays free of hidden global state.
type IDGenerator interface {
	NewSegmentID() SegmentID
}

// UUIDGenerator allocates UUIDv7 segment identifiers.
type UUIDGenerator struct{}

// NewSegmentID generates a UUIDv7 segment identifier.
// Panics on clock regression (uuid.Must); acceptable for ID generation.
func (UUIDGenerator) NewSegmentID() SegmentID {
	return SegmentID(uuid.Must(uuid.NewV7()).String())
}

// SequenceGenerator allocates deterministic identifiers of the form
// "<prefix>-<n>". Safe for concurrent use.
type SequenceGenerator struct {
	Prefix string
	next   atomic.Uint64
}

// NewSegmentID returns the next identifier in the sequence.
func (g *SequenceGenerator) NewSegmentID() SegmentID {
	return SegmentID(fmt.Sprintf("%s-%d", g.Prefix, g.next.Add(1)))
}

// ParseSegmentID validates and converts a string to a UUID-shaped SegmentID.
// Rejects malformed UUIDs to prevent invalid IDs from entering the system.
func ParseSegmentID(s string) (SegmentID, error) {
	_, err := uuid.Parse(s)
	if err != nil {
		return "", err
	}
	return SegmentID(s), nil
}

// SegmentIDTime extracts the timestamp embedded in a UUIDv7 segment ID.
// Returns zero time for non-UUID IDs; caller should check IsZero().
func SegmentIDTime(id SegmentID) time.Time {
	u, err := uuid.Parse(string(id))
	if err != nil || u.Version() != 7 {
		return time.Time{}
	}
	sec, nsec := u.Time().UnixTime()
	return time.Unix(sec, nsec)
}
