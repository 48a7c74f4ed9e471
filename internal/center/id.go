package center

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/cristianoliveira/toastbox/internal/domain"
)

// NewID builds an id from a UUIDv7, which combines a millisecond timestamp
// with random bits. seq disambiguates ids minted by the same center.
func NewID(now time.Time, seq uint64) domain.ID {
	u, err := uuid.NewV7()
	if err != nil {
		return fallbackID(now, seq)
	}
	return domain.ID(fmt.Sprintf("%s-%d", u.String(), seq))
}

// fallbackID is used when the uuid source fails; it keeps the
// timestamp-plus-random shape with nanosecond resolution.
func fallbackID(now time.Time, seq uint64) domain.ID {
	var b [6]byte
	_, _ = rand.Read(b[:])
	return domain.ID(fmt.Sprintf("%x-%s-%d", now.UnixNano(), hex.EncodeToString(b[:]), seq))
}

func newSequencedGenerator() func(time.Time) domain.ID {
	var seq atomic.Uint64
	return func(now time.Time) domain.ID {
		return NewID(now, seq.Add(1))
	}
}
