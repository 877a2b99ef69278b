package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidUUID     = errors.New("invalid UUID format")
	ErrNotUUIDv7       = errors.New("UUID must be version 7")
	ErrFutureTimestamp = errors.New("UUID timestamp is too far in the future")
)

// MaxFutureMinutes bounds how far ahead a UUIDv7's embedded timestamp may
// sit, allowing for client clock skew.
const MaxFutureMinutes = 1

// ValidateUUIDv7 checks that id parses as a version 7 UUID whose embedded
// timestamp is not implausibly far in the future. All goal IDs are minted
// server-side as UUIDv7, so anything else in a path parameter is a bad
// request rather than a lookup miss.
func ValidateUUIDv7(id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidUUID, err)
	}
	if parsed.Version() != 7 {
		return fmt.Errorf("%w: got version %d", ErrNotUUIDv7, parsed.Version())
	}

	// UUID.Time() counts 100ns intervals since Oct 15, 1582; for v7 it is
	// derived from the embedded Unix milliseconds.
	sec, nsec := parsed.Time().UnixTime()
	stamp := time.Unix(sec, nsec)

	limit := time.Now().Add(MaxFutureMinutes * time.Minute)
	if stamp.After(limit) {
		return fmt.Errorf("%w: %v is more than %d minute(s) ahead",
			ErrFutureTimestamp, stamp.Format(time.RFC3339), MaxFutureMinutes)
	}
	return nil
}
