package prayer

import (
	"log/slog"
	"time"
)

// Clock produces the current instant in a named timezone.
type Clock interface {
	Now(tzName string) time.Time
}

// SystemClock reads the system clock and localizes it to the requested
// timezone. An unresolvable timezone name degrades to UTC instead of
// failing the request; the upstream API owns that string and a bad value
// must not abort a user-facing command.
type SystemClock struct {
	log *slog.Logger
}

// NewSystemClock returns a Clock backed by time.Now.
func NewSystemClock(log *slog.Logger) *SystemClock {
	if log == nil {
		log = slog.Default()
	}

	return &SystemClock{log: log}
}

// Now returns the current instant localized to tzName, or to UTC when the
// name does not resolve.
func (c *SystemClock) Now(tzName string) time.Time {
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		c.log.Warn("unknown timezone, falling back to UTC", slog.String("timezone", tzName), slog.Any("error", err))
		loc = time.UTC
	}

	return time.Now().In(loc)
}
