package prayer

import (
	"context"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/mysolah/solah-bot/internal/errors"
)

// NextPrayer describes the upcoming prayer relative to a given instant.
type NextPrayer struct {
	Name     Name
	At       time.Time // absolute instant in the target timezone
	Tomorrow bool
	Until    time.Duration
}

// FetchTomorrowFunc lazily fetches the next calendar day's timings. It is
// invoked at most once, and only when no prayer remains today.
type FetchTomorrowFunc func(ctx context.Context) (*Timings, error)

// ResolveNext scans today's timings in canonical order and returns the
// first prayer whose wall-clock time is strictly after now's time-of-day.
// A prayer at exactly the current minute counts as already past; there is
// no tolerance window. When every prayer today has passed, tomorrow's
// timings are fetched and Fajr is selected with Tomorrow set. A failed
// tomorrow fetch propagates verbatim.
func ResolveNext(ctx context.Context, today *Timings, now time.Time, fetchTomorrow FetchTomorrowFunc) (*NextPrayer, error) {
	for _, name := range Order {
		at, err := atClock(today.Times[name], now)
		if err != nil {
			return nil, err
		}

		if at.After(now) {
			return &NextPrayer{
				Name:  name,
				At:    at,
				Until: at.Sub(now),
			}, nil
		}
	}

	tomorrow, err := fetchTomorrow(ctx)
	if err != nil {
		return nil, err
	}

	at, err := atClock(tomorrow.Times[Fajr], now)
	if err != nil {
		return nil, err
	}
	at = at.AddDate(0, 0, 1)

	until := at.Sub(now)
	if until < 0 {
		until = 0
	}

	return &NextPrayer{
		Name:     Fajr,
		At:       at,
		Tomorrow: true,
		Until:    until,
	}, nil
}

// atClock combines an "HH:MM" string with now's calendar date and timezone.
func atClock(value string, now time.Time) (time.Time, error) {
	hour, minute, err := parseClock(value)
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location()), nil
}

func parseClock(value string) (int, int, error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, 0, apperrors.NewUpstreamDataError(serviceName, "API returned invalid data.")
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, apperrors.NewUpstreamDataError(serviceName, "API returned invalid data.")
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, apperrors.NewUpstreamDataError(serviceName, "API returned invalid data.")
	}

	return hour, minute, nil
}
