package prayer

import (
	"context"
	"log/slog"

	"github.com/mysolah/solah-bot/internal/location"
)

// TimingsFetcher is the subset of Client the session depends on.
type TimingsFetcher interface {
	FetchTimings(ctx context.Context, city, country, date string) (*Timings, error)
}

// Session orchestrates a single user request: location lookup, timings
// fetch, and next-prayer resolution. The first failure wins; there are no
// partial results.
type Session struct {
	store  *location.Store
	client TimingsFetcher
	clock  Clock
	log    *slog.Logger
}

// NewSession wires the session dependencies.
func NewSession(store *location.Store, client TimingsFetcher, clock Clock, log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}

	return &Session{
		store:  store,
		client: client,
		clock:  clock,
		log:    log,
	}
}

// DaySchedule carries everything the /today command renders.
type DaySchedule struct {
	Location location.Location
	Timings  *Timings
}

// Upcoming carries everything the /next command renders.
type Upcoming struct {
	Location location.Location
	Next     *NextPrayer
}

// Today returns the full schedule for the user's current calendar day.
func (s *Session) Today(ctx context.Context, userID int64) (*DaySchedule, error) {
	loc := s.store.Get(userID)

	timings, err := s.client.FetchTimings(ctx, loc.City, loc.Country, "")
	if err != nil {
		return nil, err
	}

	return &DaySchedule{Location: loc, Timings: timings}, nil
}

// Next resolves the upcoming prayer for the user, fetching tomorrow's
// timings on demand when today's prayers are all past.
func (s *Session) Next(ctx context.Context, userID int64) (*Upcoming, error) {
	loc := s.store.Get(userID)

	today, err := s.client.FetchTimings(ctx, loc.City, loc.Country, "")
	if err != nil {
		return nil, err
	}

	now := s.clock.Now(today.Timezone)

	next, err := ResolveNext(ctx, today, now, func(ctx context.Context) (*Timings, error) {
		return s.client.FetchTimings(ctx, loc.City, loc.Country, now.AddDate(0, 0, 1).Format(DateLayout))
	})
	if err != nil {
		return nil, err
	}

	return &Upcoming{Location: loc, Next: next}, nil
}
