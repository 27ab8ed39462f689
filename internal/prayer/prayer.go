// Package prayer implements the prayer-time resolution engine: fetching
// daily timings, determining the next upcoming prayer, and orchestrating
// per-user requests.
package prayer

// Name identifies one of the five daily prayers.
type Name string

const (
	Fajr    Name = "Fajr"
	Dhuhr   Name = "Dhuhr"
	Asr     Name = "Asr"
	Maghrib Name = "Maghrib"
	Isha    Name = "Isha"
)

// Order is the canonical prayer sequence within a calendar day. Both the
// client and the resolver iterate this slice; the timings map never carries
// other keys.
var Order = []Name{Fajr, Dhuhr, Asr, Maghrib, Isha}

// Timings holds one calendar day of prayer times as reported by the
// upstream API. Times are wall-clock "HH:MM" strings with no date attached.
type Timings struct {
	Date     string // human-readable date, e.g. "01 Jan 2026"
	Times    map[Name]string
	Location string // display label, "City, Country"
	Timezone string // IANA name reported by the API, e.g. "Europe/Moscow"
}
