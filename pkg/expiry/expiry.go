// Package expiry derives "expiring soon" alerts from a snapshot of the
// contract collection. It owns no state; callers recompute on every query.
package expiry

import (
	"math"
	"sort"
	"time"

	"github.com/pactwatch/pactwatch/pkg/contracts"
)

// DefaultHorizonDays is the standard lookahead window.
const DefaultHorizonDays = 30

// ParseDate parses a record date. Date-only ISO 8601 is the canonical form;
// full RFC 3339 timestamps from older data are tolerated.
func ParseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// DaysRemaining returns the whole days until the record's expiry, rounded
// up, and whether the expiry date was parseable at all.
func DaysRemaining(r contracts.Record, asOf time.Time) (int, bool) {
	expiry, ok := ParseDate(r.ExpiryDate)
	if !ok {
		return 0, false
	}
	days := math.Ceil(expiry.Sub(asOf).Hours() / 24)
	return int(days), true
}

// Upcoming filters records to those expiring within the horizon: a record is
// included iff its expiry parses and 0 < daysRemaining <= horizonDays.
// Already-expired and same-day records are excluded; a record expiring in
// exactly horizonDays days is included.
//
// The result is ordered ascending by expiry date, ties keeping store order.
// The first version of the tracker kept plain store order here; sorting by
// urgency is a deliberate change.
func Upcoming(records []contracts.Record, asOf time.Time, horizonDays int) []contracts.Record {
	var out []contracts.Record
	for _, r := range records {
		days, ok := DaysRemaining(r, asOf)
		if !ok {
			continue
		}
		if days > 0 && days <= horizonDays {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, _ := ParseDate(out[i].ExpiryDate)
		b, _ := ParseDate(out[j].ExpiryDate)
		return a.Before(b)
	})
	return out
}

// Stats summarizes a collection snapshot.
type Stats struct {
	Total    int
	Expiring int
}

// Compute returns the collection size and how many records Upcoming would
// flag for the given window.
func Compute(records []contracts.Record, asOf time.Time, horizonDays int) Stats {
	return Stats{
		Total:    len(records),
		Expiring: len(Upcoming(records, asOf, horizonDays)),
	}
}
