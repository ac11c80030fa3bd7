package expiry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pactwatch/pactwatch/pkg/contracts"
)

func record(id, expiry string) contracts.Record {
	return contracts.Record{ID: id, Title: id, ExpiryDate: expiry}
}

func TestUpcomingBoundaries(t *testing.T) {
	asOf := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		expiry   string
		included bool
	}{
		{"exactly horizon days out", "2024-01-31", true},
		{"one past the horizon", "2024-02-01", false},
		{"same day", "2024-01-01", false},
		{"already expired", "2023-12-31", false},
		{"tomorrow", "2024-01-02", true},
		{"no expiry date", "", false},
		{"unparseable expiry", "soonish", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Upcoming([]contracts.Record{record("r", tc.expiry)}, asOf, DefaultHorizonDays)
			if tc.included {
				assert.Len(t, got, 1)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestUpcomingWithIntradayAsOf(t *testing.T) {
	// A mid-day clock still counts a partial day as one remaining day.
	asOf := time.Date(2024, 1, 5, 10, 30, 0, 0, time.UTC)
	got := Upcoming([]contracts.Record{record("acme", "2024-01-10")}, asOf, 30)
	assert.Len(t, got, 1)

	days, ok := DaysRemaining(got[0], asOf)
	assert.True(t, ok)
	assert.Equal(t, 5, days)
}

func TestUpcomingOrdersByExpiry(t *testing.T) {
	asOf := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []contracts.Record{
		record("late", "2024-01-25"),
		record("early", "2024-01-05"),
		record("mid", "2024-01-15"),
		record("ignored", "2024-06-01"),
	}
	got := Upcoming(records, asOf, 30)
	ids := make([]string, 0, len(got))
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"early", "mid", "late"}, ids)
}

func TestUpcomingKeepsStoreOrderOnTies(t *testing.T) {
	asOf := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []contracts.Record{
		record("first", "2024-01-10"),
		record("second", "2024-01-10"),
	}
	got := Upcoming(records, asOf, 30)
	assert.Equal(t, "first", got[0].ID)
	assert.Equal(t, "second", got[1].ID)
}

func TestUpcomingIsPure(t *testing.T) {
	asOf := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []contracts.Record{
		record("b", "2024-01-20"),
		record("a", "2024-01-10"),
	}
	_ = Upcoming(records, asOf, 30)
	assert.Equal(t, "b", records[0].ID, "input order is left untouched")
}

func TestParseDateToleratesTimestamps(t *testing.T) {
	_, ok := ParseDate("2024-05-01")
	assert.True(t, ok)
	_, ok = ParseDate("2024-05-01T00:00:00Z")
	assert.True(t, ok)
	_, ok = ParseDate("")
	assert.False(t, ok)
}

func TestStats(t *testing.T) {
	asOf := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []contracts.Record{
		record("soon", "2024-01-10"),
		record("far", "2025-01-01"),
		record("dateless", ""),
	}
	stats := Compute(records, asOf, 30)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Expiring)
}
