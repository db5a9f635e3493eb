package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestReservation_Stale(t *testing.T) {
	today := time.Date(2024, time.March, 10, 0, 30, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		res      Reservation
		expected bool
	}{
		{"past and live", Reservation{Date: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), StartTime: strPtr("09:00")}, true},
		{"past and canceled", Reservation{Date: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)}, false},
		{"today", Reservation{Date: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), StartTime: strPtr("09:00")}, false},
		{"future", Reservation{Date: time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), StartTime: strPtr("09:00")}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.res.Stale(today))
		})
	}
}

func TestCivilDate_IgnoresLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	local := time.Date(2024, time.March, 5, 1, 0, 0, 0, loc)

	assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), CivilDate(local))
}
