package services

import (
	"testing"
	"time"
)

func TestExpiryFromDuration(t *testing.T) {
	testCases := []struct {
		name   string
		base   time.Time
		months int
		want   time.Time
	}{
		{
			name:   "Plain month addition",
			base:   time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
			months: 2,
			want:   time.Date(2024, 5, 15, 15, 59, 59, 999_000_000, time.UTC),
		},
		{
			name:   "Jan 31 plus one month clamps to Feb 29 in a leap year",
			base:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			months: 1,
			want:   time.Date(2024, 2, 29, 15, 59, 59, 999_000_000, time.UTC),
		},
		{
			name:   "Jan 31 plus one month clamps to Feb 28 otherwise",
			base:   time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC),
			months: 1,
			want:   time.Date(2023, 2, 28, 15, 59, 59, 999_000_000, time.UTC),
		},
		{
			name:   "Jan 31 plus three months clamps to Apr 30",
			base:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			months: 3,
			want:   time.Date(2024, 4, 30, 15, 59, 59, 999_000_000, time.UTC),
		},
		{
			name:   "Year rollover",
			base:   time.Date(2024, 11, 30, 0, 0, 0, 0, time.UTC),
			months: 3,
			want:   time.Date(2025, 2, 28, 15, 59, 59, 999_000_000, time.UTC),
		},
		{
			name: "Base near UTC midnight lands on the UTC+8 civil day",
			// 2024-03-31 20:00 UTC is already 2024-04-01 04:00 in UTC+8,
			// so the civil base day is Apr 1.
			base:   time.Date(2024, 3, 31, 20, 0, 0, 0, time.UTC),
			months: 1,
			want:   time.Date(2024, 5, 1, 15, 59, 59, 999_000_000, time.UTC),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExpiryFromDuration(tc.base, tc.months)
			if !got.Equal(tc.want) {
				t.Errorf("ExpiryFromDuration(%v, %d) = %v, want %v", tc.base, tc.months, got.UTC(), tc.want)
			}
		})
	}
}

func TestExpiredIsInclusive(t *testing.T) {
	lastDay := time.Date(2024, 4, 30, 15, 59, 59, 999_000_000, time.UTC)

	if Expired(lastDay, lastDay) {
		t.Error("a pass must remain usable at its lastDay instant")
	}
	if !Expired(lastDay, lastDay.Add(time.Millisecond)) {
		t.Error("a pass must be expired one instant past lastDay")
	}
	if Expired(lastDay, lastDay.Add(-time.Hour)) {
		t.Error("a pass must be usable before lastDay")
	}
}
