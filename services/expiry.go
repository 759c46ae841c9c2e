package services

import "time"

// Pass expiry is computed against a fixed UTC+8 civil calendar regardless
// of server or client timezone.
var passZone = time.FixedZone("UTC+8", 8*60*60)

// ExpiryFromDuration derives a pass's lastDay from a grant instant and a
// validity period in whole calendar months. The day-of-month is clamped to
// the last valid day of the target month (Jan 31 + 1 month is Feb 28/29,
// not Mar 2), and the result is the last instant of that civil day,
// 23:59:59.999 UTC+8. time.AddDate normalizes overflowing days instead of
// clamping, so the clamp is computed explicitly.
func ExpiryFromDuration(base time.Time, months int) time.Time {
	local := base.In(passZone)
	year, month, day := local.Date()

	// time.Date normalizes out-of-range months, which is exactly the
	// calendar arithmetic wanted here.
	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, passZone)
	if last := daysInMonth(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 23, 59, 59, 999_000_000, passZone)
}

func daysInMonth(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Expired reports whether a pass with the given lastDay is no longer
// usable at now. lastDay is inclusive.
func Expired(lastDay, now time.Time) bool {
	return lastDay.Before(now)
}
