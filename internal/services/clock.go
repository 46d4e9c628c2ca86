package services

import "time"

// timeNow is swapped out by tests that need a fixed clock.
var timeNow = time.Now

// startOfMonth returns midnight UTC of the first day of t's month, the
// window leaderboards aggregate over.
func startOfMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
