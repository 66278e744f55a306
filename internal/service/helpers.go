package service

import (
	"math"
	"time"
)

// hoursToMinutes converts fractional hours to whole minutes, rounding half up
// so 0.5h is 30m and 1.333h is 80m.
func hoursToMinutes(hours float64) int {
	return int(math.Floor(hours*60 + 0.5))
}

// minutesSince returns whole minutes elapsed from start to now, rounded half
// up, never negative.
func minutesSince(start, now time.Time) int {
	mins := math.Floor(now.Sub(start).Minutes() + 0.5)
	if mins < 0 {
		return 0
	}
	return int(mins)
}

// weekWindow resolves a reporting window. A zero start snaps to the Monday
// 00:00 UTC of ref's week; the window always spans seven days.
func weekWindow(start, ref time.Time) (time.Time, time.Time) {
	if start.IsZero() {
		day := ref.UTC()
		offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
		start = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC).
			AddDate(0, 0, -offset)
	}
	return start, start.AddDate(0, 0, 7)
}

// inWindow reports whether t falls inside [start, end).
func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
