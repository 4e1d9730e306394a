package timetable

import "time"

// Overlaps reports whether the closed intervals [aStart, aEnd] and
// [bStart, bEnd] share at least one instant. Three inclusive cases cover
// every overlap configuration, boundary touches included: b starts inside
// a, b ends inside a, or b contains a entirely. Symmetry follows.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return within(bStart, aStart, aEnd) ||
		within(bEnd, aStart, aEnd) ||
		(!bStart.After(aStart) && !bEnd.Before(aEnd))
}

// within reports whether t lies in the closed interval [start, end].
func within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// laterOf returns the later of a and b.
func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

// earlierOf returns the earlier of a and b.
func earlierOf(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
