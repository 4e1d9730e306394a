package timetable

import (
	"testing"
	"time"
)

func TestOverlaps(t *testing.T) {
	at := func(h, m int) time.Time {
		return time.Date(2026, 3, 2, h, m, 0, 0, time.UTC)
	}

	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"b starts inside a", at(9, 0), at(11, 0), at(10, 0), at(12, 0), true},
		{"b ends inside a", at(9, 0), at(11, 0), at(8, 0), at(10, 0), true},
		{"b contains a", at(9, 0), at(11, 0), at(8, 0), at(12, 0), true},
		{"a contains b", at(9, 0), at(11, 0), at(9, 30), at(10, 30), true},
		{"identical", at(9, 0), at(11, 0), at(9, 0), at(11, 0), true},
		{"touch at a end", at(9, 0), at(11, 0), at(11, 0), at(12, 0), true},
		{"touch at a start", at(9, 0), at(11, 0), at(8, 0), at(9, 0), true},
		{"b entirely before", at(9, 0), at(11, 0), at(7, 0), at(8, 0), false},
		{"b entirely after", at(9, 0), at(11, 0), at(12, 0), at(13, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd)
			if got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
			// The relation is symmetric.
			if Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd) != tt.want {
				t.Errorf("Overlaps not symmetric for %s", tt.name)
			}
		})
	}
}

func TestOverlapsInstant(t *testing.T) {
	// A zero-duration interval on a boundary still counts; the bounds are
	// closed on both sides.
	p := time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC)
	if !Overlaps(p.Add(-time.Hour), p, p, p) {
		t.Error("instant at closed end should overlap")
	}
	if !Overlaps(p, p.Add(time.Hour), p, p) {
		t.Error("instant at closed start should overlap")
	}
}
