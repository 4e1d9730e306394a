// Package timetable computes day/week timetable layouts.
//
// Given a visible date range, an hour-of-day window, and a list of
// time-bounded items, the package produces the set of visible day columns,
// a pixel rectangle for every (item, column) intersection, and the hour
// axis rows needed to draw the grid. It is the pure computation core of
// timegrid: nothing here paints, scrolls, or schedules redraws.
//
// # Architecture
//
// The layout is built from five small pieces:
//
//  1. BuildColumns: expand the date range into per-day columns, each
//     clipped to the hour window.
//  2. Overlaps: closed-interval intersection test between an item and a
//     column.
//  3. Position: convert an intersecting (item, column) pair into a pixel
//     rectangle with day-span metadata.
//  4. BuildAxis: produce the hour rows, including the trailing cap row.
//  5. TopOffset: the canonical time→pixel mapping, shared by card
//     placement and the now-line marker.
//
// Compute wires these together into a single Result. Every function is
// deterministic: identical inputs yield identical output, which is what
// makes the pipeline-level memoization in pkg/pipeline sound.
//
// # Usage
//
//	rng, _ := timetable.ParseRange("2026-03-02", "2026-03-04")
//	res := timetable.Compute(rng, timetable.HourWindow{FromHour: 8, ToHour: 18}, records, timetable.Config{})
//	for _, it := range res.Items {
//	    draw(it.Rect, it.Item)
//	}
//
// Malformed inputs never panic and never abort the pipeline: an
// unparseable range yields zero columns, a malformed item is skipped, and
// both are reported through Result.Diagnostics.
package timetable
