// Package styles defines the visual appearance of rendered timetables.
//
// A [Style] receives pre-positioned geometry ([Header], [Row], [Card],
// [Line]) and writes SVG fragments; it never computes layout itself.
// [Simple] is the default flat look, [Ink] a sketchy hand-inked variant.
package styles
