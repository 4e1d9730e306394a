package timetable

import (
	"fmt"
	"time"
)

// Rect is a ready-to-draw pixel rectangle in grid coordinates: Top is
// measured from the top of the grid region (below the column headers),
// Left from the left edge of the frame.
type Rect struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PositionedItem is one (item, column) intersection. DayIndex is the
// 1-based ordinal of the column within the item's overall day span --
// counted over every day the item touches, visible or not -- and
// DaysTotal is the inclusive length of that span.
type PositionedItem struct {
	Key       string `json:"key"`
	Item      Item   `json:"item"`
	Rect      Rect   `json:"rect"`
	DayIndex  int    `json:"day_index"`
	DaysTotal int    `json:"days_total"`
}

// Position converts an (item, column) pair into a pixel rectangle. It
// returns false when the item does not intersect the column, in which
// case no rectangle exists for this pair. colIndex is the column's
// position in the visible window and only affects horizontal placement.
//
// The item interval is clipped to the column before any duration math.
// The column end gains one millisecond on the clipping path only: the
// overlap test treats the column end as inclusive, but duration math
// needs it exclusive, otherwise an item starting exactly at the column's
// last millisecond would produce a zero-height card. Keep the asymmetry;
// moving it changes every card height.
func Position(item Item, col ColumnDay, colIndex int, w HourWindow, cfg Config) (PositionedItem, bool) {
	if !Overlaps(col.Start, col.End, item.Start, item.End) {
		return PositionedItem{}, false
	}

	clippedStart := laterOf(col.Start, item.Start)
	clippedEnd := earlierOf(col.End.Add(time.Millisecond), item.End)

	left := cfg.LinesLeftOffset() + float64(colIndex)*cfg.ColumnWidth + cfg.ColumnHorizontalPadding
	width := cfg.ColumnWidth - 2*cfg.ColumnHorizontalPadding
	if colIndex == 0 {
		// The time gutter overlaps the first column's nominal left edge.
		left += cfg.LinesLeftInset
		width -= cfg.LinesLeftInset
	}

	dayIndex := DaysBetween(item.Start, col.Date) + 1
	daysTotal := DaysBetween(item.Start, item.End) + 1

	return PositionedItem{
		Key:  positionKey(colIndex, dayIndex, item),
		Item: item,
		Rect: Rect{
			Top:    TopOffset(clippedStart, w, cfg),
			Left:   left,
			Width:  width,
			Height: clippedEnd.Sub(clippedStart).Minutes() * cfg.MinuteHeight(),
		},
		DayIndex:  dayIndex,
		DaysTotal: daysTotal,
	}, true
}

// positionKey derives a stable identity for a positioned item from the
// column index, day ordinal, and the item's exact time bounds. Compute
// disambiguates the rare case of two items sharing identical bounds in
// the same column by suffixing an ordinal.
func positionKey(colIndex, dayIndex int, item Item) string {
	return fmt.Sprintf("c%d:d%d:%d:%d", colIndex, dayIndex, item.Start.UnixMilli(), item.End.UnixMilli())
}
