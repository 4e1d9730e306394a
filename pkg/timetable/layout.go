package timetable

import (
	"fmt"

	errs "github.com/kreistad/timegrid/pkg/errors"
)

// Diagnostic is an advisory report of a recoverable input problem. The
// pipeline degrades to "render less" instead of failing: a bad range
// yields zero columns, a bad item is skipped. Diagnostics never affect
// the shape of the rest of the output.
type Diagnostic struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
	// Record is the index of the offending input record, or -1 for
	// range- and window-level problems.
	Record int `json:"record"`
}

// Result is the complete output surface of one layout pass: the ordered
// day columns (headers and grid lines), the flat positioned items (one
// rectangle per item-column intersection), and the hour axis rows. The
// resolved window and config are included so renderers never re-derive
// defaults.
type Result struct {
	Columns     []ColumnDay      `json:"columns"`
	Items       []PositionedItem `json:"items"`
	Axis        []AxisRow        `json:"axis"`
	Window      HourWindow       `json:"window"`
	Config      Config           `json:"config"`
	Diagnostics []Diagnostic     `json:"diagnostics,omitempty"`
}

// Compute runs the full layout pass: resolve defaults, expand the range
// into columns, validate and position every item, and build the axis.
//
// Compute never fails. Malformed configuration (invalid hour window,
// reversed or zero range) produces zero columns plus a diagnostic;
// malformed records are skipped individually. The computation is pure
// and synchronous -- recomputing with identical inputs yields identical
// output, byte for byte.
func Compute(rng DateRange, w HourWindow, records []any, cfg Config) Result {
	w = w.Resolve()
	cfg = cfg.Resolve()
	res := Result{Window: w, Config: cfg}

	if err := w.Validate(); err != nil {
		res.Diagnostics = append(res.Diagnostics, Diagnostic{
			Code:    errs.GetCode(err),
			Message: err.Error(),
			Record:  -1,
		})
		return res
	}

	// The axis depends only on the window, so it survives a bad range.
	res.Axis = BuildAxis(w, cfg)

	if err := rng.Validate(); err != nil {
		res.Diagnostics = append(res.Diagnostics, Diagnostic{
			Code:    errs.GetCode(err),
			Message: err.Error(),
			Record:  -1,
		})
		return res
	}

	res.Columns = BuildColumns(rng, w)

	items, diags := ResolveItems(records, cfg.StartProperty, cfg.EndProperty)
	res.Diagnostics = append(res.Diagnostics, diags...)

	seen := make(map[string]int)
	for _, item := range items {
		for ci, col := range res.Columns {
			pos, ok := Position(item, col, ci, w, cfg)
			if !ok {
				continue
			}
			// Items with identical bounds in the same column get an
			// ordinal suffix so keys stay unique.
			if n := seen[pos.Key]; n > 0 {
				seen[pos.Key] = n + 1
				pos.Key = fmt.Sprintf("%s:%d", pos.Key, n+1)
			} else {
				seen[pos.Key] = 1
			}
			res.Items = append(res.Items, pos)
		}
	}

	return res
}
