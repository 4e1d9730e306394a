package timetable

import (
	"fmt"
	"reflect"
	"time"

	errs "github.com/kreistad/timegrid/pkg/errors"
)

// Item is a validated time-bounded record. Raw keeps the caller's
// original record untouched so renderers can pull arbitrary fields from
// it; Start and End are the parsed instants the layout operates on.
type Item struct {
	Raw   any       `json:"raw"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// labelFields are checked in order when deriving a display label from an
// item's raw record.
var labelFields = []string{"title", "summary", "name", "label"}

// Label returns a human-readable label for the item, or "" when the raw
// record carries none of the conventional label fields.
func (i Item) Label() string {
	for _, f := range labelFields {
		if v, ok := fieldValue(i.Raw, f); ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// ParseInstant converts a field value into a time.Time. Accepted forms
// are time.Time, *time.Time, and ISO-8601 strings (with or without a
// time-of-day component).
func ParseInstant(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case *time.Time:
		if t == nil {
			return time.Time{}, errs.New(errs.ErrCodeInvalidItem, "nil time value")
		}
		return *t, nil
	case string:
		return parseInstantString(t)
	default:
		return time.Time{}, errs.New(errs.ErrCodeInvalidItem, "not a date-like value: %T", v)
	}
}

func parseInstantString(s string) (time.Time, error) {
	for _, layout := range rangeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format %q", s)
}

// ResolveItems is the typed boundary between loose caller records and the
// layout: each record must expose readable startProp and endProp fields
// holding an instant. Malformed records are skipped with a diagnostic so
// the remaining items still lay out; downstream stages only ever see
// validated Items.
//
// Records may be map[string]any (the shape produced by JSON, YAML, and
// the ICS source) or structs, whose fields are looked up by exact name.
func ResolveItems(records []any, startProp, endProp string) ([]Item, []Diagnostic) {
	items := make([]Item, 0, len(records))
	var diags []Diagnostic

	for i, rec := range records {
		item, err := resolveItem(rec, startProp, endProp)
		if err != nil {
			diags = append(diags, Diagnostic{
				Code:    errs.GetCode(err),
				Message: err.Error(),
				Record:  i,
			})
			continue
		}
		items = append(items, item)
	}
	return items, diags
}

func resolveItem(rec any, startProp, endProp string) (Item, error) {
	if rec == nil {
		return Item{}, errs.New(errs.ErrCodeInvalidItem, "nil record")
	}

	sv, ok := fieldValue(rec, startProp)
	if !ok {
		return Item{}, errs.New(errs.ErrCodeInvalidItem, "record has no %q field", startProp)
	}
	ev, ok := fieldValue(rec, endProp)
	if !ok {
		return Item{}, errs.New(errs.ErrCodeInvalidItem, "record has no %q field", endProp)
	}

	start, err := ParseInstant(sv)
	if err != nil {
		return Item{}, errs.Wrap(errs.ErrCodeInvalidItem, err, "field %q", startProp)
	}
	end, err := ParseInstant(ev)
	if err != nil {
		return Item{}, errs.Wrap(errs.ErrCodeInvalidItem, err, "field %q", endProp)
	}
	if end.Before(start) {
		return Item{}, errs.New(errs.ErrCodeInvalidItem, "%q precedes %q", endProp, startProp)
	}

	return Item{Raw: rec, Start: start, End: end}, nil
}

// fieldValue reads a named field from a record. Maps are the fast path;
// struct fields are resolved by exact name through reflection.
func fieldValue(rec any, name string) (any, bool) {
	switch m := rec.(type) {
	case map[string]any:
		v, ok := m[name]
		return v, ok
	}

	rv := reflect.ValueOf(rec)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, false
	}
	f := rv.FieldByName(name)
	if !f.IsValid() || !f.CanInterface() {
		return nil, false
	}
	return f.Interface(), true
}
