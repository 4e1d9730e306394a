// Package ics loads items from iCalendar (RFC 5545) feeds.
//
// Every VEVENT becomes one loose record with startDate/endDate fields,
// matching the layout engine's default item properties. Recurrence rules
// are deliberately not expanded: a recurring VEVENT contributes only its
// first occurrence. Feeds wanting full expansion should be materialized
// upstream.
package ics

import (
	"bytes"
	"context"
	"net/http"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/kreistad/timegrid/pkg/cache"
	errs "github.com/kreistad/timegrid/pkg/errors"
	"github.com/kreistad/timegrid/pkg/httputil"
)

// defaultDuration is assumed for events carrying DTSTART but no DTEND;
// RFC 5545 leaves the choice to the consumer.
const defaultDuration = time.Hour

// Fetch downloads an ICS calendar and parses it into item records.
func Fetch(ctx context.Context, client *http.Client, url string) ([]any, error) {
	return FetchCached(ctx, client, url, nil, nil)
}

// FetchCached downloads an ICS calendar through a TTL'd response cache
// and parses it into item records. A nil cache fetches directly.
func FetchCached(ctx context.Context, client *http.Client, url string, c cache.Cache, keyer cache.Keyer) ([]any, error) {
	body, err := httputil.FetchCached(ctx, client, url, "ics", c, keyer)
	if err != nil {
		return nil, err
	}
	return Parse(body)
}

// Parse converts an ICS payload into item records. Events without a
// usable DTSTART are dropped; everything else is passed through loosely
// and validated by the layout's item boundary.
func Parse(body []byte) ([]any, error) {
	if len(body) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidSource, "empty ICS body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidSource, err, "parse calendar")
	}

	records := make([]any, 0, len(cal.Events()))
	for _, ve := range cal.Events() {
		rec, ok := eventRecord(ve)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// eventRecord flattens one VEVENT into a loose record.
func eventRecord(ve *ical.VEvent) (map[string]any, bool) {
	start, err := ve.GetStartAt()
	if err != nil || start.IsZero() {
		return nil, false
	}

	end, err := ve.GetEndAt()
	if err != nil || end.IsZero() {
		end = start.Add(defaultDuration)
	}

	rec := map[string]any{
		"startDate": start,
		"endDate":   end,
	}
	if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil && p.Value != "" {
		rec["uid"] = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil && p.Value != "" {
		rec["title"] = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil && p.Value != "" {
		rec["description"] = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil && p.Value != "" {
		rec["location"] = p.Value
	}
	return rec, true
}
