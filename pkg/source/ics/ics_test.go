package ics

import (
	"strings"
	"testing"
	"time"
)

const sampleCalendar = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//test//EN
BEGIN:VEVENT
UID:standup@example.org
DTSTAMP:20260301T120000Z
DTSTART:20260302T080000Z
DTEND:20260302T081500Z
SUMMARY:Team standup
LOCATION:Room 3B
DESCRIPTION:Daily sync.
END:VEVENT
BEGIN:VEVENT
UID:noend@example.org
DTSTAMP:20260301T120000Z
DTSTART:20260302T100000Z
SUMMARY:Open ended
END:VEVENT
END:VCALENDAR
`

func TestParse(t *testing.T) {
	records, err := Parse([]byte(sampleCalendar))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	rec, ok := records[0].(map[string]any)
	if !ok {
		t.Fatalf("record type = %T", records[0])
	}
	if rec["title"] != "Team standup" {
		t.Errorf("title = %v", rec["title"])
	}
	if rec["uid"] != "standup@example.org" {
		t.Errorf("uid = %v", rec["uid"])
	}
	if rec["location"] != "Room 3B" {
		t.Errorf("location = %v", rec["location"])
	}

	start, ok := rec["startDate"].(time.Time)
	if !ok {
		t.Fatalf("startDate type = %T", rec["startDate"])
	}
	want := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	if !start.Equal(want) {
		t.Errorf("startDate = %v, want %v", start, want)
	}
}

func TestParseMissingEnd(t *testing.T) {
	records, err := Parse([]byte(sampleCalendar))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	rec := records[1].(map[string]any)
	start := rec["startDate"].(time.Time)
	end, ok := rec["endDate"].(time.Time)
	if !ok {
		t.Fatalf("endDate type = %T", rec["endDate"])
	}
	// Events without DTEND get the default duration.
	if got := end.Sub(start); got != defaultDuration {
		t.Errorf("implied duration = %v, want %v", got, defaultDuration)
	}
}

func TestParseSkipsEventsWithoutStart(t *testing.T) {
	cal := `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//test//EN
BEGIN:VEVENT
UID:nostart@example.org
DTSTAMP:20260301T120000Z
SUMMARY:No start
END:VEVENT
END:VCALENDAR
`
	records, err := Parse([]byte(cal))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("startless event should be dropped, got %d records", len(records))
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse(nil); err == nil {
		t.Error("empty body should error")
	}
	if _, err := Parse([]byte("not a calendar")); err == nil {
		t.Error("garbage body should error")
	}
}

func TestParseOmitsEmptyProperties(t *testing.T) {
	records, err := Parse([]byte(sampleCalendar))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	rec := records[1].(map[string]any)
	for _, field := range []string{"description", "location"} {
		if _, present := rec[field]; present {
			t.Errorf("absent property %q should not appear in the record", field)
		}
	}
}

func TestParseCRLF(t *testing.T) {
	// Wire-format calendars use CRLF line endings.
	crlf := strings.ReplaceAll(sampleCalendar, "\n", "\r\n")
	records, err := Parse([]byte(crlf))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("expected 2 records, got %d", len(records))
	}
}
