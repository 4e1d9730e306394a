package styles

import (
	"bytes"
	"strings"
	"testing"
)

func TestSimpleRenderCard(t *testing.T) {
	var buf bytes.Buffer
	Simple{}.RenderCard(&buf, Card{
		Key: "c0:d1:1:2", Label: "Standup",
		X: 60, Y: 558, W: 200, H: 90,
		DayIndex: 1, DaysTotal: 1,
	})

	out := buf.String()
	if !strings.Contains(out, `id="card-c0:d1:1:2"`) {
		t.Errorf("missing card id: %s", out)
	}
	if !strings.Contains(out, `x="60.00"`) || !strings.Contains(out, `y="558.00"`) {
		t.Errorf("missing position attrs: %s", out)
	}
	if !strings.Contains(out, ">Standup<") {
		t.Errorf("missing label: %s", out)
	}
}

func TestSimpleRenderCardMultiDay(t *testing.T) {
	var buf bytes.Buffer
	Simple{}.RenderCard(&buf, Card{
		Key: "k", Label: "Conference",
		X: 0, Y: 0, W: 300, H: 60,
		DayIndex: 2, DaysTotal: 3,
	})
	if !strings.Contains(buf.String(), "Conference (2/3)") {
		t.Errorf("multi-day ordinal missing: %s", buf.String())
	}
}

func TestSimpleRenderCardTooShortForLabel(t *testing.T) {
	var buf bytes.Buffer
	Simple{}.RenderCard(&buf, Card{Key: "k", Label: "Tiny", X: 0, Y: 0, W: 100, H: 8})

	out := buf.String()
	if !strings.Contains(out, "<rect") {
		t.Error("rect should render regardless of height")
	}
	if strings.Contains(out, "<text") {
		t.Error("label should be dropped when the card is shorter than the font")
	}
}

func TestSimpleRenderRow(t *testing.T) {
	var buf bytes.Buffer
	Simple{}.RenderRow(&buf, Row{Label: "09:00", Y: 78, LineStart: 35, LineEnd: 800, LabelX: 25})

	out := buf.String()
	if !strings.Contains(out, ">09:00<") {
		t.Errorf("missing label: %s", out)
	}
	if !strings.Contains(out, `stroke="#ddd"`) {
		t.Errorf("regular row should use the light stroke: %s", out)
	}

	buf.Reset()
	Simple{}.RenderRow(&buf, Row{Label: "20:00", Y: 762, LineStart: 35, LineEnd: 800, LabelX: 25, Cap: true})
	if !strings.Contains(buf.String(), `stroke="#ccc"`) {
		t.Errorf("cap row should use the border stroke: %s", buf.String())
	}
}

func TestSimpleRenderNowLine(t *testing.T) {
	var buf bytes.Buffer
	Simple{}.RenderNowLine(&buf, Line{X: 35, Y: 300, W: 765})

	out := buf.String()
	if !strings.Contains(out, `class="now-line"`) || !strings.Contains(out, `class="now-dot"`) {
		t.Errorf("now marker incomplete: %s", out)
	}
	// The line spans X..X+W.
	if !strings.Contains(out, `x2="800.00"`) {
		t.Errorf("line end wrong: %s", out)
	}
}

func TestInkRenderDefs(t *testing.T) {
	var buf bytes.Buffer
	Ink{}.RenderDefs(&buf)
	if !strings.Contains(buf.String(), `id="ink-rough"`) {
		t.Errorf("ink defs missing filter: %s", buf.String())
	}

	buf.Reset()
	Simple{}.RenderDefs(&buf)
	if buf.Len() != 0 {
		t.Error("simple style should emit no defs")
	}
}

func TestInkRenderCard(t *testing.T) {
	var buf bytes.Buffer
	Ink{}.RenderCard(&buf, Card{Key: "k1", Label: "Review", X: 0, Y: 0, W: 200, H: 60})

	out := buf.String()
	if !strings.Contains(out, `filter="url(#ink-rough)"`) {
		t.Errorf("ink card should use the rough filter: %s", out)
	}

	// Fill is deterministic per key.
	var again bytes.Buffer
	Ink{}.RenderCard(&again, Card{Key: "k1", Label: "Review", X: 0, Y: 0, W: 200, H: 60})
	if out != again.String() {
		t.Error("ink render should be deterministic")
	}
}

func TestInkContinuedCard(t *testing.T) {
	var buf bytes.Buffer
	Ink{}.RenderCard(&buf, Card{
		Key: "k", Label: "Offsite",
		X: 0, Y: 0, W: 300, H: 60,
		DayIndex: 2, DaysTotal: 2,
	})
	if !strings.Contains(buf.String(), "… Offsite") {
		t.Errorf("continuation prefix missing: %s", buf.String())
	}
}

func TestCardContinued(t *testing.T) {
	tests := []struct {
		dayIndex, daysTotal int
		want                bool
	}{
		{1, 1, false},
		{1, 3, false},
		{2, 3, true},
		{3, 3, true},
	}
	for _, tt := range tests {
		c := Card{DayIndex: tt.dayIndex, DaysTotal: tt.daysTotal}
		if c.Continued() != tt.want {
			t.Errorf("Continued(%d/%d) = %v, want %v", tt.dayIndex, tt.daysTotal, c.Continued(), tt.want)
		}
	}
}

func TestTruncateLabel(t *testing.T) {
	tests := []struct {
		name  string
		label string
		w     float64
		want  string
	}{
		{"fits", "Standup", 200, "Standup"},
		{"truncated", "A very long meeting title that cannot fit", 100, "A very long.."},
		{"no room", "Anything", 0, ""},
		{"empty label", "", 200, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateLabel(Card{Label: tt.label, W: tt.w})
			if got != tt.want {
				t.Errorf("TruncateLabel = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEscapeXML(t *testing.T) {
	if got := EscapeXML(`Lunch <with> "friends" & co`); strings.ContainsAny(got, `<>"`) {
		t.Errorf("EscapeXML left raw markup: %q", got)
	}
	if got := EscapeXML("plain"); got != "plain" {
		t.Errorf("EscapeXML changed plain text: %q", got)
	}
}
