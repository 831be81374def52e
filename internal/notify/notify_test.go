package notify

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestToaster_Expiry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	toaster := NewToasterWithClock(clock.Now)

	toaster.NotifyError("Invalid url!", time.Second)
	clock.Advance(500 * time.Millisecond)
	toaster.NotifyError("Analysis failed", time.Second)

	active := toaster.Active()
	if len(active) != 2 {
		t.Fatalf("expected 2 active toasts, got %d", len(active))
	}
	if active[0].Message != "Invalid url!" || active[1].Message != "Analysis failed" {
		t.Errorf("unexpected order: %+v", active)
	}
	if active[0].ID >= active[1].ID {
		t.Errorf("ids should increase: %d, %d", active[0].ID, active[1].ID)
	}

	clock.Advance(600 * time.Millisecond)
	active = toaster.Active()
	if len(active) != 1 || active[0].Message != "Analysis failed" {
		t.Fatalf("expected only the second toast, got %+v", active)
	}

	if removed := toaster.Prune(); removed != 1 {
		t.Errorf("Prune() removed %d, want 1", removed)
	}

	clock.Advance(time.Second)
	if len(toaster.Active()) != 0 {
		t.Error("expected all toasts to expire")
	}
	if removed := toaster.Prune(); removed != 1 {
		t.Errorf("Prune() removed %d, want 1", removed)
	}
}

func TestSinkFunc(t *testing.T) {
	var got string
	var gotDuration time.Duration
	var sink Sink = SinkFunc(func(message string, duration time.Duration) {
		got = message
		gotDuration = duration
	})

	sink.NotifyError("boom", 2*time.Second)
	if got != "boom" || gotDuration != 2*time.Second {
		t.Errorf("SinkFunc received %q/%v", got, gotDuration)
	}
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewWriterSink(&buf, true)

	sink.NotifyError("Analysis failed", time.Second)
	sink.NotifyError("Invalid url!", time.Second)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.HasSuffix(lines[0], "Analysis failed") {
		t.Errorf("unexpected first line %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "Invalid url!") {
		t.Errorf("unexpected second line %q", lines[1])
	}
}
