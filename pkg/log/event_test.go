package log

import (
	"errors"
	"testing"
	"time"
)

func TestResolutionWarning(t *testing.T) {
	event := ResolutionWarning("AA:BB", "00002a19-0000-1000-8000-00805f9b34fb", "unsupported presentation format 0x07")

	if event.Category != CategoryResolution {
		t.Errorf("Category = %v, want CategoryResolution", event.Category)
	}
	if event.Resolution == nil {
		t.Fatal("Resolution payload missing")
	}
	if event.Resolution.Outcome != OutcomePassthrough {
		t.Errorf("Outcome = %v, want OutcomePassthrough", event.Resolution.Outcome)
	}
	if event.Resolution.Reason == "" {
		t.Error("Reason should be set")
	}
	if event.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
}

func TestResolved(t *testing.T) {
	event := Resolved("AA:BB", "2a19", OutcomePack)
	if event.Resolution == nil || event.Resolution.Outcome != OutcomePack {
		t.Errorf("unexpected resolution payload: %+v", event.Resolution)
	}
	if event.Resolution.Reason != "" {
		t.Error("successful resolutions carry no reason")
	}
}

func TestTransferred(t *testing.T) {
	event := Transferred("AA:BB", "2a19", DirectionWrite, 2, true)
	if event.Category != CategoryTransfer {
		t.Errorf("Category = %v, want CategoryTransfer", event.Category)
	}
	if event.Transfer == nil {
		t.Fatal("Transfer payload missing")
	}
	if event.Transfer.Direction != DirectionWrite || event.Transfer.Size != 2 || !event.Transfer.WithResponse {
		t.Errorf("unexpected transfer payload: %+v", event.Transfer)
	}
}

func TestErrored(t *testing.T) {
	event := Errored("AA:BB", "", "descriptor read", errors.New("att timeout"))
	if event.Category != CategoryError {
		t.Errorf("Category = %v, want CategoryError", event.Category)
	}
	if event.Error == nil || event.Error.Message != "att timeout" {
		t.Errorf("unexpected error payload: %+v", event.Error)
	}
}

func TestEnumStrings(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{CategoryResolution.String(), "RESOLUTION"},
		{CategoryTransfer.String(), "TRANSFER"},
		{CategoryError.String(), "ERROR"},
		{Category(99).String(), "UNKNOWN"},
		{OutcomeOverride.String(), "OVERRIDE"},
		{OutcomePack.String(), "PACK"},
		{OutcomePassthrough.String(), "PASSTHROUGH"},
		{DirectionRead.String(), "READ"},
		{DirectionWrite.String(), "WRITE"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("String mismatch: got %q, want %q", tt.got, tt.want)
		}
	}
}

func TestNoopLogger(t *testing.T) {
	// Must be callable with any event, including the zero value.
	NoopLogger{}.Log(Event{})
	NoopLogger{}.Log(Resolved("", "", OutcomePack))

	if _, ok := OrNoop(nil).(NoopLogger); !ok {
		t.Error("OrNoop(nil) should be NoopLogger")
	}
	l := &captureSink{}
	if OrNoop(l) != Logger(l) {
		t.Error("OrNoop should pass a non-nil logger through")
	}
}

type captureSink struct {
	events []Event
}

func (c *captureSink) Log(event Event) {
	c.events = append(c.events, event)
}

func TestMultiLogger(t *testing.T) {
	a := &captureSink{}
	b := &captureSink{}
	multi := NewMultiLogger(a, b)

	multi.Log(Transferred("AA:BB", "2a19", DirectionRead, 1, false))
	multi.Log(Resolved("AA:BB", "2a19", OutcomeOverride))

	if len(a.events) != 2 || len(b.events) != 2 {
		t.Errorf("event counts = %d/%d, want 2/2", len(a.events), len(b.events))
	}
}

func TestEventTimestampPrecision(t *testing.T) {
	before := time.Now()
	event := Resolved("", "", OutcomePack)
	after := time.Now()
	if event.Timestamp.Before(before) || event.Timestamp.After(after) {
		t.Errorf("Timestamp %v outside [%v, %v]", event.Timestamp, before, after)
	}
}
