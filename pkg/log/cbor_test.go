package log

import (
	"testing"
	"time"
)

func TestEventRoundTrip(t *testing.T) {
	code := uint8(0x0E)
	exp := int8(-2)

	tests := []struct {
		name  string
		event Event
	}{
		{
			name: "resolution pack",
			event: Event{
				Timestamp:      time.Now().UTC(),
				Peer:           "AA:BB:CC:DD:EE:FF",
				Characteristic: "00002a6e-0000-1000-8000-00805f9b34fb",
				Category:       CategoryResolution,
				Resolution: &ResolutionEvent{
					Outcome:    OutcomePack,
					FormatCode: &code,
					Exponent:   &exp,
				},
			},
		},
		{
			name: "resolution warning",
			event: Event{
				Timestamp: time.Now().UTC(),
				Peer:      "AA:BB:CC:DD:EE:FF",
				Category:  CategoryResolution,
				Resolution: &ResolutionEvent{
					Outcome: OutcomePassthrough,
					Reason:  "no presentation format information",
				},
			},
		},
		{
			name: "transfer",
			event: Event{
				Timestamp:      time.Now().UTC(),
				Peer:           "AA:BB:CC:DD:EE:FF",
				Characteristic: "00002a19-0000-1000-8000-00805f9b34fb",
				Category:       CategoryTransfer,
				Transfer: &TransferEvent{
					Direction:    DirectionWrite,
					Size:         2,
					WithResponse: true,
				},
			},
		},
		{
			name: "error",
			event: Event{
				Timestamp: time.Now().UTC(),
				Category:  CategoryError,
				Error: &ErrorEvent{
					Message: "att timeout",
					Context: "descriptor read",
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := EncodeEvent(tt.event)
			if err != nil {
				t.Fatalf("EncodeEvent failed: %v", err)
			}

			decoded, err := DecodeEvent(data)
			if err != nil {
				t.Fatalf("DecodeEvent failed: %v", err)
			}

			if decoded.Peer != tt.event.Peer {
				t.Errorf("Peer mismatch: got %q, want %q", decoded.Peer, tt.event.Peer)
			}
			if decoded.Characteristic != tt.event.Characteristic {
				t.Errorf("Characteristic mismatch: got %q, want %q", decoded.Characteristic, tt.event.Characteristic)
			}
			if decoded.Category != tt.event.Category {
				t.Errorf("Category mismatch: got %v, want %v", decoded.Category, tt.event.Category)
			}
			if !decoded.Timestamp.Equal(tt.event.Timestamp) {
				t.Errorf("Timestamp mismatch: got %v, want %v", decoded.Timestamp, tt.event.Timestamp)
			}

			switch {
			case tt.event.Resolution != nil:
				if decoded.Resolution == nil {
					t.Fatal("Resolution payload lost")
				}
				if decoded.Resolution.Outcome != tt.event.Resolution.Outcome {
					t.Errorf("Outcome mismatch: got %v", decoded.Resolution.Outcome)
				}
				if decoded.Resolution.Reason != tt.event.Resolution.Reason {
					t.Errorf("Reason mismatch: got %q", decoded.Resolution.Reason)
				}
				if tt.event.Resolution.FormatCode != nil {
					if decoded.Resolution.FormatCode == nil || *decoded.Resolution.FormatCode != *tt.event.Resolution.FormatCode {
						t.Error("FormatCode lost")
					}
				}
			case tt.event.Transfer != nil:
				if decoded.Transfer == nil {
					t.Fatal("Transfer payload lost")
				}
				if *decoded.Transfer != *tt.event.Transfer {
					t.Errorf("Transfer mismatch: got %+v", decoded.Transfer)
				}
			case tt.event.Error != nil:
				if decoded.Error == nil {
					t.Fatal("Error payload lost")
				}
				if *decoded.Error != *tt.event.Error {
					t.Errorf("Error mismatch: got %+v", decoded.Error)
				}
			}
		})
	}
}

func TestEventCompactness(t *testing.T) {
	// Integer keys should keep capture records small.
	event := Transferred("AA:BB:CC:DD:EE:FF", "00002a19-0000-1000-8000-00805f9b34fb", DirectionRead, 1, false)
	data, err := EncodeEvent(event)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	if len(data) > 160 {
		t.Errorf("encoded event too large: %d bytes", len(data))
	}
}
