package log

import "time"

// Event is one marshalling or transfer event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// Peer is the peripheral address the event relates to.
	Peer string `cbor:"2,keyasint,omitempty"`

	// Characteristic is the characteristic UUID, when known.
	Characteristic string `cbor:"3,keyasint,omitempty"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// Type-specific payload (exactly one is set).
	Resolution *ResolutionEvent `cbor:"5,keyasint,omitempty"`
	Transfer   *TransferEvent   `cbor:"6,keyasint,omitempty"`
	Error      *ErrorEvent      `cbor:"7,keyasint,omitempty"`
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryResolution is a marshaller resolution outcome.
	CategoryResolution Category = 0
	// CategoryTransfer is a raw characteristic read or write.
	CategoryTransfer Category = 1
	// CategoryError is an error at any layer.
	CategoryError Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryResolution:
		return "RESOLUTION"
	case CategoryTransfer:
		return "TRANSFER"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Outcome is the result of a marshaller resolution.
type Outcome uint8

const (
	// OutcomeOverride means a pre-registered override marshaller was used.
	OutcomeOverride Outcome = 0
	// OutcomePack means a pack codec was built from the presentation
	// format descriptor.
	OutcomePack Outcome = 1
	// OutcomePassthrough means resolution degraded to the identity codec.
	OutcomePassthrough Outcome = 2
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeOverride:
		return "OVERRIDE"
	case OutcomePack:
		return "PACK"
	case OutcomePassthrough:
		return "PASSTHROUGH"
	default:
		return "UNKNOWN"
	}
}

// ResolutionEvent records which codec a resolution produced.
// Reason is set for passthrough degradations (the logged warning the
// standard asks for when a presentation format cannot be honored).
type ResolutionEvent struct {
	Outcome Outcome `cbor:"1,keyasint"`

	// FormatCode is the presentation format code, when one was read.
	FormatCode *uint8 `cbor:"2,keyasint,omitempty"`

	// Exponent is the decimal exponent, when a record was read.
	Exponent *int8 `cbor:"3,keyasint,omitempty"`

	// Reason explains a passthrough degradation.
	Reason string `cbor:"4,keyasint,omitempty"`
}

// Direction indicates the direction of a transfer.
type Direction uint8

const (
	// DirectionRead is peripheral to host.
	DirectionRead Direction = 0
	// DirectionWrite is host to peripheral.
	DirectionWrite Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionRead:
		return "READ"
	case DirectionWrite:
		return "WRITE"
	default:
		return "UNKNOWN"
	}
}

// TransferEvent records a raw characteristic read or write.
type TransferEvent struct {
	Direction Direction `cbor:"1,keyasint"`

	// Size is the raw payload length in bytes.
	Size int `cbor:"2,keyasint"`

	// WithResponse is true for acknowledged writes.
	WithResponse bool `cbor:"3,keyasint,omitempty"`
}

// ErrorEvent records an error at any layer.
type ErrorEvent struct {
	// Message is the error text.
	Message string `cbor:"1,keyasint"`

	// Context describes the operation that failed.
	Context string `cbor:"2,keyasint,omitempty"`
}

// ResolutionWarning builds a passthrough-degradation event.
func ResolutionWarning(peer, characteristic, reason string) Event {
	return Event{
		Timestamp:      time.Now(),
		Peer:           peer,
		Characteristic: characteristic,
		Category:       CategoryResolution,
		Resolution: &ResolutionEvent{
			Outcome: OutcomePassthrough,
			Reason:  reason,
		},
	}
}

// Resolved builds an event for a successful resolution.
func Resolved(peer, characteristic string, outcome Outcome) Event {
	return Event{
		Timestamp:      time.Now(),
		Peer:           peer,
		Characteristic: characteristic,
		Category:       CategoryResolution,
		Resolution:     &ResolutionEvent{Outcome: outcome},
	}
}

// Transferred builds an event for a raw characteristic transfer.
func Transferred(peer, characteristic string, dir Direction, size int, withResponse bool) Event {
	return Event{
		Timestamp:      time.Now(),
		Peer:           peer,
		Characteristic: characteristic,
		Category:       CategoryTransfer,
		Transfer: &TransferEvent{
			Direction:    dir,
			Size:         size,
			WithResponse: withResponse,
		},
	}
}

// Errored builds an error event.
func Errored(peer, characteristic, context string, err error) Event {
	return Event{
		Timestamp:      time.Now(),
		Peer:           peer,
		Characteristic: characteristic,
		Category:       CategoryError,
		Error: &ErrorEvent{
			Message: err.Error(),
			Context: context,
		},
	}
}
