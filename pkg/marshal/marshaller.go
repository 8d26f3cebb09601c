package marshal

import (
	"errors"
	"fmt"
)

// Marshalling errors. These arise from caller-supplied values; byte-length
// violations against a fixed-width descriptor are invariant faults and
// panic instead (see Pack).
var (
	// ErrValueType means the value cannot be coerced to the format's kind.
	ErrValueType = errors.New("value type not supported by format")

	// ErrValueOutOfRange means the value does not fit the format's width.
	ErrValueOutOfRange = errors.New("value out of range for format")

	// ErrNotByteSequence means a passthrough write was given a value that
	// is not a byte sequence.
	ErrNotByteSequence = errors.New("value is not a byte sequence")
)

// Marshaller converts between native Go values and raw characteristic
// bytes. Implementations are immutable and safe for concurrent use.
type Marshaller interface {
	// Marshal converts a native value to raw bytes for writing.
	Marshal(value any) ([]byte, error)

	// Unmarshal converts raw bytes read from a characteristic to a
	// native value.
	Unmarshal(data []byte) (any, error)
}

// Passthrough is the identity codec, used whenever the characteristic's
// format cannot be determined. It is the terminal fallback: Unmarshal
// never fails and returns the bytes unchanged.
type Passthrough struct{}

// Marshal returns the value as bytes without conversion.
// Accepts []byte and string; anything else cannot be written raw.
func (Passthrough) Marshal(value any) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("marshal: %w: %T", ErrNotByteSequence, value)
	}
}

// Unmarshal returns the bytes unchanged.
func (Passthrough) Unmarshal(data []byte) (any, error) {
	return data, nil
}

// Compile-time interface satisfaction check.
var _ Marshaller = Passthrough{}
