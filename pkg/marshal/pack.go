package marshal

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gatt-typed/gatt-go/pkg/presentation"
)

// Pack converts between native values and the fixed- or variable-width
// binary layout described by one format descriptor, applying the
// descriptor record's decimal exponent.
//
// Exponent semantics are symmetric: Unmarshal multiplies the unpacked
// integer by 10^exponent, Marshal divides by it before packing, so a
// round trip reproduces the value within one division/multiplication
// pair of float rounding. Exponent 0 is a strict no-op and integer kinds
// then round-trip at full 64-bit precision.
type Pack struct {
	desc     presentation.Descriptor
	exponent int8
}

// NewPack creates a codec for the given descriptor and decimal exponent.
func NewPack(desc presentation.Descriptor, exponent int8) Pack {
	return Pack{desc: desc, exponent: exponent}
}

// Descriptor returns the format descriptor this codec packs.
func (p Pack) Descriptor() presentation.Descriptor {
	return p.desc
}

// Exponent returns the decimal exponent this codec applies.
func (p Pack) Exponent() int8 {
	return p.exponent
}

// Marshal converts a native value to exactly Width bytes for fixed-width
// formats, or to the kind's direct byte conversion for variable-length
// formats. Values that cannot be coerced or do not fit the width return
// ErrValueType / ErrValueOutOfRange.
func (p Pack) Marshal(value any) ([]byte, error) {
	switch p.desc.Kind {
	case presentation.KindString:
		// Accepts bytes too: things like JSON encoders hand back bytes.
		switch v := value.(type) {
		case string:
			return []byte(v), nil
		case []byte:
			return v, nil
		default:
			return nil, fmt.Errorf("marshal: %w: %T for %s", ErrValueType, value, p.desc)
		}

	case presentation.KindBytes:
		switch v := value.(type) {
		case []byte:
			return v, nil
		case string:
			return []byte(v), nil
		default:
			return nil, fmt.Errorf("marshal: %w: %T for %s", ErrValueType, value, p.desc)
		}

	case presentation.KindBool:
		b, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("marshal: %w: %T for %s", ErrValueType, value, p.desc)
		}
		var u uint64
		if b {
			u = 1
		}
		return p.packed(u), nil

	case presentation.KindUnsigned:
		u, err := p.marshalUint(value)
		if err != nil {
			return nil, err
		}
		return p.packed(u), nil

	case presentation.KindSigned:
		i, err := p.marshalInt(value)
		if err != nil {
			return nil, err
		}
		return p.packed(uint64(i)), nil

	case presentation.KindFloat:
		f, ok := toFloat64(value)
		if !ok {
			return nil, fmt.Errorf("marshal: %w: %T for %s", ErrValueType, value, p.desc)
		}
		f = p.unscale(f)
		if p.desc.Width == 4 {
			return p.packed(uint64(math.Float32bits(float32(f)))), nil
		}
		return p.packed(math.Float64bits(f)), nil

	default:
		panic(fmt.Sprintf("marshal: unhandled kind %v in descriptor %s", p.desc.Kind, p.desc))
	}
}

// Unmarshal converts raw characteristic bytes to a native value:
// uint64 for unsigned formats, int64 for signed, bool, float64 for
// floats, string for UTF-8 and []byte for opaque structures. When the
// exponent is non-zero, numeric formats unmarshal to a scaled float64.
//
// For fixed-width formats the input must be exactly Width bytes.
// A mismatch means the registry, the peripheral's descriptor, or the
// caller is inconsistent with the data; it cannot arise from valid peer
// values and panics rather than silently truncating.
func (p Pack) Unmarshal(data []byte) (any, error) {
	switch p.desc.Kind {
	case presentation.KindString:
		return string(data), nil
	case presentation.KindBytes:
		return data, nil
	}

	p.checkWidth(len(data))

	switch p.desc.Kind {
	case presentation.KindBool:
		return data[0] != 0, nil

	case presentation.KindUnsigned:
		u := unpackUint(data)
		if p.exponent != 0 {
			return p.scale(float64(u)), nil
		}
		return u, nil

	case presentation.KindSigned:
		i := unpackInt(data)
		if p.exponent != 0 {
			return p.scale(float64(i)), nil
		}
		return i, nil

	case presentation.KindFloat:
		var f float64
		if p.desc.Width == 4 {
			f = float64(math.Float32frombits(uint32(unpackUint(data))))
		} else {
			f = math.Float64frombits(unpackUint(data))
		}
		if p.exponent != 0 {
			return p.scale(f), nil
		}
		return f, nil

	default:
		panic(fmt.Sprintf("marshal: unhandled kind %v in descriptor %s", p.desc.Kind, p.desc))
	}
}

// marshalUint coerces and range-checks a value for an unsigned format.
func (p Pack) marshalUint(value any) (uint64, error) {
	var u uint64
	if p.exponent != 0 {
		f, ok := toFloat64(value)
		if !ok {
			return 0, fmt.Errorf("marshal: %w: %T for %s", ErrValueType, value, p.desc)
		}
		var err error
		u, err = floatToUint64(p.unscale(f))
		if err != nil {
			return 0, err
		}
	} else {
		var err error
		u, err = toUint64(value)
		if err != nil {
			return 0, err
		}
	}
	if p.desc.Width < 8 && u > (uint64(1)<<(8*p.desc.Width))-1 {
		return 0, fmt.Errorf("marshal: %w: %d exceeds %s", ErrValueOutOfRange, u, p.desc)
	}
	return u, nil
}

// marshalInt coerces and range-checks a value for a signed format.
func (p Pack) marshalInt(value any) (int64, error) {
	var i int64
	if p.exponent != 0 {
		f, ok := toFloat64(value)
		if !ok {
			return 0, fmt.Errorf("marshal: %w: %T for %s", ErrValueType, value, p.desc)
		}
		var err error
		i, err = floatToInt64(p.unscale(f))
		if err != nil {
			return 0, err
		}
	} else {
		var err error
		i, err = toInt64(value)
		if err != nil {
			return 0, err
		}
	}
	if p.desc.Width < 8 {
		bits := 8*uint(p.desc.Width) - 1
		max := int64(1)<<bits - 1
		min := -(int64(1) << bits)
		if i < min || i > max {
			return 0, fmt.Errorf("marshal: %w: %d exceeds %s", ErrValueOutOfRange, i, p.desc)
		}
	}
	return i, nil
}

// scale applies the decode-time exponent (multiply by 10^e).
func (p Pack) scale(f float64) float64 {
	return f * math.Pow10(int(p.exponent))
}

// unscale inverts scale for encoding (divide by 10^e).
func (p Pack) unscale(f float64) float64 {
	return f / math.Pow10(int(p.exponent))
}

// packed packs the low Width bytes of u little-endian and verifies the
// postcondition that the output length matches the descriptor.
func (p Pack) packed(u uint64) []byte {
	var out []byte
	switch p.desc.Width {
	case 1:
		out = []byte{uint8(u)}
	case 2:
		out = make([]byte, 2)
		binary.LittleEndian.PutUint16(out, uint16(u))
	case 4:
		out = make([]byte, 4)
		binary.LittleEndian.PutUint32(out, uint32(u))
	case 8:
		out = make([]byte, 8)
		binary.LittleEndian.PutUint64(out, u)
	}
	if len(out) != int(p.desc.Width) {
		panic(fmt.Sprintf("marshal: %s: packed %d bytes, expected %d", p.desc, len(out), p.desc.Width))
	}
	return out
}

// checkWidth asserts the fixed-width invariant on decode.
func (p Pack) checkWidth(n int) {
	if n != int(p.desc.Width) {
		panic(fmt.Sprintf("marshal: %s: expected %d bytes, got %d", p.desc, p.desc.Width, n))
	}
}

// unpackUint reads 1, 2, 4 or 8 little-endian bytes.
func unpackUint(data []byte) uint64 {
	switch len(data) {
	case 1:
		return uint64(data[0])
	case 2:
		return uint64(binary.LittleEndian.Uint16(data))
	case 4:
		return uint64(binary.LittleEndian.Uint32(data))
	case 8:
		return binary.LittleEndian.Uint64(data)
	default:
		panic(fmt.Sprintf("marshal: unpack of %d bytes", len(data)))
	}
}

// unpackInt reads 1, 2, 4 or 8 little-endian bytes with sign extension.
func unpackInt(data []byte) int64 {
	switch len(data) {
	case 1:
		return int64(int8(data[0]))
	case 2:
		return int64(int16(binary.LittleEndian.Uint16(data)))
	case 4:
		return int64(int32(binary.LittleEndian.Uint32(data)))
	case 8:
		return int64(binary.LittleEndian.Uint64(data))
	default:
		panic(fmt.Sprintf("marshal: unpack of %d bytes", len(data)))
	}
}

// Compile-time interface satisfaction check.
var _ Marshaller = Pack{}
