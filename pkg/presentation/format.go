package presentation

import "fmt"

// FormatCode is the 1-byte format code from the Characteristic
// Presentation Format descriptor.
type FormatCode uint8

// Format codes defined by the Bluetooth specification.
// Not all of them are supported by the registry; see Lookup.
const (
	FormatBoolean FormatCode = 0x01
	FormatUint2   FormatCode = 0x02
	FormatUint4   FormatCode = 0x03
	FormatUint8   FormatCode = 0x04
	FormatUint12  FormatCode = 0x05
	FormatUint16  FormatCode = 0x06
	FormatUint24  FormatCode = 0x07
	FormatUint32  FormatCode = 0x08
	FormatUint48  FormatCode = 0x09
	FormatUint64  FormatCode = 0x0A
	FormatUint128 FormatCode = 0x0B
	FormatSint8   FormatCode = 0x0C
	FormatSint12  FormatCode = 0x0D
	FormatSint16  FormatCode = 0x0E
	FormatSint24  FormatCode = 0x0F
	FormatSint32  FormatCode = 0x10
	FormatSint48  FormatCode = 0x11
	FormatSint64  FormatCode = 0x12
	FormatSint128 FormatCode = 0x13
	FormatFloat32 FormatCode = 0x14
	FormatFloat64 FormatCode = 0x15
	FormatUTF8    FormatCode = 0x19
	FormatUTF16   FormatCode = 0x1A
	FormatStruct  FormatCode = 0x1B
)

// Kind is the primitive kind of a characteristic value.
// The set is closed; codecs match on it exhaustively.
type Kind uint8

const (
	KindBool Kind = iota
	KindUnsigned
	KindSigned
	KindFloat
	KindString
	KindBytes
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindUnsigned:
		return "unsigned"
	case KindSigned:
		return "signed"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	default:
		return "unknown"
	}
}

// Descriptor describes one supported binary format: the primitive kind
// and, for fixed-width kinds, the exact number of value bytes on the
// wire. Width is 0 for variable-length kinds (string, bytes).
// Descriptors are immutable; all fixed-width values are little-endian.
type Descriptor struct {
	Code  FormatCode
	Kind  Kind
	Width uint8
}

// Fixed returns true if the format has a fixed byte width.
func (d Descriptor) Fixed() bool {
	return d.Width != 0
}

// String returns a short diagnostic form like "sint16(0x0E,2B)".
func (d Descriptor) String() string {
	if !d.Fixed() {
		return fmt.Sprintf("%s(0x%02X,var)", d.Kind, uint8(d.Code))
	}
	return fmt.Sprintf("%s(0x%02X,%dB)", d.Kind, uint8(d.Code), d.Width)
}

// formats is the static registry. Sub-byte integer formats (2/4/12-bit)
// occupy the storage width of their containing integer. The 24-, 48-
// and 128-bit integer codes are intentionally not present.
var formats = map[FormatCode]Descriptor{
	FormatBoolean: {FormatBoolean, KindBool, 1},
	FormatUint2:   {FormatUint2, KindUnsigned, 1},
	FormatUint4:   {FormatUint4, KindUnsigned, 1},
	FormatUint8:   {FormatUint8, KindUnsigned, 1},
	FormatUint12:  {FormatUint12, KindUnsigned, 2},
	FormatUint16:  {FormatUint16, KindUnsigned, 2},
	FormatUint32:  {FormatUint32, KindUnsigned, 4},
	FormatUint64:  {FormatUint64, KindUnsigned, 8},
	FormatSint8:   {FormatSint8, KindSigned, 1},
	FormatSint12:  {FormatSint12, KindSigned, 2},
	FormatSint16:  {FormatSint16, KindSigned, 2},
	FormatSint32:  {FormatSint32, KindSigned, 4},
	FormatSint64:  {FormatSint64, KindSigned, 8},
	FormatFloat32: {FormatFloat32, KindFloat, 4},
	FormatFloat64: {FormatFloat64, KindFloat, 8},
	FormatUTF8:    {FormatUTF8, KindString, 0},
	FormatStruct:  {FormatStruct, KindBytes, 0},
}

// Lookup returns the descriptor for a format code.
// It is pure and performs no I/O; a miss means the code is unsupported
// and the caller should degrade to raw byte access.
func Lookup(code FormatCode) (Descriptor, bool) {
	d, ok := formats[code]
	return d, ok
}
