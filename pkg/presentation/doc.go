// Package presentation implements the GATT Characteristic Presentation
// Format (descriptor UUID 0x2904): the static registry of binary format
// codes defined by the Bluetooth specification, and the 7-byte descriptor
// record that carries a characteristic's format, decimal exponent, unit
// and namespace.
//
// # Format Registry
//
// The registry maps a 1-byte format code to an immutable Descriptor
// describing the primitive kind and fixed byte width of the value. Codes
// for 24-bit, 48-bit and 128-bit integers are reserved by the standard
// but deliberately absent from the registry; callers must treat a failed
// Lookup as "unsupported" and fall back to raw byte access.
//
// # Presentation Format Record
//
// The record layout is a fixed external standard and is parsed exactly:
//
//	byte 0   format      (uint8)
//	byte 1   exponent    (int8)
//	bytes 2-3 unit       (uint16, little-endian)
//	byte 4   namespace   (uint8)
//	bytes 5-6 description (uint16, little-endian)
//
// The unit and namespace fields are parsed and carried but not consumed
// by this module; they exist for future extension.
package presentation
