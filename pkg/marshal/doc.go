// Package marshal converts between raw characteristic bytes and native Go
// values.
//
// A Marshaller is resolved per characteristic by the Resolver:
//
//  1. If the characteristic UUID has an entry in the OverrideTable, that
//     pre-registered marshaller is returned without any I/O. This is how
//     applications handle vendor characteristics the standard descriptor
//     cannot express.
//  2. Otherwise, if the characteristic has a presentation format
//     descriptor (0x2904), its 7-byte record is read from the peripheral
//     and a Pack codec is built from the format code and decimal
//     exponent.
//  3. If the format code is unsupported, or no format information exists
//     at all, resolution degrades to the Passthrough identity codec and a
//     warning event is logged. Raw byte access always remains possible.
//
// Resolution is stateless: nothing is cached, repeated calls for the same
// characteristic re-resolve independently, and concurrent calls may race
// benignly (descriptor reads are idempotent). The inefficiency is
// accepted; the codecs produced for a characteristic are equivalent
// across calls.
//
// Constructed marshallers hold only immutable configuration and are safe
// for concurrent use.
package marshal
