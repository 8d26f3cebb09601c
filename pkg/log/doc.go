// Package log provides structured event logging for characteristic
// marshalling and transfers.
//
// The library never writes to stdout/stderr on its own. Components accept
// a Logger and emit Event records for resolution outcomes (which codec
// was chosen and why), raw transfers, and errors. Applications choose a
// sink:
//
//   - NoopLogger: discard everything (the default)
//   - SlogAdapter: forward to a log/slog logger for console output
//   - FileLogger: append CBOR-encoded events to a capture file
//   - MultiLogger: fan out to several of the above
//
// Capture files use CBOR with integer keys for compactness and can be
// read back with Reader, optionally filtered by peer, characteristic,
// category or time range.
package log
