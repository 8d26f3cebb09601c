// Package gatt provides typed access to GATT characteristics over an
// abstract transport.
//
// The Transport interface is the boundary to the actual Bluetooth stack:
// this package assumes a connected peripheral whose characteristics can
// be looked up by UUID and read/written by handle. Discovering
// peripherals, connection lifecycle, attribute enumeration and
// transport-level retries all live behind that interface and are out of
// scope here.
//
// Client layers marshalling on top: Read resolves the characteristic's
// marshaller (override table, presentation format descriptor, or
// passthrough), reads the raw bytes, and converts them to a native Go
// value; Write is the inverse. ReadRaw/WriteRaw bypass marshalling.
//
//	client := gatt.NewClient(transport, overrides, logger)
//	level, err := client.Read(ctx, gatt.UUID16(0x2A19))
//	err = client.Write(ctx, thresholdUUID, 42, true)
package gatt
