package presentation

import (
	"encoding/binary"
	"fmt"
)

// RecordLength is the exact size of a presentation format descriptor
// value on the wire.
const RecordLength = 7

// Record is the decoded Characteristic Presentation Format descriptor.
//
// Exponent is a base-10 scale factor: the characteristic value equals
// the packed integer multiplied by 10^Exponent. Unit, Namespace and
// Description are carried verbatim and not interpreted.
type Record struct {
	Format      FormatCode
	Exponent    int8
	Unit        uint16
	Namespace   uint8
	Description uint16
}

// ParseRecord decodes the 7-byte descriptor value.
// Field order and widths are mandated by the standard and not negotiable;
// any other input length is rejected.
func ParseRecord(data []byte) (Record, error) {
	if len(data) != RecordLength {
		return Record{}, fmt.Errorf("presentation: record must be %d bytes, got %d", RecordLength, len(data))
	}
	return Record{
		Format:      FormatCode(data[0]),
		Exponent:    int8(data[1]),
		Unit:        binary.LittleEndian.Uint16(data[2:4]),
		Namespace:   data[4],
		Description: binary.LittleEndian.Uint16(data[5:7]),
	}, nil
}

// Bytes returns the 7-byte wire form of the record.
func (r Record) Bytes() []byte {
	b := make([]byte, RecordLength)
	b[0] = uint8(r.Format)
	b[1] = uint8(r.Exponent)
	binary.LittleEndian.PutUint16(b[2:4], r.Unit)
	b[4] = r.Namespace
	binary.LittleEndian.PutUint16(b[5:7], r.Description)
	return b
}

// String returns a diagnostic form of the record.
func (r Record) String() string {
	return fmt.Sprintf("format=0x%02X exponent=%d unit=0x%04X namespace=%d description=0x%04X",
		uint8(r.Format), r.Exponent, r.Unit, r.Namespace, r.Description)
}
