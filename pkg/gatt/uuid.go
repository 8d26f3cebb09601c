package gatt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// baseUUID is the Bluetooth Base UUID, 00000000-0000-1000-8000-00805F9B34FB.
// 16- and 32-bit assigned numbers expand into its first four bytes.
var baseUUID = uuid.UUID{
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10, 0x00,
	0x80, 0x00, 0x00, 0x80, 0x5F, 0x9B, 0x34, 0xFB,
}

// UUID16 expands a 16-bit Bluetooth assigned number to a full UUID.
func UUID16(short uint16) uuid.UUID {
	id := baseUUID
	id[2] = uint8(short >> 8)
	id[3] = uint8(short)
	return id
}

// UUID32 expands a 32-bit Bluetooth assigned number to a full UUID.
func UUID32(short uint32) uuid.UUID {
	id := baseUUID
	id[0] = uint8(short >> 24)
	id[1] = uint8(short >> 16)
	id[2] = uint8(short >> 8)
	id[3] = uint8(short)
	return id
}

// PresentationFormatUUID is the Characteristic Presentation Format
// descriptor (0x2904).
var PresentationFormatUUID = UUID16(0x2904)

// ParseID parses a characteristic or descriptor identifier.
// It accepts a full UUID string, or a short Bluetooth assigned number in
// 4 or 8 hex digits with optional 0x prefix ("2a19", "0x2A19").
func ParseID(s string) (uuid.UUID, error) {
	short := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	switch len(short) {
	case 4:
		if n, err := strconv.ParseUint(short, 16, 16); err == nil {
			return UUID16(uint16(n)), nil
		}
	case 8:
		if n, err := strconv.ParseUint(short, 16, 32); err == nil {
			return UUID32(uint32(n)), nil
		}
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("gatt: invalid identifier %q: %w", s, err)
	}
	return id, nil
}
