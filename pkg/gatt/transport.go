package gatt

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/gatt-typed/gatt-go/pkg/marshal"
)

// Transport errors.
var (
	// ErrCharacteristicNotFound means the identifier resolves to no
	// characteristic on the connected peripheral.
	ErrCharacteristicNotFound = errors.New("gatt: characteristic not found")
)

// Characteristic is a live characteristic on a connected peripheral.
type Characteristic struct {
	// UUID identifies the characteristic.
	UUID uuid.UUID

	// Handle is the value handle for read/write operations.
	Handle uint16

	// PresentationHandle is the handle of the characteristic's
	// presentation format descriptor (0x2904), or 0 if it has none.
	PresentationHandle uint16
}

// PresentationRef returns the locator for the characteristic's
// presentation format descriptor, or nil if it has none.
func (c Characteristic) PresentationRef() *marshal.PresentationRef {
	if c.PresentationHandle == 0 {
		return nil
	}
	return &marshal.PresentationRef{Handle: c.PresentationHandle}
}

// Transport is the boundary to the Bluetooth stack for one connected
// peripheral. Implementations own connection lifecycle, timeouts and
// retries; methods fail with transport errors when the peer is
// unreachable or an operation is rejected.
type Transport interface {
	// Addr returns the peripheral address, for diagnostics.
	Addr() string

	// FindCharacteristic looks up a characteristic by UUID.
	FindCharacteristic(id uuid.UUID) (Characteristic, bool)

	// ReadCharacteristic reads the raw value at the given value handle.
	ReadCharacteristic(ctx context.Context, handle uint16) ([]byte, error)

	// WriteCharacteristic writes raw bytes to the given value handle,
	// acknowledged when withResponse is true.
	WriteCharacteristic(ctx context.Context, handle uint16, data []byte, withResponse bool) error

	// ReadDescriptor reads the raw value of a descriptor.
	ReadDescriptor(ctx context.Context, handle uint16) ([]byte, error)
}
