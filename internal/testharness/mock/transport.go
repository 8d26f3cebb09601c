// Package mock provides a testify mock of the gatt.Transport interface
// for unit tests.
package mock

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/gatt-typed/gatt-go/pkg/gatt"
)

// Transport is a mock gatt.Transport.
type Transport struct {
	mock.Mock
}

// Addr returns the mocked peripheral address.
func (t *Transport) Addr() string {
	args := t.Called()
	return args.String(0)
}

// FindCharacteristic looks up a mocked characteristic.
func (t *Transport) FindCharacteristic(id uuid.UUID) (gatt.Characteristic, bool) {
	args := t.Called(id)
	return args.Get(0).(gatt.Characteristic), args.Bool(1)
}

// ReadCharacteristic returns the mocked raw value.
func (t *Transport) ReadCharacteristic(ctx context.Context, handle uint16) ([]byte, error) {
	args := t.Called(ctx, handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// WriteCharacteristic records the mocked write.
func (t *Transport) WriteCharacteristic(ctx context.Context, handle uint16, data []byte, withResponse bool) error {
	args := t.Called(ctx, handle, data, withResponse)
	return args.Error(0)
}

// ReadDescriptor returns the mocked descriptor value.
func (t *Transport) ReadDescriptor(ctx context.Context, handle uint16) ([]byte, error) {
	args := t.Called(ctx, handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Compile-time interface satisfaction check.
var _ gatt.Transport = (*Transport)(nil)
