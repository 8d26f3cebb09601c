package gatt_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	tmock "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gatt-typed/gatt-go/internal/testharness/mock"
	"github.com/gatt-typed/gatt-go/pkg/gatt"
	"github.com/gatt-typed/gatt-go/pkg/marshal"
	"github.com/gatt-typed/gatt-go/pkg/presentation"
)

var batteryLevel = gatt.UUID16(0x2A19)

func newMockTransport() *mock.Transport {
	transport := &mock.Transport{}
	transport.On("Addr").Return("AA:BB:CC:DD:EE:FF")
	return transport
}

func TestClientReadTyped(t *testing.T) {
	transport := newMockTransport()
	char := gatt.Characteristic{UUID: batteryLevel, Handle: 3, PresentationHandle: 4}
	record := presentation.Record{Format: presentation.FormatUint8, Unit: 0x27AD}

	transport.On("FindCharacteristic", batteryLevel).Return(char, true)
	transport.On("ReadDescriptor", tmock.Anything, uint16(4)).Return(record.Bytes(), nil)
	transport.On("ReadCharacteristic", tmock.Anything, uint16(3)).Return([]byte{0x57}, nil)

	client := gatt.NewClient(transport, nil, nil)
	value, err := client.Read(context.Background(), batteryLevel)
	require.NoError(t, err)
	assert.Equal(t, uint64(87), value)
	transport.AssertExpectations(t)
}

func TestClientWriteTyped(t *testing.T) {
	transport := newMockTransport()
	char := gatt.Characteristic{UUID: batteryLevel, Handle: 3, PresentationHandle: 4}
	record := presentation.Record{Format: presentation.FormatUint16, Exponent: 2}

	transport.On("FindCharacteristic", batteryLevel).Return(char, true)
	transport.On("ReadDescriptor", tmock.Anything, uint16(4)).Return(record.Bytes(), nil)
	transport.On("WriteCharacteristic", tmock.Anything, uint16(3), []byte{0xD2, 0x04}, true).Return(nil)

	client := gatt.NewClient(transport, nil, nil)
	require.NoError(t, client.Write(context.Background(), batteryLevel, 123400, true))
	transport.AssertExpectations(t)
}

func TestClientUnknownCharacteristic(t *testing.T) {
	transport := newMockTransport()
	transport.On("FindCharacteristic", batteryLevel).Return(gatt.Characteristic{}, false)

	client := gatt.NewClient(transport, nil, nil)
	_, err := client.Read(context.Background(), batteryLevel)
	assert.ErrorIs(t, err, gatt.ErrCharacteristicNotFound)

	err = client.Write(context.Background(), batteryLevel, 1, false)
	assert.ErrorIs(t, err, gatt.ErrCharacteristicNotFound)
}

func TestClientOverrideSkipsDescriptorRead(t *testing.T) {
	transport := newMockTransport()
	char := gatt.Characteristic{UUID: batteryLevel, Handle: 3, PresentationHandle: 4}
	transport.On("FindCharacteristic", batteryLevel).Return(char, true)
	transport.On("ReadCharacteristic", tmock.Anything, uint16(3)).Return([]byte{0x2C, 0x01}, nil)

	desc, _ := presentation.Lookup(presentation.FormatUint16)
	overrides := marshal.NewOverrideTable()
	overrides.Register(batteryLevel, func() marshal.Marshaller { return marshal.NewPack(desc, 0) })

	client := gatt.NewClient(transport, overrides, nil)
	value, err := client.Read(context.Background(), batteryLevel)
	require.NoError(t, err)
	assert.Equal(t, uint64(300), value)

	transport.AssertNotCalled(t, "ReadDescriptor", tmock.Anything, tmock.Anything)
}

func TestClientDescriptorReadFailure(t *testing.T) {
	transport := newMockTransport()
	char := gatt.Characteristic{UUID: batteryLevel, Handle: 3, PresentationHandle: 4}
	readErr := errors.New("att timeout")

	transport.On("FindCharacteristic", batteryLevel).Return(char, true)
	transport.On("ReadDescriptor", tmock.Anything, uint16(4)).Return(nil, readErr)

	client := gatt.NewClient(transport, nil, nil)
	_, err := client.Read(context.Background(), batteryLevel)
	assert.ErrorIs(t, err, readErr)
}

func TestClientRawBypassesMarshalling(t *testing.T) {
	transport := newMockTransport()
	// No presentation descriptor, no override: raw paths must not care.
	char := gatt.Characteristic{UUID: batteryLevel, Handle: 3}
	transport.On("FindCharacteristic", batteryLevel).Return(char, true)
	transport.On("ReadCharacteristic", tmock.Anything, uint16(3)).Return([]byte{0xAA, 0xBB}, nil)
	transport.On("WriteCharacteristic", tmock.Anything, uint16(3), []byte{0x01}, false).Return(nil)

	client := gatt.NewClient(transport, nil, nil)

	data, err := client.ReadRaw(context.Background(), batteryLevel)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAA, 0xBB}, data)

	require.NoError(t, client.WriteRaw(context.Background(), batteryLevel, []byte{0x01}, false))
	transport.AssertNotCalled(t, "ReadDescriptor", tmock.Anything, tmock.Anything)
}
