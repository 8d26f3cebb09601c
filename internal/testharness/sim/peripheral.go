// Package sim provides an in-memory simulated peripheral implementing
// gatt.Transport. It backs the interactive shell and end-to-end tests
// without a Bluetooth stack.
package sim

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/gatt-typed/gatt-go/pkg/gatt"
	"github.com/gatt-typed/gatt-go/pkg/presentation"
)

// Simulated transport errors.
var (
	ErrUnknownHandle = errors.New("sim: unknown handle")
)

// Peripheral is a simulated connected peripheral. Characteristics are
// handle-addressed; a characteristic with a presentation format record
// also exposes a 0x2904 descriptor at its own handle.
type Peripheral struct {
	addr string

	mu       sync.RWMutex
	next     uint16
	byHandle map[uint16]*characteristic
	byUUID   map[uuid.UUID]*characteristic

	// descriptorErr, when set, makes all descriptor reads fail.
	// Used to simulate transport faults.
	descriptorErr error
}

type characteristic struct {
	char   gatt.Characteristic
	value  []byte
	record []byte // 7-byte presentation format record, nil if none
}

// NewPeripheral creates an empty simulated peripheral.
func NewPeripheral(addr string) *Peripheral {
	return &Peripheral{
		addr:     addr,
		next:     1,
		byHandle: make(map[uint16]*characteristic),
		byUUID:   make(map[uuid.UUID]*characteristic),
	}
}

// AddCharacteristic adds a characteristic with no presentation format
// descriptor and returns its value handle.
func (p *Peripheral) AddCharacteristic(id uuid.UUID, value []byte) uint16 {
	return p.add(id, value, nil)
}

// AddTypedCharacteristic adds a characteristic carrying a presentation
// format descriptor and returns its value handle.
func (p *Peripheral) AddTypedCharacteristic(id uuid.UUID, record presentation.Record, value []byte) uint16 {
	return p.add(id, value, record.Bytes())
}

func (p *Peripheral) add(id uuid.UUID, value, record []byte) uint16 {
	p.mu.Lock()
	defer p.mu.Unlock()

	valueHandle := p.next
	p.next++
	c := &characteristic{
		char:  gatt.Characteristic{UUID: id, Handle: valueHandle},
		value: value,
	}
	if record != nil {
		c.char.PresentationHandle = p.next
		p.next++
		c.record = record
	}
	p.byHandle[valueHandle] = c
	p.byUUID[id] = c
	return valueHandle
}

// FailDescriptorReads makes subsequent descriptor reads fail with err,
// or succeed again when err is nil.
func (p *Peripheral) FailDescriptorReads(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.descriptorErr = err
}

// Value returns the current raw value of a characteristic.
func (p *Peripheral) Value(id uuid.UUID) ([]byte, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	c, ok := p.byUUID[id]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), c.value...), true
}

// Characteristics returns all characteristics in handle order.
func (p *Peripheral) Characteristics() []gatt.Characteristic {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]gatt.Characteristic, 0, len(p.byHandle))
	for h := uint16(1); h < p.next; h++ {
		if c, ok := p.byHandle[h]; ok {
			out = append(out, c.char)
		}
	}
	return out
}

// Addr returns the simulated peripheral address.
func (p *Peripheral) Addr() string {
	return p.addr
}

// FindCharacteristic looks up a characteristic by UUID.
func (p *Peripheral) FindCharacteristic(id uuid.UUID) (gatt.Characteristic, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	c, ok := p.byUUID[id]
	if !ok {
		return gatt.Characteristic{}, false
	}
	return c.char, true
}

// ReadCharacteristic reads the raw value at a value handle.
func (p *Peripheral) ReadCharacteristic(_ context.Context, handle uint16) ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	c, ok := p.byHandle[handle]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownHandle, handle)
	}
	return append([]byte(nil), c.value...), nil
}

// WriteCharacteristic replaces the raw value at a value handle.
func (p *Peripheral) WriteCharacteristic(_ context.Context, handle uint16, data []byte, _ bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.byHandle[handle]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownHandle, handle)
	}
	c.value = append([]byte(nil), data...)
	return nil
}

// ReadDescriptor reads a descriptor value. Only presentation format
// descriptors exist on simulated characteristics.
func (p *Peripheral) ReadDescriptor(_ context.Context, handle uint16) ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.descriptorErr != nil {
		return nil, p.descriptorErr
	}
	for _, c := range p.byHandle {
		if c.char.PresentationHandle == handle && c.record != nil {
			return append([]byte(nil), c.record...), nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownHandle, handle)
}

// Compile-time interface satisfaction check.
var _ gatt.Transport = (*Peripheral)(nil)
