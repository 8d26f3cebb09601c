package gatt

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/gatt-typed/gatt-go/pkg/log"
	"github.com/gatt-typed/gatt-go/pkg/marshal"
)

// Client reads and writes characteristics as native Go values.
//
// Each typed operation re-resolves the characteristic's marshaller; the
// result is not cached, so repeated operations on a characteristic with
// a presentation format descriptor each cost one extra descriptor round
// trip. Callers that care can obtain the marshaller once via Marshaller
// and use ReadRaw/WriteRaw.
type Client struct {
	transport Transport
	resolver  *marshal.Resolver
	logger    log.Logger
}

// NewClient creates a typed client over a connected transport.
// overrides may be nil (no vendor overrides); logger may be nil.
func NewClient(transport Transport, overrides *marshal.OverrideTable, logger log.Logger) *Client {
	resolver := marshal.NewResolver(transport, overrides, logger)
	resolver.SetPeer(transport.Addr())
	return &Client{
		transport: transport,
		resolver:  resolver,
		logger:    log.OrNoop(logger),
	}
}

// Marshaller resolves the marshaller for a characteristic.
func (c *Client) Marshaller(ctx context.Context, id uuid.UUID) (marshal.Marshaller, error) {
	char, err := c.find(id)
	if err != nil {
		return nil, err
	}
	return c.resolver.Resolve(ctx, char.UUID, char.PresentationRef())
}

// Read reads a characteristic and unmarshals it to a native value.
func (c *Client) Read(ctx context.Context, id uuid.UUID) (any, error) {
	char, err := c.find(id)
	if err != nil {
		return nil, err
	}
	m, err := c.resolver.Resolve(ctx, char.UUID, char.PresentationRef())
	if err != nil {
		return nil, err
	}
	data, err := c.transport.ReadCharacteristic(ctx, char.Handle)
	if err != nil {
		return nil, fmt.Errorf("gatt: reading %s: %w", char.UUID, err)
	}
	c.logger.Log(log.Transferred(c.transport.Addr(), char.UUID.String(), log.DirectionRead, len(data), false))
	return m.Unmarshal(data)
}

// Write marshals a native value and writes it to a characteristic.
func (c *Client) Write(ctx context.Context, id uuid.UUID, value any, withResponse bool) error {
	char, err := c.find(id)
	if err != nil {
		return err
	}
	m, err := c.resolver.Resolve(ctx, char.UUID, char.PresentationRef())
	if err != nil {
		return err
	}
	data, err := m.Marshal(value)
	if err != nil {
		return err
	}
	if err := c.transport.WriteCharacteristic(ctx, char.Handle, data, withResponse); err != nil {
		return fmt.Errorf("gatt: writing %s: %w", char.UUID, err)
	}
	c.logger.Log(log.Transferred(c.transport.Addr(), char.UUID.String(), log.DirectionWrite, len(data), withResponse))
	return nil
}

// ReadRaw reads a characteristic's raw bytes, bypassing marshalling.
func (c *Client) ReadRaw(ctx context.Context, id uuid.UUID) ([]byte, error) {
	char, err := c.find(id)
	if err != nil {
		return nil, err
	}
	data, err := c.transport.ReadCharacteristic(ctx, char.Handle)
	if err != nil {
		return nil, fmt.Errorf("gatt: reading %s: %w", char.UUID, err)
	}
	c.logger.Log(log.Transferred(c.transport.Addr(), char.UUID.String(), log.DirectionRead, len(data), false))
	return data, nil
}

// WriteRaw writes raw bytes to a characteristic, bypassing marshalling.
func (c *Client) WriteRaw(ctx context.Context, id uuid.UUID, data []byte, withResponse bool) error {
	char, err := c.find(id)
	if err != nil {
		return err
	}
	if err := c.transport.WriteCharacteristic(ctx, char.Handle, data, withResponse); err != nil {
		return fmt.Errorf("gatt: writing %s: %w", char.UUID, err)
	}
	c.logger.Log(log.Transferred(c.transport.Addr(), char.UUID.String(), log.DirectionWrite, len(data), withResponse))
	return nil
}

func (c *Client) find(id uuid.UUID) (Characteristic, error) {
	char, ok := c.transport.FindCharacteristic(id)
	if !ok {
		return Characteristic{}, fmt.Errorf("%w: %s on %s", ErrCharacteristicNotFound, id, c.transport.Addr())
	}
	return char, nil
}
