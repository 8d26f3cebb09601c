package marshal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/gatt-typed/gatt-go/pkg/log"
	"github.com/gatt-typed/gatt-go/pkg/presentation"
)

// DescriptorReader reads a descriptor value from the connected
// peripheral. This is the resolver's single blocking dependency; it is
// implemented by the transport layer.
type DescriptorReader interface {
	// ReadDescriptor reads the raw value of the descriptor at handle.
	// Cancellation and timeouts are governed by ctx and the transport.
	ReadDescriptor(ctx context.Context, handle uint16) ([]byte, error)
}

// PresentationRef locates a characteristic's presentation format
// descriptor (0x2904) on the peripheral.
type PresentationRef struct {
	Handle uint16
}

// Resolver decides which marshaller applies to a characteristic.
// It holds no per-characteristic state and is safe for concurrent use;
// two racing resolutions of the same characteristic each perform their
// own descriptor read, which is idempotent and accepted.
type Resolver struct {
	reader    DescriptorReader
	overrides *OverrideTable
	logger    log.Logger
	peer      string
}

// NewResolver creates a resolver.
// overrides may be nil (no vendor overrides); logger may be nil.
func NewResolver(reader DescriptorReader, overrides *OverrideTable, logger log.Logger) *Resolver {
	return &Resolver{
		reader:    reader,
		overrides: overrides,
		logger:    log.OrNoop(logger),
	}
}

// SetPeer records the peripheral address used in diagnostic events.
func (r *Resolver) SetPeer(addr string) {
	r.peer = addr
}

// Resolve returns the marshaller for a characteristic.
//
// The override table is consulted first (no I/O). Otherwise, if ref
// locates a presentation format descriptor, its 7-byte record is read
// and a Pack codec built from the format code and exponent; unsupported
// format codes degrade to Passthrough with a logged warning. With no
// override and no descriptor, Passthrough is returned with a logged
// warning so raw byte access still works.
//
// id may be uuid.Nil when the characteristic identity is unknown.
// Transport failures during the descriptor read are returned to the
// caller unretried.
func (r *Resolver) Resolve(ctx context.Context, id uuid.UUID, ref *PresentationRef) (Marshaller, error) {
	char := ""
	if id != uuid.Nil {
		char = id.String()
		if m, ok := r.overrides.Lookup(id); ok {
			r.logger.Log(log.Resolved(r.peer, char, log.OutcomeOverride))
			return m, nil
		}
	}

	if ref != nil {
		data, err := r.reader.ReadDescriptor(ctx, ref.Handle)
		if err != nil {
			return nil, fmt.Errorf("marshal: reading presentation format descriptor for %s: %w", char, err)
		}
		record, err := presentation.ParseRecord(data)
		if err != nil {
			return nil, fmt.Errorf("marshal: characteristic %s: %w", char, err)
		}

		if desc, ok := presentation.Lookup(record.Format); ok {
			event := log.Resolved(r.peer, char, log.OutcomePack)
			code := uint8(record.Format)
			exp := record.Exponent
			event.Resolution.FormatCode = &code
			event.Resolution.Exponent = &exp
			r.logger.Log(event)
			return NewPack(desc, record.Exponent), nil
		}

		event := log.ResolutionWarning(r.peer, char,
			fmt.Sprintf("unsupported presentation format 0x%02X", uint8(record.Format)))
		code := uint8(record.Format)
		event.Resolution.FormatCode = &code
		r.logger.Log(event)
		return Passthrough{}, nil
	}

	r.logger.Log(log.ResolutionWarning(r.peer, char, "no presentation format information"))
	return Passthrough{}, nil
}
