package marshal

import "github.com/google/uuid"

// Factory produces a marshaller for a characteristic. Factories are
// registered in an OverrideTable for vendor characteristics whose
// encoding the standard presentation format descriptor cannot express.
type Factory func() Marshaller

// OverrideTable maps characteristic UUIDs to marshaller factories.
// The resolver consults it before any remote read.
//
// The table provides no internal synchronization: populate it fully
// before handing it to a Resolver. Registration must happen-before any
// concurrent Resolve call; during resolution the table is read-only and
// concurrent lookups are safe.
type OverrideTable struct {
	factories map[uuid.UUID]Factory
}

// NewOverrideTable creates an empty override table.
func NewOverrideTable() *OverrideTable {
	return &OverrideTable{factories: make(map[uuid.UUID]Factory)}
}

// Register associates a factory with a characteristic UUID,
// replacing any previous entry.
func (t *OverrideTable) Register(id uuid.UUID, factory Factory) {
	t.factories[id] = factory
}

// Lookup returns a marshaller for the characteristic, if registered.
func (t *OverrideTable) Lookup(id uuid.UUID) (Marshaller, bool) {
	if t == nil {
		return nil, false
	}
	factory, ok := t.factories[id]
	if !ok {
		return nil, false
	}
	return factory(), true
}

// Len returns the number of registered overrides.
func (t *OverrideTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.factories)
}
