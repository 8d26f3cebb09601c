package marshal

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/gatt-typed/gatt-go/pkg/log"
	"github.com/gatt-typed/gatt-go/pkg/presentation"
)

// stubReader is a DescriptorReader serving one canned record.
type stubReader struct {
	data  []byte
	err   error
	calls int
}

func (r *stubReader) ReadDescriptor(_ context.Context, _ uint16) ([]byte, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.data, nil
}

// captureLogger records events for assertions.
type captureLogger struct {
	mu     sync.Mutex
	events []log.Event
}

func (l *captureLogger) Log(event log.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
}

func (l *captureLogger) warnings() []log.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []log.Event
	for _, e := range l.events {
		if e.Resolution != nil && e.Resolution.Reason != "" {
			out = append(out, e)
		}
	}
	return out
}

func TestResolveOverrideShortCircuits(t *testing.T) {
	id := uuid.MustParse("f000aa01-0451-4000-b000-000000000000")
	table := NewOverrideTable()
	desc, _ := presentation.Lookup(presentation.FormatUint8)
	table.Register(id, func() Marshaller { return NewPack(desc, 0) })

	reader := &stubReader{data: presentation.Record{Format: presentation.FormatSint16}.Bytes()}
	resolver := NewResolver(reader, table, nil)

	// Even with a descriptor available, the override wins without I/O.
	m, err := resolver.Resolve(context.Background(), id, &PresentationRef{Handle: 9})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if reader.calls != 0 {
		t.Errorf("descriptor read count = %d, want 0", reader.calls)
	}
	codec, ok := m.(Pack)
	if !ok {
		t.Fatalf("marshaller type %T, want Pack", m)
	}
	if codec.Descriptor().Code != presentation.FormatUint8 {
		t.Errorf("override descriptor mismatch: %s", codec.Descriptor())
	}
}

func TestResolveFromDescriptor(t *testing.T) {
	record := presentation.Record{Format: presentation.FormatSint16, Exponent: -2, Unit: 0x272F}
	reader := &stubReader{data: record.Bytes()}
	logger := &captureLogger{}
	resolver := NewResolver(reader, nil, logger)

	m, err := resolver.Resolve(context.Background(), uuid.New(), &PresentationRef{Handle: 4})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if reader.calls != 1 {
		t.Errorf("descriptor read count = %d, want 1", reader.calls)
	}
	codec, ok := m.(Pack)
	if !ok {
		t.Fatalf("marshaller type %T, want Pack", m)
	}
	if codec.Descriptor().Code != presentation.FormatSint16 {
		t.Errorf("descriptor mismatch: %s", codec.Descriptor())
	}
	if codec.Exponent() != -2 {
		t.Errorf("exponent = %d, want -2", codec.Exponent())
	}
	if len(logger.warnings()) != 0 {
		t.Errorf("unexpected warnings: %+v", logger.warnings())
	}
}

func TestResolveUnsupportedFormatDegrades(t *testing.T) {
	// Code 0x07 (24-bit unsigned) is reserved but not implemented;
	// resolution degrades to passthrough with a logged warning.
	record := presentation.Record{Format: presentation.FormatUint24}
	reader := &stubReader{data: record.Bytes()}
	logger := &captureLogger{}
	resolver := NewResolver(reader, nil, logger)

	m, err := resolver.Resolve(context.Background(), uuid.New(), &PresentationRef{Handle: 4})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if _, ok := m.(Passthrough); !ok {
		t.Fatalf("marshaller type %T, want Passthrough", m)
	}

	raw := []byte{0x01, 0x02, 0x03}
	v, err := m.Unmarshal(raw)
	if err != nil {
		t.Fatalf("passthrough Unmarshal failed: %v", err)
	}
	if string(v.([]byte)) != string(raw) {
		t.Errorf("passthrough changed bytes: % X", v)
	}

	warnings := logger.warnings()
	if len(warnings) != 1 {
		t.Fatalf("warning count = %d, want 1", len(warnings))
	}
	if warnings[0].Resolution.FormatCode == nil || *warnings[0].Resolution.FormatCode != 0x07 {
		t.Errorf("warning should carry the unsupported format code: %+v", warnings[0].Resolution)
	}
}

func TestResolveNoInformationDegrades(t *testing.T) {
	logger := &captureLogger{}
	resolver := NewResolver(&stubReader{}, nil, logger)

	m, err := resolver.Resolve(context.Background(), uuid.Nil, nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if _, ok := m.(Passthrough); !ok {
		t.Fatalf("marshaller type %T, want Passthrough", m)
	}
	if len(logger.warnings()) != 1 {
		t.Errorf("warning count = %d, want 1", len(logger.warnings()))
	}
}

func TestResolveTransportErrorPropagates(t *testing.T) {
	readErr := errors.New("peer unreachable")
	reader := &stubReader{err: readErr}
	resolver := NewResolver(reader, nil, nil)

	m, err := resolver.Resolve(context.Background(), uuid.New(), &PresentationRef{Handle: 4})
	if !errors.Is(err, readErr) {
		t.Fatalf("error = %v, want wrapped %v", err, readErr)
	}
	if m != nil {
		t.Errorf("marshaller should be nil on transport failure, got %T", m)
	}
}

func TestResolveMalformedRecord(t *testing.T) {
	reader := &stubReader{data: []byte{0x06, 0x00}} // truncated record
	resolver := NewResolver(reader, nil, nil)

	if _, err := resolver.Resolve(context.Background(), uuid.New(), &PresentationRef{Handle: 4}); err == nil {
		t.Fatal("Resolve should fail on a malformed record")
	}
}

func TestResolveRepeatedCallsReRead(t *testing.T) {
	// Resolution never caches; each call performs its own read.
	record := presentation.Record{Format: presentation.FormatUint16}
	reader := &stubReader{data: record.Bytes()}
	resolver := NewResolver(reader, nil, nil)

	id := uuid.New()
	for i := 0; i < 3; i++ {
		if _, err := resolver.Resolve(context.Background(), id, &PresentationRef{Handle: 4}); err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
	}
	if reader.calls != 3 {
		t.Errorf("descriptor read count = %d, want 3", reader.calls)
	}
}
