package marshal

import (
	"bytes"
	"errors"
	"testing"
)

func TestPassthroughUnmarshal(t *testing.T) {
	// The terminal fallback: bytes in, bytes out, never fails.
	inputs := [][]byte{
		nil,
		{},
		{0x00},
		{0xDE, 0xAD, 0xBE, 0xEF},
		bytes.Repeat([]byte{0xAB}, 512),
	}

	for _, data := range inputs {
		got, err := Passthrough{}.Unmarshal(data)
		if err != nil {
			t.Fatalf("Unmarshal(% X) failed: %v", data, err)
		}
		if !bytes.Equal(got.([]byte), data) {
			t.Errorf("bytes changed: got % X, want % X", got, data)
		}
	}
}

func TestPassthroughMarshal(t *testing.T) {
	raw := []byte{0x01, 0x02}
	got, err := Passthrough{}.Marshal(raw)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !bytes.Equal(got, raw) {
		t.Errorf("bytes changed: got % X", got)
	}

	got, err = Passthrough{}.Marshal("hi")
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !bytes.Equal(got, []byte("hi")) {
		t.Errorf("string conversion mismatch: got % X", got)
	}
}

func TestPassthroughMarshalRejectsNonBytes(t *testing.T) {
	for _, value := range []any{42, 1.5, true, struct{}{}} {
		if _, err := (Passthrough{}).Marshal(value); !errors.Is(err, ErrNotByteSequence) {
			t.Errorf("Marshal(%T) error = %v, want ErrNotByteSequence", value, err)
		}
	}
}
