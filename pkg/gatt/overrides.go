package gatt

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gatt-typed/gatt-go/pkg/marshal"
	"github.com/gatt-typed/gatt-go/pkg/presentation"
)

// overridesFile is the YAML schema for vendor override files:
//
//	overrides:
//	  "f000aa01-0451-4000-b000-000000000000":
//	    format: 14
//	    exponent: -2
//	  "2a19":
//	    passthrough: true
type overridesFile struct {
	Overrides map[string]overrideEntry `yaml:"overrides"`
}

type overrideEntry struct {
	Format      *uint8 `yaml:"format"`
	Exponent    int8   `yaml:"exponent"`
	Passthrough bool   `yaml:"passthrough"`
}

// LoadOverrides reads a vendor override file and registers its entries
// into table. Keys accept the same identifier forms as ParseID.
// Entries name either a supported presentation format code (with an
// optional exponent) or passthrough.
func LoadOverrides(path string, table *marshal.OverrideTable) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return ParseOverrides(data, table)
}

// ParseOverrides registers override entries from YAML bytes.
func ParseOverrides(data []byte, table *marshal.OverrideTable) error {
	var file overridesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("gatt: parsing overrides: %w", err)
	}

	for key, entry := range file.Overrides {
		id, err := ParseID(key)
		if err != nil {
			return err
		}

		switch {
		case entry.Passthrough:
			if entry.Format != nil {
				return fmt.Errorf("gatt: override %s names both a format and passthrough", key)
			}
			table.Register(id, func() marshal.Marshaller { return marshal.Passthrough{} })

		case entry.Format != nil:
			desc, ok := presentation.Lookup(presentation.FormatCode(*entry.Format))
			if !ok {
				return fmt.Errorf("gatt: override %s names unsupported format 0x%02X", key, *entry.Format)
			}
			exponent := entry.Exponent
			table.Register(id, func() marshal.Marshaller { return marshal.NewPack(desc, exponent) })

		default:
			return fmt.Errorf("gatt: override %s names neither a format nor passthrough", key)
		}
	}
	return nil
}
