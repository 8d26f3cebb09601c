package sim

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gatt-typed/gatt-go/pkg/gatt"
	"github.com/gatt-typed/gatt-go/pkg/marshal"
	"github.com/gatt-typed/gatt-go/pkg/presentation"
)

// Definition is the YAML schema for a simulated peripheral:
//
//	name: Simulated thermometer
//	addr: "AA:BB:CC:DD:EE:FF"
//	characteristics:
//	  - uuid: "2a6e"
//	    format: 14
//	    exponent: -2
//	    unit: 0x272F
//	    value: 21.34
//	  - uuid: "2a19"
//	    format: 4
//	    value: 87
//	  - uuid: "f000aa01-0451-4000-b000-000000000000"
//	    hex: "2c01"
//
// A characteristic with a format gets a presentation format descriptor
// and its value is packed with the corresponding codec; one with only
// hex or a string value is raw bytes without a descriptor.
type Definition struct {
	Name            string                     `yaml:"name"`
	Addr            string                     `yaml:"addr"`
	Characteristics []CharacteristicDefinition `yaml:"characteristics"`
}

// CharacteristicDefinition defines one simulated characteristic.
type CharacteristicDefinition struct {
	UUID     string `yaml:"uuid"`
	Format   *uint8 `yaml:"format"`
	Exponent int8   `yaml:"exponent"`
	Unit     uint16 `yaml:"unit"`
	Value    any    `yaml:"value"`
	Hex      string `yaml:"hex"`
}

// Load reads a peripheral definition file and builds the peripheral.
func Load(path string) (*Peripheral, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("sim: parsing definition: %w", err)
	}
	return Build(def)
}

// Build constructs a peripheral from a definition.
func Build(def Definition) (*Peripheral, error) {
	addr := def.Addr
	if addr == "" {
		addr = "00:00:00:00:00:00"
	}
	p := NewPeripheral(addr)

	for _, cd := range def.Characteristics {
		id, err := gatt.ParseID(cd.UUID)
		if err != nil {
			return nil, err
		}

		raw, err := cd.rawValue()
		if err != nil {
			return nil, err
		}

		if cd.Format == nil {
			p.AddCharacteristic(id, raw)
			continue
		}

		desc, ok := presentation.Lookup(presentation.FormatCode(*cd.Format))
		if !ok {
			// Unsupported codes are still valid peripherals; they just
			// resolve to passthrough on the client side.
			record := presentation.Record{
				Format:   presentation.FormatCode(*cd.Format),
				Exponent: cd.Exponent,
				Unit:     cd.Unit,
			}
			p.AddTypedCharacteristic(id, record, raw)
			continue
		}

		if cd.Value != nil {
			// yaml.v3 decodes scalars as int, float64, bool and string,
			// all of which the codec accepts directly.
			codec := marshal.NewPack(desc, cd.Exponent)
			raw, err = codec.Marshal(cd.Value)
			if err != nil {
				return nil, fmt.Errorf("sim: characteristic %s: %w", cd.UUID, err)
			}
		}
		record := presentation.Record{
			Format:   desc.Code,
			Exponent: cd.Exponent,
			Unit:     cd.Unit,
		}
		p.AddTypedCharacteristic(id, record, raw)
	}
	return p, nil
}

// rawValue decodes the hex field, or a plain string value, to raw bytes.
func (cd CharacteristicDefinition) rawValue() ([]byte, error) {
	if cd.Hex != "" {
		clean := strings.TrimPrefix(strings.ReplaceAll(cd.Hex, " ", ""), "0x")
		raw, err := hex.DecodeString(clean)
		if err != nil {
			return nil, fmt.Errorf("sim: characteristic %s: bad hex: %w", cd.UUID, err)
		}
		return raw, nil
	}
	if cd.Format == nil {
		if s, ok := cd.Value.(string); ok {
			return []byte(s), nil
		}
	}
	return nil, nil
}
