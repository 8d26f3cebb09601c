// Command gatt-decode converts between raw characteristic bytes and
// native values for a given presentation format, without a peripheral.
//
// Usage:
//
//	gatt-decode -format <code> [-exponent <e>] -hex <bytes>
//	gatt-decode -format <code> [-exponent <e>] -value <value>
//
// Examples:
//
//	# 16-bit unsigned, bytes 2C 01 -> 300
//	gatt-decode -format 6 -hex 2c01
//
//	# 32-bit unsigned with exponent 2, 123400 -> bytes for 1234
//	gatt-decode -format 8 -exponent 2 -value 123400
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gatt-typed/gatt-go/pkg/marshal"
	"github.com/gatt-typed/gatt-go/pkg/presentation"
)

func main() {
	var (
		format   = flag.Uint("format", 0, "presentation format code (decimal or 0x hex via -format 0x0E)")
		exponent = flag.Int("exponent", 0, "decimal exponent")
		hexInput = flag.String("hex", "", "raw bytes to decode, hex encoded")
		value    = flag.String("value", "", "native value to encode")
	)
	flag.Parse()

	if *format == 0 || *format > 0xFF {
		fatal("a format code between 1 and 255 is required")
	}
	if (*hexInput == "") == (*value == "") {
		fatal("exactly one of -hex or -value is required")
	}

	desc, ok := presentation.Lookup(presentation.FormatCode(*format))
	if !ok {
		fatal("format 0x%02X is not supported; raw access only", *format)
	}
	fmt.Printf("descriptor: %s exponent=%d\n", desc, *exponent)

	codec := marshal.NewPack(desc, int8(*exponent))

	if *hexInput != "" {
		raw, err := hex.DecodeString(strings.TrimPrefix(strings.ReplaceAll(*hexInput, " ", ""), "0x"))
		if err != nil {
			fatal("bad hex input: %v", err)
		}
		decoded, err := codec.Unmarshal(raw)
		if err != nil {
			fatal("decode: %v", err)
		}
		fmt.Printf("value: %v\n", decoded)
		return
	}

	data, err := codec.Marshal(parseValue(desc, *value))
	if err != nil {
		fatal("encode: %v", err)
	}
	fmt.Printf("bytes: %s\n", hex.EncodeToString(data))
}

// parseValue interprets the -value flag per the format's kind.
func parseValue(desc presentation.Descriptor, s string) any {
	switch desc.Kind {
	case presentation.KindBool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			fatal("bad bool %q", s)
		}
		return b
	case presentation.KindUnsigned, presentation.KindSigned, presentation.KindFloat:
		if i, err := strconv.ParseInt(s, 0, 64); err == nil {
			return i
		}
		if u, err := strconv.ParseUint(s, 0, 64); err == nil {
			return u
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			fatal("bad number %q", s)
		}
		return f
	default:
		return s
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "gatt-decode: "+format+"\n", args...)
	os.Exit(1)
}
