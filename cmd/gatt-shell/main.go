// Command gatt-shell is an interactive shell for typed characteristic
// access against a simulated peripheral.
//
// Usage:
//
//	gatt-shell -device device.yaml [flags]
//
// Flags:
//
//	-device string      Peripheral definition file (YAML, required)
//	-overrides string   Vendor override file (YAML)
//	-capture string     Append CBOR event capture to this file
//	-verbose            Print marshalling events to the console
//
// Commands:
//
//	list                    - List characteristics
//	read <id>               - Read a characteristic as a typed value
//	raw <id>                - Read a characteristic as hex bytes
//	write <id> <value>      - Write a typed value
//	describe <id>           - Show the resolved marshaller
//	help                    - Show help
//	exit                    - Quit
package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/gatt-typed/gatt-go/internal/testharness/sim"
	"github.com/gatt-typed/gatt-go/pkg/gatt"
	"github.com/gatt-typed/gatt-go/pkg/log"
	"github.com/gatt-typed/gatt-go/pkg/marshal"
)

func main() {
	var (
		devicePath    = flag.String("device", "", "peripheral definition file (YAML)")
		overridesPath = flag.String("overrides", "", "vendor override file (YAML)")
		capturePath   = flag.String("capture", "", "append CBOR event capture to this file")
		verbose       = flag.Bool("verbose", false, "print marshalling events to the console")
	)
	flag.Parse()

	if *devicePath == "" {
		fmt.Fprintln(os.Stderr, "gatt-shell: -device is required")
		os.Exit(1)
	}

	peripheral, err := sim.Load(*devicePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gatt-shell: %v\n", err)
		os.Exit(1)
	}

	overrides := marshal.NewOverrideTable()
	if *overridesPath != "" {
		if err := gatt.LoadOverrides(*overridesPath, overrides); err != nil {
			fmt.Fprintf(os.Stderr, "gatt-shell: %v\n", err)
			os.Exit(1)
		}
	}

	var loggers []log.Logger
	if *verbose {
		loggers = append(loggers, log.NewSlogAdapter(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))))
	}
	if *capturePath != "" {
		fl, err := log.NewFileLogger(*capturePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "gatt-shell: %v\n", err)
			os.Exit(1)
		}
		defer fl.Close()
		loggers = append(loggers, fl)
	}
	var logger log.Logger = log.NoopLogger{}
	if len(loggers) > 0 {
		logger = log.NewMultiLogger(loggers...)
	}

	client := gatt.NewClient(peripheral, overrides, logger)

	sh, err := newShell(peripheral, client)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gatt-shell: %v\n", err)
		os.Exit(1)
	}
	sh.run(context.Background())
}

// shell drives the readline command loop.
type shell struct {
	peripheral *sim.Peripheral
	client     *gatt.Client
	rl         *readline.Instance
}

func newShell(peripheral *sim.Peripheral, client *gatt.Client) (*shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "gatt> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &shell{peripheral: peripheral, client: client, rl: rl}, nil
}

func (s *shell) run(ctx context.Context) {
	defer s.rl.Close()

	fmt.Fprintf(s.rl.Stdout(), "Connected to simulated peripheral %s\n", s.peripheral.Addr())
	s.printHelp()

	for {
		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			s.printHelp()
		case "list", "ls":
			s.cmdList()
		case "read":
			s.cmdRead(ctx, args)
		case "raw":
			s.cmdRaw(ctx, args)
		case "write":
			s.cmdWrite(ctx, args)
		case "describe":
			s.cmdDescribe(ctx, args)
		case "exit", "quit", "q":
			return
		default:
			fmt.Fprintf(s.rl.Stdout(), "Unknown command %q (try help)\n", cmd)
		}
	}
}

func (s *shell) printHelp() {
	fmt.Fprint(s.rl.Stdout(), `Commands:
  list                 List characteristics
  read <id>            Read a characteristic as a typed value
  raw <id>             Read a characteristic as hex bytes
  write <id> <value>   Write a typed value
  describe <id>        Show the resolved marshaller
  help                 Show this help
  exit                 Quit
`)
}

func (s *shell) cmdList() {
	out := s.rl.Stdout()
	for _, c := range s.peripheral.Characteristics() {
		if c.PresentationHandle != 0 {
			fmt.Fprintf(out, "  %s  handle=%d  presentation=%d\n", c.UUID, c.Handle, c.PresentationHandle)
		} else {
			fmt.Fprintf(out, "  %s  handle=%d\n", c.UUID, c.Handle)
		}
	}
}

func (s *shell) cmdRead(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.rl.Stdout(), "usage: read <id>")
		return
	}
	id, err := gatt.ParseID(args[0])
	if err != nil {
		s.fail(err)
		return
	}
	value, err := s.client.Read(ctx, id)
	if err != nil {
		s.fail(err)
		return
	}
	s.printValue(value)
}

func (s *shell) cmdRaw(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.rl.Stdout(), "usage: raw <id>")
		return
	}
	id, err := gatt.ParseID(args[0])
	if err != nil {
		s.fail(err)
		return
	}
	data, err := s.client.ReadRaw(ctx, id)
	if err != nil {
		s.fail(err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "%s\n", hex.EncodeToString(data))
}

func (s *shell) cmdWrite(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(s.rl.Stdout(), "usage: write <id> <value>")
		return
	}
	id, err := gatt.ParseID(args[0])
	if err != nil {
		s.fail(err)
		return
	}
	if err := s.client.Write(ctx, id, parseValue(strings.Join(args[1:], " ")), true); err != nil {
		s.fail(err)
		return
	}
	fmt.Fprintln(s.rl.Stdout(), "ok")
}

func (s *shell) cmdDescribe(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.rl.Stdout(), "usage: describe <id>")
		return
	}
	id, err := gatt.ParseID(args[0])
	if err != nil {
		s.fail(err)
		return
	}
	m, err := s.client.Marshaller(ctx, id)
	if err != nil {
		s.fail(err)
		return
	}
	switch codec := m.(type) {
	case marshal.Pack:
		fmt.Fprintf(s.rl.Stdout(), "pack codec: %s exponent=%d\n", codec.Descriptor(), codec.Exponent())
	case marshal.Passthrough:
		fmt.Fprintln(s.rl.Stdout(), "passthrough codec (raw bytes)")
	default:
		fmt.Fprintf(s.rl.Stdout(), "override codec: %T\n", m)
	}
}

func (s *shell) printValue(value any) {
	if b, ok := value.([]byte); ok {
		fmt.Fprintf(s.rl.Stdout(), "%s (raw)\n", hex.EncodeToString(b))
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "%v\n", value)
}

func (s *shell) fail(err error) {
	fmt.Fprintf(s.rl.Stdout(), "error: %v\n", err)
}

// parseValue guesses the native type of a shell argument: bool, integer,
// float, then string.
func parseValue(s string) any {
	if b, err := strconv.ParseBool(s); err == nil && (s == "true" || s == "false") {
		return b
	}
	if i, err := strconv.ParseInt(s, 0, 64); err == nil {
		return i
	}
	if u, err := strconv.ParseUint(s, 0, 64); err == nil {
		return u
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
