package log

import (
	"context"
	"log/slog"
)

// SlogAdapter forwards events to an slog.Logger.
// Resolution degradations and errors are logged at Warn level, everything
// else at Debug, matching the intent that unsupported presentation
// formats are warnings rather than failures.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a SlogAdapter writing to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log forwards the event to the slog logger.
func (a *SlogAdapter) Log(event Event) {
	level := slog.LevelDebug

	attrs := []slog.Attr{
		slog.String("category", event.Category.String()),
	}
	if event.Peer != "" {
		attrs = append(attrs, slog.String("peer", event.Peer))
	}
	if event.Characteristic != "" {
		attrs = append(attrs, slog.String("characteristic", event.Characteristic))
	}

	switch {
	case event.Resolution != nil:
		attrs = append(attrs, slog.String("outcome", event.Resolution.Outcome.String()))
		if event.Resolution.FormatCode != nil {
			attrs = append(attrs, slog.Uint64("format", uint64(*event.Resolution.FormatCode)))
		}
		if event.Resolution.Exponent != nil {
			attrs = append(attrs, slog.Int("exponent", int(*event.Resolution.Exponent)))
		}
		if event.Resolution.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.Resolution.Reason))
			level = slog.LevelWarn
		}
	case event.Transfer != nil:
		attrs = append(attrs,
			slog.String("direction", event.Transfer.Direction.String()),
			slog.Int("size", event.Transfer.Size),
		)
		if event.Transfer.WithResponse {
			attrs = append(attrs, slog.Bool("with_response", true))
		}
	case event.Error != nil:
		attrs = append(attrs, slog.String("error", event.Error.Message))
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("context", event.Error.Context))
		}
		level = slog.LevelWarn
	}

	a.logger.LogAttrs(context.Background(), level, "gatt", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
