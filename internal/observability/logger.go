package observability

import (
	"log/slog"
	"os"
)

// NewLogger builds the process-wide structured logger: JSON to stdout,
// debug level and source locations in dev, info otherwise. Records are
// routed through the trace handler so span ids land on every line.
func NewLogger(env string) *slog.Logger {
	dev := env == "dev"

	opts := &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: dev,
	}

	if dev {
		opts.Level = slog.LevelDebug
	}

	return slog.New(NewTraceHandler(slog.NewJSONHandler(os.Stdout, opts)))
}
