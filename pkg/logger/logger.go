package logger

import (
	"io"
	"log/slog"
	"os"
)

// Config selects level and encoding of the stdout handler.
type Config struct {
	Level  slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	Format string     `env:"LOG_FORMAT" envDefault:"json"` // "json" or "text"
}

// New creates a JSON logger on stdout at Info level with optional context extractors.
func New(extractors ...ContextExtractor) *slog.Logger {
	return NewWithConfig(Config{Level: slog.LevelInfo, Format: "json"}, extractors...)
}

// NewWithConfig creates a stdout logger using cfg.
func NewWithConfig(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	return slog.New(NewLogHandlerDecorator(newHandler(os.Stdout, cfg), extractors...))
}

// NewNope returns a logger that writes nowhere.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newHandler(w io.Writer, cfg Config) slog.Handler {
	opts := &slog.HandlerOptions{Level: cfg.Level}
	if cfg.Format == "text" {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}
