package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type Options struct {
	Format string // "json" or "console"
	Debug  bool
	File   string // empty: write to Out
	Out    io.Writer
}

// New builds the process logger. The returned close func releases the log
// file, if one was opened.
func New(opts Options) (zerolog.Logger, func() error, error) {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	closer := func() error { return nil }

	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return zerolog.Nop(), closer, err
		}
		out = f
		closer = f.Close
	}

	if opts.Format != "json" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: opts.File != ""}
	}

	logger := zerolog.New(out).With().Timestamp().Logger()

	if opts.Debug {
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	return logger, closer, nil
}

// ForTUI returns a logger that never writes to the terminal: the alternate
// screen would be corrupted. Without a log file everything is discarded.
func ForTUI(opts Options) (zerolog.Logger, func() error, error) {
	if opts.File == "" {
		return zerolog.Nop(), func() error { return nil }, nil
	}
	return New(opts)
}
