// Package logger holds the process-wide zerolog logger. Call Init once
// during startup; components receive the logger by injection, Get exists
// for the few places wiring has not reached.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options configures the logger built by Init.
type Options struct {
	// Level is the minimum level to emit: trace, debug, info, warn or
	// error. Anything else means info.
	Level string
	// Pretty switches to console output for local development. Leave
	// false in production to keep JSON lines.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
}

var (
	mu       sync.Mutex
	instance zerolog.Logger
	ready    bool
)

// Init builds the process logger. The first call wins; later calls
// return the existing logger unchanged.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if ready {
		return instance
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	level := parseLevel(opts.Level)
	zerolog.SetGlobalLevel(level)

	instance = zerolog.New(out).Level(level).With().Timestamp().Logger()
	ready = true
	return instance
}

// Get returns the logger built by Init and panics when called earlier.
func Get() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if !ready {
		panic("logger: Get called before Init")
	}
	return instance
}

// Reset discards the current logger so tests can re-run Init.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	instance = zerolog.Logger{}
	ready = false
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
