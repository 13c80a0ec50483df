// Package logger holds the process-wide zerolog logger. Binaries call Init
// once while starting up; later code may fetch the same logger with Get.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options is read by the first Init call only.
type Options struct {
	// Level is one of trace, debug, info, warn or error. Anything else
	// means info.
	Level string
	// Pretty switches from JSON lines to zerolog's console writer.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
	// Service, when set, is added to every entry as "service".
	Service string
}

var (
	mu      sync.Mutex
	once    sync.Once
	current *zerolog.Logger
)

// Init builds the logger on first use and returns it. Subsequent calls
// return the existing logger and ignore opts.
func Init(opts Options) zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		w := opts.Output
		if w == nil {
			w = os.Stdout
		}
		if opts.Pretty {
			w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
		}

		level := parseLevel(opts.Level)
		zerolog.SetGlobalLevel(level)

		lc := zerolog.New(w).Level(level).With().Timestamp().Caller()
		if opts.Service != "" {
			lc = lc.Str("service", opts.Service)
		}
		l := lc.Logger()

		mu.Lock()
		current = &l
		mu.Unlock()
	})
	return Get()
}

// Get panics when Init has not run.
func Get() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if current == nil {
		panic("logger: Get called before Init")
	}
	return *current
}

// Reset forgets the logger so the next Init rebuilds it. Tests only.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	once = sync.Once{}
	current = nil
}

func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	switch s {
	case "trace", "debug", "warn", "error":
		l, _ := zerolog.ParseLevel(s)
		return l
	default:
		return zerolog.InfoLevel
	}
}
