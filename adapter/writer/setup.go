package writer

import (
	"io"
	"os"

	"github.com/trickstertwo/dappkitty"
)

// Config is an explicit, code-first configuration for the writer sink.
// Use provides a single-call setup with no envs or side-imports.
type Config struct {
	// Writer receives all lines when WriterFactory is nil.
	// Defaults to os.Stdout.
	Writer io.Writer

	// WriterFactory optionally routes lines by severity.
	// When set, it takes precedence over Writer.
	WriterFactory WriterFactory

	Format         Format
	ErrorHandler   ErrorHandler
	Async          bool
	AsyncQueueSize int
	TimeFormat     string
	Metrics        MetricsCollector // optional observability
}

// Use builds a writer sink from cfg and wraps it in a host option, so the
// sink can be passed straight to dappkitty.NewHost.
func Use(cfg Config) (*Sink, dappkitty.HostOption) {
	opts := Options{
		Format:         cfg.Format,
		ErrorHandler:   cfg.ErrorHandler,
		Async:          cfg.Async,
		AsyncQueueSize: cfg.AsyncQueueSize,
		TimeFormat:     cfg.TimeFormat,
	}

	var s *Sink
	if cfg.WriterFactory != nil {
		s = NewWithWriterFactory(cfg.WriterFactory, opts)
	} else {
		w := cfg.Writer
		if w == nil {
			w = os.Stdout
		}
		s = New(w, opts)
	}
	if cfg.Metrics != nil {
		s.SetMetricsCollector(cfg.Metrics)
	}
	return s, dappkitty.WithSink(s)
}
