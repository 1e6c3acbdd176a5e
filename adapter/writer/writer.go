package writer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/trickstertwo/xclock"

	"github.com/trickstertwo/dappkitty"
)

// Format defines the output format for panel lines
type Format uint8

const (
	FormatText Format = iota + 1
	FormatJSON
)

// ErrorHandler receives write errors the sink could not return, such as
// failures on the async path.
type ErrorHandler func(error)

// Options configures the sink behavior
type Options struct {
	// Format specifies the output format (Text or JSON)
	Format Format

	// ErrorHandler receives errors that occur on the async path
	ErrorHandler ErrorHandler

	// Async enables asynchronous writes (higher throughput, possible loss)
	Async bool

	// AsyncQueueSize sets buffer size for async mode
	AsyncQueueSize int

	// TimeFormat specifies custom time format (empty = RFC3339Nano)
	TimeFormat string

	// Clock stamps each line; defaults to xclock.Default()
	Clock xclock.Clock
}

// WriterFactory allows custom writers per severity bucket
type WriterFactory interface {
	GetWriter(level dappkitty.Level) io.Writer
}

// DefaultWriterFactory sends all lines to the same writer
type DefaultWriterFactory struct {
	Writer io.Writer
}

func (f *DefaultWriterFactory) GetWriter(dappkitty.Level) io.Writer {
	return f.Writer
}

// LevelWriterFactory sends different severities to different writers
type LevelWriterFactory struct {
	Default     io.Writer
	LevelWriter map[dappkitty.Level]io.Writer
}

func (f *LevelWriterFactory) GetWriter(level dappkitty.Level) io.Writer {
	if w, ok := f.LevelWriter[level]; ok {
		return w
	}
	return f.Default
}

// MetricsCollector observes sink writes
type MetricsCollector interface {
	WroteLine(level dappkitty.Level, durMS float64, size int, err error)
}

// NoopMetricsCollector is a no-op implementation
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) WroteLine(dappkitty.Level, float64, int, error) {}

// Sink renders panel lines onto an io.Writer, one line per entry.
type Sink struct {
	writerFactory WriterFactory
	mu            sync.Mutex
	opts          Options
	metrics       atomic.Value // holds MetricsCollector
	wg            sync.WaitGroup
	asyncQueue    chan line
	stopped       atomic.Bool
	writeErrors   atomic.Uint64
}

type line struct {
	at    time.Time
	text  string
	class string
}

func defaultErrorHandler(err error) {
	fmt.Fprintf(os.Stderr, "dappkitty writer: %v\n", err)
}

// New creates a sink writing to w.
func New(w io.Writer, opts Options) *Sink {
	if w == nil {
		w = os.Stdout
	}
	return NewWithWriterFactory(&DefaultWriterFactory{Writer: w}, opts)
}

// NewWithWriterFactory creates a sink with a custom writer factory.
func NewWithWriterFactory(factory WriterFactory, opts Options) *Sink {
	if factory == nil {
		factory = &DefaultWriterFactory{Writer: os.Stdout}
	}
	if opts.Format == 0 {
		opts.Format = FormatText
	}
	if opts.ErrorHandler == nil {
		opts.ErrorHandler = defaultErrorHandler
	}
	if opts.Clock == nil {
		opts.Clock = xclock.Default()
	}
	s := &Sink{writerFactory: factory, opts: opts}
	s.metrics.Store(MetricsCollector(NoopMetricsCollector{}))

	if opts.Async {
		size := opts.AsyncQueueSize
		if size <= 0 {
			size = 1000
		}
		s.asyncQueue = make(chan line, size)
		s.wg.Add(1)
		go s.asyncProcessor()
	}
	return s
}

// SetMetricsCollector sets a metrics collector for observability.
func (s *Sink) SetMetricsCollector(c MetricsCollector) {
	if c == nil {
		c = NoopMetricsCollector{}
	}
	s.metrics.Store(c)
}

// WriteErrors counts failed writes since construction.
func (s *Sink) WriteErrors() uint64 { return s.writeErrors.Load() }

// EnsurePanel is a no-op: a writer is always ready.
func (s *Sink) EnsurePanel() error { return nil }

// AppendLine writes one line. In async mode the line is queued and a full
// queue is reported as an error.
func (s *Sink) AppendLine(text, class string) error {
	ln := line{at: s.opts.Clock.Now(), text: text, class: class}
	if s.asyncQueue != nil {
		if s.stopped.Load() {
			return errors.New("writer: sink closed")
		}
		select {
		case s.asyncQueue <- ln:
			return nil
		default:
			s.writeErrors.Add(1)
			return errors.New("writer: async queue full, dropping line")
		}
	}
	return s.write(ln)
}

// Close flushes pending lines and releases resources.
func (s *Sink) Close() error {
	if s.asyncQueue != nil && s.stopped.CompareAndSwap(false, true) {
		close(s.asyncQueue)
		s.wg.Wait()
	}
	return nil
}

func (s *Sink) asyncProcessor() {
	defer s.wg.Done()
	for ln := range s.asyncQueue {
		if err := s.write(ln); err != nil {
			s.opts.ErrorHandler(err)
		}
	}
}

func (s *Sink) write(ln line) error {
	start := time.Now()
	level := dappkitty.ClassLevel(ln.class)
	buf := getBuf()
	defer putBuf(buf)

	if s.opts.Format == FormatJSON {
		writeJSONLine(buf, level, ln, s.opts.TimeFormat)
	} else {
		writeTextLine(buf, level, ln, s.opts.TimeFormat)
	}
	buf.writeByte('\n')

	w := s.writerFactory.GetWriter(level)
	if w == nil {
		return nil
	}

	s.mu.Lock()
	n, err := w.Write(buf.b)
	s.mu.Unlock()

	dur := time.Since(start).Seconds() * 1000
	if err != nil {
		s.writeErrors.Add(1)
		err = fmt.Errorf("writer: write line: %w", err)
	}
	s.metrics.Load().(MetricsCollector).WroteLine(level, dur, n, err)
	return err
}

var _ dappkitty.Sink = (*Sink)(nil)
