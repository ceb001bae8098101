package trace

import (
	"bufio"
	"os"
	"sync"
	"time"

	"github.com/zoobzio/clockz"
	"go.uber.org/zap"
)

// DefaultPath is the output file used when BeginSession is given no path.
const DefaultPath = "results.json"

// session is one open recording journal.
type session struct {
	name   string
	path   string
	file   *os.File
	w      *bufio.Writer
	failed bool // a write already failed and was logged
}

// Option configures an Instrumentor.
type Option func(*Instrumentor)

// WithLogger sets the logger that receives session warnings and errors.
func WithLogger(logger *zap.Logger) Option {
	return func(in *Instrumentor) {
		if logger != nil {
			in.logger = logger
		}
	}
}

// WithClock sets the clock used by timers. Enables deterministic tests.
func WithClock(clock clockz.Clock) Option {
	return func(in *Instrumentor) {
		if clock != nil {
			in.clock = clock
		}
	}
}

// Instrumentor records span results into at most one open session.
// Safe for concurrent use by multiple goroutines; all methods are nil-safe.
type Instrumentor struct {
	logger *zap.Logger
	clock  clockz.Clock
	epoch  time.Time

	mu      sync.Mutex // guards current and its stream
	current *session
}

// New creates an Instrumentor with no open session.
func New(opts ...Option) *Instrumentor {
	in := &Instrumentor{
		logger: zap.L(),
		clock:  clockz.RealClock,
	}
	for _, opt := range opts {
		opt(in)
	}
	in.epoch = in.clock.Now()
	return in
}

// BeginSession opens a new session writing to path, or DefaultPath if no path
// is given. An already open session is ended first. If the file cannot be
// created the error is logged and no session is left open.
func (in *Instrumentor) BeginSession(name string, path ...string) {
	if in == nil {
		return
	}
	filepath := DefaultPath
	if len(path) > 0 {
		filepath = path[0]
	}

	in.mu.Lock()
	defer in.mu.Unlock()

	if in.current != nil {
		in.logger.Warn("instrumentor: session already open, ending it",
			zap.String("session", name),
			zap.String("open_session", in.current.name))
		in.endSessionLocked()
	}

	f, err := os.Create(filepath)
	if err != nil {
		in.logger.Error("instrumentor: could not open results file",
			zap.String("session", name),
			zap.String("path", filepath),
			zap.Error(err))
		return
	}

	in.current = &session{
		name: name,
		path: filepath,
		file: f,
		w:    bufio.NewWriter(f),
	}
	in.writeLocked([]byte(header))
}

// EndSession writes the closing delimiter and closes the output file.
// It is a no-op when no session is open.
func (in *Instrumentor) EndSession() {
	if in == nil {
		return
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	in.endSessionLocked()
}

// Close ends the open session, if any. It always returns nil.
func (in *Instrumentor) Close() error {
	in.EndSession()
	return nil
}

// Active reports the name of the open session.
func (in *Instrumentor) Active() (string, bool) {
	if in == nil {
		return "", false
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.current == nil {
		return "", false
	}
	return in.current.name, true
}

// WriteProfile appends one span record to the open session and flushes it.
// Without an open session the record is dropped.
func (in *Instrumentor) WriteProfile(r ProfileResult) {
	if in == nil {
		return
	}
	data := FormatProfile(r)

	in.mu.Lock()
	defer in.mu.Unlock()
	if in.current == nil {
		return
	}
	in.writeLocked(data)
}

// endSessionLocked finalizes the current session.
// Note: in.mu must already be held.
func (in *Instrumentor) endSessionLocked() {
	s := in.current
	if s == nil {
		return
	}
	in.writeLocked([]byte(footer))
	if err := s.file.Close(); err != nil {
		in.logger.Error("instrumentor: could not close results file",
			zap.String("session", s.name),
			zap.String("path", s.path),
			zap.Error(err))
	}
	in.current = nil
}

// writeLocked writes data to the current session and flushes it. The first
// failure of a session is logged; later ones are ignored.
// Note: in.mu must already be held and a session must be open.
func (in *Instrumentor) writeLocked(data []byte) {
	s := in.current
	_, err := s.w.Write(data)
	if err == nil {
		err = s.w.Flush()
	}
	if err != nil && !s.failed {
		s.failed = true
		in.logger.Error("instrumentor: write to results file failed",
			zap.String("session", s.name),
			zap.String("path", s.path),
			zap.Error(err))
	}
}
