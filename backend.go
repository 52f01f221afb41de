package logdom

import (
	"fmt"
	"os"
	"sync"
)

// ErrorSink receives I/O errors that occur off the critical path of a
// log call (open/write/close failures). The dispatcher never
// propagates these to the caller of log() (spec §7); they are instead
// reported here. The default sink writes to stderr.
type ErrorSink func(err error)

func defaultErrorSink(err error) {
	fmt.Fprintln(os.Stderr, err)
}

// Backend is a named, append-only sink. Today the only implementation
// is file-backed; a target of "" is a "stderr-like" default sink that
// is never subject to rotation.
//
// A Backend serializes all of its writers under writeLock: concurrent
// writers on the same backend produce whole, non-interleaved lines,
// but writers on different backends never contend with each other
// (spec §5).
type Backend struct {
	name   string
	target string

	errorSink ErrorSink
	bufs      *bufpool

	writeLock sync.Mutex
	file      *os.File // nil when closed
	coalesce  *coalescer
}

// NewFileBackend creates a file-backed Backend. name is derived from
// path (path itself, by convention) unless overridden with
// WithBackendName. The file is not opened until first use, explicit
// Open, or registry-driven lazy open.
func NewFileBackend(path string, opts ...BackendOption) *Backend {
	b := &Backend{
		name:      path,
		target:    path,
		errorSink: defaultErrorSink,
		bufs:      newBufpool(bufpoolSize),
		coalesce:  newCoalescer(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewDefaultBackend creates the "stderr-like" sink the spec allows
// when target is absent: a backend with no file target, whose writes
// go straight to os.Stderr and are never subject to open/close/reopen
// semantics beyond being always "open".
func NewDefaultBackend(name string, opts ...BackendOption) *Backend {
	b := &Backend{
		name:      name,
		target:    "",
		errorSink: defaultErrorSink,
		bufs:      newBufpool(bufpoolSize),
		coalesce:  newCoalescer(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BackendOption configures a Backend at construction.
type BackendOption func(*Backend)

// WithBackendName overrides the name derived from the file path.
func WithBackendName(name string) BackendOption {
	return func(b *Backend) { b.name = name }
}

// WithErrorSink overrides where backend I/O errors are reported.
func WithErrorSink(sink ErrorSink) BackendOption {
	return func(b *Backend) {
		if sink != nil {
			b.errorSink = sink
		}
	}
}

// Name returns the backend's unique name.
func (b *Backend) Name() string { return b.name }

// Target returns the backend's file path, or "" for the default sink.
func (b *Backend) Target() string { return b.target }

// Open acquires the underlying sink for append. Calling Open on an
// already-open backend is a programmer error (ErrAlreadyOpen).
func (b *Backend) Open() error {
	b.writeLock.Lock()
	defer b.writeLock.Unlock()
	return b.openLocked()
}

func (b *Backend) openLocked() error {
	if b.target == "" {
		// The default sink is always "open"; os.Stderr needs no
		// acquisition step.
		return nil
	}
	if b.file != nil {
		return ErrAlreadyOpen
	}
	f, err := os.OpenFile(b.target, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return newIoError(b.target, err)
	}
	b.file = f
	return nil
}

// Close releases the sink. Closing an already-closed backend
// succeeds silently: idempotent close is required so Reopen can be
// expressed as close-then-open without racing the filesystem.
func (b *Backend) Close() error {
	b.writeLock.Lock()
	defer b.writeLock.Unlock()
	return b.closeLocked()
}

func (b *Backend) closeLocked() error {
	if b.target == "" || b.file == nil {
		return nil
	}
	err := b.file.Close()
	b.file = nil
	if err != nil {
		return newIoError(b.target, err)
	}
	return nil
}

// Reopen is the rotation primitive: close-then-open. On failure the
// backend is left closed, never half-open, and the error is
// surfaced. An external agent renames the target file; Reopen
// recreates a fresh file at the original path.
func (b *Backend) Reopen() error {
	b.writeLock.Lock()
	defer b.writeLock.Unlock()

	if err := b.closeLocked(); err != nil {
		return err
	}
	return b.openLocked()
}

// isOpenLocked reports whether the backend currently holds its sink.
func (b *Backend) isOpenLocked() bool {
	return b.target == "" || b.file != nil
}

// write appends one log line for (level, text, domainName), folding
// it through this backend's coalescing state first. If the backend
// is closed it is transparently opened; if that open fails the record
// is dropped and reported via the error sink, never returned to the
// dispatcher's caller (spec §7).
func (b *Backend) write(level Level, text, domainName string) {
	b.writeLock.Lock()
	defer b.writeLock.Unlock()

	lines := b.coalesce.update(level, text, domainName)
	b.emitLocked(lines)
}

// forceLog bypasses the domain filter and coalescing entirely: it
// flushes any pending summary, then writes message at Message level
// to this backend, without seeding coalescing state with it (spec
// §4.7: broadcasts never coalesce with subsequent records).
func (b *Backend) forceLog(message string) {
	b.writeLock.Lock()
	defer b.writeLock.Unlock()

	var lines []string
	if summary, ok := b.coalesce.flush(); ok {
		lines = append(lines, summary)
	}
	lines = append(lines, formatLine(Message, "", message))
	b.emitLocked(lines)
}

// flushCoalesce emits any pending coalescing summary without writing
// a new record. Used at registry teardown (spec §4.5 free/teardown).
func (b *Backend) flushCoalesce() {
	b.writeLock.Lock()
	defer b.writeLock.Unlock()
	if summary, ok := b.coalesce.flush(); ok {
		b.emitLocked([]string{summary})
	}
}

func (b *Backend) emitLocked(lines []string) {
	if len(lines) == 0 {
		return
	}
	if !b.isOpenLocked() {
		if err := b.openLocked(); err != nil {
			b.errorSink(err)
			return
		}
	}

	buf := b.bufs.get()
	defer b.bufs.put(buf)
	for _, line := range lines {
		buf.WriteString(line)
	}

	var err error
	if b.target == "" {
		_, err = os.Stderr.Write(buf.Bytes())
	} else {
		_, err = b.file.Write(buf.Bytes())
	}
	if err != nil {
		b.errorSink(newIoError(b.target, err))
	}
}
