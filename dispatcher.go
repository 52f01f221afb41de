package logdom

// Dispatcher is the entry point for every log record. It resolves
// the domain, applies the severity filter, and hands off to the
// domain's backend (which itself folds the record through coalescing
// before writing).
type Dispatcher struct {
	registry *Registry
}

// NewDispatcher wraps registry in a Dispatcher.
func NewDispatcher(registry *Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// Log resolves domainName (substituting RootDomain if empty),
// applies the domain's effective severity filter, and — if the
// record passes — writes it through the domain's backend. Log never
// fails and never blocks beyond the registry lock and the backend's
// write lock (spec §5, §7): I/O errors are reported to the backend's
// error sink, not returned here.
func (disp *Dispatcher) Log(domainName string, level Level, message string) {
	d := disp.registry.Lookup(domainName)
	if d == nil {
		// Not a valid domain name: Lookup materializes nothing for it.
		return
	}
	disp.registry.mu.RLock()
	effective, backend := d.effectiveLevel, d.backend
	disp.registry.mu.RUnlock()
	if !Passes(level, effective) {
		return
	}
	if backend == nil {
		// No explicit ancestor (not even the root) has been
		// registered yet: there is nothing to route to.
		return
	}
	backend.write(level, message, d.name)
}

// Logger is a thin per-callsite helper that captures a fixed domain
// name, so hosting code doesn't have to thread it through every call.
// It mirrors the teacher's Logger.New(prefix, prio) sub-logger
// pattern, adapted: instead of a mutable prefix/priority pair, each
// Logger is bound to one dotted domain name in the registry, and
// level filtering happens via that domain's effective level rather
// than a value cached on the Logger itself.
type Logger struct {
	disp   *Dispatcher
	domain string
}

// NewLogger returns a Logger bound to domain.
func (disp *Dispatcher) NewLogger(domain string) *Logger {
	return &Logger{disp: disp, domain: domain}
}

func (l *Logger) Error(message string)    { l.disp.Log(l.domain, Error, message) }
func (l *Logger) Critical(message string) { l.disp.Log(l.domain, Critical, message) }
func (l *Logger) Warning(message string)  { l.disp.Log(l.domain, Warning, message) }
func (l *Logger) Message(message string)  { l.disp.Log(l.domain, Message, message) }
func (l *Logger) Info(message string)     { l.disp.Log(l.domain, Info, message) }
func (l *Logger) Debug(message string)    { l.disp.Log(l.domain, Debug, message) }
