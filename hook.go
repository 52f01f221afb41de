package logdom

import (
	stdlog "log"
)

// Hook is the process-wide log callback a hosting program installs so
// that every log call in the process routes through one Dispatcher
// (spec §6, "Collaborator contract — process-wide log hook"). It
// takes the place of a thread-local "current log domain" pattern: the
// domain name is threaded explicitly instead.
type Hook func(domainName string, level Level, text string)

// AsHook adapts a Dispatcher into the process-wide Hook shape.
func (disp *Dispatcher) AsHook() Hook {
	return func(domainName string, level Level, text string) {
		disp.Log(domainName, level, text)
	}
}

// StdLogger bridges a Logger into the standard library's *log.Logger,
// the same role the teacher's stdwrapper.go StdLogger()/Write() pair
// plays: code written against the stdlib logging interface can be
// pointed at this subsystem without modification. The stdlib flag
// bits are dropped since the emitted line format is fixed by spec §6
// (timestamp/domain/level are always present; fmt.Sprint-ed stdlib
// calls only ever see their own message text).
func (l *Logger) StdLogger() *stdlog.Logger {
	return stdlog.New(l, "", 0)
}

// Write satisfies io.Writer so a Logger can be handed to anything
// that wants a plain writer (including stdlog.New above). Every
// Write call is logged at Message level, mirroring the teacher's
// Logger.Write -> qwrite bridge.
func (l *Logger) Write(p []byte) (int, error) {
	text := string(p)
	// log.Logger always supplies a trailing newline. formatLine adds
	// one only when the text lacks it, so the emitted line is the same
	// either way; trimming keeps the record text identical to the same
	// message logged directly, which is what coalescing compares.
	if n := len(text); n > 0 && text[n-1] == '\n' {
		text = text[:n-1]
	}
	l.Message(text)
	return len(p), nil
}
