// Copyright 2009 The Go Authors. All rights reserved.
//
// Changes Copyright 2012, Sudhi Herle <sudhi -at- herle.net>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logdom implements a hierarchical, multi-backend logging
// subsystem: a dispatcher routes records from dotted-name domains
// (e.g. "chassis.network.backend") to pluggable backends while
// honoring per-domain severity filters, inheriting configuration
// along the dotted hierarchy, coalescing repeated identical messages,
// and supporting safe live log rotation.
package logdom

import "fmt"

// Level is a log severity. Levels form a total order, loudest first:
// Error is the loudest (always worth printing), Debug the quietest.
// A record at level L passes a filter with threshold M iff L <= M.
type Level int

const (
	Error Level = iota
	Critical
	Warning
	Message
	Info
	Debug
)

var levelNames = map[Level]string{
	Error:    "error",
	Critical: "critical",
	Warning:  "warning",
	Message:  "message",
	Info:     "info",
	Debug:    "debug",
}

var nameToLevel = map[string]Level{
	"error":    Error,
	"critical": Critical,
	"warning":  Warning,
	"message":  Message,
	"info":     Info,
	"debug":    Debug,
}

// String renders the level the way emitted log lines spell it.
func (l Level) String() string {
	if s, ok := levelNames[l]; ok {
		return s
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// ParseLevel maps a case-insensitive level name to its Level. It
// accepts exactly the names String() produces.
func ParseLevel(name string) (Level, bool) {
	l, ok := nameToLevel[lowerASCII(name)]
	return l, ok
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// Passes reports whether a record logged at recordLevel is loud
// enough to pass a filter whose threshold is minLevel: recordLevel
// must be at least as loud (numerically <=) as minLevel.
func Passes(recordLevel, minLevel Level) bool {
	return recordLevel <= minLevel
}
