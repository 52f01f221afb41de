package logdom

import (
	"sort"
	"strings"
)

// coalescer tracks "the last distinct message" on a single backend
// and collapses immediately-repeated identical messages into one
// emitted line plus a trailing summary line once the run ends. It is
// not safe for concurrent use on its own; callers serialize access
// (the backend's write-lock does this).
type coalescer struct {
	lastText string
	lastSet  bool
	lastLvl  Level
	repeats  int
	domains  map[string]struct{}
}

func newCoalescer() *coalescer {
	return &coalescer{}
}

// update folds one incoming (level, text, domainName) record into the
// coalescing state. It returns the lines that should actually be
// written to the backend, in order: zero lines (swallowed into a
// run), one line (first occurrence of a new message), or two lines (a
// summary flushing the previous run, followed by the new message).
func (c *coalescer) update(level Level, text, domainName string) []string {
	if !c.lastSet {
		c.reset(level, text)
		return []string{formatLine(level, domainName, text)}
	}

	if text == c.lastText {
		c.repeats++
		c.domains[domainName] = struct{}{}
		return nil
	}

	var out []string
	if summary, ok := c.summaryLine(); ok {
		out = append(out, summary)
	}
	c.reset(level, text)
	out = append(out, formatLine(level, domainName, text))
	return out
}

// flush returns the pending summary line, if any, and clears the
// coalescing state so a record that follows (even one repeating the
// same text) starts a fresh run instead of folding into the old one.
// Used by force_log_all and by registry teardown.
func (c *coalescer) flush() (string, bool) {
	summary, ok := c.summaryLine()
	c.lastSet = false
	c.lastText = ""
	c.domains = nil
	c.repeats = 0
	return summary, ok
}

func (c *coalescer) summaryLine() (string, bool) {
	if !c.lastSet || c.repeats == 0 {
		return "", false
	}
	names := make([]string, 0, len(c.domains))
	for d := range c.domains {
		names = append(names, d)
	}
	sort.Strings(names)
	return formatSummary(names, c.repeats), true
}

// reset starts tracking a new distinct message. domains starts empty:
// only a swallowed repeat (update's text == c.lastText branch) adds a
// domain, so a message that is never repeated contributes nothing to
// a later summary's domain list (spec S5(b)).
func (c *coalescer) reset(level Level, text string) {
	c.lastSet = true
	c.lastText = text
	c.lastLvl = level
	c.repeats = 0
	c.domains = make(map[string]struct{})
}

// formatLine renders the spec's line format:
//
//	<timestamp> [<domain>] (<level-name>) <message>\n
func formatLine(level Level, domainName, message string) string {
	var b strings.Builder
	b.WriteString(timestamp())
	b.WriteString(" [")
	b.WriteString(domainName)
	b.WriteString("] (")
	b.WriteString(level.String())
	b.WriteString(") ")
	b.WriteString(message)
	if len(message) == 0 || message[len(message)-1] != '\n' {
		b.WriteByte('\n')
	}
	return b.String()
}

// formatSummary renders the coalescing-summary format:
//
//	<timestamp> [<domain-list>] last message repeated <N> times\n
func formatSummary(domainNames []string, repeats int) string {
	var b strings.Builder
	b.WriteString(timestamp())
	b.WriteString(" [")
	b.WriteString(strings.Join(domainNames, ","))
	b.WriteString("] last message repeated ")
	b.WriteString(itoa(repeats))
	b.WriteString(" times\n")
	return b.String()
}
