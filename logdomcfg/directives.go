package logdomcfg

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/zysyl/logdom"
)

// ParseDirectives reads a legacy line-oriented declaration format,
// kept alongside the YAML Config for hosts migrating from a simpler
// flat file: one directive per line, of one of the forms
//
//	backend <name> <target-or-dash>
//	domain <name-or-root> <level> <backend-name>
//
// Blank lines and lines starting with '#' are ignored. Adapted from
// fileio/readline.go's Readline/Genlines pair (comment-skipping,
// trailing-newline trimming, channel-based line delivery), which the
// teacher used for a config line-reader; "root" is the configuration
// file's spelling of the empty-string root domain name, since a bare
// blank field is easy to lose when hand-editing one of these files.
func ParseDirectives(r io.Reader, registry *logdom.Registry) error {
	backends := make(map[string]*logdom.Backend)
	for line := range genlines(r) {
		fields := strings.Fields(line)
		switch fields[0] {
		case "backend":
			if len(fields) != 3 {
				return fmt.Errorf("logdomcfg: malformed backend directive: %q", line)
			}
			name, target := fields[1], fields[2]
			var b *logdom.Backend
			if target == "-" {
				b = logdom.NewDefaultBackend(name)
			} else {
				b = logdom.NewFileBackend(target, logdom.WithBackendName(name))
			}
			if err := registry.RegisterBackend(b); err != nil {
				return fmt.Errorf("logdomcfg: backend %q: %w", name, err)
			}
			backends[name] = b

		case "domain":
			if len(fields) != 4 {
				return fmt.Errorf("logdomcfg: malformed domain directive: %q", line)
			}
			name := fields[1]
			if name == "root" {
				name = logdom.RootDomain
			}
			level, ok := logdom.ParseLevel(fields[2])
			if !ok {
				return fmt.Errorf("logdomcfg: domain %q: unknown level %q", name, fields[2])
			}
			backend, ok := backends[fields[3]]
			if !ok {
				return fmt.Errorf("logdomcfg: domain %q: unknown backend %q", name, fields[3])
			}
			if err := registry.RegisterDomain(name, level, backend); err != nil {
				return fmt.Errorf("logdomcfg: domain %q: %w", name, err)
			}

		default:
			return fmt.Errorf("logdomcfg: unknown directive: %q", line)
		}
	}
	return nil
}

// genlines yields non-blank, non-comment directive lines from r.
func genlines(r io.Reader) chan string {
	ch := make(chan string, 2)
	go func() {
		defer close(ch)
		rd := bufio.NewReader(r)
		for {
			b, err := rd.ReadString('\n')
			x := len(b)
			if x == 0 {
				return
			}
			if b[x-1] == '\n' {
				b = b[:x-1]
			}
			b = strings.TrimSpace(b)
			if b != "" && b[0] != '#' {
				ch <- b
			}
			if err == io.EOF {
				return
			}
		}
	}()
	return ch
}
