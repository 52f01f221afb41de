package logdomcfg

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/zysyl/logdom"
)

func TestParseDirectivesLoadsBackendsAndDomains(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "chassis.log")

	src := strings.NewReader(`
# comment lines and blanks are ignored

backend main ` + logPath + `
domain root warning main
domain chassis.network debug main
`)

	registry := logdom.NewRegistry()
	if err := ParseDirectives(src, registry); err != nil {
		t.Fatalf("ParseDirectives: %v", err)
	}

	if lvl := registry.Lookup(logdom.RootDomain).EffectiveLevel(); lvl != logdom.Warning {
		t.Errorf("root effective level = %v, want Warning", lvl)
	}
	if lvl := registry.Lookup("chassis.network").EffectiveLevel(); lvl != logdom.Debug {
		t.Errorf("chassis.network effective level = %v, want Debug", lvl)
	}
}

func TestParseDirectivesRejectsUnknownBackend(t *testing.T) {
	src := strings.NewReader("domain chassis.network debug ghost\n")
	registry := logdom.NewRegistry()
	if err := ParseDirectives(src, registry); err == nil {
		t.Error("expected an error for a domain directive referencing an undeclared backend")
	}
}

func TestParseDirectivesRejectsMalformedLine(t *testing.T) {
	src := strings.NewReader("backend main\n")
	registry := logdom.NewRegistry()
	if err := ParseDirectives(src, registry); err == nil {
		t.Error("expected an error for a malformed backend directive")
	}
}
