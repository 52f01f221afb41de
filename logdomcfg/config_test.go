package logdomcfg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zysyl/logdom"
)

func TestLoadAndApply(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "chassis.log")

	cfgPath := filepath.Join(dir, "logging.yaml")
	cfgYAML := `
backends:
  - name: main
    target: ` + logPath + `
domains:
  - name: ""
    level: warning
    backend: main
  - name: chassis.network
    level: debug
    backend: main
`
	if err := os.WriteFile(cfgPath, []byte(cfgYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	registry := logdom.NewRegistry()
	if err := LoadAndApply(registry, cfgPath); err != nil {
		t.Fatalf("LoadAndApply: %v", err)
	}

	root := registry.Lookup(logdom.RootDomain)
	if root.EffectiveLevel() != logdom.Warning {
		t.Errorf("root effective level = %v, want Warning", root.EffectiveLevel())
	}
	network := registry.Lookup("chassis.network")
	if network.EffectiveLevel() != logdom.Debug {
		t.Errorf("chassis.network effective level = %v, want Debug", network.EffectiveLevel())
	}

	disp := logdom.NewDispatcher(registry)
	disp.Log("chassis.network", logdom.Debug, "loaded from config")
	registry.Teardown()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "loaded from config") {
		t.Errorf("expected config-driven domain to log, got %q", data)
	}
}

func TestApplyRejectsUnknownBackend(t *testing.T) {
	registry := logdom.NewRegistry()
	cfg := &Config{
		Domains: []DomainSpec{{Name: "a", Level: "info", Backend: "missing"}},
	}
	if err := Apply(registry, cfg); err == nil {
		t.Error("expected an error for a domain referencing an unknown backend")
	}
}

func TestApplyRejectsUnknownLevel(t *testing.T) {
	registry := logdom.NewRegistry()
	cfg := &Config{
		Backends: []BackendSpec{{Name: "main", Target: ""}},
		Domains:  []DomainSpec{{Name: "a", Level: "deafening", Backend: "main"}},
	}
	if err := Apply(registry, cfg); err == nil {
		t.Error("expected an error for an unknown level name")
	}
}
