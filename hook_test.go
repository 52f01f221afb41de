package logdom

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAsHookRoutesToRegistry(t *testing.T) {
	r := NewRegistry()
	dir := t.TempDir()
	path := filepath.Join(dir, "x.log")
	b := mustRegisterBackend(t, r, path)
	must(t, r.RegisterDomain(RootDomain, Message, b))

	hook := NewDispatcher(r).AsHook()
	hook("", Message, "via hook")
	b.flushCoalesce()
	b.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "via hook") {
		t.Errorf("expected hook-routed message, got %q", data)
	}
}

func TestStdLoggerBridge(t *testing.T) {
	r := NewRegistry()
	dir := t.TempDir()
	path := filepath.Join(dir, "x.log")
	b := mustRegisterBackend(t, r, path)
	must(t, r.RegisterDomain("chassis", Message, b))

	log := NewDispatcher(r).NewLogger("chassis")
	std := log.StdLogger()
	std.Printf("bridged message")
	b.flushCoalesce()
	b.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.Contains(content, "bridged message") || !strings.Contains(content, "[chassis]") {
		t.Errorf("unexpected bridged output: %q", content)
	}
	if strings.Contains(content, "bridged message\n\n") {
		t.Errorf("trailing newline should not be doubled: %q", content)
	}
}
