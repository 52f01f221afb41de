package logdom

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBackendOpenCloseIdempotent(t *testing.T) {
	dir := t.TempDir()
	b := NewFileBackend(filepath.Join(dir, "x.log"))

	if err := b.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := b.Open(); err == nil {
		t.Fatal("expected AlreadyOpen error on double Open")
	}
	if err := b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	// Idempotent close must succeed silently.
	if err := b.Close(); err != nil {
		t.Fatalf("second Close should be a no-op, got: %v", err)
	}
}

func TestBackendWriteLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.log")
	b := NewFileBackend(path)

	b.write(Message, "foo", "a.b")
	b.flushCoalesce()
	b.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	if got[len(got)-1] != '\n' {
		t.Errorf("line does not end in newline: %q", got)
	}
	if !strings.Contains(got, "foo") || !strings.Contains(got, "[a.b]") || !strings.Contains(got, "(message)") {
		t.Errorf("unexpected line content: %q", got)
	}
}

// S6 — rotation: write, external rename, write, reopen, write.
func TestBackendRotation(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "x")
	renamed := filepath.Join(dir, "x.old")

	b := NewFileBackend(original)
	b.write(Message, "A", "root")
	b.flushCoalesce()

	if err := os.Rename(original, renamed); err != nil {
		t.Fatal(err)
	}

	b.write(Message, "B", "root")
	b.flushCoalesce()

	if err := b.Reopen(); err != nil {
		t.Fatalf("Reopen: %v", err)
	}

	b.write(Message, "C", "root")
	b.flushCoalesce()
	b.Close()

	oldContents, err := os.ReadFile(renamed)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(oldContents), "A") || !strings.Contains(string(oldContents), "B") {
		t.Errorf("renamed file missing pre-rotation writes: %q", oldContents)
	}

	newContents, err := os.ReadFile(original)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(newContents), "C") {
		t.Errorf("post-rotation file missing new write: %q", newContents)
	}
	if strings.Contains(string(newContents), "A") {
		t.Errorf("post-rotation file should not contain pre-rotation content: %q", newContents)
	}
}

func TestBackendWriteAutoOpensWhenClosed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.log")
	b := NewFileBackend(path)
	// Never explicitly opened; write must transparently open it.
	b.write(Message, "auto-open", "a")
	b.flushCoalesce()
	b.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "auto-open") {
		t.Errorf("expected auto-opened write, got %q", data)
	}
}

func TestBackendWriteDropsOnOpenFailure(t *testing.T) {
	// A path under a non-existent directory can never be opened for append.
	b := NewFileBackend(filepath.Join(t.TempDir(), "missing-dir", "x.log"))
	var reported error
	b.errorSink = func(err error) { reported = err }

	b.write(Message, "dropped", "a")
	if reported == nil {
		t.Fatal("expected an IoError to be reported")
	}
}

