// Package logdomtest holds small fixtures shared by this module's own
// test suites — not part of the public logging API.
package logdomtest

import (
	"path/filepath"

	"github.com/google/uuid"
)

// UniquePath returns a path under dir that is guaranteed not to
// collide with another call in the same test binary, named
// "<prefix>-<uuid>.log". Rotation tests need a fresh target per run
// (the teacher's own rotatefile/rand64 in logger.go solves the same
// problem for its gzip scratch files with crypto/rand; here the
// collision space is human-readable test fixture names instead of a
// one-shot scratch suffix, so a UUID reads better in failure output).
func UniquePath(dir, prefix string) string {
	return filepath.Join(dir, prefix+"-"+uuid.NewString()+".log")
}
