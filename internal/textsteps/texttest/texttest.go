// Package texttest provides the text fixture used across the runner tests.
package texttest

import (
	_ "embed"
	"os"
	"path/filepath"
	"testing"
)

//go:embed gettysburg.txt
var gettysburg string

// GettysburgLen is the fixture's size in bytes.
const GettysburgLen = 1453

func Gettysburg() string {
	return gettysburg
}

// WriteGettysburg writes the fixture into a temp dir owned by tb and
// returns its path.
func WriteGettysburg(tb testing.TB) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "gettysburg.txt")
	if err := os.WriteFile(path, []byte(gettysburg), 0o600); err != nil {
		tb.Fatalf("write fixture: %v", err)
	}
	return path
}
