package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// Container assembles raw container bytes from a record section and content.
// The length prefix is computed from section, so malformed sections can be
// built on purpose.
func Container(section, content string) []byte {
	return fmt.Appendf(nil, "%010d%s%s", len(section), section, content)
}

// WriteContainer writes data to dir/name and returns the path.
func WriteContainer(tb testing.TB, dir, name string, data []byte) string {
	tb.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		tb.Fatalf("write container %s: %v", path, err)
	}
	return path
}
