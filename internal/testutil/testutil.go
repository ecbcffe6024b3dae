// Package testutil provides helpers shared by sau tests.
package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/meigma/sau/internal/dirtable"
)

// InputFile describes a file to create as merge input.
type InputFile struct {
	Name    string
	Content []byte
	// Mode defaults to 0644 when zero.
	Mode fs.FileMode
}

// WriteInputs creates files in dir with the given content and permissions
// and returns their paths in the order given.
func WriteInputs(tb testing.TB, dir string, files ...InputFile) []string {
	tb.Helper()

	paths := make([]string, 0, len(files))
	for _, f := range files {
		mode := f.Mode
		if mode == 0 {
			mode = 0o644
		}
		path := filepath.Join(dir, f.Name)
		if err := os.WriteFile(path, f.Content, mode); err != nil {
			tb.Fatalf("write input %s: %v", path, err)
		}
		// WriteFile is subject to the umask; chmod sets the exact bits.
		if err := os.Chmod(path, mode); err != nil {
			tb.Fatalf("chmod input %s: %v", path, err)
		}
		paths = append(paths, path)
	}
	return paths
}

// ReadDir returns the content of every regular file in dir keyed by name.
func ReadDir(tb testing.TB, dir string) map[string][]byte {
	tb.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		tb.Fatalf("read dir %s: %v", dir, err)
	}
	files := make(map[string][]byte, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			tb.Fatalf("read %s: %v", e.Name(), err)
		}
		files[e.Name()] = data
	}
	return files
}

// MemoryFile is one record captured by MemorySink.
type MemoryFile struct {
	Seq     int
	Record  dirtable.Record
	Content []byte
}

// MemorySink collects decoded records in memory.
type MemorySink struct {
	Table *dirtable.Table
	Files []MemoryFile

	// FailAt makes Put return Err for the record with this sequence number.
	FailAt int
	Err    error
}

// Begin records the parsed table.
func (s *MemorySink) Begin(table *dirtable.Table) error {
	s.Table = table
	return nil
}

// Put stores a copy of content.
func (s *MemorySink) Put(seq int, rec dirtable.Record, content []byte) error {
	if s.FailAt != 0 && seq == s.FailAt {
		return s.Err
	}
	s.Files = append(s.Files, MemoryFile{Seq: seq, Record: rec, Content: append([]byte(nil), content...)})
	return nil
}
