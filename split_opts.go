package sau

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
)

// Naming selects how Split names extracted files.
type Naming uint8

const (
	// NamingSequential names extracted files file1.txt, file2.txt, ...
	// counting only records with content.
	NamingSequential Naming = iota

	// NamingOriginal names extracted files after their recorded names.
	// Names that are not a single local path element are rejected, as is
	// a name already used by an earlier record of the same container.
	NamingOriginal
)

// String returns the flag spelling of the naming scheme.
func (n Naming) String() string {
	switch n {
	case NamingSequential:
		return "sequential"
	case NamingOriginal:
		return "original"
	default:
		return "unknown"
	}
}

// ParseNaming converts a flag value to a Naming.
func ParseNaming(s string) (Naming, error) {
	switch s {
	case "sequential", "":
		return NamingSequential, nil
	case "original":
		return NamingOriginal, nil
	default:
		return 0, fmt.Errorf("unknown naming scheme %q (want sequential or original)", s)
	}
}

var (
	errNotPlainName  = errors.New("name is not a plain file name")
	errDuplicateName = errors.New("duplicate output name")
)

// fileName returns the output name for the seq-th non-empty record.
func (n Naming) fileName(seq int, rec Record) (string, error) {
	if n != NamingOriginal {
		return "file" + strconv.Itoa(seq) + ".txt", nil
	}
	if !filepath.IsLocal(rec.Name) || filepath.Base(rec.Name) != rec.Name {
		return "", &RecordError{Index: seq, Token: rec.Name, Err: errNotPlainName}
	}
	return rec.Name, nil
}

// splitConfig holds configuration for Split, Decode and Inspect.
type splitConfig struct {
	maxTotalSize uint64
	naming       Naming
	overwrite    bool
	preserveMode bool
	logger       *slog.Logger
	progress     ProgressFunc
}

func newSplitConfig(opts []SplitOption) splitConfig {
	cfg := splitConfig{
		maxTotalSize: DefaultMaxTotalSize,
		overwrite:    true,
		preserveMode: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// SplitOption configures Split, Decode and Inspect.
type SplitOption func(*splitConfig)

// SplitWithMaxTotalSize caps the size of the container that will be read.
// Set limit to 0 to disable the limit.
func SplitWithMaxTotalSize(limit uint64) SplitOption {
	return func(cfg *splitConfig) {
		cfg.maxTotalSize = limit
	}
}

// SplitWithNaming selects how extracted files are named (default: NamingSequential).
func SplitWithNaming(n Naming) SplitOption {
	return func(cfg *splitConfig) {
		cfg.naming = n
	}
}

// SplitWithOverwrite controls whether existing files in the output
// directory are replaced (default: true). When false, an existing target
// fails the split with ErrOutputWriteFailed wrapping fs.ErrExist.
func SplitWithOverwrite(enabled bool) SplitOption {
	return func(cfg *splitConfig) {
		cfg.overwrite = enabled
	}
}

// SplitWithPreserveMode controls whether recorded permissions are applied
// to extracted files (default: true). When false, files get mode 0644.
func SplitWithPreserveMode(enabled bool) SplitOption {
	return func(cfg *splitConfig) {
		cfg.preserveMode = enabled
	}
}

// SplitWithLogger sets the logger for split operations.
// If not set, logging is disabled.
func SplitWithLogger(logger *slog.Logger) SplitOption {
	return func(cfg *splitConfig) {
		cfg.logger = logger
	}
}

// SplitWithProgress sets a callback invoked after each record is extracted.
func SplitWithProgress(fn ProgressFunc) SplitOption {
	return func(cfg *splitConfig) {
		cfg.progress = fn
	}
}
