package sau

import "log/slog"

const (
	// DefaultMaxFiles is the default input count limit used by Merge.
	DefaultMaxFiles = 32

	// DefaultMaxTotalSize is the default container size cap (200 MiB).
	DefaultMaxTotalSize uint64 = 200 << 20
)

// ChangeDetection controls how strictly input changes are detected during merge.
type ChangeDetection uint8

const (
	// ChangeDetectionNone only verifies that each input still holds at
	// least its recorded size when it is copied.
	ChangeDetectionNone ChangeDetection = iota

	// ChangeDetectionStrict additionally verifies that size, modification
	// time and permissions are unchanged after each input is copied.
	ChangeDetectionStrict
)

// mergeConfig holds configuration for Merge and Encode.
type mergeConfig struct {
	maxFiles        int
	maxTotalSize    uint64
	changeDetection ChangeDetection
	logger          *slog.Logger
	progress        ProgressFunc
}

func newMergeConfig(opts []MergeOption) mergeConfig {
	cfg := mergeConfig{maxTotalSize: DefaultMaxTotalSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// MergeOption configures Merge and Encode.
type MergeOption func(*mergeConfig)

// MergeWithMaxFiles limits the number of input files.
// Zero uses DefaultMaxFiles. Negative means no limit.
func MergeWithMaxFiles(n int) MergeOption {
	return func(cfg *mergeConfig) {
		cfg.maxFiles = n
	}
}

// MergeWithMaxTotalSize caps the size of the produced container, header
// included. Set limit to 0 to disable the limit.
func MergeWithMaxTotalSize(limit uint64) MergeOption {
	return func(cfg *mergeConfig) {
		cfg.maxTotalSize = limit
	}
}

// MergeWithChangeDetection controls whether inputs are verified to be
// unchanged after they are copied. The zero value only checks sizes.
func MergeWithChangeDetection(cd ChangeDetection) MergeOption {
	return func(cfg *mergeConfig) {
		cfg.changeDetection = cd
	}
}

// MergeWithLogger sets the logger for merge operations.
// If not set, logging is disabled.
func MergeWithLogger(logger *slog.Logger) MergeOption {
	return func(cfg *mergeConfig) {
		cfg.logger = logger
	}
}

// MergeWithProgress sets a callback invoked after each input is appended.
func MergeWithProgress(fn ProgressFunc) MergeOption {
	return func(cfg *mergeConfig) {
		cfg.progress = fn
	}
}
