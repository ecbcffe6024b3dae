package sau

import (
	"errors"

	"github.com/meigma/sau/internal/dirtable"
)

// Errors re-exported from internal/dirtable.
var (
	// ErrInvalidRecord is returned when a record cannot be added or parsed.
	// Parse-time record errors are skipped with a warning rather than returned.
	ErrInvalidRecord = dirtable.ErrInvalidRecord

	// ErrCorruptHeader is returned when the length prefix is unreadable or
	// the record section cannot be parsed at all.
	ErrCorruptHeader = dirtable.ErrCorruptHeader

	// ErrSizeLimitExceeded is returned when a container exceeds the configured size cap.
	ErrSizeLimitExceeded = dirtable.ErrSizeLimitExceeded

	// ErrSizeOverflow is returned when byte counts exceed supported limits.
	ErrSizeOverflow = dirtable.ErrSizeOverflow
)

// Sentinel errors specific to merge and split.
var (
	// ErrInputNotFound is returned when an input file or container cannot be opened.
	ErrInputNotFound = errors.New("sau: input not found")

	// ErrTruncatedContent is returned when fewer content bytes remain than a record declares.
	ErrTruncatedContent = errors.New("sau: truncated content")

	// ErrOutputWriteFailed is returned when writing the container or an extracted file fails.
	ErrOutputWriteFailed = errors.New("sau: output write failed")

	// ErrDirectoryCreateFailed is returned when the output directory cannot be created.
	ErrDirectoryCreateFailed = errors.New("sau: directory create failed")

	// ErrTooManyFiles is returned when the input count exceeds the configured limit.
	ErrTooManyFiles = errors.New("sau: too many input files")
)
