package dirtable

import (
	"errors"
	"fmt"
)

// Sentinel errors for directory table operations.
var (
	// ErrInvalidRecord is returned when a record cannot be added or parsed.
	ErrInvalidRecord = errors.New("sau: invalid record")

	// ErrCorruptHeader is returned when the length prefix or the record
	// section of a container cannot be read.
	ErrCorruptHeader = errors.New("sau: corrupt header")

	// ErrSizeLimitExceeded is returned when a size exceeds the configured cap.
	ErrSizeLimitExceeded = errors.New("sau: size limit exceeded")

	// ErrSizeOverflow is returned when byte counts exceed supported limits.
	ErrSizeOverflow = errors.New("sau: size overflow")
)

var (
	errEmptyName          = errors.New("empty name")
	errNameTooLong        = fmt.Errorf("name longer than %d bytes", MaxPathLength)
	errEmptyPermissions   = errors.New("empty permissions")
	errPermissionsTooLong = fmt.Errorf("permissions longer than %d bytes", MaxPermissionsLength)
	errReservedChar       = errors.New("contains reserved character ',' or '|'")
	errMissingField       = errors.New("missing field")
	errBadSize            = errors.New("size is not a decimal byte count")
)

// RecordError describes a record that was rejected by Append or skipped
// by Unmarshal. It matches ErrInvalidRecord with errors.Is.
type RecordError struct {
	// Index is the position of the record: the table length for Append,
	// the token position within the record section for Unmarshal.
	Index int

	// Token is the offending input (the name for Append, the raw token for Unmarshal).
	Token string

	// Err is the underlying cause.
	Err error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("sau: invalid record %d %q: %v", e.Index, e.Token, e.Err)
}

func (e *RecordError) Unwrap() []error {
	return []error{ErrInvalidRecord, e.Err}
}
