package sau

import "github.com/meigma/sau/internal/dirtable"

// --- Re-exports from internal/dirtable ---

// Record describes one file stored in a container.
type Record = dirtable.Record

// Table is the ordered directory table heading a container.
type Table = dirtable.Table

// RecordError describes a record rejected by Table.Append or skipped while
// parsing a header. It matches ErrInvalidRecord with errors.Is.
type RecordError = dirtable.RecordError

// NewTable returns an empty directory table.
var NewTable = dirtable.New

// ParsePermissions decodes a recorded permission string (octal or symbolic).
var ParsePermissions = dirtable.ParsePermissions

const (
	// MaxPathLength bounds the byte length of a record name.
	MaxPathLength = dirtable.MaxPathLength

	// PlaceholderPermissions is recorded when the platform exposes no permission bits.
	PlaceholderPermissions = dirtable.PlaceholderPermissions
)
