package dirtable

import (
	"iter"
	"slices"
	"strings"

	"github.com/meigma/sau/internal/sizing"
)

const (
	// MaxPathLength bounds the byte length of a record name.
	MaxPathLength = 512

	// MaxPermissionsLength bounds the byte length of a permission string.
	MaxPermissionsLength = 10

	reservedChars = ",|"
)

// Record describes one file stored in a container.
type Record struct {
	// Name is the file name relative to the extraction directory.
	Name string

	// Permissions is the recorded mode string, usually three octal digits.
	Permissions string

	// Size is the number of content bytes the file occupies.
	Size uint64
}

// Table is the ordered, append-only list of records describing a
// container's content section. Record order is content order.
//
// The zero value is an empty table ready for use.
type Table struct {
	records []Record
}

// New returns an empty table.
func New() *Table {
	return &Table{}
}

// Append adds a record at the tail of the table.
//
// It returns a *RecordError matching ErrInvalidRecord when name or
// permissions are empty, too long, or contain a reserved character.
func (t *Table) Append(name, permissions string, size uint64) error {
	rec := Record{Name: name, Permissions: permissions, Size: size}
	if err := rec.validate(); err != nil {
		return &RecordError{Index: len(t.records), Token: name, Err: err}
	}
	t.records = append(t.records, rec)
	return nil
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.records)
}

// At returns the i-th record. It panics if i is out of range.
func (t *Table) At(i int) Record {
	return t.records[i]
}

// Records returns a copy of the records in table order.
func (t *Table) Records() []Record {
	return slices.Clone(t.records)
}

// All iterates over records in table order.
func (t *Table) All() iter.Seq2[int, Record] {
	return func(yield func(int, Record) bool) {
		for i, rec := range t.records {
			if !yield(i, rec) {
				return
			}
		}
	}
}

// NonEmpty iterates over records with a positive size, in table order.
// The index yielded is the 1-based position among non-empty records,
// which is the sequence number used to name extracted files.
func (t *Table) NonEmpty() iter.Seq2[int, Record] {
	return func(yield func(int, Record) bool) {
		seq := 0
		for _, rec := range t.records {
			if rec.Size == 0 {
				continue
			}
			seq++
			if !yield(seq, rec) {
				return
			}
		}
	}
}

// ContentSize returns the number of content bytes the table describes.
func (t *Table) ContentSize() (uint64, error) {
	var total uint64
	for _, rec := range t.records {
		var ok bool
		if total, ok = sizing.AddUint64(total, rec.Size); !ok {
			return 0, ErrSizeOverflow
		}
	}
	return total, nil
}

func (r Record) validate() error {
	switch {
	case r.Name == "":
		return errEmptyName
	case len(r.Name) > MaxPathLength:
		return errNameTooLong
	case r.Permissions == "":
		return errEmptyPermissions
	case len(r.Permissions) > MaxPermissionsLength:
		return errPermissionsTooLong
	case strings.ContainsAny(r.Name, reservedChars), strings.ContainsAny(r.Permissions, reservedChars):
		return errReservedChar
	}
	return nil
}
