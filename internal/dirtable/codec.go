package dirtable

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/meigma/sau/internal/sizing"
)

const (
	// LengthWidth is the number of ASCII digits in the header length prefix.
	LengthWidth = 10

	// MaxSectionLength is the largest record section the prefix can describe.
	MaxSectionLength = 9_999_999_999

	recordDelim = '|'
	fieldDelim  = ','
)

// Marshal renders the record section: every record as
// |name,permissions,size| in table order. An empty table renders as an
// empty section.
func (t *Table) Marshal() []byte {
	n := 0
	for _, rec := range t.records {
		n += len(rec.Name) + len(rec.Permissions) + 24
	}
	b := make([]byte, 0, n)
	for _, rec := range t.records {
		b = append(b, recordDelim)
		b = append(b, rec.Name...)
		b = append(b, fieldDelim)
		b = append(b, rec.Permissions...)
		b = append(b, fieldDelim)
		b = strconv.AppendUint(b, rec.Size, 10)
		b = append(b, recordDelim)
	}
	return b
}

// EncodeHeader returns the full container header: the ten-digit length
// prefix followed by the record section.
func (t *Table) EncodeHeader() ([]byte, error) {
	section := t.Marshal()
	if len(section) > MaxSectionLength {
		return nil, fmt.Errorf("%w: record section is %d bytes", ErrSizeOverflow, len(section))
	}
	header := make([]byte, 0, LengthWidth+len(section))
	header = fmt.Appendf(header, "%0*d", LengthWidth, len(section))
	return append(header, section...), nil
}

// Unmarshal parses a record section.
//
// The section is split on '|' and empty tokens are ignored. Each token is
// parsed by scanning for the first two commas; the remainder must be a
// decimal size. Tokens that fail to parse are returned as skipped
// *RecordError values and do not abort the parse. A non-empty section that
// is not enclosed in pipes cannot have been produced by Marshal and returns
// ErrCorruptHeader.
func Unmarshal(section []byte) (*Table, []*RecordError, error) {
	t := New()
	if len(section) == 0 {
		return t, nil, nil
	}
	if section[0] != recordDelim || section[len(section)-1] != recordDelim {
		return nil, nil, fmt.Errorf("%w: record section is not enclosed in %q", ErrCorruptHeader, recordDelim)
	}

	var skipped []*RecordError
	index := 0
	for tok := range bytes.SplitSeq(section, []byte{recordDelim}) {
		if len(tok) == 0 {
			continue
		}
		rec, err := parseRecord(string(tok))
		if err != nil {
			skipped = append(skipped, &RecordError{Index: index, Token: string(tok), Err: err})
		} else {
			t.records = append(t.records, rec)
		}
		index++
	}
	return t, skipped, nil
}

func parseRecord(tok string) (Record, error) {
	name, rest, ok := strings.Cut(tok, string(fieldDelim))
	if !ok {
		return Record{}, errMissingField
	}
	perm, sizeField, ok := strings.Cut(rest, string(fieldDelim))
	if !ok {
		return Record{}, errMissingField
	}
	size, err := strconv.ParseUint(sizeField, 10, 64)
	if err != nil {
		return Record{}, errBadSize
	}
	rec := Record{Name: name, Permissions: perm, Size: size}
	if err := rec.validate(); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// ParseLength decodes a ten-digit length prefix.
func ParseLength(prefix []byte) (uint64, error) {
	if len(prefix) != LengthWidth {
		return 0, fmt.Errorf("%w: length prefix is %d bytes, want %d", ErrCorruptHeader, len(prefix), LengthWidth)
	}
	for _, c := range prefix {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: length prefix %q is not decimal", ErrCorruptHeader, prefix)
		}
	}
	n, err := strconv.ParseUint(string(prefix), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: length prefix %q: %w", ErrCorruptHeader, prefix, err)
	}
	return n, nil
}

// ReadHeader reads the length prefix and the record section from r,
// leaving r positioned at the first content byte.
//
// A section longer than limit returns ErrSizeLimitExceeded; a zero limit
// disables the check. A missing prefix or a section shorter than declared
// returns ErrCorruptHeader.
func ReadHeader(r io.Reader, limit uint64) ([]byte, error) {
	var prefix [LengthWidth]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: missing length prefix", ErrCorruptHeader)
		}
		return nil, err
	}
	length, err := ParseLength(prefix[:])
	if err != nil {
		return nil, err
	}
	if err := sizing.CheckLimit("record section", length, limit, ErrSizeLimitExceeded); err != nil {
		return nil, err
	}
	n, err := sizing.ToInt(length, ErrSizeOverflow)
	if err != nil {
		return nil, err
	}

	section := make([]byte, n)
	if read, err := io.ReadFull(r, section); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: header declares %d bytes, only %d present", ErrCorruptHeader, n, read)
		}
		return nil, err
	}
	return section, nil
}
