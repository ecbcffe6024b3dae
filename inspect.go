package sau

import (
	"fmt"
	"io"
	"os"

	"github.com/opencontainers/go-digest"

	"github.com/meigma/sau/internal/sizing"
)

// Summary describes a container without extracting it.
type Summary struct {
	// Table is the parsed directory table.
	Table *Table

	// Skipped lists header tokens that failed to parse.
	Skipped []*RecordError

	// HeaderSize is the size of the length prefix plus the record section.
	HeaderSize uint64

	// ContentSize is the number of content bytes the table declares.
	ContentSize uint64

	// ContainerSize is the actual size of the container file.
	ContainerSize uint64

	// Digest is the sha256 digest of the whole container file. It is
	// informational; the format itself carries no checksum.
	Digest digest.Digest
}

// Truncated reports whether the container holds fewer content bytes than
// its table declares. Split on such a container fails with ErrTruncatedContent.
func (s *Summary) Truncated() bool {
	declared, ok := sizing.AddUint64(s.HeaderSize, s.ContentSize)
	return !ok || s.ContainerSize < declared
}

// TrailingBytes returns the number of bytes after the last declared record.
func (s *Summary) TrailingBytes() uint64 {
	if s.Truncated() {
		return 0
	}
	return s.ContainerSize - s.HeaderSize - s.ContentSize
}

// Inspect reads the header of the container at path and returns a summary.
//
// Only the header is parsed; content bytes are streamed through the digest
// and never buffered. Inspect honors SplitWithMaxTotalSize and
// SplitWithLogger; other split options are ignored.
func Inspect(path string, opts ...SplitOption) (*Summary, error) {
	d := &decoder{cfg: newSplitConfig(opts)}

	f, err := os.Open(path) //nolint:gosec // User-provided path is intentional
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputNotFound, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputNotFound, err)
	}
	size, err := sizing.FromInt64(info.Size(), ErrSizeOverflow)
	if err != nil {
		return nil, err
	}
	if err := sizing.CheckLimit("container", size, d.cfg.maxTotalSize, ErrSizeLimitExceeded); err != nil {
		return nil, err
	}

	digester := digest.Canonical.Digester()
	r := io.TeeReader(f, digester.Hash())
	header, err := d.readHeader(r)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(digester.Hash(), f); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	content, err := header.table.ContentSize()
	if err != nil {
		return nil, err
	}
	return &Summary{
		Table:         header.table,
		Skipped:       header.skipped,
		HeaderSize:    header.size,
		ContentSize:   content,
		ContainerSize: size,
		Digest:        digester.Digest(),
	}, nil
}
