package sau

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/natefinch/atomic"

	"github.com/meigma/sau/internal/dirtable"
	"github.com/meigma/sau/internal/platform"
	"github.com/meigma/sau/internal/sizing"
)

const (
	dirMode         fs.FileMode = 0o755
	defaultFileMode fs.FileMode = 0o644
)

// Sink receives the records Decode extracts from a container.
type Sink interface {
	// Begin is called once the header has been parsed, before any content
	// is read. Returning an error aborts the decode.
	Begin(table *Table) error

	// Put receives the full content of the seq-th non-empty record
	// (1-based). Implementations must not retain content after returning.
	Put(seq int, rec Record, content []byte) error
}

// Split extracts the container at path into outDir.
//
// Split parses the header, creates outDir if needed and then, for every
// record with a positive size, reads exactly that many bytes and writes
// them to outDir/file<N>.txt, where N counts non-empty records from 1
// (see SplitWithNaming). Each file is written atomically and the recorded
// permissions are reapplied; failing to apply permissions is logged and
// otherwise ignored.
//
// A container larger than the configured limit fails with
// ErrSizeLimitExceeded before any output is produced. An unreadable header
// fails with ErrCorruptHeader. If the content ends before a record's
// declared size, Split fails with ErrTruncatedContent; files extracted
// before that record remain on disk.
//
// The returned table is the parsed directory table, without records that
// were skipped as malformed.
func Split(ctx context.Context, path, outDir string, opts ...SplitOption) (*Table, error) {
	cfg := newSplitConfig(opts)
	d := &decoder{cfg: cfg}

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
	if err := sizing.CheckLimit("container", size, cfg.maxTotalSize, ErrSizeLimitExceeded); err != nil {
		return nil, err
	}
	d.log().Info("splitting container", "container", path, "size", humanize.IBytes(size), "dir", outDir)

	sink := &dirSink{dir: outDir, cfg: &d.cfg, logger: d.log()}
	table, err := d.decode(ctx, f, sink)
	if err != nil {
		return nil, err
	}

	d.log().Info("container extracted", "container", path, "files", sink.written, "dir", outDir)
	return table, nil
}

// Decode parses a container from r and hands every non-empty record's
// content to sink, in table order.
//
// Decode is the reader behind Split. Since r has no known length, the size
// limit is enforced while reading: consuming more than the limit fails
// with ErrSizeLimitExceeded.
func Decode(ctx context.Context, r io.Reader, sink Sink, opts ...SplitOption) (*Table, error) {
	d := &decoder{cfg: newSplitConfig(opts)}
	return d.decode(ctx, r, sink)
}

// decoder holds state for a single split call.
type decoder struct {
	cfg splitConfig
}

// log returns the logger, falling back to a discard logger if nil.
func (d *decoder) log() *slog.Logger {
	if d.cfg.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return d.cfg.logger
}

// reportProgress sends a progress event if a callback is configured.
func (d *decoder) reportProgress(path string, bytesDone, bytesTotal uint64, filesDone, filesTotal int) {
	if d.cfg.progress == nil {
		return
	}
	d.cfg.progress(ProgressEvent{
		Stage:      StageExtracting,
		Path:       path,
		BytesDone:  bytesDone,
		BytesTotal: bytesTotal,
		FilesDone:  filesDone,
		FilesTotal: filesTotal,
	})
}

// parsedHeader is the result of reading a container header.
type parsedHeader struct {
	table   *Table
	skipped []*RecordError
	size    uint64 // length prefix plus record section
}

// readHeader reads and parses the header, logging skipped records.
func (d *decoder) readHeader(r io.Reader) (*parsedHeader, error) {
	section, err := dirtable.ReadHeader(r, d.cfg.maxTotalSize)
	if err != nil {
		return nil, err
	}
	table, skipped, err := dirtable.Unmarshal(section)
	if err != nil {
		return nil, err
	}
	for _, recErr := range skipped {
		d.log().Warn("skipped invalid record", "index", recErr.Index, "token", recErr.Token, "error", recErr.Err)
	}
	return &parsedHeader{
		table:   table,
		skipped: skipped,
		size:    uint64(dirtable.LengthWidth + len(section)),
	}, nil
}

func (d *decoder) decode(ctx context.Context, r io.Reader, sink Sink) (*Table, error) {
	if d.cfg.maxTotalSize > 0 {
		r = &capReader{r: r, remaining: d.cfg.maxTotalSize}
	}
	header, err := d.readHeader(r)
	if err != nil {
		return nil, err
	}
	table := header.table
	total, err := table.ContentSize()
	if err != nil {
		return nil, err
	}
	d.log().Debug("header parsed", "records", table.Len(), "content_size", total)

	if err := sink.Begin(table); err != nil {
		return nil, err
	}

	filesTotal := 0
	for range table.NonEmpty() {
		filesTotal++
	}

	var done uint64
	for seq, rec := range table.NonEmpty() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		content, err := d.readContent(r, seq, rec)
		if err != nil {
			return nil, err
		}
		if err := sink.Put(seq, rec, content); err != nil {
			return nil, err
		}
		done += rec.Size
		d.reportProgress(rec.Name, done, total, seq, filesTotal)
	}

	var probe [1]byte
	n, err := io.ReadFull(r, probe[:])
	switch {
	case errors.Is(err, ErrSizeLimitExceeded):
		return nil, err
	case n > 0:
		d.log().Warn("container has bytes after the last record", "content_size", total)
	case err != nil && !errors.Is(err, io.EOF):
		d.log().Warn("reading past the last record failed", "error", err)
	}
	return table, nil
}

// readContent reads exactly rec.Size bytes from r.
func (d *decoder) readContent(r io.Reader, seq int, rec Record) ([]byte, error) {
	n, err := sizing.ToInt64(rec.Size, ErrSizeOverflow)
	if err != nil {
		return nil, err
	}
	content, err := io.ReadAll(io.LimitReader(r, n))
	if err != nil {
		return nil, err
	}
	if int64(len(content)) < n {
		return nil, fmt.Errorf("%w: record %d (%s) declares %d bytes, only %d remain",
			ErrTruncatedContent, seq, rec.Name, n, len(content))
	}
	return content, nil
}

// capReader fails with ErrSizeLimitExceeded once a read would go past
// remaining bytes and the underlying reader still has data.
type capReader struct {
	r         io.Reader
	remaining uint64
}

func (c *capReader) Read(p []byte) (int, error) {
	if c.remaining == 0 {
		var probe [1]byte
		n, err := c.r.Read(probe[:])
		if n > 0 {
			return 0, fmt.Errorf("%w: container is larger than the configured limit", ErrSizeLimitExceeded)
		}
		return 0, err
	}
	if uint64(len(p)) > c.remaining {
		p = p[:c.remaining]
	}
	n, err := c.r.Read(p)
	c.remaining -= uint64(n) //nolint:gosec // n is never negative
	return n, err
}

// dirSink writes extracted records into a directory.
type dirSink struct {
	dir     string
	cfg     *splitConfig
	logger  *slog.Logger
	written int
	names   map[string]int // output name to record seq
}

// Begin creates the output directory.
func (s *dirSink) Begin(*Table) error {
	if err := os.MkdirAll(s.dir, dirMode); err != nil {
		if info, statErr := os.Stat(s.dir); statErr == nil && info.IsDir() {
			return nil
		}
		return fmt.Errorf("%w: %w", ErrDirectoryCreateFailed, err)
	}
	return nil
}

// Put writes one record atomically and applies its permissions.
func (s *dirSink) Put(seq int, rec Record, content []byte) error {
	name, err := s.cfg.naming.fileName(seq, rec)
	if err != nil {
		return err
	}
	if prev, ok := s.names[name]; ok {
		return &RecordError{Index: seq, Token: rec.Name, Err: fmt.Errorf("%w: also used by record %d", errDuplicateName, prev)}
	}
	if s.names == nil {
		s.names = make(map[string]int)
	}
	s.names[name] = seq
	target := filepath.Join(s.dir, name)

	if !s.cfg.overwrite {
		if _, err := os.Lstat(target); err == nil {
			return fmt.Errorf("%w: %s: %w", ErrOutputWriteFailed, target, fs.ErrExist)
		}
	}
	if err := atomic.WriteFile(target, bytes.NewReader(content)); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrOutputWriteFailed, target, err)
	}
	s.written++
	s.logger.Debug("extracted record", "seq", seq, "name", rec.Name, "path", target, "size", rec.Size)

	s.applyMode(target, rec)
	return nil
}

// applyMode sets the recorded permissions on target. Failures are logged.
func (s *dirSink) applyMode(target string, rec Record) {
	mode := defaultFileMode
	if s.cfg.preserveMode {
		parsed, err := dirtable.ParsePermissions(rec.Permissions)
		if err != nil {
			s.logger.Warn("permissions not applied", "path", target, "permissions", rec.Permissions, "error", err)
		} else {
			mode = parsed
		}
	}
	if err := platform.ApplyPermissions(target, mode); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("extracted file vanished before chmod", "path", target)
			return
		}
		s.logger.Warn("permissions not applied", "path", target, "mode", mode, "error", err)
	}
}
