package sau

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/meigma/sau/internal/dirtable"
	"github.com/meigma/sau/internal/platform"
	"github.com/meigma/sau/internal/sizing"
)

const copyBufferSize = 32 * 1024

// Merge writes the files named by inputs into a new container at output.
//
// Each input contributes one record (base name, permission bits, size) to
// the directory table, in the order given. The header is written first,
// followed by the raw bytes of every input back to back. Zero-size inputs
// are recorded but contribute no content.
//
// All inputs are opened and stat'ed and the size limit is checked before
// output is created, so ErrInputNotFound, ErrInvalidRecord, ErrTooManyFiles
// and ErrSizeLimitExceeded leave the filesystem untouched. An output that
// resolves to one of the inputs is rejected with ErrOutputWriteFailed
// before anything is truncated. A failure while writing leaves a truncated
// container behind; it is not removed.
//
// The returned table describes the written container.
func Merge(ctx context.Context, inputs []string, output string, opts ...MergeOption) (*Table, error) {
	m := &merger{cfg: newMergeConfig(opts)}
	m.log().Info("merging files", "inputs", len(inputs), "output", output)

	plan, err := m.plan(ctx, inputs)
	if err != nil {
		return nil, err
	}
	if err := checkOutput(output, plan); err != nil {
		return nil, err
	}

	f, err := os.Create(output) //nolint:gosec // User-provided path is intentional
	if err != nil {
		return nil, fmt.Errorf("%w: create %s: %w", ErrOutputWriteFailed, output, err)
	}
	if err := m.write(ctx, f, plan); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("%w: close %s: %w", ErrOutputWriteFailed, output, err)
	}

	m.log().Info("container written", "output", output, "records", plan.table.Len(), "size", humanize.IBytes(plan.total))
	return plan.table, nil
}

// Encode writes a container built from inputs to w.
//
// Encode is the writer behind Merge for callers that provide their own sink.
// Validation and limit checks happen before the first byte is written.
func Encode(ctx context.Context, w io.Writer, inputs []string, opts ...MergeOption) (*Table, error) {
	m := &merger{cfg: newMergeConfig(opts)}
	plan, err := m.plan(ctx, inputs)
	if err != nil {
		return nil, err
	}
	if err := m.write(ctx, w, plan); err != nil {
		return nil, err
	}
	return plan.table, nil
}

// merger holds state for a single merge call.
type merger struct {
	cfg mergeConfig
}

// mergePlan is the validated input set of a merge.
type mergePlan struct {
	table  *Table
	paths  []string
	infos  []fs.FileInfo
	header []byte
	total  uint64
}

// log returns the logger, falling back to a discard logger if nil.
func (m *merger) log() *slog.Logger {
	if m.cfg.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return m.cfg.logger
}

// reportProgress sends a progress event if a callback is configured.
func (m *merger) reportProgress(path string, bytesDone, bytesTotal uint64, filesDone, filesTotal int) {
	if m.cfg.progress == nil {
		return
	}
	m.cfg.progress(ProgressEvent{
		Stage:      StageMerging,
		Path:       path,
		BytesDone:  bytesDone,
		BytesTotal: bytesTotal,
		FilesDone:  filesDone,
		FilesTotal: filesTotal,
	})
}

// plan stats every input, builds the directory table and checks limits.
func (m *merger) plan(ctx context.Context, paths []string) (*mergePlan, error) {
	maxFiles := m.cfg.maxFiles
	if maxFiles == 0 {
		maxFiles = DefaultMaxFiles
	}
	if maxFiles > 0 && len(paths) > maxFiles {
		return nil, fmt.Errorf("%w: %d inputs, limit is %d", ErrTooManyFiles, len(paths), maxFiles)
	}

	plan := &mergePlan{
		table: dirtable.New(),
		paths: paths,
		infos: make([]fs.FileInfo, 0, len(paths)),
	}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, err := statReadable(path)
		if err != nil {
			return nil, err
		}
		if !info.Mode().IsRegular() {
			return nil, fmt.Errorf("%w: %s: not a regular file", ErrInputNotFound, path)
		}
		size, err := sizing.FromInt64(info.Size(), ErrSizeOverflow)
		if err != nil {
			return nil, fmt.Errorf("%s: negative file size: %w", path, err)
		}

		perms := dirtable.PlaceholderPermissions
		if mode, ok := platform.Permissions(info); ok {
			perms = dirtable.FormatPermissions(mode)
		}
		if err := plan.table.Append(filepath.Base(path), perms, size); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		plan.infos = append(plan.infos, info)
		m.log().Debug("recorded input", "path", path, "permissions", perms, "size", size)
	}

	header, err := plan.table.EncodeHeader()
	if err != nil {
		return nil, err
	}
	content, err := plan.table.ContentSize()
	if err != nil {
		return nil, err
	}
	total, ok := sizing.AddUint64(uint64(len(header)), content)
	if !ok {
		return nil, ErrSizeOverflow
	}
	if err := sizing.CheckLimit("container", total, m.cfg.maxTotalSize, ErrSizeLimitExceeded); err != nil {
		return nil, err
	}
	plan.header = header
	plan.total = total
	return plan, nil
}

// statReadable opens path to confirm it is readable and returns its info.
func statReadable(path string) (fs.FileInfo, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided path is intentional
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputNotFound, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputNotFound, err)
	}
	return info, nil
}

// checkOutput rejects an output path that resolves to one of the inputs,
// through the same name, a symlink or a hard link.
func checkOutput(output string, plan *mergePlan) error {
	outInfo, err := os.Stat(output)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: stat %s: %w", ErrOutputWriteFailed, output, err)
	}
	for i, info := range plan.infos {
		if os.SameFile(outInfo, info) {
			return fmt.Errorf("%w: output %s is input %s", ErrOutputWriteFailed, output, plan.paths[i])
		}
	}
	return nil
}

// write emits the header and then every input's content in table order.
func (m *merger) write(ctx context.Context, w io.Writer, plan *mergePlan) error {
	bw := bufio.NewWriterSize(w, copyBufferSize)
	if _, err := bw.Write(plan.header); err != nil {
		return fmt.Errorf("%w: write header: %w", ErrOutputWriteFailed, err)
	}

	content := plan.total - uint64(len(plan.header))
	var done uint64
	for i, rec := range plan.table.All() {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := plan.paths[i]
		if rec.Size > 0 {
			if err := m.copyInput(bw, path, plan.infos[i], rec.Size); err != nil {
				return err
			}
			done += rec.Size
		}
		m.reportProgress(path, done, content, i+1, plan.table.Len())
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: flush: %w", ErrOutputWriteFailed, err)
	}
	return nil
}

// copyInput appends exactly size bytes of the file at path to w.
func (m *merger) copyInput(w io.Writer, path string, before fs.FileInfo, size uint64) error {
	f, err := os.Open(path) //nolint:gosec // User-provided path is intentional
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInputNotFound, err)
	}
	defer f.Close()

	strict := m.cfg.changeDetection == ChangeDetectionStrict
	if strict {
		opened, err := f.Stat()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInputNotFound, err)
		}
		if !os.SameFile(before, opened) {
			return fmt.Errorf("%w: %s: file replaced during merge", ErrOutputWriteFailed, path)
		}
	}

	n, err := sizing.ToInt64(size, ErrSizeOverflow)
	if err != nil {
		return err
	}
	written, err := io.CopyN(w, f, n)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: %s: file shrank from %d to %d bytes during merge", ErrOutputWriteFailed, path, n, written)
		}
		return fmt.Errorf("%w: %s: %w", ErrOutputWriteFailed, path, err)
	}

	if strict {
		return checkUnchanged(f, path, before)
	}
	return nil
}

// checkUnchanged verifies a file's size, mtime and permissions still match before.
func checkUnchanged(f *os.File, path string, before fs.FileInfo) error {
	after, err := f.Stat()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInputNotFound, err)
	}
	if after.Size() != before.Size() || !after.ModTime().Equal(before.ModTime()) || after.Mode().Perm() != before.Mode().Perm() {
		return fmt.Errorf("%w: %s: file changed during merge", ErrOutputWriteFailed, path)
	}
	return nil
}
