package sau

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/sau/internal/testutil"
)

func TestInspect_ExampleContainer(t *testing.T) {
	t.Parallel()

	path := writeExample(t)
	summary, err := Inspect(path)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Table.Len())
	assert.Empty(t, summary.Skipped)
	assert.Equal(t, uint64(36), summary.HeaderSize)
	assert.Equal(t, uint64(5), summary.ContentSize)
	assert.Equal(t, uint64(41), summary.ContainerSize)
	assert.False(t, summary.Truncated())
	assert.Zero(t, summary.TrailingBytes())
	assert.Equal(t, digest.FromString(exampleContainer), summary.Digest)
}

func TestInspect_MatchesMergeOutput(t *testing.T) {
	t.Parallel()

	output := filepath.Join(t.TempDir(), "out.sau")
	table, err := Merge(context.Background(), exampleInputs(t), output)
	require.NoError(t, err)

	summary, err := Inspect(output)
	require.NoError(t, err)
	assert.Equal(t, table.Records(), summary.Table.Records())

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, digest.FromBytes(data), summary.Digest)
}

func TestInspect_Truncated(t *testing.T) {
	t.Parallel()

	path := testutil.WriteContainer(t, t.TempDir(), "in.sau", []byte(exampleContainer[:38]))
	summary, err := Inspect(path)
	require.NoError(t, err)
	assert.True(t, summary.Truncated())
	assert.Zero(t, summary.TrailingBytes())
}

func TestInspect_TrailingBytes(t *testing.T) {
	t.Parallel()

	path := testutil.WriteContainer(t, t.TempDir(), "in.sau", []byte(exampleContainer+"xyz"))
	summary, err := Inspect(path)
	require.NoError(t, err)
	assert.False(t, summary.Truncated())
	assert.Equal(t, uint64(3), summary.TrailingBytes())
}

func TestInspect_SkippedRecords(t *testing.T) {
	t.Parallel()

	data := testutil.Container("|a.txt,644,2||a,b||b.txt,644,x|", "hi")
	path := testutil.WriteContainer(t, t.TempDir(), "in.sau", data)
	summary, err := Inspect(path)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Table.Len())
	require.Len(t, summary.Skipped, 2)
	assert.Equal(t, "a,b", summary.Skipped[0].Token)
	assert.ErrorIs(t, summary.Skipped[1], ErrInvalidRecord)
	assert.Equal(t, uint64(len(data)), summary.HeaderSize+summary.ContentSize)
}

func TestInspect_Errors(t *testing.T) {
	t.Parallel()

	_, err := Inspect(filepath.Join(t.TempDir(), "missing.sau"))
	require.ErrorIs(t, err, ErrInputNotFound)

	_, err = Inspect(writeExample(t), SplitWithMaxTotalSize(10))
	require.ErrorIs(t, err, ErrSizeLimitExceeded)

	path := testutil.WriteContainer(t, t.TempDir(), "bad.sau", []byte("garbage"))
	_, err = Inspect(path)
	require.ErrorIs(t, err, ErrCorruptHeader)
}
