package dirtable

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleTable(t *testing.T) *Table {
	t.Helper()
	tbl := New()
	require.NoError(t, tbl.Append("a.txt", "644", 2))
	require.NoError(t, tbl.Append("b.txt", "644", 3))
	return tbl
}

func TestEncodeHeader_MatchesContainerLayout(t *testing.T) {
	t.Parallel()

	header, err := exampleTable(t).EncodeHeader()
	require.NoError(t, err)
	assert.Equal(t, "0000000026|a.txt,644,2||b.txt,644,3|", string(header))
}

func TestEncodeHeader_EmptyTable(t *testing.T) {
	t.Parallel()

	header, err := New().EncodeHeader()
	require.NoError(t, err)
	assert.Equal(t, "0000000000", string(header))
}

func TestUnmarshal_RoundTrip(t *testing.T) {
	t.Parallel()

	tbl := New()
	require.NoError(t, tbl.Append("report.pdf", "600", 1<<20))
	require.NoError(t, tbl.Append("empty", "644", 0))
	require.NoError(t, tbl.Append("run.sh", "rwxr-xr-x", 42))

	got, skipped, err := Unmarshal(tbl.Marshal())
	require.NoError(t, err)
	assert.Empty(t, skipped)
	if diff := cmp.Diff(tbl.Records(), got.Records()); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshal_EmptySection(t *testing.T) {
	t.Parallel()

	got, skipped, err := Unmarshal(nil)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	assert.Equal(t, 0, got.Len())
}

func TestUnmarshal_SkipsMalformedTokens(t *testing.T) {
	t.Parallel()

	section := "|a.txt,644,2||nocommas||b.txt,644||,644,1||c.txt,644,x||d.txt,644,4|"
	got, skipped, err := Unmarshal([]byte(section))
	require.NoError(t, err)

	want := []Record{
		{Name: "a.txt", Permissions: "644", Size: 2},
		{Name: "d.txt", Permissions: "644", Size: 4},
	}
	if diff := cmp.Diff(want, got.Records()); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, skipped, 4)
	wantCauses := []error{errMissingField, errMissingField, errEmptyName, errBadSize}
	for i, recErr := range skipped {
		assert.ErrorIs(t, recErr, ErrInvalidRecord)
		assert.ErrorIs(t, recErr, wantCauses[i])
		assert.Equal(t, i+1, recErr.Index)
	}
	assert.Equal(t, "nocommas", skipped[0].Token)
}

func TestUnmarshal_CommaInSizeFieldIsRejected(t *testing.T) {
	t.Parallel()

	got, skipped, err := Unmarshal([]byte("|a,b,c,1|"))
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
	require.Len(t, skipped, 1)
	assert.ErrorIs(t, skipped[0], errBadSize)
}

func TestUnmarshal_SingleDelimitedRecordsAccepted(t *testing.T) {
	t.Parallel()

	got, skipped, err := Unmarshal([]byte("|a.txt,644,2|b.txt,644,3|"))
	require.NoError(t, err)
	assert.Empty(t, skipped)
	assert.Equal(t, 2, got.Len())
}

func TestUnmarshal_UnenclosedSectionIsCorrupt(t *testing.T) {
	t.Parallel()

	for _, section := range []string{"a.txt,644,2|", "|a.txt,644,2", "garbage"} {
		_, _, err := Unmarshal([]byte(section))
		assert.ErrorIs(t, err, ErrCorruptHeader, section)
	}
}

func TestParseLength(t *testing.T) {
	t.Parallel()

	n, err := ParseLength([]byte("0000000026"))
	require.NoError(t, err)
	assert.Equal(t, uint64(26), n)

	for _, bad := range []string{"", "26", "00000000-1", "000000002a", " 000000026"} {
		_, err := ParseLength([]byte(bad))
		assert.ErrorIs(t, err, ErrCorruptHeader, bad)
	}
}

func TestReadHeader_LeavesReaderAtContent(t *testing.T) {
	t.Parallel()

	r := strings.NewReader("0000000026|a.txt,644,2||b.txt,644,3|hibye")
	section, err := ReadHeader(r, 0)
	require.NoError(t, err)
	assert.Equal(t, "|a.txt,644,2||b.txt,644,3|", string(section))

	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "hibye", string(rest))
}

func TestReadHeader_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		limit uint64
		want  error
	}{
		{"empty", "", 0, ErrCorruptHeader},
		{"short prefix", "00000", 0, ErrCorruptHeader},
		{"non-decimal prefix", "abcdefghij|a,644,1|", 0, ErrCorruptHeader},
		{"section shorter than declared", "0000000050|a,644,1|", 0, ErrCorruptHeader},
		{"section above limit", "0000000050|a,644,1|", 10, ErrSizeLimitExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ReadHeader(strings.NewReader(tt.input), tt.limit)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func TestReadHeader_PropagatesReadErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	_, err := ReadHeader(failingReader{err: boom}, 0)
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrCorruptHeader)
}

func TestMarshal_Deterministic(t *testing.T) {
	t.Parallel()

	a := exampleTable(t).Marshal()
	b := exampleTable(t).Marshal()
	assert.True(t, bytes.Equal(a, b))
}
