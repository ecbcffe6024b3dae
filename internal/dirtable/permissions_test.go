package dirtable

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPermissions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "644", FormatPermissions(0o644))
	assert.Equal(t, "755", FormatPermissions(0o755|fs.ModeSetuid))
	assert.Equal(t, "000", FormatPermissions(0))
	assert.Equal(t, "600", FormatPermissions(fs.ModeDir|0o600))
}

func TestParsePermissions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want fs.FileMode
	}{
		{"644", 0o644},
		{"0755", 0o755},
		{"000", 0},
		{"rw-r--r--", 0o644},
		{"rwxr-x---", 0o750},
		{"---------", 0},
	}
	for _, tt := range tests {
		got, err := ParsePermissions(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParsePermissions_Rejects(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "abc", "998", "7777", "rwxrwxrwz", "rw-r--r-"} {
		_, err := ParsePermissions(in)
		assert.Error(t, err, in)
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	t.Parallel()

	for mode := fs.FileMode(0); mode <= 0o777; mode++ {
		got, err := ParsePermissions(FormatPermissions(mode))
		require.NoError(t, err)
		require.Equal(t, mode, got)
	}
}
