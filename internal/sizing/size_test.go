package sizing

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTest = errors.New("test")

func TestToInt(t *testing.T) {
	t.Parallel()

	n, err := ToInt(42, errTest)
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	_, err = ToInt(math.MaxUint64, errTest)
	require.ErrorIs(t, err, errTest)
}

func TestToInt64(t *testing.T) {
	t.Parallel()

	n, err := ToInt64(math.MaxInt64, errTest)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), n)

	_, err = ToInt64(math.MaxInt64+1, errTest)
	require.ErrorIs(t, err, errTest)
}

func TestFromInt64(t *testing.T) {
	t.Parallel()

	n, err := FromInt64(7, errTest)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), n)

	_, err = FromInt64(-1, errTest)
	require.ErrorIs(t, err, errTest)
}

func TestAddUint64(t *testing.T) {
	t.Parallel()

	sum, ok := AddUint64(1, 2)
	assert.True(t, ok)
	assert.Equal(t, uint64(3), sum)

	_, ok = AddUint64(math.MaxUint64, 1)
	assert.False(t, ok)
}

func TestCheckLimit(t *testing.T) {
	t.Parallel()

	require.NoError(t, CheckLimit("container", 10, 10, errTest))
	require.NoError(t, CheckLimit("container", math.MaxUint64, 0, errTest))

	err := CheckLimit("container", 3<<20, 2<<20, errTest)
	require.ErrorIs(t, err, errTest)
	assert.Contains(t, err.Error(), "container is 3.0 MiB, limit is 2.0 MiB")
}
