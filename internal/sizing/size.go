// Package sizing provides overflow-safe size arithmetic and limit checks.
package sizing

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// ToInt converts a uint64 to int, returning overflowErr if it doesn't fit.
func ToInt(size uint64, overflowErr error) (int, error) {
	if size > uint64(math.MaxInt) {
		return 0, overflowErr
	}
	return int(size), nil
}

// ToInt64 converts a uint64 to int64, returning overflowErr if it doesn't fit.
func ToInt64(size uint64, overflowErr error) (int64, error) {
	if size > uint64(math.MaxInt64) {
		return 0, overflowErr
	}
	return int64(size), nil
}

// FromInt64 converts a non-negative int64 to uint64, returning
// negativeErr for negative values.
func FromInt64(size int64, negativeErr error) (uint64, error) {
	if size < 0 {
		return 0, negativeErr
	}
	return uint64(size), nil
}

// AddUint64 adds two uint64 values, returning (result, false) on overflow.
func AddUint64(a, b uint64) (uint64, bool) {
	sum := a + b
	if sum < a {
		return 0, false
	}
	return sum, true
}

// CheckLimit returns limitErr when size exceeds limit. A zero limit
// disables the check. The returned error names both values in IEC units.
func CheckLimit(what string, size, limit uint64, limitErr error) error {
	if limit == 0 || size <= limit {
		return nil
	}
	return fmt.Errorf("%w: %s is %s, limit is %s", limitErr, what, humanize.IBytes(size), humanize.IBytes(limit))
}
