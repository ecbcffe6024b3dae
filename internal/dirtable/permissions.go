package dirtable

import (
	"fmt"
	"io/fs"
	"strconv"
)

// PlaceholderPermissions is recorded when the source platform exposes no
// meaningful permission bits.
const PlaceholderPermissions = "644"

const symbolicPerms = "rwxrwxrwx"

// FormatPermissions renders the permission bits of mode as three octal
// digits, e.g. "644".
func FormatPermissions(mode fs.FileMode) string {
	return fmt.Sprintf("%03o", uint32(mode.Perm()))
}

// ParsePermissions decodes a recorded permission string. It accepts octal
// ("644", "0755") and nine-character symbolic ("rw-r--r--") forms.
func ParsePermissions(s string) (fs.FileMode, error) {
	if len(s) == len(symbolicPerms) && !isOctal(s) {
		return parseSymbolic(s)
	}
	if s == "" || !isOctal(s) {
		return 0, fmt.Errorf("permissions %q are neither octal nor symbolic", s)
	}
	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil || v > 0o777 {
		return 0, fmt.Errorf("permissions %q out of range", s)
	}
	return fs.FileMode(v), nil
}

func parseSymbolic(s string) (fs.FileMode, error) {
	var mode fs.FileMode
	for i := range len(symbolicPerms) {
		switch s[i] {
		case symbolicPerms[i]:
			mode |= 1 << (8 - i)
		case '-':
		default:
			return 0, fmt.Errorf("permissions %q: unexpected %q at position %d", s, s[i], i)
		}
	}
	return mode, nil
}

func isOctal(s string) bool {
	for i := range len(s) {
		if s[i] < '0' || s[i] > '7' {
			return false
		}
	}
	return true
}
