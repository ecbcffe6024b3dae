//go:build !unix

package platform

import (
	"io/fs"
	"os"
)

// Permissions reports that no meaningful permission bits are available.
// Callers record a placeholder instead.
func Permissions(fs.FileInfo) (fs.FileMode, bool) {
	return 0, false
}

// ApplyPermissions sets what the platform supports of mode on the file at
// path. On Windows only the owner write bit is honored.
func ApplyPermissions(path string, mode fs.FileMode) error {
	return os.Chmod(path, mode.Perm())
}
