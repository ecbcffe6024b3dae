//go:build unix

package platform

import (
	"io/fs"
	"os"
)

// Permissions extracts the permission bits of a source file.
// On Unix systems the mode bits are always meaningful.
func Permissions(info fs.FileInfo) (fs.FileMode, bool) {
	return info.Mode().Perm(), true
}

// ApplyPermissions sets the permission bits of the file at path.
func ApplyPermissions(path string, mode fs.FileMode) error {
	return os.Chmod(path, mode.Perm())
}
