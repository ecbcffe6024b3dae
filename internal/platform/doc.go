// Package platform isolates the OS-specific handling of file permission bits.
package platform
