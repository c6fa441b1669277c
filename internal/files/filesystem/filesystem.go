package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// FileSystemProvider reads specifications and writes generated artifacts.
type FileSystemProvider interface {
	// ReadFile reads a specific file at the given path
	ReadFile(path string) ([]byte, error)

	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)

	// WriteFile replaces the content of the file at path, creating it if needed.
	// The parent directory must exist.
	WriteFile(path string, data []byte) error

	// MkdirAll creates the directory and any missing parents.
	MkdirAll(path string) error
}
