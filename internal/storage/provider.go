// Package storage defines the article library file-system abstraction.
//
// The library is read-only from the application's perspective: articles are
// authored out of band and picked up on the next load.
package storage

import "time"

// FileInfo describes one article source file in the library.
type FileInfo struct {
	// Path is the file path relative to the library root.
	Path string
	// UpdatedAt is the file modification time.
	UpdatedAt time.Time
}

// Provider is the interface for library file operations.
type Provider interface {
	// List returns every article source file (.md or .html) under dir
	// (relative to the library root), sorted by path.
	List(dir string) ([]FileInfo, error)
	// Read returns the raw bytes of the file at path (relative to the
	// library root).
	Read(path string) ([]byte, error)
}
