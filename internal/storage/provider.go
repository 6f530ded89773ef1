// Package storage defines the hunts vault file-system abstraction.
package storage

import "time"

// FileMetadata is a lightweight description of one hunt file on disk.
type FileMetadata struct {
	Path      string    `json:"path"`     // relative to vault root, e.g. Flames/F001.md
	Category  string    `json:"category"` // top-level category directory
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Provider is the read-only interface for vault file operations. The
// catalog never writes hunt files; new hunts arrive through the upstream
// submission workflow.
type Provider interface {
	// List returns metadata for every hunt .md file in the category
	// directories under the vault root.
	List() ([]FileMetadata, error)
	// Read returns the raw bytes of the file at path (relative to vault root).
	Read(path string) ([]byte, error)
}
