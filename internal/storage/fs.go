package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/thorcollective/hearth/internal/apperr"
	"github.com/thorcollective/hearth/internal/checksum"
)

// FS implements Provider backed by the local file system. Only the
// configured category directories are scanned, and files on the exclude
// list (e.g. the category README) are skipped.
type FS struct {
	root       string // absolute path to vault directory
	categories []string
	excluded   map[string]struct{}
}

// NewFS creates a new FS provider rooted at the given directory.
// The directory must already exist.
func NewFS(root string, categories, excluded []string) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage: root is not a directory: %s", abs)
	}
	ex := make(map[string]struct{}, len(excluded))
	for _, name := range excluded {
		ex[strings.ToLower(name)] = struct{}{}
	}
	return &FS{root: abs, categories: categories, excluded: ex}, nil
}

// safePath resolves a relative path against the vault root and rejects
// any result that escapes it (directory traversal).
func (f *FS) safePath(rel string) (string, error) {
	cleaned := filepath.Clean(rel)
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("storage: absolute paths not allowed: %s", rel)
	}
	joined := filepath.Join(f.root, cleaned)
	abs, err := filepath.Abs(joined)
	if err != nil {
		return "", fmt.Errorf("storage: resolve path: %w", err)
	}
	if !strings.HasPrefix(abs, f.root+string(os.PathSeparator)) && abs != f.root {
		return "", fmt.Errorf("storage: path escapes vault root: %s", rel)
	}
	return abs, nil
}

// List walks each category directory and returns metadata for every .md
// file not on the exclude list. A missing category directory is skipped,
// not an error: vaults grow categories over time.
func (f *FS) List() ([]FileMetadata, error) {
	var out []FileMetadata
	for _, category := range f.categories {
		base := filepath.Join(f.root, category)
		if _, err := os.Stat(base); os.IsNotExist(err) {
			continue
		}
		err := filepath.WalkDir(base, func(p string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
				return nil
			}
			if _, skip := f.excluded[strings.ToLower(d.Name())]; skip {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return err
			}
			data, err := os.ReadFile(p)
			if err != nil {
				return err
			}
			rel, _ := filepath.Rel(f.root, p)
			out = append(out, FileMetadata{
				Path:      filepath.ToSlash(rel),
				Category:  category,
				Checksum:  checksum.Sum(data),
				UpdatedAt: info.ModTime(),
			})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("storage: list %s: %w", category, err)
		}
	}
	return out, nil
}

// Read returns the raw bytes of a vault file.
func (f *FS) Read(path string) ([]byte, error) {
	abs, err := f.safePath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("storage: read %s: %w", path, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("storage: read %s: %w", path, err)
	}
	return data, nil
}

// CategoryFor returns the category directory a relative path belongs to,
// or empty string when it is not under a known category.
func (f *FS) CategoryFor(rel string) string {
	first := strings.SplitN(filepath.ToSlash(rel), "/", 2)[0]
	for _, c := range f.categories {
		if c == first {
			return c
		}
	}
	return ""
}

var _ Provider = (*FS)(nil)
