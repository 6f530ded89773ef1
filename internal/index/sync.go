package index

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/thorcollective/hearth/internal/parser"
	"github.com/thorcollective/hearth/internal/storage"
)

// Change kinds reported by Sync.
const (
	ChangeCreated = "created"
	ChangeUpdated = "updated"
	ChangeDeleted = "deleted"
)

// Change describes one index mutation performed during a sync pass.
type Change struct {
	Kind   string
	Path   string
	HuntID string
}

// Sync walks the vault and brings the index up to date:
//   - new/changed hunt files are parsed and upserted
//   - files removed from disk are deleted from the index
//
// It returns the list of applied changes. Individual file failures are
// logged and skipped so one broken hunt never blocks the rest of the
// catalog.
func Sync(db HuntIndex, store storage.Provider, logger *slog.Logger) ([]Change, error) {
	metas, err := store.List()
	if err != nil {
		return nil, err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return nil, err
	}

	var changes []Change
	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Path] = struct{}{}

		prev, known := checksums[m.Path]
		if known && prev == m.Checksum {
			continue
		}

		data, err := store.Read(m.Path)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		h := parser.Parse(data, huntIDFromPath(m.Path), m.Category)
		if err := db.Upsert(m.Path, m.Checksum, h); err != nil {
			logger.Warn("sync: index failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		kind := ChangeUpdated
		if !known {
			kind = ChangeCreated
		}
		changes = append(changes, Change{Kind: kind, Path: m.Path, HuntID: h.ID})
		logger.Debug("sync: indexed", slog.String("path", m.Path), slog.String("hunt_id", h.ID))
	}

	// Remove stale entries.
	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if err := db.Delete(p); err != nil {
				logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
				continue
			}
			changes = append(changes, Change{Kind: ChangeDeleted, Path: p, HuntID: huntIDFromPath(p)})
			logger.Debug("sync: removed stale", slog.String("path", p))
		}
	}

	return changes, nil
}

// huntIDFromPath derives the fallback hunt id from the file stem,
// e.g. Flames/F001.md → F001.
func huntIDFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
