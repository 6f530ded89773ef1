package index

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/thorcollective/hearth/internal/models"
)

// Upsert inserts or replaces the hunt parsed from filePath.
func (db *DB) Upsert(filePath, checksum string, h *models.Hunt) error {
	tagsJSON, _ := json.Marshal(h.Tags)
	_, err := db.conn.Exec(`
		INSERT INTO hunts (file_path, hunt_id, category, title, tactic, notes, why, refs,
			tags, submitter_name, submitter_link, checksum, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(file_path) DO UPDATE SET
			hunt_id        = excluded.hunt_id,
			category       = excluded.category,
			title          = excluded.title,
			tactic         = excluded.tactic,
			notes          = excluded.notes,
			why            = excluded.why,
			refs           = excluded.refs,
			tags           = excluded.tags,
			submitter_name = excluded.submitter_name,
			submitter_link = excluded.submitter_link,
			checksum       = excluded.checksum,
			updated_at     = excluded.updated_at
	`, filePath, h.ID, h.Category, h.Title, h.Tactic, h.Notes, h.Why, h.References,
		string(tagsJSON), h.Submitter.Name, h.Submitter.Link, checksum, time.Now())
	if err != nil {
		return fmt.Errorf("index: upsert %s: %w", filePath, err)
	}
	return nil
}

// Delete removes the hunt row for filePath.
func (db *DB) Delete(filePath string) error {
	if _, err := db.conn.Exec(`DELETE FROM hunts WHERE file_path = ?`, filePath); err != nil {
		return fmt.Errorf("index: delete %s: %w", filePath, err)
	}
	return nil
}

// AllChecksums returns a file_path → checksum map for every indexed hunt.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT file_path, checksum FROM hunts`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}

// Snapshot loads every indexed hunt ordered by hunt id. The returned slice
// is freshly allocated; callers own it.
func (db *DB) Snapshot() ([]models.Hunt, error) {
	rows, err := db.conn.Query(`
		SELECT file_path, hunt_id, category, title, tactic, notes, why, refs,
			tags, submitter_name, submitter_link
		FROM hunts
		ORDER BY hunt_id
	`)
	if err != nil {
		return nil, fmt.Errorf("index: snapshot: %w", err)
	}
	defer rows.Close()

	var out []models.Hunt
	for rows.Next() {
		var h models.Hunt
		var tagsJSON string
		if err := rows.Scan(&h.FilePath, &h.ID, &h.Category, &h.Title, &h.Tactic,
			&h.Notes, &h.Why, &h.References, &tagsJSON,
			&h.Submitter.Name, &h.Submitter.Link); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(tagsJSON), &h.Tags); err != nil {
			h.Tags = nil
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
