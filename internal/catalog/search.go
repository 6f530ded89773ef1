package catalog

import (
	"strings"

	"github.com/thorcollective/hearth/internal/models"
)

// Search runs the standalone free-text search: every record whose
// concatenated fields contain q as a case-insensitive substring, with a
// stable two-bucket partition that ranks title matches ahead of matches
// found elsewhere. There is no numeric scoring. limit <= 0 means no limit.
func Search(s *Snapshot, q string, limit int) []models.Hunt {
	q = strings.TrimSpace(q)
	lower := strings.ToLower(q)

	var titleHits, otherHits []models.Hunt
	for i := range s.hunts {
		h := &s.hunts[i]
		if !Matches(h, q) {
			continue
		}
		if q != "" && strings.Contains(strings.ToLower(h.Title), lower) {
			titleHits = append(titleHits, *h)
		} else {
			otherHits = append(otherHits, *h)
		}
	}
	SortHunts(titleHits, false)
	SortHunts(otherHits, false)

	out := append(titleHits, otherHits...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
