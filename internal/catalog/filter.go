package catalog

import (
	"sort"
	"strconv"
	"strings"

	"github.com/thorcollective/hearth/internal/models"
)

// Any is the selection value that matches every record. An empty string is
// treated the same way.
const Any = "any"

// Query describes one filtered, sorted view over the catalog. All four
// criteria are ANDed; empty/"any" selections match everything.
type Query struct {
	Search   string
	Category string
	Tactic   string
	Tag      string
	Desc     bool
}

// Matches reports whether the free-text query appears, case-insensitively,
// in the concatenation of the hunt's id, title, tactic, notes, tags, and
// submitter name. The empty query matches every record.
func Matches(h *models.Hunt, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(haystack(h), strings.ToLower(query))
}

func haystack(h *models.Hunt) string {
	parts := []string{h.ID, h.Title, h.Tactic, h.Notes, strings.Join(h.Tags, " "), h.Submitter.Name}
	return strings.ToLower(strings.Join(parts, " "))
}

// HasTactic reports whether the hunt's comma-separated tactic field
// contains the given name after split-and-trim. A missing tactic field
// never matches a concrete selection.
func HasTactic(h *models.Hunt, tactic string) bool {
	for _, t := range h.Tactics() {
		if strings.EqualFold(t, tactic) {
			return true
		}
	}
	return false
}

// HasTag reports list membership of tag in the hunt's tags.
func HasTag(h *models.Hunt, tag string) bool {
	for _, t := range h.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

func anySelection(v string) bool {
	return v == "" || strings.EqualFold(v, Any)
}

// Filter derives the ordered subset of the snapshot selected by q. The
// result is a newly constructed slice; the snapshot is never mutated.
func Filter(s *Snapshot, q Query) []models.Hunt {
	var out []models.Hunt
	for i := range s.hunts {
		h := &s.hunts[i]
		if !anySelection(q.Category) && !strings.EqualFold(h.Category, q.Category) {
			continue
		}
		if !anySelection(q.Tactic) && !HasTactic(h, q.Tactic) {
			continue
		}
		if !anySelection(q.Tag) && !HasTag(h, q.Tag) {
			continue
		}
		if !Matches(h, q.Search) {
			continue
		}
		out = append(out, *h)
	}
	SortHunts(out, q.Desc)
	return out
}

// sortKey is the composite sort key parsed from a hunt id: the leading
// letter and the numeric suffix. Ids that do not match the letter+digits
// shape get num = -1, which sorts after every parsed number so the order
// stays total and stable.
type sortKey struct {
	letter byte
	num    int
}

func keyFor(id string) sortKey {
	k := sortKey{num: -1}
	if id == "" {
		return k
	}
	k.letter = upperByte(id[0])
	if n, err := strconv.Atoi(id[1:]); err == nil {
		k.num = n
	}
	return k
}

func upperByte(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

// less orders keys letter-first, then numerically so F9 sorts before F10.
// Unparsable suffixes (num == -1) sort after any parsed number.
func (k sortKey) less(o sortKey) bool {
	if k.letter != o.letter {
		return k.letter < o.letter
	}
	switch {
	case k.num == -1 && o.num == -1:
		return false
	case k.num == -1:
		return false
	case o.num == -1:
		return true
	}
	return k.num < o.num
}

// SortHunts sorts in place by the composite id key: primary on the leading
// letter, secondary on the numeric suffix. desc reverses both levels
// together, not independently.
func SortHunts(hunts []models.Hunt, desc bool) {
	sort.SliceStable(hunts, func(i, j int) bool {
		a, b := keyFor(hunts[i].ID), keyFor(hunts[j].ID)
		if desc {
			return b.less(a)
		}
		return a.less(b)
	})
}
