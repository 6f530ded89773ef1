package catalog

import (
	"sort"

	"github.com/thorcollective/hearth/internal/models"
)

// autoIntelBot is the automation account excluded from the contributor
// leaderboard, matching the upstream leaderboard generator.
const autoIntelBot = "hearth-auto-intel"

// TacticCount is one entry in the tactic frequency ranking.
type TacticCount struct {
	Tactic string `json:"tactic"`
	Count  int    `json:"count"`
}

// Contributor is one leaderboard row.
type Contributor struct {
	Name  string `json:"name"`
	Hunts int    `json:"hunts"`
}

// Statistics summarises the full snapshot.
type Statistics struct {
	Total      int            `json:"total"`
	Categories map[string]int `json:"categories"`
	TopTactics []TacticCount  `json:"top_tactics"`
	Submitters int            `json:"submitters"`
}

// Stats computes snapshot-wide statistics: total record count, per-category
// counts (every known category reported, zeroes included), the top-5 tactic
// frequency ranking, and the distinct submitter count by name.
func Stats(s *Snapshot) Statistics {
	st := Statistics{
		Total:      len(s.hunts),
		Categories: make(map[string]int, len(models.Categories)),
	}
	for _, c := range models.Categories {
		st.Categories[c] = 0
	}

	tacticCounts := make(map[string]int)
	submitters := make(map[string]struct{})
	for i := range s.hunts {
		h := &s.hunts[i]
		if _, known := st.Categories[h.Category]; known {
			st.Categories[h.Category]++
		}
		for _, t := range h.Tactics() {
			tacticCounts[t]++
		}
		if h.Submitter.Name != "" {
			submitters[h.Submitter.Name] = struct{}{}
		}
	}
	st.Submitters = len(submitters)
	st.TopTactics = topTactics(tacticCounts, 5)
	return st
}

// topTactics ranks tactics by count descending; ties break by name
// ascending so the ranking is deterministic.
func topTactics(counts map[string]int, n int) []TacticCount {
	out := make([]TacticCount, 0, len(counts))
	for t, c := range counts {
		out = append(out, TacticCount{Tactic: t, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tactic < out[j].Tactic
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// Leaderboard counts hunts per contributor, sorted by count descending
// (name ascending on ties), excluding the automation account.
func Leaderboard(s *Snapshot) []Contributor {
	counts := make(map[string]int)
	for i := range s.hunts {
		name := s.hunts[i].Submitter.Name
		if name == "" || name == autoIntelBot {
			continue
		}
		counts[name]++
	}
	out := make([]Contributor, 0, len(counts))
	for name, c := range counts {
		out = append(out, Contributor{Name: name, Hunts: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Hunts != out[j].Hunts {
			return out[i].Hunts > out[j].Hunts
		}
		return out[i].Name < out[j].Name
	})
	return out
}
