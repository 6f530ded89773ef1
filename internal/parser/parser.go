// Package parser extracts hunt records from HEARTH hunt Markdown files.
//
// A hunt file carries its core fields in a Markdown table whose header row
// contains "Hunt", "Idea" or "Hypothesis", "Tactic", "Notes", "Tags", and
// "Submitter". The data row sits two lines below the header (past the
// separator row). Narrative sections follow as "## Why" and "## References".
package parser

import (
	"regexp"
	"strings"

	"github.com/thorcollective/hearth/internal/models"
)

var (
	submitterLinkRe = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	whyRe           = regexp.MustCompile(`(?ms)^## Why\s*\n(.*?)(?:\n##|\z)`)
	referencesRe    = regexp.MustCompile(`(?ms)^## References\s*\n(.*?)(?:\n##|\z)`)
)

// requiredHeaders must all appear in the table header line, alongside
// either "Idea" or "Hypothesis" (the column was renamed at some point and
// both variants exist in the wild).
var requiredHeaders = []string{"Hunt", "Tactic", "Notes", "Tags", "Submitter"}

// Parse extracts a Hunt from raw hunt Markdown. fallbackID is used when the
// table is missing or its id cell is empty (conventionally the file stem).
// Malformed files yield a partially filled record, never an error: a broken
// table must not abort a vault sync.
func Parse(data []byte, fallbackID, category string) *models.Hunt {
	content := string(data)
	lines := strings.Split(content, "\n")

	h := &models.Hunt{
		ID:       fallbackID,
		Category: category,
	}

	if idx := findTableHeader(lines); idx >= 0 && idx+2 < len(lines) {
		cells := splitCells(lines[idx+2])
		if len(cells) >= 6 {
			if id := cleanEmphasis(cells[0]); id != "" {
				h.ID = id
			}
			h.Title = cleanEmphasis(cells[1])
			h.Tactic = cleanEmphasis(cells[2])
			h.Notes = cleanEmphasis(cells[3])
			h.Tags = parseTags(cells[4])
			h.Submitter = parseSubmitter(cleanEmphasis(cells[5]))
		}
	}

	h.Why = extractSection(whyRe, content)
	h.References = extractSection(referencesRe, content)
	return h
}

// findTableHeader returns the index of the table header line, or -1.
func findTableHeader(lines []string) int {
	for i, line := range lines {
		ok := true
		for _, want := range requiredHeaders {
			if !strings.Contains(line, want) {
				ok = false
				break
			}
		}
		if ok && (strings.Contains(line, "Idea") || strings.Contains(line, "Hypothesis")) {
			return i
		}
	}
	return -1
}

// splitCells splits a table row on pipes, trimming each cell. Only the
// empties produced by the boundary pipes are dropped; interior empty
// cells stay in place so columns keep their positions when an optional
// field is blank.
func splitCells(row string) []string {
	row = strings.TrimSpace(row)
	row = strings.TrimPrefix(row, "|")
	row = strings.TrimSuffix(row, "|")
	cells := strings.Split(row, "|")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

func cleanEmphasis(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "**", ""))
}

// parseTags splits a space-separated run of #hashtags into bare tag names.
// Tokens without a leading # are ignored, matching the original dataset
// generator.
func parseTags(s string) []string {
	var out []string
	for _, tok := range strings.Fields(cleanEmphasis(s)) {
		if strings.HasPrefix(tok, "#") {
			if tag := strings.TrimPrefix(tok, "#"); tag != "" {
				out = append(out, tag)
			}
		}
	}
	return out
}

// parseSubmitter handles both the Markdown link form "[name](url)" and a
// plain name.
func parseSubmitter(s string) models.Submitter {
	if s == "" {
		return models.Submitter{}
	}
	if m := submitterLinkRe.FindStringSubmatch(s); m != nil {
		return models.Submitter{
			Name: strings.TrimSpace(m[1]),
			Link: strings.TrimSpace(m[2]),
		}
	}
	return models.Submitter{Name: strings.TrimSpace(s)}
}

func extractSection(re *regexp.Regexp, content string) string {
	if m := re.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
