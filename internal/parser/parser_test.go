package parser

import (
	"testing"
)

const sampleHunt = `# Scheduled Task Persistence

| Hunt # | Hypothesis | Tactic | Notes | Tags | Submitter |
|--------|------------|--------|-------|------|-----------|
| F001 | Adversaries create scheduled tasks for persistence | Persistence | Focus on schtasks.exe | #persistence #windows | [Jane Hunter](https://example.com/jane) |

## Why

- Scheduled tasks survive reboots.
- Commonly abused by commodity malware.

## References

- https://attack.mitre.org/techniques/T1053/
`

func TestParse_FullHunt(t *testing.T) {
	h := Parse([]byte(sampleHunt), "F001", "Flames")
	if h.ID != "F001" {
		t.Errorf("id = %q, want F001", h.ID)
	}
	if h.Title != "Adversaries create scheduled tasks for persistence" {
		t.Errorf("title = %q", h.Title)
	}
	if h.Tactic != "Persistence" {
		t.Errorf("tactic = %q", h.Tactic)
	}
	if h.Notes != "Focus on schtasks.exe" {
		t.Errorf("notes = %q", h.Notes)
	}
	if len(h.Tags) != 2 || h.Tags[0] != "persistence" || h.Tags[1] != "windows" {
		t.Errorf("tags = %v, want [persistence windows]", h.Tags)
	}
	if h.Submitter.Name != "Jane Hunter" || h.Submitter.Link != "https://example.com/jane" {
		t.Errorf("submitter = %+v", h.Submitter)
	}
	if h.Why == "" || h.References == "" {
		t.Errorf("why = %q, references = %q, want non-empty", h.Why, h.References)
	}
}

func TestParse_IdeaHeaderVariant(t *testing.T) {
	md := "| Hunt # | Idea | Tactic | Notes | Tags | Submitter |\n|-|-|-|-|-|-|\n| E042 | Beacons over DNS | Command and Control | | #dns | alice |\n"
	h := Parse([]byte(md), "E042", "Embers")
	if h.Title != "Beacons over DNS" {
		t.Errorf("title = %q", h.Title)
	}
	if h.Submitter.Name != "alice" || h.Submitter.Link != "" {
		t.Errorf("submitter = %+v", h.Submitter)
	}
}

func TestParse_BlankOptionalCellsKeepColumns(t *testing.T) {
	md := "| Hunt # | Hypothesis | Tactic | Notes | Tags | Submitter |\n|-|-|-|-|-|-|\n| F020 | Rare parent-child pairs | Execution | | | carol |\n"
	h := Parse([]byte(md), "F020", "Flames")
	if h.Notes != "" || len(h.Tags) != 0 {
		t.Errorf("blank cells should stay empty, got notes=%q tags=%v", h.Notes, h.Tags)
	}
	if h.Title != "Rare parent-child pairs" || h.Tactic != "Execution" {
		t.Errorf("columns shifted: title=%q tactic=%q", h.Title, h.Tactic)
	}
	if h.Submitter.Name != "carol" {
		t.Errorf("submitter = %+v, want carol", h.Submitter)
	}
}

func TestParse_EmphasisStripped(t *testing.T) {
	md := "| Hunt # | Hypothesis | Tactic | Notes | Tags | Submitter |\n|-|-|-|-|-|-|\n| **A003** | **Model poisoning** | Impact | n/a | #ml | bob |\n"
	h := Parse([]byte(md), "A003", "Alchemy")
	if h.ID != "A003" {
		t.Errorf("id = %q, want A003 without emphasis", h.ID)
	}
	if h.Title != "Model poisoning" {
		t.Errorf("title = %q", h.Title)
	}
}

func TestParse_MissingTableFallsBack(t *testing.T) {
	h := Parse([]byte("# Just prose, no table.\n"), "F010", "Flames")
	if h.ID != "F010" || h.Category != "Flames" {
		t.Errorf("fallback record = %+v", h)
	}
	if h.Title != "" || len(h.Tags) != 0 {
		t.Errorf("expected empty optional fields, got %+v", h)
	}
}

func TestParse_WhySectionStopsAtNextHeading(t *testing.T) {
	md := "## Why\nBecause reasons.\n## References\n- ref one\n"
	h := Parse([]byte(md), "F011", "Flames")
	if h.Why != "Because reasons." {
		t.Errorf("why = %q", h.Why)
	}
	if h.References != "- ref one" {
		t.Errorf("references = %q", h.References)
	}
}

func TestParseTags_IgnoresBareTokens(t *testing.T) {
	tags := parseTags("#linux cron #t1053")
	if len(tags) != 2 || tags[0] != "linux" || tags[1] != "t1053" {
		t.Errorf("tags = %v, want [linux t1053]", tags)
	}
}
