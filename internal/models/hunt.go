// Package models defines the domain types for the HEARTH hunts catalog.
package models

import "strings"

// Hunt categories. The leading letter of a hunt id maps to its category:
// F → Flames, E → Embers, A → Alchemy.
const (
	CategoryFlames  = "Flames"
	CategoryEmbers  = "Embers"
	CategoryAlchemy = "Alchemy"
)

// Categories lists all hunt categories in display order.
var Categories = []string{CategoryFlames, CategoryEmbers, CategoryAlchemy}

// CanonicalTactics is the canonical list of MITRE ATT&CK tactic names used
// for tactic extraction and submission hints. Order matters: extraction
// picks the first name found as a substring of a message.
var CanonicalTactics = []string{
	"Initial Access",
	"Execution",
	"Persistence",
	"Privilege Escalation",
	"Defense Evasion",
	"Credential Access",
	"Discovery",
	"Lateral Movement",
	"Collection",
	"Command and Control",
	"Exfiltration",
	"Impact",
}

// CategoryForID returns the category implied by a hunt id's prefix letter,
// or empty string when the prefix is not recognised.
func CategoryForID(id string) string {
	if id == "" {
		return ""
	}
	switch id[0] {
	case 'F', 'f':
		return CategoryFlames
	case 'E', 'e':
		return CategoryEmbers
	case 'A', 'a':
		return CategoryAlchemy
	}
	return ""
}

// Submitter identifies who contributed a hunt.
type Submitter struct {
	Name string `json:"name"`
	Link string `json:"link,omitempty"`
}

// Hunt represents one entry in the hunts catalog, parsed from a hunt
// Markdown file. ID, Category, and Title are always present; everything
// else is optional and consumers must degrade gracefully when absent.
type Hunt struct {
	ID         string    `json:"id"`
	Category   string    `json:"category"`
	Title      string    `json:"title"`
	Tactic     string    `json:"tactic,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	Why        string    `json:"why,omitempty"`
	References string    `json:"references,omitempty"`
	Tags       []string  `json:"tags,omitempty"`
	Submitter  Submitter `json:"submitter"`
	FilePath   string    `json:"file_path,omitempty"`
}

// Tactics splits the comma-separated tactic field into trimmed names.
// A missing tactic field yields nil.
func (h *Hunt) Tactics() []string {
	if h.Tactic == "" {
		return nil
	}
	var out []string
	for _, t := range strings.Split(h.Tactic, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
