// Package report turns a hunt record into a pre-filled investigative
// notebook document (Markdown), following the PEAK methodology with an
// ABLE hypothesis breakdown. The transformation is pure and synchronous:
// no network, no persistence.
package report

import (
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/thorcollective/hearth/internal/models"
)

// placeholder is rendered for absent optional fields so every section
// stays structurally present for downstream consumers.
const placeholder = "Not provided"

// orPlaceholder substitutes the placeholder for empty or whitespace-only
// values; anything else passes through verbatim.
func orPlaceholder(v string) string {
	if strings.TrimSpace(v) == "" {
		return placeholder
	}
	return v
}

const notebookTemplate = `# Threat Hunting Notebook: {{.Title}}

## Hunt Information

- **Hunt ID**: {{.ID}}
- **Title**: {{.Title}}
- **Category**: {{.Category}}
- **Tactic**: {{.Tactic}}
- **Submitter**: {{.Submitter}}
- **Source**: {{.Source}}

## Hypothesis

{{.Hypothesis}}

### ABLE Breakdown

- **Actor**: _describe who would perform this behaviour_
- **Behavior**: {{.Hypothesis}}
- **Location**: _where in the environment this would appear_
- **Evidence**: _data sources that would prove or disprove it_

## Why This Hunt Matters

{{.Why}}

## PEAK Phases

### Prepare

Scope the data sources, establish the baseline, and confirm the telemetry
needed for this hypothesis is available.

### Execute

Run the queries, pivot on anomalies, and separate signal from noise.

{{.Notes}}

### Act with Knowledge

Document findings, convert durable signal into detections, and feed the
results back into the catalog.

## Tags

{{.Tags}}

## References

{{.References}}
`

var tmpl = template.Must(template.New("notebook").Parse(notebookTemplate))

// view is the template input with placeholders already applied.
type view struct {
	ID         string
	Title      string
	Category   string
	Tactic     string
	Submitter  string
	Source     string
	Hypothesis string
	Why        string
	Notes      string
	Tags       string
	References string
}

// Generate renders the notebook document for one hunt. ID, Title, and
// Tactic are embedded verbatim so they survive a round trip through
// ParseHeader; all other optional fields degrade to a placeholder.
func Generate(h models.Hunt, sourceBaseURL string) (string, error) {
	v := view{
		ID:         h.ID,
		Title:      orPlaceholder(h.Title),
		Category:   orPlaceholder(h.Category),
		Tactic:     orPlaceholder(h.Tactic),
		Submitter:  orPlaceholder(h.Submitter.Name),
		Source:     placeholder,
		Hypothesis: orPlaceholder(h.Title),
		Why:        orPlaceholder(h.Why),
		Notes:      orPlaceholder(h.Notes),
		References: orPlaceholder(h.References),
		Tags:       placeholder,
	}
	if h.FilePath != "" && sourceBaseURL != "" {
		v.Source = strings.TrimRight(sourceBaseURL, "/") + "/" + h.FilePath
	}
	if len(h.Tags) > 0 {
		v.Tags = "#" + strings.Join(h.Tags, " #")
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, v); err != nil {
		return "", fmt.Errorf("report: render %s: %w", h.ID, err)
	}
	return b.String(), nil
}

// Filename returns the conventional download name for a hunt's report.
func Filename(id string) string {
	return id + "_report.md"
}

// Header holds the fields recoverable from a generated document.
type Header struct {
	ID     string
	Title  string
	Tactic string
}

var headerFieldRe = regexp.MustCompile(`(?m)^- \*\*(Hunt ID|Title|Tactic)\*\*: (.*)$`)

// ParseHeader re-derives the hunt header fields from a generated
// document. Placeholder values map back to the empty string, matching the
// original record.
func ParseHeader(doc string) Header {
	var h Header
	for _, m := range headerFieldRe.FindAllStringSubmatch(doc, -1) {
		val := strings.TrimSpace(m[2])
		if val == placeholder {
			val = ""
		}
		switch m[1] {
		case "Hunt ID":
			if h.ID == "" {
				h.ID = val
			}
		case "Title":
			if h.Title == "" {
				h.Title = val
			}
		case "Tactic":
			if h.Tactic == "" {
				h.Tactic = val
			}
		}
	}
	return h
}
