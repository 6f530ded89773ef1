// Package submit validates hunt submissions and builds the pre-filled
// issue-creation URL for the upstream repository. The catalog owns no
// server round-trip here: the caller opens the returned URL and the
// submission continues in the issue workflow.
package submit

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// issueLabel tags submissions for the intake automation.
const issueLabel = "hunt-submission"

var tagRe = regexp.MustCompile(`^[a-z0-9_.-]+$`)

// Submission is a hunt proposal collected from the submission form.
type Submission struct {
	Hypothesis string   `json:"hypothesis"`
	Tactic     string   `json:"tactic"`
	Notes      string   `json:"notes,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	References string   `json:"references,omitempty"`
	Submitter  string   `json:"submitter,omitempty"`
	Link       string   `json:"link,omitempty"` // submitter profile URL
}

// Validate checks the submission. Hypothesis and tactic are required;
// tactic values outside the canonical list are accepted (the vocabulary
// is convention, not enforcement), but a submitter link must be a proper
// http(s) URL when present.
func (s Submission) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Hypothesis, validation.Required, validation.Length(10, 1000)),
		validation.Field(&s.Tactic, validation.Required, validation.Length(3, 200)),
		validation.Field(&s.Notes, validation.Length(0, 2000)),
		validation.Field(&s.Link, validation.By(optionalHTTPURL)),
	)
}

func optionalHTTPURL(value interface{}) error {
	raw, _ := value.(string)
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("must be an http(s) URL")
	}
	return nil
}

// NormalizeTags lowercases tags, strips a leading #, and drops anything
// that is not a plain [a-z0-9_.-] token. Duplicates are removed, first
// occurrence wins.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	var out []string
	for _, t := range tags {
		clean := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(t)), "#")
		if clean == "" || !tagRe.MatchString(clean) {
			continue
		}
		if _, dup := seen[clean]; dup {
			continue
		}
		seen[clean] = struct{}{}
		out = append(out, clean)
	}
	return out
}

// IssueURL builds the percent-encoded new-issue URL for repoURL (e.g.
// "https://github.com/THORCollective/HEARTH") carrying the submission as
// a pre-filled title, body, and label.
func IssueURL(repoURL string, s Submission) string {
	title := "[Hunt Submission] " + s.Hypothesis

	var body strings.Builder
	body.WriteString("### Hunt Hypothesis\n\n" + s.Hypothesis + "\n\n")
	body.WriteString("### Tactic\n\n" + s.Tactic + "\n\n")
	if s.Notes != "" {
		body.WriteString("### Notes\n\n" + s.Notes + "\n\n")
	}
	if tags := NormalizeTags(s.Tags); len(tags) > 0 {
		body.WriteString("### Tags\n\n#" + strings.Join(tags, " #") + "\n\n")
	}
	if s.References != "" {
		body.WriteString("### References\n\n" + s.References + "\n\n")
	}
	if s.Submitter != "" {
		if s.Link != "" {
			fmt.Fprintf(&body, "### Submitter\n\n[%s](%s)\n", s.Submitter, s.Link)
		} else {
			body.WriteString("### Submitter\n\n" + s.Submitter + "\n")
		}
	}

	q := url.Values{}
	q.Set("title", title)
	q.Set("body", body.String())
	q.Set("labels", issueLabel)
	return strings.TrimRight(repoURL, "/") + "/issues/new?" + q.Encode()
}
