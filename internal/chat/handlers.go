package chat

import (
	"fmt"
	"strings"

	"github.com/thorcollective/hearth/internal/catalog"
	"github.com/thorcollective/hearth/internal/models"
)

const (
	searchLimit  = 5
	tacticLimit  = 3
	keywordLimit = 5
)

const notFoundReply = "I couldn't find any hunts matching that. Try a tactic name " +
	"(like Persistence or Defense Evasion), a tag, or a hunt id."

var fallbackSuggestions = []string{
	"Try asking about a tactic, e.g. \"show me Persistence hunts\".",
	"Ask \"how many hunts do we have\" for catalog statistics.",
	"Search by keyword, e.g. \"find hunts related to DNS\".",
	"Ask about the PEAK framework to learn how hunts are structured.",
}

func (r *Responder) handleSearch(snap *catalog.Snapshot, message string) Response {
	results := catalog.Search(snap, message, 0)
	if len(results) == 0 {
		return Response{Intent: IntentSearch, Reply: notFoundReply}
	}
	total := len(results)
	if total > searchLimit {
		results = results[:searchLimit]
	}
	reply := fmt.Sprintf("Found %d hunt(s):\n%s", total, summarise(results))
	if total > searchLimit {
		reply += fmt.Sprintf("\nShowing the first %d of %d.", searchLimit, total)
	}
	return Response{Intent: IntentSearch, Reply: reply, Hunts: results}
}

func (r *Responder) handleTactic(snap *catalog.Snapshot, message string) Response {
	tactic := ExtractTactic(message)
	var hits []models.Hunt
	for _, h := range snap.Hunts() {
		if strings.Contains(strings.ToLower(h.Tactic), strings.ToLower(tactic)) {
			hits = append(hits, h)
			if len(hits) == tacticLimit {
				break
			}
		}
	}
	if len(hits) == 0 {
		return Response{
			Intent: IntentTactic,
			Reply:  fmt.Sprintf("No hunts found for the %s tactic yet.", tactic),
		}
	}
	reply := fmt.Sprintf("Hunts covering %s:\n%s", tactic, summarise(hits))
	return Response{Intent: IntentTactic, Reply: reply, Hunts: hits}
}

func (r *Responder) handleFramework(_ *catalog.Snapshot, _ string) Response {
	return Response{Intent: IntentFramework, Reply: frameworkGuidance}
}

func (r *Responder) handleStats(snap *catalog.Snapshot, _ string) Response {
	st := catalog.Stats(snap)
	var b strings.Builder
	fmt.Fprintf(&b, "The catalog holds %d hunts:\n", st.Total)
	for _, c := range models.Categories {
		fmt.Fprintf(&b, "- %s: %d\n", c, st.Categories[c])
	}
	if len(st.TopTactics) > 0 {
		b.WriteString("Top tactics:\n")
		for _, tc := range st.TopTactics {
			fmt.Fprintf(&b, "- %s (%d)\n", tc.Tactic, tc.Count)
		}
	}
	fmt.Fprintf(&b, "Contributed by %d distinct submitters.", st.Submitters)
	return Response{Intent: IntentStats, Reply: b.String()}
}

func (r *Responder) handleHelp(_ *catalog.Snapshot, _ string) Response {
	return Response{Intent: IntentHelp, Reply: helpText}
}

// handleFallback extracts keywords from the message (punctuation stripped,
// lowercased, stopwords and short tokens removed) and matches them as
// substrings against title, tactic, and tags. No hits yields a random
// suggestion.
func (r *Responder) handleFallback(snap *catalog.Snapshot, message string) Response {
	keywords := ExtractKeywords(message)

	var hits []models.Hunt
	seen := make(map[string]struct{})
	for _, h := range snap.Hunts() {
		hay := strings.ToLower(h.Title + " " + h.Tactic + " " + strings.Join(h.Tags, " "))
		for _, kw := range keywords {
			if strings.Contains(hay, kw) {
				if _, dup := seen[h.ID]; !dup {
					seen[h.ID] = struct{}{}
					hits = append(hits, h)
				}
				break
			}
		}
		if len(hits) == keywordLimit {
			break
		}
	}

	if len(hits) == 0 {
		return Response{Intent: IntentFallback, Reply: r.pick(fallbackSuggestions)}
	}
	reply := fmt.Sprintf("These hunts might be relevant:\n%s", summarise(hits))
	return Response{Intent: IntentFallback, Reply: reply, Hunts: hits}
}

// stopwords dropped during fallback keyword extraction, alongside any
// token of length <= 2.
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "was": {}, "were": {},
	"this": {}, "that": {}, "with": {}, "have": {}, "has": {}, "had": {},
	"what": {}, "when": {}, "where": {}, "which": {}, "who": {}, "why": {},
	"how": {}, "can": {}, "could": {}, "would": {}, "should": {},
	"you": {}, "your": {}, "about": {}, "any": {}, "all": {}, "some": {},
	"hunt": {}, "hunts": {}, "hunting": {},
}

// ExtractKeywords strips punctuation, lowercases, splits on whitespace,
// and removes stopwords and tokens of length <= 2.
func ExtractKeywords(message string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '\t', r == '\n':
			return r
		}
		return ' '
	}, strings.ToLower(message))

	var out []string
	for _, tok := range strings.Fields(cleaned) {
		if len(tok) <= 2 {
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func summarise(hunts []models.Hunt) string {
	var b strings.Builder
	for _, h := range hunts {
		fmt.Fprintf(&b, "- %s: %s", h.ID, h.Title)
		if h.Tactic != "" {
			fmt.Fprintf(&b, " [%s]", h.Tactic)
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}
