package chat

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/thorcollective/hearth/internal/catalog"
	"github.com/thorcollective/hearth/internal/models"
)

func testResponder() *Responder {
	return NewResponder(rand.New(rand.NewSource(1)))
}

func testSnapshot() *catalog.Snapshot {
	return catalog.NewSnapshot([]models.Hunt{
		{ID: "F001", Category: "Flames", Title: "Scheduled task persistence",
			Tactic: "Persistence", Tags: []string{"windows"},
			Submitter: models.Submitter{Name: "alice"}},
		{ID: "F002", Category: "Flames", Title: "Registry run keys",
			Tactic: "Persistence, Privilege Escalation",
			Submitter: models.Submitter{Name: "bob"}},
		{ID: "E001", Category: "Embers", Title: "DNS beacon baselining",
			Tactic: "Command and Control", Tags: []string{"dns"},
			Submitter: models.Submitter{Name: "alice"}},
	})
}

func TestClassify_PriorityOrder(t *testing.T) {
	r := testResponder()
	cases := []struct {
		message string
		want    Intent
	}{
		// Search triggers win over tactic keywords: priority 1 beats 2.
		{"show me persistence hunts", IntentSearch},
		{"find anything related to dns", IntentSearch},
		{"tell me about the persistence tactic", IntentTactic},
		{"what is the peak methodology", IntentFramework},
		{"how many hunts do we have", IntentStats},
		{"help", IntentHelp},
		{"rainbows and unicorns", IntentFallback},
	}
	for _, tc := range cases {
		if got := r.Classify(tc.message); got != tc.want {
			t.Errorf("Classify(%q) = %s, want %s", tc.message, got, tc.want)
		}
	}
}

func TestRespond_StatsContainsTotal(t *testing.T) {
	r := testResponder()
	resp := r.Respond(testSnapshot(), "how many hunts do we have")
	if resp.Intent != IntentStats {
		t.Fatalf("intent = %s, want stats", resp.Intent)
	}
	if !strings.Contains(resp.Reply, "3 hunts") {
		t.Errorf("reply missing total: %q", resp.Reply)
	}
	if !strings.Contains(resp.Reply, "Flames: 2") || !strings.Contains(resp.Reply, "Embers: 1") ||
		!strings.Contains(resp.Reply, "Alchemy: 0") {
		t.Errorf("reply missing category counts: %q", resp.Reply)
	}
}

func TestRespond_TacticExploration(t *testing.T) {
	r := testResponder()
	resp := r.Respond(testSnapshot(), "tell me about persistence tactics")
	if resp.Intent != IntentTactic {
		t.Fatalf("intent = %s, want tactic", resp.Intent)
	}
	if len(resp.Hunts) != 2 {
		t.Errorf("hunts = %d, want the 2 Persistence hunts", len(resp.Hunts))
	}
}

func TestRespond_TacticUnknownPlaceholder(t *testing.T) {
	r := testResponder()
	// "tactic" keyword routes here, but no canonical tactic is named.
	resp := r.Respond(testSnapshot(), "which tactic should I pick")
	if resp.Intent != IntentTactic {
		t.Fatalf("intent = %s, want tactic", resp.Intent)
	}
	if len(resp.Hunts) != 0 {
		t.Errorf("expected no hunts for the unknown placeholder, got %d", len(resp.Hunts))
	}
	if !strings.Contains(resp.Reply, "unknown") {
		t.Errorf("reply should mention the unknown tactic placeholder: %q", resp.Reply)
	}
}

func TestExtractTactic_CanonicalListOrderWins(t *testing.T) {
	// Both tactics are present; the first-listed canonical name wins,
	// regardless of position in the message.
	got := ExtractTactic("hunts for defense evasion and also execution please")
	if got != "Execution" {
		t.Errorf("ExtractTactic = %q, want Execution (canonical list order)", got)
	}
}

func TestExtractTactic_Unknown(t *testing.T) {
	if got := ExtractTactic("nothing recognisable here"); got != "unknown" {
		t.Errorf("ExtractTactic = %q, want unknown", got)
	}
}

func TestRespond_FallbackKeywordMatch(t *testing.T) {
	r := testResponder()
	resp := r.Respond(testSnapshot(), "anything interesting on registry?")
	if resp.Intent != IntentFallback {
		t.Fatalf("intent = %s, want fallback", resp.Intent)
	}
	if len(resp.Hunts) != 1 || resp.Hunts[0].ID != "F002" {
		t.Errorf("hunts = %+v, want [F002]", resp.Hunts)
	}
}

func TestRespond_FallbackSuggestionDeterministicWithSeed(t *testing.T) {
	a := NewResponder(rand.New(rand.NewSource(42)))
	b := NewResponder(rand.New(rand.NewSource(42)))
	snap := testSnapshot()
	ra := a.Respond(snap, "xyzzy plugh")
	rb := b.Respond(snap, "xyzzy plugh")
	if ra.Reply != rb.Reply {
		t.Errorf("same seed produced different suggestions: %q vs %q", ra.Reply, rb.Reply)
	}
	if len(ra.Hunts) != 0 {
		t.Errorf("expected pure suggestion, got hunts %v", ra.Hunts)
	}
}

func TestExtractKeywords(t *testing.T) {
	got := ExtractKeywords("What about Kerberos ticket abuse, please?!")
	want := []string{"kerberos", "ticket", "abuse", "please"}
	if len(got) != len(want) {
		t.Fatalf("keywords = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("keywords[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRespond_SearchNotFound(t *testing.T) {
	r := testResponder()
	resp := r.Respond(testSnapshot(), "find zzz-definitely-absent")
	if resp.Intent != IntentSearch {
		t.Fatalf("intent = %s, want search", resp.Intent)
	}
	if resp.Reply != notFoundReply {
		t.Errorf("reply = %q, want the fixed not-found message", resp.Reply)
	}
}

func TestRespond_SearchMatchesSingleKeywordMessage(t *testing.T) {
	r := testResponder()
	// The whole message after routing is the query; a single keyword
	// message therefore behaves like a plain search.
	resp := r.Respond(testSnapshot(), "find dns")
	if resp.Intent != IntentSearch {
		t.Fatalf("intent = %s", resp.Intent)
	}
}
