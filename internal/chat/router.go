// Package chat implements the rule-based intent router behind the catalog
// assistant. Each message is classified independently (no conversation
// memory) by an ordered list of (predicate, handler) routes evaluated in
// sequence, first match wins. Route order is an observable contract: a
// message containing both a search trigger and a tactic keyword goes to
// the search handler.
package chat

import (
	"math/rand"
	"strings"
	"sync"

	"github.com/thorcollective/hearth/internal/catalog"
	"github.com/thorcollective/hearth/internal/models"
)

// Intent identifies which handler produced a response.
type Intent string

const (
	IntentSearch    Intent = "search"
	IntentTactic    Intent = "tactic"
	IntentFramework Intent = "framework"
	IntentStats     Intent = "stats"
	IntentHelp      Intent = "help"
	IntentFallback  Intent = "fallback"
)

// Response is the assistant's answer to one message.
type Response struct {
	Intent Intent        `json:"intent"`
	Reply  string        `json:"reply"`
	Hunts  []models.Hunt `json:"hunts,omitempty"`
}

// unknownTactic is the placeholder used when a tactic-exploration message
// names no recognised tactic. It then acts as a (most likely empty-result)
// filter value; a rough edge preserved from the original behaviour.
const unknownTactic = "unknown"

var (
	searchTriggers = []string{"show me", "find", "search", "look for", "hunts for", "related to"}

	tacticKeywords = []string{
		"tactic", "tactics", "mitre", "att&ck", "technique",
		"initial access", "execution", "persistence", "privilege escalation",
		"defense evasion", "credential access", "discovery", "lateral movement",
		"collection", "command and control", "exfiltration", "impact",
	}

	frameworkKeywords = []string{"peak", "able", "framework", "methodology", "hypothesis-driven"}

	statsKeywords = []string{"how many", "count", "total", "statistics", "stats", "number of"}

	helpKeywords = []string{"help", "what can you do", "how do i", "how does this work", "getting started"}
)

type route struct {
	intent Intent
	match  func(msg string) bool
	handle func(r *Responder, snap *catalog.Snapshot, msg string) Response
}

// Responder routes messages to handlers over a catalog snapshot. The
// random source drives fallback suggestion selection; inject a seeded one
// for deterministic tests.
type Responder struct {
	mu     sync.Mutex
	rng    *rand.Rand
	routes []route
}

// NewResponder creates a Responder using rng for randomised choices.
func NewResponder(rng *rand.Rand) *Responder {
	r := &Responder{rng: rng}
	r.routes = []route{
		{IntentSearch, containsAny(searchTriggers), (*Responder).handleSearch},
		{IntentTactic, containsAny(tacticKeywords), (*Responder).handleTactic},
		{IntentFramework, containsAny(frameworkKeywords), (*Responder).handleFramework},
		{IntentStats, containsAny(statsKeywords), (*Responder).handleStats},
		{IntentHelp, containsAny(helpKeywords), (*Responder).handleHelp},
	}
	return r
}

// Respond classifies one message and builds its response. snap must be a
// loaded snapshot; the router never mutates it.
func (r *Responder) Respond(snap *catalog.Snapshot, message string) Response {
	msg := strings.ToLower(strings.TrimSpace(message))
	for _, rt := range r.routes {
		if rt.match(msg) {
			return rt.handle(r, snap, message)
		}
	}
	return r.handleFallback(snap, message)
}

// Classify returns the intent a message would be routed to, without
// building a response.
func (r *Responder) Classify(message string) Intent {
	msg := strings.ToLower(strings.TrimSpace(message))
	for _, rt := range r.routes {
		if rt.match(msg) {
			return rt.intent
		}
	}
	return IntentFallback
}

func containsAny(keywords []string) func(string) bool {
	return func(msg string) bool {
		for _, kw := range keywords {
			if strings.Contains(msg, kw) {
				return true
			}
		}
		return false
	}
}

// ExtractTactic returns the first canonical tactic name found as a
// substring of the message, scanning the canonical list in order. When a
// message mentions two tactics, the first-listed canonical name wins, not
// the one appearing first in the message; preserved as observed upstream.
func ExtractTactic(message string) string {
	msg := strings.ToLower(message)
	for _, t := range models.CanonicalTactics {
		if strings.Contains(msg, strings.ToLower(t)) {
			return t
		}
	}
	return unknownTactic
}

func (r *Responder) pick(options []string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return options[r.rng.Intn(len(options))]
}
