package catalog

import (
	"testing"

	"github.com/thorcollective/hearth/internal/models"
)

func TestSearch_TitleMatchesRankFirst(t *testing.T) {
	s := NewSnapshot([]models.Hunt{
		{ID: "F001", Category: "Flames", Title: "Something else", Notes: "mentions beacon traffic"},
		{ID: "F002", Category: "Flames", Title: "Beacon detection over HTTP"},
		{ID: "F003", Category: "Flames", Title: "Unrelated", Tags: []string{"beacon"}},
	})
	got := Search(s, "beacon", 0)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].ID != "F002" {
		t.Errorf("first result = %s, want the title match F002", got[0].ID)
	}
	// The two non-title matches keep their stable id order.
	if got[1].ID != "F001" || got[2].ID != "F003" {
		t.Errorf("tail order = %s, %s, want F001, F003", got[1].ID, got[2].ID)
	}
}

func TestSearch_LimitTruncates(t *testing.T) {
	s := NewSnapshot(testHunts())
	got := Search(s, "", 2)
	if len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}

func TestSearch_NoMatches(t *testing.T) {
	s := NewSnapshot(testHunts())
	if got := Search(s, "zzz-not-present", 5); len(got) != 0 {
		t.Errorf("got %v, want none", ids(got))
	}
}

func TestSearch_SubmitterNameMatches(t *testing.T) {
	s := NewSnapshot(testHunts())
	got := Search(s, "carol", 0)
	if len(got) != 1 || got[0].ID != "E001" {
		t.Errorf("got %v, want [E001]", ids(got))
	}
}
