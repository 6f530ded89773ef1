package api

import (
	"github.com/thorcollective/hearth/internal/catalog"
	"github.com/thorcollective/hearth/internal/hubfs"
	"github.com/thorcollective/hearth/internal/models"
	"github.com/thorcollective/hearth/internal/submit"
)

// HuntItem is one hunt in a list or detail response, enriched with the
// deep link back to its source file.
type HuntItem struct {
	models.Hunt
	SourceURL string `json:"source_url,omitempty" example:"https://github.com/THORCollective/HEARTH/blob/main/Flames/F001.md"`
}

// Facets are the selector values derived from the full snapshot, not the
// filtered subset.
type Facets struct {
	Categories []string `json:"categories" validate:"required"`
	Tactics    []string `json:"tactics" validate:"required"`
	Tags       []string `json:"tags" validate:"required"`
}

// HuntListResponse wraps a filtered hunt listing.
type HuntListResponse struct {
	Hunts  []HuntItem `json:"hunts" validate:"required"`
	Total  int        `json:"total" example:"178" validate:"required"`
	Facets Facets     `json:"facets" validate:"required"`
}

// SearchResponse wraps title-boosted search results.
type SearchResponse struct {
	Results []HuntItem `json:"results" validate:"required"`
	Total   int        `json:"total" example:"5" validate:"required"`
}

// ChatRequest is the request body for the chat endpoint.
type ChatRequest struct {
	Message string `json:"message" example:"show me persistence hunts" validate:"required"`
}

// ChatResponse is the routed chat reply.
type ChatResponse struct {
	Intent string     `json:"intent" example:"search" validate:"required"`
	Reply  string     `json:"reply" validate:"required"`
	Hunts  []HuntItem `json:"hunts,omitempty"`
}

// SubmissionRequest is the request body for a hunt submission (aliased
// from the domain layer).
type SubmissionRequest = submit.Submission

// SubmissionResponse carries the pre-filled issue URL the client should open.
type SubmissionResponse struct {
	IssueURL string `json:"issue_url" validate:"required"`
}

// BrowseResponse wraps an upstream repository directory listing.
type BrowseResponse struct {
	Path    string        `json:"path"`
	Entries []hubfs.Entry `json:"entries" validate:"required"`
}

// StatisticsResponse is the catalog statistics payload (aliased from the
// domain layer).
type StatisticsResponse = catalog.Statistics

// LeaderboardResponse wraps the contributor leaderboard.
type LeaderboardResponse struct {
	Contributors []catalog.Contributor `json:"contributors" validate:"required"`
}
