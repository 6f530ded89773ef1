package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/thorcollective/hearth/internal/apperr"
	"github.com/thorcollective/hearth/internal/catalog"
	"github.com/thorcollective/hearth/internal/chat"
	"github.com/thorcollective/hearth/internal/models"
	"github.com/thorcollective/hearth/internal/report"
	"github.com/thorcollective/hearth/internal/submit"
)

// Handler holds API route handlers.
type Handler struct {
	store     *catalog.Store
	responder *chat.Responder

	// sourceBaseURL prefixes each hunt's file path into a deep link,
	// e.g. https://github.com/THORCollective/HEARTH/blob/main.
	sourceBaseURL string

	// repoURL is the upstream repository that receives submissions.
	repoURL string
}

// NewHandler creates a new Handler.
func NewHandler(store *catalog.Store, responder *chat.Responder, sourceBaseURL, repoURL string) *Handler {
	return &Handler{
		store:         store,
		responder:     responder,
		sourceBaseURL: strings.TrimRight(sourceBaseURL, "/"),
		repoURL:       repoURL,
	}
}

// snapshot returns the current catalog snapshot, or answers 503 and
// returns false while the catalog has not loaded yet.
func (h *Handler) snapshot(w http.ResponseWriter) (*catalog.Snapshot, bool) {
	if !h.store.Ready() {
		writeJSON(w, http.StatusServiceUnavailable, errorBody(apperr.ErrNotReady.Error()))
		return nil, false
	}
	return h.store.Current(), true
}

func (h *Handler) huntItem(hunt models.Hunt) HuntItem {
	item := HuntItem{Hunt: hunt}
	if h.sourceBaseURL != "" && hunt.FilePath != "" {
		item.SourceURL = h.sourceBaseURL + "/" + hunt.FilePath
	}
	return item
}

func (h *Handler) huntItems(hunts []models.Hunt) []HuntItem {
	items := make([]HuntItem, len(hunts))
	for i, hunt := range hunts {
		items[i] = h.huntItem(hunt)
	}
	return items
}

// ListHunts handles GET /api/hunts.
//
//	@Summary		List hunts with filtering and sorting
//	@Tags			hunts
//	@Produce		json
//	@Param			q			query		string	false	"Substring search"
//	@Param			category	query		string	false	"Category filter"	Enums(Flames, Embers, Alchemy)
//	@Param			tactic		query		string	false	"Tactic filter"
//	@Param			tag			query		string	false	"Tag filter"
//	@Param			order		query		string	false	"Sort direction"	Enums(asc, desc)
//	@Success		200			{object}	HuntListResponse
//	@Failure		503			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/hunts [get]
func (h *Handler) ListHunts(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w)
	if !ok {
		return
	}

	q := r.URL.Query()
	query := catalog.Query{
		Search:   q.Get("q"),
		Category: q.Get("category"),
		Tactic:   q.Get("tactic"),
		Tag:      q.Get("tag"),
		Desc:     q.Get("order") == "desc",
	}

	hunts := catalog.Filter(snap, query)
	writeJSON(w, http.StatusOK, HuntListResponse{
		Hunts: h.huntItems(hunts),
		Total: len(hunts),
		Facets: Facets{
			Categories: models.Categories,
			Tactics:    snap.Tactics(),
			Tags:       snap.Tags(),
		},
	})
}

// GetHunt handles GET /api/hunts/{id}.
//
//	@Summary		Get a single hunt by id
//	@Tags			hunts
//	@Produce		json
//	@Param			id	path		string	true	"Hunt id, e.g. F001"
//	@Success		200	{object}	HuntItem
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/hunts/{id} [get]
func (h *Handler) GetHunt(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	hunt, found := snap.Get(id)
	if !found {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	writeJSON(w, http.StatusOK, h.huntItem(hunt))
}

// Search handles GET /api/search.
//
//	@Summary		Title-boosted substring search
//	@Tags			search
//	@Produce		json
//	@Param			q		query		string	true	"Search query"
//	@Param			limit	query		int		false	"Max results"
//	@Success		200		{object}	SearchResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w)
	if !ok {
		return
	}
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results := catalog.Search(snap, q, limit)
	writeJSON(w, http.StatusOK, SearchResponse{
		Results: h.huntItems(results),
		Total:   len(results),
	})
}

// Stats handles GET /api/stats.
//
//	@Summary		Catalog statistics
//	@Tags			stats
//	@Produce		json
//	@Success		200	{object}	StatisticsResponse
//	@Security		BearerAuth
//	@Router			/stats [get]
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, catalog.Stats(snap))
}

// Leaderboard handles GET /api/leaderboard.
//
//	@Summary		Contributor leaderboard
//	@Tags			stats
//	@Produce		json
//	@Success		200	{object}	LeaderboardResponse
//	@Security		BearerAuth
//	@Router			/leaderboard [get]
func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, LeaderboardResponse{Contributors: catalog.Leaderboard(snap)})
}

// Chat handles POST /api/chat.
//
//	@Summary		Route one assistant message
//	@Tags			chat
//	@Accept			json
//	@Produce		json
//	@Param			body	body		ChatRequest	true	"Message"
//	@Success		200		{object}	ChatResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/chat [post]
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w)
	if !ok {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("message is required"))
		return
	}

	resp := h.responder.Respond(snap, req.Message)
	writeJSON(w, http.StatusOK, ChatResponse{
		Intent: string(resp.Intent),
		Reply:  resp.Reply,
		Hunts:  h.huntItems(resp.Hunts),
	})
}

// Report handles GET /api/hunts/{id}/report.
//
//	@Summary		Download a pre-filled hunt notebook
//	@Tags			hunts
//	@Produce		text/markdown
//	@Param			id	path		string	true	"Hunt id"
//	@Success		200	{string}	string	"Markdown document"
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/hunts/{id}/report [get]
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	hunt, found := snap.Get(id)
	if !found {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}

	doc, err := report.Generate(hunt, h.sourceBaseURL)
	if err != nil {
		slog.Error("report generation failed", slog.String("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename(id)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}

// Submit handles POST /api/submissions.
//
//	@Summary		Validate a hunt submission and build the issue URL
//	@Tags			submissions
//	@Accept			json
//	@Produce		json
//	@Param			body	body		SubmissionRequest	true	"Submission"
//	@Success		200		{object}	SubmissionResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/submissions [post]
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req SubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	if err := req.Validate(); err != nil {
		var fields validation.Errors
		if errors.As(err, &fields) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":  "validation failed",
				"fields": fields,
			})
			return
		}
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, SubmissionResponse{IssueURL: submit.IssueURL(h.repoURL, req)})
}
