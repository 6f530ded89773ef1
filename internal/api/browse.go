package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/thorcollective/hearth/internal/apperr"
	"github.com/thorcollective/hearth/internal/hubfs"
)

// BrowseHandler serves the read-only view of the upstream hunt repository.
type BrowseHandler struct {
	hub *hubfs.Client
}

// NewBrowseHandler creates a BrowseHandler over hub.
func NewBrowseHandler(hub *hubfs.Client) *BrowseHandler {
	return &BrowseHandler{hub: hub}
}

// List handles GET /api/browse.
//
// Upstream failures other than a missing path degrade to an empty
// listing: the browser panel goes blank but the rest of the API stays up.
//
//	@Summary		List upstream repository contents
//	@Tags			browse
//	@Produce		json
//	@Param			path	query		string	false	"Directory path, repository root when empty"
//	@Success		200		{object}	BrowseResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/browse [get]
func (bh *BrowseHandler) List(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	entries, err := bh.hub.List(r.Context(), path)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	case err != nil:
		slog.Warn("hub listing failed", slog.String("path", path), slog.String("error", err.Error()))
		entries = nil
	}
	if entries == nil {
		entries = []hubfs.Entry{}
	}
	writeJSON(w, http.StatusOK, BrowseResponse{Path: path, Entries: entries})
}

// Raw handles GET /api/browse/raw.
//
//	@Summary		Fetch one upstream file verbatim
//	@Tags			browse
//	@Produce		text/markdown
//	@Param			path	query		string	true	"File path"
//	@Success		200		{string}	string	"File contents"
//	@Failure		404		{object}	errResponse
//	@Failure		502		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/browse/raw [get]
func (bh *BrowseHandler) Raw(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'path' is required"))
		return
	}

	data, err := bh.hub.Raw(r.Context(), path)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	case err != nil:
		slog.Warn("hub raw fetch failed", slog.String("path", path), slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadGateway, errorBody("upstream unavailable"))
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
