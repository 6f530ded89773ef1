package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
// bh, if non-nil, mounts the upstream repository browser.
// Health probes stay outside the auth group.
func NewRouter(h *Handler, authEnabled bool, token string, sseHandler http.Handler, bh *BrowseHandler) chi.Router {
	r := chi.NewRouter()

	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		if !h.store.Ready() {
			writeJSON(w, http.StatusServiceUnavailable, errorBody("catalog not ready"))
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(authEnabled, token))

		// Catalog.
		r.Get("/hunts", h.ListHunts)
		r.Get("/hunts/{id}", h.GetHunt)
		r.Get("/hunts/{id}/report", h.Report)

		// Search and statistics.
		r.Get("/search", h.Search)
		r.Get("/stats", h.Stats)
		r.Get("/leaderboard", h.Leaderboard)

		// Assistant.
		r.Post("/chat", h.Chat)

		// Submissions leave as pre-filled issue URLs.
		r.Post("/submissions", h.Submit)

		// Upstream repository browser.
		if bh != nil {
			r.Get("/browse", bh.List)
			r.Get("/browse/raw", bh.Raw)
		}

		// SSE endpoint (protected by the same auth middleware).
		if sseHandler != nil {
			r.Get("/events", sseHandler.ServeHTTP)
		}
	})

	return r
}
