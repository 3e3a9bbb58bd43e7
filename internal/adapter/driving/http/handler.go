// Package httphandler is the HTTP driving adapter serving the dashboard API:
// aggregated profile data, user comparisons, recent-search history, and the
// GitHub passthrough proxy the browser uses for direct API calls.
package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ericfisherdev/gitscope/internal/application"
	"github.com/ericfisherdev/gitscope/internal/domain/model"
	"github.com/ericfisherdev/gitscope/internal/domain/port/driven"
)

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	profiles *application.ProfileService
	compare  *application.CompareService
	searches driven.SearchStore
	logger   *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	profiles *application.ProfileService,
	compare *application.CompareService,
	searches driven.SearchStore,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		profiles: profiles,
		compare:  compare,
		searches: searches,
		logger:   logger,
	}
}

// NewServeMux creates an http.Handler with all routes registered and wrapped
// with logging and recovery middleware.
func NewServeMux(h *Handler, proxy *Proxy, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/users/{username}", h.GetUser)
	mux.HandleFunc("GET /api/v1/compare", h.CompareUsers)
	mux.HandleFunc("GET /api/v1/searches", h.ListSearches)
	mux.HandleFunc("POST /api/v1/searches", h.AddSearch)
	mux.HandleFunc("DELETE /api/v1/searches", h.ClearSearches)
	mux.HandleFunc("GET /api/v1/health", h.Health)

	mux.HandleFunc("/api/github/{path...}", proxy.Forward)

	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, mux)
	wrapped = loggingMiddleware(logger, wrapped)

	return wrapped
}

// GetUser runs the full aggregation pipeline for a username and returns the
// aggregated result. Successful lookups are recorded in the search history.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.PathValue("username"))
	if username == "" {
		writeError(w, http.StatusBadRequest, "username is required")
		return
	}

	result, err := h.profiles.FetchProfile(r.Context(), username)
	if err != nil {
		writeGitHubError(w, model.AsGitHubError(err))
		return
	}

	// Best effort; history is a convenience, not part of the result.
	if err := h.searches.Record(r.Context(), result.User.Login); err != nil {
		h.logger.Error("failed to record search", "username", username, "error", err)
	}

	writeJSON(w, http.StatusOK, result)
}

// CompareUsers runs two comparison legs and returns both sides plus the
// head-to-head table. Requires user1 and user2 query parameters.
func (h *Handler) CompareUsers(w http.ResponseWriter, r *http.Request) {
	left := strings.TrimSpace(r.URL.Query().Get("user1"))
	right := strings.TrimSpace(r.URL.Query().Get("user2"))

	result, err := h.compare.Compare(r.Context(), left, right)
	if err != nil {
		if errors.Is(err, application.ErrEmptyUsername) {
			writeError(w, http.StatusBadRequest, "user1 and user2 are both required")
			return
		}
		writeGitHubError(w, model.AsGitHubError(err))
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ListSearches returns the recent-search history, newest first.
func (h *Handler) ListSearches(w http.ResponseWriter, r *http.Request) {
	searches, err := h.searches.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list searches", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]SearchResponse, 0, len(searches))
	for _, search := range searches {
		resp = append(resp, toSearchResponse(search))
	}

	writeJSON(w, http.StatusOK, resp)
}

// AddSearch records a username in the search history.
func (h *Handler) AddSearch(w http.ResponseWriter, r *http.Request) {
	var req AddSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		writeError(w, http.StatusBadRequest, "username is required")
		return
	}

	if err := h.searches.Record(r.Context(), username); err != nil {
		h.logger.Error("failed to record search", "username", username, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// ClearSearches empties the search history.
func (h *Handler) ClearSearches(w http.ResponseWriter, r *http.Request) {
	if err := h.searches.Clear(r.Context()); err != nil {
		h.logger.Error("failed to clear searches", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}
