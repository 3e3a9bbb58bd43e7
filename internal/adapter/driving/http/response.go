package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ericfisherdev/gitscope/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeGitHubError maps a classified GitHub failure to an HTTP status and
// writes the full tagged error so the frontend can pick copy per kind and,
// for rate limits, show a countdown to the reset instant.
func writeGitHubError(w http.ResponseWriter, ghErr *model.GitHubError) {
	writeJSON(w, statusForErrorKind(ghErr.Kind), githubErrorResponse{Error: ghErr})
}

// statusForErrorKind maps the error taxonomy onto HTTP statuses.
func statusForErrorKind(kind model.ErrorKind) int {
	switch kind {
	case model.ErrorKindNotFound:
		return http.StatusNotFound
	case model.ErrorKindRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusBadGateway
	}
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// githubErrorResponse carries the tagged error union to the frontend.
type githubErrorResponse struct {
	Error *model.GitHubError `json:"error"`
}

// SearchResponse is the JSON representation of a recent-search entry.
type SearchResponse struct {
	Username   string `json:"username"`
	SearchedAt string `json:"searched_at"`
}

// AddSearchRequest is the JSON body for the add search endpoint.
type AddSearchRequest struct {
	Username string `json:"username"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// toSearchResponse converts a domain Search to its JSON response representation.
func toSearchResponse(search model.Search) SearchResponse {
	return SearchResponse{
		Username:   search.Username,
		SearchedAt: search.SearchedAt.UTC().Format(time.RFC3339),
	}
}
