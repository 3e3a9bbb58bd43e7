package httphandler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// userAgent identifies the proxy to GitHub; requests without a User-Agent are
// rejected upstream.
const userAgent = "gitscope/1.0"

// forwardedHeaders are the upstream response headers relayed to the browser:
// the rate-limit triple the frontend uses for quota display and the Link
// header it uses for pagination.
var forwardedHeaders = []string{
	"X-RateLimit-Limit",
	"X-RateLimit-Remaining",
	"X-RateLimit-Reset",
	"Link",
}

// Proxy relays browser requests to the GitHub REST API. The browser cannot
// call api.github.com directly (CORS), and routing through the server lets a
// configured token raise the rate limit without ever exposing it to the
// client. Upstream status and body pass through verbatim.
type Proxy struct {
	upstream string
	token    string
	client   *http.Client
	logger   *slog.Logger
}

// NewProxy creates a Proxy forwarding to the given upstream base URL
// (https://api.github.com in production). The timeout bounds each relayed
// request; expiry maps to 504 rather than hanging the browser.
func NewProxy(upstream, token string, timeout time.Duration, logger *slog.Logger) *Proxy {
	return &Proxy{
		upstream: upstream,
		token:    token,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// Forward relays the request to the upstream API, preserving method, path,
// and query string, and copies back status, body, and rate-limit headers.
func (p *Proxy) Forward(w http.ResponseWriter, r *http.Request) {
	path := r.PathValue("path")
	if path == "" {
		writeJSON(w, http.StatusBadRequest, proxyErrorResponse{Message: "Missing path"})
		return
	}

	target := p.upstream + "/" + path
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, target, nil)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, proxyErrorResponse{
			Message: "Invalid request",
			Detail:  err.Error(),
		})
		return
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", userAgent)
	if p.token != "" {
		req.Header.Set("Authorization", "token "+p.token)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Error("proxy request failed", "path", path, "error", err)

		if isTimeout(err) {
			writeJSON(w, http.StatusGatewayTimeout, proxyErrorResponse{
				Message: "Gateway Timeout",
				Detail:  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusInternalServerError, proxyErrorResponse{
			Message: "Internal Server Error",
			Detail:  err.Error(),
		})
		return
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)

	for _, name := range forwardedHeaders {
		if value := resp.Header.Get(name); value != "" {
			w.Header().Set(name, value)
		}
	}

	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		p.logger.Error("proxy body copy failed", "path", path, "error", err)
	}
}

// isTimeout reports whether err is a deadline or timeout failure.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr) && urlErr.Timeout()
}

// proxyErrorResponse is the error body the proxy produces for its own
// failures; upstream error bodies pass through untouched.
type proxyErrorResponse struct {
	Message string `json:"message"`
	Detail  string `json:"error,omitempty"`
}
