package model

import "errors"

// ErrorKind discriminates the failure classes surfaced by the GitHub gateway.
// The presentation layer switches on the kind to pick iconography and copy,
// and for ErrorKindRateLimit shows a countdown to ResetTime.
type ErrorKind string

const (
	// ErrorKindNotFound means the requested user does not exist (HTTP 404).
	ErrorKindNotFound ErrorKind = "not_found"
	// ErrorKindRateLimit means GitHub's request quota is exhausted (HTTP 403).
	ErrorKindRateLimit ErrorKind = "rate_limit"
	// ErrorKindNetwork means the request never produced an HTTP response:
	// DNS failure, refused connection, timeout, or cancellation.
	ErrorKindNetwork ErrorKind = "network"
	// ErrorKindUnknown is any other non-2xx response.
	ErrorKindUnknown ErrorKind = "unknown"
)

// Fixed user-facing messages for the classified failure kinds.
const (
	NotFoundMessage  = "User not found. Please check the username and try again."
	RateLimitMessage = "API rate limit exceeded. Please wait a moment and try again."
	NetworkMessage   = "Network error. Please check your connection and try again."
)

// GitHubError is the tagged error union created at the gateway boundary and
// propagated unchanged to the controllers. Errors are never cached.
type GitHubError struct {
	Kind    ErrorKind `json:"type"`
	Message string    `json:"message"`

	// ResetTime is the rate-limit reset instant in Unix milliseconds.
	// Zero when the kind is not rate_limit or the header was absent.
	ResetTime int64 `json:"reset_time,omitempty"`
}

// Error implements the error interface.
func (e *GitHubError) Error() string {
	return e.Message
}

// AsGitHubError normalizes err into a *GitHubError. A tagged error anywhere in
// the chain is returned as-is; anything untagged (transport failures thrown
// before a response was classified) is re-tagged as a network error.
func AsGitHubError(err error) *GitHubError {
	var ghErr *GitHubError
	if errors.As(err, &ghErr) {
		return ghErr
	}
	return &GitHubError{Kind: ErrorKindNetwork, Message: NetworkMessage}
}
