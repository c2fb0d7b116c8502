package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors recovered at the request boundary.
var (
	// ErrNotFound marks a missing book, user or review.
	ErrNotFound = errors.New("not found")

	// ErrNoPreferences means recommendations cannot proceed because the
	// user declared no preferred genres. Surfaced as a normal response,
	// not a failure.
	ErrNoPreferences = errors.New("no preferred genres found for the user")

	// ErrNoEmbeddings means none of the user's reviewed books resolved to
	// a stored embedding. Also a normal, explanatory response.
	ErrNoEmbeddings = errors.New("no valid book embeddings found for reviews")

	// ErrInvalidCredentials marks a failed login attempt.
	ErrInvalidCredentials = errors.New("incorrect username or password")

	// ErrEmailTaken marks a registration against an existing email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidToken marks a missing, malformed or badly signed identity
	// token.
	ErrInvalidToken = errors.New("could not validate credentials")
)

// ExtractionError is a failure to turn an uploaded file into text. It
// always carries the file path and the underlying cause.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// SummarizationError is an upstream summarization-service failure.
type SummarizationError struct {
	Status string
	Err    error
}

func (e *SummarizationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("summarize: %v", e.Err)
	}
	return fmt.Sprintf("summarize: upstream returned %s", e.Status)
}

func (e *SummarizationError) Unwrap() error { return e.Err }

// EmbeddingError is an upstream embedding-service failure, including a
// response vector of the wrong dimension.
type EmbeddingError struct {
	Status string
	Err    error
}

func (e *EmbeddingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("embed: %v", e.Err)
	}
	return fmt.Sprintf("embed: upstream returned %s", e.Status)
}

func (e *EmbeddingError) Unwrap() error { return e.Err }

// ValidationError is a malformed field in a request. Mapped to a
// 422-equivalent with the field name in the response body.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
