package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"bookvault/internal/domain"
)

// respond writes v as JSON with the given status.
func respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// message is the `{msg: ...}` response shape used across the API.
type message struct {
	Msg string `json:"msg"`
}

// errorBody mirrors the upstream framework's error shape.
type errorBody struct {
	Detail string `json:"detail"`
	Field  string `json:"field,omitempty"`
}

// respondError maps the domain error taxonomy onto HTTP statuses. The two
// recommendation empty-result signals are not errors and are handled at
// their handler, not here.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		valErr *domain.ValidationError
		extErr *domain.ExtractionError
		sumErr *domain.SummarizationError
		embErr *domain.EmbeddingError
	)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respond(w, http.StatusNotFound, errorBody{Detail: "Book not found"})
	case errors.As(err, &valErr):
		respond(w, http.StatusUnprocessableEntity, errorBody{Detail: valErr.Message, Field: valErr.Field})
	case errors.Is(err, domain.ErrEmailTaken):
		respond(w, http.StatusBadRequest, errorBody{Detail: "Email already registered. Please log in instead."})
	case errors.Is(err, domain.ErrInvalidCredentials):
		respond(w, http.StatusBadRequest, errorBody{Detail: "Incorrect username or password"})
	case errors.Is(err, domain.ErrInvalidToken):
		w.Header().Set("WWW-Authenticate", "Bearer")
		respond(w, http.StatusUnauthorized, errorBody{Detail: "Could not validate credentials"})
	case errors.As(err, &extErr):
		s.log.ErrorContext(r.Context(), "extraction failed", "error", err)
		respond(w, http.StatusInternalServerError, errorBody{Detail: "Error processing uploaded file"})
	case errors.As(err, &sumErr):
		s.log.ErrorContext(r.Context(), "summarization failed", "error", err)
		respond(w, http.StatusInternalServerError, errorBody{Detail: "Error summarizing file content"})
	case errors.As(err, &embErr):
		s.log.ErrorContext(r.Context(), "embedding failed", "error", err)
		respond(w, http.StatusInternalServerError, errorBody{Detail: "Error embedding summary"})
	default:
		s.log.ErrorContext(r.Context(), "request failed", "error", err)
		respond(w, http.StatusInternalServerError, errorBody{Detail: "Internal server error"})
	}
}

func (s *Server) unauthorized(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusUnauthorized, errorBody{Detail: "Could not validate credentials"})
}

// decodeJSON reads a JSON request body into v and runs struct validation.
func (s *Server) decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &domain.ValidationError{Field: "body", Message: "malformed JSON"}
	}
	if err := s.validate.Struct(v); err != nil {
		return validationError(err)
	}
	return nil
}

// parseGenreList validates each element of a JSON genre array. An empty
// list is allowed; unknown names are not.
func parseGenreList(names []string) ([]domain.Genre, error) {
	out := make([]domain.Genre, 0, len(names))
	for _, name := range names {
		g, err := domain.ParseGenre(name)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

// validationError converts the first validator failure into the domain's
// per-field shape.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		f := verrs[0]
		return &domain.ValidationError{
			Field:   f.Field(),
			Message: "failed validation on '" + f.Tag() + "'",
		}
	}
	return &domain.ValidationError{Field: "body", Message: err.Error()}
}
