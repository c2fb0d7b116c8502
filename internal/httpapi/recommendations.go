package httpapi

import (
	"errors"
	"net/http"

	"bookvault/internal/auth"
	"bookvault/internal/domain"
)

// handleRecommendations ranks books for the acting user. The two
// empty-signal outcomes (no preferred genres, no resolvable embeddings)
// are explanations, not failures, and come back as 200 with a message.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		s.respondError(w, r, domain.ErrInvalidToken)
		return
	}

	views, err := s.engine.Recommend(r.Context(), identity)
	switch {
	case errors.Is(err, domain.ErrNoPreferences):
		respond(w, http.StatusOK, message{Msg: domain.ErrNoPreferences.Error()})
	case errors.Is(err, domain.ErrNoEmbeddings):
		respond(w, http.StatusOK, message{Msg: domain.ErrNoEmbeddings.Error()})
	case err != nil:
		s.respondError(w, r, err)
	default:
		respond(w, http.StatusOK, views)
	}
}
