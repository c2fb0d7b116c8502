package httpapi

import (
	"errors"
	"net/http"

	"bookvault/internal/auth"
	"bookvault/internal/domain"
)

type registerRequest struct {
	Username    string   `json:"username" validate:"required"`
	Email       string   `json:"email" validate:"required,email"`
	Password    string   `json:"password" validate:"required,min=4"`
	Preferences []string `json:"preferences"`
}

type credentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// loginResponse extends the token payload with the preference snapshot the
// token was issued against, so clients can display it without decoding the
// token.
type loginResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	Preferences []string `json:"preferences"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	prefs, err := parseGenreList(req.Preferences)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	id, err := s.users.Create(r.Context(), domain.User{
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: hash,
		Preferences:    prefs,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.log.InfoContext(r.Context(), "user registered", "user_id", id, "email", req.Email)
	respond(w, http.StatusOK, message{Msg: "User created successfully"})
}

// handleLogin verifies credentials and issues an identity token carrying
// the user's current preference snapshot.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	user, err := s.users.GetByEmail(r.Context(), req.Email)
	if errors.Is(err, domain.ErrNotFound) {
		s.respondError(w, r, domain.ErrInvalidCredentials)
		return
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if !auth.VerifyPassword(req.Password, user.HashedPassword) {
		s.respondError(w, r, domain.ErrInvalidCredentials)
		return
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, loginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		Preferences: domain.GenreStrings(user.Preferences),
	})
}

// handleToken is the form-encoded variant of login kept for OAuth2
// password-flow clients: username field carries the email.
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.respondError(w, r, &domain.ValidationError{Field: "body", Message: "malformed form data"})
		return
	}
	email := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		s.respondError(w, r, &domain.ValidationError{Field: "username", Message: "username and password are required"})
		return
	}

	user, err := s.users.GetByEmail(r.Context(), email)
	if errors.Is(err, domain.ErrNotFound) {
		s.respondError(w, r, domain.ErrInvalidCredentials)
		return
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if !auth.VerifyPassword(password, user.HashedPassword) {
		s.respondError(w, r, domain.ErrInvalidCredentials)
		return
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}
