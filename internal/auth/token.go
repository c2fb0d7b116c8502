// Package auth issues and validates the signed identity tokens consumed by
// the catalog and recommendation handlers.
package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"bookvault/internal/domain"
)

// Claims is the identity-token claim set: the user's email as subject, the
// numeric user id, and a snapshot of the preferred genres at issuance time.
// Tokens carry no expiry; the snapshot is never re-synced after issuance.
type Claims struct {
	jwt.RegisteredClaims
	UserID      int64    `json:"user_id"`
	Preferences []string `json:"preferences"`
}

// Tokens signs and parses identity tokens with an HS256 secret.
type Tokens struct {
	secret []byte
}

// NewTokens creates a token signer/verifier around the given secret.
func NewTokens(secret []byte) *Tokens {
	return &Tokens{secret: secret}
}

// Issue signs an identity token for the user, embedding the current
// preference snapshot.
func (t *Tokens) Issue(user domain.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: user.Email,
		},
		UserID:      user.ID,
		Preferences: domain.GenreStrings(user.Preferences),
	})
	return token.SignedString(t.secret)
}

// Identity validates a token string and returns the acting-user context.
func (t *Tokens) Identity(tokenString string) (domain.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid || claims.Subject == "" {
		return domain.Identity{}, domain.ErrInvalidToken
	}
	return domain.Identity{
		Email:       claims.Subject,
		UserID:      claims.UserID,
		Preferences: domain.GenresFromStrings(claims.Preferences),
	}, nil
}
