package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookvault/internal/domain"
)

// Users is the user repository.
type Users struct {
	pool *pgxpool.Pool
}

const uniqueViolation = "23505"

// Create inserts a new user. A duplicate email maps to ErrEmailTaken.
func (u *Users) Create(ctx context.Context, user domain.User) (int64, error) {
	var id int64
	err := u.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, hashed_password, preferences)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		user.Username, user.Email, user.HashedPassword,
		domain.GenreStrings(user.Preferences),
	).Scan(&id)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return 0, domain.ErrEmailTaken
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetByEmail fetches a user by their unique email.
func (u *Users) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	var (
		user  domain.User
		prefs []string
	)
	err := u.pool.QueryRow(ctx, `
		SELECT id, username, email, hashed_password, preferences
		FROM users WHERE email = $1`, email,
	).Scan(&user.ID, &user.Username, &user.Email, &user.HashedPassword, &prefs)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	user.Preferences = domain.GenresFromStrings(prefs)
	return user, nil
}
