package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookvault/internal/domain"
)

// Reviews is the review repository. Reviews reference their book and user;
// the book side is reachable through ListByBook rather than a stored
// back-reference.
type Reviews struct {
	pool *pgxpool.Pool
}

// Create inserts a review after confirming the book still exists; both
// steps run in one transaction so a concurrent book delete cannot leave an
// orphaned review.
func (r *Reviews) Create(ctx context.Context, review domain.Review) (int64, error) {
	var id int64
	err := WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`, review.BookID,
		).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		return tx.QueryRow(ctx, `
			INSERT INTO reviews (book_id, user_id, review_text, rating)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			review.BookID, review.UserID, review.ReviewText, review.Rating,
		).Scan(&id)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ListByBook returns all reviews of one book.
func (r *Reviews) ListByBook(ctx context.Context, bookID int64) ([]domain.Review, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, book_id, user_id, review_text, rating
		FROM reviews WHERE book_id = $1 ORDER BY id`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.BookID, &rv.UserID, &rv.ReviewText, &rv.Rating); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

// ListByUserAbove returns the user's reviews with rating strictly greater
// than minRating.
func (r *Reviews) ListByUserAbove(ctx context.Context, userID int64, minRating float64) ([]domain.Review, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, book_id, user_id, review_text, rating
		FROM reviews WHERE user_id = $1 AND rating > $2 ORDER BY id`,
		userID, minRating)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.BookID, &rv.UserID, &rv.ReviewText, &rv.Rating); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

// AverageRating returns the mean rating of a book, or nil when it has no
// reviews.
func (r *Reviews) AverageRating(ctx context.Context, bookID int64) (*float64, error) {
	var avg *float64
	err := r.pool.QueryRow(ctx,
		`SELECT AVG(rating) FROM reviews WHERE book_id = $1`, bookID,
	).Scan(&avg)
	if err != nil {
		return nil, err
	}
	return avg, nil
}
