// Package recommend computes per-user book recommendations: content-based
// when the user has well-rated reviews, genre-preference-based otherwise.
package recommend

import (
	"context"
	"log/slog"

	"bookvault/internal/domain"
)

const (
	// qualifyingRating is the exclusive lower bound for a review to count
	// as a positive signal.
	qualifyingRating = 3.5

	// resultLimit caps every recommendation list.
	resultLimit = 10
)

// ReviewSource yields the acting user's qualifying reviews.
type ReviewSource interface {
	ListByUserAbove(ctx context.Context, userID int64, minRating float64) ([]domain.Review, error)
}

// BookSource answers the two retrieval shapes the engine needs.
type BookSource interface {
	EmbeddingsByIDs(ctx context.Context, ids []int64) ([][]float32, error)
	FindNearest(ctx context.Context, embedding []float32, excludeIDs []int64, limit int) ([]domain.BookView, error)
	FindByAnyGenre(ctx context.Context, genres []domain.Genre, limit int) ([]domain.BookView, error)
}

// Engine ranks books for a user. It works from the identity token's
// preference snapshot as-is and never re-reads the users row, so a stale
// snapshot stays stale for the token's lifetime.
type Engine struct {
	books   BookSource
	reviews ReviewSource
	log     *slog.Logger
}

// New creates a recommendation engine.
func New(books BookSource, reviews ReviewSource, log *slog.Logger) *Engine {
	return &Engine{books: books, reviews: reviews, log: log}
}

// Recommend returns up to ten ranked book views for the user.
//
// With qualifying reviews (rating > 3.5) it takes the content-based path:
// the centroid of the reviewed books' embeddings queried for nearest
// neighbors by L2 distance, excluding the reviewed books themselves.
// Without qualifying reviews it falls back to books sharing any preferred
// genre, most recent first; the fallback does not exclude reviewed books.
//
// A user with no preferred genres gets ErrNoPreferences, and a content
// path that resolves no stored embeddings gets ErrNoEmbeddings — both are
// explanatory outcomes, not system failures.
func (e *Engine) Recommend(ctx context.Context, id domain.Identity) ([]domain.BookView, error) {
	reviews, err := e.reviews.ListByUserAbove(ctx, id.UserID, qualifyingRating)
	if err != nil {
		return nil, err
	}

	if len(id.Preferences) == 0 {
		e.log.WarnContext(ctx, "user has no genre preferences", "user_id", id.UserID)
		return nil, domain.ErrNoPreferences
	}

	if len(reviews) == 0 {
		e.log.InfoContext(ctx, "no qualifying reviews, recommending by preferences", "user_id", id.UserID)
		return e.books.FindByAnyGenre(ctx, id.Preferences, resultLimit)
	}

	reviewedIDs := make([]int64, len(reviews))
	for i, r := range reviews {
		reviewedIDs[i] = r.BookID
	}

	embeddings, err := e.books.EmbeddingsByIDs(ctx, reviewedIDs)
	if err != nil {
		return nil, err
	}
	if len(embeddings) == 0 {
		e.log.WarnContext(ctx, "no embeddings resolved for reviewed books", "user_id", id.UserID)
		return nil, domain.ErrNoEmbeddings
	}

	return e.books.FindNearest(ctx, centroid(embeddings), reviewedIDs, resultLimit)
}

// centroid is the dimension-wise arithmetic mean of the vectors.
// Accumulates in float64 to keep the mean stable over many inputs.
func centroid(vectors [][]float32) []float32 {
	dim := len(vectors[0])
	sums := make([]float64, dim)
	for _, v := range vectors {
		for i, x := range v {
			sums[i] += float64(x)
		}
	}
	out := make([]float32, dim)
	n := float64(len(vectors))
	for i, s := range sums {
		out[i] = float32(s / n)
	}
	return out
}
