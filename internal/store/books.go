package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"bookvault/internal/domain"
)

// Books is the book repository.
type Books struct {
	pool *pgxpool.Pool
}

const bookViewColumns = `id, title, author, genre, year_published, summary`

// Create inserts a fully assembled book (summary, genres and embedding all
// set) and returns its id. The single-statement insert keeps the invariant
// that no partially populated book row is ever visible.
func (b *Books) Create(ctx context.Context, book domain.Book) (int64, error) {
	var id int64
	err := b.pool.QueryRow(ctx, `
		INSERT INTO books (title, author, genre, year_published, summary, summary_embedding, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		book.Title, book.Author, domain.GenreStrings(book.Genres),
		book.YearPublished, book.Summary, pgvector.NewVector(book.Embedding),
		book.Metadata,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Get fetches one book by id, embedding included.
func (b *Books) Get(ctx context.Context, id int64) (domain.Book, error) {
	var (
		book     domain.Book
		genres   []string
		emb      pgvector.Vector
		metadata map[string]any
	)
	err := b.pool.QueryRow(ctx, `
		SELECT id, title, author, genre, year_published, summary, summary_embedding, metadata
		FROM books WHERE id = $1`, id,
	).Scan(&book.ID, &book.Title, &book.Author, &genres, &book.YearPublished,
		&book.Summary, &emb, &metadata)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Book{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Book{}, err
	}
	book.Genres = domain.GenresFromStrings(genres)
	book.Embedding = emb.Slice()
	book.Metadata = metadata
	return book, nil
}

// List returns the public view of every book.
func (b *Books) List(ctx context.Context) ([]domain.BookView, error) {
	rows, err := b.pool.Query(ctx, `SELECT `+bookViewColumns+` FROM books ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookViews(rows)
}

// Update atomically replaces the mutable fields of a book.
func (b *Books) Update(ctx context.Context, id int64, patch domain.BookPatch) error {
	tag, err := b.pool.Exec(ctx, `
		UPDATE books
		SET title = $2, author = $3, genre = $4, year_published = $5
		WHERE id = $1`,
		id, patch.Title, patch.Author, domain.GenreStrings(patch.Genres), patch.YearPublished,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a book; its reviews cascade.
func (b *Books) Delete(ctx context.Context, id int64) error {
	tag, err := b.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// EmbeddingsByIDs resolves the stored embeddings of the given books.
// Dangling ids are silently absent from the result.
func (b *Books) EmbeddingsByIDs(ctx context.Context, ids []int64) ([][]float32, error) {
	rows, err := b.pool.Query(ctx,
		`SELECT summary_embedding FROM books WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out [][]float32
	for rows.Next() {
		var v pgvector.Vector
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v.Slice())
	}
	return out, rows.Err()
}

// FindNearest returns up to limit books ordered by ascending L2 distance
// to the query embedding, never including an excluded id.
func (b *Books) FindNearest(ctx context.Context, embedding []float32, excludeIDs []int64, limit int) ([]domain.BookView, error) {
	if excludeIDs == nil {
		excludeIDs = []int64{}
	}
	rows, err := b.pool.Query(ctx, `
		SELECT `+bookViewColumns+`
		FROM books
		WHERE NOT (id = ANY($2))
		ORDER BY summary_embedding <-> $1
		LIMIT $3`,
		pgvector.NewVector(embedding), excludeIDs, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookViews(rows)
}

// FindByAnyGenre returns up to limit books whose genre set intersects the
// given genres, most recently published first.
func (b *Books) FindByAnyGenre(ctx context.Context, genres []domain.Genre, limit int) ([]domain.BookView, error) {
	rows, err := b.pool.Query(ctx, `
		SELECT `+bookViewColumns+`
		FROM books
		WHERE genre && $1
		ORDER BY year_published DESC
		LIMIT $2`,
		domain.GenreStrings(genres), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookViews(rows)
}

func scanBookViews(rows pgx.Rows) ([]domain.BookView, error) {
	views := []domain.BookView{}
	for rows.Next() {
		var (
			v      domain.BookView
			genres []string
		)
		if err := rows.Scan(&v.ID, &v.Title, &v.Author, &genres, &v.YearPublished, &v.Summary); err != nil {
			return nil, err
		}
		v.Genres = domain.GenresFromStrings(genres)
		views = append(views, v)
	}
	return views, rows.Err()
}
