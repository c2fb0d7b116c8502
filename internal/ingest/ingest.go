// Package ingest orchestrates the book ingestion pipeline: persist the
// upload, extract text, summarize, embed, and store the finished book in
// one transactional write.
package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"bookvault/internal/domain"
	"bookvault/internal/embedding"
	"bookvault/internal/summarize"
)

// Extractor converts a stored file into token-bounded text chunks.
type Extractor interface {
	Extract(ctx context.Context, path string, maxTokens int, removeSource bool) ([]domain.Chunk, error)
}

// BookCreator persists a fully assembled book.
type BookCreator interface {
	Create(ctx context.Context, book domain.Book) (int64, error)
}

// Service runs the ingestion pipeline. Every stage is single-attempt; the
// first failure aborts the pipeline and nothing is persisted.
type Service struct {
	extractor  Extractor
	summarizer summarize.Summarizer
	embedder   embedding.Embedder
	books      BookCreator
	uploadDir  string
	maxTokens  int
	log        *slog.Logger
}

// New wires an ingestion service.
func New(extractor Extractor, summarizer summarize.Summarizer, embedder embedding.Embedder, books BookCreator, uploadDir string, maxTokens int, log *slog.Logger) *Service {
	return &Service{
		extractor:  extractor,
		summarizer: summarizer,
		embedder:   embedder,
		books:      books,
		uploadDir:  uploadDir,
		maxTokens:  maxTokens,
		log:        log,
	}
}

// Request carries the ingestion form fields and the uploaded file.
type Request struct {
	Title         string
	Author        string
	Genres        []domain.Genre
	YearPublished int
	Filename      string
	File          io.Reader
}

// IngestBook runs the full pipeline and returns the created book's public
// view. The uploaded file is written under a unique name, consumed by
// extraction (which removes it on success), and best-effort removed on
// failure so aborted ingestions leave nothing behind.
func (s *Service) IngestBook(ctx context.Context, req Request) (domain.BookView, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(req.Filename)), ".")
	path, err := s.saveUpload(req.File, ext)
	if err != nil {
		return domain.BookView{}, fmt.Errorf("save upload: %w", err)
	}

	chunks, err := s.extractor.Extract(ctx, path, s.maxTokens, true)
	if err != nil {
		s.discard(ctx, path)
		return domain.BookView{}, err
	}
	if len(chunks) == 0 {
		s.discard(ctx, path)
		return domain.BookView{}, &domain.ExtractionError{
			Path: path,
			Err:  fmt.Errorf("unsupported or empty file type %q", ext),
		}
	}

	// The summarization endpoint is token-bounded, so only the first chunk
	// feeds the summary.
	summary, err := s.summarizer.Summarize(ctx, chunks[0].Text)
	if err != nil {
		return domain.BookView{}, err
	}

	vector, err := s.embedder.Embed(ctx, summary)
	if err != nil {
		return domain.BookView{}, err
	}

	book := domain.Book{
		Title:         req.Title,
		Author:        req.Author,
		Genres:        req.Genres,
		YearPublished: req.YearPublished,
		Summary:       summary,
		Embedding:     vector,
		Metadata: map[string]any{
			"file_type": chunks[0].FileType,
			"chunks":    len(chunks),
		},
	}
	id, err := s.books.Create(ctx, book)
	if err != nil {
		return domain.BookView{}, fmt.Errorf("persist book: %w", err)
	}
	book.ID = id

	s.log.InfoContext(ctx, "book ingested", "book_id", id, "title", book.Title, "file_type", chunks[0].FileType)
	return book.View(), nil
}

// saveUpload streams the upload to uploadDir under a unique name.
func (s *Service) saveUpload(r io.Reader, ext string) (string, error) {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", err
	}
	name := uuid.NewString()
	if ext != "" {
		name += "." + ext
	}
	path := filepath.Join(s.uploadDir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(path)
		return "", err
	}
	return path, f.Close()
}

// discard removes a failed ingestion's upload; failure to remove is
// logged, not fatal.
func (s *Service) discard(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.log.WarnContext(ctx, "failed to remove aborted upload", "path", path, "error", err)
	}
}
