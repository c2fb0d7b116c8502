package ingest

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookvault/internal/domain"
	"bookvault/internal/extract"
)

type fakeSummarizer struct {
	gotText string
	err     error
}

func (f *fakeSummarizer) Summarize(_ context.Context, text string) (string, error) {
	f.gotText = text
	if f.err != nil {
		return "", f.err
	}
	return "a summary", nil
}

type fakeEmbedder struct {
	err error
}

func (f *fakeEmbedder) Dimension() int { return domain.EmbeddingDim }

func (f *fakeEmbedder) Embed(context.Context, string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return make([]float32, domain.EmbeddingDim), nil
}

type fakeBooks struct {
	created []domain.Book
}

func (f *fakeBooks) Create(_ context.Context, b domain.Book) (int64, error) {
	f.created = append(f.created, b)
	return int64(len(f.created)), nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newService(t *testing.T, sum *fakeSummarizer, emb *fakeEmbedder, books *fakeBooks) *Service {
	t.Helper()
	log := testLogger()
	return New(extract.New(log), sum, emb, books, t.TempDir(), 1000, log)
}

func TestIngestBook(t *testing.T) {
	sum := &fakeSummarizer{}
	books := &fakeBooks{}
	s := newService(t, sum, &fakeEmbedder{}, books)

	view, err := s.IngestBook(context.Background(), Request{
		Title:         "Dune",
		Author:        "Frank Herbert",
		Genres:        []domain.Genre{domain.ScienceFiction},
		YearPublished: 1965,
		Filename:      "dune.txt",
		File:          strings.NewReader("A desert planet and its spice."),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), view.ID)
	assert.Equal(t, "Dune", view.Title)
	assert.Equal(t, "a summary", view.Summary)
	assert.Equal(t, "A desert planet and its spice.", sum.gotText)

	require.Len(t, books.created, 1)
	created := books.created[0]
	assert.Len(t, created.Embedding, domain.EmbeddingDim)
	assert.Equal(t, "txt", created.Metadata["file_type"])
}

func TestIngestRemovesUpload(t *testing.T) {
	s := newService(t, &fakeSummarizer{}, &fakeEmbedder{}, &fakeBooks{})

	_, err := s.IngestBook(context.Background(), Request{
		Title:    "T",
		Filename: "t.txt",
		File:     strings.NewReader("text"),
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(s.uploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "upload must be removed after extraction")
}

func TestIngestUnsupportedExtension(t *testing.T) {
	books := &fakeBooks{}
	s := newService(t, &fakeSummarizer{}, &fakeEmbedder{}, books)

	_, err := s.IngestBook(context.Background(), Request{
		Title:    "Bad",
		Filename: "payload.exe",
		File:     strings.NewReader("MZ"),
	})

	var exErr *domain.ExtractionError
	require.ErrorAs(t, err, &exErr)
	assert.Empty(t, books.created, "no book row for failed extraction")

	entries, readErr := os.ReadDir(s.uploadDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "aborted upload must be discarded")
}

func TestIngestSummarizerFailureAborts(t *testing.T) {
	books := &fakeBooks{}
	sum := &fakeSummarizer{err: &domain.SummarizationError{Status: "502 Bad Gateway"}}
	s := newService(t, sum, &fakeEmbedder{}, books)

	_, err := s.IngestBook(context.Background(), Request{
		Title:    "T",
		Filename: "t.txt",
		File:     strings.NewReader("text"),
	})

	var sumErr *domain.SummarizationError
	require.ErrorAs(t, err, &sumErr)
	assert.Empty(t, books.created)
}

func TestIngestEmbedderFailureAborts(t *testing.T) {
	books := &fakeBooks{}
	emb := &fakeEmbedder{err: &domain.EmbeddingError{Status: "503"}}
	s := newService(t, &fakeSummarizer{}, emb, books)

	_, err := s.IngestBook(context.Background(), Request{
		Title:    "T",
		Filename: "t.txt",
		File:     strings.NewReader("text"),
	})

	var embErr *domain.EmbeddingError
	require.ErrorAs(t, err, &embErr)
	assert.Empty(t, books.created)
}

func TestSaveUploadUniqueNames(t *testing.T) {
	s := newService(t, &fakeSummarizer{}, &fakeEmbedder{}, &fakeBooks{})

	a, err := s.saveUpload(strings.NewReader("one"), "txt")
	require.NoError(t, err)
	b, err := s.saveUpload(strings.NewReader("two"), "txt")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Equal(t, ".txt", filepath.Ext(a))
}
