// Package extract converts uploaded files of known types into normalized,
// token-bounded plain-text chunks. Format adapters sit behind the loader
// interface and are dispatched by file extension.
package extract

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"bookvault/internal/domain"
)

// loader turns one file into raw text segments (pages, rows, slides).
type loader interface {
	Load(path string) ([]string, error)
}

// Service extracts text from uploaded documents.
type Service struct {
	log     *slog.Logger
	loaders map[string]loader
}

// New builds an extraction service with the full adapter set.
func New(log *slog.Logger) *Service {
	pdf := &pdfLoader{}
	office := &officeLoader{}
	image := &imageLoader{}
	s := &Service{
		log: log,
		loaders: map[string]loader{
			"pdf":  pdf,
			"doc":  office,
			"docx": office,
			"ppt":  office,
			"pptx": office,
			"txt":  &textLoader{},
			"html": &textLoader{},
			"rtf":  &rtfLoader{},
			"csv":  &csvLoader{},
			"jpg":  image,
			"jpeg": image,
			"png":  image,
			"gif":  image,
		},
	}
	return s
}

// Extract loads the file, merges its segments into one logical document,
// normalizes it when the source is a texty type, and splits it into chunks
// of at most maxTokens whitespace tokens with 10% overlap (rounded to a
// multiple of 100). Unsupported extensions yield an empty result. When
// removeSource is set the original file (and any intermediate converted
// file) is deleted after a successful load; delete failures are logged,
// not fatal.
func (s *Service) Extract(ctx context.Context, path string, maxTokens int, removeSource bool) ([]domain.Chunk, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")

	var (
		segments     []string
		intermediate string
		err          error
	)
	switch {
	case ext == "xls" || ext == "xlsx":
		intermediate, err = spreadsheetToCSV(path)
		if err == nil {
			segments, err = s.loaders["csv"].Load(intermediate)
		}
	default:
		ld, ok := s.loaders[ext]
		if !ok {
			return nil, nil
		}
		segments, err = ld.Load(path)
	}
	if err != nil {
		if intermediate != "" {
			if rmErr := os.Remove(intermediate); rmErr != nil && !os.IsNotExist(rmErr) {
				s.log.WarnContext(ctx, "failed to remove intermediate file", "path", intermediate, "error", rmErr)
			}
		}
		return nil, &domain.ExtractionError{Path: path, Err: err}
	}

	if removeSource {
		if rmErr := os.Remove(path); rmErr != nil {
			s.log.WarnContext(ctx, "failed to remove uploaded file", "path", path, "error", rmErr)
		}
		if intermediate != "" {
			if rmErr := os.Remove(intermediate); rmErr != nil {
				s.log.WarnContext(ctx, "failed to remove intermediate file", "path", intermediate, "error", rmErr)
			}
		}
	}

	text := strings.Join(segments, "\n")
	if ext == "txt" || ext == "html" {
		text = cleanText(stripHTML(text))
	}

	chunks := splitTokens(text, maxTokens)
	for i := range chunks {
		chunks[i].FileType = ext
	}
	s.log.DebugContext(ctx, "document extracted", "path", path, "chunks", len(chunks))
	return chunks, nil
}
