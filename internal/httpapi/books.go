package httpapi

import (
	"net/http"
	"strconv"

	"bookvault/internal/auth"
	"bookvault/internal/domain"
	"bookvault/internal/ingest"
)

type bookCreatedResponse struct {
	Msg  string          `json:"msg"`
	Book domain.BookView `json:"book"`
}

// handleCreateBook accepts a multipart form (title, author, genre,
// year_published, file) and runs the full ingestion pipeline.
func (s *Server) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		s.respondError(w, r, &domain.ValidationError{Field: "body", Message: "malformed multipart form"})
		return
	}

	title := r.FormValue("title")
	if title == "" {
		s.respondError(w, r, &domain.ValidationError{Field: "title", Message: "title is required"})
		return
	}

	var year int
	if raw := r.FormValue("year_published"); raw != "" {
		var err error
		year, err = strconv.Atoi(raw)
		if err != nil {
			s.respondError(w, r, &domain.ValidationError{Field: "year_published", Message: "must be an integer"})
			return
		}
	}

	genres, err := domain.ParseGenres(r.FormValue("genre"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, &domain.ValidationError{Field: "file", Message: "file is required"})
		return
	}
	defer file.Close()

	view, err := s.ingestor.IngestBook(r.Context(), ingest.Request{
		Title:         title,
		Author:        r.FormValue("author"),
		Genres:        genres,
		YearPublished: year,
		Filename:      header.Filename,
		File:          file,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, bookCreatedResponse{Msg: "Book added successfully", Book: view})
}

func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	views, err := s.books.List(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, views)
}

func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	id, err := bookIDParam(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	book, err := s.books.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, book.View())
}

type bookUpdateRequest struct {
	Title         string   `json:"title" validate:"required"`
	Author        string   `json:"author"`
	Genres        []string `json:"genre"`
	YearPublished int      `json:"year_published"`
}

func (s *Server) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	id, err := bookIDParam(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var req bookUpdateRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	genres, err := parseGenreList(req.Genres)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	patch := domain.BookPatch{
		Title:         req.Title,
		Author:        req.Author,
		Genres:        genres,
		YearPublished: req.YearPublished,
	}
	if err := s.books.Update(r.Context(), id, patch); err != nil {
		s.respondError(w, r, err)
		return
	}

	book, err := s.books.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, book.View())
}

func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	id, err := bookIDParam(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := s.books.Delete(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, message{Msg: "Book deleted successfully"})
}

type reviewRequest struct {
	ReviewText string `json:"review_text" validate:"required"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
}

// handleCreateReview records the acting user's review of a book.
func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	id, err := bookIDParam(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		s.respondError(w, r, domain.ErrInvalidToken)
		return
	}

	var req reviewRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	reviewID, err := s.reviews.Create(r.Context(), domain.Review{
		BookID:     id,
		UserID:     identity.UserID,
		ReviewText: req.ReviewText,
		Rating:     req.Rating,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.log.InfoContext(r.Context(), "review added",
		"review_id", reviewID, "book_id", id, "user_id", identity.UserID)
	respond(w, http.StatusOK, message{Msg: "Review added successfully"})
}

func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	id, err := bookIDParam(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if _, err := s.books.Get(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}
	reviews, err := s.reviews.ListByBook(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, reviews)
}

type bookSummaryResponse struct {
	Summary       string   `json:"summary"`
	AverageRating *float64 `json:"average_rating"`
}

// handleBookSummary returns the stored summary together with the mean
// review rating (null when unreviewed).
func (s *Server) handleBookSummary(w http.ResponseWriter, r *http.Request) {
	id, err := bookIDParam(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	book, err := s.books.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	avg, err := s.reviews.AverageRating(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, bookSummaryResponse{Summary: book.Summary, AverageRating: avg})
}

type generateSummaryRequest struct {
	Content string `json:"content" validate:"required"`
}

type generateSummaryResponse struct {
	Summary string `json:"summary"`
}

// handleGenerateSummary summarizes caller-provided text without touching
// the catalog.
func (s *Server) handleGenerateSummary(w http.ResponseWriter, r *http.Request) {
	var req generateSummaryRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	summary, err := s.summarizer.Summarize(r.Context(), req.Content)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, generateSummaryResponse{Summary: summary})
}
