// Package httpapi exposes the catalog over HTTP: registration and token
// issuance, book ingestion and CRUD, reviews, summaries, and per-user
// recommendations.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"

	"bookvault/internal/auth"
	"bookvault/internal/domain"
	"bookvault/internal/ingest"
)

// BookStore is the catalog surface the handlers need.
type BookStore interface {
	Get(ctx context.Context, id int64) (domain.Book, error)
	List(ctx context.Context) ([]domain.BookView, error)
	Update(ctx context.Context, id int64, patch domain.BookPatch) error
	Delete(ctx context.Context, id int64) error
}

// UserStore persists and resolves accounts.
type UserStore interface {
	Create(ctx context.Context, user domain.User) (int64, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
}

// ReviewStore persists and resolves reviews.
type ReviewStore interface {
	Create(ctx context.Context, review domain.Review) (int64, error)
	ListByBook(ctx context.Context, bookID int64) ([]domain.Review, error)
	AverageRating(ctx context.Context, bookID int64) (*float64, error)
}

// Ingestor runs the upload-to-catalog pipeline.
type Ingestor interface {
	IngestBook(ctx context.Context, req ingest.Request) (domain.BookView, error)
}

// Summarizer produces a summary for raw text.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Recommender ranks books for the acting user.
type Recommender interface {
	Recommend(ctx context.Context, id domain.Identity) ([]domain.BookView, error)
}

// Server holds the route handlers and their dependencies.
type Server struct {
	books      BookStore
	users      UserStore
	reviews    ReviewStore
	ingestor   Ingestor
	summarizer Summarizer
	engine     Recommender
	tokens     *auth.Tokens

	maxUpload int64
	validate  *validator.Validate
	log       *slog.Logger
}

// Config carries the server's dependencies; all fields are required.
type Config struct {
	Books      BookStore
	Users      UserStore
	Reviews    ReviewStore
	Ingestor   Ingestor
	Summarizer Summarizer
	Engine     Recommender
	Tokens     *auth.Tokens
	MaxUpload  int64
	Log        *slog.Logger
}

// New assembles a server from its dependencies.
func New(cfg Config) *Server {
	return &Server{
		books:      cfg.Books,
		users:      cfg.Users,
		reviews:    cfg.Reviews,
		ingestor:   cfg.Ingestor,
		summarizer: cfg.Summarizer,
		engine:     cfg.Engine,
		tokens:     cfg.Tokens,
		maxUpload:  cfg.MaxUpload,
		validate:   validator.New(),
		log:        cfg.Log,
	}
}

// Router builds the full route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Get("/", s.handleRoot)
	r.Post("/register", s.handleRegister)
	r.Post("/login", s.handleLogin)
	r.Post("/token", s.handleToken)

	r.Group(func(r chi.Router) {
		r.Use(s.tokens.Middleware(s.unauthorized))

		r.Post("/books", s.handleCreateBook)
		r.Get("/books", s.handleListBooks)
		r.Get("/books/{bookID}", s.handleGetBook)
		r.Put("/books/{bookID}", s.handleUpdateBook)
		r.Delete("/books/{bookID}", s.handleDeleteBook)

		r.Post("/books/{bookID}/reviews", s.handleCreateReview)
		r.Get("/books/{bookID}/reviews", s.handleListReviews)
		r.Get("/books/{bookID}/summary", s.handleBookSummary)

		r.Post("/generate-summary", s.handleGenerateSummary)
		r.Get("/recommendations", s.handleRecommendations)
	})

	return r
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, message{Msg: "Welcome to the Book Management System!"})
}

// logRequests emits one structured line per finished request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.InfoContext(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// bookIDParam parses the {bookID} route parameter.
func bookIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "bookID"), 10, 64)
	if err != nil || id < 1 {
		return 0, &domain.ValidationError{Field: "book_id", Message: "must be a positive integer"}
	}
	return id, nil
}
