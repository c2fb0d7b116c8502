package domain

// EmbeddingDim is the fixed dimensionality of summary embeddings. The
// embedding model (distilbert-base-nli-mean-tokens) produces 768-float
// vectors and the books table declares vector(768), so every embedding in
// the system must have exactly this length.
const EmbeddingDim = 768

// Book is a cataloged book. Embedding is never exposed through the API;
// use View for outward-facing shapes.
type Book struct {
	ID            int64
	Title         string
	Author        string
	Genres        []Genre
	YearPublished int
	Summary       string
	Embedding     []float32
	Metadata      map[string]any
}

// View returns the public projection of the book (no embedding, no metadata).
func (b Book) View() BookView {
	return BookView{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		Genres:        b.Genres,
		YearPublished: b.YearPublished,
		Summary:       b.Summary,
	}
}

// BookView is the API-facing shape of a book.
type BookView struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Genres        []Genre `json:"genre"`
	YearPublished int     `json:"year_published"`
	Summary       string  `json:"summary"`
}

// BookPatch lists the mutable fields of a book. An update replaces all of
// them atomically; there is no per-field partial update.
type BookPatch struct {
	Title         string
	Author        string
	Genres        []Genre
	YearPublished int
}

// User is a registered account. Preferences are set once at registration.
type User struct {
	ID             int64
	Username       string
	Email          string
	HashedPassword string
	Preferences    []Genre
}

// Review is one user's review of one book. Rating is an integer in 1..5,
// enforced at the API boundary rather than in the schema.
type Review struct {
	ID         int64  `json:"id"`
	BookID     int64  `json:"book_id"`
	UserID     int64  `json:"user_id"`
	ReviewText string `json:"review_text"`
	Rating     int    `json:"rating"`
}

// Identity is the acting-user context decoded from an identity token. The
// preference snapshot is taken at token issuance and may be stale relative
// to the users row; consumers use the snapshot as-is and never re-query.
type Identity struct {
	Email       string
	UserID      int64
	Preferences []Genre
}

// Chunk is one token-bounded segment of extracted document text. Index
// orders chunks within their source file; concatenating chunks in index
// order (minus overlap) reconstructs the extracted text.
type Chunk struct {
	Text     string
	Index    int
	FileType string
}
