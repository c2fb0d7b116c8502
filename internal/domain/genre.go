package domain

import "strings"

// Genre is one value from the fixed catalog of literary categories. The
// zero value is not a valid genre; always construct through ParseGenre.
type Genre string

const (
	ScienceFiction        Genre = "Science Fiction"
	LiteraryFiction       Genre = "Literary Fiction"
	HistoricalFiction     Genre = "Historical Fiction"
	Fantasy               Genre = "Fantasy"
	Mystery               Genre = "Mystery"
	Thriller              Genre = "Thriller"
	Horror                Genre = "Horror"
	Romance               Genre = "Romance"
	Dystopian             Genre = "Dystopian"
	Adventure             Genre = "Adventure"
	MagicalRealism        Genre = "Magical Realism"
	Crime                 Genre = "Crime"
	GraphicNovels         Genre = "Graphic Novels"
	UrbanFantasy          Genre = "Urban Fantasy"
	Western               Genre = "Western"
	Action                Genre = "Action"
	YoungAdult            Genre = "Young Adult"
	Biography             Genre = "Biography/Autobiography"
	Memoir                Genre = "Memoir"
	SelfHelp              Genre = "Self-Help"
	TrueCrime             Genre = "True Crime"
	EssayCollections      Genre = "Essay Collections"
	Travel                Genre = "Travel"
	Cookbooks             Genre = "Cookbooks"
	History               Genre = "History"
	ScienceNature         Genre = "Science & Nature"
	Philosophy            Genre = "Philosophy"
	BusinessEconomics     Genre = "Business & Economics"
	ReligionSpirituality  Genre = "Religion & Spirituality"
	HealthFitness         Genre = "Health & Fitness"
	PoliticalSocialIssues Genre = "Political & Social Issues"
	Psychology            Genre = "Psychology"
	Education             Genre = "Education"
	Technology            Genre = "Technology"
	ArtDesign             Genre = "Art & Design"
	HistoricalFantasy     Genre = "Historical Fantasy"
	ScienceFantasy        Genre = "Science Fantasy"
	ParanormalRomance     Genre = "Paranormal Romance"
	AlternateHistory      Genre = "Alternate History"
	Steampunk             Genre = "Steampunk"
	Cyberpunk             Genre = "Cyberpunk"
	MilitarySciFi         Genre = "Military Science Fiction"
	SpaceOpera            Genre = "Space Opera"
	DarkFantasy           Genre = "Dark Fantasy"
	EpicFantasy           Genre = "Epic Fantasy"
)

// Genres lists the whole catalog in a stable order.
var Genres = []Genre{
	ScienceFiction, LiteraryFiction, HistoricalFiction, Fantasy, Mystery,
	Thriller, Horror, Romance, Dystopian, Adventure, MagicalRealism, Crime,
	GraphicNovels, UrbanFantasy, Western, Action, YoungAdult, Biography,
	Memoir, SelfHelp, TrueCrime, EssayCollections, Travel, Cookbooks,
	History, ScienceNature, Philosophy, BusinessEconomics,
	ReligionSpirituality, HealthFitness, PoliticalSocialIssues, Psychology,
	Education, Technology, ArtDesign, HistoricalFantasy, ScienceFantasy,
	ParanormalRomance, AlternateHistory, Steampunk, Cyberpunk, MilitarySciFi,
	SpaceOpera, DarkFantasy, EpicFantasy,
}

var genreIndex = func() map[string]Genre {
	m := make(map[string]Genre, len(Genres))
	for _, g := range Genres {
		m[string(g)] = g
	}
	return m
}()

// ParseGenre maps a genre name to its catalog value. Unknown names return a
// ValidationError; no value outside the catalog is ever accepted.
func ParseGenre(s string) (Genre, error) {
	g, ok := genreIndex[strings.TrimSpace(s)]
	if !ok {
		return "", &ValidationError{Field: "genre", Message: s + " is not a valid genre"}
	}
	return g, nil
}

// ParseGenres parses a comma-separated genre list, as submitted by the
// ingestion form. Empty elements are rejected along with unknown names.
func ParseGenres(s string) ([]Genre, error) {
	parts := strings.Split(s, ",")
	out := make([]Genre, 0, len(parts))
	for _, p := range parts {
		g, err := ParseGenre(p)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

// GenreStrings converts a genre slice to plain strings, preserving order.
func GenreStrings(gs []Genre) []string {
	out := make([]string, len(gs))
	for i, g := range gs {
		out[i] = string(g)
	}
	return out
}

// GenresFromStrings converts stored strings back to genres without
// re-validating; rows only ever contain values written through ParseGenre.
func GenresFromStrings(ss []string) []Genre {
	out := make([]Genre, len(ss))
	for i, s := range ss {
		out[i] = Genre(s)
	}
	return out
}
