package domain

type SearchResult struct {
	ID        string
	Title     string
	Year      string
	PosterURL string
}

type MovieDetail struct {
	ID             string
	Title          string
	Year           string
	PosterURL      string
	RuntimeMinutes int
	IMDbRating     float64
	Plot           string
	ReleaseDate    string
	Actors         string
	Director       string
	Genre          string
}

// WatchedEntry is a movie the user rated during the session. Entries are
// never edited, only added and removed.
type WatchedEntry struct {
	ID             string
	Title          string
	Year           string
	PosterURL      string
	IMDbRating     float64
	RuntimeMinutes int
	UserRating     int
}

func NewWatchedEntry(movie MovieDetail, userRating int) WatchedEntry {
	return WatchedEntry{
		ID:             movie.ID,
		Title:          movie.Title,
		Year:           movie.Year,
		PosterURL:      movie.PosterURL,
		IMDbRating:     movie.IMDbRating,
		RuntimeMinutes: movie.RuntimeMinutes,
		UserRating:     userRating,
	}
}

// Summary aggregates the watched list. Averages of an empty list are 0.
type Summary struct {
	Count         int
	AvgIMDbRating float64
	AvgUserRating float64
	AvgRuntime    float64
}
