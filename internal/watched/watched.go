// Package watched keeps the movies the user rated during the session.
package watched

import (
	"slices"

	"popcorn/internal/domain"
)

// List is the session's watched collection. It is owned by the UI
// coordinator and is not safe for concurrent use.
type List struct {
	entries []domain.WatchedEntry
}

func New(seed ...domain.WatchedEntry) *List {
	return &List{entries: slices.Clone(seed)}
}

// Add appends entry. Callers must not add an id that is already present.
func (l *List) Add(entry domain.WatchedEntry) {
	l.entries = append(l.entries, entry)
}

func (l *List) Remove(id string) {
	l.entries = slices.DeleteFunc(l.entries, func(e domain.WatchedEntry) bool {
		return e.ID == id
	})
}

func (l *List) Get(id string) (domain.WatchedEntry, bool) {
	i := slices.IndexFunc(l.entries, func(e domain.WatchedEntry) bool { return e.ID == id })
	if i < 0 {
		return domain.WatchedEntry{}, false
	}
	return l.entries[i], true
}

func (l *List) Contains(id string) bool {
	_, ok := l.Get(id)
	return ok
}

func (l *List) Len() int { return len(l.entries) }

func (l *List) Entries() []domain.WatchedEntry {
	return slices.Clone(l.entries)
}

// Summary averages ratings and runtime over the list. An empty list
// reports zero for every average.
func (l *List) Summary() domain.Summary {
	s := domain.Summary{Count: len(l.entries)}
	if s.Count == 0 {
		return s
	}

	var imdb, user, runtime float64
	for _, e := range l.entries {
		imdb += e.IMDbRating
		user += float64(e.UserRating)
		runtime += float64(e.RuntimeMinutes)
	}
	n := float64(s.Count)
	s.AvgIMDbRating = imdb / n
	s.AvgUserRating = user / n
	s.AvgRuntime = runtime / n
	return s
}

// SampleEntries returns a fresh copy of the demo watched list.
func SampleEntries() []domain.WatchedEntry {
	return []domain.WatchedEntry{
		{
			ID:             "tt1375666",
			Title:          "Inception",
			Year:           "2010",
			PosterURL:      "https://m.media-amazon.com/images/M/MV5BMjAxMzY3NjcxNF5BMl5BanBnXkFtZTcwNTI5OTM0Mw@@._V1_SX300.jpg",
			RuntimeMinutes: 148,
			IMDbRating:     8.8,
			UserRating:     10,
		},
		{
			ID:             "tt0088763",
			Title:          "Back to the Future",
			Year:           "1985",
			PosterURL:      "https://m.media-amazon.com/images/M/MV5BZmU0M2Y1OGUtZjIxNi00ZjBkLTg1MjgtOWIyNThiZWIwYjRiXkEyXkFqcGdeQXVyMTQxNzMzNDI@._V1_SX300.jpg",
			RuntimeMinutes: 116,
			IMDbRating:     8.5,
			UserRating:     9,
		},
	}
}
