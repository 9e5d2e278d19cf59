package watched

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"popcorn/internal/domain"
)

func TestList_Summary(t *testing.T) {
	l := New(
		domain.WatchedEntry{ID: "a", IMDbRating: 8.8, UserRating: 10, RuntimeMinutes: 148},
		domain.WatchedEntry{ID: "b", IMDbRating: 8.5, UserRating: 9, RuntimeMinutes: 116},
	)

	s := l.Summary()

	assert.Equal(t, 2, s.Count)
	assert.InDelta(t, 8.65, s.AvgIMDbRating, 1e-9)
	assert.InDelta(t, 9.5, s.AvgUserRating, 1e-9)
	assert.InDelta(t, 132, s.AvgRuntime, 1e-9)
}

func TestList_SummaryEmpty(t *testing.T) {
	s := New().Summary()

	assert.Equal(t, domain.Summary{}, s, "an empty list averages to zero, never NaN")
}

func TestList_AddRemove(t *testing.T) {
	l := New()
	l.Add(domain.WatchedEntry{ID: "tt1", Title: "One", UserRating: 7})
	l.Add(domain.WatchedEntry{ID: "tt2", Title: "Two", UserRating: 5})
	require.Equal(t, 2, l.Len())

	e, ok := l.Get("tt2")
	require.True(t, ok)
	assert.Equal(t, 5, e.UserRating)

	l.Remove("tt1")
	assert.False(t, l.Contains("tt1"))
	assert.Equal(t, []domain.WatchedEntry{{ID: "tt2", Title: "Two", UserRating: 5}}, l.Entries())
}

func TestList_RemoveMissingIsNoop(t *testing.T) {
	l := New(SampleEntries()...)
	before := l.Entries()

	l.Remove("tt-missing")

	assert.Equal(t, before, l.Entries())
}

func TestNew_CopiesSeed(t *testing.T) {
	seed := SampleEntries()
	l := New(seed...)

	seed[0].Title = "changed"
	entries := l.Entries()
	entries[1].Title = "changed too"

	got := l.Entries()
	assert.Equal(t, "Inception", got[0].Title)
	assert.Equal(t, "Back to the Future", got[1].Title)
}
