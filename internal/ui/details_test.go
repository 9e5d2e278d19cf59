package ui

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"popcorn/internal/domain"
	"popcorn/internal/ports"
	"popcorn/internal/watched"
)

func inception() domain.MovieDetail {
	return domain.MovieDetail{
		ID:             "tt1375666",
		Title:          "Inception",
		Year:           "2010",
		RuntimeMinutes: 148,
		IMDbRating:     8.8,
		Plot:           "A thief who steals corporate secrets.",
		ReleaseDate:    "16 Jul 2010",
		Actors:         "Leonardo DiCaprio",
		Director:       "Christopher Nolan",
		Genre:          "Action, Sci-Fi",
	}
}

func newTestDetails(svc *fakeMovieService, store ports.WatchedStore) DetailsModel {
	return NewDetailsModel(svc, store, 10, DefaultStyles())
}

func openMovie(t *testing.T, m DetailsModel, id string) (DetailsModel, tea.Cmd) {
	t.Helper()
	cmd := m.Select(id)
	require.NotNil(t, cmd)
	require.Equal(t, DetailsLoading, m.State())
	return m.Update(cmd())
}

func TestDetailsModel_SelectOpens(t *testing.T) {
	svc := newFakeMovieService()
	svc.details["tt1375666"] = inception()
	m := newTestDetails(svc, watched.New())

	m, cmd := openMovie(t, m, "tt1375666")

	assert.Equal(t, DetailsOpen, m.State())
	assert.Equal(t, "tt1375666", m.SelectedID())
	assert.Equal(t, "Inception", m.Movie().Title)
	require.NotNil(t, cmd, "opening a movie retitles the window")
	assert.Contains(t, m.View(), "Inception")
	assert.Contains(t, m.View(), "Directed by Christopher Nolan")
}

func TestDetailsModel_SelectSameIDToggles(t *testing.T) {
	svc := newFakeMovieService()
	svc.details["tt1375666"] = inception()

	t.Run("From open", func(t *testing.T) {
		m := newTestDetails(svc, watched.New())
		m, _ = openMovie(t, m, "tt1375666")

		cmd := m.Select("tt1375666")

		assert.Equal(t, DetailsClosed, m.State())
		assert.Empty(t, m.SelectedID())
		assert.NotNil(t, cmd, "the window title is restored")
	})

	t.Run("From loading", func(t *testing.T) {
		m := newTestDetails(svc, watched.New())
		fetch := m.Select("tt1375666")

		assert.Nil(t, m.Select("tt1375666"))
		assert.Equal(t, DetailsClosed, m.State())

		m, _ = m.Update(fetch())
		assert.Equal(t, DetailsClosed, m.State(), "a fetch for a closed view is dropped")
	})
}

func TestDetailsModel_LatestSelectionWins(t *testing.T) {
	svc := newFakeMovieService()
	svc.ignoreCancel = true
	svc.details["tt1"] = domain.MovieDetail{ID: "tt1", Title: "First"}
	svc.details["tt2"] = domain.MovieDetail{ID: "tt2", Title: "Second"}
	release := svc.gate("tt1")
	m := newTestDetails(svc, watched.New())

	first := m.Select("tt1")
	done := make(chan tea.Msg, 1)
	go func() { done <- first() }()

	fetch := m.Select("tt2")
	m, _ = m.Update(fetch())
	require.Equal(t, "Second", m.Movie().Title)

	close(release)
	m, cmd := m.Update(<-done)

	assert.Nil(t, cmd)
	assert.Equal(t, DetailsOpen, m.State())
	assert.Equal(t, "tt2", m.SelectedID())
	assert.Equal(t, "Second", m.Movie().Title)
}

func TestDetailsModel_FailureThenRetry(t *testing.T) {
	svc := newFakeMovieService()
	svc.err = fmt.Errorf("fake: %w", domain.ErrTransport)
	m := newTestDetails(svc, watched.New())

	m, _ = openMovie(t, m, "tt1375666")

	assert.Equal(t, DetailsError, m.State())
	assert.Equal(t, "Something went wrong with fetching movies", m.Err())
	assert.Contains(t, m.View(), "Something went wrong")

	svc.err = nil
	svc.details["tt1375666"] = inception()
	m, _ = openMovie(t, m, "tt1375666")

	assert.Equal(t, DetailsOpen, m.State())
	assert.Empty(t, m.Err())
}

func TestDetailsModel_CloseWhenClosedIsNoop(t *testing.T) {
	m := newTestDetails(newFakeMovieService(), watched.New())

	assert.Nil(t, m.Close())
	assert.Equal(t, DetailsClosed, m.State())
}

func TestDetailsModel_AddRequiresRating(t *testing.T) {
	svc := newFakeMovieService()
	svc.details["tt1375666"] = inception()
	m := newTestDetails(svc, watched.New())
	m, _ = openMovie(t, m, "tt1375666")

	m, cmd := m.Update(keyMsg("a"))

	assert.Nil(t, cmd)
	assert.Equal(t, DetailsOpen, m.State())
	assert.NotContains(t, m.View(), "Add to list")
}

func TestDetailsModel_RateAndAdd(t *testing.T) {
	svc := newFakeMovieService()
	svc.details["tt1375666"] = inception()
	m := newTestDetails(svc, watched.New())
	m, _ = openMovie(t, m, "tt1375666")

	m, cmd := m.Update(keyMsg("8"))
	assert.Nil(t, cmd)
	require.Equal(t, 8, m.UserRating())
	assert.Contains(t, m.View(), "Add to list")

	m, cmd = m.Update(keyMsg("a"))
	require.NotNil(t, cmd)

	var added []ports.AddWatchedMsg
	for _, msg := range collect(cmd) {
		if a, ok := msg.(ports.AddWatchedMsg); ok {
			added = append(added, a)
		}
	}
	require.Len(t, added, 1)
	assert.Equal(t, domain.WatchedEntry{
		ID:             "tt1375666",
		Title:          "Inception",
		Year:           "2010",
		IMDbRating:     8.8,
		RuntimeMinutes: 148,
		UserRating:     8,
	}, added[0].Entry)
	assert.Equal(t, DetailsClosed, m.State())
	assert.Zero(t, m.UserRating())
}

func TestDetailsModel_AlreadyWatched(t *testing.T) {
	svc := newFakeMovieService()
	svc.details["tt1375666"] = inception()
	store := watched.New(watched.SampleEntries()...)
	m := newTestDetails(svc, store)
	m, _ = openMovie(t, m, "tt1375666")

	m, _ = m.Update(keyMsg("5"))
	assert.Zero(t, m.UserRating(), "the widget is hidden for watched movies")

	m, cmd := m.Update(keyMsg("a"))
	assert.Nil(t, cmd)
	assert.Equal(t, DetailsOpen, m.State())
	assert.Contains(t, m.View(), "You rated this movie 10 ⭐")
}

func TestDetailsModel_BackKeyCloses(t *testing.T) {
	svc := newFakeMovieService()
	svc.details["tt1375666"] = inception()
	m := newTestDetails(svc, watched.New())
	m, _ = openMovie(t, m, "tt1375666")

	m, cmd := m.Update(keyMsg("b"))

	assert.Equal(t, DetailsClosed, m.State())
	assert.Equal(t, []tea.Msg{tea.SetWindowTitle(defaultWindowTitle)()}, collect(cmd))
}

func TestDetailsModel_BackspaceCloses(t *testing.T) {
	svc := newFakeMovieService()
	svc.details["tt1375666"] = inception()
	m := newTestDetails(svc, watched.New())
	m, _ = openMovie(t, m, "tt1375666")

	m, _ = m.Update(keyMsg("backspace"))

	assert.Equal(t, DetailsClosed, m.State())
}
