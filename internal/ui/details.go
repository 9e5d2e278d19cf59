package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"popcorn/internal/domain"
	"popcorn/internal/logger"
	"popcorn/internal/ports"
)

type DetailState int

const (
	DetailsClosed DetailState = iota
	DetailsLoading
	DetailsOpen
	DetailsError
)

func (s DetailState) String() string {
	switch s {
	case DetailsLoading:
		return "loading"
	case DetailsOpen:
		return "open"
	case DetailsError:
		return "error"
	default:
		return "closed"
	}
}

// DetailsModel shows the selected movie. At most one movie is selected;
// selecting it again closes the view.
type DetailsModel struct {
	movieService ports.MovieService
	watched      ports.WatchedStore
	requests     *inflight
	state        DetailState
	selectedID   string
	movie        domain.MovieDetail
	errMsg       string
	userRating   int
	rating       RatingModel
	maxRating    int
	titleSet     bool
	spinner      spinner.Model
	width        int
	keys         keyMap
	styles       Styles
}

func NewDetailsModel(service ports.MovieService, watched ports.WatchedStore, maxRating int, styles Styles) DetailsModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	return DetailsModel{
		movieService: service,
		watched:      watched,
		requests:     newInflight("detail"),
		maxRating:    maxRating,
		rating:       NewRatingModel(maxRating, 0, nil, styles),
		spinner:      s,
		keys:         defaultKeyMap(),
		styles:       styles,
	}
}

func (m DetailsModel) State() DetailState        { return m.state }
func (m DetailsModel) SelectedID() string        { return m.selectedID }
func (m DetailsModel) Movie() domain.MovieDetail { return m.movie }
func (m DetailsModel) Err() string               { return m.errMsg }
func (m DetailsModel) UserRating() int           { return m.userRating }

// Mounted reports whether the detail view replaces the watched list.
func (m DetailsModel) Mounted() bool { return m.state != DetailsClosed }

func (m *DetailsModel) SetWidth(w int) { m.width = w }

// Select opens id, or closes the view when id is already open or
// loading. Selecting a movie whose fetch failed retries it.
func (m *DetailsModel) Select(id string) tea.Cmd {
	if (m.state == DetailsOpen || m.state == DetailsLoading) && id == m.selectedID {
		return m.Close()
	}

	ctx, tok := m.requests.begin()
	m.state = DetailsLoading
	m.selectedID = id
	m.movie = domain.MovieDetail{}
	m.errMsg = ""
	m.resetRating()
	logger.FromContext(ctx).Debug().Str("id", id).Msg("Detail requested")
	return detailCmd(ctx, m.movieService, tok, id)
}

func detailCmd(ctx context.Context, service ports.MovieService, tok requestToken, id string) tea.Cmd {
	return func() tea.Msg {
		movie, err := service.GetByID(ctx, id)
		return detailLoadedMsg{token: tok, id: id, movie: movie, err: err}
	}
}

// Close returns to the watched list. It is a no-op while closed.
func (m *DetailsModel) Close() tea.Cmd {
	if !m.Mounted() {
		return nil
	}
	m.requests.abort()
	m.state = DetailsClosed
	m.selectedID = ""
	m.movie = domain.MovieDetail{}
	m.errMsg = ""
	m.resetRating()
	return m.restoreTitle()
}

func (m *DetailsModel) restoreTitle() tea.Cmd {
	if !m.titleSet {
		return nil
	}
	m.titleSet = false
	return tea.SetWindowTitle(defaultWindowTitle)
}

func (m *DetailsModel) resetRating() {
	m.userRating = 0
	m.rating = NewRatingModel(m.maxRating, 0, nil, m.styles)
}

func (m DetailsModel) isWatched() bool {
	if m.watched == nil {
		return false
	}
	_, ok := m.watched.Get(m.selectedID)
	return ok
}

// Add emits the open movie with the user's rating and closes the view. It
// does nothing without a rating or when the movie is already watched.
func (m *DetailsModel) Add() tea.Cmd {
	if m.state != DetailsOpen || m.userRating <= 0 || m.isWatched() {
		return nil
	}
	entry := domain.NewWatchedEntry(m.movie, m.userRating)
	logger.Log.Info().Str("id", entry.ID).Int("rating", entry.UserRating).Msg("Adding movie to watched list")
	addCmd := func() tea.Msg { return ports.AddWatchedMsg{Entry: entry} }
	return tea.Batch(addCmd, m.Close())
}

// Blur is called when the side pane loses focus.
func (m *DetailsModel) Blur() {
	m.rating.Leave()
}

func (m *DetailsModel) handleLoaded(msg detailLoadedMsg) tea.Cmd {
	if !m.requests.finish(msg.token) {
		logger.Log.Debug().Str("id", msg.id).Str("request_id", msg.token.id).Msg("Dropping superseded detail")
		return nil
	}

	if msg.err != nil {
		if errors.Is(msg.err, domain.ErrAborted) || errors.Is(msg.err, context.Canceled) {
			return nil
		}
		logger.Log.Warn().Err(msg.err).Str("id", msg.id).Str("request_id", msg.token.id).Msg("Detail fetch failed")
		m.state = DetailsError
		m.errMsg = domain.UserMessage(msg.err)
		return m.restoreTitle()
	}

	m.state = DetailsOpen
	m.movie = msg.movie
	m.titleSet = true
	return tea.SetWindowTitle("Movie | " + msg.movie.Title)
}

func (m DetailsModel) Update(msg tea.Msg) (DetailsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case detailLoadedMsg:
		cmd := m.handleLoaded(msg)
		return m, cmd
	case spinner.TickMsg:
		if m.state != DetailsLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, m.Close()
		case key.Matches(msg, m.keys.Add):
			return m, m.Add()
		}
		if m.state == DetailsOpen && !m.isWatched() {
			var committed bool
			var r int
			m.rating, r, committed = m.rating.Update(msg)
			if committed {
				m.userRating = r
			}
		}
	}
	return m, nil
}

func (m DetailsModel) View() string {
	switch m.state {
	case DetailsLoading:
		return m.spinner.View() + " Loading..."
	case DetailsError:
		return lipgloss.JoinVertical(lipgloss.Left,
			m.styles.ErrorText.Render("⛔ "+m.errMsg),
			"",
			m.styles.Muted.Render("[b] ← back  •  select the movie again to retry"),
		)
	case DetailsOpen:
		return m.openView()
	}
	return ""
}

func (m DetailsModel) openView() string {
	mv := m.movie
	wrap := lipgloss.NewStyle()
	if m.width > 0 {
		wrap = wrap.Width(m.width)
	}

	header := []string{
		m.styles.Muted.Render("[b] ← back"),
		m.styles.Title.Render(mv.Title),
		fmt.Sprintf("%s • %d min", mv.ReleaseDate, mv.RuntimeMinutes),
		mv.Genre,
		fmt.Sprintf("⭐ %.1f IMDb rating", mv.IMDbRating),
		"",
	}

	var rating string
	if entry, ok := m.watchedEntry(); ok {
		rating = fmt.Sprintf("You rated this movie %d ⭐", entry.UserRating)
	} else {
		lines := []string{m.rating.View()}
		if m.userRating > 0 {
			lines = append(lines, m.styles.Button.Render("[a] + Add to list"))
		}
		rating = strings.Join(lines, "\n")
	}

	body := []string{
		"",
		wrap.Inherit(m.styles.Plot).Render(mv.Plot),
		wrap.Render("Starring " + mv.Actors),
		wrap.Render("Directed by " + mv.Director),
	}

	return lipgloss.JoinVertical(lipgloss.Left, append(append(header, rating), body...)...)
}

func (m DetailsModel) watchedEntry() (domain.WatchedEntry, bool) {
	if m.watched == nil {
		return domain.WatchedEntry{}, false
	}
	return m.watched.Get(m.selectedID)
}
