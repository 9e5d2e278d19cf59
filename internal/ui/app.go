package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"popcorn/internal/domain"
	"popcorn/internal/logger"
	"popcorn/internal/ports"
)

const (
	MIN_WIDTH  = 60
	MIN_HEIGHT = 15
)

// AppModel wires the search, details and watched panes together. It owns
// all state; children only change through the messages routed here.
type AppModel struct {
	width, height int
	movieService  ports.MovieService
	store         ports.WatchedStore
	focus         focusRing
	search        SearchModel
	details       DetailsModel
	watched       WatchedModel
	help          help.Model
	keys          keyMap
	showResults   bool
	showSide      bool
	styles        Styles
}

func InitialModel(service ports.MovieService, store ports.WatchedStore, cfg domain.Config) AppModel {
	styles := DefaultStyles()
	return AppModel{
		movieService: service,
		store:        store,
		focus:        newFocusRing(),
		search:       NewSearchModel(service, cfg.MinQueryLength, styles),
		details:      NewDetailsModel(service, store, cfg.MaxRating, styles),
		watched:      NewWatchedModel(store, styles),
		help:         help.New(),
		keys:         defaultKeyMap(),
		showResults:  true,
		showSide:     true,
		styles:       styles,
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.SetWindowTitle(defaultWindowTitle))
}

func (m AppModel) Focus() ports.FocusState { return m.focus.Current() }

func (m AppModel) visible(f ports.FocusState) bool {
	switch f {
	case ports.ResultsFocus:
		return m.showResults
	case ports.SideFocus:
		return m.showSide
	}
	return true
}

func (m *AppModel) setFocus(f ports.FocusState) tea.Cmd {
	prev := m.focus.Current()
	m.focus.Set(f)
	return m.applyFocus(prev)
}

func (m *AppModel) applyFocus(prev ports.FocusState) tea.Cmd {
	cur := m.focus.Current()
	if prev == cur {
		return nil
	}
	if prev == ports.SideFocus {
		m.details.Blur()
	}
	if cur == ports.InputFocus {
		return m.search.FocusInput()
	}
	m.search.BlurInput()
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ports.ChangeFocusMsg:
		return m, m.setFocus(msg.NewFocus)

	case ports.SelectMovieMsg:
		if cmd := m.details.Select(msg.ID); cmd != nil {
			cmds = append(cmds, cmd)
		}
		if m.details.State() == DetailsLoading {
			cmds = append(cmds, m.details.spinner.Tick)
			m.showSide = true
			cmds = append(cmds, m.setFocus(ports.SideFocus))
		}
		return m, tea.Batch(cmds...)

	case ports.AddWatchedMsg:
		if _, ok := m.store.Get(msg.Entry.ID); ok {
			logger.Log.Warn().Str("id", msg.Entry.ID).Msg("Movie already in watched list, ignoring add")
			return m, nil
		}
		m.store.Add(msg.Entry)
		m.watched.Refresh()
		logger.Log.Info().Str("id", msg.Entry.ID).Int("watched", len(m.store.Entries())).Msg("Movie added to watched list")
		return m, nil

	case ports.DeleteWatchedMsg:
		m.store.Remove(msg.ID)
		m.watched.Refresh()
		logger.Log.Info().Str("id", msg.ID).Msg("Movie removed from watched list")
		return m, nil

	case searchResultsMsg:
		m.search, cmd = m.search.Update(msg)
		return m, cmd

	case detailLoadedMsg:
		m.details, cmd = m.details.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		m.search, cmd = m.search.Update(msg)
		cmds = append(cmds, cmd)
		m.details, cmd = m.details.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	m.search, cmd = m.search.UpdateInput(msg)
	return m, cmd
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	focus := m.focus.Current()

	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Close):
		// Escape only ever closes the detail view.
		return m, m.details.Close()
	case key.Matches(msg, m.keys.Next):
		m.focus.Next(m.visible)
		return m, m.applyFocus(focus)
	case key.Matches(msg, m.keys.Prev):
		m.focus.Prev(m.visible)
		return m, m.applyFocus(focus)
	}

	if focus != ports.InputFocus {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.ToggleLeft):
			m.showResults = !m.showResults
			if !m.showResults && focus == ports.ResultsFocus {
				return m, m.setFocus(ports.InputFocus)
			}
			return m, nil
		case key.Matches(msg, m.keys.ToggleSide):
			m.showSide = !m.showSide
			if !m.showSide && focus == ports.SideFocus {
				return m, m.setFocus(ports.InputFocus)
			}
			return m, nil
		}
	}

	switch focus {
	case ports.InputFocus:
		generation := m.search.Generation()
		m.search, cmd = m.search.UpdateInput(msg)
		if m.search.Generation() != generation {
			// A new search always closes the open movie.
			return m, tea.Batch(cmd, m.details.Close())
		}
		return m, cmd
	case ports.ResultsFocus:
		m.search, cmd = m.search.UpdateResults(msg)
		return m, cmd
	default:
		if m.details.Mounted() {
			m.details, cmd = m.details.Update(msg)
			return m, cmd
		}
		m.watched, cmd = m.watched.Update(msg)
		return m, cmd
	}
}

func (m *AppModel) paneWidths() (int, int) {
	available := m.width - m.styles.App.GetHorizontalFrameSize()
	frame := m.styles.Box.GetHorizontalFrameSize()
	switch {
	case m.showResults && m.showSide:
		left := available / 2
		return left - frame, available - left - frame
	case m.showResults:
		return available - frame, 0
	case m.showSide:
		return 0, available - frame
	}
	return 0, 0
}

func (m *AppModel) paneHeight() int {
	return m.height - headerHeight - helpHeight - m.styles.Box.GetVerticalFrameSize()
}

const (
	headerHeight = 2
	helpHeight   = 1
)

func (m *AppModel) resize() {
	left, right := m.paneWidths()
	h := max(m.paneHeight(), 1)
	m.search.SetSize(max(left, 10), h)
	m.details.SetWidth(right)
	m.watched.SetSize(max(right, 10), h)
}

func (m AppModel) box(content string, w, h int, active bool) string {
	style := m.styles.Box
	if active {
		style = m.styles.ActiveBox
	}
	return style.
		Width(w + style.GetHorizontalPadding()).
		Height(h + style.GetVerticalPadding()).
		MaxHeight(h + style.GetVerticalFrameSize()).
		Render(content)
}

func (m AppModel) View() string {
	if m.width < MIN_WIDTH || m.height < MIN_HEIGHT {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, "Terminal too small")
	}

	m.resize()
	focus := m.focus.Current()
	left, right := m.paneWidths()
	h := m.paneHeight()

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		m.styles.Logo.Render("🍿 usePopcorn"),
		m.search.InputView(),
		"  ",
		m.styles.Muted.Render(m.search.CountView()),
	)

	var panes []string
	if m.showResults {
		panes = append(panes, m.box(m.search.View(), left, h, focus == ports.ResultsFocus))
	}
	if m.showSide {
		side := m.watched.View()
		if m.details.Mounted() {
			side = m.details.View()
		}
		panes = append(panes, m.box(side, right, h, focus == ports.SideFocus))
	}

	main := lipgloss.JoinHorizontal(lipgloss.Top, panes...)
	helpView := m.styles.Help.Render(m.help.View(m.keys))

	return m.styles.App.Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		main,
		helpView,
	))
}
