package ui

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"popcorn/internal/domain"
	"popcorn/internal/logger"
	"popcorn/internal/ports"
)

type searchItem struct {
	result domain.SearchResult
}

func (i searchItem) FilterValue() string { return i.result.Title }
func (i searchItem) ID() string          { return i.result.ID }
func (i searchItem) Line() string {
	if i.result.Year == "" {
		return i.result.Title
	}
	return fmt.Sprintf("%s  🗓 %s", i.result.Title, i.result.Year)
}

// SearchModel owns the query and the result list. Every edit of the query
// supersedes the lookup in flight.
type SearchModel struct {
	movieService   ports.MovieService
	minQueryLength int
	textInput      textinput.Model
	resultsList    list.Model
	spinner        spinner.Model
	requests       *inflight
	started        int
	query          string
	results        []domain.SearchResult
	isLoading      bool
	errMsg         string
	keys           keyMap
	styles         Styles
}

func NewSearchModel(service ports.MovieService, minQueryLength int, styles Styles) SearchModel {
	ti := textinput.New()
	ti.Placeholder = "Search movies..."
	ti.Prompt = "🔍 "
	ti.CharLimit = 156
	ti.Width = 40
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	if minQueryLength < 1 {
		minQueryLength = 1
	}

	return SearchModel{
		movieService:   service,
		minQueryLength: minQueryLength,
		textInput:      ti,
		resultsList:    newList(styles),
		spinner:        s,
		requests:       newInflight("search"),
		keys:           defaultKeyMap(),
		styles:         styles,
	}
}

func (m SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m SearchModel) Query() string                  { return m.query }
func (m SearchModel) Results() []domain.SearchResult { return m.results }
func (m SearchModel) Err() string                    { return m.errMsg }
func (m SearchModel) IsLoading() bool                { return m.isLoading }

// Generation counts the lookups started so far. It changes exactly when a
// new search begins.
func (m SearchModel) Generation() int { return m.started }

func (m *SearchModel) FocusInput() tea.Cmd { return m.textInput.Focus() }
func (m *SearchModel) BlurInput()          { m.textInput.Blur() }

func (m *SearchModel) SetSize(w, h int) {
	m.textInput.Width = max(w-4, 10)
	m.resultsList.SetSize(w, h)
}

// SetQuery applies a new query. Queries shorter than the minimum clear the
// results without a lookup; longer ones return the lookup command.
func (m *SearchModel) SetQuery(query string) tea.Cmd {
	m.query = query
	if utf8.RuneCountInString(query) < m.minQueryLength {
		m.requests.abort()
		m.setResults(nil)
		m.errMsg = ""
		m.isLoading = false
		return nil
	}

	ctx, tok := m.requests.begin()
	m.started++
	m.isLoading = true
	m.errMsg = ""
	logger.FromContext(ctx).Debug().Str("query", query).Msg("Search started")
	return searchCmd(ctx, m.movieService, tok, query)
}

func searchCmd(ctx context.Context, service ports.MovieService, tok requestToken, query string) tea.Cmd {
	return func() tea.Msg {
		results, err := service.SearchByTitle(ctx, query)
		return searchResultsMsg{token: tok, query: query, results: results, err: err}
	}
}

func (m *SearchModel) setResults(results []domain.SearchResult) {
	m.results = results
	items := make([]list.Item, len(results))
	for i, r := range results {
		items[i] = searchItem{result: r}
	}
	m.resultsList.SetItems(items)
	m.resultsList.ResetSelected()
}

func (m *SearchModel) handleResults(msg searchResultsMsg) {
	if !m.requests.finish(msg.token) {
		logger.Log.Debug().Str("query", msg.query).Str("request_id", msg.token.id).Msg("Dropping superseded search result")
		return
	}
	m.isLoading = false

	if msg.err != nil {
		if errors.Is(msg.err, domain.ErrAborted) || errors.Is(msg.err, context.Canceled) {
			return
		}
		logger.Log.Warn().Err(msg.err).Str("query", msg.query).Str("request_id", msg.token.id).Msg("Search failed")
		m.setResults(nil)
		m.errMsg = domain.UserMessage(msg.err)
		return
	}

	m.setResults(msg.results)
	m.errMsg = ""
}

// Update handles lookup results and spinner ticks. Keys are routed through
// UpdateInput and UpdateResults by the app depending on focus.
func (m SearchModel) Update(msg tea.Msg) (SearchModel, tea.Cmd) {
	switch msg := msg.(type) {
	case searchResultsMsg:
		m.handleResults(msg)
		return m, nil
	case spinner.TickMsg:
		if !m.isLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m SearchModel) UpdateInput(msg tea.Msg) (SearchModel, tea.Cmd) {
	var cmds []tea.Cmd

	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.keys.Browse) {
		if len(m.results) > 0 {
			return m, func() tea.Msg { return ports.ChangeFocusMsg{NewFocus: ports.ResultsFocus} }
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	cmds = append(cmds, cmd)

	if value := m.textInput.Value(); value != m.query {
		if fetch := m.SetQuery(value); fetch != nil {
			cmds = append(cmds, fetch, m.spinner.Tick)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m SearchModel) UpdateResults(msg tea.Msg) (SearchModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.keys.Select) {
		if item, ok := m.resultsList.SelectedItem().(searchItem); ok {
			id := item.ID()
			return m, func() tea.Msg { return ports.SelectMovieMsg{ID: id} }
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.resultsList, cmd = m.resultsList.Update(msg)
	return m, cmd
}

func (m SearchModel) InputView() string {
	return m.textInput.View()
}

func (m SearchModel) CountView() string {
	return fmt.Sprintf("Found %d results", len(m.results))
}

func (m SearchModel) View() string {
	switch {
	case m.isLoading:
		return m.spinner.View() + " Loading..."
	case m.errMsg != "":
		return m.styles.ErrorText.Render("⛔ " + m.errMsg)
	case len(m.results) == 0:
		return m.styles.Muted.Render(fmt.Sprintf("Type at least %d characters to search.", m.minQueryLength))
	default:
		return m.resultsList.View()
	}
}
