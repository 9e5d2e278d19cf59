package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"popcorn/internal/domain"
	"popcorn/internal/ports"
)

type watchedItem struct {
	entry domain.WatchedEntry
}

func (i watchedItem) FilterValue() string { return i.entry.Title }
func (i watchedItem) ID() string          { return i.entry.ID }
func (i watchedItem) Line() string {
	return fmt.Sprintf("%s  ⭐ %.1f  🌟 %d  ⏳ %d min",
		i.entry.Title, i.entry.IMDbRating, i.entry.UserRating, i.entry.RuntimeMinutes)
}

// WatchedModel renders the watched list and its summary.
type WatchedModel struct {
	store       ports.WatchedStore
	watchedList list.Model
	keys        keyMap
	styles      Styles
}

func NewWatchedModel(store ports.WatchedStore, styles Styles) WatchedModel {
	m := WatchedModel{
		store:       store,
		watchedList: newList(styles),
		keys:        defaultKeyMap(),
		styles:      styles,
	}
	m.Refresh()
	return m
}

// Refresh reloads the rows from the store after it changed.
func (m *WatchedModel) Refresh() {
	entries := m.store.Entries()
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = watchedItem{entry: e}
	}
	m.watchedList.SetItems(items)
	if idx := m.watchedList.Index(); idx >= len(items) && len(items) > 0 {
		m.watchedList.Select(len(items) - 1)
	}
}

func (m *WatchedModel) SetSize(w, h int) {
	m.watchedList.SetSize(w, max(h-summaryHeight, 1))
}

func (m WatchedModel) Update(msg tea.Msg) (WatchedModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.keys.Delete) {
		if item, ok := m.watchedList.SelectedItem().(watchedItem); ok {
			id := item.ID()
			return m, func() tea.Msg { return ports.DeleteWatchedMsg{ID: id} }
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.watchedList, cmd = m.watchedList.Update(msg)
	return m, cmd
}

const summaryHeight = 3

func (m WatchedModel) summaryView() string {
	s := m.store.Summary()
	stats := fmt.Sprintf("#️⃣ %d movies   ⭐ %.1f   🌟 %.1f   ⏳ %.0f min",
		s.Count, s.AvgIMDbRating, s.AvgUserRating, s.AvgRuntime)
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render("MOVIES YOU WATCHED"),
		stats,
		"",
	)
}

func (m WatchedModel) View() string {
	body := m.watchedList.View()
	if len(m.watchedList.Items()) == 0 {
		body = m.styles.Muted.Render("Rate a movie to add it here.")
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.summaryView(), body)
}
