package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	fullStar  = "★"
	emptyStar = "☆"
)

// RatingModel is a star picker. Rating is the committed value, preview is
// the transient value shown while the cursor hovers over a star.
type RatingModel struct {
	maxRating int
	rating    int
	preview   int
	messages  []string
	keys      keyMap
	styles    Styles
}

func NewRatingModel(maxRating, defaultRating int, messages []string, styles Styles) RatingModel {
	if maxRating < 1 {
		maxRating = 5
	}
	if defaultRating < 0 || defaultRating > maxRating {
		defaultRating = 0
	}
	return RatingModel{
		maxRating: maxRating,
		rating:    defaultRating,
		messages:  messages,
		keys:      defaultKeyMap(),
		styles:    styles,
	}
}

func (m RatingModel) MaxRating() int { return m.maxRating }
func (m RatingModel) Rating() int    { return m.rating }
func (m RatingModel) Preview() int   { return m.preview }

// Display is the value the widget currently shows.
func (m RatingModel) Display() int {
	if m.preview > 0 {
		return m.preview
	}
	return m.rating
}

// Hover previews star i (zero based) without committing it.
func (m *RatingModel) Hover(i int) {
	if i < 0 || i >= m.maxRating {
		return
	}
	m.preview = i + 1
}

// Leave drops the preview so the committed rating shows again.
func (m *RatingModel) Leave() {
	m.preview = 0
}

// Click commits star i and returns the new rating.
func (m *RatingModel) Click(i int) int {
	if i >= 0 && i < m.maxRating {
		m.rating = i + 1
	}
	return m.rating
}

func (m RatingModel) isFull(i int) bool {
	return m.Display() >= i+1
}

// Update maps keys onto pointer interaction: arrows move the hover
// preview, enter or space clicks the previewed star and digits click a
// star directly. committed is true when the rating was set.
func (m RatingModel) Update(msg tea.Msg) (RatingModel, int, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.rating, false
	}

	switch {
	case key.Matches(keyMsg, m.keys.StarNext):
		m.Hover(min(m.Display(), m.maxRating-1))
	case key.Matches(keyMsg, m.keys.StarPrev):
		m.Hover(max(m.Display()-2, 0))
	case key.Matches(keyMsg, m.keys.StarCommit):
		if m.preview == 0 {
			return m, m.rating, false
		}
		r := m.Click(m.preview - 1)
		m.Leave()
		return m, r, true
	case key.Matches(keyMsg, m.keys.Rate):
		d, err := strconv.Atoi(keyMsg.String())
		if err != nil {
			return m, m.rating, false
		}
		if d == 0 {
			d = 10
		}
		if d <= m.maxRating {
			r := m.Click(d - 1)
			m.Leave()
			return m, r, true
		}
	}
	return m, m.rating, false
}

func (m RatingModel) label() string {
	d := m.Display()
	if len(m.messages) == m.maxRating {
		if d > 0 {
			return m.messages[d-1]
		}
		return ""
	}
	if d > 0 {
		return strconv.Itoa(d)
	}
	return ""
}

func (m RatingModel) View() string {
	var b strings.Builder
	for i := 0; i < m.maxRating; i++ {
		if m.isFull(i) {
			b.WriteString(m.styles.StarFull.Render(fullStar))
		} else {
			b.WriteString(m.styles.StarEmpty.Render(emptyStar))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, b.String(), "  ", m.styles.StarFull.Render(m.label()))
}
