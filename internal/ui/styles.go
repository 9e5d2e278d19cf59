package ui

import "github.com/charmbracelet/lipgloss"

var (
	accentColor = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	starColor   = lipgloss.Color("#FCC419")
	errorColor  = lipgloss.Color("#FA5252")
	mutedColor  = lipgloss.AdaptiveColor{Light: "#868E96", Dark: "#5C636A"}
)

type Styles struct {
	App          lipgloss.Style
	Logo         lipgloss.Style
	Box          lipgloss.Style
	ActiveBox    lipgloss.Style
	Help         lipgloss.Style
	ErrorText    lipgloss.Style
	Muted        lipgloss.Style
	Title        lipgloss.Style
	Plot         lipgloss.Style
	ListNormal   lipgloss.Style
	ListSelected lipgloss.Style
	ListPointer  lipgloss.Style
	Spinner      lipgloss.Style
	StarFull     lipgloss.Style
	StarEmpty    lipgloss.Style
	Button       lipgloss.Style
}

func DefaultStyles() Styles {
	s := Styles{}
	s.App = lipgloss.NewStyle().Padding(0, 1)
	s.Logo = lipgloss.NewStyle().Bold(true).Foreground(accentColor).PaddingRight(2)
	s.Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), true).
		BorderForeground(mutedColor).
		Padding(0, 1)
	s.ActiveBox = s.Box.BorderForeground(accentColor)
	s.Help = lipgloss.NewStyle().Foreground(mutedColor)
	s.ErrorText = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	s.Muted = lipgloss.NewStyle().Foreground(mutedColor)
	s.Title = lipgloss.NewStyle().Bold(true)
	s.Plot = lipgloss.NewStyle().Italic(true)
	s.ListNormal = lipgloss.NewStyle()
	s.ListSelected = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	s.ListPointer = lipgloss.NewStyle().Foreground(accentColor).SetString("> ")
	s.Spinner = lipgloss.NewStyle().Foreground(accentColor)
	s.StarFull = lipgloss.NewStyle().Foreground(starColor)
	s.StarEmpty = lipgloss.NewStyle().Foreground(mutedColor)
	s.Button = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	return s
}
