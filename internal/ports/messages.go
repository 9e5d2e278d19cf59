package ports

import "popcorn/internal/domain"

type FocusState int

const (
	InputFocus FocusState = iota
	ResultsFocus
	SideFocus
)

type ChangeFocusMsg struct{ NewFocus FocusState }

type SelectMovieMsg struct{ ID string }

type AddWatchedMsg struct{ Entry domain.WatchedEntry }
type DeleteWatchedMsg struct{ ID string }

