package ui

import "popcorn/internal/ports"

// focusRing cycles keyboard focus through the panes with tab and
// shift+tab, skipping panes that are hidden.
type focusRing struct {
	panes  []ports.FocusState
	active int
}

func newFocusRing() focusRing {
	return focusRing{
		panes: []ports.FocusState{ports.InputFocus, ports.ResultsFocus, ports.SideFocus},
	}
}

func (r focusRing) Current() ports.FocusState { return r.panes[r.active] }

func (r *focusRing) Set(f ports.FocusState) {
	for i, p := range r.panes {
		if p == f {
			r.active = i
			return
		}
	}
}

func (r *focusRing) Next(visible func(ports.FocusState) bool) {
	for range r.panes {
		r.active = (r.active + 1) % len(r.panes)
		if visible(r.Current()) {
			return
		}
	}
}

func (r *focusRing) Prev(visible func(ports.FocusState) bool) {
	for range r.panes {
		r.active--
		if r.active < 0 {
			r.active = len(r.panes) - 1
		}
		if visible(r.Current()) {
			return
		}
	}
}
