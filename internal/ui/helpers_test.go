package ui

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"popcorn/internal/domain"
	"popcorn/internal/ports"
)

// fakeMovieService answers from maps. A gate registered for a query or id
// holds that lookup until the gate is closed.
type fakeMovieService struct {
	mu           sync.Mutex
	searchCalls  []string
	detailCalls  []string
	contexts     map[string]context.Context
	results      map[string][]domain.SearchResult
	details      map[string]domain.MovieDetail
	gates        map[string]chan struct{}
	err          error
	ignoreCancel bool
}

func newFakeMovieService() *fakeMovieService {
	return &fakeMovieService{
		contexts: map[string]context.Context{},
		results:  map[string][]domain.SearchResult{},
		details:  map[string]domain.MovieDetail{},
		gates:    map[string]chan struct{}{},
	}
}

func (f *fakeMovieService) gate(key string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[key] = ch
	return ch
}

func (f *fakeMovieService) enter(ctx context.Context, key string, calls *[]string) error {
	f.mu.Lock()
	*calls = append(*calls, key)
	f.contexts[key] = ctx
	gate := f.gates[key]
	f.mu.Unlock()

	if gate == nil {
		return nil
	}
	if f.ignoreCancel {
		<-gate
		return nil
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("fake: %w: %w", domain.ErrAborted, ctx.Err())
	}
}

func (f *fakeMovieService) SearchByTitle(ctx context.Context, query string) ([]domain.SearchResult, error) {
	if err := f.enter(ctx, query, &f.searchCalls); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	results, ok := f.results[query]
	if !ok {
		return nil, fmt.Errorf("fake: %w", domain.ErrNotFound)
	}
	return results, nil
}

func (f *fakeMovieService) GetByID(ctx context.Context, id string) (domain.MovieDetail, error) {
	if err := f.enter(ctx, id, &f.detailCalls); err != nil {
		return domain.MovieDetail{}, err
	}
	if f.err != nil {
		return domain.MovieDetail{}, f.err
	}
	movie, ok := f.details[id]
	if !ok {
		return domain.MovieDetail{}, fmt.Errorf("fake: %w", domain.ErrNotFound)
	}
	return movie, nil
}

func (f *fakeMovieService) searchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.searchCalls)
}

func (f *fakeMovieService) contextFor(key string) context.Context {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.contexts[key]
}

// collect runs cmd and every command of a batch it expands to. Only use it
// on commands that return immediately.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func results(titles ...string) []domain.SearchResult {
	out := make([]domain.SearchResult, len(titles))
	for i, t := range titles {
		out[i] = domain.SearchResult{ID: fmt.Sprintf("tt%d", i+1), Title: t, Year: "2000"}
	}
	return out
}

func selectMsg(id string) tea.Msg {
	return ports.SelectMovieMsg{ID: id}
}
