package ui

import "popcorn/internal/domain"

const defaultWindowTitle = "usePopcorn"

type searchResultsMsg struct {
	token   requestToken
	query   string
	results []domain.SearchResult
	err     error
}

type detailLoadedMsg struct {
	token requestToken
	id    string
	movie domain.MovieDetail
	err   error
}
