package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserMessage(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "No error", err: nil, expected: ""},
		{name: "Aborted", err: fmt.Errorf("search: %w: %w", ErrAborted, context.Canceled), expected: ""},
		{name: "Not found", err: fmt.Errorf("search: %w: Movie not found!", ErrNotFound), expected: "Movie not found!"},
		{name: "Transport", err: fmt.Errorf("search: %w: status 500", ErrTransport), expected: "Something went wrong with fetching movies"},
		{name: "Parse", err: fmt.Errorf("detail: %w", ErrParse), expected: "Something went wrong with fetching movies"},
		{name: "Unknown", err: errors.New("boom"), expected: "Something went wrong with fetching movies"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, UserMessage(tc.err))
		})
	}
}
