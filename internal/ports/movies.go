package ports

import (
	"context"

	"popcorn/internal/domain"
)

// MovieService looks movies up in the external database. Implementations
// return data or fail; they never touch caller state.
type MovieService interface {
	SearchByTitle(ctx context.Context, query string) ([]domain.SearchResult, error)
	GetByID(ctx context.Context, id string) (domain.MovieDetail, error)
}
