package ports

import "popcorn/internal/domain"

type WatchedStore interface {
	Add(entry domain.WatchedEntry)
	Remove(id string)
	Get(id string) (domain.WatchedEntry, bool)
	Entries() []domain.WatchedEntry
	Summary() domain.Summary
}
