package ports

import "popcorn/internal/domain"

type ConfigService interface {
	Load() (domain.Config, error)
}
