package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/datemate/internal/domain"
)

// ErrNotFound is wrapped by every lookup that finds no row.
var ErrNotFound = errors.New("not found")

// SpotFilter narrows a catalog search. Zero values disable a criterion.
type SpotFilter struct {
	// Location matches as a substring of the area name, address or id.
	Location   string
	Categories []domain.Category
	MaxCost    float64
	MinRating  float64
	Limit      int
}

type SpotRepo interface {
	Create(ctx context.Context, s *domain.Spot) error
	Upsert(ctx context.Context, s *domain.Spot) error
	GetByID(ctx context.Context, id string) (*domain.Spot, error)
	List(ctx context.Context) ([]*domain.Spot, error)
	Search(ctx context.Context, f SpotFilter) ([]*domain.Spot, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
