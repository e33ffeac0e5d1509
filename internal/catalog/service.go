package catalog

import (
	"context"

	"github.com/alexanderramin/datemate/internal/domain"
	"github.com/alexanderramin/datemate/internal/repository"
)

// DefaultLimit caps the number of candidates a search returns.
const DefaultLimit = 10

// Searcher finds candidate venues for a query. budgetPerSpot <= 0 means
// no cost ceiling.
type Searcher interface {
	Search(ctx context.Context, location string, interests []string, budgetPerSpot float64) ([]domain.Spot, error)
}

// Service is the catalog backed by a SpotRepo.
type Service struct {
	repo      repository.SpotRepo
	limit     int
	minRating float64
}

type Option func(*Service)

func WithLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.limit = n
		}
	}
}

// WithMinRating hides venues rated below r.
func WithMinRating(r float64) Option {
	return func(s *Service) { s.minRating = r }
}

func NewService(repo repository.SpotRepo, opts ...Option) *Service {
	s := &Service{repo: repo, limit: DefaultLimit}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Search matches location against area, address or id. Interests that name
// no category are ignored; when none do, every category qualifies.
func (s *Service) Search(ctx context.Context, location string, interests []string, budgetPerSpot float64) ([]domain.Spot, error) {
	found, err := s.repo.Search(ctx, repository.SpotFilter{
		Location:   location,
		Categories: CategoriesFor(interests),
		MaxCost:    budgetPerSpot,
		MinRating:  s.minRating,
		Limit:      s.limit,
	})
	if err != nil {
		return nil, err
	}
	spots := make([]domain.Spot, len(found))
	for i, sp := range found {
		spots[i] = *sp
	}
	return spots, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Spot, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*domain.Spot, error) {
	return s.repo.List(ctx)
}

// CategoriesFor maps interests to distinct categories, preserving order.
func CategoriesFor(interests []string) []domain.Category {
	var out []domain.Category
	seen := make(map[domain.Category]bool)
	for _, in := range interests {
		c, ok := domain.ParseCategory(in)
		if !ok || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
