package testutil

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/alexanderramin/datemate/internal/domain"
)

var testSpotCounter atomic.Int64

// SpotOption customizes a test spot.
type SpotOption func(*domain.Spot)

func WithCategory(c domain.Category) SpotOption {
	return func(s *domain.Spot) { s.Category = c }
}

func WithCoords(lat, lng float64) SpotOption {
	return func(s *domain.Spot) {
		s.Location.Latitude = lat
		s.Location.Longitude = lng
	}
}

func WithCost(cost int) SpotOption {
	return func(s *domain.Spot) {
		s.EstimatedCost = cost
		s.PriceRange = domain.PriceRangeForCost(cost)
	}
}

func WithRating(r float64) SpotOption {
	return func(s *domain.Spot) { s.Rating = r }
}

func WithDuration(min int) SpotOption {
	return func(s *domain.Spot) { s.DurationMin = min }
}

func WithAddress(area, address string) SpotOption {
	return func(s *domain.Spot) {
		s.Location.Name = area
		s.Location.Address = address
	}
}

func WithHours(hours map[string]string) SpotOption {
	return func(s *domain.Spot) { s.OpeningHours = hours }
}

func WithNotes(highlights, tips []string) SpotOption {
	return func(s *domain.Spot) {
		s.Highlights = highlights
		s.Tips = tips
	}
}

// NewTestSpot returns a valid Seoul cafe unless options say otherwise.
func NewTestSpot(name string, opts ...SpotOption) domain.Spot {
	n := testSpotCounter.Add(1)
	s := domain.Spot{
		ID:       "test_" + strconv.FormatInt(n, 10),
		Name:     name,
		Category: domain.CategoryCafe,
		Location: domain.Location{
			Name:      name,
			Latitude:  37.5665,
			Longitude: 126.9780,
			Address:   "서울특별시 중구 세종대로 110",
		},
		Rating:        4.0,
		ReviewCount:   100,
		DurationMin:   90,
		EstimatedCost: 10000,
		PriceRange:    domain.PriceMedium,
		Description:   name + " 설명",
	}
	for _, o := range opts {
		o(&s)
	}
	return s
}

// SeoulSpots is the small Seoul catalog used by dialog and planner tests.
func SeoulSpots() []domain.Spot {
	return []domain.Spot{
		NewTestSpot("경복궁", WithCategory(domain.CategoryCulturalSite), WithCoords(37.5796, 126.9770),
			WithRating(4.5), WithCost(3000), WithDuration(120), WithAddress("경복궁", "서울특별시 종로구 사직로 161")),
		NewTestSpot("창덕궁", WithCategory(domain.CategoryCulturalSite), WithCoords(37.5794, 126.9910),
			WithRating(4.6), WithCost(3000), WithDuration(150), WithAddress("창덕궁", "서울특별시 종로구 율곡로 99")),
		NewTestSpot("국립중앙박물관", WithCategory(domain.CategoryMuseum), WithCoords(37.5240, 126.9803),
			WithRating(4.4), WithCost(0), WithDuration(180), WithAddress("국립중앙박물관", "서울특별시 용산구 서빙고로 137")),
	}
}

// StubExtractor returns canned entities per exact input text; unknown text
// yields empty entities. Err, when set, is returned for every call.
type StubExtractor struct {
	mu       sync.Mutex
	Entities map[string]domain.Entities
	Err      error
	Calls    int
}

func (s *StubExtractor) Extract(ctx context.Context, text string) (domain.Entities, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	if err := ctx.Err(); err != nil {
		return domain.Entities{}, err
	}
	if s.Err != nil {
		return domain.Entities{}, s.Err
	}
	return s.Entities[text], nil
}

// StubSearcher returns Spots for every search and records the arguments.
type StubSearcher struct {
	mu    sync.Mutex
	Spots []domain.Spot
	Err   error
	Calls []SearchCall
}

type SearchCall struct {
	Location      string
	Interests     []string
	BudgetPerSpot float64
}

func (s *StubSearcher) Search(ctx context.Context, location string, interests []string, budgetPerSpot float64) ([]domain.Spot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, SearchCall{Location: location, Interests: append([]string(nil), interests...), BudgetPerSpot: budgetPerSpot})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]domain.Spot(nil), s.Spots...), nil
}

// SearchCount is safe to call while searches are running.
func (s *StubSearcher) SearchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Calls)
}
