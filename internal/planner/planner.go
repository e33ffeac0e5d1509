// Package planner turns a set of candidate venues into a timed itinerary
// and mutates existing itineraries (pace, budget, replacement).
package planner

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/datemate/internal/domain"
)

// ErrInvalidInput is returned when the planner is handed spots or
// preferences it cannot plan with.
var ErrInvalidInput = errors.New("invalid planner input")

const (
	// MaxStops caps how many venues a plan visits.
	MaxStops = 5
	// SpotBuffer is added to every venue's visit duration.
	SpotBuffer = 15
	// TravelGap separates stops at allocation time and is the default leg
	// duration when re-timing a plan without transport data.
	TravelGap = 30
	// MaxVisitMin is the longest venue duration whose stop, buffer included,
	// stays shorter than a day.
	MaxVisitMin = 24*60 - SpotBuffer - 1

	defaultTitleLocation = "서울"
)

// DefaultStart is used when no start time is given or it cannot be parsed.
var DefaultStart = domain.NewClock(10, 0)

// Preferences are the user inputs that shape a plan.
type Preferences struct {
	Location  string
	Budget    *float64
	Interests []string
	StartTime string
	PartySize int
}

type Planner struct {
	now func() time.Time
}

type Option func(*Planner)

// WithClock overrides the time source used for plan timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *Planner) { p.now = now }
}

func New(opts ...Option) *Planner {
	p := &Planner{now: time.Now}
	for _, o := range opts {
		o(p)
	}
	return p
}

// CreateDatePlan filters and scores spots, orders them by locality,
// allocates time slots from the preferred start and links transport between
// consecutive stops. No spots surviving the budget filter yields an empty
// plan, not an error.
func (p *Planner) CreateDatePlan(spots []domain.Spot, prefs Preferences, date time.Time) (*domain.DatePlan, error) {
	if prefs.PartySize < 0 {
		return nil, fmt.Errorf("%w: party size %d", ErrInvalidInput, prefs.PartySize)
	}
	for _, s := range spots {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if s.DurationMin > MaxVisitMin {
			return nil, fmt.Errorf("%w: spot %s lasts %d minutes, max %d", ErrInvalidInput, s.ID, s.DurationMin, MaxVisitMin)
		}
	}

	chosen := OptimizeSpots(spots, prefs.Budget, prefs.Interests)
	if len(chosen) > 1 {
		chosen = OrderByLocality(chosen)
	}

	items := AllocateTimeSlots(chosen, ParseStartTime(prefs.StartTime))
	if len(items) > 1 {
		AttachTransportation(items)
	}
	annotateClosures(items, date.Weekday())

	title := domain.CoalesceStr(prefs.Location, defaultTitleLocation) + " 데이트 플랜"
	plan := domain.NewDatePlan(title, date, prefs.PartySize, p.now())
	plan.Items = items
	plan.Recalculate()
	return plan, nil
}
