package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidSpot is returned when a spot violates its construction invariants.
var ErrInvalidSpot = errors.New("invalid spot")

type Location struct {
	Name      string
	Latitude  float64
	Longitude float64
	Address   string
}

// Spot is a read-only catalog venue. Plans hold copies; mutation of a plan
// swaps the copy, never edits it.
type Spot struct {
	ID          string
	Name        string
	Category    Category
	Location    Location
	Rating      float64
	ReviewCount int

	// OpeningHours maps a weekday label (월..일) to "HH:MM-HH:MM",
	// "24시간", "연중무휴", or a closed marker such as "휴관".
	OpeningHours map[string]string

	DurationMin   int
	PriceRange    PriceRange
	EstimatedCost int

	Description   string
	Highlights    []string
	Tips          []string
	Accessibility string
	Parking       bool
	Contact       string
	Website       string
}

// NewSpot fills the price tier from the cost when it is unset and validates
// the result.
func NewSpot(s Spot) (Spot, error) {
	if s.PriceRange == "" {
		s.PriceRange = PriceRangeForCost(s.EstimatedCost)
	}
	if err := s.Validate(); err != nil {
		return Spot{}, err
	}
	return s, nil
}

func (s Spot) Validate() error {
	switch {
	case strings.TrimSpace(s.ID) == "":
		return fmt.Errorf("%w: id is required", ErrInvalidSpot)
	case strings.TrimSpace(s.Name) == "":
		return fmt.Errorf("%w: %s: name is required", ErrInvalidSpot, s.ID)
	case !s.Category.Valid():
		return fmt.Errorf("%w: %s: unknown category %q", ErrInvalidSpot, s.ID, s.Category)
	case s.Rating < 0 || s.Rating > 5:
		return fmt.Errorf("%w: %s: rating %.1f outside [0,5]", ErrInvalidSpot, s.ID, s.Rating)
	case s.DurationMin <= 0:
		return fmt.Errorf("%w: %s: duration must be positive, got %d", ErrInvalidSpot, s.ID, s.DurationMin)
	case s.EstimatedCost < 0:
		return fmt.Errorf("%w: %s: cost must not be negative, got %d", ErrInvalidSpot, s.ID, s.EstimatedCost)
	case s.Location.Latitude < -90 || s.Location.Latitude > 90:
		return fmt.Errorf("%w: %s: latitude %f outside [-90,90]", ErrInvalidSpot, s.ID, s.Location.Latitude)
	case s.Location.Longitude < -180 || s.Location.Longitude > 180:
		return fmt.Errorf("%w: %s: longitude %f outside [-180,180]", ErrInvalidSpot, s.ID, s.Location.Longitude)
	}
	return nil
}

func (s Spot) IsHighlyRated() bool {
	return s.Rating >= 4.0
}

func (s Spot) IsWithinBudget(limit float64) bool {
	return float64(s.EstimatedCost) <= limit
}

// VisitCost is the admission cost for the whole party.
func (s Spot) VisitCost(partySize int) int {
	return s.EstimatedCost * partySize
}

func (s Spot) Emoji() string {
	return s.Category.Emoji()
}

var weekdayLabels = [7]string{"일", "월", "화", "수", "목", "금", "토"}

// WeekdayLabel returns the one-letter Korean weekday used as an
// opening-hours key.
func WeekdayLabel(d time.Weekday) string {
	return weekdayLabels[d]
}

// IsOpenAt reports whether the spot is open at the given time of day.
// A spot without any opening-hours table is assumed open.
func (s Spot) IsOpenAt(at Clock, day time.Weekday) bool {
	if len(s.OpeningHours) == 0 {
		return true
	}
	hours, ok := s.OpeningHours[WeekdayLabel(day)]
	if !ok {
		return false
	}
	hours = strings.TrimSpace(hours)
	if hours == "24시간" || hours == "연중무휴" {
		return true
	}
	openStr, closeStr, found := strings.Cut(hours, "-")
	if !found {
		return false
	}
	open, err := ParseClock(openStr)
	if err != nil {
		return false
	}
	if strings.TrimSpace(closeStr) == "24:00" {
		return at >= open
	}
	closing, err := ParseClock(closeStr)
	if err != nil {
		return false
	}
	if closing < open {
		// Past midnight, e.g. "08:00-02:00".
		return at >= open || at <= closing
	}
	return open <= at && at <= closing
}
