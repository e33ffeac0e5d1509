package planner

import (
	"math"
	"sort"

	"github.com/alexanderramin/datemate/internal/domain"
)

// Score weights.
const (
	weightRating   = 0.4
	weightInterest = 0.3
	weightDuration = 0.1

	bonusFree   = 0.2
	bonusCheap  = 0.15
	bonusMedium = 0.1
)

// PerSpotBudget is the cost ceiling for a single stop: a third of the total,
// rounded down. A nil budget means unlimited.
func PerSpotBudget(budget *float64) float64 {
	if budget == nil {
		return math.Inf(1)
	}
	return math.Floor(*budget / 3)
}

// OptimizeSpots keeps the affordable spots and returns the top MaxStops by
// score. Equal scores keep their input order.
func OptimizeSpots(spots []domain.Spot, budget *float64, interests []string) []domain.Spot {
	limit := PerSpotBudget(budget)

	type scored struct {
		spot  domain.Spot
		score float64
	}
	var pool []scored
	for _, s := range spots {
		if !s.IsWithinBudget(limit) {
			continue
		}
		pool = append(pool, scored{spot: s, score: ScoreSpot(s, interests)})
	}
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].score > pool[j].score
	})

	n := min(MaxStops, len(pool))
	out := make([]domain.Spot, n)
	for i := 0; i < n; i++ {
		out[i] = pool[i].spot
	}
	return out
}

// ScoreSpot rates a spot in [0, 1].
func ScoreSpot(s domain.Spot, interests []string) float64 {
	score := s.Rating / 5 * weightRating

	for _, in := range interests {
		if s.Category.Matches(in) {
			score += weightInterest
			break
		}
	}

	switch {
	case s.EstimatedCost == 0:
		score += bonusFree
	case s.EstimatedCost < 10000:
		score += bonusCheap
	case s.EstimatedCost < 30000:
		score += bonusMedium
	}

	if s.DurationMin >= 60 && s.DurationMin <= 180 {
		score += weightDuration
	}
	return score
}
