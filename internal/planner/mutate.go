package planner

import (
	"github.com/alexanderramin/datemate/internal/domain"
)

const (
	relaxedExtraMin = 30
	tightCutMin     = 20
)

// AdjustPace stretches (relaxed) or compresses (tight) every stop, then
// re-times the plan. A stop too short to lose tightCutMin and still end after
// its start keeps its length.
func AdjustPace(plan *domain.DatePlan, pace domain.Pace) {
	for i := range plan.Items {
		it := &plan.Items[i]
		switch pace {
		case domain.PaceRelaxed:
			it.End = it.End.Add(relaxedExtraMin)
		case domain.PaceTight:
			if it.DurationMin() > tightCutMin {
				it.End = it.End.Add(-tightCutMin)
			}
		}
	}
	RecalculateScheduleTimes(plan)
	plan.Recalculate()
}

// TrimToBudget drops the most expensive stop (earliest on ties) until the
// plan fits target or a single stop remains. It returns the dropped spots in
// removal order.
func TrimToBudget(plan *domain.DatePlan, target float64) []domain.Spot {
	var removed []domain.Spot
	for float64(plan.TotalCost) > target && len(plan.Items) > 1 {
		worst := 0
		for i, it := range plan.Items {
			if it.Spot.EstimatedCost > plan.Items[worst].Spot.EstimatedCost {
				worst = i
			}
		}
		removed = append(removed, plan.Items[worst].Spot)
		RemoveStop(plan, worst)
	}
	return removed
}

// RemoveStop deletes item i, re-links the predecessor's leg and re-times
// the rest of the plan from the original start.
func RemoveStop(plan *domain.DatePlan, i int) bool {
	start, ok := plan.StartTime()
	if !ok || !plan.RemoveItem(i) {
		return false
	}
	if i == 0 && len(plan.Items) > 0 {
		// The plan keeps its start time.
		first := &plan.Items[0]
		dur := first.DurationMin()
		first.Start = start
		first.End = start.Add(dur)
	}
	relink(plan.Items, i-1)
	RecalculateScheduleTimes(plan)
	plan.Recalculate()
	return true
}

// ReplaceSpot swaps the first stop visiting spotID for alternatives[0]. The
// stop's length follows the new spot and adjacent legs are re-linked.
func ReplaceSpot(plan *domain.DatePlan, spotID string, alternatives []domain.Spot) bool {
	if len(alternatives) == 0 || alternatives[0].DurationMin > MaxVisitMin {
		return false
	}
	for i := range plan.Items {
		if plan.Items[i].Spot.ID != spotID {
			continue
		}
		alt := alternatives[0]
		plan.ReplaceSpot(i, alt)
		plan.Items[i].End = plan.Items[i].Start.Add(alt.DurationMin + SpotBuffer)
		relink(plan.Items, i-1)
		relink(plan.Items, i)
		RecalculateScheduleTimes(plan)
		plan.Recalculate()
		return true
	}
	return false
}
