package planner

import (
	"math/rand"
	"testing"

	"github.com/alexanderramin/datemate/internal/domain"
	"github.com/alexanderramin/datemate/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// planFromSpots builds a plan that keeps the given visiting order.
func planFromSpots(spots ...domain.Spot) *domain.DatePlan {
	plan := domain.NewDatePlan("테스트 플랜", tuesday, 0, fixedNow)
	plan.Items = AllocateTimeSlots(spots, DefaultStart)
	AttachTransportation(plan.Items)
	plan.Recalculate()
	return plan
}

func itemCosts(plan *domain.DatePlan) []int {
	out := make([]int, len(plan.Items))
	for i, it := range plan.Items {
		out[i] = it.Spot.EstimatedCost
	}
	return out
}

func TestTrimToBudget_StopsAtOneItem(t *testing.T) {
	plan := planFromSpots(
		testutil.NewTestSpot("A", testutil.WithCost(5000)),
		testutil.NewTestSpot("B", testutil.WithCost(20000)),
		testutil.NewTestSpot("C", testutil.WithCost(8000)),
	)

	removed := TrimToBudget(plan, 1000)

	require.Len(t, removed, 2)
	assert.Equal(t, 20000, removed[0].EstimatedCost)
	assert.Equal(t, 8000, removed[1].EstimatedCost)
	assert.Equal(t, []int{5000}, itemCosts(plan))
	assert.Equal(t, 10000, plan.TotalCost, "still over target with one item left")
	assert.Nil(t, plan.Items[0].Transport)
	assertTotals(t, plan)
}

func TestTrimToBudget_StopsOnceWithinTarget(t *testing.T) {
	plan := planFromSpots(
		testutil.NewTestSpot("A", testutil.WithCost(5000)),
		testutil.NewTestSpot("B", testutil.WithCost(20000)),
		testutil.NewTestSpot("C", testutil.WithCost(8000)),
	)

	removed := TrimToBudget(plan, 30000)

	require.Len(t, removed, 1)
	assert.Equal(t, []int{5000, 8000}, itemCosts(plan))
	assert.Equal(t, 26000, plan.TotalCost)
	require.NotNil(t, plan.Items[0].Transport, "predecessor re-linked to the new neighbour")
	assert.Nil(t, plan.Items[1].Transport)

	assert.Empty(t, TrimToBudget(plan, 1e9))
}

func TestTrimToBudget_TiesRemoveEarliest(t *testing.T) {
	first := testutil.NewTestSpot("첫째", testutil.WithCost(7000))
	second := testutil.NewTestSpot("둘째", testutil.WithCost(7000))
	cheap := testutil.NewTestSpot("셋째", testutil.WithCost(1000))
	plan := planFromSpots(first, second, cheap)

	removed := TrimToBudget(plan, 0)
	require.Len(t, removed, 2)
	assert.Equal(t, first.ID, removed[0].ID)
	assert.Equal(t, second.ID, removed[1].ID)
	assert.Equal(t, cheap.ID, plan.Items[0].Spot.ID)
	assert.Equal(t, "10:00", plan.Items[0].Start.String(), "plan keeps its start time")
}

func TestAdjustPace(t *testing.T) {
	build := func() *domain.DatePlan {
		return planFromSpots(
			testutil.NewTestSpot("A", testutil.WithDuration(90)),
			testutil.NewTestSpot("B", testutil.WithDuration(60)),
		)
	}

	relaxed := build()
	AdjustPace(relaxed, domain.PaceRelaxed)
	assert.Equal(t, "12:15", relaxed.Items[0].End.String())
	assert.Equal(t, "12:30", relaxed.Items[1].Start.String())
	assert.Equal(t, "14:15", relaxed.Items[1].End.String())
	assert.Equal(t, 240, relaxed.TotalDurationMin)

	tight := build()
	AdjustPace(tight, domain.PaceTight)
	assert.Equal(t, "11:25", tight.Items[0].End.String())
	assert.Equal(t, "11:40", tight.Items[1].Start.String())
	assert.Equal(t, "12:35", tight.Items[1].End.String())
	assert.Equal(t, 140, tight.TotalDurationMin)

	normal := build()
	AdjustPace(normal, domain.PaceNormal)
	assert.Equal(t, "11:45", normal.Items[0].End.String())
	assert.Equal(t, "12:00", normal.Items[1].Start.String())
}

func TestAdjustPace_TightKeepsShortStops(t *testing.T) {
	short := testutil.NewTestSpot("짧은 곳", testutil.WithDuration(5))
	long := testutil.NewTestSpot("긴 곳", testutil.WithDuration(90))
	plan := planFromSpots(short, long)
	require.Equal(t, 20, plan.Items[0].DurationMin())

	AdjustPace(plan, domain.PaceTight)

	assert.Equal(t, 20, plan.Items[0].DurationMin(), "a 20 minute stop cannot lose 20 minutes")
	assert.Equal(t, 85, plan.Items[1].DurationMin())
	assertTotals(t, plan)
}

func TestReplaceSpot(t *testing.T) {
	a := testutil.NewTestSpot("A", testutil.WithDuration(90))
	b := testutil.NewTestSpot("B", testutil.WithDuration(60))
	far := testutil.NewTestSpot("먼 곳", testutil.WithDuration(120), testutil.WithCost(0), testutil.WithCoords(37.7, 127.2))
	plan := planFromSpots(a, b)

	assert.False(t, ReplaceSpot(plan, "missing", []domain.Spot{far}))
	assert.False(t, ReplaceSpot(plan, a.ID, nil))
	allDay := testutil.NewTestSpot("하루 종일", testutil.WithDuration(MaxVisitMin+1))
	assert.False(t, ReplaceSpot(plan, a.ID, []domain.Spot{allDay}))

	require.True(t, ReplaceSpot(plan, a.ID, []domain.Spot{far}))
	first := plan.Items[0]
	assert.Equal(t, far.ID, first.Spot.ID)
	assert.Equal(t, "10:00", first.Start.String())
	assert.Equal(t, "12:15", first.End.String())
	require.NotNil(t, first.Transport)
	assert.Equal(t, domain.TransportTaxi, first.Transport.Mode)
	assert.Equal(t, first.End.Add(first.Transport.DurationMin), plan.Items[1].Start)
	assertTotals(t, plan)
}

func TestRemoveStop(t *testing.T) {
	a := testutil.NewTestSpot("A", testutil.WithDuration(90))
	b := testutil.NewTestSpot("B", testutil.WithDuration(60))
	plan := planFromSpots(a, b)

	assert.False(t, RemoveStop(plan, 5))
	require.True(t, RemoveStop(plan, 0))

	require.Len(t, plan.Items, 1)
	assert.Equal(t, b.ID, plan.Items[0].Spot.ID)
	assert.Equal(t, "10:00", plan.Items[0].Start.String())
	assert.Equal(t, "11:15", plan.Items[0].End.String())
	assert.Nil(t, plan.Items[0].Transport)
	assertTotals(t, plan)

	empty := domain.NewDatePlan("빈 플랜", tuesday, 0, fixedNow)
	assert.False(t, RemoveStop(empty, 0))
}

// TestMutations_Invariants property-tests the totals and no-overlap
// invariants across random mutation sequences.
func TestMutations_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := newTestPlanner()
	paces := []domain.Pace{domain.PaceRelaxed, domain.PaceNormal, domain.PaceTight}

	for trial := 0; trial < 200; trial++ {
		spots := randomSpots(rng, rng.Intn(7)+2)
		plan, err := p.CreateDatePlan(spots, Preferences{}, tuesday)
		require.NoError(t, err)

		AdjustPace(plan, paces[rng.Intn(len(paces))])
		assertTotals(t, plan, "trial %d: after pace", trial)

		if rng.Intn(2) == 0 && len(plan.Items) > 0 {
			target := plan.Items[rng.Intn(len(plan.Items))].Spot.ID
			ReplaceSpot(plan, target, randomSpots(rng, 1))
			assertTotals(t, plan, "trial %d: after replace", trial)
		}

		TrimToBudget(plan, float64(rng.Intn(60000)))
		assertTotals(t, plan, "trial %d: after trim", trial)
		assert.NotEmpty(t, plan.Items, "trial %d: trim keeps one item", trial)

		if len(plan.Items) > 1 {
			RemoveStop(plan, rng.Intn(len(plan.Items)))
			assertTotals(t, plan, "trial %d: after remove", trial)
		}

		assert.Empty(t, plan.TimeConflicts(), "trial %d: items must not overlap", trial)
		assert.Nil(t, plan.Items[len(plan.Items)-1].Transport, "trial %d", trial)
	}
}
