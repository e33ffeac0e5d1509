package planner

import (
	"testing"
	"time"

	"github.com/alexanderramin/datemate/internal/domain"
	"github.com/alexanderramin/datemate/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	tuesday  = time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	monday   = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	fixedNow = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
)

func newTestPlanner() *Planner {
	return New(WithClock(func() time.Time { return fixedNow }))
}

func TestCreateDatePlan_SeoulPalaces(t *testing.T) {
	plan, err := newTestPlanner().CreateDatePlan(testutil.SeoulSpots(), Preferences{
		Location:  "서울",
		Budget:    domain.Float64Ptr(100000),
		Interests: []string{"문화재"},
	}, tuesday)
	require.NoError(t, err)

	require.Len(t, plan.Items, 3)
	assert.Equal(t, "서울 데이트 플랜", plan.Title)
	assert.Equal(t, domain.DefaultPartySize, plan.PartySize)
	assert.Equal(t, fixedNow, plan.CreatedAt)

	// Highest score first, then nearest neighbour.
	assert.Equal(t, "창덕궁", plan.Items[0].Spot.Name)
	assert.Equal(t, "경복궁", plan.Items[1].Spot.Name)
	assert.Equal(t, "국립중앙박물관", plan.Items[2].Spot.Name)

	assert.Equal(t, "10:00", plan.Items[0].Start.String())
	assert.Equal(t, "12:45", plan.Items[0].End.String())
	assert.Equal(t, "13:15", plan.Items[1].Start.String())
	assert.Equal(t, "15:30", plan.Items[1].End.String())
	assert.Equal(t, "16:00", plan.Items[2].Start.String())
	assert.Equal(t, "19:15", plan.Items[2].End.String())

	require.NotNil(t, plan.Items[0].Transport)
	assert.Equal(t, domain.TransportPublic, plan.Items[0].Transport.Mode)
	require.NotNil(t, plan.Items[1].Transport)
	assert.Equal(t, domain.TransportTaxi, plan.Items[1].Transport.Mode)
	assert.Equal(t, 18, plan.Items[1].Transport.DurationMin)
	assert.Equal(t, 6182, plan.Items[1].Transport.Cost)
	assert.Nil(t, plan.Items[2].Transport)

	assert.Equal(t, 6000+1500+6000+6182, plan.TotalCost)
	assert.Equal(t, 165+135+195, plan.TotalDurationMin)
	assert.Equal(t, "문화재 방문", plan.Items[0].Note)
	assert.Empty(t, plan.TimeConflicts())
}

func TestCreateDatePlan_SingleSpotSkipsTransport(t *testing.T) {
	// 8000 / 3 leaves room for the free museum only.
	plan, err := newTestPlanner().CreateDatePlan(testutil.SeoulSpots(), Preferences{
		Budget: domain.Float64Ptr(8000),
	}, tuesday)
	require.NoError(t, err)

	require.Len(t, plan.Items, 1)
	assert.Equal(t, "국립중앙박물관", plan.Items[0].Spot.Name)
	assert.Nil(t, plan.Items[0].Transport)
	assert.Equal(t, 0, plan.TotalCost)
	assert.Equal(t, 195, plan.TotalDurationMin)
}

func TestCreateDatePlan_NothingAffordable(t *testing.T) {
	spots := []domain.Spot{
		testutil.NewTestSpot("A", testutil.WithCost(3000)),
		testutil.NewTestSpot("B", testutil.WithCost(5000)),
	}
	plan, err := newTestPlanner().CreateDatePlan(spots, Preferences{Budget: domain.Float64Ptr(3000)}, tuesday)
	require.NoError(t, err)

	assert.True(t, plan.IsEmpty())
	assert.Zero(t, plan.TotalCost)
	assert.Zero(t, plan.TotalDurationMin)
}

func TestCreateDatePlan_NoBudgetMeansUnlimited(t *testing.T) {
	spots := []domain.Spot{testutil.NewTestSpot("비싼 곳", testutil.WithCost(90000))}
	plan, err := newTestPlanner().CreateDatePlan(spots, Preferences{}, tuesday)
	require.NoError(t, err)
	assert.Len(t, plan.Items, 1)
}

func TestCreateDatePlan_CapsAtFiveStops(t *testing.T) {
	var spots []domain.Spot
	for i := 0; i < 8; i++ {
		spots = append(spots, testutil.NewTestSpot("카페", testutil.WithCoords(37.5+float64(i)*0.001, 127.0)))
	}
	plan, err := newTestPlanner().CreateDatePlan(spots, Preferences{}, tuesday)
	require.NoError(t, err)
	assert.Len(t, plan.Items, MaxStops)
}

func TestCreateDatePlan_StartTimeAndTitle(t *testing.T) {
	plan, err := newTestPlanner().CreateDatePlan(testutil.SeoulSpots()[:1], Preferences{
		Location:  "부산",
		StartTime: "오후 2시",
		PartySize: 3,
	}, tuesday)
	require.NoError(t, err)

	assert.Equal(t, "부산 데이트 플랜", plan.Title)
	assert.Equal(t, "14:00", plan.Items[0].Start.String())
	assert.Equal(t, 3*3000, plan.TotalCost)
}

func TestCreateDatePlan_InvalidInput(t *testing.T) {
	p := newTestPlanner()

	_, err := p.CreateDatePlan(testutil.SeoulSpots(), Preferences{PartySize: -1}, tuesday)
	assert.ErrorIs(t, err, ErrInvalidInput)

	bad := testutil.NewTestSpot("별점 오류", testutil.WithRating(9))
	_, err = p.CreateDatePlan([]domain.Spot{bad}, Preferences{}, tuesday)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateDatePlan_RejectsDayLongVisits(t *testing.T) {
	p := newTestPlanner()
	half := func(name string) domain.Spot {
		return testutil.NewTestSpot(name, testutil.WithDuration(700), testutil.WithCost(0))
	}

	allDay := testutil.NewTestSpot("하루 종일", testutil.WithDuration(1425), testutil.WithCost(0))
	_, err := p.CreateDatePlan([]domain.Spot{allDay, half("b"), half("c")}, Preferences{}, tuesday)
	assert.ErrorIs(t, err, ErrInvalidInput)

	longest := testutil.NewTestSpot("거의 하루", testutil.WithDuration(MaxVisitMin), testutil.WithCost(0))
	plan, err := p.CreateDatePlan([]domain.Spot{longest}, Preferences{}, tuesday)
	require.NoError(t, err)
	assert.Equal(t, 24*60-1, plan.Items[0].DurationMin())
	assertTotals(t, plan)

	plan, err = p.CreateDatePlan([]domain.Spot{half("b"), half("c")}, Preferences{}, tuesday)
	require.NoError(t, err)
	assert.Empty(t, plan.TimeConflicts())
	assertTotals(t, plan)
}

func TestCreateDatePlan_FlagsClosedVenue(t *testing.T) {
	museum := testutil.NewTestSpot("박물관",
		testutil.WithCategory(domain.CategoryMuseum),
		testutil.WithHours(map[string]string{"월": "휴관", "화": "10:00-18:00"}))

	plan, err := newTestPlanner().CreateDatePlan([]domain.Spot{museum}, Preferences{}, monday)
	require.NoError(t, err)
	assert.True(t, MayBeClosed(plan.Items[0]))
	assert.Contains(t, plan.Items[0].Note, "박물관 방문")

	plan, err = newTestPlanner().CreateDatePlan([]domain.Spot{museum}, Preferences{}, tuesday)
	require.NoError(t, err)
	assert.False(t, MayBeClosed(plan.Items[0]))
}
