package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/datemate/internal/domain"
	"github.com/alexanderramin/datemate/internal/intelligence"
	"github.com/alexanderramin/datemate/internal/testutil"
)

// planned drives a session to PRESENTING_RESULTS with the given selection
// and then asks to modify the plan.
func planned(t *testing.T, selection string, spots []domain.Spot) *harness {
	t.Helper()
	h := newHarness(t, intelligence.NewKeywordExtractor(), spots)
	h.say(t, "s1", scenarioInput)
	r := h.say(t, "s1", selection)
	require.Equal(t, domain.StatePresentingResults, r.State)

	r = h.say(t, "s1", "수정하고 싶어")
	require.Equal(t, domain.StateModifyingPlan, r.State)
	require.Equal(t, msgAskModification, r.Text)
	require.Equal(t, domain.InteractionPlanModification, r.ExpectedInput)
	return h
}

func lastChange(t *testing.T, h *harness) string {
	t.Helper()
	v, ok := h.conv(t, "s1").Value(domain.KeyLastChange)
	require.True(t, ok)
	return v.(string)
}

func TestModify_RelaxedPace(t *testing.T) {
	h := planned(t, "1번 2번 3번", testutil.SeoulSpots())
	require.Equal(t, 495, h.conv(t, "s1").Plan.TotalDurationMin)

	r := h.say(t, "s1", "좀 더 여유롭게 해줘")
	assert.Equal(t, domain.StatePresentingResults, r.State)
	assert.Contains(t, r.Text, "🔄 일정을 수정했어요: 여유로운 일정으로 조정")

	plan := h.conv(t, "s1").Plan
	assert.Equal(t, 495+3*30, plan.TotalDurationMin)
	assert.Empty(t, plan.TimeConflicts())
	assertPlanTotals(t, plan)
	assert.Equal(t, fixedNow, plan.UpdatedAt)
}

func TestModify_TightPace(t *testing.T) {
	h := planned(t, "1번 2번 3번", testutil.SeoulSpots())

	h.say(t, "s1", "빡빡하게 돌고 싶어")
	plan := h.conv(t, "s1").Plan
	assert.Equal(t, 495-3*20, plan.TotalDurationMin)
	assertPlanTotals(t, plan)
}

func TestModify_BudgetTrim(t *testing.T) {
	h := planned(t, "1번 2번 3번", testutil.SeoulSpots())
	require.Equal(t, []string{"창덕궁", "경복궁", "국립중앙박물관"}, planNames(h.conv(t, "s1").Plan))

	r := h.say(t, "s1", "예산 1만원으로 맞춰줘")
	assert.Equal(t, domain.StatePresentingResults, r.State)
	assert.Equal(t, "예산 10,000원에 맞춰 창덕궁, 경복궁 제외", lastChange(t, h))

	plan := h.conv(t, "s1").Plan
	assert.Equal(t, []string{"국립중앙박물관"}, planNames(plan))
	assert.Zero(t, plan.TotalCost)
	assertPlanTotals(t, plan)
}

func TestModify_BudgetAlreadyMet(t *testing.T) {
	h := planned(t, "1번", testutil.SeoulSpots())

	h.say(t, "s1", "좀 더 저렴하게")
	assert.Equal(t, "이미 예산 100,000원 안에 들어와요", lastChange(t, h))
	assert.Equal(t, []string{"경복궁"}, planNames(h.conv(t, "s1").Plan))
}

func TestModify_RemoveStop(t *testing.T) {
	h := planned(t, "1번 2번 3번", testutil.SeoulSpots())

	r := h.say(t, "s1", "2번 빼줘")
	assert.Equal(t, domain.StatePresentingResults, r.State)
	assert.Equal(t, "경복궁 제외", lastChange(t, h))

	plan := h.conv(t, "s1").Plan
	assert.Equal(t, []string{"창덕궁", "국립중앙박물관"}, planNames(plan))
	assert.Equal(t, "10:00", plan.Items[0].Start.String())
	require.NotNil(t, plan.Items[0].Transport)
	assert.Nil(t, plan.Items[1].Transport)
	assertPlanTotals(t, plan)
}

func TestModify_KeepsLastStop(t *testing.T) {
	h := planned(t, "1번", testutil.SeoulSpots())

	r := h.say(t, "s1", "1번 삭제")
	assert.Equal(t, msgKeepOneStop, r.Text)
	assert.Equal(t, domain.StateModifyingPlan, r.State)
	assert.Len(t, h.conv(t, "s1").Plan.Items, 1)
}

func TestModify_ReplaceStop(t *testing.T) {
	spots := append(testutil.SeoulSpots(),
		testutil.NewTestSpot("북촌 한옥마을", testutil.WithCategory(domain.CategoryCulturalSite), testutil.WithRating(4.3)))
	h := planned(t, "1번이랑 2번", spots)
	require.Equal(t, []string{"창덕궁", "경복궁"}, planNames(h.conv(t, "s1").Plan))

	r := h.say(t, "s1", "2번 다른 곳으로 바꿔줘")
	assert.Equal(t, domain.StatePresentingResults, r.State)
	assert.Equal(t, "경복궁 → 국립중앙박물관", lastChange(t, h))

	plan := h.conv(t, "s1").Plan
	assert.Equal(t, []string{"창덕궁", "국립중앙박물관"}, planNames(plan))
	assert.Equal(t, 180+15, plan.Items[1].DurationMin())
	assert.Empty(t, plan.TimeConflicts())
	assertPlanTotals(t, plan)
}

func TestModify_NoAlternativeLeft(t *testing.T) {
	h := planned(t, "1번 2번 3번", testutil.SeoulSpots())

	r := h.say(t, "s1", "1번 교체해줘")
	assert.Equal(t, msgNoAlternative, r.Text)
	assert.Equal(t, domain.StateModifyingPlan, r.State)
}

func TestModify_NotUnderstood(t *testing.T) {
	h := planned(t, "1번", testutil.SeoulSpots())
	before := h.conv(t, "s1").Plan

	r := h.say(t, "s1", "음 잘 모르겠어")
	assert.Equal(t, msgModifyRetry, r.Text)
	assert.Equal(t, domain.StateModifyingPlan, r.State)
	assert.Same(t, before, h.conv(t, "s1").Plan)
	_, ok := h.conv(t, "s1").Value(domain.KeyLastChange)
	assert.False(t, ok)
}

func TestModify_ThenConfirm(t *testing.T) {
	h := planned(t, "1번 2번 3번", testutil.SeoulSpots())
	h.say(t, "s1", "3번 제외")

	r := h.say(t, "s1", "좋아 확정!")
	assert.Equal(t, domain.StatePlanConfirmed, r.State)
	assert.Len(t, h.conv(t, "s1").Plan.Items, 2)
}

func TestStopIndex(t *testing.T) {
	idx, ok := stopIndex("2번 빼줘", 3)
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = stopIndex("4번 빼줘", 3)
	assert.False(t, ok)
	_, ok = stopIndex("0번", 3)
	assert.False(t, ok)
	_, ok = stopIndex("빼줘", 3)
	assert.False(t, ok)
}

func TestBestAlternative_PrefersRatingThenOrder(t *testing.T) {
	a := testutil.NewTestSpot("A", testutil.WithRating(4.0))
	b := testutil.NewTestSpot("B", testutil.WithRating(4.8))
	c := testutil.NewTestSpot("C", testutil.WithRating(4.8))
	plan := &domain.DatePlan{Items: []domain.PlanItem{{Spot: a}}}

	got, ok := bestAlternative(plan, []domain.Spot{a, b, c})
	require.True(t, ok)
	assert.Equal(t, "B", got.Name)

	_, ok = bestAlternative(plan, []domain.Spot{a})
	assert.False(t, ok)
}
