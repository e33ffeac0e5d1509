package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/datemate/internal/domain"
	"github.com/alexanderramin/datemate/internal/testutil"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestFormatMinutes(t *testing.T) {
	tests := map[int]string{0: "0분", -5: "0분", 45: "45분", 120: "2시간", 135: "2시간 15분"}
	for in, want := range tests {
		assert.Equal(t, want, FormatMinutes(in), in)
	}
}

func TestRatingStars(t *testing.T) {
	assert.Equal(t, "★★★★☆ 4.6", stripANSI(RatingStars(4.6)))
	assert.Equal(t, "☆☆☆☆☆ 0.0", stripANSI(RatingStars(-1)))
	assert.Equal(t, "★★★★★ 5.0", stripANSI(RatingStars(7)))
}

func TestRenderProgress(t *testing.T) {
	assert.Equal(t, "[████░░░░░░]  40%", stripANSI(RenderProgress(0.4, 10)))
	assert.Equal(t, "[██████████] 100%", stripANSI(RenderProgress(1.5, 10)))
	assert.Equal(t, "[░░]   0%", stripANSI(RenderProgress(-1, 1)))
	assert.Contains(t, stripANSI(ConfidenceLine(0.8)), "이해도 [████████░░]  80%")
}

func TestRenderTable_AlignsWideCells(t *testing.T) {
	out := stripANSI(RenderTable([]string{"이름", "비용"}, [][]string{
		{"경복궁", "3,000원"},
		{"N서울타워", "21,000원"},
	}, 1))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[2], "경복궁     "))
	assert.True(t, strings.HasSuffix(lines[2], " 3,000원"))
	assert.True(t, strings.HasSuffix(lines[3], "21,000원"))
	assert.Empty(t, RenderTable(nil, nil))
}

func TestFormatSpotList(t *testing.T) {
	out := stripANSI(FormatSpotList(testutil.SeoulSpots()))
	assert.Contains(t, out, "경복궁")
	assert.Contains(t, out, "🏛️ 문화재")
	assert.Contains(t, out, "3,000원")
	assert.Contains(t, out, "2시간 30분")

	assert.Contains(t, stripANSI(FormatSpotList(nil)), "조건에 맞는 장소가 없어요.")
}

func TestFormatSpotDetail(t *testing.T) {
	s := testutil.NewTestSpot("창덕궁",
		testutil.WithCategory(domain.CategoryCulturalSite),
		testutil.WithHours(map[string]string{"월": "휴궁", "화": "09:00-18:00"}),
		testutil.WithNotes([]string{"후원"}, []string{"후원은 예약 필수"}))
	s.Parking = true

	out := stripANSI(FormatSpotDetail(s))
	assert.Contains(t, out, "창덕궁")
	assert.Contains(t, out, "운영 시간")
	assert.Less(t, strings.Index(out, "월  휴궁"), strings.Index(out, "화  09:00-18:00"))
	assert.Contains(t, out, "• 후원은 예약 필수")
	assert.Contains(t, out, "주차 가능")
	assert.Contains(t, out, "(100개 리뷰)")
}

func TestFormatPlan(t *testing.T) {
	assert.Contains(t, stripANSI(FormatPlan(nil)), "아직 만들어진 일정이 없어요.")

	a, b := testutil.SeoulSpots()[1], testutil.SeoulSpots()[0]
	p := domain.NewDatePlan("서울 데이트 플랜", time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), 2, time.Now())
	p.Items = []domain.PlanItem{
		{Start: domain.NewClock(10, 0), End: domain.NewClock(12, 45), Spot: a, Note: "문화재 방문",
			Transport: &domain.Transportation{Mode: domain.TransportPublic, DurationMin: 25, Cost: 1500}},
		{Start: domain.NewClock(13, 10), End: domain.NewClock(15, 25), Spot: b},
	}
	p.Recalculate()

	out := stripANSI(FormatPlan(p))
	assert.Contains(t, out, "서울 데이트 플랜")
	assert.Contains(t, out, "2026-10-20 · 2명 · 13,500원")
	assert.Contains(t, out, "10:00-12:45  🏛️ 창덕궁")
	assert.Contains(t, out, "25분 · 1,500원")
	assert.Less(t, strings.Index(out, "창덕궁"), strings.Index(out, "경복궁"))
}

func TestFormatAgentReply(t *testing.T) {
	got := stripANSI(FormatAgentReply("첫 줄\n\n둘째 줄\n"))
	assert.Equal(t, "에이전트: 첫 줄\n\n          둘째 줄", got)
	assert.Equal(t, "사용자: 안녕", stripANSI(FormatUserLine("안녕")))
}

func TestStateBadge(t *testing.T) {
	assert.Equal(t, "✔ 확정", stripANSI(StateBadge(domain.StatePlanConfirmed)))
	assert.Equal(t, "● handling_questions", stripANSI(StateBadge(domain.StateHandlingQuestions)))
}

func TestTruncID(t *testing.T) {
	got := TruncID("seoul-gyeongbokgung")
	assert.Contains(t, got, "seoul-gyeong")
	assert.NotContains(t, got, "bokgung")

	// Short IDs should be returned as-is (dimmed)
	assert.Contains(t, TruncID("short"), "short")
}

func TestRenderBox(t *testing.T) {
	result := RenderBox("경복궁", "content here")
	assert.Contains(t, result, "경복궁")
	assert.Contains(t, result, "content here")
	assert.Contains(t, result, "╭")
	assert.Contains(t, result, "╰")

	result = RenderBox("", "just content")
	assert.Contains(t, result, "just content")
	assert.Contains(t, result, "╭")
}
