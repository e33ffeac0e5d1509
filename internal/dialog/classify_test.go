package dialog

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/datemate/internal/domain"
	"github.com/alexanderramin/datemate/internal/testutil"
)

func TestParseSelection(t *testing.T) {
	candidates := testutil.SeoulSpots()
	names := func(spots []domain.Spot) []string {
		var out []string
		for _, s := range spots {
			out = append(out, s.Name)
		}
		return out
	}

	tests := []struct {
		input string
		want  []string
	}{
		{"1번이랑 2번", []string{"경복궁", "창덕궁"}},
		{"2번, 1번", []string{"경복궁", "창덕궁"}},
		{"경복궁", []string{"경복궁"}},
		{"경복궁이랑 국립중앙박물관 갈래", []string{"경복궁", "국립중앙박물관"}},
		{"국립 어때", []string{"국립중앙박물관"}},
		{"1번 그리고 경복궁", []string{"경복궁"}},
		{"9번", nil},
		{"0번", nil},
		{"아무거나", nil},
		{"궁", nil},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, names(ParseSelection(tt.input, candidates)))
		})
	}

	assert.Empty(t, ParseSelection("1번", nil))
}

func TestClassify(t *testing.T) {
	conv := domain.NewConversation("s", time.Now())

	assert.Equal(t, domain.InteractionSelectionRequired, classify(conv, "이거 선택할게"))
	assert.Equal(t, domain.InteractionInformationRequest, classify(conv, "주차 돼?"))
	assert.Equal(t, domain.InteractionInformationRequest, classify(conv, "언제 문 열어"))
	assert.Equal(t, domain.InteractionPlanModification, classify(conv, "일정 변경"))
	assert.Equal(t, domain.InteractionGeneralQuestion, classify(conv, "안녕"))

	conv.SetAwaitingInput(domain.InteractionConfirmation)
	assert.Equal(t, domain.InteractionConfirmation, classify(conv, "이거 선택할게"), "expected input wins")
}

func TestPlanDate(t *testing.T) {
	sunday := time.Date(2026, 10, 18, 21, 30, 0, 0, time.UTC)
	day := func(d int) time.Time { return time.Date(2026, 10, d, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		token string
		want  time.Time
	}{
		{"", day(18)},
		{"오늘", day(18)},
		{"내일", day(19)},
		{"모레", day(20)},
		{"토요일", day(24)},
		{"주말", day(24)},
		{"일요일", day(18)},
		{"다음주", day(18)},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got := planDate(tt.token, sunday)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}

	saturday := time.Date(2026, 10, 24, 8, 0, 0, 0, time.UTC)
	assert.True(t, day(24).Equal(planDate("주말", saturday)))
	assert.True(t, day(25).Equal(planDate("일요일", saturday)))
}

func TestClarificationPrompt(t *testing.T) {
	q := domain.NewQuery("s", "", time.Now())
	q.Location = domain.StringPtr("서울")
	q.Budget = domain.Float64Ptr(50000)

	got := clarificationPrompt(q)
	assert.True(t, strings.HasPrefix(got, msgClarifyHeader))
	assert.Equal(t, msgClarifyHeader+msgAskInterests, got)
}

func TestCandidatesPrompt(t *testing.T) {
	q := domain.NewQuery("s", "", time.Now())
	q.Location = domain.StringPtr("서울")
	q.AddInterests("문화재")

	got := candidatesPrompt(q, testutil.SeoulSpots())
	assert.NotContains(t, got, "💰 예산")
	assert.Contains(t, got, "🎯 관심사: 문화재")
	assert.Contains(t, got, "2. 🏛️ 창덕궁 ⭐ 4.6 · 3,000원")
	assert.True(t, strings.HasSuffix(got, "3. 🏛️ 국립중앙박물관 ⭐ 4.4 · 0원"))
}
