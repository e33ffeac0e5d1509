package dialog

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/datemate/internal/domain"
)

const (
	msgClarifyHeader   = "😊 데이트 계획을 세워드리기 위해 몇 가지 질문드릴게요!\n\n"
	msgAskLocation     = "📍 어느 지역에서 데이트하고 싶으신가요?"
	msgAskInterests    = "🎯 어떤 종류의 장소를 선호하시나요? (예: 문화재, 카페, 쇼핑, 공원 등)"
	msgAskBudget       = "💰 예산은 대략 어느 정도 생각하고 계시나요?"
	msgNoResults       = "😢 조건에 맞는 장소를 찾지 못했어요. 다른 관심사를 알려주시겠어요? 지역을 바꾸시려면 새 대화를 시작해주세요."
	msgSearchFailed    = "⚠️ 장소를 찾는 중에 문제가 생겼어요. 잠시 후 다시 시도해주세요."
	msgPickPrompt      = "🔍 이런 장소들을 찾았어요! 마음에 드는 곳을 번호나 이름으로 골라주세요.\n\n"
	msgSelectionRetry  = "죄송해요, 선택을 이해하지 못했어요. 번호나 이름으로 다시 선택해주세요."
	msgNothingInBudget = "💸 선택하신 장소 중 예산에 맞는 곳이 없어요. 다른 장소를 골라주시겠어요?"
	msgPlanFailed      = "⚠️ 일정을 만드는 중에 문제가 생겼어요. 다시 선택해주세요."
	msgPlanFooter      = "마음에 드시면 '좋아요', 바꾸고 싶으시면 '수정'이라고 말씀해주세요."
	msgConfirmed       = "🎉 훌륭해요! 즐거운 데이트 되세요!"
	msgAskModification = "🔄 어떤 부분을 수정하고 싶으신가요?"
	msgAskMore         = "더 궁금한 점이 있으시면 언제든 물어보세요!"
	msgProcessing      = "말씀해주신 내용을 처리하고 있어요. 조금만 기다려주세요!"
	msgModifyRetry     = "🤔 어떻게 바꿔드릴지 잘 모르겠어요. 예: '여유롭게', '예산 5만원으로', '2번 빼줘', '1번 다른 곳으로'"
	msgNoAlternative   = "😅 바꿀 만한 다른 후보가 없어요. 다른 수정 사항을 말씀해주세요."
	msgKeepOneStop     = "⚠️ 일정에는 최소 한 곳이 남아 있어야 해요."
	msgModifyFailed    = "⚠️ 일정을 수정하는 중에 문제가 생겼어요. 다시 말씀해주세요."
)

func clarificationPrompt(q *domain.Query) string {
	var questions []string
	if !q.HasLocation() {
		questions = append(questions, msgAskLocation)
	}
	if !q.HasInterests() {
		questions = append(questions, msgAskInterests)
	}
	if !q.HasBudget() {
		questions = append(questions, msgAskBudget)
	}
	return msgClarifyHeader + strings.Join(questions, "\n")
}

// candidatesPrompt restates what was understood and lists the candidates.
func candidatesPrompt(q *domain.Query, spots []domain.Spot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✨ %s에서 데이트 계획을 세워드릴게요!\n\n", domain.DerefStr(q.Location))
	if q.HasBudget() {
		fmt.Fprintf(&b, "💰 예산: %s\n", domain.FormatWon(int(*q.Budget)))
	}
	if q.HasInterests() {
		fmt.Fprintf(&b, "🎯 관심사: %s\n", strings.Join(q.Interests, ", "))
	}
	b.WriteString("\n")
	b.WriteString(msgPickPrompt)
	for i, s := range spots {
		fmt.Fprintf(&b, "%d. %s %s ⭐ %.1f · %s\n", i+1, s.Emoji(), s.Name, s.Rating, domain.FormatWon(s.EstimatedCost))
	}
	return strings.TrimRight(b.String(), "\n")
}

func planPrompt(selected []domain.Spot, summary string) string {
	names := make([]string, len(selected))
	for i, s := range selected {
		names[i] = s.Name
	}
	return fmt.Sprintf("✅ %s를 선택하셨네요!\n\n%s%s", strings.Join(names, ", "), summary, msgPlanFooter)
}

func modifiedPrompt(change, summary string) string {
	return fmt.Sprintf("🔄 일정을 수정했어요: %s\n\n%s%s", change, summary, msgPlanFooter)
}
