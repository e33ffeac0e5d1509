package dialog

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/alexanderramin/datemate/internal/domain"
)

var (
	selectionWords    = []string{"선택", "고르"}
	questionWords     = []string{"뭐", "어떤", "언제"}
	modificationWords = []string{"수정", "바꿔", "변경"}

	confirmWords = []string{"좋아", "마음에 들어", "완벽", "확정"}
	changeWords  = []string{"수정", "바꿔", "다른", "변경"}
)

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// classify decides a turn's interaction type. A pending expected input
// wins over keywords.
func classify(conv *domain.Conversation, text string) domain.InteractionType {
	if conv.AwaitingInput && conv.ExpectedInput != "" {
		return conv.ExpectedInput
	}
	switch {
	case containsAny(text, selectionWords):
		return domain.InteractionSelectionRequired
	case strings.Contains(text, "?") || containsAny(text, questionWords):
		return domain.InteractionInformationRequest
	case containsAny(text, modificationWords):
		return domain.InteractionPlanModification
	default:
		return domain.InteractionGeneralQuestion
	}
}

var numberToken = regexp.MustCompile(`\d+`)

// ParseSelection resolves numbered references (1-based) and name matches
// against candidates. Out-of-range numbers are ignored. A candidate matches
// by name when the text contains its full name or a word of the text is a
// prefix of it. The result keeps candidate order without duplicates.
func ParseSelection(text string, candidates []domain.Spot) []domain.Spot {
	picked := make([]bool, len(candidates))

	for _, tok := range numberToken.FindAllString(text, -1) {
		n, err := strconv.Atoi(tok)
		if err == nil && n >= 1 && n <= len(candidates) {
			picked[n-1] = true
		}
	}

	words := strings.Fields(text)
	for i, c := range candidates {
		if picked[i] || c.Name == "" {
			continue
		}
		if strings.Contains(text, c.Name) {
			picked[i] = true
			continue
		}
		for _, w := range words {
			if isNameWord(w) && strings.HasPrefix(c.Name, w) {
				picked[i] = true
				break
			}
		}
	}

	var out []domain.Spot
	for i, ok := range picked {
		if ok {
			out = append(out, candidates[i])
		}
	}
	return out
}

// isNameWord filters out numbers and single characters that would match
// too many names.
func isNameWord(w string) bool {
	if numberToken.MatchString(w) {
		return false
	}
	return len([]rune(w)) >= 2
}
