package dialog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/alexanderramin/datemate/internal/domain"
	"github.com/alexanderramin/datemate/internal/intelligence"
	"github.com/alexanderramin/datemate/internal/planner"
)

var (
	removeWords  = []string{"빼", "삭제", "제외"}
	replaceWords = []string{"바꿔", "교체", "다른"}
	relaxedWords = []string{"여유", "천천히", "느긋"}
	tightWords   = []string{"빡빡", "촘촘", "빠듯", "서둘"}
	budgetWords  = []string{"예산", "저렴", "싸게", "비싸"}

	stopToken = regexp.MustCompile(`(\d+)\s*번`)
)

// errNoChange marks a request that was understood but cannot be applied.
type errNoChange string

func (e errNoChange) Error() string { return string(e) }

// handleModification applies one change request to a copy of the plan and
// swaps it in only when the change succeeds.
func (c *Controller) handleModification(conv *domain.Conversation, text string) outcome {
	if conv.Plan == nil || conv.Plan.IsEmpty() {
		c.logger.Warn("modification without a plan", zap.String("session_id", conv.SessionID))
		return outcome{text: msgModifyFailed, next: domain.StateAwaitingUserSelection}
	}

	plan := conv.Plan.Clone()
	change, err := c.safeModify(conv, plan, text)
	switch e := err.(type) {
	case nil:
	case errNoChange:
		return outcome{text: string(e), next: conv.State}
	default:
		c.logger.Error("plan modification failed", zap.String("session_id", conv.SessionID), zap.Error(err))
		return outcome{text: msgModifyFailed, next: conv.State}
	}
	if change == "" {
		return outcome{text: msgModifyRetry, next: conv.State}
	}

	plan.UpdatedAt = c.now()
	conv.Plan = plan
	conv.Set(domain.KeyLastChange, change)
	return outcome{text: modifiedPrompt(change, planner.Summary(plan)), next: domain.StatePresentingResults}
}

func (c *Controller) safeModify(conv *domain.Conversation, plan *domain.DatePlan, text string) (change string, err error) {
	defer func() {
		if r := recover(); r != nil {
			change, err = "", fmt.Errorf("modification panic: %v", r)
		}
	}()
	return applyModification(conv, plan, text)
}

// applyModification returns a description of what changed, "" when the
// request was not understood, or errNoChange when it cannot be applied.
func applyModification(conv *domain.Conversation, plan *domain.DatePlan, text string) (string, error) {
	if idx, ok := stopIndex(text, len(plan.Items)); ok {
		switch {
		case containsAny(text, removeWords):
			return removeChange(plan, idx)
		case containsAny(text, replaceWords):
			return replaceChange(plan, idx, conv.CandidateSpots())
		}
	}

	switch {
	case containsAny(text, relaxedWords):
		planner.AdjustPace(plan, domain.PaceRelaxed)
		return "여유로운 일정으로 조정", nil
	case containsAny(text, tightWords):
		planner.AdjustPace(plan, domain.PaceTight)
		return "빠듯한 일정으로 조정", nil
	case containsAny(text, budgetWords):
		return budgetChange(plan, text, conv.Query)
	}
	return "", nil
}

// stopIndex reads an "N번" reference as a 0-based index into n items.
func stopIndex(text string, n int) (int, bool) {
	m := stopToken.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v, err := strconv.Atoi(m[1])
	if err != nil || v < 1 || v > n {
		return 0, false
	}
	return v - 1, true
}

func removeChange(plan *domain.DatePlan, idx int) (string, error) {
	if len(plan.Items) <= 1 {
		return "", errNoChange(msgKeepOneStop)
	}
	name := plan.Items[idx].Spot.Name
	planner.RemoveStop(plan, idx)
	return name + " 제외", nil
}

func replaceChange(plan *domain.DatePlan, idx int, candidates []domain.Spot) (string, error) {
	alt, ok := bestAlternative(plan, candidates)
	if !ok {
		return "", errNoChange(msgNoAlternative)
	}
	old := plan.Items[idx].Spot
	planner.ReplaceSpot(plan, old.ID, []domain.Spot{alt})
	return fmt.Sprintf("%s → %s", old.Name, alt.Name), nil
}

// bestAlternative picks the highest-rated candidate the plan does not visit.
// Ties keep candidate order.
func bestAlternative(plan *domain.DatePlan, candidates []domain.Spot) (domain.Spot, bool) {
	inPlan := make(map[string]bool, len(plan.Items))
	for _, it := range plan.Items {
		inPlan[it.Spot.ID] = true
	}
	var best domain.Spot
	found := false
	for _, s := range candidates {
		if inPlan[s.ID] {
			continue
		}
		if !found || s.Rating > best.Rating {
			best, found = s, true
		}
	}
	return best, found
}

func budgetChange(plan *domain.DatePlan, text string, q *domain.Query) (string, error) {
	var stated *float64
	if q != nil && q.HasBudget() {
		stated = q.Budget
	}
	target := domain.Float64FromPtrWithDefault(-1, intelligence.ExtractBudget(text), stated)
	if target < 0 {
		return "", nil
	}
	removed := planner.TrimToBudget(plan, target)
	budget := domain.FormatWon(int(target))
	if len(removed) == 0 {
		return fmt.Sprintf("이미 예산 %s 안에 들어와요", budget), nil
	}
	names := make([]string, len(removed))
	for i, s := range removed {
		names[i] = s.Name
	}
	return fmt.Sprintf("예산 %s에 맞춰 %s 제외", budget, strings.Join(names, ", ")), nil
}
