package dialog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/alexanderramin/datemate/internal/domain"
	"github.com/alexanderramin/datemate/internal/planner"
)

func (c *Controller) handleInitialPlanning(ctx context.Context, conv *domain.Conversation, text string) outcome {
	q := c.buildQuery(ctx, conv.SessionID, text)
	if conv.Query == nil {
		conv.Query = q
	} else {
		conv.Query.Merge(q)
	}
	out := c.searchOrClarify(ctx, conv)
	out.extracted = q.Entities()
	return out
}

// searchOrClarify asks for missing fields until the query is complete, then
// searches the catalog and lists what it found.
func (c *Controller) searchOrClarify(ctx context.Context, conv *domain.Conversation) outcome {
	q := conv.Query
	if !q.IsComplete() {
		return outcome{text: clarificationPrompt(q), next: domain.StateInitialPlanning}
	}

	spots, err := c.search(ctx, q)
	if err != nil {
		c.logger.Warn("catalog search failed", zap.String("session_id", conv.SessionID), zap.Error(err))
		return outcome{text: msgSearchFailed, next: domain.StateInitialPlanning}
	}
	if len(spots) == 0 {
		return outcome{text: msgNoResults, next: domain.StateInitialPlanning}
	}

	conv.Set(domain.KeyCandidateSpots, spots)
	return outcome{text: candidatesPrompt(q, spots), next: domain.StateAwaitingUserSelection}
}

func (c *Controller) handleSelection(conv *domain.Conversation, text string) outcome {
	selected := ParseSelection(text, conv.CandidateSpots())
	if len(selected) == 0 {
		return outcome{text: msgSelectionRetry, next: conv.State}
	}
	conv.Set(domain.KeySelectedSpots, selected)

	plan, err := c.safePlan(conv, selected)
	if err != nil {
		c.logger.Error("planning failed", zap.String("session_id", conv.SessionID), zap.Error(err))
		return outcome{text: msgPlanFailed, next: domain.StateAwaitingUserSelection}
	}
	if plan.IsEmpty() {
		return outcome{text: msgNothingInBudget, next: domain.StateAwaitingUserSelection}
	}

	conv.Plan = plan
	return outcome{text: planPrompt(selected, planner.Summary(plan)), next: domain.StatePresentingResults}
}

// safePlan converts planner panics into errors.
func (c *Controller) safePlan(conv *domain.Conversation, selected []domain.Spot) (plan *domain.DatePlan, err error) {
	defer func() {
		if r := recover(); r != nil {
			plan, err = nil, fmt.Errorf("planner panic: %v", r)
		}
	}()
	return c.planner.CreateDatePlan(selected, preferencesFor(conv.Query), planDate(domain.DerefStr(conv.Query.Date), c.now()))
}

func preferencesFor(q *domain.Query) planner.Preferences {
	prefs := planner.Preferences{
		Location:  domain.DerefStr(q.Location),
		Interests: q.Interests,
		StartTime: domain.DerefStr(q.StartTime),
	}
	if q.HasBudget() {
		b := *q.Budget
		prefs.Budget = &b
	}
	return prefs
}

func (c *Controller) handleFeedback(conv *domain.Conversation, text string) outcome {
	switch {
	case containsAny(text, confirmWords):
		return outcome{text: msgConfirmed, next: domain.StatePlanConfirmed}
	case containsAny(text, changeWords):
		return outcome{text: msgAskModification, next: domain.StateModifyingPlan}
	default:
		return outcome{text: msgAskMore, next: conv.State}
	}
}
