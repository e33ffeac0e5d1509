// Package dialog runs the per-session conversation state machine: it turns
// user text into entities, gathers a complete query, searches the catalog,
// lets the user pick venues and hands them to the planner.
package dialog

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/alexanderramin/datemate/internal/catalog"
	"github.com/alexanderramin/datemate/internal/domain"
	"github.com/alexanderramin/datemate/internal/intelligence"
	"github.com/alexanderramin/datemate/internal/planner"
	"github.com/alexanderramin/datemate/internal/session"
)

// DefaultTimeout bounds each extractor and catalog call.
const DefaultTimeout = 10 * time.Second

// Reply is what a caller shows after one turn.
type Reply struct {
	Text          string
	State         domain.ConversationState
	AwaitingInput bool
	ExpectedInput domain.InteractionType
}

type Controller struct {
	store     session.Store
	extractor intelligence.EntityExtractor
	catalog   catalog.Searcher
	planner   *planner.Planner
	logger    *zap.Logger
	now       func() time.Time
	timeout   time.Duration
}

type Option func(*Controller)

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithTimeout sets the per-call collaborator timeout. Non-positive values
// keep the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func NewController(store session.Store, extractor intelligence.EntityExtractor, searcher catalog.Searcher, p *planner.Planner, opts ...Option) *Controller {
	c := &Controller{
		store:     store,
		extractor: extractor,
		catalog:   searcher,
		planner:   p,
		logger:    zap.NewNop(),
		now:       time.Now,
		timeout:   DefaultTimeout,
	}
	for _, o := range opts {
		o(c)
	}
	if c.planner == nil {
		c.planner = planner.New(planner.WithClock(c.now))
	}
	return c
}

// StartConversation replaces any conversation for sessionID with a fresh
// one and handles text as its first turn.
func (c *Controller) StartConversation(ctx context.Context, sessionID, text string) (Reply, error) {
	if err := ctx.Err(); err != nil {
		return Reply{}, err
	}
	unlock := c.store.Lock(sessionID)
	defer unlock()

	return c.start(ctx, sessionID, text), nil
}

// HandleUserInput dispatches text on the session's current state. An
// unknown session starts a new conversation.
func (c *Controller) HandleUserInput(ctx context.Context, sessionID, text string) (Reply, error) {
	if err := ctx.Err(); err != nil {
		return Reply{}, err
	}
	unlock := c.store.Lock(sessionID)
	defer unlock()

	conv, ok := c.store.Get(sessionID)
	if !ok {
		return c.start(ctx, sessionID, text), nil
	}

	interaction := classify(conv, text)
	out := c.dispatch(ctx, conv, text)
	return c.record(conv, text, interaction, out), nil
}

// Conversation returns the live conversation for sessionID. Callers must
// not mutate it; use Snapshot for a copy that is safe to read while turns
// run.
func (c *Controller) Conversation(sessionID string) (*domain.Conversation, bool) {
	return c.store.Get(sessionID)
}

func (c *Controller) ClearConversation(sessionID string) {
	unlock := c.store.Lock(sessionID)
	defer unlock()
	c.store.Delete(sessionID)
}

// outcome is a handler's result before it is recorded as a turn.
type outcome struct {
	text      string
	next      domain.ConversationState
	extracted domain.Entities
}

func (c *Controller) start(ctx context.Context, sessionID, text string) Reply {
	conv := domain.NewConversation(sessionID, c.now())
	c.store.Put(conv)

	q := c.buildQuery(ctx, sessionID, text)
	conv.Query = q
	out := c.searchOrClarify(ctx, conv)
	out.extracted = q.Entities()
	return c.record(conv, text, domain.InteractionInitialQuery, out)
}

func (c *Controller) dispatch(ctx context.Context, conv *domain.Conversation, text string) outcome {
	switch conv.State {
	case domain.StateInitialPlanning:
		return c.handleInitialPlanning(ctx, conv, text)
	case domain.StateAwaitingUserSelection:
		return c.handleSelection(conv, text)
	case domain.StatePresentingResults:
		return c.handleFeedback(conv, text)
	case domain.StateModifyingPlan:
		return c.handleModification(conv, text)
	case domain.StatePlanningInProgress,
		domain.StateAwaitingFeedback,
		domain.StateHandlingQuestions,
		domain.StatePlanConfirmed:
		return outcome{text: msgProcessing, next: conv.State}
	default:
		c.logger.Warn("unknown conversation state", zap.String("session_id", conv.SessionID), zap.String("state", string(conv.State)))
		return outcome{text: msgProcessing, next: conv.State}
	}
}

// record appends the turn, settles what input is expected next and builds
// the reply.
func (c *Controller) record(conv *domain.Conversation, text string, interaction domain.InteractionType, out outcome) Reply {
	turn := conv.AddTurn(domain.Turn{
		UserInput:     text,
		AgentResponse: out.text,
		Interaction:   interaction,
		StateAfter:    out.next,
		Extracted:     out.extracted,
	}, c.now())
	settleAwaiting(conv)

	c.logger.Debug("turn",
		zap.String("session_id", conv.SessionID),
		zap.String("turn_id", turn.ID),
		zap.String("state_before", string(turn.StateBefore)),
		zap.String("state_after", string(turn.StateAfter)),
		zap.String("interaction_type", string(interaction)),
	)

	return Reply{
		Text:          out.text,
		State:         conv.State,
		AwaitingInput: conv.AwaitingInput,
		ExpectedInput: conv.ExpectedInput,
	}
}

// settleAwaiting sets the input the next turn is expected to carry.
func settleAwaiting(conv *domain.Conversation) {
	switch conv.State {
	case domain.StateInitialPlanning:
		conv.SetAwaitingInput(domain.InteractionClarificationNeeded)
	case domain.StateAwaitingUserSelection:
		conv.SetAwaitingInput(domain.InteractionSelectionRequired)
	case domain.StatePresentingResults:
		conv.SetAwaitingInput(domain.InteractionConfirmation)
	case domain.StateModifyingPlan:
		conv.SetAwaitingInput(domain.InteractionPlanModification)
	case domain.StatePlanConfirmed:
		conv.ClearAwaitingInput()
	}
}

func (c *Controller) buildQuery(ctx context.Context, sessionID, text string) *domain.Query {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	q, err := intelligence.BuildQuery(ctx, c.extractor, sessionID, text, c.now())
	if err != nil {
		c.logger.Warn("entity extraction failed", zap.String("session_id", sessionID), zap.Error(err))
	}
	return q
}

func (c *Controller) search(ctx context.Context, q *domain.Query) ([]domain.Spot, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.catalog.Search(ctx, domain.DerefStr(q.Location), q.Interests, q.BudgetPerSpot())
}
