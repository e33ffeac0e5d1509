package domain

import (
	"fmt"
	"time"
)

// Keys into a conversation's collected data.
const (
	KeyCandidateSpots = "candidate_spots"
	KeySelectedSpots  = "selected_spots"
	KeyLastChange     = "last_change"
)

// Turn is an immutable record of one exchange.
type Turn struct {
	ID            string
	UserInput     string
	AgentResponse string
	Interaction   InteractionType
	StateBefore   ConversationState
	StateAfter    ConversationState
	Timestamp     time.Time
	Extracted     Entities
}

// Conversation is the per-session aggregate. State always equals the
// StateAfter of the last appended turn.
type Conversation struct {
	SessionID     string
	State         ConversationState
	Query         *Query
	Turns         []Turn
	AwaitingInput bool
	ExpectedInput InteractionType
	Plan          *DatePlan
	StartedAt     time.Time
	UpdatedAt     time.Time

	data map[string]any
}

func NewConversation(sessionID string, now time.Time) *Conversation {
	return &Conversation{
		SessionID: sessionID,
		State:     StateInitialPlanning,
		StartedAt: now,
		UpdatedAt: now,
		data:      make(map[string]any),
	}
}

// AddTurn stamps StateBefore from the current state, appends the turn and
// advances the conversation to its StateAfter.
func (c *Conversation) AddTurn(t Turn, now time.Time) Turn {
	if t.ID == "" {
		t.ID = fmt.Sprintf("turn_%d", len(c.Turns)+1)
	}
	if t.Timestamp.IsZero() {
		t.Timestamp = now
	}
	t.StateBefore = c.State
	if t.StateAfter == "" {
		t.StateAfter = c.State
	}
	c.Turns = append(c.Turns, t)
	c.State = t.StateAfter
	c.UpdatedAt = now
	return t
}

func (c *Conversation) SetAwaitingInput(expected InteractionType) {
	c.AwaitingInput = true
	c.ExpectedInput = expected
}

func (c *Conversation) ClearAwaitingInput() {
	c.AwaitingInput = false
	c.ExpectedInput = ""
}

func (c *Conversation) Set(key string, v any) {
	if c.data == nil {
		c.data = make(map[string]any)
	}
	c.data[key] = v
}

func (c *Conversation) Value(key string) (any, bool) {
	v, ok := c.data[key]
	return v, ok
}

func (c *Conversation) Keys() []string {
	keys := make([]string, 0, len(c.data))
	for k := range c.data {
		keys = append(keys, k)
	}
	return keys
}

func (c *Conversation) spots(key string) []Spot {
	v, ok := c.data[key]
	if !ok {
		return nil
	}
	spots, _ := v.([]Spot)
	return spots
}

func (c *Conversation) CandidateSpots() []Spot { return c.spots(KeyCandidateSpots) }
func (c *Conversation) SelectedSpots() []Spot  { return c.spots(KeySelectedSpots) }

func (c *Conversation) LastUserInput() string {
	if len(c.Turns) == 0 {
		return ""
	}
	return c.Turns[len(c.Turns)-1].UserInput
}

func (c *Conversation) LastAgentResponse() string {
	if len(c.Turns) == 0 {
		return ""
	}
	return c.Turns[len(c.Turns)-1].AgentResponse
}

// IsLong reports whether the conversation has run for ten turns or more.
func (c *Conversation) IsLong() bool {
	return len(c.Turns) >= 10
}

func (c *Conversation) DurationMinutes(now time.Time) int {
	return int(now.Sub(c.StartedAt).Minutes())
}
