package dialog

import (
	"time"

	"github.com/alexanderramin/datemate/internal/domain"
)

// Snapshot is a copy of a conversation taken under the session lock.
type Snapshot struct {
	SessionID     string
	State         domain.ConversationState
	AwaitingInput bool
	ExpectedInput domain.InteractionType
	Query         domain.Entities
	Confidence    float64
	Turns         []domain.Turn
	Candidates    []domain.Spot
	Selected      []domain.Spot
	LastChange    string
	Plan          *domain.DatePlan
	StartedAt     time.Time
	UpdatedAt     time.Time
}

func (c *Controller) Snapshot(sessionID string) (Snapshot, bool) {
	unlock := c.store.Lock(sessionID)
	defer unlock()

	conv, ok := c.store.Get(sessionID)
	if !ok {
		return Snapshot{}, false
	}
	s := Snapshot{
		SessionID:     conv.SessionID,
		State:         conv.State,
		AwaitingInput: conv.AwaitingInput,
		ExpectedInput: conv.ExpectedInput,
		Turns:         append([]domain.Turn(nil), conv.Turns...),
		Candidates:    append([]domain.Spot(nil), conv.CandidateSpots()...),
		Selected:      append([]domain.Spot(nil), conv.SelectedSpots()...),
		Plan:          conv.Plan.Clone(),
		StartedAt:     conv.StartedAt,
		UpdatedAt:     conv.UpdatedAt,
	}
	for i := range s.Turns {
		s.Turns[i].Extracted = s.Turns[i].Extracted.Clone()
	}
	if conv.Query != nil {
		s.Query = conv.Query.Entities()
		s.Confidence = conv.Query.Confidence
	}
	if v, ok := conv.Value(domain.KeyLastChange); ok {
		s.LastChange, _ = v.(string)
	}
	return s, true
}
