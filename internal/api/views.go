package api

import (
	"time"

	"github.com/alexanderramin/datemate/internal/dialog"
	"github.com/alexanderramin/datemate/internal/domain"
)

type replyView struct {
	Response      string `json:"response"`
	State         string `json:"state"`
	AwaitingInput bool   `json:"awaiting_input"`
	ExpectedInput string `json:"expected_input,omitempty"`
}

type spotView struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Category      string            `json:"category"`
	CategoryLabel string            `json:"category_label"`
	Area          string            `json:"area"`
	Address       string            `json:"address"`
	Latitude      float64           `json:"latitude"`
	Longitude     float64           `json:"longitude"`
	Rating        float64           `json:"rating"`
	ReviewCount   int               `json:"review_count"`
	DurationMin   int               `json:"duration_min"`
	PriceRange    string            `json:"price_range"`
	EstimatedCost int               `json:"estimated_cost"`
	Description   string            `json:"description,omitempty"`
	OpeningHours  map[string]string `json:"opening_hours,omitempty"`
	Highlights    []string          `json:"highlights,omitempty"`
	Tips          []string          `json:"tips,omitempty"`
}

type transportView struct {
	Mode        string  `json:"mode"`
	DurationMin int     `json:"duration_min"`
	DistanceKm  float64 `json:"distance_km"`
	Cost        int     `json:"cost"`
}

type itemView struct {
	Start     string         `json:"start"`
	End       string         `json:"end"`
	Spot      spotView       `json:"spot"`
	Note      string         `json:"note,omitempty"`
	Transport *transportView `json:"transport,omitempty"`
}

type planView struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Date             string     `json:"date"`
	PartySize        int        `json:"party_size"`
	TotalCost        int        `json:"total_cost"`
	TotalDurationMin int        `json:"total_duration_min"`
	Items            []itemView `json:"items"`
}

type turnView struct {
	ID            string    `json:"id"`
	UserInput     string    `json:"user_input"`
	AgentResponse string    `json:"agent_response"`
	Interaction   string    `json:"interaction_type"`
	StateBefore   string    `json:"state_before"`
	StateAfter    string    `json:"state_after"`
	Timestamp     time.Time `json:"timestamp"`
}

type sessionView struct {
	SessionID     string          `json:"session_id"`
	State         string          `json:"state"`
	AwaitingInput bool            `json:"awaiting_input"`
	ExpectedInput string          `json:"expected_input,omitempty"`
	Query         domain.Entities `json:"query"`
	Confidence    float64         `json:"confidence"`
	Candidates    []spotView      `json:"candidates,omitempty"`
	Selected      []spotView      `json:"selected,omitempty"`
	LastChange    string          `json:"last_change,omitempty"`
	Plan          *planView       `json:"plan,omitempty"`
	Turns         []turnView      `json:"turns"`
	StartedAt     time.Time       `json:"started_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func toReplyView(r dialog.Reply) replyView {
	return replyView{
		Response:      r.Text,
		State:         string(r.State),
		AwaitingInput: r.AwaitingInput,
		ExpectedInput: string(r.ExpectedInput),
	}
}

func toSpotView(s domain.Spot) spotView {
	return spotView{
		ID:            s.ID,
		Name:          s.Name,
		Category:      string(s.Category),
		CategoryLabel: s.Category.Label(),
		Area:          s.Location.Name,
		Address:       s.Location.Address,
		Latitude:      s.Location.Latitude,
		Longitude:     s.Location.Longitude,
		Rating:        s.Rating,
		ReviewCount:   s.ReviewCount,
		DurationMin:   s.DurationMin,
		PriceRange:    string(s.PriceRange),
		EstimatedCost: s.EstimatedCost,
		Description:   s.Description,
		OpeningHours:  s.OpeningHours,
		Highlights:    s.Highlights,
		Tips:          s.Tips,
	}
}

func toSpotViews(spots []domain.Spot) []spotView {
	out := make([]spotView, len(spots))
	for i, s := range spots {
		out[i] = toSpotView(s)
	}
	return out
}

func toPlanView(p *domain.DatePlan) *planView {
	if p == nil {
		return nil
	}
	v := &planView{
		ID:               p.ID,
		Title:            p.Title,
		Date:             p.Date.Format(time.DateOnly),
		PartySize:        p.PartySize,
		TotalCost:        p.TotalCost,
		TotalDurationMin: p.TotalDurationMin,
		Items:            make([]itemView, len(p.Items)),
	}
	for i, it := range p.Items {
		iv := itemView{
			Start: it.Start.String(),
			End:   it.End.String(),
			Spot:  toSpotView(it.Spot),
			Note:  it.Note,
		}
		if t := it.Transport; t != nil {
			iv.Transport = &transportView{Mode: string(t.Mode), DurationMin: t.DurationMin, DistanceKm: t.DistanceKm, Cost: t.Cost}
		}
		v.Items[i] = iv
	}
	return v
}

func toSessionView(s dialog.Snapshot) sessionView {
	v := sessionView{
		SessionID:     s.SessionID,
		State:         string(s.State),
		AwaitingInput: s.AwaitingInput,
		ExpectedInput: string(s.ExpectedInput),
		Query:         s.Query,
		Confidence:    s.Confidence,
		LastChange:    s.LastChange,
		Plan:          toPlanView(s.Plan),
		Turns:         make([]turnView, len(s.Turns)),
		StartedAt:     s.StartedAt,
		UpdatedAt:     s.UpdatedAt,
	}
	if len(s.Candidates) > 0 {
		v.Candidates = toSpotViews(s.Candidates)
	}
	if len(s.Selected) > 0 {
		v.Selected = toSpotViews(s.Selected)
	}
	for i, t := range s.Turns {
		v.Turns[i] = turnView{
			ID:            t.ID,
			UserInput:     t.UserInput,
			AgentResponse: t.AgentResponse,
			Interaction:   string(t.Interaction),
			StateBefore:   string(t.StateBefore),
			StateAfter:    string(t.StateAfter),
			Timestamp:     t.Timestamp,
		}
	}
	return v
}
