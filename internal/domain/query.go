package domain

import (
	"strings"
	"time"
)

// Entities is the partially-null attribute bag an extractor produces for
// one piece of user text.
type Entities struct {
	Location  *string  `json:"location,omitempty"`
	Budget    *float64 `json:"budget,omitempty"`
	Date      *string  `json:"date,omitempty"`
	Interests []string `json:"interests,omitempty"`
	StartTime *string  `json:"start_time,omitempty"`
}

func (e Entities) IsEmpty() bool {
	return e.Location == nil && e.Budget == nil && e.Date == nil &&
		len(e.Interests) == 0 && e.StartTime == nil
}

// Clone copies every pointed-to value so the result shares nothing with e.
func (e Entities) Clone() Entities {
	out := Entities{
		Location:  clonePtr(e.Location),
		Budget:    clonePtr(e.Budget),
		Date:      clonePtr(e.Date),
		StartTime: clonePtr(e.StartTime),
	}
	if len(e.Interests) > 0 {
		out.Interests = append([]string(nil), e.Interests...)
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Confidence weights. Location dominates; budget is the weakest signal.
const (
	weightLocation  = 0.40
	weightInterests = 0.25
	weightDate      = 0.20
	weightBudget    = 0.15
)

// Query is one session's accumulated planning intent.
type Query struct {
	Text       string
	SessionID  string
	Location   *string
	Budget     *float64
	Date       *string
	Interests  []string
	StartTime  *string
	Parsed     bool
	Confidence float64
	CreatedAt  time.Time
}

func NewQuery(sessionID, text string, now time.Time) *Query {
	return &Query{Text: text, SessionID: sessionID, CreatedAt: now}
}

// Apply copies extracted entities into an empty query and marks it parsed.
func (q *Query) Apply(e Entities) {
	q.Location = StringPtr(DerefStr(e.Location))
	if e.Budget != nil && *e.Budget >= 0 {
		b := *e.Budget
		q.Budget = &b
	}
	q.Date = StringPtr(DerefStr(e.Date))
	q.StartTime = StringPtr(DerefStr(e.StartTime))
	q.AddInterests(e.Interests...)
	q.Parsed = true
	q.Refresh()
}

func (q *Query) HasLocation() bool {
	return q.Location != nil && strings.TrimSpace(*q.Location) != ""
}

func (q *Query) HasBudget() bool {
	return q.Budget != nil && *q.Budget > 0
}

func (q *Query) HasDate() bool {
	return q.Date != nil && strings.TrimSpace(*q.Date) != ""
}

func (q *Query) HasInterests() bool {
	return len(q.Interests) > 0
}

func (q *Query) HasStartTime() bool {
	return q.StartTime != nil && strings.TrimSpace(*q.StartTime) != ""
}

// IsComplete gates venue search: a location and at least one interest.
func (q *Query) IsComplete() bool {
	return q.HasLocation() && q.HasInterests()
}

// ConfidenceScore is a weighted sum over the attributes present.
func (q *Query) ConfidenceScore() float64 {
	score := 0.0
	if q.HasLocation() {
		score += weightLocation
	}
	if q.HasInterests() {
		score += weightInterests
	}
	if q.HasDate() {
		score += weightDate
	}
	if q.HasBudget() {
		score += weightBudget
	}
	if score > 1 {
		score = 1
	}
	return score
}

func (q *Query) Refresh() {
	q.Confidence = q.ConfidenceScore()
}

// AddInterests appends trimmed, non-empty interests not already present.
func (q *Query) AddInterests(vals ...string) {
	for _, v := range vals {
		v = strings.TrimSpace(v)
		if v == "" || q.hasInterest(v) {
			continue
		}
		q.Interests = append(q.Interests, v)
	}
}

func (q *Query) hasInterest(v string) bool {
	for _, existing := range q.Interests {
		if existing == v {
			return true
		}
	}
	return false
}

// Merge folds a later turn's query into this one. Known values are never
// overwritten; interests are unioned.
func (q *Query) Merge(other *Query) {
	if other == nil {
		return
	}
	if !q.HasLocation() && other.HasLocation() {
		q.Location = StringPtr(*other.Location)
	}
	if !q.HasBudget() && other.HasBudget() {
		b := *other.Budget
		q.Budget = &b
	}
	if !q.HasDate() && other.HasDate() {
		q.Date = StringPtr(*other.Date)
	}
	if !q.HasStartTime() && other.HasStartTime() {
		q.StartTime = StringPtr(*other.StartTime)
	}
	q.AddInterests(other.Interests...)
	q.Parsed = q.Parsed || other.Parsed
	q.Refresh()
}

// BudgetPerSpot is the per-stop ceiling used for catalog search: a third of
// the total budget, or 0 when no budget is known.
func (q *Query) BudgetPerSpot() float64 {
	if !q.HasBudget() {
		return 0
	}
	return *q.Budget / 3
}

// Entities returns the query's attributes as an independent copy.
func (q *Query) Entities() Entities {
	return Entities{
		Location:  q.Location,
		Budget:    q.Budget,
		Date:      q.Date,
		Interests: q.Interests,
		StartTime: q.StartTime,
	}.Clone()
}
