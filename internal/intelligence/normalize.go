package intelligence

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/datemate/internal/domain"
)

// Normalize trims string fields, drops negative budgets and maps interests
// onto known labels without duplicates.
func Normalize(e domain.Entities) domain.Entities {
	out := domain.Entities{
		Location:  domain.StringPtr(domain.DerefStr(e.Location)),
		Date:      domain.StringPtr(domain.DerefStr(e.Date)),
		StartTime: domain.StringPtr(domain.DerefStr(e.StartTime)),
	}
	if e.Budget != nil && *e.Budget >= 0 {
		out.Budget = domain.Float64Ptr(*e.Budget)
	}
	seen := make(map[string]bool, len(e.Interests))
	for _, in := range e.Interests {
		label := interestLabelFor(in)
		if label == "" || seen[label] {
			continue
		}
		seen[label] = true
		out.Interests = append(out.Interests, label)
	}
	return out
}

// ParseBudgetValue accepts a JSON number, a numeric string with noise
// ("50,000원", "₩30000"), or a Korean amount ("10만원").
func ParseBudgetValue(raw json.RawMessage) (*float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return domain.Float64Ptr(n), nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("budget must be a number or string: %s", raw)
	}
	return parseBudgetString(s)
}

func parseBudgetString(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if strings.Contains(s, "만") {
		if b := ExtractBudget(s); b != nil {
			return b, nil
		}
	}
	digits := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, s)
	if digits == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing budget %q: %w", s, err)
	}
	return domain.Float64Ptr(f), nil
}

// ParseInterestsValue accepts a JSON array of strings or one
// comma-separated string.
func ParseInterestsValue(raw json.RawMessage) ([]string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return trimAll(list), nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("interests must be a list or string: %s", raw)
	}
	return trimAll(strings.Split(s, ",")), nil
}

func trimAll(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
