package intelligence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/datemate/internal/domain"
	"github.com/alexanderramin/datemate/internal/llm"
)

// extractedPayload is the loosely-typed shape models actually return.
type extractedPayload struct {
	Location  *string         `json:"location"`
	Budget    json.RawMessage `json:"budget"`
	Date      *string         `json:"date"`
	Interests json.RawMessage `json:"interests"`
	StartTime *string         `json:"start_time"`
}

type llmExtractor struct {
	client llm.LLMClient
}

// NewLLMExtractor creates an EntityExtractor backed by a language model.
func NewLLMExtractor(client llm.LLMClient) EntityExtractor {
	return &llmExtractor{client: client}
}

func (e *llmExtractor) Extract(ctx context.Context, text string) (domain.Entities, error) {
	resp, err := e.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskExtract,
		SystemPrompt: extractSystemPrompt,
		UserPrompt:   text,
		JSON:         true,
	})
	if err != nil {
		return domain.Entities{}, fmt.Errorf("llm extract failed: %w", err)
	}

	payload, err := llm.ExtractJSON[extractedPayload](resp.Text, nil)
	if err != nil {
		return domain.Entities{}, err
	}

	budget, err := ParseBudgetValue(payload.Budget)
	if err != nil {
		return domain.Entities{}, fmt.Errorf("%w: %v", llm.ErrInvalidOutput, err)
	}
	interests, err := ParseInterestsValue(payload.Interests)
	if err != nil {
		return domain.Entities{}, fmt.Errorf("%w: %v", llm.ErrInvalidOutput, err)
	}

	return Normalize(domain.Entities{
		Location:  payload.Location,
		Budget:    budget,
		Date:      payload.Date,
		Interests: interests,
		StartTime: payload.StartTime,
	}), nil
}
