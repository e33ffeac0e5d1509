package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

// GenerateRequest holds the parameters for an LLM generation call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	Temperature  *float64 // nil uses task default
	MaxTokens    *int     // nil uses task default

	// JSON asks providers that support it to constrain output to a JSON object.
	JSON bool
}

// GenerateResponse holds the result of an LLM generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// LLMClient provides access to a language model for text generation.
type LLMClient interface {
	// Generate sends a prompt and returns the raw text response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available checks whether the backend is reachable.
	Available(ctx context.Context) bool
}

// NewClient builds the client for cfg.Provider.
func NewClient(ctx context.Context, cfg LLMConfig, observer Observer) (LLMClient, error) {
	var (
		client LLMClient
		err    error
	)
	switch cfg.Provider {
	case ProviderOllama, "":
		client = NewOllamaClient(cfg, observer)
	case ProviderOpenAI:
		client, err = NewOpenAIClient(cfg, observer)
	case ProviderGemini:
		client, err = NewGeminiClient(ctx, cfg, observer)
	default:
		return nil, fmt.Errorf("%w: unsupported provider %q", ErrNotConfigured, cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	if cfg.RatePerSec > 0 {
		client = NewRateLimitedClient(client, cfg.RatePerSec, cfg.Burst)
	}
	return client, nil
}

// sampling resolves temperature and token limits from the task defaults
// and per-request overrides.
func sampling(cfg LLMConfig, req GenerateRequest) (float64, int) {
	taskCfg := cfg.Tasks[req.Task]
	temp := taskCfg.Temperature
	if req.Temperature != nil {
		temp = *req.Temperature
	}
	maxTok := taskCfg.MaxTokens
	if req.MaxTokens != nil {
		maxTok = *req.MaxTokens
	}
	return temp, maxTok
}

// attemptFunc performs one provider round trip.
type attemptFunc func(ctx context.Context) (*GenerateResponse, error)

// generateWithRetry runs call under the task timeout, retrying up to
// cfg.MaxRetries times, and reports the outcome to the observer.
func generateWithRetry(ctx context.Context, cfg LLMConfig, observer Observer, task TaskType, call attemptFunc) (*GenerateResponse, error) {
	start := time.Now()

	timeoutMs := cfg.TaskTimeout(task)
	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutMs)*time.Millisecond)
	defer cancel()

	var lastErr error
	attempts := 0
	for i := 0; i < 1+cfg.MaxRetries; i++ {
		attempts++
		resp, err := call(ctx)
		if err == nil {
			latency := time.Since(start).Milliseconds()
			if resp.Model == "" {
				resp.Model = cfg.Model
			}
			resp.LatencyMs = latency
			observer.OnCallComplete(LLMCallEvent{
				Task:      task,
				Provider:  cfg.Provider,
				Model:     resp.Model,
				LatencyMs: latency,
				Attempts:  attempts,
				Success:   true,
			})
			return resp, nil
		}
		lastErr = err

		// Don't retry on context cancellation/timeout
		if ctx.Err() != nil {
			break
		}
	}

	var finalErr error
	switch {
	case ctx.Err() != nil:
		finalErr = ErrTimeout
	case isConnectionError(lastErr):
		finalErr = ErrUnavailable
	default:
		finalErr = fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)
	}

	observer.OnCallComplete(LLMCallEvent{
		Task:      task,
		Provider:  cfg.Provider,
		Model:     cfg.Model,
		LatencyMs: time.Since(start).Milliseconds(),
		Attempts:  attempts,
		Success:   false,
		ErrorCode: errorCode(finalErr),
	})
	return nil, finalErr
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	case errors.Is(err, ErrRetryExhausted):
		return "RETRY_EXHAUSTED"
	default:
		return "UNKNOWN"
	}
}
