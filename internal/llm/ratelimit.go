package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimitedClient throttles Generate calls on an inner client.
type RateLimitedClient struct {
	inner   LLMClient
	limiter *rate.Limiter
}

func NewRateLimitedClient(inner LLMClient, perSec float64, burst int) *RateLimitedClient {
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedClient{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(perSec), burst),
	}
}

func (c *RateLimitedClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %v", ErrTimeout, err)
	}
	return c.inner.Generate(ctx, req)
}

func (c *RateLimitedClient) Available(ctx context.Context) bool {
	return c.inner.Available(ctx)
}
