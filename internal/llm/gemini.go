package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// geminiClient implements LLMClient on Google's Gemini API.
type geminiClient struct {
	cfg      LLMConfig
	client   *genai.Client
	observer Observer
}

// NewGeminiClient requires cfg.APIKey. Call Close on the returned client
// (via io.Closer) when done.
func NewGeminiClient(ctx context.Context, cfg LLMConfig, observer Observer) (LLMClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini api key is empty", ErrNotConfigured)
	}
	if observer == nil {
		observer = NoopObserver{}
	}
	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &geminiClient{cfg: cfg, client: client, observer: observer}, nil
}

func (c *geminiClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	temp, maxTok := sampling(c.cfg, req)

	model := c.client.GenerativeModel(c.cfg.Model)
	model.SetTemperature(float32(temp))
	if maxTok > 0 {
		model.SetMaxOutputTokens(int32(maxTok))
	}
	if req.SystemPrompt != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.SystemPrompt)}}
	}
	if req.JSON {
		model.ResponseMIMEType = "application/json"
	}

	return generateWithRetry(ctx, c.cfg, c.observer, req.Task, func(ctx context.Context) (*GenerateResponse, error) {
		resp, err := model.GenerateContent(ctx, genai.Text(req.UserPrompt))
		if err != nil {
			return nil, fmt.Errorf("gemini: %w", err)
		}
		text := geminiText(resp)
		if text == "" {
			return nil, errors.New("gemini returned no content")
		}
		return &GenerateResponse{Text: text, Model: c.cfg.Model}, nil
	})
}

func geminiText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String()
}

// Available reports whether a client was constructed; Gemini has no cheap
// health endpoint.
func (c *geminiClient) Available(context.Context) bool {
	return c.client != nil
}

func (c *geminiClient) Close() error {
	return c.client.Close()
}
