package agent

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider completes prompts against Google's Generative AI API.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider dials a genai.Client for the given API key; ctx is
// only used for the dial itself, not held past construction.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("agent: gemini client: %w", err)
	}
	return &GeminiProvider{client: client, model: model}, nil
}

func (p *GeminiProvider) Complete(ctx context.Context, req Request) (Reply, error) {
	model := p.client.GenerativeModel(p.model)
	if req.Temperature > 0 {
		temp := float32(req.Temperature)
		model.Temperature = &temp
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return Reply{}, fmt.Errorf("agent: gemini completion: %w", err)
	}

	var text string
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if t, ok := part.(genai.Text); ok {
				text += string(t)
			}
		}
	}
	return Reply{Revision: req.Revision, Text: text}, nil
}

// Close releases the underlying client.
func (p *GeminiProvider) Close() error {
	return p.client.Close()
}
