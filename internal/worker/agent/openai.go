package agent

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIProvider completes prompts against the Chat Completions API.
type OpenAIProvider struct {
	client openai.Client
	model  string
}

// NewOpenAIProvider returns a Provider backed by the given API key and
// model name.
func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	return &OpenAIProvider{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

func (p *OpenAIProvider) Complete(ctx context.Context, req Request) (Reply, error) {
	params := openai.ChatCompletionNewParams{
		Model: p.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(req.Prompt),
		},
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return Reply{}, fmt.Errorf("agent: openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Reply{Revision: req.Revision}, nil
	}
	return Reply{Revision: req.Revision, Text: resp.Choices[0].Message.Content}, nil
}
