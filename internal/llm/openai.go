package llm

import (
	"context"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultOpenAIModel = "gpt-4o-mini"

// openaiGenerator uses the official SDK for openai and openai-compatible
// endpoints. SDK retries are disabled so each Generate is a single attempt.
type openaiGenerator struct {
	model  string
	client openai.Client
}

func newOpenAIGenerator(s Settings) *openaiGenerator {
	model := s.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	opts := []option.RequestOption{
		option.WithAPIKey(s.APIKey),
		option.WithMaxRetries(0),
	}
	if s.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(s.BaseURL))
	}
	return &openaiGenerator{
		model:  model,
		client: openai.NewClient(opts...),
	}
}

func (o *openaiGenerator) Generate(ctx context.Context, req Request) (*Response, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(o.model),
		Messages:    []openai.ChatCompletionMessageParamUnion{openai.UserMessage(req.Prompt)},
		Temperature: openai.Float(req.Temperature),
		MaxTokens:   openai.Int(int64(req.MaxOutputTokens)),
	})
	if err != nil {
		return nil, fmt.Errorf("openai request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from openai")
	}
	return &Response{Text: resp.Choices[0].Message.Content}, nil
}
