package services

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"tripplanner/pkg/utils"
)

type OpenAIGateway struct {
	client *openai.Client
	model  string
}

func NewOpenAIGateway(baseURL, model, apiKey string) *OpenAIGateway {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIGateway{client: openai.NewClientWithConfig(cfg), model: model}
}

func (g *OpenAIGateway) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You return a single JSON object describing a travel itinerary."},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
		Temperature:    0.4,
	})
	if err != nil {
		return "", classifyOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: openai returned no choices", utils.ErrParseFailure)
	}
	return resp.Choices[0].Message.Content, nil
}

// An HTTP status from the API is terminal; anything without one happened on
// the way there.
func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode > 0 {
		return fmt.Errorf("%w: openai status %d: %s", utils.ErrUpstreamRejection, apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode > 0 {
		return fmt.Errorf("%w: openai status %d", utils.ErrUpstreamRejection, reqErr.HTTPStatusCode)
	}
	return fmt.Errorf("%w: openai: %v", utils.ErrTransportFailure, err)
}
