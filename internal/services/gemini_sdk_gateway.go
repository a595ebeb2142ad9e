package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"

	"tripplanner/pkg/utils"
)

// GeminiSDKGateway uses the official Go client instead of raw REST calls.
type GeminiSDKGateway struct {
	client *genai.Client
	model  string
}

func NewGeminiSDKGateway(ctx context.Context, model, apiKey string) (*GeminiSDKGateway, error) {
	if model == "" {
		model = "gemini-1.5-pro"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiSDKGateway{client: client, model: model}, nil
}

func (g *GeminiSDKGateway) Generate(ctx context.Context, prompt string) (string, error) {
	m := g.client.GenerativeModel(g.model)
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.4)

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", classifySDKError(err)
	}

	var texts []string
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok && text != "" {
				texts = append(texts, string(text))
			}
		}
		if len(texts) > 0 {
			break
		}
	}
	if len(texts) == 0 {
		return "", fmt.Errorf("%w: gemini returned no text candidates", utils.ErrParseFailure)
	}
	return strings.Join(texts, "\n"), nil
}

func (g *GeminiSDKGateway) Close() error {
	return g.client.Close()
}

// classifySDKError sorts client errors into retryable transport failures and
// terminal rejections.
func classifySDKError(err error) error {
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return fmt.Errorf("%w: gemini blocked: %v", utils.ErrUpstreamRejection, err)
	}

	if ae, ok := apierror.FromError(err); ok {
		if st := ae.GRPCStatus(); st != nil {
			switch st.Code() {
			case codes.Unavailable, codes.DeadlineExceeded:
				return fmt.Errorf("%w: gemini: %v", utils.ErrTransportFailure, err)
			}
		}
		if code := ae.HTTPCode(); code > 0 {
			return fmt.Errorf("%w: gemini status %d: %v", utils.ErrUpstreamRejection, code, err)
		}
		return fmt.Errorf("%w: gemini: %v", utils.ErrUpstreamRejection, err)
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.As(err, &netErr) {
		return fmt.Errorf("%w: gemini: %v", utils.ErrTransportFailure, err)
	}
	return fmt.Errorf("%w: gemini: %v", utils.ErrUpstreamRejection, err)
}
