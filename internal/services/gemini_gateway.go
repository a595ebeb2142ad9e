package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"tripplanner/pkg/utils"
)

// GeminiGateway calls the generateContent REST endpoint directly.
type GeminiGateway struct {
	HTTP    *http.Client
	BaseURL string
	Model   string
	APIKey  string
}

func NewGeminiGateway(baseURL, model, apiKey string) *GeminiGateway {
	return &GeminiGateway{
		// per-attempt deadlines come from the request context
		HTTP:    &http.Client{},
		BaseURL: strings.TrimRight(baseURL, "/"),
		Model:   model,
		APIKey:  apiKey,
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		ResponseMIMEType string  `json:"responseMimeType,omitempty"`
		Temperature      float32 `json:"temperature"`
	} `json:"generationConfig"`
}

type geminiEnvelope struct {
	Candidates []struct {
		Content *geminiContent `json:"content"`
	} `json:"candidates"`
	Text string `json:"text"`
}

func (g *GeminiGateway) Generate(ctx context.Context, prompt string) (string, error) {
	var body geminiRequest
	body.Contents = []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}}
	body.GenerationConfig.ResponseMIMEType = "application/json"
	body.GenerationConfig.Temperature = 0.4

	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/v1/models/%s:generateContent", g.BaseURL, url.PathEscape(g.Model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.APIKey)

	resp, err := g.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: gemini: %v", utils.ErrTransportFailure, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: gemini body: %v", utils.ErrTransportFailure, err)
	}

	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("%w: gemini status %d: %s", utils.ErrUpstreamRejection, resp.StatusCode, truncate(string(raw), 200))
	}

	return extractGeminiText(raw), nil
}

// extractGeminiText joins candidate parts, falls back to a top-level "text"
// field, and otherwise hands the raw body to the validator.
func extractGeminiText(raw []byte) string {
	var env geminiEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return string(raw)
	}

	for _, candidate := range env.Candidates {
		if candidate.Content == nil {
			continue
		}
		var texts []string
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				texts = append(texts, part.Text)
			}
		}
		if len(texts) > 0 {
			return strings.Join(texts, "\n")
		}
	}

	if env.Text != "" {
		return env.Text
	}
	return string(raw)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
