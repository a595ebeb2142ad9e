package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"tripplanner/internal/infra"
	"tripplanner/pkg/utils"
)

// ModelGateway sends one prompt to a generative model and returns its raw text.
// Implementations wrap failures in utils.ErrTransportFailure (retryable) or
// utils.ErrUpstreamRejection (terminal).
type ModelGateway interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// RetryPolicy runs attempts sequentially. Only transport failures are retried,
// each retry waiting BackoffBase multiplied by the attempt number.
type RetryPolicy struct {
	MaxRetries     int
	BackoffBase    time.Duration
	AttemptTimeout time.Duration
}

func NewRetryPolicy(cfg infra.ModelConfig) RetryPolicy {
	return RetryPolicy{
		MaxRetries:     cfg.MaxRetries,
		BackoffBase:    cfg.BackoffBaseDuration(),
		AttemptTimeout: cfg.AttemptTimeoutDuration(),
	}
}

func (p RetryPolicy) Do(ctx context.Context, logger *zap.Logger, attempt func(ctx context.Context) (string, error)) (string, error) {
	var lastErr error
	for i := 0; i <= p.MaxRetries; i++ {
		if i > 0 {
			wait := p.BackoffBase * time.Duration(i)
			logger.Warn("retrying model call",
				zap.Int("attempt", i+1),
				zap.Duration("backoff", wait),
				zap.Error(lastErr))

			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return "", fmt.Errorf("%w: %v", utils.ErrTransportFailure, ctx.Err())
			case <-timer.C:
			}
		}

		text, err := p.runAttempt(ctx, attempt)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !errors.Is(err, utils.ErrTransportFailure) || ctx.Err() != nil {
			return "", err
		}
	}
	return "", lastErr
}

func (p RetryPolicy) runAttempt(ctx context.Context, attempt func(ctx context.Context) (string, error)) (string, error) {
	if p.AttemptTimeout <= 0 {
		return attempt(ctx)
	}
	attemptCtx, cancel := context.WithTimeout(ctx, p.AttemptTimeout)
	defer cancel()
	return attempt(attemptCtx)
}

// RetryingGateway applies a RetryPolicy around another gateway.
type RetryingGateway struct {
	next   ModelGateway
	policy RetryPolicy
	logger *zap.Logger
}

func NewRetryingGateway(next ModelGateway, policy RetryPolicy, logger *zap.Logger) *RetryingGateway {
	return &RetryingGateway{next: next, policy: policy, logger: logger}
}

func (g *RetryingGateway) Generate(ctx context.Context, prompt string) (string, error) {
	return g.policy.Do(ctx, g.logger, func(ctx context.Context) (string, error) {
		return g.next.Generate(ctx, prompt)
	})
}

// Close releases the wrapped client when it holds a connection.
func (g *RetryingGateway) Close() error {
	if closer, ok := g.next.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// UnconfiguredGateway stands in when the selected provider has no API key.
type UnconfiguredGateway struct {
	Provider string
}

func (g UnconfiguredGateway) Generate(context.Context, string) (string, error) {
	return "", fmt.Errorf("%w: provider %q", utils.ErrModelNotConfigured, g.Provider)
}

// NewModelGateway picks the provider client named in cfg and wraps it with
// the retry policy.
func NewModelGateway(cfg infra.ModelConfig, logger *zap.Logger) (ModelGateway, error) {
	if !cfg.HasModelCredentials() {
		logger.Warn("model credentials missing, trip generation will fail", zap.String("provider", cfg.Provider))
		return UnconfiguredGateway{Provider: cfg.Provider}, nil
	}

	var (
		client ModelGateway
		err    error
	)
	switch cfg.Provider {
	case infra.ProviderGemini:
		client = NewGeminiGateway(cfg.GeminiBaseURL, cfg.GeminiModel, cfg.GeminiAPIKey)
	case infra.ProviderGeminiSDK:
		client, err = NewGeminiSDKGateway(context.Background(), cfg.GeminiModel, cfg.GeminiAPIKey)
	case infra.ProviderOpenAI:
		client = NewOpenAIGateway(cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.OpenAIAPIKey)
	default:
		return nil, fmt.Errorf("unsupported model provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("model gateway ready",
		zap.String("provider", cfg.Provider),
		zap.Int("max_retries", cfg.MaxRetries))
	return NewRetryingGateway(client, NewRetryPolicy(cfg), logger.Named("model")), nil
}
