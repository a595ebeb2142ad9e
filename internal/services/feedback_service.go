package services

import (
	"context"

	"go.uber.org/zap"

	"tripplanner/internal/models/request_models"
)

type FeedbackServiceInterface interface {
	SubmitFeedback(ctx context.Context, feedback request_models.FeedbackRequest) error
}

// FeedbackService records help-page feedback in the structured log. There is
// no mail delivery; RecipientEmail is logged for whoever reads the logs.
type FeedbackService struct {
	logger *zap.Logger
}

func NewFeedbackService(logger *zap.Logger) FeedbackServiceInterface {
	return &FeedbackService{logger: logger.Named("feedback")}
}

func (s *FeedbackService) SubmitFeedback(_ context.Context, feedback request_models.FeedbackRequest) error {
	s.logger.Info("feedback received",
		zap.String("name", feedback.Name),
		zap.String("email", feedback.Email),
		zap.String("rating", feedback.Rating),
		zap.String("difficulty", feedback.Difficulty),
		zap.String("improvement", feedback.Improvement),
		zap.String("message", feedback.Message),
		zap.String("recipient_email", feedback.RecipientEmail),
	)
	return nil
}
