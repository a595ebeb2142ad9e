package feedback_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripplanner/internal/api/controllers"
	"tripplanner/internal/services"
)

var Module = fx.Provide(
	provideFeedbackService, provideFeedbackController,
)

func provideFeedbackService(logger *zap.Logger) services.FeedbackServiceInterface {
	return services.NewFeedbackService(logger)
}

func provideFeedbackController(feedbackService services.FeedbackServiceInterface) *controllers.FeedbackController {
	return controllers.NewFeedbackController(feedbackService)
}
