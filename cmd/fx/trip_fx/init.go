package trip_fx

import (
	"context"
	"io"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripplanner/internal/api/controllers"
	"tripplanner/internal/infra"
	"tripplanner/internal/services"
)

var Module = fx.Provide(
	ProvideModelGateway,
	ProvideTripService,
	ProvideTripController)

// ProvideModelGateway builds the client for the configured provider and closes
// it on shutdown when it holds a connection.
func ProvideModelGateway(lc fx.Lifecycle, cfg infra.ModelConfig, logger *zap.Logger) (services.ModelGateway, error) {
	gateway, err := services.NewModelGateway(cfg, logger)
	if err != nil {
		return nil, err
	}
	if closer, ok := gateway.(io.Closer); ok {
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error { return closer.Close() },
		})
	}
	return gateway, nil
}

func ProvideTripService(
	gateway services.ModelGateway,
	geocoder services.GeocoderServiceInterface,
	logger *zap.Logger,
) services.TripServiceInterface {
	return services.NewTripService(gateway, geocoder, logger)
}

func ProvideTripController(tripService services.TripServiceInterface) *controllers.TripController {
	return controllers.NewTripController(tripService)
}
