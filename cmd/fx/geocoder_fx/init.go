package geocoder_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripplanner/internal/infra"
	"tripplanner/internal/services"
)

var Module = fx.Provide(provideGeocoder)

func provideGeocoder(cfg infra.GeocoderConfig, cache services.SuggestionCache, logger *zap.Logger) services.GeocoderServiceInterface {
	return services.NewNominatimGeocoder(cfg, cache, logger)
}
