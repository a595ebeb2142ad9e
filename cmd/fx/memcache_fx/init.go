package memcache_fx

import (
	"go.uber.org/fx"

	"tripplanner/internal/infra"
	"tripplanner/internal/services"
)

var Module = fx.Provide(provideSuggestionCache)

func provideSuggestionCache(cfg infra.GeocoderConfig) services.SuggestionCache {
	return services.NewSuggestionCache(cfg)
}
