package config_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripplanner/internal/infra"
)

var Module = fx.Provide(
	provideConfig, provideLogger,
	func(cfg *infra.Config) infra.ServerConfig { return cfg.Server },
	func(cfg *infra.Config) infra.ModelConfig { return cfg.Model },
	func(cfg *infra.Config) infra.GeocoderConfig { return cfg.Geocoder },
	func(cfg *infra.Config) infra.AuthConfig { return cfg.Auth },
)

func provideConfig() (*infra.Config, error) {
	return infra.LoadConfig("")
}

func provideLogger(cfg *infra.Config) (*zap.Logger, error) {
	return infra.InitLogger(cfg.Logging)
}
