package account_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripplanner/internal/infra"
	"tripplanner/internal/repositories"
	"tripplanner/internal/services"
	"tripplanner/pkg/utils"
)

var Module = fx.Provide(
	provideAccountService, provideAccountRepo, provideJWTManager)

func provideAccountRepo() repositories.AccountRepository {
	return repositories.NewAccountRepository()
}

func provideJWTManager(cfg infra.AuthConfig, logger *zap.Logger) *utils.JWTManager {
	if cfg.JWTSecret == infra.DefaultJWTSecret {
		logger.Warn("JWT_SECRET not set, using the development secret")
	}
	return utils.NewJWTManager(cfg.JWTSecret, cfg.TokenTTLDuration())
}

func provideAccountService(accountRepo repositories.AccountRepository, tokens *utils.JWTManager, logger *zap.Logger) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, tokens, logger)
}
