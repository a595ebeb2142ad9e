package main

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"tripplanner/cmd/fx/account_fx"
	"tripplanner/cmd/fx/config_fx"
	"tripplanner/cmd/fx/controllers_fx"
	"tripplanner/cmd/fx/feedback_fx"
	"tripplanner/cmd/fx/geocoder_fx"
	"tripplanner/cmd/fx/memcache_fx"
	"tripplanner/cmd/fx/trip_fx"
	"tripplanner/internal/api/controllers"
	"tripplanner/internal/infra"
	"tripplanner/pkg/middleware"
	"tripplanner/pkg/utils"
)

func main() {
	app := fx.New(
		config_fx.Module,
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Named("fx")}
		}),
		memcache_fx.Module,
		geocoder_fx.Module,
		trip_fx.Module,
		account_fx.Module,
		feedback_fx.Module,
		controllers_fx.Module,

		fx.Invoke(StartServer),
		fx.Provide(ProvideRouter),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg infra.ServerConfig, logger *zap.Logger) {
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			listener, err := net.Listen("tcp", server.Addr)
			if err != nil {
				return err
			}
			go func() {
				logger.Info("starting HTTP server", zap.String("addr", server.Addr))
				if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping HTTP server")
			return server.Shutdown(ctx)
		},
	})
}

type RouterParams struct {
	fx.In

	Server   infra.ServerConfig
	Logger   *zap.Logger
	Tokens   *utils.JWTManager
	Trip     *controllers.TripController
	Account  *controllers.AccountController
	Feedback *controllers.FeedbackController
	Places   *controllers.PlacesController
}

func ProvideRouter(p RouterParams) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(p.Logger.Named("http")))
	r.Use(middleware.CORSMiddleware(p.Server.AllowedOrigins))

	RegisterRoutes(r, p)

	return r
}

func RegisterRoutes(r *gin.Engine, p RouterParams) {
	api := r.Group("/api")
	api.POST("/generate-trip", p.Trip.GenerateTripHandler)
	api.GET("/places/suggest", p.Places.SuggestPlacesHandler)
	api.POST("/help/feedback", p.Feedback.SubmitFeedback)

	authGroup := api.Group("/auth")
	authGroup.POST("/signup", p.Account.Register)
	authGroup.POST("/login", p.Account.Login)

	api.GET("/profile", middleware.JWTAuthMiddleware(p.Tokens), p.Account.Profile)

	r.GET("/healthz", func(c *gin.Context) {
		utils.RespondSuccess(c, gin.H{"status": "ok"}, "")
	})
}
