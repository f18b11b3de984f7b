package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"riderquiz/cmd/fx/config_fx"
	"riderquiz/cmd/fx/controllers_fx"
	"riderquiz/cmd/fx/generation_fx"
	"riderquiz/cmd/fx/logger_fx"
	"riderquiz/cmd/fx/memcache_fx"
	"riderquiz/cmd/fx/metrics_fx"
	"riderquiz/cmd/fx/quiz_fx"
	"riderquiz/internal/api/controllers"
	"riderquiz/internal/config"
	"riderquiz/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		logger_fx.Module,
		metrics_fx.Module,
		memcache_fx.Module,
		generation_fx.Module,
		quiz_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			logger.Info("starting HTTP server", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	cfg *config.Config,
	logger *zap.Logger,
	registry *prometheus.Registry,
	quizController *controllers.QuizController) *gin.Engine {

	gin.SetMode(cfg.GinMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	RegisterRoutes(r, quizController, middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
		Burst:             cfg.RateLimit.Burst,
	}))

	return r
}

func RegisterRoutes(r *gin.Engine,
	quizController *controllers.QuizController,
	generationLimit gin.HandlerFunc) {

	quizGroup := r.Group("/quiz")
	quizGroup.GET("/questions", quizController.ListQuestionsHandler)
	quizGroup.GET("/rider-types", quizController.ListRiderTypesHandler)

	sessions := quizGroup.Group("/sessions")
	sessions.POST("", quizController.StartSessionHandler)
	sessions.GET("/:id", quizController.GetSessionHandler)
	sessions.DELETE("/:id", quizController.DeleteSessionHandler)
	sessions.POST("/:id/answers", quizController.SubmitAnswerHandler)
	sessions.POST("/:id/report", generationLimit, quizController.GenerateReportHandler)
	sessions.POST("/:id/chat", generationLimit, quizController.ChatHandler)
	sessions.GET("/:id/chat", quizController.ChatHistoryHandler)
	sessions.POST("/:id/restart", quizController.RestartSessionHandler)
}
