package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/sofianedj/boardhub/internal/auth"
	"github.com/sofianedj/boardhub/internal/authz"
	"github.com/sofianedj/boardhub/internal/config"
	"github.com/sofianedj/boardhub/internal/http/handlers"
	"github.com/sofianedj/boardhub/internal/http/middlewares"
	"github.com/sofianedj/boardhub/internal/observability"
	"github.com/sofianedj/boardhub/internal/queue/redisclient"
	"github.com/sofianedj/boardhub/internal/repo/postgres"
)

func NewRouter(
	cfg config.Config,
	log *slog.Logger,
	pool *pgxpool.Pool,
	queue *redisclient.Client,
	prom *observability.Prom,
	reg *prometheus.Registry,
) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("boardhub"))
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(cfg.MaxBodyBytes))
	r.Use(middlewares.RequireJSON())

	if prom != nil {
		r.Use(prom.GinHandleMiddleware())
	}

	// uniform envelope for unmatched routes
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "not_found",
				"message": "Route not found",
			},
		})
	})

	// health

	pingDB := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	pingQueue := func() error {
		if queue == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return queue.Ping(ctx)
	}

	health := handlers.NewHealthHandler(pingDB, pingQueue)
	r.GET("/healthz", health.Healthz)
	r.GET("/readyz", health.Readyz)

	if reg != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	// wire repositories
	usersRepo := postgres.NewUsersRepo(pool, prom)
	boardsRepo := postgres.NewBoardsRepo(pool, prom)
	invitationsRepo := postgres.NewInvitationsRepo(pool, prom)

	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL)

	authMw := middlewares.NewAuthMiddleware(jwtManager, usersRepo)
	ownership := middlewares.NewBoardOwnership(boardsRepo, authz.NewPolicy())

	authLimiter := middlewares.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow)
	apiLimiter := middlewares.NewRateLimiter(cfg.APIRateLimit, cfg.APIRateWindow)

	// handlers
	authHandler := handlers.NewAuthHandler(usersRepo, usersRepo, jwtManager, cfg)
	boardsHandler := handlers.NewBoardsHandler(boardsRepo)
	usersHandler := handlers.NewUsersHandler(usersRepo)

	var enqueuer handlers.JobEnqueuer
	if queue != nil {
		enqueuer = queue
	}
	invitationsHandler := handlers.NewInvitationsHandler(invitationsRepo, enqueuer, log)

	// public routes, IP-limited
	r.POST("/register", authLimiter.Middleware(middlewares.KeyByIP), authHandler.Register)
	r.POST("/login", authLimiter.Middleware(middlewares.KeyByIP), authHandler.Login)

	// everything below requires identity
	protected := r.Group("/", authMw.RequireAuth(), apiLimiter.Middleware(middlewares.KeyByUserOrIP))

	protected.POST("/logout", authHandler.Logout)
	protected.GET("/me", authHandler.Me)

	tables := protected.Group("/api/tables")
	tables.GET("", boardsHandler.List)
	tables.POST("", boardsHandler.Create)
	tables.GET("/:id", ownership.RequireOwner(authz.ActionRead), boardsHandler.Get)
	tables.PUT("/:id", ownership.RequireOwner(authz.ActionUpdate), boardsHandler.Update)
	tables.DELETE("/:id", ownership.RequireOwner(authz.ActionDelete), boardsHandler.Delete)

	protected.GET("/api/users/search", usersHandler.Search)

	protected.POST("/invitations", invitationsHandler.Create)
	protected.GET("/invitations", invitationsHandler.List)
	protected.PUT("/invitations/:id", invitationsHandler.Respond)

	return r
}
