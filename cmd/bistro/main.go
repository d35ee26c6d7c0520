package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/haqueashraful/bistro-server/internal/app"
	"github.com/haqueashraful/bistro-server/internal/auth"
	"github.com/haqueashraful/bistro-server/internal/bookings"
	"github.com/haqueashraful/bistro-server/internal/carts"
	"github.com/haqueashraful/bistro-server/internal/menu"
	"github.com/haqueashraful/bistro-server/internal/observability"
	"github.com/haqueashraful/bistro-server/internal/payments"
	"github.com/haqueashraful/bistro-server/internal/payments/stripeclient"
	"github.com/haqueashraful/bistro-server/internal/platform/cache"
	"github.com/haqueashraful/bistro-server/internal/platform/db"
	"github.com/haqueashraful/bistro-server/internal/rbac"
	"github.com/haqueashraful/bistro-server/internal/reviews"
	"github.com/haqueashraful/bistro-server/internal/shared"
	"github.com/haqueashraful/bistro-server/internal/stats"
	"github.com/haqueashraful/bistro-server/internal/users"
	"github.com/haqueashraful/bistro-server/jobs"

	"github.com/hibiken/asynq"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if redisClient == nil {
			return
		}
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	cookies := auth.CookieWriter{Name: cfg.CookieName, Secure: cfg.IsProduction()}
	requireAuth := auth.RequireAuth(tokens, cfg.CookieName)
	authHandler := auth.NewHandler(logger, tokens, cookies)

	auditLogger := shared.NewAuditLogger(pool)
	settlementKeys := shared.NewSettlementKeyStore(pool)

	usersRepo := users.NewRepository(pool)
	usersService := users.NewService(usersRepo, auditLogger, logger)

	rbacService := rbac.NewService(usersRepo)
	rbacMiddleware := rbac.Middleware{Service: rbacService, Logger: logger}

	usersHandler := users.NewHandler(logger, usersService, requireAuth, rbacMiddleware)

	menuRepo := menu.NewRepository(pool)
	menuCache := menu.NewCache(redisClient, cfg.MenuCacheTTL)
	menuService := menu.NewService(menuRepo, menuCache, auditLogger, logger)
	menuHandler := menu.NewHandler(logger, menuService, requireAuth, rbacMiddleware)

	reviewsRepo := reviews.NewRepository(pool)
	reviewsHandler := reviews.NewHandler(logger, reviewsRepo, requireAuth)

	cartsRepo := carts.NewRepository(pool)
	cartsHandler := carts.NewHandler(logger, cartsRepo, rbacService, requireAuth)

	bookingsRepo := bookings.NewRepository(pool)
	bookingsHandler := bookings.NewHandler(logger, bookingsRepo, requireAuth, rbacMiddleware)

	jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	stripeClient := stripeclient.New(cfg.StripeSecretKey)
	paymentsRepo := payments.NewRepository(pool)
	paymentsService := payments.NewService(paymentsRepo, settlementKeys, stripeClient, jobClient, logger)
	paymentsHandler := payments.NewHandler(logger, paymentsService, requireAuth)

	statsRepo := stats.NewRepository(pool)
	statsCache := stats.NewCache(redisClient, cfg.StatsCacheTTL)
	statsService := stats.NewService(statsRepo, statsCache)
	statsHandler := stats.NewHandler(logger, statsService, requireAuth, rbacMiddleware)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		AuthHandler:     authHandler,
		UsersHandler:    usersHandler,
		MenuHandler:     menuHandler,
		ReviewsHandler:  reviewsHandler,
		CartsHandler:    cartsHandler,
		BookingsHandler: bookingsHandler,
		PaymentsHandler: paymentsHandler,
		StatsHandler:    statsHandler,
		Metrics:         metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
