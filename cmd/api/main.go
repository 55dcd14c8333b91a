package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/georgemunganga/tg-shop/internal/config"
	"github.com/georgemunganga/tg-shop/internal/database"
	"github.com/georgemunganga/tg-shop/internal/modules/auth"
	"github.com/georgemunganga/tg-shop/internal/modules/cart"
	"github.com/georgemunganga/tg-shop/internal/modules/catalog"
	"github.com/georgemunganga/tg-shop/internal/modules/notify"
	"github.com/georgemunganga/tg-shop/internal/modules/order"
	"github.com/georgemunganga/tg-shop/internal/modules/settings"
	"github.com/georgemunganga/tg-shop/pkg/idempotency"
	"github.com/georgemunganga/tg-shop/pkg/logging"
	"github.com/georgemunganga/tg-shop/pkg/ratelimit"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := database.Migrate(ctx, db); err != nil {
		return err
	}
	logger.Info("connected to the database", "driver", cfg.DBDriver)

	idem, closeIdem, err := idempotencyStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeIdem()

	sender := notify.NewTelegramSender(cfg.TelegramAPIURL, cfg.BotToken, 10*time.Second)

	authService := auth.NewService(auth.Options{
		BotToken:          cfg.BotToken,
		JWTSecret:         cfg.JWTSecret,
		AdminChatID:       cfg.AdminChatID,
		AdminPasswordHash: cfg.AdminPasswordHash,
		InitDataMaxAge:    cfg.InitDataMaxAge,
	})

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(auth.Authenticate(authService))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	})

	auth.NewHandler(authService).RegisterRoutes(router)

	// ── Shop ────────────────────────────────────────────────
	settingsService := settings.NewService(settings.NewPostgresRepository(db))
	settings.NewHandler(settingsService).RegisterRoutes(router)

	catalogService := catalog.NewService(catalog.NewPostgresRepository(db))
	catalog.NewHandler(catalogService).RegisterRoutes(router)

	cartService := cart.NewService(catalogService)
	cart.NewHandler(cartService).RegisterRoutes(router)

	// ── Orders & notifications ──────────────────────────────
	var operatorChat notify.ChatID
	if cfg.AdminChatID != 0 {
		operatorChat = notify.UserChat(cfg.AdminChatID)
	}
	orderService := order.NewService(order.Deps{
		Repo:         order.NewPostgresRepository(db),
		Carts:        cartService,
		Products:     catalogService,
		Settings:     settingsService,
		Sender:       sender,
		Idempotency:  idem,
		Formatter:    order.NewFormatter(cfg.Location()),
		OperatorChat: operatorChat,
		Log:          logger.With("module", "order"),
	})
	order.NewHandler(orderService).RegisterRoutes(router)

	limiter := ratelimit.New(cfg.NotifyRateLimit, cfg.NotifyRateLimit)
	notify.NewHandler(sender, logger.With("module", "notify")).
		RegisterRoutes(router, limiter.Middleware, auth.RequireAdmin)

	// ── Start Server ─────────────────────────────────────────
	server := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: cors.New(cors.Options{
			AllowedOrigins:   cfg.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", "Authorization", auth.LanguageHeader, idempotency.Header},
			AllowCredentials: true,
		}).Handler(router),
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("shop API server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutdown signal received, shutting down gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// idempotencyStore uses Redis when REDIS_URL is set and an in-process cache otherwise.
func idempotencyStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (idempotency.Store, func(), error) {
	if cfg.RedisURL == "" {
		logger.Info("REDIS_URL not set, idempotency keys kept in memory")
		return idempotency.NewMemoryStore(10000, cfg.IdempotencyTTL), func() {}, nil
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, nil, err
	}
	return idempotency.NewRedisStore(rdb, cfg.IdempotencyTTL), func() { rdb.Close() }, nil
}
