package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aterbruk-backend/internal/auth"
	"aterbruk-backend/internal/cache"
	"aterbruk-backend/internal/config"
	"aterbruk-backend/internal/db"
	"aterbruk-backend/internal/handlers"
	"aterbruk-backend/internal/metrics"
	"aterbruk-backend/internal/middleware"
	"aterbruk-backend/internal/recycle"
	"aterbruk-backend/internal/sanitize"
	"aterbruk-backend/internal/stories"
	"aterbruk-backend/internal/validation"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("mongo connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("mongo connected")
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		logger.Error("index creation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var cacheStore cache.Cache = cache.NewNoop()
	if cfg.RedisURL != "" || cfg.RedisAddr != "" {
		var redisCache *cache.RedisCache
		var err error
		if cfg.RedisURL != "" {
			redisCache, err = cache.NewRedisFromURL(cfg.RedisURL)
		} else {
			redisCache = cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		}
		if err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := redisCache.Ping(ctx); err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("redis connected")
		cacheStore = redisCache
	}

	var jwtManager *auth.Manager
	if cfg.JWTSecret != "" {
		jwtManager = &auth.Manager{
			Secret:     []byte(cfg.JWTSecret),
			AccessTTL:  time.Duration(cfg.AccessTTLMinutes) * time.Minute,
			RefreshTTL: time.Duration(cfg.RefreshTTLMinutes) * time.Minute,
			Issuer:     "aterbruk-backend",
		}
	}

	val := validation.New()
	sanitizer := sanitize.New()
	collector := metrics.NewCollector()
	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second

	server := &handlers.Server{
		Cfg:  cfg,
		Cols: cols,
		Val:  val,
		Auth: jwtManager,
		Log:  logger,
	}

	recycleRepo := recycle.NewRepository(cols.Recycle)
	recycleService := recycle.NewService(recycleRepo, sanitizer, collector, cfg.Timezone)
	recycleHandler := recycle.NewHandler(recycleService, val, cacheStore, cacheTTL, logger)

	storiesRepo := stories.NewRepository(cols.Stories)
	storiesService := stories.NewService(storiesRepo, sanitizer, collector, cfg.Timezone)
	storiesHandler := stories.NewHandler(storiesService, val, cacheStore, cacheTTL, logger)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics(collector))
	r.Use(middleware.CORS(cfg.FrontendOrigins))
	r.Use(chiMiddleware.Timeout(30 * time.Second))

	writeLimiter := middleware.NewRateLimiter(cfg.RateLimitWrites, time.Duration(cfg.RateLimitWindowSec)*time.Second)

	r.Handle("/metrics", collector.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(api chi.Router) {
		api.Route("/auth", func(a chi.Router) {
			a.Post("/login", server.Login)
			a.Post("/refresh", server.Refresh)
			a.Post("/logout", server.Logout)
			a.With(writeLimiter.Middleware).Post("/register", server.Register)
		})

		api.Group(func(public chi.Router) {
			public.Use(middleware.Identity(jwtManager))
			public.Get("/recycle", recycleHandler.List)
			public.Get("/recycle/markers", recycleHandler.Markers)
			public.Get("/recycle/{id}", recycleHandler.GetByID)
			public.Get("/stories", storiesHandler.List)
			public.Get("/stories/markers", storiesHandler.Markers)
			public.Get("/stories/{id}", storiesHandler.GetByID)
		})

		api.Group(func(protected chi.Router) {
			protected.Use(middleware.RequireRecycler(jwtManager))
			protected.Use(writeLimiter.Middleware)
			protected.Post("/recycle", recycleHandler.Create)
			protected.Put("/recycle/{id}", recycleHandler.Update)
		})

		api.Group(func(protected chi.Router) {
			protected.Use(middleware.RequireStoryteller(jwtManager))
			protected.Use(writeLimiter.Middleware)
			protected.Post("/stories", storiesHandler.Create)
			protected.Put("/stories/{id}", storiesHandler.Update)
		})

		api.Route("/admin", func(admin chi.Router) {
			admin.Use(middleware.RequireAdmin(cfg.AdminAPIKey, jwtManager))
			admin.Delete("/recycle/{id}", recycleHandler.Delete)
			admin.Delete("/stories/{id}", storiesHandler.Delete)
			admin.Get("/users", server.AdminListUsers)
			admin.Post("/users", server.AdminCreateUser)
			admin.Patch("/users/{id}", server.AdminUpdateUser)
			admin.Delete("/users/{id}", server.AdminDeleteUser)
		})
	})

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: r,
	}

	go func() {
		logger.Info("server started", slog.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
}
