package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/studiora/studiora-api/internal/config"
	"github.com/studiora/studiora-api/internal/domain/admin"
	"github.com/studiora/studiora-api/internal/domain/auth"
	"github.com/studiora/studiora-api/internal/domain/booking"
	"github.com/studiora/studiora-api/internal/domain/favorite"
	"github.com/studiora/studiora-api/internal/domain/notification"
	"github.com/studiora/studiora-api/internal/domain/payment"
	"github.com/studiora/studiora-api/internal/domain/studio"
	"github.com/studiora/studiora-api/internal/domain/user"
	"github.com/studiora/studiora-api/internal/middleware"
	"github.com/studiora/studiora-api/internal/pkg/database"
	"github.com/studiora/studiora-api/internal/pkg/imaging"
	"github.com/studiora/studiora-api/internal/pkg/jwt"
	pkgresponse "github.com/studiora/studiora-api/internal/pkg/response"
	"github.com/studiora/studiora-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting Studiora API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	mediaStore, err := storage.New(storage.Config{
		Backend:     cfg.StorageBackend,
		S3Region:    cfg.S3Region,
		S3Endpoint:  cfg.S3Endpoint,
		S3AccessKey: cfg.S3AccessKey,
		S3SecretKey: cfg.S3SecretKey,
		S3Bucket:    cfg.S3Bucket,
		LocalPath:   cfg.LocalMediaPath,
		BaseURL:     cfg.MediaBaseURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create media storage")
	}

	imageProcessor := imaging.NewProcessor(imaging.DefaultConfig())

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	studioRepo := studio.NewRepository(db)
	bookingRepo := booking.NewRepository(db)
	favoriteRepo := favorite.NewRepository(db)
	securityRepo := admin.NewSecurityRepository(db)
	settingsRepo := admin.NewSettingsRepository(db)

	// ---------- WebSocket hub ----------
	hub := notification.NewHub()

	// ---------- Services ----------
	authService := auth.NewService(userRepo, jwtService, redis, securityRepo)
	studioService := studio.NewService(studioRepo, mediaStore, imageProcessor)
	bookingService := booking.NewService(bookingRepo, studioRepo, redis, hub, booking.Config{
		FailClosed: cfg.AvailabilityFailClosed,
		CacheTTL:   cfg.AvailabilityCacheTTL,
	})
	favoriteService := favorite.NewService(favoriteRepo, studioRepo)
	paymentService := payment.NewService(bookingService, cfg.CheckoutWebhookSecret)
	adminService := admin.NewService(userRepo, bookingRepo, studioRepo, securityRepo, settingsRepo)

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService)
	studioHandler := studio.NewHandler(studioService)
	bookingHandler := booking.NewHandler(bookingService)
	favoriteHandler := favorite.NewHandler(favoriteService)
	paymentHandler := payment.NewHandler(paymentService)
	adminHandler := admin.NewHandler(adminService)
	wsHandler := notification.NewHandler(hub, jwtService)

	authMiddleware := middleware.Auth(jwtService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	// WebSocket endpoint (before Compress)
	r.Get("/ws", wsHandler.Serve)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chimw.Compress(5))

		r.Mount("/auth", authHandler.Routes(authMiddleware))
		r.Mount("/studios", studioHandler.Routes(authMiddleware))
		r.Get("/studios/{id}/availability", bookingHandler.Availability)
		r.Mount("/bookings", bookingHandler.Routes(authMiddleware))
		r.Mount("/favorites", favoriteHandler.Routes(authMiddleware))
		r.Mount("/admin", adminHandler.Routes(authMiddleware))
	})

	r.Mount("/webhooks", paymentHandler.Routes())

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}
}
