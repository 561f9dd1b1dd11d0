package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"statuscheck-backend/internal/config"
	"statuscheck-backend/internal/handlers"
	"statuscheck-backend/internal/middleware"
	"statuscheck-backend/internal/repository"
	"statuscheck-backend/internal/services"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Run() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	// Connect to database
	db, err := repository.New(context.Background(), cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Database connection established")

	// Initialize repositories
	profileRepo := repository.NewProfileRepository(db)
	circleRepo := repository.NewCircleRepository(db)
	journalRepo := repository.NewJournalRepository(db)
	suggestionRepo := repository.NewSuggestionRepository(db)

	// Initialize services
	hub := services.NewHub()
	authService := services.NewAuthService(profileRepo, hub, cfg.JWT.Secret)
	profileService := services.NewProfileService(profileRepo, hub)
	circleService := services.NewCircleService(circleRepo, profileRepo, hub)
	journalService := services.NewJournalService(journalRepo, hub)
	quoteService := services.NewQuoteService(&services.MockGenerator{Delay: 300 * time.Millisecond}, profileRepo, journalRepo)
	suggestionService := services.NewSuggestionService(suggestionRepo)

	var pusher services.Pusher
	if cfg.APNS.CertPath != "" {
		apnsPusher, err := services.NewAPNSPusher(cfg.APNS.CertPath, cfg.APNS.CertPassword, cfg.APNS.Topic, cfg.APNS.Production)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create APNs pusher")
		}
		pusher = apnsPusher
	} else {
		log.Warn().Msg("APNs not configured, alert push delivery disabled")
	}
	alertService := services.NewAlertService(circleRepo, profileRepo, hub, pusher)

	avatarService, err := services.NewAvatarService(
		profileRepo,
		cfg.AWS.Region,
		cfg.AWS.S3Bucket,
		cfg.AWS.AccessKey,
		cfg.AWS.SecretKey,
		cfg.AWS.Endpoint,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create avatar service")
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, profileService)
	profileHandler := handlers.NewProfileHandler(profileService, avatarService)
	circleHandler := handlers.NewCircleHandler(circleService)
	journalHandler := handlers.NewJournalHandler(journalService, quoteService)
	alertHandler := handlers.NewAlertHandler(alertService)
	suggestionHandler := handlers.NewSuggestionHandler(suggestionService)
	wsHandler := handlers.NewWebSocketHandler(hub, authService, profileService)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(corsMiddleware)

	// Routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/auth/signup", authHandler.SignUp)
		r.Post("/auth/signin", authHandler.SignIn)
		r.Get("/username-check", authHandler.CheckUsername)
		r.Get("/quote", journalHandler.Quote)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(authService))
			r.Post("/auth/signout", authHandler.SignOut)
			r.Get("/profile", profileHandler.Get)
			r.Patch("/profile", profileHandler.Update)
			r.Post("/profile/push-token", profileHandler.SetPushToken)
			r.Post("/profile/avatar", profileHandler.PresignAvatar)
			r.Post("/profile/avatar/confirm", profileHandler.ConfirmAvatar)
			r.Get("/circle", circleHandler.Members)
			r.Post("/circle", circleHandler.AddMember)
			r.Delete("/circle/{member_id}", circleHandler.RemoveMember)
			r.Get("/journal", journalHandler.List)
			r.Post("/journal", journalHandler.Append)
			r.Get("/journal/insight", journalHandler.Insight)
			r.Post("/alerts", alertHandler.Send)
			r.Get("/suggestions", suggestionHandler.List)
			r.Post("/suggestions", suggestionHandler.Submit)
		})
	})

	// WebSocket route
	r.Get("/ws", wsHandler.HandleWebSocket)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
