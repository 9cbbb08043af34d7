package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/smartclin/clinic-api/internal/auth"
	"github.com/smartclin/clinic-api/internal/cache"
	"github.com/smartclin/clinic-api/internal/config"
	"github.com/smartclin/clinic-api/internal/database"
	"github.com/smartclin/clinic-api/internal/handlers"
	"github.com/smartclin/clinic-api/internal/middleware"
	"github.com/smartclin/clinic-api/internal/repository"
	"github.com/smartclin/clinic-api/internal/rpc"
	"github.com/smartclin/clinic-api/internal/services"
	"github.com/smartclin/clinic-api/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Initialize logger
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	log.Info().Msg("Starting Clinic API")

	// Connect to database
	db, err := database.Connect(database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
		LogLevel: cfg.Database.LogLevel,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close(db)

	// Initialize session store backend
	var sessionCache cache.Cache
	if cfg.Cache.Enabled && cfg.Cache.Type == "redis" {
		addr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
		sessionCache, err = cache.NewRedisCache(addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		log.Info().Msg("Redis session store initialized")
	} else {
		sessionCache = cache.NewMemoryCache()
		log.Info().Msg("Memory session store initialized")
	}

	sessionStore := auth.NewSessionStore(sessionCache, cfg.Auth.SessionTTL)
	resolver := auth.NewResolver(sessionStore, cfg.Auth.JWTSecret)

	// Initialize repositories
	patientRepo := repository.NewPatientRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	immunizationRepo := repository.NewImmunizationRepository(db)
	noteRepo := repository.NewClinicalNoteRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	budgetRepo := repository.NewBudgetRepository(db)

	// Initialize services
	patientService := services.NewPatientService(patientRepo, noteRepo)
	appointmentService := services.NewAppointmentService(appointmentRepo)
	immunizationService := services.NewImmunizationService(immunizationRepo)
	noteService := services.NewClinicalNoteService(noteRepo)
	expenseService := services.NewExpenseService(expenseRepo)
	budgetService := services.NewBudgetService(budgetRepo)

	// Register procedures
	registry := rpc.NewRegistry()
	healthHandler := handlers.NewHealthHandler(db, sessionCache)
	healthHandler.Register(registry)
	handlers.NewPatientHandler(patientService).Register(registry)
	handlers.NewAppointmentHandler(appointmentService).Register(registry)
	handlers.NewImmunizationHandler(immunizationService).Register(registry)
	handlers.NewClinicalNoteHandler(noteService).Register(registry)
	handlers.NewExpenseHandler(expenseService).Register(registry)
	handlers.NewBudgetHandler(budgetService).Register(registry)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Compress(5))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   []string{"Content-Length", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health endpoints (no authentication required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	// RPC mount: every procedure is a POST to its dotted name. The session
	// middleware only attaches the caller; each procedure's tier decides
	// who gets through.
	r.Route("/api/rpc", func(r chi.Router) {
		r.Use(httprate.LimitByIP(cfg.RateLimit.RequestsPerMinute, time.Minute))
		r.Use(middleware.Session(resolver))
		r.Post("/{procedure}", registry.ServeHTTP)
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
