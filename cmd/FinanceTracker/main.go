package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	database "github.com/sebuszqo/FinanceTracker/db"
	"github.com/sebuszqo/FinanceTracker/internal/auth"
	"github.com/sebuszqo/FinanceTracker/internal/config"
	"github.com/sebuszqo/FinanceTracker/internal/finance/application"
	"github.com/sebuszqo/FinanceTracker/internal/finance/infrastructure"
	"github.com/sebuszqo/FinanceTracker/internal/finance/interfaces"
	"github.com/sebuszqo/FinanceTracker/internal/logger"
	"github.com/sebuszqo/FinanceTracker/internal/metrics"
	"github.com/sebuszqo/FinanceTracker/internal/user"
	"github.com/sebuszqo/FinanceTracker/internal/validation"
)

const shutdownTimeout = 15 * time.Second

type Response struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string, errors ...[]string) {
	payload := map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	}

	if len(errors) > 0 && len(errors[0]) > 0 {
		payload["errors"] = errors[0]
	}

	respondJSON(w, status, payload)
}

type Server struct {
	router             chi.Router
	logger             *zap.Logger
	metrics            *metrics.Recorder
	dbService          *database.DBService
	authHandler        *auth.Handler
	authService        auth.Service
	userHandler        *user.Handler
	categoryHandler    *interfaces.CategoryHandler
	transactionHandler *interfaces.TransactionHandler
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusNotFound, Response{Message: "Path not found"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), time.Second)
	defer cancel()

	stats := s.dbService.Health(ctx)
	status := http.StatusOK
	if stats["status"] != "up" {
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, status, stats)
}

func (s *Server) RegisterRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(logger.RequestLogger(s.logger))
	r.Use(s.metrics.Middleware)
	r.NotFound(notFoundHandler)

	// Public routes
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	r.Post("/v1/identity/register", s.userHandler.HandleRegister)
	r.Post("/v1/identity/login", s.authHandler.HandleLogin)

	// Refresh token routes
	r.Group(func(r chi.Router) {
		r.Use(s.authService.JWTRefreshTokenMiddleware())
		r.Put("/v1/identity/refresh", s.authHandler.RefreshAccessToken)
	})

	// Protected routes (using JWT Access Token Middleware)
	r.Group(func(r chi.Router) {
		r.Use(s.authService.JWTAccessTokenMiddleware())

		r.Post("/logout", s.authHandler.HandleLogout)
		r.Get("/v1/identity/profile", s.userHandler.HandleGetUserProfile)
		r.Post("/v1/identity/2fa/register", s.authHandler.HandleRegisterTwoFactor)
		r.Post("/v1/identity/2fa/verify", s.authHandler.HandleVerifyTwoFactorCode)

		r.Route("/v1/categories", func(r chi.Router) {
			r.Get("/", s.categoryHandler.GetCategories)
			r.Post("/", s.categoryHandler.CreateCategory)
			r.Get("/{id}", s.categoryHandler.GetCategory)
			r.Put("/{id}", s.categoryHandler.UpdateCategory)
			r.Delete("/{id}", s.categoryHandler.DeleteCategory)
		})

		r.Route("/v1/transactions", func(r chi.Router) {
			r.Get("/", s.transactionHandler.GetTransactionsByPeriod)
			r.Post("/", s.transactionHandler.CreateTransaction)
			r.Get("/{id}", s.transactionHandler.GetTransaction)
			r.Put("/{id}", s.transactionHandler.UpdateTransaction)
			r.Delete("/{id}", s.transactionHandler.DeleteTransaction)
		})
	})

	s.router = r
}

func main() {
	cfg := config.Load()
	log := logger.NewLogger(cfg.LogLevel)
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("Missing configuration, update to start server", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbService, err := database.NewDBService(ctx, database.Options{
		ConnectionString: cfg.DBConnectionString,
		MaxOpenConns:     cfg.DBMaxOpenConns,
		MaxIdleConns:     cfg.DBMaxIdleConns,
		ConnMaxLifetime:  cfg.DBConnMaxLifetime,
	}, log)
	if err != nil {
		log.Fatal("Could not initialize database", zap.Error(err))
	}
	defer dbService.Close()

	validator := validation.NewValidator()

	userRepo := user.NewUserRepository(dbService.DB)
	twoFactorRepo := auth.NewTwoFactorRepository(dbService.DB)

	sessionManager := auth.NewSessionManager()
	jwtManager := auth.NewJWTManager(cfg.JWTSecret)
	authenticator := &auth.Authenticator{}

	userService := user.NewUserService(userRepo, log.Named("user"))
	userHandler := user.NewHandler(userService, validator, respondJSON, respondError)
	authService := auth.NewAuthService(twoFactorRepo, userService, sessionManager, jwtManager, authenticator, log.Named("auth"))
	authHandler := auth.NewHandler(authService, validator, cfg.CookieSecure, respondJSON, respondError)

	categoryService := application.NewCategoryService(infrastructure.NewCategoryRepository(dbService.DB), log.Named("categories"))
	transactionService := application.NewTransactionService(infrastructure.NewTransactionRepository(dbService.DB), log.Named("transactions"))

	categoryHandler, err := interfaces.NewCategoryHandler(categoryService, validator, respondJSON, respondError)
	if err != nil {
		log.Fatal("Could not create category handler", zap.Error(err))
	}
	transactionHandler, err := interfaces.NewTransactionHandler(transactionService, validator, respondJSON, respondError)
	if err != nil {
		log.Fatal("Could not create transaction handler", zap.Error(err))
	}

	server := &Server{
		logger:             log,
		metrics:            metrics.NewRecorder(),
		dbService:          dbService,
		authHandler:        authHandler,
		authService:        authService,
		userHandler:        userHandler,
		categoryHandler:    categoryHandler,
		transactionHandler: transactionHandler,
	}
	server.RegisterRoutes()

	scheduler := cron.New()
	if _, err := auth.ScheduleSessionCleanup(scheduler, sessionManager, cfg.SessionCleanupSchedule, log); err != nil {
		log.Fatal("Scheduler didn't start, stopping the app", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server starting", zap.String("port", cfg.Port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}
}
