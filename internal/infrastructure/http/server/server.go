// Package server provides the HTTP server wiring the REST API together
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/recetaria/v1/internal/application/ai"
	"github.com/recetaria/v1/internal/application/user"
	"github.com/recetaria/v1/internal/infrastructure/config"
	"github.com/recetaria/v1/internal/infrastructure/http/handlers"
	"github.com/recetaria/v1/internal/infrastructure/http/middleware"
	"github.com/recetaria/v1/internal/infrastructure/security"
	"github.com/recetaria/v1/internal/ports/inbound"
	"github.com/recetaria/v1/pkg/healthcheck"
	"go.uber.org/zap"
)

// Server wraps the chi router and the underlying http.Server
type Server struct {
	config        *config.Config
	logger        *zap.Logger
	router        *chi.Mux
	httpServer    *http.Server
	recipeService inbound.RecipeService
	userService   *user.UserService
	chefService   *ai.ChefService
	authService   *security.AuthService
	health        *healthcheck.HealthCheck
}

// NewServer creates a new HTTP server
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	recipeService inbound.RecipeService,
	userService *user.UserService,
	chefService *ai.ChefService,
	authService *security.AuthService,
	health *healthcheck.HealthCheck,
) *Server {
	s := &Server{
		config:        cfg,
		logger:        logger,
		recipeService: recipeService,
		userService:   userService,
		chefService:   chefService,
		authService:   authService,
		health:        health,
	}

	s.router = s.setupRouter()
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s
}

func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	r.Use(chimiddleware.Timeout(s.config.Server.ReadTimeout))
	r.Use(chimiddleware.Compress(5))

	metrics := middleware.NewMetrics()
	r.Use(metrics.Handler())

	if s.config.RateLimit.Enable {
		r.Use(middleware.RateLimit(
			s.config.RateLimit.RequestsPerMin,
			s.config.RateLimit.BurstSize,
		))
	}

	// Operational endpoints stay outside the API group
	r.Get("/health", s.health.Handler())
	r.Get("/health/live", s.health.LivenessHandler())
	r.Get("/ready", s.health.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		s.setupAuthRoutes(r)
		s.setupRecipeRoutes(r)
		s.setupAIRoutes(r)
	})

	return r
}

func (s *Server) setupAuthRoutes(r chi.Router) {
	h := handlers.NewAuthAPIHandlers(s.userService, s.authService, s.logger)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})
}

func (s *Server) setupRecipeRoutes(r chi.Router) {
	h := handlers.NewRecipeAPIHandlers(s.recipeService, s.logger)

	r.Route("/recipes", func(r chi.Router) {
		r.Use(middleware.Authenticate(s.authService, s.logger, s.config.Server.LoginPath))

		r.Get("/", h.ListRecipes)
		r.Post("/", h.CreateRecipe)
		r.Get("/search", h.SearchRecipes)
		r.Post("/import", h.ImportRecipes)
		r.Get("/{id}", h.GetRecipe)
		r.Put("/{id}", h.UpdateRecipe)
		r.Delete("/{id}", h.DeleteRecipe)
		r.Post("/{id}/portions", h.RescalePortions)
	})
}

func (s *Server) setupAIRoutes(r chi.Router) {
	h := handlers.NewAIAPIHandlers(s.chefService, s.logger)

	r.Route("/ai", func(r chi.Router) {
		r.Use(middleware.Authenticate(s.authService, s.logger, s.config.Server.LoginPath))

		r.Post("/generate", h.GenerateRecipe)
	})
}

// Router exposes the configured router, mainly for tests
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start begins listening for requests
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening",
		zap.String("addr", s.httpServer.Addr),
	)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
