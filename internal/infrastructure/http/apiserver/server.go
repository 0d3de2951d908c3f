// Package apiserver provides the JSON API HTTP server
package apiserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lunara/wellness/internal/infrastructure/config"
	"github.com/lunara/wellness/internal/infrastructure/http/handlers"
	"github.com/lunara/wellness/internal/infrastructure/http/middleware"
	"github.com/lunara/wellness/internal/infrastructure/security"
	"github.com/lunara/wellness/internal/ports/inbound"
)

// APIServer represents the JSON API HTTP server
type APIServer struct {
	config      *config.Config
	logger      *zap.Logger
	server      *http.Server
	router      *chi.Mux
	authService *security.AuthService

	recipeH        *handlers.RecipeHandlers
	questionnaireH *handlers.QuestionnaireHandlers
	planH          *handlers.PlanHandlers
	diaryH         *handlers.DiaryHandlers
	knowledgeH     *handlers.KnowledgeHandlers
}

// NewAPIServer creates a new API server instance
func NewAPIServer(
	cfg *config.Config,
	log *zap.Logger,
	authService *security.AuthService,
	recipeService inbound.RecipeService,
	generationService inbound.GenerationService,
	questionnaireService inbound.QuestionnaireService,
	planService inbound.PlanService,
	diaryService inbound.DiaryService,
	knowledgeService inbound.KnowledgeService,
) *APIServer {
	server := &APIServer{
		config:         cfg,
		logger:         log,
		authService:    authService,
		recipeH:        handlers.NewRecipeHandlers(recipeService, generationService, questionnaireService, log),
		questionnaireH: handlers.NewQuestionnaireHandlers(questionnaireService, log),
		planH:          handlers.NewPlanHandlers(planService, log),
		diaryH:         handlers.NewDiaryHandlers(diaryService, log),
		knowledgeH:     handlers.NewKnowledgeHandlers(knowledgeService, log),
	}

	server.router = server.setupRoutes()
	server.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      server.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return server
}

// setupRoutes configures the JSON API routes
func (s *APIServer) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	r.Use(middleware.CORS(s.config.Server.AllowedOrigins))

	// API-specific middleware
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.JSONOnly())

	if s.config.Monitoring.EnableMetrics {
		r.Use(middleware.Metrics())
		r.Get("/metrics", promhttp.Handler().ServeHTTP)
	}

	r.Get("/health", s.handleHealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		s.setupAPIV1Routes(r)
	})

	return r
}

// setupAPIV1Routes configures API v1 endpoints
func (s *APIServer) setupAPIV1Routes(r chi.Router) {
	// Public article library
	r.Route("/articles", func(r chi.Router) {
		r.Get("/", s.knowledgeH.List)
		r.Get("/{id}", s.knowledgeH.Get)
	})

	// Recipe routes
	r.Route("/recipes", func(r chi.Router) {
		// Public routes
		r.Get("/{id}", s.recipeH.GetRecipe)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(s.authService))
			r.Get("/personalized", s.recipeH.ListPersonalized)
			r.Post("/", s.recipeH.CreateRecipe)
			r.Put("/{id}", s.recipeH.UpdateRecipe)
			r.Delete("/{id}", s.recipeH.DeleteRecipe)
			r.Post("/{id}/favorite", s.recipeH.ToggleFavorite)
			r.Post("/top-up", s.recipeH.TopUp)
		})
	})

	// Favorite routes
	r.Route("/favorites", func(r chi.Router) {
		r.Use(middleware.Authenticate(s.authService))
		r.Get("/", s.recipeH.ListFavorites)
	})

	// Questionnaire routes
	r.Route("/questionnaire", func(r chi.Router) {
		r.Use(middleware.Authenticate(s.authService))
		r.Get("/", s.questionnaireH.Get)
		r.Put("/", s.questionnaireH.Save)
	})

	// Weekly plan routes
	r.Route("/plans", func(r chi.Router) {
		r.Use(middleware.Authenticate(s.authService))
		r.Get("/current", s.planH.GetCurrent)
		r.Post("/generate", s.planH.Generate)
		r.Get("/current/shopping-list", s.planH.ShoppingList)
	})

	// Diary routes
	r.Route("/diary", func(r chi.Router) {
		r.Use(middleware.Authenticate(s.authService))
		r.Get("/", s.diaryH.List)
		r.Post("/", s.diaryH.Create)
		r.Put("/{id}", s.diaryH.Update)
		r.Delete("/{id}", s.diaryH.Delete)
		r.Get("/insights", s.diaryH.Insights)
	})
}

// Start starts the API HTTP server
func (s *APIServer) Start() error {
	s.logger.Info("Starting JSON API server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)

	return s.server.ListenAndServe()
}

// Server returns the underlying HTTP server instance
func (s *APIServer) Server() *http.Server {
	return s.server
}

// Shutdown gracefully shuts down the API server
func (s *APIServer) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server...")
	return s.server.Shutdown(ctx)
}

// handleHealthCheck provides the health check endpoint
func (s *APIServer) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	fmt.Fprintf(w, `{"status":"healthy","service":"%s","version":"%s","timestamp":%d}`,
		s.config.App.Name, s.config.App.Version, time.Now().Unix())
}
