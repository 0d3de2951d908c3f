// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lunara/wellness/internal/application/diary"
	"github.com/lunara/wellness/internal/application/generation"
	"github.com/lunara/wellness/internal/application/knowledge"
	planapp "github.com/lunara/wellness/internal/application/plan"
	"github.com/lunara/wellness/internal/application/questionnaire"
	"github.com/lunara/wellness/internal/application/recipe"
	"github.com/lunara/wellness/internal/infrastructure/ai/openai"
	"github.com/lunara/wellness/internal/infrastructure/cache"
	"github.com/lunara/wellness/internal/infrastructure/config"
	"github.com/lunara/wellness/internal/infrastructure/http/apiserver"
	"github.com/lunara/wellness/internal/infrastructure/persistence"
	gormRepo "github.com/lunara/wellness/internal/infrastructure/persistence/gorm"
	"github.com/lunara/wellness/internal/infrastructure/security"
	"github.com/lunara/wellness/internal/ports/outbound"
	"github.com/lunara/wellness/pkg/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	RepositoryModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
	func(log *zap.Logger) *zap.SugaredLogger {
		return log.Sugar()
	},
)

// DatabaseModule provides the GORM database connection
var DatabaseModule = fx.Provide(
	persistence.Connect,
)

// CacheModule provides the Redis-backed cache
var CacheModule = fx.Provide(
	fx.Annotate(
		cache.NewRedisCache,
		fx.As(new(outbound.CacheRepository)),
	),
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormRepo.NewRecipeRepository,
	gormRepo.NewUserRecipeRepository,
	gormRepo.NewQuestionnaireRepository,
	gormRepo.NewFavoriteRepository,
	gormRepo.NewPlanRepository,
	gormRepo.NewDiaryRepository,
	gormRepo.NewArticleRepository,
)

// ServiceModule provides application services and outbound adapters
var ServiceModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) outbound.AIService {
		return openai.NewClient(cfg.AI, log)
	},
	security.NewAuthService,
	generation.NewGenerationService,
	recipe.NewRecipeService,
	questionnaire.NewQuestionnaireService,
	planapp.NewPlanService,
	diary.NewDiaryService,
	knowledge.NewKnowledgeService,
)

// HTTPModule provides the HTTP server
var HTTPModule = fx.Provide(
	apiserver.NewAPIServer,
)

// LifecycleModule registers start and stop hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks wires the HTTP server and database into the
// application lifecycle
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	server *apiserver.APIServer,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting application",
				zap.String("name", cfg.App.Name),
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			go func() {
				if err := server.Start(); err != nil && err != http.ErrServerClosed {
					log.Fatal("Failed to start HTTP server", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down application")

			if err := server.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			sqlDB, err := db.DB()
			if err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}

			_ = log.Sync()

			return nil
		},
	})
}
