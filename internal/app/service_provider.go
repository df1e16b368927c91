package app

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	recipeAPI "yaminabe_backend/internal/api/recipe"
	slotAPI "yaminabe_backend/internal/api/slot"
	"yaminabe_backend/internal/client"
	"yaminabe_backend/internal/client/gemini"
	"yaminabe_backend/internal/client/image"
	"yaminabe_backend/internal/config"
	"yaminabe_backend/internal/config/env"
	"yaminabe_backend/internal/logger"
	"yaminabe_backend/internal/middleware"
	"yaminabe_backend/internal/repository"
	"yaminabe_backend/internal/repository/recipe_lite_repo"
	"yaminabe_backend/internal/repository/recipe_repo"
	"yaminabe_backend/internal/repository/slot_stats_repo"
	"yaminabe_backend/internal/service"
	"yaminabe_backend/internal/service/recipe"
	"yaminabe_backend/internal/service/slot"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	trmsql "github.com/avito-tech/go-transaction-manager/drivers/sql/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const slotConfigPath = "config.yaml"

type ServiceProvider struct {
	// Logger
	loggerCfg config.LoggerConfig
	logger    *zap.Logger

	//TXManager
	txManager trm.Manager

	// Database: Postgres или SQLite, в зависимости от STORAGE_DRIVER
	storageCfg config.StorageConfig
	pgClient   *pgxpool.Pool
	liteClient *sql.DB

	// Recipe bits
	geminiCfg  config.GeminiConfig
	imageCfg   config.ImageConfig
	textGen    client.TextGenerator
	imageGen   client.ImageGenerator
	recipeRepo repository.RecipeRepository
	recipeServ service.RecipeService
	recipeHand *recipeAPI.Handler

	// Slot bits
	slotCfg       config.SlotConfig
	tokenCfg      config.ThemeTokenConfig
	slotStatsRepo repository.SlotStatsRepository
	slotServ      service.SlotService
	slotHand      *slotAPI.Handler

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) LoggerCfg() config.LoggerConfig {
	if sp.loggerCfg == nil {
		cfg, err := env.NewLoggerConfig()
		if err != nil {
			panic("failed to get logger config: " + err.Error())
		}
		sp.loggerCfg = cfg
	}
	return sp.loggerCfg
}

func (sp *ServiceProvider) Logger() *zap.Logger {
	if sp.logger == nil {
		l, err := logger.New(sp.LoggerCfg().Level(), sp.LoggerCfg().Production())
		if err != nil {
			panic("failed to create logger: " + err.Error())
		}
		sp.logger = l
	}
	return sp.logger
}

func (sp *ServiceProvider) StorageCfg() config.StorageConfig {
	if sp.storageCfg == nil {
		cfg, err := env.NewStorageConfig()
		if err != nil {
			panic("failed to get storage config: " + err.Error())
		}
		sp.storageCfg = cfg
	}
	return sp.storageCfg
}

func (sp *ServiceProvider) PGClient(ctx context.Context) *pgxpool.Pool {
	if sp.pgClient == nil {
		dbc, err := pgxpool.New(ctx, sp.StorageCfg().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.pgClient = dbc
	}
	return sp.pgClient
}

func (sp *ServiceProvider) LiteClient() *sql.DB {
	if sp.liteClient == nil {
		db, err := recipe_lite_repo.Open(sp.StorageCfg().DSN())
		if err != nil {
			panic("failed to open sqlite db: " + err.Error())
		}
		sp.liteClient = db
	}
	return sp.liteClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		var (
			m   *manager.Manager
			err error
		)
		if sp.StorageCfg().Driver() == env.DriverPostgres {
			m, err = manager.New(trmpgx.NewDefaultFactory(sp.PGClient(ctx)))
		} else {
			m, err = manager.New(trmsql.NewDefaultFactory(sp.LiteClient()))
		}
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) RecipeRepository(ctx context.Context) repository.RecipeRepository {
	if sp.recipeRepo == nil {
		if sp.StorageCfg().Driver() == env.DriverPostgres {
			sp.recipeRepo = recipe_repo.NewRecipeRepository(sp.PGClient(ctx))
		} else {
			sp.recipeRepo = recipe_lite_repo.NewRecipeRepository(sp.LiteClient())
		}
	}
	return sp.recipeRepo
}

func (sp *ServiceProvider) GeminiCfg() config.GeminiConfig {
	if sp.geminiCfg == nil {
		cfg, err := env.NewGeminiConfig()
		if err != nil {
			panic("failed to get gemini config: " + err.Error())
		}
		sp.geminiCfg = cfg
	}
	return sp.geminiCfg
}

func (sp *ServiceProvider) ImageCfg() config.ImageConfig {
	if sp.imageCfg == nil {
		cfg, err := env.NewImageConfig()
		if err != nil {
			panic("failed to get image config: " + err.Error())
		}
		sp.imageCfg = cfg
	}
	return sp.imageCfg
}

func (sp *ServiceProvider) TextGenerator() client.TextGenerator {
	if sp.textGen == nil {
		if len(sp.GeminiCfg().APIKey()) == 0 {
			sp.Logger().Warn("GEMINI_API_KEY is not set, recipes will fall back to the stub")
		}
		sp.textGen = gemini.NewClient(sp.GeminiCfg(), sp.Logger())
	}
	return sp.textGen
}

func (sp *ServiceProvider) ImageGenerator() client.ImageGenerator {
	if sp.imageGen == nil {
		sp.imageGen = image.NewPlaceholder(sp.ImageCfg())
	}
	return sp.imageGen
}

func (sp *ServiceProvider) RecipeService(ctx context.Context) service.RecipeService {
	if sp.recipeServ == nil {
		sp.recipeServ = recipe.NewRecipeService(
			sp.TextGenerator(),
			sp.ImageGenerator(),
			sp.RecipeRepository(ctx),
			sp.TXManager(ctx),
			sp.ThemeTokenCfg(),
			sp.Logger(),
		)
	}
	return sp.recipeServ
}

func (sp *ServiceProvider) RecipeHandler(ctx context.Context) *recipeAPI.Handler {
	if sp.recipeHand == nil {
		sp.recipeHand = recipeAPI.NewHandler(recipeAPI.HandlerDeps{
			Serv: sp.RecipeService(ctx),
			Log:  sp.Logger(),
		})
	}
	return sp.recipeHand
}

func (sp *ServiceProvider) SlotCfg() config.SlotConfig {
	if sp.slotCfg == nil {
		cfg, err := env.NewSlotConfigFromYAML(slotConfigPath)
		if err != nil {
			panic("failed to get slot config: " + err.Error())
		}
		sp.slotCfg = cfg
	}
	return sp.slotCfg
}

func (sp *ServiceProvider) ThemeTokenCfg() config.ThemeTokenConfig {
	if sp.tokenCfg == nil {
		cfg, err := env.NewThemeTokenConfig()
		if err != nil {
			panic("failed to get theme token config: " + err.Error())
		}
		sp.tokenCfg = cfg
	}
	return sp.tokenCfg
}

func (sp *ServiceProvider) SlotStatsRepository() repository.SlotStatsRepository {
	if sp.slotStatsRepo == nil {
		sp.slotStatsRepo = slot_stats_repo.NewSlotStatsRepository()
	}
	return sp.slotStatsRepo
}

func (sp *ServiceProvider) SlotService() service.SlotService {
	if sp.slotServ == nil {
		sp.slotServ = slot.NewSlotService(
			sp.SlotCfg(),
			sp.ThemeTokenCfg(),
			sp.SlotStatsRepository(),
			sp.Logger(),
		)
	}
	return sp.slotServ
}

func (sp *ServiceProvider) SlotHandler() *slotAPI.Handler {
	if sp.slotHand == nil {
		sp.slotHand = slotAPI.NewHandler(slotAPI.HandlerDeps{
			Serv: sp.SlotService(),
			Log:  sp.Logger(),
		})
	}
	return sp.slotHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		r.Use(chimw.RequestID)
		r.Use(middleware.RequestLogger(sp.Logger()))
		r.Use(chimw.Recoverer)

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		// Slot endpoints
		slotHandler := sp.SlotHandler()
		r.Route("/slot", func(rr chi.Router) {
			rr.Post("/sessions", slotHandler.Create)
			rr.Get("/sessions/{id}", slotHandler.State)
			rr.Post("/sessions/{id}/start", slotHandler.Start)
			rr.Post("/sessions/{id}/stop/{reel}", slotHandler.Stop)
			rr.Post("/sessions/{id}/confirm", slotHandler.Confirm)
			rr.Delete("/sessions/{id}", slotHandler.Close)
			rr.Get("/stats", slotHandler.Stats)
		})

		// Recipe endpoints
		recipeHandler := sp.RecipeHandler(ctx)
		r.Route("/api", func(rr chi.Router) {
			rr.Post("/generate-recipe", recipeHandler.GenerateRecipe)
			rr.Post("/generate-image", recipeHandler.GenerateImage)
			rr.Post("/save-recipe", recipeHandler.SaveRecipe)
			rr.Get("/gacha", recipeHandler.Gacha)
		})

		// Страницы игры
		if dir := sp.HTTPCfg().StaticDir(); len(dir) != 0 {
			r.Handle("/*", http.FileServer(http.Dir(dir)))
		}

		sp.router = r
	}

	return sp.router
}

// Close освобождает соединения с базой и сбрасывает буфер логгера
func (sp *ServiceProvider) Close() {
	if sp.pgClient != nil {
		sp.pgClient.Close()
	}
	if sp.liteClient != nil {
		if err := sp.liteClient.Close(); err != nil {
			log.Printf("failed to close sqlite db: %v", err)
		}
	}
	if sp.logger != nil {
		_ = sp.logger.Sync()
	}
}
