package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/envos-stock/internal/application/analytics"
	"github.com/jhoicas/envos-stock/internal/application/auth"
	appbilling "github.com/jhoicas/envos-stock/internal/application/billing"
	appclosing "github.com/jhoicas/envos-stock/internal/application/closing"
	"github.com/jhoicas/envos-stock/internal/application/inventory"
	"github.com/jhoicas/envos-stock/internal/domain/entity"
	"github.com/jhoicas/envos-stock/internal/domain/repository"
	"github.com/jhoicas/envos-stock/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/envos-stock/internal/infrastructure/pdf"
	"github.com/jhoicas/envos-stock/internal/infrastructure/postgres"
	"github.com/jhoicas/envos-stock/internal/infrastructure/redisstore"
	"github.com/jhoicas/envos-stock/internal/infrastructure/sheets"
	httpRouter "github.com/jhoicas/envos-stock/internal/interfaces/http"
	"github.com/jhoicas/envos-stock/pkg/config"
	"github.com/jhoicas/envos-stock/pkg/logger"
)

type txRunner interface {
	inventory.TxRunner
	appclosing.TxRunner
}

// storage repositorios del backend elegido por STORAGE_DRIVER.
type storage struct {
	tx        txRunner
	articles  repository.ArticleRepository
	movements repository.MovementRepository
	loads     repository.LoadRepository
	closings  repository.ClosingRepository
	users     repository.UserRepository
	analytics repository.AnalyticsRepository
	pinger    httpRouter.Pinger
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer st.close()

	var overrides appbilling.OverrideStore = memory.NewOverrideStore()
	if cfg.Redis.URL != "" {
		rdb, err := redisstore.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		overrides = redisstore.NewOverrideStore(rdb, time.Duration(cfg.Redis.OverrideTTL)*time.Hour)
		log.Info().Msg("overrides de facturación en Redis")
	}

	authUC := auth.NewAuthUseCase(st.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if cfg.Admin.Email != "" {
		created, err := authUC.EnsureUser(ctx, cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.Name, entity.RoleAdmin)
		if err != nil {
			log.Fatal().Err(err).Msg("alta del administrador")
		}
		if created {
			log.Info().Str("email", cfg.Admin.Email).Msg("administrador creado")
		}
	}

	stagingUC := appbilling.NewStagingUseCase(st.loads, st.articles, st.closings, overrides, log)
	deps := httpRouter.RouterDeps{
		AuthUC:     authUC,
		CatalogUC:  inventory.NewCatalogUseCase(st.articles, log),
		MovementUC: inventory.NewMovementUseCase(st.tx, st.movements, st.articles, log),
		StatusUC:   inventory.NewStatusUseCase(st.articles, st.movements),
		IngestUC:   inventory.NewIngestLoadsUseCase(st.tx, st.loads, cfg.Sync.User, cfg.Sync.Reason, log),
		LoadParser: sheets.NewLoadParser(),
		StagingUC:  stagingUC,
		ReportUC:   appbilling.NewReportUseCase(stagingUC, infrapdf.NewMonthlyReportGenerator(), cfg.Report.Company, cfg.Report.Subtitle),
		ClosingUC:  appclosing.NewUseCase(st.tx, st.closings, st.loads, log),
		StatsUC:    analytics.NewStatsUseCase(st.analytics),
		JWTSecret:  cfg.JWT.Secret,
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    8 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Envos Stock API",
	}))

	app.Get("/health", httpRouter.Health(cfg.App.Name, st.pinger))
	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == "memory" {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return &storage{
			tx:        memory.NewTxRunner(store),
			articles:  store.Articles(),
			movements: store.Movements(),
			loads:     store.Loads(),
			closings:  store.Closings(),
			users:     store.Users(),
			analytics: store.Analytics(),
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.Migrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("esquema aplicado")
	}
	return &storage{
		tx:        postgres.NewTxRunner(pool),
		articles:  postgres.NewArticleRepository(pool),
		movements: postgres.NewMovementRepository(pool),
		loads:     postgres.NewLoadRepository(pool),
		closings:  postgres.NewClosingRepository(pool),
		users:     postgres.NewUserRepository(pool),
		analytics: postgres.NewAnalyticsRepository(pool),
		pinger:    pool,
		close:     pool.Close,
	}, nil
}
