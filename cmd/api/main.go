package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/Clientes-api/internal/application/auth"
	"github.com/jhoicas/Clientes-api/internal/application/dto"
	"github.com/jhoicas/Clientes-api/internal/application/usecase"
	"github.com/jhoicas/Clientes-api/internal/infrastructure/idgen"
	"github.com/jhoicas/Clientes-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Clientes-api/internal/interfaces/http"
	"github.com/jhoicas/Clientes-api/internal/metrics"
	"github.com/jhoicas/Clientes-api/pkg/config"
	"github.com/jhoicas/Clientes-api/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones de esquema")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	ids := idgen.UUIDv7{}
	userRepo := postgres.NewUserRepository(pool)
	customerTable := postgres.CustomerTable()

	// Un scope por operación de escritura: repositorio y unidad de trabajo
	// comparten el mismo changeset.
	newCustomerScope := func() usecase.CustomerScope {
		uow := postgres.NewUnitOfWork(pool)
		return usecase.CustomerScope{
			Repo: postgres.NewRepository(customerTable, uow),
			UoW:  uow,
		}
	}
	customerQuery := postgres.NewQueryService(pool, customerTable, dto.NewCustomerDto)

	customerSvc := usecase.NewCustomerAppService(newCustomerScope, customerQuery, ids, dto.NewCustomerDto)
	userSvc := usecase.NewUserAccountService(userRepo, ids)
	authUC := auth.NewAuthUseCase(userRepo, ids, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	if cfg.Admin.Email != "" {
		if err := authUC.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			log.Fatal().Err(err).Msg("sembrar cuenta admin")
		}
		log.Info().Str("email", cfg.Admin.Email).Msg("cuenta admin verificada")
	}

	metrics.MustRegister(prometheus.DefaultRegisterer)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.MetricsMiddleware())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Clientes API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		CustomerSvc: customerSvc,
		UserSvc:     userSvc,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
	})

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
