package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jmcanizales/papeleria-api/internal/application/alertas"
	"github.com/jmcanizales/papeleria-api/internal/application/auth"
	"github.com/jmcanizales/papeleria-api/internal/application/devoluciones"
	"github.com/jmcanizales/papeleria-api/internal/application/entradas"
	"github.com/jmcanizales/papeleria-api/internal/application/fisico"
	"github.com/jmcanizales/papeleria-api/internal/application/items"
	"github.com/jmcanizales/papeleria-api/internal/application/movimientos"
	"github.com/jmcanizales/papeleria-api/internal/application/salidas"
	"github.com/jmcanizales/papeleria-api/internal/application/solicitudes"
	"github.com/jmcanizales/papeleria-api/internal/infrastructure/notify"
	"github.com/jmcanizales/papeleria-api/internal/infrastructure/postgres"
	"github.com/jmcanizales/papeleria-api/internal/infrastructure/storage"
	httpRouter "github.com/jmcanizales/papeleria-api/internal/interfaces/http"
	"github.com/jmcanizales/papeleria-api/pkg/config"
	"github.com/jmcanizales/papeleria-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Feed de cambios en tiempo real (opcional: sin REDIS_ADDR se deshabilita)
	var feed alertas.CambioFeed
	if cfg.Redis.Addr != "" {
		redisFeed, err := notify.NewRedisFeed(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisFeed.Close()
		feed = redisFeed
	} else {
		log.Warn().Msg("feed de cambios deshabilitado (REDIS_ADDR vacío)")
	}

	// Object storage para firmas digitalizadas (opcional)
	var firmaStorage salidas.FirmaStorage
	if cfg.Storage.BaseURL != "" {
		firmaStorage = storage.NewSupabaseStorage(cfg.Storage)
	} else {
		log.Warn().Msg("storage de firmas deshabilitado (STORAGE_BASE_URL vacío)")
	}

	itemRepo := postgres.NewItemRepository(pool)
	categoriaRepo := postgres.NewCategoriaRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	movRepo := postgres.NewMovimientoRepository(pool)
	entradaRepo := postgres.NewEntradaRepository(pool)
	salidaRepo := postgres.NewSalidaRepository(pool)
	devolucionRepo := postgres.NewDevolucionRepository(pool)
	invRepo := postgres.NewInventarioFisicoRepository(pool)
	solicitudRepo := postgres.NewSolicitudRepository(pool)
	alertaRepo := postgres.NewAlertaRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	alertaUC := alertas.NewAlertaUseCase(alertaRepo, feed, log)
	itemUC := items.NewItemUseCase(txRunner, itemRepo, categoriaRepo, usuarioRepo, alertaUC, feed, log)
	entradaUC := entradas.NewEntradaUseCase(txRunner, entradaRepo, usuarioRepo, feed, log)
	salidaUC := salidas.NewSalidaUseCase(txRunner, salidaRepo, itemRepo, usuarioRepo, firmaStorage, alertaUC, feed, log)
	devolucionUC := devoluciones.NewDevolucionUseCase(txRunner, devolucionRepo, usuarioRepo, feed, log)
	libroUC := movimientos.NewLibroUseCase(movRepo)
	inventarioUC := fisico.NewInventarioUseCase(txRunner, invRepo, itemRepo, usuarioRepo, alertaUC, feed, log)
	solicitudUC := solicitudes.NewSolicitudUseCase(txRunner, solicitudRepo, itemRepo, usuarioRepo, alertaUC, log)
	authUC := auth.NewAuthUseCase(usuarioRepo, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Papelería API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ItemUC:       itemUC,
		EntradaUC:    entradaUC,
		SalidaUC:     salidaUC,
		DevolucionUC: devolucionUC,
		LibroUC:      libroUC,
		InventarioUC: inventarioUC,
		SolicitudUC:  solicitudUC,
		AlertaUC:     alertaUC,
		JWTSecret:    cfg.JWT.Secret,
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
