package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/tienda-pos/internal/application/stock"
	"github.com/tu-usuario/tienda-pos/internal/application/usecase"
	infracache "github.com/tu-usuario/tienda-pos/internal/infrastructure/cache"
	"github.com/tu-usuario/tienda-pos/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/tienda-pos/internal/interfaces/http"
	"github.com/tu-usuario/tienda-pos/pkg/config"
	"github.com/tu-usuario/tienda-pos/pkg/logger"
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

	shopRepo := postgres.NewShopRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché de stock: Redis si está configurado, Noop si no.
	var stockCache stock.StockCache = infracache.NoopStockCache{}
	if cfg.Redis.Addr != "" {
		redisCache := infracache.NewRedisStockCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, 30*time.Second)
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, continuando sin caché de stock")
		} else {
			stockCache = redisCache
			defer redisCache.Close()
		}
	}

	recordUC := stock.NewRecordMovementUseCase(txRunner, productRepo, shopRepo, stockCache, log)
	reconcileUC := stock.NewReconcileUseCase(txRunner, productRepo, movementRepo, stockCache, log)
	queryUC := stock.NewStockQueryUseCase(productRepo, movementRepo, stockCache)
	shopUC := usecase.NewShopUseCase(shopRepo)
	productUC := usecase.NewProductUseCase(productRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ShopUC:      shopUC,
		ProductUC:   productUC,
		RecordUC:    recordUC,
		ReconcileUC: reconcileUC,
		QueryUC:     queryUC,
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
