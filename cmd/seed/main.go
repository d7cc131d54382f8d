// seed carga datos demo en la base de datos: una tienda, un catálogo pequeño de
// productos y las recepciones iniciales de mercancía. Las recepciones pasan por el
// caso de uso de movimientos, así el stock inicial queda respaldado por el log
// (nunca se escribe stock_quantity a mano).
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-pos/internal/application/dto"
	"github.com/tu-usuario/tienda-pos/internal/application/stock"
	"github.com/tu-usuario/tienda-pos/internal/application/usecase"
	infracache "github.com/tu-usuario/tienda-pos/internal/infrastructure/cache"
	"github.com/tu-usuario/tienda-pos/internal/infrastructure/postgres"
	"github.com/tu-usuario/tienda-pos/pkg/config"
	"github.com/tu-usuario/tienda-pos/pkg/logger"
)

type seedProduct struct {
	sku                  string
	name                 string
	baseUnit             string
	purchaseUnit         string
	purchaseUnitSize     string
	sellingUnit          string
	unitConversionFactor string
	costPerBase          string
	pricePerBase         string
	initialPurchaseQty   string // en unidades de compra
}

var catalog = []seedProduct{
	{"GAS-600", "Gaseosa 600ml", "botella", "caja", "24", "botella", "1", "1500", "2500", "10"},
	{"ARR-500", "Arroz 500g", "paquete", "bulto", "25", "paquete", "1", "1800", "2600", "4"},
	{"QUE-KG", "Queso campesino", "kg", "bloque", "2.5", "libra", "0.5", "14000", "22000", "6"},
	{"PAN-UND", "Pan aliñado", "unidad", "canasta", "30", "unidad", "1", "300", "600", "2"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	shopRepo := postgres.NewShopRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	shopUC := usecase.NewShopUseCase(shopRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	recordUC := stock.NewRecordMovementUseCase(txRunner, productRepo, shopRepo, infracache.NoopStockCache{}, log)

	shop, err := shopUC.Create(dto.CreateShopRequest{
		Name:     "Tienda Demo",
		Currency: "COP",
		Address:  "Calle 10 # 5-21",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("crear tienda demo")
	}
	log.Info().Str("shop_id", shop.ID).Msg("tienda demo creada")

	for _, sp := range catalog {
		product, err := productUC.Create(shop.ID, dto.CreateProductRequest{
			SKU:                  sp.sku,
			Name:                 sp.name,
			BaseUnit:             sp.baseUnit,
			PurchaseUnit:         sp.purchaseUnit,
			PurchaseUnitSize:     decimal.RequireFromString(sp.purchaseUnitSize),
			SellingUnit:          sp.sellingUnit,
			UnitConversionFactor: decimal.RequireFromString(sp.unitConversionFactor),
			CostPricePerBase:     decimal.RequireFromString(sp.costPerBase),
			SellingPricePerBase:  decimal.RequireFromString(sp.pricePerBase),
		})
		if err != nil {
			log.Fatal().Err(err).Str("sku", sp.sku).Msg("crear producto demo")
		}

		res, err := recordUC.RecordReceipt(ctx, stock.ReceiptInput{
			ProductID: product.ID,
			ShopID:    shop.ID,
			Quantity:  decimal.RequireFromString(sp.initialPurchaseQty),
			Reference: "carga inicial",
		})
		if err != nil {
			log.Fatal().Err(err).Str("sku", sp.sku).Msg("recepción inicial")
		}
		log.Info().
			Str("sku", sp.sku).
			Str("stock", res.NewStock.String()).
			Msg("producto demo con stock inicial")
	}

	log.Info().Msg("seed completado")
}
