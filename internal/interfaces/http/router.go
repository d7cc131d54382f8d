package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/tienda-pos/internal/application/stock"
	"github.com/tu-usuario/tienda-pos/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ShopUC      *usecase.ShopUseCase
	ProductUC   *usecase.ProductUseCase
	RecordUC    *stock.RecordMovementUseCase
	ReconcileUC *stock.ReconcileUseCase
	QueryUC     *stock.StockQueryUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Shops (público por ahora; se puede proteger con AuthMiddleware(deps.JWTSecret))
	shops := api.Group("/shops")
	shopHandler := NewShopHandler(deps.ShopUC)
	shops.Post("/", shopHandler.Create)
	shops.Get("/", shopHandler.List)
	shops.Get("/:id", shopHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)

	// Stock ledger (protegido)
	stockHandler := NewStockHandler(deps.RecordUC, deps.ReconcileUC, deps.QueryUC)
	stockGroup := protected.Group("/stock")
	stockGroup.Post("/movements", stockHandler.RecordMovement)
	stockGroup.Post("/sales", stockHandler.RecordSale)
	stockGroup.Post("/receipts", stockHandler.RecordReceipt)
	stockGroup.Post("/reconcile", RequireRole("admin"), stockHandler.ReconcileShop)

	products.Get("/:id/stock", stockHandler.GetCurrentStock)
	products.Get("/:id/movements", stockHandler.ListMovements)
	// Reconciliar escribe la proyección: solo admin
	products.Post("/:id/reconcile", RequireRole("admin"), stockHandler.Reconcile)
}
