package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// StockQuantity solo se escribe vía UpdateStock, y únicamente dentro de la
// transacción del registro de movimientos o de la reconciliación.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByShopAndSKU(shopID, sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStock sobreescribe la proyección de stock (unidades base).
	UpdateStock(productID string, qty decimal.Decimal) error
	ListByShop(shopID string, limit, offset int) ([]*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) para
	// serializar escritores concurrentes sobre el mismo producto.
	GetForUpdate(id string) (*entity.Product, error)
}
