package stock

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
)

// StockQueryUseCase lecturas del stock actual y del historial de movimientos.
type StockQueryUseCase struct {
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
	cache       StockCache
}

// NewStockQueryUseCase construye el caso de uso de consulta. cache puede ser Noop.
func NewStockQueryUseCase(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	cache StockCache,
) *StockQueryUseCase {
	return &StockQueryUseCase{productRepo: productRepo, movRepo: movRepo, cache: cache}
}

// GetCurrentStock devuelve la proyección de stock del producto (unidades base),
// con caché read-through cuando hay Redis configurado.
func (uc *StockQueryUseCase) GetCurrentStock(ctx context.Context, productID string) (decimal.Decimal, error) {
	if uc.cache != nil {
		if qty, ok, err := uc.cache.Get(ctx, productID); err == nil && ok {
			return qty, nil
		}
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return decimal.Zero, err
	}
	if product == nil {
		return decimal.Zero, domain.ErrProductNotFound
	}
	if uc.cache != nil {
		_ = uc.cache.Set(ctx, productID, product.StockQuantity)
	}
	return product.StockQuantity, nil
}

// ListMovements lista el historial de un producto en un rango de fechas, paginado,
// del más reciente al más antiguo.
func (uc *StockQueryUseCase) ListMovements(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return uc.movRepo.ListByProduct(productID, from, to, limit, offset)
}
