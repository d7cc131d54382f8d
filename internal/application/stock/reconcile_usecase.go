package stock

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
	domstock "github.com/tu-usuario/tienda-pos/internal/domain/stock"
	"github.com/tu-usuario/tienda-pos/pkg/logger"
)

// reconcileTolerance absorbe ruido de datos importados con aritmética float;
// por debajo de esta diferencia la proyección se considera correcta y no se escribe.
var reconcileTolerance = decimal.NewFromFloat(0.000001)

// ReconcileUseCase restaura la invariante "proyección == fold del log" cuando han
// divergido (clamp por sobreventa, migraciones, importaciones externas).
type ReconcileUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
	cache       StockCache
	log         *logger.Logger
}

// NewReconcileUseCase construye el caso de uso. cache puede ser NoopStockCache.
func NewReconcileUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	cache StockCache,
	log *logger.Logger,
) *ReconcileUseCase {
	return &ReconcileUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		movRepo:     movRepo,
		cache:       cache,
		log:         log,
	}
}

// ReconcileResult resultado de reconciliar un producto.
type ReconcileResult struct {
	ProductID  string
	Previous   decimal.Decimal // proyección cacheada antes de reconciliar
	Recomputed decimal.Decimal // fold del log completo
	Corrected  bool            // true si hubo escritura
}

// RecomputeStock pliega el historial completo del producto y devuelve el stock
// resultante. Solo lectura, sin efectos; nunca confía en la proyección cacheada.
func (uc *ReconcileUseCase) RecomputeStock(ctx context.Context, productID string) (decimal.Decimal, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return decimal.Zero, err
	}
	if product == nil {
		return decimal.Zero, domain.ErrProductNotFound
	}
	movements, err := uc.movRepo.ListAllByProduct(productID)
	if err != nil {
		return decimal.Zero, err
	}
	return domstock.Fold(movements)
}

// ReconcileProduct recalcula el stock desde el log y, solo si la discrepancia con la
// proyección excede la tolerancia, la sobreescribe en una única escritura atómica.
// Idempotente: una segunda llamada sin movimientos intermedios no encuentra
// discrepancia y no escribe.
func (uc *ReconcileUseCase) ReconcileProduct(ctx context.Context, productID string) (*ReconcileResult, error) {
	var result *ReconcileResult
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		// El lock de la fila del producto serializa contra RecordMovement: el fold
		// lee un snapshot consistente, sin movimientos a medio contar.
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		movements, err := movRepo.ListAllByProduct(productID)
		if err != nil {
			return err
		}
		recomputed, err := domstock.Fold(movements)
		if err != nil {
			return err
		}

		result = &ReconcileResult{
			ProductID:  productID,
			Previous:   product.StockQuantity,
			Recomputed: recomputed,
		}
		if product.StockQuantity.Sub(recomputed).Abs().LessThanOrEqual(reconcileTolerance) {
			return nil
		}
		if err := productRepo.UpdateStock(productID, recomputed); err != nil {
			return err
		}
		result.Corrected = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Corrected {
		if uc.log != nil {
			uc.log.Warn().
				Str("product_id", productID).
				Str("previous", result.Previous.String()).
				Str("recomputed", result.Recomputed.String()).
				Msg("proyección de stock divergente: corregida desde el log de movimientos")
		}
		if uc.cache != nil {
			_ = uc.cache.Invalidate(ctx, productID)
		}
	}
	return result, nil
}

// ReconcileShop reconcilia todos los productos de una tienda y devuelve los
// resultados de los que requirieron corrección.
func (uc *ReconcileUseCase) ReconcileShop(ctx context.Context, shopID string) ([]*ReconcileResult, error) {
	const pageSize = 200
	var corrected []*ReconcileResult
	for offset := 0; ; offset += pageSize {
		products, err := uc.productRepo.ListByShop(shopID, pageSize, offset)
		if err != nil {
			return nil, err
		}
		for _, p := range products {
			res, err := uc.ReconcileProduct(ctx, p.ID)
			if err != nil {
				return nil, err
			}
			if res.Corrected {
				corrected = append(corrected, res)
			}
		}
		if len(products) < pageSize {
			break
		}
	}
	return corrected, nil
}
