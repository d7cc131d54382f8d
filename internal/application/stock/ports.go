package stock

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza que el par insertar-movimiento + actualizar-proyección
// sea todo-o-nada: o ambos efectos quedan visibles, o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// StockCache cachea el stock actual por producto para lecturas rápidas.
// Jamás alimenta la reconciliación: esa lee siempre el log de movimientos.
type StockCache interface {
	Get(ctx context.Context, productID string) (decimal.Decimal, bool, error)
	Set(ctx context.Context, productID string, qty decimal.Decimal) error
	Invalidate(ctx context.Context, productID string) error
}
