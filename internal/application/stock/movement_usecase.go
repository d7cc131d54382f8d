package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
	domstock "github.com/tu-usuario/tienda-pos/internal/domain/stock"
	"github.com/tu-usuario/tienda-pos/pkg/logger"
)

// RecordMovementUseCase registra movimientos de stock de forma transaccional:
// inserta el evento en el log y actualiza la proyección stock_quantity del producto
// en la misma transacción, con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type RecordMovementUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	shopRepo    repository.ShopRepository
	cache       StockCache
	log         *logger.Logger
}

// NewRecordMovementUseCase construye el caso de uso. cache puede ser NoopStockCache.
func NewRecordMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	shopRepo repository.ShopRepository,
	cache StockCache,
	log *logger.Logger,
) *RecordMovementUseCase {
	return &RecordMovementUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		shopRepo:    shopRepo,
		cache:       cache,
		log:         log,
	}
}

// MovementInput entrada para registrar un movimiento. Quantity va en unidades base
// y debe ser positiva; la dirección la determina Type. Date es la hora lógica del
// evento y por defecto es la hora actual.
type MovementInput struct {
	ProductID      string
	ShopID         string
	Type           string
	Quantity       decimal.Decimal
	BatchNumber    string
	ExpiryDate     *time.Time
	CounterpartyID string
	Reference      string
	Notes          string
	UserID         string
	Date           *time.Time
}

// MovementResult resultado del registro: el movimiento creado y el stock antes y
// después. Clamped indica que la salida excedía el stock disponible y la proyección
// quedó saturada en cero (el log y la proyección divergen hasta reconciliar).
type MovementResult struct {
	Movement      *entity.StockMovement
	PreviousStock decimal.Decimal
	NewStock      decimal.Decimal
	Clamped       bool
}

// RecordMovement valida la entrada, abre la transacción, bloquea la fila del producto,
// inserta el movimiento y aplica el delta con signo a la proyección (saturada en cero).
// Ambos efectos se confirman o se revierten juntos.
func (uc *RecordMovementUseCase) RecordMovement(ctx context.Context, input MovementInput) (*MovementResult, error) {
	if !entity.IsValidMovementType(input.Type) {
		return nil, domain.ErrInvalidMovementType
	}
	if !input.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrNonPositiveQuantity
	}

	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if input.ShopID != "" && product.ShopID != input.ShopID {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	date := now
	if input.Date != nil {
		date = *input.Date
	}

	var result *MovementResult
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		// Bloquea la fila del producto: escritores concurrentes sobre el mismo
		// producto se serializan aquí; productos distintos no se esperan entre sí.
		locked, err := productRepo.GetForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrProductNotFound
		}

		delta, err := domstock.SignedDelta(input.Type, input.Quantity)
		if err != nil {
			return err
		}
		newStock := domstock.ApplyDelta(locked.StockQuantity, delta)
		clamped := !locked.StockQuantity.Add(delta).Equal(newStock)

		if err := productRepo.UpdateStock(input.ProductID, newStock); err != nil {
			return err
		}

		mov := &entity.StockMovement{
			ID:             uuid.New().String(),
			ProductID:      input.ProductID,
			ShopID:         locked.ShopID,
			Type:           input.Type,
			Quantity:       input.Quantity,
			BatchNumber:    input.BatchNumber,
			ExpiryDate:     input.ExpiryDate,
			CounterpartyID: input.CounterpartyID,
			Reference:      input.Reference,
			Notes:          input.Notes,
			Date:           date,
			CreatedAt:      now,
			CreatedBy:      input.UserID,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}

		result = &MovementResult{
			Movement:      mov,
			PreviousStock: locked.StockQuantity,
			NewStock:      newStock,
			Clamped:       clamped,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Clamped && uc.log != nil {
		uc.log.Warn().
			Str("product_id", input.ProductID).
			Str("type", input.Type).
			Str("quantity", input.Quantity.String()).
			Str("previous_stock", result.PreviousStock.String()).
			Msg("salida mayor que el stock disponible: proyección saturada en cero")
	}
	if uc.cache != nil {
		_ = uc.cache.Invalidate(ctx, input.ProductID)
	}
	return result, nil
}
