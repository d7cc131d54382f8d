package repository

import (
	"time"

	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del log de movimientos.
// El log es append-only: no hay Update ni Delete; las correcciones se registran
// como movimientos compensatorios.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	// ListAllByProduct devuelve el historial completo en orden cronológico.
	// Lo usa la reconciliación; nunca confía en la proyección.
	ListAllByProduct(productID string) ([]*entity.StockMovement, error)
}
