package stock

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
)

// SignedDelta devuelve el delta con signo que un movimiento aplica al stock:
// positivo para tipos de entrada, negativo para tipos de salida.
func SignedDelta(movementType string, qty decimal.Decimal) (decimal.Decimal, error) {
	if !entity.IsValidMovementType(movementType) {
		return decimal.Zero, domain.ErrInvalidMovementType
	}
	if entity.IsInbound(movementType) {
		return qty, nil
	}
	return qty.Neg(), nil
}

// ApplyDelta aplica un delta a la proyección con saturación en cero.
// El clamp es política deliberada, no un error: un movimiento de salida mayor que el
// stock disponible deja la proyección en cero y el log y la proyección divergen hasta
// que la reconciliación los corrija.
func ApplyDelta(current, delta decimal.Decimal) decimal.Decimal {
	next := current.Add(delta)
	if next.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return next
}

// Fold pliega el historial completo de movimientos de un producto y devuelve el stock
// resultante en unidades base. La suma corre sin clamp intermedio y solo el resultado
// final se trunca a cero: clampear paso a paso haría el total dependiente del orden
// del historial.
func Fold(movements []*entity.StockMovement) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, m := range movements {
		delta, err := SignedDelta(m.Type, m.Quantity)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(delta)
	}
	if total.LessThan(decimal.Zero) {
		return decimal.Zero, nil
	}
	return total, nil
}
