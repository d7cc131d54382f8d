package stock

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
)

// Conversión de unidades (servicio de dominio puro, sin estado).
// Toda cantidad persistida está en unidades base; estas funciones normalizan
// las cantidades expresadas en unidad de compra o de venta.

// ConvertPurchaseToBase convierte una cantidad en unidades de compra a unidades base:
// qty * PurchaseUnitSize. Falla si el tamaño de la unidad de compra no es positivo.
func ConvertPurchaseToBase(qty decimal.Decimal, p *entity.Product) (decimal.Decimal, error) {
	if p == nil || !p.PurchaseUnitSize.GreaterThan(decimal.Zero) {
		return decimal.Zero, domain.ErrInvalidUnitConfig
	}
	return qty.Mul(p.PurchaseUnitSize), nil
}

// ConvertSellingToBase convierte una cantidad en unidades de venta a unidades base:
// qty * UnitConversionFactor (factor 1 cuando la unidad de venta es la base).
func ConvertSellingToBase(qty decimal.Decimal, p *entity.Product) (decimal.Decimal, error) {
	if p == nil || !p.UnitConversionFactor.GreaterThan(decimal.Zero) {
		return decimal.Zero, domain.ErrInvalidUnitConfig
	}
	return qty.Mul(p.UnitConversionFactor), nil
}
