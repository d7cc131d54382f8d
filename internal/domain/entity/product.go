package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto de una tienda con sus tres escalas de unidades:
//   - BaseUnit: unidad atómica en la que se almacena el stock (pieza, kg, ...)
//   - PurchaseUnit: unidad en la que llega la mercancía (caja de 12, bulto, ...)
//   - SellingUnit: unidad en la que se vende al cliente
//
// StockQuantity es una proyección del log de movimientos (en unidades base), no la
// fuente de verdad: solo la mutan el registro de movimientos y la reconciliación.
type Product struct {
	ID                   string
	ShopID               string
	SKU                  string // código único por tienda
	Name                 string
	BaseUnit             string
	PurchaseUnit         string
	PurchaseUnitSize     decimal.Decimal // unidades base por unidad de compra
	SellingUnit          string
	UnitConversionFactor decimal.Decimal // unidades base por unidad de venta (1 si coinciden)
	CostPricePerBase     decimal.Decimal
	SellingPricePerBase  decimal.Decimal
	StockQuantity        decimal.Decimal // proyección en unidades base
	Active               bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// HasValidUnitConfig indica si los factores de conversión permiten operar el producto.
func (p *Product) HasValidUnitConfig() bool {
	return p.PurchaseUnitSize.GreaterThan(decimal.Zero) &&
		p.UnitConversionFactor.GreaterThan(decimal.Zero)
}
