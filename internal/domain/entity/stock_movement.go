package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock. La dirección la da el tipo, nunca el signo de Quantity.
const (
	MovementTypeIN             = "IN"             // recepción de mercancía
	MovementTypeSALE           = "SALE"           // venta
	MovementTypeTRANSFER_IN    = "TRANSFER_IN"    // traslado entrante desde otra tienda
	MovementTypeTRANSFER_OUT   = "TRANSFER_OUT"   // traslado saliente hacia otra tienda
	MovementTypeADJUSTMENT_IN  = "ADJUSTMENT_IN"  // ajuste positivo (conteo físico, corrección)
	MovementTypeADJUSTMENT_OUT = "ADJUSTMENT_OUT" // ajuste negativo
	MovementTypeRETURN         = "RETURN"         // devolución de cliente
	MovementTypeWASTE          = "WASTE"          // merma / vencimiento
)

// StockMovement es un evento inmutable y append-only del libro de stock.
// Quantity siempre es positiva y está en unidades base del producto.
// No existe update ni delete: una corrección se registra como movimiento
// compensatorio (ADJUSTMENT_IN / ADJUSTMENT_OUT).
type StockMovement struct {
	ID             string
	ProductID      string
	ShopID         string
	Type           string
	Quantity       decimal.Decimal // magnitud positiva, unidades base
	BatchNumber    string
	ExpiryDate     *time.Time
	CounterpartyID string // proveedor o cliente, opcional
	Reference      string // factura, orden, nota de ajuste, etc.
	Notes          string
	Date           time.Time // hora lógica del evento (no necesariamente la de inserción)
	CreatedAt      time.Time
	CreatedBy      string // UserID
}

// IsValidMovementType valida el tipo contra el conjunto cerrado.
func IsValidMovementType(t string) bool {
	switch t {
	case MovementTypeIN, MovementTypeSALE,
		MovementTypeTRANSFER_IN, MovementTypeTRANSFER_OUT,
		MovementTypeADJUSTMENT_IN, MovementTypeADJUSTMENT_OUT,
		MovementTypeRETURN, MovementTypeWASTE:
		return true
	}
	return false
}

// IsInbound indica si el tipo suma stock. Todo tipo válido que no entra, sale.
func IsInbound(t string) bool {
	switch t {
	case MovementTypeIN, MovementTypeTRANSFER_IN, MovementTypeRETURN, MovementTypeADJUSTMENT_IN:
		return true
	}
	return false
}
