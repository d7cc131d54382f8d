package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordMovementRequest body para POST /api/stock/movements.
// quantity va en unidades base y debe ser positiva; la dirección la da type.
type RecordMovementRequest struct {
	ProductID      string          `json:"product_id"`
	Type           string          `json:"type"`
	Quantity       decimal.Decimal `json:"quantity"`
	BatchNumber    string          `json:"batch_number,omitempty"`
	ExpiryDate     *time.Time      `json:"expiry_date,omitempty"`
	CounterpartyID string          `json:"counterparty_id,omitempty"`
	Reference      string          `json:"reference,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	Date           *time.Time      `json:"date,omitempty"`
}

// RecordSaleRequest body para POST /api/stock/sales. quantity en unidades de venta.
type RecordSaleRequest struct {
	ProductID      string          `json:"product_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	CounterpartyID string          `json:"counterparty_id,omitempty"`
	Reference      string          `json:"reference,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	Date           *time.Time      `json:"date,omitempty"`
}

// RecordReceiptRequest body para POST /api/stock/receipts. quantity en unidades de compra.
type RecordReceiptRequest struct {
	ProductID      string          `json:"product_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	BatchNumber    string          `json:"batch_number,omitempty"`
	ExpiryDate     *time.Time      `json:"expiry_date,omitempty"`
	CounterpartyID string          `json:"counterparty_id,omitempty"`
	Reference      string          `json:"reference,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	Date           *time.Time      `json:"date,omitempty"`
}

// MovementResponse respuesta del registro de un movimiento.
type MovementResponse struct {
	MovementID    string          `json:"movement_id"`
	ProductID     string          `json:"product_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"` // unidades base
	PreviousStock decimal.Decimal `json:"previous_stock"`
	NewStock      decimal.Decimal `json:"new_stock"`
	Clamped       bool            `json:"clamped"` // la salida excedía el stock y la proyección quedó en cero
	Date          time.Time       `json:"date"`
}

// StockMovementDTO un movimiento del historial.
type StockMovementDTO struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	ShopID         string          `json:"shop_id"`
	Type           string          `json:"type"`
	Quantity       decimal.Decimal `json:"quantity"`
	BatchNumber    string          `json:"batch_number,omitempty"`
	ExpiryDate     *time.Time      `json:"expiry_date,omitempty"`
	CounterpartyID string          `json:"counterparty_id,omitempty"`
	Reference      string          `json:"reference,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	Date           time.Time       `json:"date"`
	CreatedBy      string          `json:"created_by,omitempty"`
}

// ReconcileResponse resultado de reconciliar un producto.
type ReconcileResponse struct {
	ProductID  string          `json:"product_id"`
	Previous   decimal.Decimal `json:"previous"`
	Recomputed decimal.Decimal `json:"recomputed"`
	Corrected  bool            `json:"corrected"`
}

// ReconcileShopResponse resultado de reconciliar todos los productos de una tienda.
// Solo incluye los productos que requirieron corrección.
type ReconcileShopResponse struct {
	ShopID    string              `json:"shop_id"`
	Corrected []ReconcileResponse `json:"corrected"`
	Count     int                 `json:"count"`
}

// CurrentStockResponse stock actual de un producto (proyección, unidades base).
type CurrentStockResponse struct {
	ProductID     string          `json:"product_id"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
	BaseUnit      string          `json:"base_unit,omitempty"`
}
