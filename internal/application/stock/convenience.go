package stock

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	domstock "github.com/tu-usuario/tienda-pos/internal/domain/stock"
)

// SaleInput entrada para registrar una venta. Quantity va en unidades de venta;
// el caso de uso la normaliza a unidades base con el factor del producto.
type SaleInput struct {
	ProductID      string
	ShopID         string
	Quantity       decimal.Decimal // unidades de venta
	CounterpartyID string          // cliente, opcional
	Reference      string
	Notes          string
	UserID         string
	Date           *time.Time
}

// ReceiptInput entrada para registrar una recepción. Quantity va en unidades de
// compra (cajas, bultos) y se normaliza a unidades base.
type ReceiptInput struct {
	ProductID      string
	ShopID         string
	Quantity       decimal.Decimal // unidades de compra
	BatchNumber    string
	ExpiryDate     *time.Time
	CounterpartyID string // proveedor, opcional
	Reference      string
	Notes          string
	UserID         string
	Date           *time.Time
}

// RecordSale convierte la cantidad de unidades de venta a base y registra un SALE.
func (uc *RecordMovementUseCase) RecordSale(ctx context.Context, input SaleInput) (*MovementResult, error) {
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
	baseQty, err := domstock.ConvertSellingToBase(input.Quantity, product)
	if err != nil {
		return nil, err
	}
	return uc.RecordMovement(ctx, MovementInput{
		ProductID:      input.ProductID,
		ShopID:         input.ShopID,
		Type:           entity.MovementTypeSALE,
		Quantity:       baseQty,
		CounterpartyID: input.CounterpartyID,
		Reference:      input.Reference,
		Notes:          input.Notes,
		UserID:         input.UserID,
		Date:           input.Date,
	})
}

// RecordReceipt convierte la cantidad de unidades de compra a base y registra un IN.
func (uc *RecordMovementUseCase) RecordReceipt(ctx context.Context, input ReceiptInput) (*MovementResult, error) {
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
	baseQty, err := domstock.ConvertPurchaseToBase(input.Quantity, product)
	if err != nil {
		return nil, err
	}
	return uc.RecordMovement(ctx, MovementInput{
		ProductID:      input.ProductID,
		ShopID:         input.ShopID,
		Type:           entity.MovementTypeIN,
		Quantity:       baseQty,
		BatchNumber:    input.BatchNumber,
		ExpiryDate:     input.ExpiryDate,
		CounterpartyID: input.CounterpartyID,
		Reference:      input.Reference,
		Notes:          input.Notes,
		UserID:         input.UserID,
		Date:           input.Date,
	})
}
