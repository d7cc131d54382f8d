package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
// Los factores de conversión deben ser > 0; si la unidad de venta es la base,
// unit_conversion_factor = 1.
type CreateProductRequest struct {
	SKU                  string          `json:"sku"`
	Name                 string          `json:"name"`
	BaseUnit             string          `json:"base_unit"`
	PurchaseUnit         string          `json:"purchase_unit"`
	PurchaseUnitSize     decimal.Decimal `json:"purchase_unit_size"`
	SellingUnit          string          `json:"selling_unit"`
	UnitConversionFactor decimal.Decimal `json:"unit_conversion_factor"`
	CostPricePerBase     decimal.Decimal `json:"cost_price_per_base"`
	SellingPricePerBase  decimal.Decimal `json:"selling_price_per_base"`
}

// UpdateProductRequest body para PUT /api/products/:id. Campos opcionales.
// No permite tocar stock_quantity: eso es territorio exclusivo de los movimientos.
type UpdateProductRequest struct {
	Name                 *string          `json:"name,omitempty"`
	PurchaseUnit         *string          `json:"purchase_unit,omitempty"`
	PurchaseUnitSize     *decimal.Decimal `json:"purchase_unit_size,omitempty"`
	SellingUnit          *string          `json:"selling_unit,omitempty"`
	UnitConversionFactor *decimal.Decimal `json:"unit_conversion_factor,omitempty"`
	CostPricePerBase     *decimal.Decimal `json:"cost_price_per_base,omitempty"`
	SellingPricePerBase  *decimal.Decimal `json:"selling_price_per_base,omitempty"`
	Active               *bool            `json:"active,omitempty"`
}

// ProductResponse respuesta de producto.
type ProductResponse struct {
	ID                   string          `json:"id"`
	ShopID               string          `json:"shop_id"`
	SKU                  string          `json:"sku"`
	Name                 string          `json:"name"`
	BaseUnit             string          `json:"base_unit"`
	PurchaseUnit         string          `json:"purchase_unit"`
	PurchaseUnitSize     decimal.Decimal `json:"purchase_unit_size"`
	SellingUnit          string          `json:"selling_unit"`
	UnitConversionFactor decimal.Decimal `json:"unit_conversion_factor"`
	CostPricePerBase     decimal.Decimal `json:"cost_price_per_base"`
	SellingPricePerBase  decimal.Decimal `json:"selling_price_per_base"`
	StockQuantity        decimal.Decimal `json:"stock_quantity"`
	Active               bool            `json:"active"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Products []*ProductResponse `json:"products"`
	Page     PageResponse       `json:"page"`
}
