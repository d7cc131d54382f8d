package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-pos/internal/application/dto"
	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. StockQuantity se maneja vía
// movimientos, nunca desde aquí.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto. Stock inicia en 0; los factores de conversión se validan
// aquí para que los casos de uso de stock puedan asumir metadata de unidades sana.
func (uc *ProductUseCase) Create(shopID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" || in.BaseUnit == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.PurchaseUnitSize.GreaterThan(decimal.Zero) || !in.UnitConversionFactor.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidUnitConfig
	}
	existing, _ := uc.repo.GetByShopAndSKU(shopID, in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	purchaseUnit := in.PurchaseUnit
	if purchaseUnit == "" {
		purchaseUnit = in.BaseUnit
	}
	sellingUnit := in.SellingUnit
	if sellingUnit == "" {
		sellingUnit = in.BaseUnit
	}
	now := time.Now()
	product := &entity.Product{
		ID:                   uuid.New().String(),
		ShopID:               shopID,
		SKU:                  in.SKU,
		Name:                 in.Name,
		BaseUnit:             in.BaseUnit,
		PurchaseUnit:         purchaseUnit,
		PurchaseUnitSize:     in.PurchaseUnitSize,
		SellingUnit:          sellingUnit,
		UnitConversionFactor: in.UnitConversionFactor,
		CostPricePerBase:     in.CostPricePerBase,
		SellingPricePerBase:  in.SellingPricePerBase,
		StockQuantity:        decimal.Zero,
		Active:               true,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. No permite modificar StockQuantity (se maneja vía
// movimientos). Active=false es la desactivación suave.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.PurchaseUnit != nil {
		product.PurchaseUnit = *in.PurchaseUnit
	}
	if in.PurchaseUnitSize != nil {
		if !in.PurchaseUnitSize.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidUnitConfig
		}
		product.PurchaseUnitSize = *in.PurchaseUnitSize
	}
	if in.SellingUnit != nil {
		product.SellingUnit = *in.SellingUnit
	}
	if in.UnitConversionFactor != nil {
		if !in.UnitConversionFactor.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidUnitConfig
		}
		product.UnitConversionFactor = *in.UnitConversionFactor
	}
	if in.CostPricePerBase != nil {
		product.CostPricePerBase = *in.CostPricePerBase
	}
	if in.SellingPricePerBase != nil {
		product.SellingPricePerBase = *in.SellingPricePerBase
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos por tienda con paginación.
func (uc *ProductUseCase) List(shopID string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListByShop(shopID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Products: out,
		Page:     dto.PageResponse{Limit: limit, Offset: offset, Total: len(out)},
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:                   p.ID,
		ShopID:               p.ShopID,
		SKU:                  p.SKU,
		Name:                 p.Name,
		BaseUnit:             p.BaseUnit,
		PurchaseUnit:         p.PurchaseUnit,
		PurchaseUnitSize:     p.PurchaseUnitSize,
		SellingUnit:          p.SellingUnit,
		UnitConversionFactor: p.UnitConversionFactor,
		CostPricePerBase:     p.CostPricePerBase,
		SellingPricePerBase:  p.SellingPricePerBase,
		StockQuantity:        p.StockQuantity,
		Active:               p.Active,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}
