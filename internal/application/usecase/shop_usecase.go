package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/tienda-pos/internal/application/dto"
	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
)

// ShopUseCase casos de uso para tiendas.
type ShopUseCase struct {
	repo repository.ShopRepository
}

// NewShopUseCase construye el caso de uso con el puerto de persistencia.
func NewShopUseCase(repo repository.ShopRepository) *ShopUseCase {
	return &ShopUseCase{repo: repo}
}

// Create crea una tienda. La moneda por defecto es COP.
func (uc *ShopUseCase) Create(in dto.CreateShopRequest) (*dto.ShopResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	currency := in.Currency
	if currency == "" {
		currency = "COP"
	}
	shop := &entity.Shop{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Currency:  currency,
		Address:   in.Address,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(shop); err != nil {
		return nil, err
	}
	return toShopResponse(shop), nil
}

// GetByID obtiene una tienda por ID.
func (uc *ShopUseCase) GetByID(id string) (*dto.ShopResponse, error) {
	shop, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, nil
	}
	return toShopResponse(shop), nil
}

// List lista tiendas con paginación.
func (uc *ShopUseCase) List(limit, offset int) (*dto.ShopListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ShopResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toShopResponse(s))
	}
	return &dto.ShopListResponse{
		Shops: out,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: len(out)},
	}, nil
}

func toShopResponse(s *entity.Shop) *dto.ShopResponse {
	return &dto.ShopResponse{
		ID:        s.ID,
		Name:      s.Name,
		Currency:  s.Currency,
		Address:   s.Address,
		CreatedAt: s.CreatedAt,
	}
}
