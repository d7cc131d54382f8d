package repository

import "github.com/tu-usuario/tienda-pos/internal/domain/entity"

// ShopRepository define el puerto de persistencia para Shop (DIP).
type ShopRepository interface {
	Create(shop *entity.Shop) error
	GetByID(id string) (*entity.Shop, error)
	List(limit, offset int) ([]*entity.Shop, error)
}
