package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
)

var _ repository.ShopRepository = (*ShopRepo)(nil)

// ShopRepo implementación del puerto ShopRepository sobre PostgreSQL.
type ShopRepo struct {
	q Querier
}

// NewShopRepository construye el adaptador. Pasar pool o tx (Querier).
func NewShopRepository(q Querier) *ShopRepo {
	return &ShopRepo{q: q}
}

// Create persiste una tienda.
func (r *ShopRepo) Create(shop *entity.Shop) error {
	query := `
		INSERT INTO shops (id, name, currency, address, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		shop.ID, shop.Name, shop.Currency, shop.Address, shop.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert shop: %w", err)
	}
	return nil
}

// GetByID obtiene una tienda por ID.
func (r *ShopRepo) GetByID(id string) (*entity.Shop, error) {
	query := `SELECT id, name, currency, address, created_at FROM shops WHERE id = $1`
	var s entity.Shop
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Name, &s.Currency, &s.Address, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shop: %w", err)
	}
	return &s, nil
}

// List lista tiendas con paginación.
func (r *ShopRepo) List(limit, offset int) ([]*entity.Shop, error) {
	query := `SELECT id, name, currency, address, created_at FROM shops ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}
	defer rows.Close()
	var list []*entity.Shop
	for rows.Next() {
		var s entity.Shop
		if err := rows.Scan(&s.ID, &s.Name, &s.Currency, &s.Address, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan shop: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
