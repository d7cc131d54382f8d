package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, shop_id, sku, name, base_unit, purchase_unit, purchase_unit_size,
		selling_unit, unit_conversion_factor, cost_price_per_base, selling_price_per_base,
		stock_quantity, active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.ShopID, &p.SKU, &p.Name, &p.BaseUnit, &p.PurchaseUnit, &p.PurchaseUnitSize,
		&p.SellingUnit, &p.UnitConversionFactor, &p.CostPricePerBase, &p.SellingPricePerBase,
		&p.StockQuantity, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto. StockQuantity inicia en 0.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, shop_id, sku, name, base_unit, purchase_unit, purchase_unit_size,
			selling_unit, unit_conversion_factor, cost_price_per_base, selling_price_per_base,
			stock_quantity, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.ShopID, product.SKU, product.Name, product.BaseUnit,
		product.PurchaseUnit, product.PurchaseUnitSize, product.SellingUnit,
		product.UnitConversionFactor, product.CostPricePerBase, product.SellingPricePerBase,
		product.StockQuantity, product.Active, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByShopAndSKU obtiene un producto por tienda y SKU.
func (r *ProductRepo) GetByShopAndSKU(shopID, sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE shop_id = $1 AND sku = $2`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, shopID, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return p, nil
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
// Serializa escritores concurrentes sobre el mismo producto dentro de la tx.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product for update: %w", err)
	}
	return p, nil
}

// Update actualiza un producto existente. No toca stock_quantity: eso se maneja vía
// movimientos y reconciliación (UpdateStock).
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, purchase_unit = $3, purchase_unit_size = $4,
			selling_unit = $5, unit_conversion_factor = $6, cost_price_per_base = $7,
			selling_price_per_base = $8, active = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.PurchaseUnit, product.PurchaseUnitSize,
		product.SellingUnit, product.UnitConversionFactor, product.CostPricePerBase,
		product.SellingPricePerBase, product.Active, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// UpdateStock sobreescribe la proyección stock_quantity (unidades base).
// Solo debe llamarse dentro de la transacción del registro de movimientos o de la
// reconciliación, con la fila ya bloqueada.
func (r *ProductRepo) UpdateStock(productID string, qty decimal.Decimal) error {
	query := `UPDATE products SET stock_quantity = $2, updated_at = now() WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, productID, qty)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// ListByShop lista productos de una tienda con paginación.
func (r *ProductRepo) ListByShop(shopID string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products WHERE shop_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, shopID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
