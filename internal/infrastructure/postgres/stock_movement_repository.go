package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, product_id, shop_id, type, quantity, batch_number, expiry_date,
		counterparty_id, reference, notes, date, created_at, created_by`

// StockMovementRepo implementación append-only sobre PostgreSQL (usable con pool o tx).
// El puerto no expone update ni delete: el log de movimientos es inmutable.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var batch, counterparty, reference, notes, createdBy *string
	err := row.Scan(
		&m.ID, &m.ProductID, &m.ShopID, &m.Type, &m.Quantity, &batch, &m.ExpiryDate,
		&counterparty, &reference, &notes, &m.Date, &m.CreatedAt, &createdBy,
	)
	if err != nil {
		return nil, err
	}
	if batch != nil {
		m.BatchNumber = *batch
	}
	if counterparty != nil {
		m.CounterpartyID = *counterparty
	}
	if reference != nil {
		m.Reference = *reference
	}
	if notes != nil {
		m.Notes = *notes
	}
	if createdBy != nil {
		m.CreatedBy = *createdBy
	}
	return &m, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Create persiste un movimiento de stock.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, shop_id, type, quantity, batch_number,
			expiry_date, counterparty_id, reference, notes, date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.ShopID, movement.Type, movement.Quantity,
		nullable(movement.BatchNumber), movement.ExpiryDate, nullable(movement.CounterpartyID),
		nullable(movement.Reference), nullable(movement.Notes), movement.Date,
		movement.CreatedAt, nullable(movement.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// ListByProduct lista movimientos de un producto en un rango de fechas, paginado,
// del más reciente al más antiguo.
func (r *StockMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE product_id = $1`
	args := []any{productID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND date >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND date <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY date DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list by product: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// ListAllByProduct devuelve el historial completo en orden cronológico (date, created_at).
// Usa el índice (product_id, date); es el scan de la reconciliación.
func (r *StockMovementRepo) ListAllByProduct(productID string) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + `
		FROM stock_movements WHERE product_id = $1 ORDER BY date ASC, created_at ASC`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list all by product: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
