package stock_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/tienda-pos/internal/application/stock"
	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
)

// memStockCache caché en memoria que cuenta hits para verificar el read-through.
type memStockCache struct {
	values map[string]decimal.Decimal
	hits   int
	misses int
}

var _ stock.StockCache = (*memStockCache)(nil)

func newMemStockCache() *memStockCache {
	return &memStockCache{values: make(map[string]decimal.Decimal)}
}

func (c *memStockCache) Get(_ context.Context, productID string) (decimal.Decimal, bool, error) {
	qty, ok := c.values[productID]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return qty, ok, nil
}

func (c *memStockCache) Set(_ context.Context, productID string, qty decimal.Decimal) error {
	c.values[productID] = qty
	return nil
}

func (c *memStockCache) Invalidate(_ context.Context, productID string) error {
	delete(c.values, productID)
	return nil
}

func TestGetCurrentStock_ReadThrough(t *testing.T) {
	s, _, _ := newTestEnv(t)
	ctx := context.Background()

	s.mu.Lock()
	s.products[testProductID].StockQuantity = decimal.NewFromInt(42)
	s.mu.Unlock()

	cache := newMemStockCache()
	queryUC := stock.NewStockQueryUseCase(&memProductRepo{s: s}, &memMovementRepo{s: s}, cache)

	// Primera lectura: miss, va a la DB y puebla la caché.
	got, err := queryUC.GetCurrentStock(ctx, testProductID)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(42)))
	assert.Equal(t, 1, cache.misses)
	assert.Equal(t, 0, cache.hits)

	// Segunda lectura: hit, no toca la DB.
	got, err = queryUC.GetCurrentStock(ctx, testProductID)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(42)))
	assert.Equal(t, 1, cache.hits)
}

// Registrar un movimiento invalida la caché: la siguiente lectura ve el stock nuevo.
func TestGetCurrentStock_InvalidacionTrasMovimiento(t *testing.T) {
	s, _, _ := newTestEnv(t)
	ctx := context.Background()

	cache := newMemStockCache()
	log := testLogger()
	recordUC := stock.NewRecordMovementUseCase(&memTxRunner{s: s}, &memProductRepo{s: s}, &memShopRepo{s: s}, cache, log)
	queryUC := stock.NewStockQueryUseCase(&memProductRepo{s: s}, &memMovementRepo{s: s}, cache)

	got, err := queryUC.GetCurrentStock(ctx, testProductID)
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = recordUC.RecordMovement(ctx, stock.MovementInput{
		ProductID: testProductID,
		ShopID:    testShopID,
		Type:      entity.MovementTypeIN,
		Quantity:  decimal.NewFromInt(30),
		UserID:    testUserID,
	})
	require.NoError(t, err)

	got, err = queryUC.GetCurrentStock(ctx, testProductID)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(30)),
		"tras el movimiento la caché debe estar invalidada y la lectura ver el stock nuevo")
}

func TestGetCurrentStock_ProductoInexistente(t *testing.T) {
	s, _, _ := newTestEnv(t)
	queryUC := stock.NewStockQueryUseCase(&memProductRepo{s: s}, &memMovementRepo{s: s}, newMemStockCache())

	_, err := queryUC.GetCurrentStock(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestListMovements_RangoDeFechasYPaginacion(t *testing.T) {
	s, record, _ := newTestEnv(t)
	ctx := context.Background()
	queryUC := stock.NewStockQueryUseCase(&memProductRepo{s: s}, &memMovementRepo{s: s}, nil)

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		d := base.AddDate(0, 0, i)
		_, err := record.RecordMovement(ctx, stock.MovementInput{
			ProductID: testProductID,
			ShopID:    testShopID,
			Type:      entity.MovementTypeIN,
			Quantity:  decimal.NewFromInt(int64(i + 1)),
			UserID:    testUserID,
			Date:      &d,
		})
		require.NoError(t, err)
	}

	// Rango que cubre los días 2 a 4 (tres movimientos).
	from := base.AddDate(0, 0, 1)
	to := base.AddDate(0, 0, 3)
	list, err := queryUC.ListMovements(ctx, testProductID, &from, &to, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	// Orden descendente por fecha: el más reciente primero.
	assert.True(t, list[0].Date.After(list[1].Date))
	assert.True(t, list[1].Date.After(list[2].Date))

	// Paginación dentro del rango completo.
	page, err := queryUC.ListMovements(ctx, testProductID, nil, nil, 2, 0)
	require.NoError(t, err)
	assert.Len(t, page, 2)
	page, err = queryUC.ListMovements(ctx, testProductID, nil, nil, 2, 4)
	require.NoError(t, err)
	assert.Len(t, page, 1)
}
