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

const (
	testShopID    = "00000000-0000-0000-0000-0000000000aa"
	testProductID = "00000000-0000-0000-0000-0000000000bb"
	testUserID    = "00000000-0000-0000-0000-0000000000cc"
)

// newTestEnv arma el store en memoria con una tienda y un producto de referencia:
// caja de 12 unidades de compra, unidad de venta = unidad base (factor 1), stock 0.
func newTestEnv(t *testing.T) (*memStore, *stock.RecordMovementUseCase, *stock.ReconcileUseCase) {
	t.Helper()
	s := newMemStore()
	now := time.Now()
	s.shops[testShopID] = &entity.Shop{ID: testShopID, Name: "Tienda Test", Currency: "COP", CreatedAt: now}
	s.products[testProductID] = &entity.Product{
		ID:                   testProductID,
		ShopID:               testShopID,
		SKU:                  "SKU-1",
		Name:                 "Producto Test",
		BaseUnit:             "unidad",
		PurchaseUnit:         "caja",
		PurchaseUnitSize:     decimal.NewFromInt(12),
		SellingUnit:          "unidad",
		UnitConversionFactor: decimal.NewFromInt(1),
		StockQuantity:        decimal.Zero,
		Active:               true,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	log := testLogger()
	txRunner := &memTxRunner{s: s}
	productRepo := &memProductRepo{s: s}
	movRepo := &memMovementRepo{s: s}
	shopRepo := &memShopRepo{s: s}

	record := stock.NewRecordMovementUseCase(txRunner, productRepo, shopRepo, nil, log)
	reconcile := stock.NewReconcileUseCase(txRunner, productRepo, movRepo, nil, log)
	return s, record, reconcile
}

func currentStock(t *testing.T, s *memStore) decimal.Decimal {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[testProductID].StockQuantity
}

func movementCount(s *memStore) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.movements)
}

// Escenario del libro: recepción de 5 cajas (60 unidades base) y venta de 10 unidades.
func TestRecordReceiptLuegoVenta(t *testing.T) {
	s, record, _ := newTestEnv(t)
	ctx := context.Background()

	res, err := record.RecordReceipt(ctx, stock.ReceiptInput{
		ProductID: testProductID,
		ShopID:    testShopID,
		Quantity:  decimal.NewFromInt(5), // cajas
		UserID:    testUserID,
	})
	require.NoError(t, err)
	assert.True(t, res.NewStock.Equal(decimal.NewFromInt(60)), "5 cajas de 12 = 60 unidades base")
	assert.Equal(t, entity.MovementTypeIN, res.Movement.Type)
	assert.True(t, res.Movement.Quantity.Equal(decimal.NewFromInt(60)), "el movimiento se guarda en unidades base")

	res, err = record.RecordSale(ctx, stock.SaleInput{
		ProductID: testProductID,
		ShopID:    testShopID,
		Quantity:  decimal.NewFromInt(10), // unidades de venta (= base, factor 1)
		UserID:    testUserID,
	})
	require.NoError(t, err)
	assert.True(t, res.NewStock.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, entity.MovementTypeSALE, res.Movement.Type)
	assert.False(t, res.Clamped)

	assert.True(t, currentStock(t, s).Equal(decimal.NewFromInt(50)))
	assert.Equal(t, 2, movementCount(s), "un IN y un SALE en el log")
}

// La conversión de venta respeta el factor del producto (libra = 0.5 kg).
func TestRecordSale_ConvierteUnidadDeVenta(t *testing.T) {
	s, record, _ := newTestEnv(t)
	ctx := context.Background()

	s.mu.Lock()
	s.products[testProductID].BaseUnit = "kg"
	s.products[testProductID].SellingUnit = "libra"
	s.products[testProductID].UnitConversionFactor = decimal.RequireFromString("0.5")
	s.products[testProductID].StockQuantity = decimal.NewFromInt(10)
	s.mu.Unlock()

	res, err := record.RecordSale(ctx, stock.SaleInput{
		ProductID: testProductID,
		ShopID:    testShopID,
		Quantity:  decimal.NewFromInt(4), // libras
		UserID:    testUserID,
	})
	require.NoError(t, err)
	assert.True(t, res.Movement.Quantity.Equal(decimal.NewFromInt(2)), "4 libras = 2 kg")
	assert.True(t, res.NewStock.Equal(decimal.NewFromInt(8)))
}

// Cantidad cero o negativa: rechazo sin movimiento y sin cambio de stock.
func TestRecordMovement_RechazaCantidadNoPositiva(t *testing.T) {
	s, record, _ := newTestEnv(t)
	ctx := context.Background()

	for _, qty := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		_, err := record.RecordMovement(ctx, stock.MovementInput{
			ProductID: testProductID,
			ShopID:    testShopID,
			Type:      entity.MovementTypeIN,
			Quantity:  qty,
			UserID:    testUserID,
		})
		assert.ErrorIs(t, err, domain.ErrNonPositiveQuantity)
	}
	assert.Equal(t, 0, movementCount(s), "no debe quedar ningún movimiento")
	assert.True(t, currentStock(t, s).IsZero(), "el stock no debe cambiar")
}

func TestRecordMovement_RechazaTipoInvalido(t *testing.T) {
	_, record, _ := newTestEnv(t)
	_, err := record.RecordMovement(context.Background(), stock.MovementInput{
		ProductID: testProductID,
		ShopID:    testShopID,
		Type:      "PRESTAMO",
		Quantity:  decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidMovementType)
}

func TestRecordMovement_ProductoInexistente(t *testing.T) {
	_, record, _ := newTestEnv(t)
	_, err := record.RecordMovement(context.Background(), stock.MovementInput{
		ProductID: "no-existe",
		ShopID:    testShopID,
		Type:      entity.MovementTypeIN,
		Quantity:  decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestRecordMovement_TiendaAjena(t *testing.T) {
	_, record, _ := newTestEnv(t)
	_, err := record.RecordMovement(context.Background(), stock.MovementInput{
		ProductID: testProductID,
		ShopID:    "otra-tienda",
		Type:      entity.MovementTypeIN,
		Quantity:  decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Sobreventa: el stock satura en cero (no queda negativo) y el resultado lo reporta.
func TestRecordMovement_SobreventaSaturaEnCero(t *testing.T) {
	s, record, _ := newTestEnv(t)
	ctx := context.Background()

	s.mu.Lock()
	s.products[testProductID].StockQuantity = decimal.NewFromInt(5)
	s.mu.Unlock()

	res, err := record.RecordMovement(ctx, stock.MovementInput{
		ProductID: testProductID,
		ShopID:    testShopID,
		Type:      entity.MovementTypeSALE,
		Quantity:  decimal.NewFromInt(20),
		UserID:    testUserID,
	})
	require.NoError(t, err)
	assert.True(t, res.NewStock.IsZero(), "clamp a cero, no -15")
	assert.True(t, res.Clamped)
	assert.True(t, res.PreviousStock.Equal(decimal.NewFromInt(5)))
	// El movimiento se registra completo: el log conserva la verdad de lo pedido.
	assert.Equal(t, 1, movementCount(s))
}

// Tabla de signos completa: entradas suman, salidas restan.
func TestRecordMovement_TablaDeSignos(t *testing.T) {
	cases := []struct {
		movType  string
		expected int64 // stock esperado partiendo de 100 con cantidad 10
	}{
		{entity.MovementTypeIN, 110},
		{entity.MovementTypeTRANSFER_IN, 110},
		{entity.MovementTypeRETURN, 110},
		{entity.MovementTypeADJUSTMENT_IN, 110},
		{entity.MovementTypeSALE, 90},
		{entity.MovementTypeTRANSFER_OUT, 90},
		{entity.MovementTypeWASTE, 90},
		{entity.MovementTypeADJUSTMENT_OUT, 90},
	}
	for _, tc := range cases {
		t.Run(tc.movType, func(t *testing.T) {
			s, record, _ := newTestEnv(t)
			s.mu.Lock()
			s.products[testProductID].StockQuantity = decimal.NewFromInt(100)
			s.mu.Unlock()

			res, err := record.RecordMovement(context.Background(), stock.MovementInput{
				ProductID: testProductID,
				ShopID:    testShopID,
				Type:      tc.movType,
				Quantity:  decimal.NewFromInt(10),
				UserID:    testUserID,
			})
			require.NoError(t, err)
			assert.True(t, res.NewStock.Equal(decimal.NewFromInt(tc.expected)),
				"stock esperado %d, quedó %s", tc.expected, res.NewStock)
		})
	}
}

// Si el insert del movimiento falla, el update de stock se revierte: nada queda a medias.
func TestRecordMovement_RollbackTodoONada(t *testing.T) {
	s, record, _ := newTestEnv(t)
	ctx := context.Background()

	s.mu.Lock()
	s.products[testProductID].StockQuantity = decimal.NewFromInt(30)
	s.failCreateMovement = true
	s.mu.Unlock()

	_, err := record.RecordMovement(ctx, stock.MovementInput{
		ProductID: testProductID,
		ShopID:    testShopID,
		Type:      entity.MovementTypeSALE,
		Quantity:  decimal.NewFromInt(10),
		UserID:    testUserID,
	})
	require.Error(t, err)
	assert.True(t, currentStock(t, s).Equal(decimal.NewFromInt(30)), "el stock debe quedar intacto")
	assert.Equal(t, 0, movementCount(s), "no debe quedar movimiento huérfano")
}

// Conservación: mientras no haya clamp, la proyección coincide con el fold del log
// después de cada movimiento.
func TestRecordMovement_ConservacionSinClamp(t *testing.T) {
	s, record, reconcile := newTestEnv(t)
	ctx := context.Background()

	steps := []struct {
		movType string
		qty     int64
	}{
		{entity.MovementTypeIN, 100},
		{entity.MovementTypeSALE, 30},
		{entity.MovementTypeRETURN, 5},
		{entity.MovementTypeWASTE, 2},
		{entity.MovementTypeTRANSFER_OUT, 20},
		{entity.MovementTypeADJUSTMENT_IN, 7},
	}
	for _, st := range steps {
		_, err := record.RecordMovement(ctx, stock.MovementInput{
			ProductID: testProductID,
			ShopID:    testShopID,
			Type:      st.movType,
			Quantity:  decimal.NewFromInt(st.qty),
			UserID:    testUserID,
		})
		require.NoError(t, err)

		recomputed, err := reconcile.RecomputeStock(ctx, testProductID)
		require.NoError(t, err)
		assert.True(t, recomputed.Equal(currentStock(t, s)),
			"tras %s la proyección (%s) debe igualar el fold (%s)",
			st.movType, currentStock(t, s), recomputed)
	}
}

// La conversión de recepción falla si el producto tiene factores inválidos.
func TestRecordReceipt_ConfiguracionDeUnidadesInvalida(t *testing.T) {
	s, record, _ := newTestEnv(t)

	s.mu.Lock()
	s.products[testProductID].PurchaseUnitSize = decimal.Zero
	s.mu.Unlock()

	_, err := record.RecordReceipt(context.Background(), stock.ReceiptInput{
		ProductID: testProductID,
		ShopID:    testShopID,
		Quantity:  decimal.NewFromInt(3),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidUnitConfig)
	assert.Equal(t, 0, movementCount(s))
}
