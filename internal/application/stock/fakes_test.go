package stock_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
	"github.com/tu-usuario/tienda-pos/pkg/logger"
)

// testLogger logger silencioso para los tests (solo errores).
func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "error"})
}

// Repositorios en memoria y TxRunner fake para los tests de casos de uso
// (mismo patrón que un store en memoria detrás de los puertos reales).

type memStore struct {
	mu        sync.Mutex
	shops     map[string]*entity.Shop
	products  map[string]*entity.Product
	movements []*entity.StockMovement

	failUpdateStock    bool
	failCreateMovement bool
}

func newMemStore() *memStore {
	return &memStore{
		shops:    make(map[string]*entity.Shop),
		products: make(map[string]*entity.Product),
	}
}

type storeError string

func (e storeError) Error() string { return string(e) }

// --- ProductRepository ---

type memProductRepo struct{ s *memStore }

var _ repository.ProductRepository = (*memProductRepo)(nil)

func copyProduct(p *entity.Product) *entity.Product {
	cp := *p
	return &cp
}

func (r *memProductRepo) Create(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products[p.ID] = copyProduct(p)
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return copyProduct(p), nil
}

func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *memProductRepo) GetByShopAndSKU(shopID, sku string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.ShopID == shopID && p.SKU == sku {
			return copyProduct(p), nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) Update(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products[p.ID] = copyProduct(p)
	return nil
}

func (r *memProductRepo) UpdateStock(productID string, qty decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failUpdateStock {
		return storeError("update stock: fallo simulado")
	}
	p, ok := r.s.products[productID]
	if !ok {
		return storeError("producto inexistente")
	}
	p.StockQuantity = qty
	return nil
}

func (r *memProductRepo) ListByShop(shopID string, limit, offset int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.Product
	for _, p := range r.s.products {
		if p.ShopID == shopID {
			all = append(all, copyProduct(p))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

// --- StockMovementRepository ---

type memMovementRepo struct{ s *memStore }

var _ repository.StockMovementRepository = (*memMovementRepo)(nil)

func copyMovement(m *entity.StockMovement) *entity.StockMovement {
	cm := *m
	return &cm
}

func (r *memMovementRepo) Create(m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failCreateMovement {
		return storeError("create movement: fallo simulado")
	}
	r.s.movements = append(r.s.movements, copyMovement(m))
	return nil
}

func (r *memMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.movements {
		if m.ID == id {
			return copyMovement(m), nil
		}
	}
	return nil, nil
}

func (r *memMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	all, err := r.ListAllByProduct(productID)
	if err != nil {
		return nil, err
	}
	var filtered []*entity.StockMovement
	for _, m := range all {
		if from != nil && m.Date.Before(*from) {
			continue
		}
		if to != nil && m.Date.After(*to) {
			continue
		}
		filtered = append(filtered, m)
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].Date.After(filtered[j].Date) })
	if offset >= len(filtered) {
		return nil, nil
	}
	filtered = filtered[offset:]
	if limit < len(filtered) {
		filtered = filtered[:limit]
	}
	return filtered, nil
}

func (r *memMovementRepo) ListAllByProduct(productID string) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			list = append(list, copyMovement(m))
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.Before(list[j].Date)
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, nil
}

// --- ShopRepository ---

type memShopRepo struct{ s *memStore }

var _ repository.ShopRepository = (*memShopRepo)(nil)

func (r *memShopRepo) Create(shop *entity.Shop) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *shop
	r.s.shops[shop.ID] = &cp
	return nil
}

func (r *memShopRepo) GetByID(id string) (*entity.Shop, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	shop, ok := r.s.shops[id]
	if !ok {
		return nil, nil
	}
	cp := *shop
	return &cp, nil
}

func (r *memShopRepo) List(limit, offset int) ([]*entity.Shop, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.Shop
	for _, s := range r.s.shops {
		cp := *s
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

// --- TxRunner ---

// memTxRunner simula la atomicidad: toma un snapshot del estado antes del callback
// y lo restaura completo si el callback falla (rollback).
type memTxRunner struct{ s *memStore }

func (r *memTxRunner) Run(_ context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	r.s.mu.Lock()
	snapProducts := make(map[string]*entity.Product, len(r.s.products))
	for id, p := range r.s.products {
		snapProducts[id] = copyProduct(p)
	}
	snapMovements := make([]*entity.StockMovement, len(r.s.movements))
	copy(snapMovements, r.s.movements)
	r.s.mu.Unlock()

	err := fn(&memMovementRepo{s: r.s}, &memProductRepo{s: r.s})
	if err != nil {
		r.s.mu.Lock()
		r.s.products = snapProducts
		r.s.movements = snapMovements
		r.s.mu.Unlock()
		return err
	}
	return nil
}
