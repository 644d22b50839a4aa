// Package memory is an in-process store used for local runs, the CLI and tests.
// Every read happens under one read lock, so totals and pages always agree.
package memory

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/maxviazov/product-catalog-service/internal/model"
	"github.com/maxviazov/product-catalog-service/internal/repository"
)

// DB holds the collections shared by the memory repositories.
type DB struct {
	mu         sync.RWMutex
	products   map[int64]model.Product
	categories map[int64]model.ProductCategory
	countries  map[int64]model.Country
	states     map[int64]model.State
}

// New returns an empty database.
func New() *DB {
	return &DB{
		products:   map[int64]model.Product{},
		categories: map[int64]model.ProductCategory{},
		countries:  map[int64]model.Country{},
		states:     map[int64]model.State{},
	}
}

// snapshot is a copy of every collection, taken under the read lock.
type snapshot struct {
	products   map[int64]model.Product
	categories map[int64]model.ProductCategory
	countries  map[int64]model.Country
	states     map[int64]model.State
}

func (db *DB) snapshot() snapshot {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return snapshot{
		products:   maps.Clone(db.products),
		categories: maps.Clone(db.categories),
		countries:  maps.Clone(db.countries),
		states:     maps.Clone(db.states),
	}
}

func (db *DB) restore(s snapshot) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.products, db.categories, db.countries, db.states = s.products, s.categories, s.countries, s.states
}

// NewStore wires every repository over a fresh DB.
func NewStore() repository.Store {
	db := New()
	return repository.Store{
		Products:   NewProductRepository(db),
		Categories: NewCategoryRepository(db),
		Countries:  NewCountryRepository(db),
		States:     NewStateRepository(db),
		Tx:         NewTxManager(db),
		Pinger:     pinger{},
		Close:      func() error { return nil },
	}
}

type pinger struct{}

func (pinger) Ping(ctx context.Context) error { return ctx.Err() }

type txKey struct{}

// txManager snapshots the DB before fn and puts the snapshot back when fn fails.
// Transactions run one at a time; writes made outside a transaction while one
// is rolling back are discarded with it.
type txManager struct {
	db *DB
	mu sync.Mutex
}

func NewTxManager(db *DB) repository.TxManager { return &txManager{db: db} }

func (m *txManager) WithinTx(ctx context.Context, fn repository.TxFunc) error {
	// Nested calls join the outer transaction.
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	before := m.db.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, m)); err != nil {
		m.db.restore(before)
		return err
	}
	return nil
}

var productOrder = map[string]func(a, b model.Product) int{
	"id":             func(a, b model.Product) int { return cmp.Compare(a.ID, b.ID) },
	"sku":            func(a, b model.Product) int { return strings.Compare(a.SKU, b.SKU) },
	"name":           func(a, b model.Product) int { return strings.Compare(a.Name, b.Name) },
	"unit_price":     func(a, b model.Product) int { return cmp.Compare(a.UnitPrice, b.UnitPrice) },
	"units_in_stock": func(a, b model.Product) int { return cmp.Compare(a.UnitsInStock, b.UnitsInStock) },
	"date_created":   func(a, b model.Product) int { return a.DateCreated.Compare(b.DateCreated) },
	"last_updated":   func(a, b model.Product) int { return a.LastUpdated.Compare(b.LastUpdated) },
}

var categoryOrder = map[string]func(a, b model.ProductCategory) int{
	"id":            func(a, b model.ProductCategory) int { return cmp.Compare(a.ID, b.ID) },
	"category_name": func(a, b model.ProductCategory) int { return strings.Compare(a.CategoryName, b.CategoryName) },
}

var countryOrder = map[string]func(a, b model.Country) int{
	"id":   func(a, b model.Country) int { return cmp.Compare(a.ID, b.ID) },
	"code": func(a, b model.Country) int { return strings.Compare(a.Code, b.Code) },
	"name": func(a, b model.Country) int { return strings.Compare(a.Name, b.Name) },
}

var stateOrder = map[string]func(a, b model.State) int{
	"id":   func(a, b model.State) int { return cmp.Compare(a.ID, b.ID) },
	"name": func(a, b model.State) int { return strings.Compare(a.Name, b.Name) },
}

// orderBy builds a total order: the requested key first, then id, both in the requested direction.
func orderBy[T any](keys map[string]func(a, b T) int, p repository.PageRequest, id func(T) int64) func(a, b T) int {
	by, ok := keys[p.SortKey]
	if !ok {
		by = keys[repository.DefaultSortKey]
	}
	return func(a, b T) int {
		c := by(a, b)
		if c == 0 {
			c = cmp.Compare(id(a), id(b))
		}
		if p.Desc() {
			return -c
		}
		return c
	}
}

func productID(p model.Product) int64          { return p.ID }
func categoryID(c model.ProductCategory) int64 { return c.ID }
func countryID(c model.Country) int64          { return c.ID }
func stateID(s model.State) int64              { return s.ID }

func (db *DB) findProducts(f repository.ProductFilter, p repository.PageRequest) repository.PageResult[model.Product] {
	db.mu.RLock()
	matched := make([]model.Product, 0, len(db.products))
	for _, it := range db.products {
		if f.Matches(it) {
			matched = append(matched, it)
		}
	}
	db.mu.RUnlock()

	slices.SortFunc(matched, orderBy(productOrder, p, productID))
	return repository.Paginate(matched, p)
}

func (db *DB) listCategories(p repository.PageRequest) repository.PageResult[model.ProductCategory] {
	db.mu.RLock()
	all := make([]model.ProductCategory, 0, len(db.categories))
	for _, c := range db.categories {
		all = append(all, c)
	}
	db.mu.RUnlock()

	slices.SortFunc(all, orderBy(categoryOrder, p, categoryID))
	return repository.Paginate(all, p)
}

func (db *DB) listCountries(p repository.PageRequest) repository.PageResult[model.Country] {
	db.mu.RLock()
	all := slices.Collect(maps.Values(db.countries))
	db.mu.RUnlock()

	slices.SortFunc(all, orderBy(countryOrder, p, countryID))
	return repository.Paginate(all, p)
}

func (db *DB) statesOf(code string, p repository.PageRequest) repository.PageResult[model.State] {
	db.mu.RLock()
	var matched []model.State
	for _, c := range db.countries {
		if c.Code != code {
			continue
		}
		for _, s := range db.states {
			if s.CountryID == c.ID {
				matched = append(matched, s)
			}
		}
	}
	db.mu.RUnlock()

	slices.SortFunc(matched, orderBy(stateOrder, p, stateID))
	return repository.Paginate(matched, p)
}
