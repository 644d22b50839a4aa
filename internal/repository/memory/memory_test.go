package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/product-catalog-service/internal/model"
	"github.com/maxviazov/product-catalog-service/internal/repository"
	"github.com/maxviazov/product-catalog-service/internal/repository/contract"
)

func makeCatalog(t *testing.T) (repository.ProductRepository, repository.CategoryRepository, func()) {
	db := New()
	return NewProductRepository(db), NewCategoryRepository(db), func() {}
}

func makeLocations(t *testing.T) (repository.CountryRepository, repository.StateRepository, func()) {
	db := New()
	return NewCountryRepository(db), NewStateRepository(db), func() {}
}

func makeTx(t *testing.T) (repository.TxManager, repository.CategoryRepository, func()) {
	db := New()
	return NewTxManager(db), NewCategoryRepository(db), func() {}
}

func makePinger(t *testing.T) (repository.Pinger, func()) {
	return NewStore().Pinger, func() {}
}

func TestProductRepository_MemoryContract(t *testing.T) {
	contract.RunProductRepositoryContract(t, makeCatalog)
}

func TestCategoryRepository_MemoryContract(t *testing.T) {
	contract.RunCategoryRepositoryContract(t, makeCatalog)
}

func TestLocationRepository_MemoryContract(t *testing.T) {
	contract.RunLocationRepositoryContract(t, makeLocations)
}

func TestTxManager_MemoryContract(t *testing.T) {
	contract.RunTxManagerContract(t, makeTx)
}

func TestTxManager_RollbackRestoresEveryCollection(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.Tx.WithinTx(ctx, func(ctx context.Context) error {
		contract.Seed(t, ctx, store.Products, store.Categories)
		contract.SeedLocations(t, ctx, store.Countries, store.States)
		return boom
	})
	require.ErrorIs(t, err, boom)

	cats, err := store.Categories.List(ctx, repository.PageRequest{PageSize: 10})
	require.NoError(t, err)
	assert.Zero(t, cats.TotalItems)
	prods, err := store.Products.Find(ctx, repository.ProductFilter{}, repository.PageRequest{PageSize: 10})
	require.NoError(t, err)
	assert.Zero(t, prods.TotalItems)
	countries, err := store.Countries.List(ctx, repository.PageRequest{PageSize: 10})
	require.NoError(t, err)
	assert.Zero(t, countries.TotalItems)
	states, err := store.States.ListByCountryCode(ctx, "US", repository.PageRequest{PageSize: 10})
	require.NoError(t, err)
	assert.Zero(t, states.TotalItems)
}

func TestTxManager_NestedCallJoinsOuter(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	err := store.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := store.Categories.Create(ctx, model.ProductCategory{ID: 1, CategoryName: "Outer"}); err != nil {
			return err
		}
		inner := store.Tx.WithinTx(ctx, func(ctx context.Context) error {
			_, err := store.Categories.Create(ctx, model.ProductCategory{ID: 2, CategoryName: "Inner"})
			return err
		})
		require.NoError(t, inner)
		return errors.New("outer fails")
	})
	require.Error(t, err)

	_, err = store.Categories.GetByID(ctx, 2)
	assert.ErrorIs(t, err, repository.ErrNotFound, "inner write rolls back with the outer transaction")
}

func TestPinger_MemoryContract(t *testing.T) {
	contract.RunPingerContract(t, makePinger)
}

func TestFind_CanceledContextIsUnavailable(t *testing.T) {
	products, _, _ := makeCatalog(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := products.Find(ctx, repository.ByCategory(1), repository.PageRequest{PageSize: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrStoreUnavailable))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestFind_ConcurrentReadersWithWriter(t *testing.T) {
	products, categories, _ := makeCatalog(t)
	ctx := context.Background()
	contract.Seed(t, ctx, products, categories)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := int64(100); i < 200; i++ {
			_, _ = products.Create(ctx, model.Product{ID: i, CategoryID: contract.StickerCategory, Name: "Late"})
		}
	}()
	for r := 0; r < 8; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				res, err := products.Find(ctx, repository.ByCategory(contract.StickerCategory), repository.PageRequest{PageIndex: 0, PageSize: 1000})
				if err != nil {
					t.Errorf("find: %v", err)
					return
				}
				// A single call sees one consistent snapshot.
				if len(res.Items) != res.TotalItems {
					t.Errorf("items=%d total=%d", len(res.Items), res.TotalItems)
					return
				}
			}
		}()
	}
	wg.Wait()
}
