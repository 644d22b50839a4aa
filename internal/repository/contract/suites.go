package contract

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/maxviazov/product-catalog-service/internal/model"
	"github.com/maxviazov/product-catalog-service/internal/repository"
)

// CatalogFactory returns empty repositories backed by the same store.
type CatalogFactory func(t *testing.T) (products repository.ProductRepository, categories repository.CategoryRepository, cleanup func())

type TxFactory func(t *testing.T) (tx repository.TxManager, categories repository.CategoryRepository, cleanup func())

// LocationFactory returns empty country and state repositories backed by the same store.
type LocationFactory func(t *testing.T) (countries repository.CountryRepository, states repository.StateRepository, cleanup func())

type PingerFactory func(t *testing.T) (repository.Pinger, func())

// StickerCategory holds 7 of the 12 fixture products.
const StickerCategory int64 = 5

var fixtureTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// Fixture is the 12 product catalog every backend is checked against.
func Fixture() ([]model.ProductCategory, []model.Product) {
	cats := []model.ProductCategory{
		{ID: 1, CategoryName: "Books"},
		{ID: 2, CategoryName: "Coffee Mugs"},
		{ID: 3, CategoryName: "Mouse Pads"},
		{ID: 4, CategoryName: "Luggage Tags"},
		{ID: 5, CategoryName: "Stickers"},
	}
	mk := func(id int64, cat int64, name string, price float64) model.Product {
		ts := fixtureTime.Add(time.Duration(id) * time.Hour)
		return model.Product{
			ID: id, SKU: "SKU-" + string(rune('A'+id)), Name: name, Description: name,
			UnitPrice: price, Active: true, UnitsInStock: 100, CategoryID: cat,
			DateCreated: ts, LastUpdated: ts,
		}
	}
	prods := []model.Product{
		mk(1, 1, "Go Programming Book", 29.99),
		mk(2, 2, "Coffee Mug Gopher", 12.00),
		mk(3, 5, "Sticker Delta", 2.99),
		mk(4, 5, "Sticker Alpha", 1.99),
		mk(5, 3, "Mouse Pad Classic", 9.50),
		mk(6, 5, "Sticker Golf", 2.99),
		mk(7, 4, "Luggage Tag Blue", 6.00),
		mk(8, 5, "Sticker Bravo", 4.50),
		mk(9, 5, "Sticker Foxtrot", 1.99),
		mk(10, 1, "Python Crash Course Book", 24.99),
		mk(11, 5, "Sticker Echo", 3.25),
		mk(12, 5, "Sticker Charlie", 2.99),
	}
	return cats, prods
}

// Seed inserts the fixture through the repositories under test.
func Seed(t *testing.T, ctx context.Context, products repository.ProductRepository, categories repository.CategoryRepository) {
	t.Helper()
	cats, prods := Fixture()
	for _, c := range cats {
		if _, err := categories.Create(ctx, c); err != nil {
			t.Fatalf("seed category %d: %v", c.ID, err)
		}
	}
	for _, p := range prods {
		if _, err := products.Create(ctx, p); err != nil {
			t.Fatalf("seed product %d: %v", p.ID, err)
		}
	}
}

// Locations is the country and state set every backend is checked against.
// Germany has no states.
func Locations() ([]model.Country, []model.State) {
	countries := []model.Country{
		{ID: 1, Code: "BR", Name: "Brazil"},
		{ID: 2, Code: "CA", Name: "Canada"},
		{ID: 3, Code: "DE", Name: "Germany"},
		{ID: 4, Code: "US", Name: "United States"},
	}
	states := []model.State{
		{ID: 1, Name: "Alberta", CountryID: 2},
		{ID: 2, Name: "Ontario", CountryID: 2},
		{ID: 3, Name: "Quebec", CountryID: 2},
		{ID: 4, Name: "Texas", CountryID: 4},
		{ID: 5, Name: "Alaska", CountryID: 4},
		{ID: 6, Name: "California", CountryID: 4},
		{ID: 7, Name: "Acre", CountryID: 1},
	}
	return countries, states
}

// SeedLocations inserts Locations through the repositories under test.
func SeedLocations(t *testing.T, ctx context.Context, countries repository.CountryRepository, states repository.StateRepository) {
	t.Helper()
	cs, ss := Locations()
	for _, c := range cs {
		if _, err := countries.Create(ctx, c); err != nil {
			t.Fatalf("seed country %s: %v", c.Code, err)
		}
	}
	for _, s := range ss {
		if _, err := states.Create(ctx, s); err != nil {
			t.Fatalf("seed state %d: %v", s.ID, err)
		}
	}
}

func ids(items []model.Product) []int64 {
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func page(idx, size int) repository.PageRequest {
	return repository.PageRequest{PageIndex: idx, PageSize: size, SortKey: repository.DefaultSortKey, SortDirection: repository.SortAsc}
}

func RunProductRepositoryContract(t *testing.T, makeRepo CatalogFactory) {
	t.Helper()

	t.Run("find_by_category_pages", func(t *testing.T) {
		products, categories, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		Seed(t, ctx, products, categories)

		want := map[int][]int64{0: {3, 4, 6}, 1: {8, 9, 11}, 2: {12}, 3: {}}
		for idx := 0; idx <= 3; idx++ {
			res, err := products.Find(ctx, repository.ByCategory(StickerCategory), page(idx, 3))
			if err != nil {
				t.Fatalf("find page %d: %v", idx, err)
			}
			if got := ids(res.Items); !reflect.DeepEqual(got, want[idx]) {
				t.Fatalf("page %d: got %v want %v", idx, got, want[idx])
			}
			if res.TotalItems != 7 || res.TotalPages != 3 {
				t.Fatalf("page %d totals: items=%d pages=%d", idx, res.TotalItems, res.TotalPages)
			}
		}
	})

	t.Run("partition_without_gaps_or_duplicates", func(t *testing.T) {
		products, categories, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		Seed(t, ctx, products, categories)

		for size := 1; size <= 8; size++ {
			seen := map[int64]bool{}
			var total, pages int
			for idx := 0; ; idx++ {
				res, err := products.Find(ctx, repository.ByCategory(StickerCategory), page(idx, size))
				if err != nil {
					t.Fatalf("size %d page %d: %v", size, idx, err)
				}
				total, pages = res.TotalItems, res.TotalPages
				if len(res.Items) == 0 {
					if idx != pages {
						t.Fatalf("size %d: empty page %d before end (pages=%d)", size, idx, pages)
					}
					break
				}
				for _, it := range res.Items {
					if seen[it.ID] {
						t.Fatalf("size %d: duplicate id %d", size, it.ID)
					}
					seen[it.ID] = true
				}
			}
			if len(seen) != total || total != 7 {
				t.Fatalf("size %d: saw %d of %d", size, len(seen), total)
			}
		}
	})

	t.Run("unknown_category_is_empty", func(t *testing.T) {
		products, categories, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		Seed(t, ctx, products, categories)

		res, err := products.Find(ctx, repository.ByCategory(404), page(0, 10))
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if len(res.Items) != 0 || res.TotalItems != 0 || res.TotalPages != 0 {
			t.Fatalf("expected empty result, got %+v", res)
		}
	})

	t.Run("sort_keys_with_id_tiebreak", func(t *testing.T) {
		products, categories, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		Seed(t, ctx, products, categories)

		cases := []struct {
			key  string
			dir  repository.SortDirection
			want []int64
		}{
			{"name", repository.SortAsc, []int64{4, 8, 12, 3, 11, 9, 6}},
			{"name", repository.SortDesc, []int64{6, 9, 11, 3, 12, 8, 4}},
			{"unit_price", repository.SortAsc, []int64{4, 9, 3, 6, 12, 11, 8}},
			{"unit_price", repository.SortDesc, []int64{8, 11, 12, 6, 3, 9, 4}},
			{"id", repository.SortDesc, []int64{12, 11, 9, 8, 6, 4, 3}},
			{"date_created", repository.SortAsc, []int64{3, 4, 6, 8, 9, 11, 12}},
		}
		for _, tc := range cases {
			p := repository.PageRequest{PageIndex: 0, PageSize: 10, SortKey: tc.key, SortDirection: tc.dir}
			res, err := products.Find(ctx, repository.ByCategory(StickerCategory), p)
			if err != nil {
				t.Fatalf("%s %s: %v", tc.key, tc.dir, err)
			}
			if got := ids(res.Items); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("%s %s: got %v want %v", tc.key, tc.dir, got, tc.want)
			}
		}
	})

	t.Run("repeated_calls_are_identical", func(t *testing.T) {
		products, categories, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		Seed(t, ctx, products, categories)

		p := repository.PageRequest{PageIndex: 1, PageSize: 2, SortKey: "unit_price", SortDirection: repository.SortAsc}
		first, err := products.Find(ctx, repository.ByCategory(StickerCategory), p)
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		for i := 0; i < 5; i++ {
			again, err := products.Find(ctx, repository.ByCategory(StickerCategory), p)
			if err != nil {
				t.Fatalf("find again: %v", err)
			}
			if !reflect.DeepEqual(ids(first.Items), ids(again.Items)) || first.TotalItems != again.TotalItems {
				t.Fatalf("non deterministic: %v vs %v", ids(first.Items), ids(again.Items))
			}
		}
	})

	t.Run("search_by_name_ignores_case", func(t *testing.T) {
		products, categories, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		Seed(t, ctx, products, categories)

		res, err := products.Find(ctx, repository.ByNameContaining("BOOK"), page(0, 10))
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if got := ids(res.Items); !reflect.DeepEqual(got, []int64{1, 10}) {
			t.Fatalf("unexpected search result %v", got)
		}

		res, err = products.Find(ctx, repository.ByNameContaining("100%"), page(0, 10))
		if err != nil {
			t.Fatalf("search wildcard: %v", err)
		}
		if res.TotalItems != 0 {
			t.Fatalf("wildcard must be literal, got %v", ids(res.Items))
		}
	})

	t.Run("get_and_not_found", func(t *testing.T) {
		products, categories, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		Seed(t, ctx, products, categories)

		got, err := products.GetByID(ctx, 8)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Name != "Sticker Bravo" || got.CategoryID != StickerCategory {
			t.Fatalf("mismatch: %+v", got)
		}
		if _, err := products.GetByID(ctx, 999999); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("create_duplicate_and_orphan", func(t *testing.T) {
		products, categories, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		Seed(t, ctx, products, categories)

		_, prods := Fixture()
		if _, err := products.Create(ctx, prods[0]); !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
		orphan := model.Product{ID: 500, SKU: "ORPHAN", Name: "Orphan", CategoryID: 77, DateCreated: fixtureTime, LastUpdated: fixtureTime}
		if _, err := products.Create(ctx, orphan); !errors.Is(err, repository.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})
}

func RunCategoryRepositoryContract(t *testing.T, makeRepo CatalogFactory) {
	t.Helper()

	t.Run("list_sorted_and_paged", func(t *testing.T) {
		products, categories, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		Seed(t, ctx, products, categories)

		p := repository.PageRequest{PageIndex: 0, PageSize: 2, SortKey: "category_name", SortDirection: repository.SortAsc}
		res, err := categories.List(ctx, p)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(res.Items) != 2 || res.Items[0].CategoryName != "Books" || res.Items[1].CategoryName != "Coffee Mugs" {
			t.Fatalf("unexpected first page: %+v", res.Items)
		}
		if res.TotalItems != 5 || res.TotalPages != 3 || !res.HasNext {
			t.Fatalf("unexpected totals: %+v", res)
		}

		p.PageIndex = 3
		res, err = categories.List(ctx, p)
		if err != nil {
			t.Fatalf("list past end: %v", err)
		}
		if len(res.Items) != 0 || res.TotalItems != 5 {
			t.Fatalf("expected empty page with totals, got %+v", res)
		}
	})

	t.Run("get_not_found_and_duplicate", func(t *testing.T) {
		_, categories, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		if _, err := categories.Create(ctx, model.ProductCategory{ID: 1, CategoryName: "Books"}); err != nil {
			t.Fatalf("create: %v", err)
		}
		got, err := categories.GetByID(ctx, 1)
		if err != nil || got.CategoryName != "Books" {
			t.Fatalf("get: %+v %v", got, err)
		}
		if _, err := categories.GetByID(ctx, 2); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if _, err := categories.Create(ctx, model.ProductCategory{ID: 1, CategoryName: "Again"}); !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})
}

func RunLocationRepositoryContract(t *testing.T, makeRepo LocationFactory) {
	t.Helper()

	t.Run("countries_sorted_and_paged", func(t *testing.T) {
		countries, states, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		SeedLocations(t, ctx, countries, states)

		p := repository.PageRequest{PageIndex: 0, PageSize: 2, SortKey: "name", SortDirection: repository.SortDesc}
		res, err := countries.List(ctx, p)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(res.Items) != 2 || res.Items[0].Code != "US" || res.Items[1].Code != "DE" {
			t.Fatalf("unexpected first page: %+v", res.Items)
		}
		if res.TotalItems != 4 || res.TotalPages != 2 || !res.HasNext {
			t.Fatalf("unexpected totals: %+v", res)
		}

		p.PageIndex = 2
		res, err = countries.List(ctx, p)
		if err != nil {
			t.Fatalf("list past end: %v", err)
		}
		if len(res.Items) != 0 || res.TotalItems != 4 {
			t.Fatalf("expected empty page with totals, got %+v", res)
		}
	})

	t.Run("states_by_country_code", func(t *testing.T) {
		countries, states, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		SeedLocations(t, ctx, countries, states)

		p := repository.PageRequest{PageIndex: 0, PageSize: 2, SortKey: "name", SortDirection: repository.SortAsc}
		res, err := states.ListByCountryCode(ctx, "US", p)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(res.Items) != 2 || res.Items[0].Name != "Alaska" || res.Items[1].Name != "California" {
			t.Fatalf("unexpected first page: %+v", res.Items)
		}
		if res.TotalItems != 3 || res.TotalPages != 2 {
			t.Fatalf("unexpected totals: %+v", res)
		}

		p.PageIndex = 1
		res, err = states.ListByCountryCode(ctx, "US", p)
		if err != nil {
			t.Fatalf("list page 1: %v", err)
		}
		if len(res.Items) != 1 || res.Items[0].ID != 4 || res.Items[0].CountryID != 4 {
			t.Fatalf("unexpected second page: %+v", res.Items)
		}

		for _, code := range []string{"DE", "ZZ"} {
			res, err := states.ListByCountryCode(ctx, code, page(0, 10))
			if err != nil {
				t.Fatalf("%s: %v", code, err)
			}
			if len(res.Items) != 0 || res.TotalItems != 0 || res.TotalPages != 0 {
				t.Fatalf("%s: expected empty result, got %+v", code, res)
			}
		}
	})

	t.Run("duplicate_code_and_orphan_state", func(t *testing.T) {
		countries, states, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		SeedLocations(t, ctx, countries, states)

		if _, err := countries.Create(ctx, model.Country{ID: 9, Code: "US", Name: "Again"}); !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
		if _, err := states.Create(ctx, model.State{ID: 90, Name: "Nowhere", CountryID: 77}); !errors.Is(err, repository.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})
}

func RunTxManagerContract(t *testing.T, makeTx TxFactory) {
	t.Helper()

	t.Run("commit_on_nil_error", func(t *testing.T) {
		tx, categories, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			_, err := categories.Create(ctx, model.ProductCategory{ID: 41, CategoryName: "TxCommit"})
			return err
		})
		if err != nil {
			t.Fatalf("WithinTx: %v", err)
		}
		if _, err := categories.GetByID(ctx, 41); err != nil {
			t.Fatalf("expected committed row visible, got err=%v", err)
		}
	})

	t.Run("rollback_on_error", func(t *testing.T) {
		tx, categories, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		errMarker := errors.New("boom")
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			if _, err := categories.Create(ctx, model.ProductCategory{ID: 42, CategoryName: "TxRollback"}); err != nil {
				return err
			}
			return errMarker
		})
		if !errors.Is(err, errMarker) {
			t.Fatalf("expected marker error, got %v", err)
		}
		if _, err := categories.GetByID(ctx, 42); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound after rollback, got %v", err)
		}
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()
	t.Run("ping_ok", func(t *testing.T) {
		p, cleanup := makePinger(t)
		t.Cleanup(cleanup)
		if err := p.Ping(context.Background()); err != nil {
			t.Fatalf("expected ping ok, got %v", err)
		}
	})
}
