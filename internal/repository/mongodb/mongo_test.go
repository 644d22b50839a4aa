package mongodb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/maxviazov/product-catalog-service/internal/model"
	"github.com/maxviazov/product-catalog-service/internal/repository"
)

func productDoc(id int64, name string, price float64) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: name},
		{Key: "unit_price", Value: price},
		{Key: "category_id", Value: int64(5)},
		{Key: "active", Value: true},
	}
}

func TestSortDoc(t *testing.T) {
	tests := []struct {
		name string
		p    repository.PageRequest
		want bson.D
	}{
		{"default id", repository.PageRequest{SortKey: "id"}, bson.D{{Key: "_id", Value: 1}}},
		{"name desc", repository.PageRequest{SortKey: "name", SortDirection: repository.SortDesc},
			bson.D{{Key: "name", Value: -1}, {Key: "_id", Value: -1}}},
		{"unknown key", repository.PageRequest{SortKey: "$where"}, bson.D{{Key: "_id", Value: 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sortDoc(tt.p, repository.ProductSortFields))
		})
	}
}

func TestProductMatch(t *testing.T) {
	m := productMatch(repository.ByCategory(5))
	assert.Equal(t, bson.M{"category_id": int64(5)}, m)

	m = productMatch(repository.ByNameContaining("c++"))
	assert.Equal(t, primitive.Regex{Pattern: `c\+\+`, Options: "i"}, m["name"])
}

func TestProductRepository_Mock(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("find returns page and facet total", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "catalog.product", mtest.FirstBatch, bson.D{
			{Key: "items", Value: bson.A{productDoc(3, "Sticker Delta", 2.99), productDoc(4, "Sticker Alpha", 1.99), productDoc(6, "Sticker Golf", 2.99)}},
			{Key: "total", Value: bson.A{bson.D{{Key: "n", Value: 7}}}},
		}))

		res, err := NewProductRepository(mt.DB).Find(context.Background(), repository.ByCategory(5),
			repository.PageRequest{PageIndex: 0, PageSize: 3, SortKey: "id"})
		require.NoError(mt, err)
		require.Len(mt, res.Items, 3)
		assert.Equal(mt, int64(4), res.Items[1].ID)
		assert.Equal(mt, 7, res.TotalItems)
		assert.Equal(mt, 3, res.TotalPages)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "aggregate", started.CommandName)
	})

	mt.Run("empty facet yields empty page", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "catalog.product", mtest.FirstBatch, bson.D{
			{Key: "items", Value: bson.A{}},
			{Key: "total", Value: bson.A{}},
		}))

		res, err := NewProductRepository(mt.DB).Find(context.Background(), repository.ByCategory(404),
			repository.PageRequest{PageSize: 10})
		require.NoError(mt, err)
		assert.NotNil(mt, res.Items)
		assert.Empty(mt, res.Items)
		assert.Equal(mt, 0, res.TotalItems)
		assert.Equal(mt, 0, res.TotalPages)
	})

	mt.Run("command error is unavailable", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Name: "BadValue", Message: "bad"}))

		_, err := NewProductRepository(mt.DB).Find(context.Background(), repository.ByCategory(5), repository.PageRequest{PageSize: 3})
		assert.ErrorIs(mt, err, repository.ErrStoreUnavailable)
	})

	mt.Run("get missing is not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "catalog.product", mtest.FirstBatch))

		_, err := NewProductRepository(mt.DB).GetByID(context.Background(), 99)
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("create duplicate", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "catalog.product_category", mtest.FirstBatch, bson.D{{Key: "n", Value: 1}}),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key error"}),
		)

		_, err := NewProductRepository(mt.DB).Create(context.Background(), model.Product{ID: 3, CategoryID: 5, Name: "Sticker Delta"})
		assert.ErrorIs(mt, err, repository.ErrAlreadyExists)
	})

	mt.Run("create orphan", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "catalog.product_category", mtest.FirstBatch))

		_, err := NewProductRepository(mt.DB).Create(context.Background(), model.Product{ID: 500, CategoryID: 77, Name: "Orphan"})
		assert.ErrorIs(mt, err, repository.ErrConflict)
	})

	mt.Run("create ok", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "catalog.product_category", mtest.FirstBatch, bson.D{{Key: "n", Value: 1}}),
			mtest.CreateSuccessResponse(),
		)

		got, err := NewProductRepository(mt.DB).Create(context.Background(), model.Product{ID: 30, CategoryID: 5, Name: "Sticker Hotel"})
		require.NoError(mt, err)
		assert.Equal(mt, int64(30), got.ID)
	})
}

func TestCategoryRepository_Mock(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("list", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "catalog.product_category", mtest.FirstBatch, bson.D{
			{Key: "items", Value: bson.A{
				bson.D{{Key: "_id", Value: int64(1)}, {Key: "category_name", Value: "Books"}},
				bson.D{{Key: "_id", Value: int64(2)}, {Key: "category_name", Value: "Coffee Mugs"}},
			}},
			{Key: "total", Value: bson.A{bson.D{{Key: "n", Value: 5}}}},
		}))

		res, err := NewCategoryRepository(mt.DB).List(context.Background(),
			repository.PageRequest{PageSize: 2, SortKey: "category_name"})
		require.NoError(mt, err)
		require.Len(mt, res.Items, 2)
		assert.Equal(mt, "Books", res.Items[0].CategoryName)
		assert.Equal(mt, 3, res.TotalPages)
		assert.True(mt, res.HasNext)
	})

	mt.Run("create duplicate", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key error"}))

		_, err := NewCategoryRepository(mt.DB).Create(context.Background(), model.ProductCategory{ID: 1, CategoryName: "Books"})
		assert.ErrorIs(mt, err, repository.ErrAlreadyExists)
	})
}

func TestStatesPipeline_LooksUpCountryBeforeFacet(t *testing.T) {
	p := statesPipeline("US", repository.PageRequest{PageSize: 2, SortKey: "name"})
	require.Len(t, p, 5)
	assert.Equal(t, "$lookup", p[0][0].Key)
	assert.Equal(t, bson.M{"country.code": "US"}, p[1][0].Value)
	assert.Equal(t, "$facet", p[4][0].Key)
}

func TestLocationRepositories_Mock(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("states by country code", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "catalog.state", mtest.FirstBatch, bson.D{
			{Key: "items", Value: bson.A{
				bson.D{{Key: "_id", Value: int64(5)}, {Key: "name", Value: "Alaska"}, {Key: "country_id", Value: int64(4)}},
			}},
			{Key: "total", Value: bson.A{bson.D{{Key: "n", Value: 3}}}},
		}))

		res, err := NewStateRepository(mt.DB).ListByCountryCode(context.Background(), "US",
			repository.PageRequest{PageSize: 1, SortKey: "name"})
		require.NoError(mt, err)
		assert.Equal(mt, []model.State{{ID: 5, Name: "Alaska", CountryID: 4}}, res.Items)
		assert.Equal(mt, 3, res.TotalPages)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "aggregate", started.CommandName)
	})

	mt.Run("orphan state is a conflict", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "catalog.country", mtest.FirstBatch))

		_, err := NewStateRepository(mt.DB).Create(context.Background(), model.State{ID: 90, Name: "Nowhere", CountryID: 77})
		assert.ErrorIs(mt, err, repository.ErrConflict)
	})

	mt.Run("duplicate country code", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key error"}))

		_, err := NewCountryRepository(mt.DB).Create(context.Background(), model.Country{ID: 9, Code: "US", Name: "Again"})
		assert.ErrorIs(mt, err, repository.ErrAlreadyExists)
	})
}

func TestTxManager_DisabledRunsDirectly(t *testing.T) {
	called := false
	err := NewTxManager(nil, false).WithinTx(context.Background(), func(context.Context) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
}
