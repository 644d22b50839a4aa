package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/maxviazov/product-catalog-service/internal/model"
	"github.com/maxviazov/product-catalog-service/internal/repository"
)

type categoryRepository struct{ db *mongo.Database }

func NewCategoryRepository(db *mongo.Database) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List(ctx context.Context, p repository.PageRequest) (repository.PageResult[model.ProductCategory], error) {
	if r.db == nil {
		return repository.PageResult[model.ProductCategory]{}, errNilDB
	}
	pipeline := pagePipeline(bson.M{}, p, repository.CategorySortFields)
	return runPage[model.ProductCategory](ctx, r.db.Collection(categoryCollection), pipeline, p)
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (model.ProductCategory, error) {
	if r.db == nil {
		return model.ProductCategory{}, errNilDB
	}
	var out model.ProductCategory
	err := r.db.Collection(categoryCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.ProductCategory{}, repository.ErrNotFound
		}
		return model.ProductCategory{}, mapReadError(err)
	}
	return out, nil
}

func (r *categoryRepository) Create(ctx context.Context, c model.ProductCategory) (model.ProductCategory, error) {
	if r.db == nil {
		return model.ProductCategory{}, errNilDB
	}
	if _, err := r.db.Collection(categoryCollection).InsertOne(ctx, c); err != nil {
		return model.ProductCategory{}, mapWriteError(err)
	}
	return c, nil
}

var _ repository.CategoryRepository = (*categoryRepository)(nil)
