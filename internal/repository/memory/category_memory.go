package memory

import (
	"context"

	"github.com/maxviazov/product-catalog-service/internal/model"
	"github.com/maxviazov/product-catalog-service/internal/repository"
)

type categoryRepository struct{ db *DB }

func NewCategoryRepository(db *DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List(ctx context.Context, p repository.PageRequest) (repository.PageResult[model.ProductCategory], error) {
	if err := ctx.Err(); err != nil {
		return repository.PageResult[model.ProductCategory]{}, repository.Unavailable(err)
	}
	return r.db.listCategories(p), nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (model.ProductCategory, error) {
	if err := ctx.Err(); err != nil {
		return model.ProductCategory{}, repository.Unavailable(err)
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	c, ok := r.db.categories[id]
	if !ok {
		return model.ProductCategory{}, repository.ErrNotFound
	}
	return c, nil
}

func (r *categoryRepository) Create(ctx context.Context, c model.ProductCategory) (model.ProductCategory, error) {
	if err := ctx.Err(); err != nil {
		return model.ProductCategory{}, err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.categories[c.ID]; ok {
		return model.ProductCategory{}, repository.ErrAlreadyExists
	}
	r.db.categories[c.ID] = c
	return c, nil
}

var _ repository.CategoryRepository = (*categoryRepository)(nil)
