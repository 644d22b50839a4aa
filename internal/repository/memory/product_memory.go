package memory

import (
	"context"

	"github.com/maxviazov/product-catalog-service/internal/model"
	"github.com/maxviazov/product-catalog-service/internal/repository"
)

type productRepository struct{ db *DB }

func NewProductRepository(db *DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Find(ctx context.Context, f repository.ProductFilter, p repository.PageRequest) (repository.PageResult[model.Product], error) {
	if err := ctx.Err(); err != nil {
		return repository.PageResult[model.Product]{}, repository.Unavailable(err)
	}
	return r.db.findProducts(f, p), nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (model.Product, error) {
	if err := ctx.Err(); err != nil {
		return model.Product{}, repository.Unavailable(err)
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	p, ok := r.db.products[id]
	if !ok {
		return model.Product{}, repository.ErrNotFound
	}
	return p, nil
}

func (r *productRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := ctx.Err(); err != nil {
		return model.Product{}, err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.products[p.ID]; ok {
		return model.Product{}, repository.ErrAlreadyExists
	}
	// Mirror the foreign key the SQL schemas declare.
	if _, ok := r.db.categories[p.CategoryID]; !ok {
		return model.Product{}, repository.ErrConflict
	}
	for _, existing := range r.db.products {
		if p.SKU != "" && existing.SKU == p.SKU {
			return model.Product{}, repository.ErrAlreadyExists
		}
	}
	r.db.products[p.ID] = p
	return p, nil
}

var _ repository.ProductRepository = (*productRepository)(nil)
