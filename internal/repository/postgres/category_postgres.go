package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/product-catalog-service/internal/model"
	"github.com/maxviazov/product-catalog-service/internal/repository"
)

type categoryRepository struct{ pool *pgxpool.Pool }

func NewCategoryRepository(pool *pgxpool.Pool) repository.CategoryRepository {
	return &categoryRepository{pool: pool}
}

func (r *categoryRepository) List(ctx context.Context, p repository.PageRequest) (repository.PageResult[model.ProductCategory], error) {
	if err := requirePool(r.pool); err != nil {
		return repository.PageResult[model.ProductCategory]{}, err
	}
	exec := conn(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT id, category_name, COUNT(*) OVER() AS total
		 FROM product_category
		 ORDER BY `+repository.SQLOrderBy(p, repository.CategorySortFields)+`
		 LIMIT $1 OFFSET $2`,
		p.PageSize, p.Offset(),
	)
	if err != nil {
		return repository.PageResult[model.ProductCategory]{}, mapReadError(err)
	}
	defer rows.Close()

	items := make([]model.ProductCategory, 0, p.PageSize)
	total := 0
	for rows.Next() {
		var c model.ProductCategory
		if err := rows.Scan(&c.ID, &c.CategoryName, &total); err != nil {
			return repository.PageResult[model.ProductCategory]{}, mapReadError(err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return repository.PageResult[model.ProductCategory]{}, mapReadError(err)
	}
	if len(items) == 0 && p.Offset() > 0 {
		if err := exec.QueryRow(ctx, `SELECT COUNT(*) FROM product_category`).Scan(&total); err != nil {
			return repository.PageResult[model.ProductCategory]{}, mapReadError(err)
		}
	}
	return repository.NewPageResult(items, p, total), nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (model.ProductCategory, error) {
	if err := requirePool(r.pool); err != nil {
		return model.ProductCategory{}, err
	}
	exec := conn(ctx, r.pool)
	var out model.ProductCategory
	err := exec.QueryRow(ctx, `SELECT id, category_name FROM product_category WHERE id = $1`, id).Scan(&out.ID, &out.CategoryName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ProductCategory{}, repository.ErrNotFound
		}
		return model.ProductCategory{}, mapReadError(err)
	}
	return out, nil
}

func (r *categoryRepository) Create(ctx context.Context, c model.ProductCategory) (model.ProductCategory, error) {
	if err := requirePool(r.pool); err != nil {
		return model.ProductCategory{}, err
	}
	exec := conn(ctx, r.pool)
	var out model.ProductCategory
	err := exec.QueryRow(ctx,
		`INSERT INTO product_category (id, category_name) VALUES ($1, $2)
		 RETURNING id, category_name`,
		c.ID, c.CategoryName,
	).Scan(&out.ID, &out.CategoryName)
	if err != nil {
		return model.ProductCategory{}, mapWriteError(err)
	}
	return out, nil
}

var _ repository.CategoryRepository = (*categoryRepository)(nil)
