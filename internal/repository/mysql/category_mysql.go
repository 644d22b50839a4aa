package mysql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/maxviazov/product-catalog-service/internal/model"
	"github.com/maxviazov/product-catalog-service/internal/repository"
)

type categoryRepository struct{ db *sql.DB }

func NewCategoryRepository(db *sql.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List(ctx context.Context, p repository.PageRequest) (repository.PageResult[model.ProductCategory], error) {
	if r.db == nil {
		return repository.PageResult[model.ProductCategory]{}, errNilDB
	}
	exec := getQ(ctx, r.db)
	rows, err := exec.QueryContext(ctx,
		`SELECT id, category_name, COUNT(*) OVER() AS total FROM product_category ORDER BY `+
			repository.SQLOrderBy(p, repository.CategorySortFields)+` LIMIT ? OFFSET ?`,
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
		if err := exec.QueryRowContext(ctx, `SELECT COUNT(*) FROM product_category`).Scan(&total); err != nil {
			return repository.PageResult[model.ProductCategory]{}, mapReadError(err)
		}
	}
	return repository.NewPageResult(items, p, total), nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (model.ProductCategory, error) {
	if r.db == nil {
		return model.ProductCategory{}, errNilDB
	}
	var out model.ProductCategory
	err := getQ(ctx, r.db).QueryRowContext(ctx, `SELECT id, category_name FROM product_category WHERE id = ?`, id).
		Scan(&out.ID, &out.CategoryName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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
	_, err := getQ(ctx, r.db).ExecContext(ctx, `INSERT INTO product_category (id, category_name) VALUES (?, ?)`, c.ID, c.CategoryName)
	if err != nil {
		return model.ProductCategory{}, mapWriteError(err)
	}
	return c, nil
}

var _ repository.CategoryRepository = (*categoryRepository)(nil)
