package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/product-catalog-service/internal/model"
	"github.com/maxviazov/product-catalog-service/internal/repository"
)

const productColumns = `id, sku, name, description, unit_price, image_url, active, units_in_stock, category_id, date_created, last_updated`

// productWhere treats a NULL category and an empty pattern as "no constraint".
const productWhere = `WHERE ($1::BIGINT IS NULL OR category_id = $1)
		   AND ($2::TEXT = '' OR LOWER(name) LIKE $2)`

type productRepository struct{ pool *pgxpool.Pool }

func NewProductRepository(pool *pgxpool.Pool) repository.ProductRepository {
	return &productRepository{pool: pool}
}

func scanProduct(row pgx.Row, extra ...any) (model.Product, error) {
	var p model.Product
	dest := []any{&p.ID, &p.SKU, &p.Name, &p.Description, &p.UnitPrice, &p.ImageURL, &p.Active, &p.UnitsInStock, &p.CategoryID, &p.DateCreated, &p.LastUpdated}
	err := row.Scan(append(dest, extra...)...)
	return p, err
}

func filterArgs(f repository.ProductFilter) (*int64, string) {
	like := ""
	if f.NameContains != "" {
		like = f.LikePattern()
	}
	return f.CategoryID, like
}

// Find reads page and total in one statement via COUNT(*) OVER(), so a concurrent
// writer can never make them disagree. Only a page past the end needs a separate count.
func (r *productRepository) Find(ctx context.Context, f repository.ProductFilter, p repository.PageRequest) (repository.PageResult[model.Product], error) {
	if err := requirePool(r.pool); err != nil {
		return repository.PageResult[model.Product]{}, err
	}
	categoryID, like := filterArgs(f)
	exec := conn(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT `+productColumns+`, COUNT(*) OVER() AS total
		 FROM product
		 `+productWhere+`
		 ORDER BY `+repository.SQLOrderBy(p, repository.ProductSortFields)+`
		 LIMIT $3 OFFSET $4`,
		categoryID, like, p.PageSize, p.Offset(),
	)
	if err != nil {
		return repository.PageResult[model.Product]{}, mapReadError(err)
	}
	defer rows.Close()

	items := make([]model.Product, 0, p.PageSize)
	total := 0
	for rows.Next() {
		it, err := scanProduct(rows, &total)
		if err != nil {
			return repository.PageResult[model.Product]{}, mapReadError(err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return repository.PageResult[model.Product]{}, mapReadError(err)
	}

	if len(items) == 0 && p.Offset() > 0 {
		if err := exec.QueryRow(ctx, `SELECT COUNT(*) FROM product `+productWhere, categoryID, like).Scan(&total); err != nil {
			return repository.PageResult[model.Product]{}, mapReadError(err)
		}
	}
	return repository.NewPageResult(items, p, total), nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (model.Product, error) {
	if err := requirePool(r.pool); err != nil {
		return model.Product{}, err
	}
	exec := conn(ctx, r.pool)
	out, err := scanProduct(exec.QueryRow(ctx, `SELECT `+productColumns+` FROM product WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, repository.ErrNotFound
		}
		return model.Product{}, mapReadError(err)
	}
	return out, nil
}

func (r *productRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := requirePool(r.pool); err != nil {
		return model.Product{}, err
	}
	exec := conn(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO product (`+productColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING `+productColumns,
		p.ID, p.SKU, p.Name, p.Description, p.UnitPrice, p.ImageURL, p.Active, p.UnitsInStock, p.CategoryID, p.DateCreated, p.LastUpdated,
	)
	out, err := scanProduct(row)
	if err != nil {
		return model.Product{}, mapWriteError(err)
	}
	return out, nil
}

var _ repository.ProductRepository = (*productRepository)(nil)
