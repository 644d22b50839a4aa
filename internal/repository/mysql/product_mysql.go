package mysql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/maxviazov/product-catalog-service/internal/model"
	"github.com/maxviazov/product-catalog-service/internal/repository"
)

const productColumns = `id, COALESCE(sku, ''), name, description, unit_price, image_url, active, units_in_stock, category_id, date_created, last_updated`

const productWhere = `WHERE (? IS NULL OR category_id = ?) AND (? = '' OR LOWER(name) LIKE ?)`

type scanner interface {
	Scan(dest ...any) error
}

type productRepository struct{ db *sql.DB }

func NewProductRepository(db *sql.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func scanProduct(row scanner, extra ...any) (model.Product, error) {
	var p model.Product
	dest := []any{&p.ID, &p.SKU, &p.Name, &p.Description, &p.UnitPrice, &p.ImageURL, &p.Active, &p.UnitsInStock, &p.CategoryID, &p.DateCreated, &p.LastUpdated}
	err := row.Scan(append(dest, extra...)...)
	return p, err
}

// whereArgs expands the filter into the positional args productWhere expects.
func whereArgs(f repository.ProductFilter) []any {
	var category any
	if f.CategoryID != nil {
		category = *f.CategoryID
	}
	like := ""
	if f.NameContains != "" {
		like = f.LikePattern()
	}
	return []any{category, category, like, like}
}

func (r *productRepository) Find(ctx context.Context, f repository.ProductFilter, p repository.PageRequest) (repository.PageResult[model.Product], error) {
	if r.db == nil {
		return repository.PageResult[model.Product]{}, errNilDB
	}
	exec := getQ(ctx, r.db)
	args := whereArgs(f)
	rows, err := exec.QueryContext(ctx,
		`SELECT `+productColumns+`, COUNT(*) OVER() AS total FROM product `+productWhere+
			` ORDER BY `+repository.SQLOrderBy(p, repository.ProductSortFields)+` LIMIT ? OFFSET ?`,
		append(args, p.PageSize, p.Offset())...,
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
		if err := exec.QueryRowContext(ctx, `SELECT COUNT(*) FROM product `+productWhere, args...).Scan(&total); err != nil {
			return repository.PageResult[model.Product]{}, mapReadError(err)
		}
	}
	return repository.NewPageResult(items, p, total), nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (model.Product, error) {
	if r.db == nil {
		return model.Product{}, errNilDB
	}
	out, err := scanProduct(getQ(ctx, r.db).QueryRowContext(ctx, `SELECT `+productColumns+` FROM product WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Product{}, repository.ErrNotFound
		}
		return model.Product{}, mapReadError(err)
	}
	return out, nil
}

// Create inserts p as given; MySQL has no RETURNING, so the stored row is the input.
func (r *productRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if r.db == nil {
		return model.Product{}, errNilDB
	}
	_, err := getQ(ctx, r.db).ExecContext(ctx,
		`INSERT INTO product (id, sku, name, description, unit_price, image_url, active, units_in_stock, category_id, date_created, last_updated)
		 VALUES (?, NULLIF(?, ''), ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.SKU, p.Name, p.Description, p.UnitPrice, p.ImageURL, p.Active, p.UnitsInStock, p.CategoryID, p.DateCreated.UTC(), p.LastUpdated.UTC(),
	)
	if err != nil {
		return model.Product{}, mapWriteError(err)
	}
	return p, nil
}

var _ repository.ProductRepository = (*productRepository)(nil)
