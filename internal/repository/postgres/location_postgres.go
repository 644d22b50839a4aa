package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/product-catalog-service/internal/model"
	"github.com/maxviazov/product-catalog-service/internal/repository"
)

type countryRepository struct{ pool *pgxpool.Pool }

func NewCountryRepository(pool *pgxpool.Pool) repository.CountryRepository {
	return &countryRepository{pool: pool}
}

func (r *countryRepository) List(ctx context.Context, p repository.PageRequest) (repository.PageResult[model.Country], error) {
	if err := requirePool(r.pool); err != nil {
		return repository.PageResult[model.Country]{}, err
	}
	exec := conn(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT id, code, name, COUNT(*) OVER() AS total
		 FROM country
		 ORDER BY `+repository.SQLOrderBy(p, repository.CountrySortFields)+`
		 LIMIT $1 OFFSET $2`,
		p.PageSize, p.Offset(),
	)
	if err != nil {
		return repository.PageResult[model.Country]{}, mapReadError(err)
	}
	defer rows.Close()

	items := make([]model.Country, 0, p.PageSize)
	total := 0
	for rows.Next() {
		var c model.Country
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &total); err != nil {
			return repository.PageResult[model.Country]{}, mapReadError(err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return repository.PageResult[model.Country]{}, mapReadError(err)
	}
	if len(items) == 0 && p.Offset() > 0 {
		if err := exec.QueryRow(ctx, `SELECT COUNT(*) FROM country`).Scan(&total); err != nil {
			return repository.PageResult[model.Country]{}, mapReadError(err)
		}
	}
	return repository.NewPageResult(items, p, total), nil
}

func (r *countryRepository) Create(ctx context.Context, c model.Country) (model.Country, error) {
	if err := requirePool(r.pool); err != nil {
		return model.Country{}, err
	}
	_, err := conn(ctx, r.pool).Exec(ctx, `INSERT INTO country (id, code, name) VALUES ($1, $2, $3)`, c.ID, c.Code, c.Name)
	if err != nil {
		return model.Country{}, mapWriteError(err)
	}
	return c, nil
}

type stateRepository struct{ pool *pgxpool.Pool }

func NewStateRepository(pool *pgxpool.Pool) repository.StateRepository {
	return &stateRepository{pool: pool}
}

// ListByCountryCode joins on country so an unknown code simply matches nothing.
func (r *stateRepository) ListByCountryCode(ctx context.Context, code string, p repository.PageRequest) (repository.PageResult[model.State], error) {
	if err := requirePool(r.pool); err != nil {
		return repository.PageResult[model.State]{}, err
	}
	exec := conn(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT s.id, s.name, s.country_id, COUNT(*) OVER() AS total
		 FROM state s JOIN country c ON c.id = s.country_id
		 WHERE c.code = $1
		 ORDER BY `+repository.SQLOrderByQualified(p, repository.StateSortFields, "s")+`
		 LIMIT $2 OFFSET $3`,
		code, p.PageSize, p.Offset(),
	)
	if err != nil {
		return repository.PageResult[model.State]{}, mapReadError(err)
	}
	defer rows.Close()

	items := make([]model.State, 0, p.PageSize)
	total := 0
	for rows.Next() {
		var s model.State
		if err := rows.Scan(&s.ID, &s.Name, &s.CountryID, &total); err != nil {
			return repository.PageResult[model.State]{}, mapReadError(err)
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return repository.PageResult[model.State]{}, mapReadError(err)
	}
	if len(items) == 0 && p.Offset() > 0 {
		err := exec.QueryRow(ctx,
			`SELECT COUNT(*) FROM state s JOIN country c ON c.id = s.country_id WHERE c.code = $1`, code,
		).Scan(&total)
		if err != nil {
			return repository.PageResult[model.State]{}, mapReadError(err)
		}
	}
	return repository.NewPageResult(items, p, total), nil
}

func (r *stateRepository) Create(ctx context.Context, s model.State) (model.State, error) {
	if err := requirePool(r.pool); err != nil {
		return model.State{}, err
	}
	_, err := conn(ctx, r.pool).Exec(ctx, `INSERT INTO state (id, name, country_id) VALUES ($1, $2, $3)`, s.ID, s.Name, s.CountryID)
	if err != nil {
		return model.State{}, mapWriteError(err)
	}
	return s, nil
}

var (
	_ repository.CountryRepository = (*countryRepository)(nil)
	_ repository.StateRepository   = (*stateRepository)(nil)
)
