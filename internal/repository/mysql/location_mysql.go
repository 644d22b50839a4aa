package mysql

import (
	"context"
	"database/sql"

	"github.com/maxviazov/product-catalog-service/internal/model"
	"github.com/maxviazov/product-catalog-service/internal/repository"
)

type countryRepository struct{ db *sql.DB }

func NewCountryRepository(db *sql.DB) repository.CountryRepository {
	return &countryRepository{db: db}
}

func (r *countryRepository) List(ctx context.Context, p repository.PageRequest) (repository.PageResult[model.Country], error) {
	if r.db == nil {
		return repository.PageResult[model.Country]{}, errNilDB
	}
	exec := getQ(ctx, r.db)
	rows, err := exec.QueryContext(ctx,
		`SELECT id, code, name, COUNT(*) OVER() AS total FROM country ORDER BY `+
			repository.SQLOrderBy(p, repository.CountrySortFields)+` LIMIT ? OFFSET ?`,
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
		if err := exec.QueryRowContext(ctx, `SELECT COUNT(*) FROM country`).Scan(&total); err != nil {
			return repository.PageResult[model.Country]{}, mapReadError(err)
		}
	}
	return repository.NewPageResult(items, p, total), nil
}

func (r *countryRepository) Create(ctx context.Context, c model.Country) (model.Country, error) {
	if r.db == nil {
		return model.Country{}, errNilDB
	}
	_, err := getQ(ctx, r.db).ExecContext(ctx, `INSERT INTO country (id, code, name) VALUES (?, ?, ?)`, c.ID, c.Code, c.Name)
	if err != nil {
		return model.Country{}, mapWriteError(err)
	}
	return c, nil
}

type stateRepository struct{ db *sql.DB }

func NewStateRepository(db *sql.DB) repository.StateRepository {
	return &stateRepository{db: db}
}

func (r *stateRepository) ListByCountryCode(ctx context.Context, code string, p repository.PageRequest) (repository.PageResult[model.State], error) {
	if r.db == nil {
		return repository.PageResult[model.State]{}, errNilDB
	}
	exec := getQ(ctx, r.db)
	rows, err := exec.QueryContext(ctx,
		`SELECT s.id, s.name, s.country_id, COUNT(*) OVER() AS total FROM state s JOIN country c ON c.id = s.country_id WHERE c.code = ? ORDER BY `+
			repository.SQLOrderByQualified(p, repository.StateSortFields, "s")+` LIMIT ? OFFSET ?`,
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
		err := exec.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM state s JOIN country c ON c.id = s.country_id WHERE c.code = ?`, code,
		).Scan(&total)
		if err != nil {
			return repository.PageResult[model.State]{}, mapReadError(err)
		}
	}
	return repository.NewPageResult(items, p, total), nil
}

func (r *stateRepository) Create(ctx context.Context, s model.State) (model.State, error) {
	if r.db == nil {
		return model.State{}, errNilDB
	}
	_, err := getQ(ctx, r.db).ExecContext(ctx, `INSERT INTO state (id, name, country_id) VALUES (?, ?, ?)`, s.ID, s.Name, s.CountryID)
	if err != nil {
		return model.State{}, mapWriteError(err)
	}
	return s, nil
}

var (
	_ repository.CountryRepository = (*countryRepository)(nil)
	_ repository.StateRepository   = (*stateRepository)(nil)
)
