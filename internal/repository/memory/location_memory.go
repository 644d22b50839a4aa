package memory

import (
	"context"

	"github.com/maxviazov/product-catalog-service/internal/model"
	"github.com/maxviazov/product-catalog-service/internal/repository"
)

type countryRepository struct{ db *DB }

func NewCountryRepository(db *DB) repository.CountryRepository {
	return &countryRepository{db: db}
}

func (r *countryRepository) List(ctx context.Context, p repository.PageRequest) (repository.PageResult[model.Country], error) {
	if err := ctx.Err(); err != nil {
		return repository.PageResult[model.Country]{}, repository.Unavailable(err)
	}
	return r.db.listCountries(p), nil
}

func (r *countryRepository) Create(ctx context.Context, c model.Country) (model.Country, error) {
	if err := ctx.Err(); err != nil {
		return model.Country{}, err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.countries[c.ID]; ok {
		return model.Country{}, repository.ErrAlreadyExists
	}
	for _, existing := range r.db.countries {
		if existing.Code == c.Code {
			return model.Country{}, repository.ErrAlreadyExists
		}
	}
	r.db.countries[c.ID] = c
	return c, nil
}

type stateRepository struct{ db *DB }

func NewStateRepository(db *DB) repository.StateRepository {
	return &stateRepository{db: db}
}

func (r *stateRepository) ListByCountryCode(ctx context.Context, code string, p repository.PageRequest) (repository.PageResult[model.State], error) {
	if err := ctx.Err(); err != nil {
		return repository.PageResult[model.State]{}, repository.Unavailable(err)
	}
	return r.db.statesOf(code, p), nil
}

func (r *stateRepository) Create(ctx context.Context, s model.State) (model.State, error) {
	if err := ctx.Err(); err != nil {
		return model.State{}, err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.states[s.ID]; ok {
		return model.State{}, repository.ErrAlreadyExists
	}
	if _, ok := r.db.countries[s.CountryID]; !ok {
		return model.State{}, repository.ErrConflict
	}
	r.db.states[s.ID] = s
	return s, nil
}

var (
	_ repository.CountryRepository = (*countryRepository)(nil)
	_ repository.StateRepository   = (*stateRepository)(nil)
)
