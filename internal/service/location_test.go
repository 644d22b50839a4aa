package service_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/product-catalog-service/internal/model"
	"github.com/maxviazov/product-catalog-service/internal/repository"
	"github.com/maxviazov/product-catalog-service/internal/repository/contract"
	"github.com/maxviazov/product-catalog-service/internal/repository/memory"
	"github.com/maxviazov/product-catalog-service/internal/service"
)

func seededLocationService(t *testing.T) service.LocationService {
	t.Helper()
	db := memory.New()
	countries, states := memory.NewCountryRepository(db), memory.NewStateRepository(db)
	contract.SeedLocations(t, context.Background(), countries, states)
	return service.NewLocationService(countries, states, service.DefaultPaging(), zerolog.New(io.Discard))
}

func TestListCountries(t *testing.T) {
	svc := seededLocationService(t)

	res, err := svc.ListCountries(context.Background(), repository.PageRequest{PageSize: 3, SortKey: "code"})
	require.NoError(t, err)
	require.Len(t, res.Items, 3)
	assert.Equal(t, "BR", res.Items[0].Code)
	assert.Equal(t, 4, res.TotalItems)
	assert.Equal(t, repository.SortAsc, res.Direction)

	_, err = svc.ListCountries(context.Background(), repository.PageRequest{PageSize: 3, SortKey: "country_id"})
	assert.ErrorIs(t, err, service.ErrInvalidArgument)
}

func TestListStates(t *testing.T) {
	svc := seededLocationService(t)

	res, err := svc.ListStates(context.Background(), " ca ", repository.PageRequest{PageSize: 10, SortKey: "name", SortDirection: repository.SortDesc})
	require.NoError(t, err)
	var names []string
	for _, s := range res.Items {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Quebec", "Ontario", "Alberta"}, names)

	res, err = svc.ListStates(context.Background(), "ZZ", repository.PageRequest{PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Zero(t, res.TotalPages)
}

func TestListStates_Validation(t *testing.T) {
	svc := seededLocationService(t)

	for _, code := range []string{"", "U", "USA", "u1", "ü"} {
		_, err := svc.ListStates(context.Background(), code, repository.PageRequest{PageSize: 10})
		require.ErrorIs(t, err, service.ErrInvalidArgument, "code %q", code)
		assert.Equal(t, "country_code", service.FieldErrors(err)[0].Field)
	}

	_, err := svc.ListStates(context.Background(), "", repository.PageRequest{PageSize: 0, SortKey: "code"})
	var fields []string
	for _, fe := range service.FieldErrors(err) {
		fields = append(fields, fe.Field)
	}
	assert.Equal(t, []string{"country_code", "size", "sort"}, fields)
}

type failingStates struct{ err error }

func (f failingStates) ListByCountryCode(context.Context, string, repository.PageRequest) (repository.PageResult[model.State], error) {
	return repository.PageResult[model.State]{}, f.err
}
func (f failingStates) Create(context.Context, model.State) (model.State, error) {
	return model.State{}, f.err
}

func TestListStates_StoreErrorPassesThrough(t *testing.T) {
	cause := repository.Unavailable(errors.New("connection reset"))
	svc := service.NewLocationService(memory.NewCountryRepository(memory.New()), failingStates{err: cause}, service.DefaultPaging(), zerolog.New(io.Discard))

	_, err := svc.ListStates(context.Background(), "US", repository.PageRequest{PageSize: 5})
	assert.Same(t, cause, err)
}

func TestNormalizeCountryCode(t *testing.T) {
	code, ok := service.NormalizeCountryCode(" de")
	assert.True(t, ok)
	assert.Equal(t, "DE", code)
	_, ok = service.NormalizeCountryCode("D3")
	assert.False(t, ok)
}
