package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/maxviazov/product-catalog-service/internal/logger"
	"github.com/maxviazov/product-catalog-service/internal/model"
	"github.com/maxviazov/product-catalog-service/internal/repository"
)

type locationService struct {
	countries repository.CountryRepository
	states    repository.StateRepository
	paging    Paging
	log       zerolog.Logger
}

func NewLocationService(countries repository.CountryRepository, states repository.StateRepository, paging Paging, log zerolog.Logger) LocationService {
	l := logger.Component(log, "service", "location")
	return &locationService{countries: countries, states: states, paging: paging, log: l}
}

func (s *locationService) ListCountries(ctx context.Context, p repository.PageRequest) (repository.PageResult[model.Country], error) {
	page, ferrs := s.paging.checkPage(p, repository.CountrySortFields)
	if err := NewInvalidArgument(ferrs); err != nil {
		return repository.PageResult[model.Country]{}, err
	}
	res, err := s.countries.List(ctx, page)
	if err != nil {
		s.log.Error().Err(err).Int("page", page.PageIndex).Int("size", page.PageSize).Msg("list countries failed")
		return repository.PageResult[model.Country]{}, err
	}
	return res, nil
}

func (s *locationService) ListStates(ctx context.Context, countryCode string, p repository.PageRequest) (repository.PageResult[model.State], error) {
	code, ok := NormalizeCountryCode(countryCode)
	page, ferrs := s.paging.checkPage(p, repository.StateSortFields)
	if !ok {
		ferrs = append([]FieldError{{Field: "country_code", Message: "must be a two letter ISO 3166-1 code"}}, ferrs...)
	}
	if err := NewInvalidArgument(ferrs); err != nil {
		return repository.PageResult[model.State]{}, err
	}
	res, err := s.states.ListByCountryCode(ctx, code, page)
	if err != nil {
		s.log.Error().Err(err).Str("country_code", code).Int("page", page.PageIndex).Msg("list states failed")
		return repository.PageResult[model.State]{}, err
	}
	return res, nil
}

// NormalizeCountryCode trims and upper-cases raw and reports whether it is two ASCII letters.
func NormalizeCountryCode(raw string) (string, bool) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if len(code) != 2 {
		return code, false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return code, false
		}
	}
	return code, true
}
