package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/maxviazov/product-catalog-service/internal/fixture"
	"github.com/maxviazov/product-catalog-service/internal/logger"
	"github.com/maxviazov/product-catalog-service/internal/repository"
)

type seeder struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	countries  repository.CountryRepository
	states     repository.StateRepository
	tx         repository.TxManager
	now        func() time.Time
	log        zerolog.Logger
}

func NewSeeder(store repository.Store, log zerolog.Logger) Seeder {
	l := logger.Component(log, "service", "seeder")
	return &seeder{
		products:   store.Products,
		categories: store.Categories,
		countries:  store.Countries,
		states:     store.States,
		tx:         store.Tx,
		now:        func() time.Time { return time.Now().UTC() },
		log:        l,
	}
}

// Seed writes every category, product, country and state in one transaction.
// Missing timestamps are set to the current time. Country codes are upper-cased.
func (s *seeder) Seed(ctx context.Context, c fixture.Catalog) (SeedResult, error) {
	if err := NewInvalidArgument(checkCatalog(c)); err != nil {
		s.log.Debug().Interface("field_errors", FieldErrors(err)).Msg("fixture validation failed")
		return SeedResult{}, err
	}

	start := time.Now()
	now := s.now()
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		for _, cat := range c.Categories {
			cat.CategoryName = strings.TrimSpace(cat.CategoryName)
			if _, err := s.categories.Create(ctx, cat); err != nil {
				return fmt.Errorf("category %d: %w", cat.ID, err)
			}
		}
		for _, p := range c.Products {
			if p.DateCreated.IsZero() {
				p.DateCreated = now
			}
			if p.LastUpdated.IsZero() {
				p.LastUpdated = p.DateCreated
			}
			if _, err := s.products.Create(ctx, p); err != nil {
				return fmt.Errorf("product %d: %w", p.ID, err)
			}
		}
		for _, co := range c.Countries {
			co.Code, _ = NormalizeCountryCode(co.Code)
			co.Name = strings.TrimSpace(co.Name)
			if _, err := s.countries.Create(ctx, co); err != nil {
				return fmt.Errorf("country %s: %w", co.Code, err)
			}
		}
		for _, st := range c.States {
			st.Name = strings.TrimSpace(st.Name)
			if _, err := s.states.Create(ctx, st); err != nil {
				return fmt.Errorf("state %d: %w", st.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		s.log.Error().Err(err).Msg("seed failed")
		return SeedResult{}, err
	}

	out := SeedResult{Categories: len(c.Categories), Products: len(c.Products), Countries: len(c.Countries), States: len(c.States)}
	s.log.Info().Dur("took", time.Since(start)).
		Int("categories", out.Categories).
		Int("products", out.Products).
		Int("countries", out.Countries).
		Int("states", out.States).
		Msg("catalog seeded")
	return out, nil
}

// checkCatalog reports every malformed entry; field names point into the fixture document.
func checkCatalog(c fixture.Catalog) []FieldError {
	var ferrs []FieldError
	add := func(field, msg string) { ferrs = append(ferrs, FieldError{Field: field, Message: msg}) }

	cats := make(map[int64]bool, len(c.Categories))
	for i, cat := range c.Categories {
		f := fmt.Sprintf("categories[%d]", i)
		switch {
		case cat.ID <= 0:
			add(f+".id", "must be > 0")
		case cats[cat.ID]:
			add(f+".id", fmt.Sprintf("duplicate id %d", cat.ID))
		}
		cats[cat.ID] = true
		if strings.TrimSpace(cat.CategoryName) == "" {
			add(f+".category_name", "must not be empty")
		}
	}

	seen := make(map[int64]bool, len(c.Products))
	seenSKU := make(map[string]bool, len(c.Products))
	for i, p := range c.Products {
		f := fmt.Sprintf("products[%d]", i)
		switch {
		case p.ID <= 0:
			add(f+".id", "must be > 0")
		case seen[p.ID]:
			add(f+".id", fmt.Sprintf("duplicate id %d", p.ID))
		}
		seen[p.ID] = true
		// An empty SKU is allowed any number of times.
		if p.SKU != "" {
			if seenSKU[p.SKU] {
				add(f+".sku", fmt.Sprintf("duplicate sku %q", p.SKU))
			}
			seenSKU[p.SKU] = true
		}
		if strings.TrimSpace(p.Name) == "" {
			add(f+".name", "must not be empty")
		}
		if p.CategoryID <= 0 {
			add(f+".category_id", "must be > 0")
		}
		if p.UnitPrice < 0 {
			add(f+".unit_price", "must be >= 0")
		}
		if p.UnitsInStock < 0 {
			add(f+".units_in_stock", "must be >= 0")
		}
	}

	countries := make(map[int64]bool, len(c.Countries))
	codes := make(map[string]bool, len(c.Countries))
	for i, co := range c.Countries {
		f := fmt.Sprintf("countries[%d]", i)
		switch {
		case co.ID <= 0:
			add(f+".id", "must be > 0")
		case countries[co.ID]:
			add(f+".id", fmt.Sprintf("duplicate id %d", co.ID))
		}
		countries[co.ID] = true
		code, ok := NormalizeCountryCode(co.Code)
		switch {
		case !ok:
			add(f+".code", "must be a two letter ISO 3166-1 code")
		case codes[code]:
			add(f+".code", fmt.Sprintf("duplicate code %s", code))
		}
		codes[code] = true
		if strings.TrimSpace(co.Name) == "" {
			add(f+".name", "must not be empty")
		}
	}

	states := make(map[int64]bool, len(c.States))
	for i, st := range c.States {
		f := fmt.Sprintf("states[%d]", i)
		switch {
		case st.ID <= 0:
			add(f+".id", "must be > 0")
		case states[st.ID]:
			add(f+".id", fmt.Sprintf("duplicate id %d", st.ID))
		}
		states[st.ID] = true
		if strings.TrimSpace(st.Name) == "" {
			add(f+".name", "must not be empty")
		}
		if st.CountryID <= 0 {
			add(f+".country_id", "must be > 0")
		}
	}
	return ferrs
}
