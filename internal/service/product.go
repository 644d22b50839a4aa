package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/maxviazov/product-catalog-service/internal/logger"
	"github.com/maxviazov/product-catalog-service/internal/model"
	"github.com/maxviazov/product-catalog-service/internal/repository"
)

const maxKeywordLen = 255

// productService validates listing requests and delegates the paged read to the store.
type productService struct {
	repo   repository.ProductRepository
	paging Paging
	log    zerolog.Logger
}

func NewProductService(repo repository.ProductRepository, paging Paging, log zerolog.Logger) ProductService {
	l := logger.Component(log, "service", "product")
	return &productService{repo: repo, paging: paging, log: l}
}

func (s *productService) ListProductsByCategory(ctx context.Context, categoryID int64, p repository.PageRequest) (repository.PageResult[model.Product], error) {
	page, ferrs := s.paging.checkPage(p, repository.ProductSortFields)
	ferrs = append(checkID("category_id", categoryID), ferrs...)
	if err := NewInvalidArgument(ferrs); err != nil {
		s.log.Debug().Int64("category_id", categoryID).Interface("field_errors", ferrs).Msg("list products validation failed")
		return repository.PageResult[model.Product]{}, err
	}
	return s.find(ctx, repository.ByCategory(categoryID), page)
}

func (s *productService) SearchProductsByName(ctx context.Context, keyword string, p repository.PageRequest) (repository.PageResult[model.Product], error) {
	keyword = strings.TrimSpace(keyword)
	page, ferrs := s.paging.checkPage(p, repository.ProductSortFields)
	switch {
	case keyword == "":
		ferrs = append([]FieldError{{Field: "name", Message: "must not be empty"}}, ferrs...)
	case len([]rune(keyword)) > maxKeywordLen:
		ferrs = append([]FieldError{{Field: "name", Message: "must be at most 255 characters"}}, ferrs...)
	}
	if err := NewInvalidArgument(ferrs); err != nil {
		s.log.Debug().Str("keyword", keyword).Interface("field_errors", ferrs).Msg("search products validation failed")
		return repository.PageResult[model.Product]{}, err
	}
	return s.find(ctx, repository.ByNameContaining(keyword), page)
}

func (s *productService) find(ctx context.Context, f repository.ProductFilter, page repository.PageRequest) (repository.PageResult[model.Product], error) {
	start := time.Now()
	res, err := s.repo.Find(ctx, f, page)
	if err != nil {
		// Repository surfaces domain-level errors already, do not wrap.
		s.log.Error().Err(err).Int("page", page.PageIndex).Int("size", page.PageSize).Msg("find products failed")
		return repository.PageResult[model.Product]{}, err
	}
	s.log.Debug().
		Dur("took", time.Since(start)).
		Int("page", page.PageIndex).
		Int("size", page.PageSize).
		Int("total_items", res.TotalItems).
		Msg("products listed")
	return res, nil
}

func (s *productService) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	if err := NewInvalidArgument(checkID("id", id)); err != nil {
		return model.Product{}, err
	}
	return s.repo.GetByID(ctx, id)
}
