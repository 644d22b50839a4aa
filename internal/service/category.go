package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/maxviazov/product-catalog-service/internal/logger"
	"github.com/maxviazov/product-catalog-service/internal/model"
	"github.com/maxviazov/product-catalog-service/internal/repository"
)

type categoryService struct {
	repo   repository.CategoryRepository
	paging Paging
	log    zerolog.Logger
}

func NewCategoryService(repo repository.CategoryRepository, paging Paging, log zerolog.Logger) CategoryService {
	l := logger.Component(log, "service", "category")
	return &categoryService{repo: repo, paging: paging, log: l}
}

func (s *categoryService) ListCategories(ctx context.Context, p repository.PageRequest) (repository.PageResult[model.ProductCategory], error) {
	page, ferrs := s.paging.checkPage(p, repository.CategorySortFields)
	if err := NewInvalidArgument(ferrs); err != nil {
		return repository.PageResult[model.ProductCategory]{}, err
	}
	res, err := s.repo.List(ctx, page)
	if err != nil {
		s.log.Error().Err(err).Int("page", page.PageIndex).Int("size", page.PageSize).Msg("list categories failed")
		return repository.PageResult[model.ProductCategory]{}, err
	}
	return res, nil
}

func (s *categoryService) GetCategory(ctx context.Context, id int64) (model.ProductCategory, error) {
	if err := NewInvalidArgument(checkID("id", id)); err != nil {
		return model.ProductCategory{}, err
	}
	return s.repo.GetByID(ctx, id)
}
