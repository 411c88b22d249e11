package shop

import (
	"context"

	"github.com/jrsteele09/go-shop-admin/endpoints"
	"github.com/jrsteele09/go-shop-admin/internal/errors"
)

type Category struct {
	CategoryID  int    `json:"categoryId"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := s.api.Get(ctx, endpoints.Categories, &categories); err != nil {
		return nil, errors.Wrapf(err, "[shop ListCategories]")
	}
	return categories, nil
}

func (s *Service) GetCategory(ctx context.Context, id int) (*Category, error) {
	var category Category
	if err := s.api.Get(ctx, endpoints.Category(id), &category); err != nil {
		return nil, errors.Wrapf(err, "[shop GetCategory] %d", id)
	}
	return &category, nil
}

func (s *Service) CreateCategory(ctx context.Context, in CategoryInput) (*Category, error) {
	var category Category
	if err := s.api.Post(ctx, endpoints.Categories, in, &category); err != nil {
		return nil, errors.Wrapf(err, "[shop CreateCategory]")
	}
	return &category, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id int, in CategoryInput) (*Category, error) {
	var category Category
	if err := s.api.Put(ctx, endpoints.Category(id), in, &category); err != nil {
		return nil, errors.Wrapf(err, "[shop UpdateCategory] %d", id)
	}
	return &category, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id int) error {
	return errors.Wrapf(s.api.Delete(ctx, endpoints.Category(id), nil), "[shop DeleteCategory] %d", id)
}
