// Package shop wraps the product, category, stock and order endpoints of the
// retail backend in typed calls.
package shop

import (
	"context"

	"github.com/jrsteele09/go-shop-admin/apiclient"
	"github.com/jrsteele09/go-shop-admin/endpoints"
	"github.com/jrsteele09/go-shop-admin/internal/errors"
)

var (
	ErrInsufficientStock = errors.ErrInsufficientStock
	ErrInvalidQuantity   = errors.ErrInvalidQuantity
	ErrUnknownStatus     = errors.Wrapf(errors.ErrInvalidRequest, "unknown order status")
)

// API is the subset of the API client the shop calls use.
type API interface {
	Get(ctx context.Context, path string, out any, opts ...apiclient.RequestOption) error
	Post(ctx context.Context, path string, body, out any, opts ...apiclient.RequestOption) error
	Put(ctx context.Context, path string, body, out any, opts ...apiclient.RequestOption) error
	Patch(ctx context.Context, path string, body, out any, opts ...apiclient.RequestOption) error
	Delete(ctx context.Context, path string, out any, opts ...apiclient.RequestOption) error
}

type Service struct {
	api API
}

func NewService(api API) *Service {
	return &Service{api: api}
}

// Shop is returned as-is; its shape is owned by the backend.
type Shop map[string]any

func (s *Service) GetShop(ctx context.Context, id string) (Shop, error) {
	var shop Shop
	if err := s.api.Get(ctx, endpoints.Shop(id), &shop); err != nil {
		return nil, errors.Wrapf(err, "[shop GetShop] %s", id)
	}
	return shop, nil
}
