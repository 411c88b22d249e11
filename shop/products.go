package shop

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/jrsteele09/go-shop-admin/endpoints"
	"github.com/jrsteele09/go-shop-admin/internal/errors"
)

type Supplier struct {
	Rut     string `json:"rut"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Product as listed by the backend. Prices arrive as decimal strings.
type Product struct {
	ProductID   int         `json:"productId"`
	Name        string      `json:"name"`
	RutSupplier string      `json:"rutSupplier"`
	Price       json.Number `json:"price"`
	Stock       int         `json:"stock"`
	Description string      `json:"description"`
	CategoryID  int         `json:"categoryId"`
	ImageURL    string      `json:"imageUrl"`
	Supplier    *Supplier   `json:"supplier,omitempty"`
	Category    *Category   `json:"category,omitempty"`
}

type ProductInput struct {
	Name        string  `json:"name"`
	RutSupplier string  `json:"rutSupplier"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Description string  `json:"description"`
	CategoryID  int     `json:"categoryId"`
	ImageURL    string  `json:"imageUrl"`
}

func (s *Service) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := s.api.Get(ctx, endpoints.Products, &products); err != nil {
		return nil, errors.Wrapf(err, "[shop ListProducts]")
	}
	return products, nil
}

func (s *Service) ListProductsByCategory(ctx context.Context, categoryID int) ([]Product, error) {
	var products []Product
	if err := s.api.Get(ctx, endpoints.ProductsByCategory(categoryID), &products); err != nil {
		return nil, errors.Wrapf(err, "[shop ListProductsByCategory] %d", categoryID)
	}
	return products, nil
}

func (s *Service) GetProduct(ctx context.Context, id int) (*Product, error) {
	var product Product
	if err := s.api.Get(ctx, endpoints.Product(strconv.Itoa(id)), &product); err != nil {
		return nil, errors.Wrapf(err, "[shop GetProduct] %d", id)
	}
	return &product, nil
}

func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (*Product, error) {
	var product Product
	if err := s.api.Post(ctx, endpoints.Products, in, &product); err != nil {
		return nil, errors.Wrapf(err, "[shop CreateProduct]")
	}
	return &product, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id int, in ProductInput) (*Product, error) {
	var product Product
	if err := s.api.Put(ctx, endpoints.Product(strconv.Itoa(id)), in, &product); err != nil {
		return nil, errors.Wrapf(err, "[shop UpdateProduct] %d", id)
	}
	return &product, nil
}

// PatchProduct sends only the given fields.
func (s *Service) PatchProduct(ctx context.Context, id int, fields map[string]any) (*Product, error) {
	var product Product
	if err := s.api.Patch(ctx, endpoints.Product(strconv.Itoa(id)), fields, &product); err != nil {
		return nil, errors.Wrapf(err, "[shop PatchProduct] %d", id)
	}
	return &product, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id int) error {
	return errors.Wrapf(s.api.Delete(ctx, endpoints.Product(strconv.Itoa(id)), nil), "[shop DeleteProduct] %d", id)
}
