package shop

import (
	"context"

	"github.com/jrsteele09/go-shop-admin/endpoints"
	"github.com/jrsteele09/go-shop-admin/internal/errors"
)

type StockOperation string

const (
	StockIncrease StockOperation = "add"
	StockDecrease StockOperation = "remove"
)

// StockRecord is returned as-is; its shape is owned by the backend.
type StockRecord map[string]any

type StockChange struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

func (s *Service) ListStock(ctx context.Context) ([]StockRecord, error) {
	var records []StockRecord
	if err := s.api.Get(ctx, endpoints.Stock, &records); err != nil {
		return nil, errors.Wrapf(err, "[shop ListStock]")
	}
	return records, nil
}

func (s *Service) GetStock(ctx context.Context, id string) (StockRecord, error) {
	var record StockRecord
	if err := s.api.Get(ctx, endpoints.StockItem(id), &record); err != nil {
		return nil, errors.Wrapf(err, "[shop GetStock] %s", id)
	}
	return record, nil
}

func (s *Service) UpdateStock(ctx context.Context, id string, fields map[string]any) (StockRecord, error) {
	var record StockRecord
	if err := s.api.Put(ctx, endpoints.StockItem(id), fields, &record); err != nil {
		return nil, errors.Wrapf(err, "[shop UpdateStock] %s", id)
	}
	return record, nil
}

func (s *Service) AddStock(ctx context.Context, change StockChange) (StockRecord, error) {
	return s.moveStock(ctx, endpoints.StockAdd, change)
}

func (s *Service) RemoveStock(ctx context.Context, change StockChange) (StockRecord, error) {
	return s.moveStock(ctx, endpoints.StockRemove, change)
}

func (s *Service) moveStock(ctx context.Context, path string, change StockChange) (StockRecord, error) {
	if change.Quantity <= 0 {
		return nil, errors.Wrapf(ErrInvalidQuantity, "[shop moveStock] %d", change.Quantity)
	}
	var record StockRecord
	if err := s.api.Post(ctx, path, change, &record); err != nil {
		return nil, errors.Wrapf(err, "[shop moveStock] %s", path)
	}
	return record, nil
}

// AdjustStock reads the product's current level, applies the operation and
// patches the new level. A decrease below zero is refused before anything is
// sent. The read and the write are separate calls, so a concurrent change
// between them is overwritten.
func (s *Service) AdjustStock(ctx context.Context, productID, quantity int, op StockOperation) (*Product, error) {
	if quantity <= 0 {
		return nil, errors.Wrapf(ErrInvalidQuantity, "[shop AdjustStock] %d", quantity)
	}
	current, err := s.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	var level int
	switch op {
	case StockIncrease:
		level = current.Stock + quantity
	case StockDecrease:
		if current.Stock < quantity {
			return nil, errors.Wrapf(ErrInsufficientStock, "[shop AdjustStock] product %d has %d, cannot remove %d", productID, current.Stock, quantity)
		}
		level = current.Stock - quantity
	default:
		return nil, errors.Wrapf(errors.ErrUnsupported, "[shop AdjustStock] operation %q", op)
	}

	return s.PatchProduct(ctx, productID, map[string]any{"stock": level})
}

// ParseStockOperation maps the CLI spelling to an operation.
func ParseStockOperation(s string) (StockOperation, error) {
	switch StockOperation(s) {
	case StockIncrease, StockDecrease:
		return StockOperation(s), nil
	}
	return "", errors.Wrapf(errors.ErrUnsupported, "operation %q", s)
}
