package shop

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jrsteele09/go-shop-admin/endpoints"
	"github.com/jrsteele09/go-shop-admin/internal/errors"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pendiente"
	OrderInProgress OrderStatus = "en proceso"
	OrderDelivered  OrderStatus = "entregado"
	OrderCancelled  OrderStatus = "cancelado"
)

var orderStatuses = map[OrderStatus]struct{}{
	OrderPending:    {},
	OrderInProgress: {},
	OrderDelivered:  {},
	OrderCancelled:  {},
}

// ParseOrderStatus accepts any casing, e.g. "En proceso".
func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := orderStatuses[status]; !ok {
		return "", errors.Wrapf(ErrUnknownStatus, "%q", s)
	}
	return status, nil
}

type Customer struct {
	Rut   string  `json:"rut"`
	Name  string  `json:"name"`
	Email *string `json:"email"`
}

type OrderProduct struct {
	ProductID int         `json:"productId"`
	Name      string      `json:"name"`
	ImageURL  string      `json:"imageUrl"`
	Price     json.Number `json:"price"`
}

type OrderDetail struct {
	OrderDetailID int          `json:"orderDetailId"`
	OrderID       int          `json:"orderId"`
	ProductID     int          `json:"productId"`
	Quantity      int          `json:"quantity"`
	UnitPrice     json.Number  `json:"unitPrice"`
	Subtotal      json.Number  `json:"subtotal"`
	Product       OrderProduct `json:"product"`
}

type Order struct {
	OrderID         int           `json:"orderId"`
	Rut             string        `json:"rut"`
	OrderDate       string        `json:"orderDate"`
	TotalAmount     json.Number   `json:"totalAmount"`
	Status          OrderStatus   `json:"status"`
	ShippingAddress string        `json:"shippingAddress"`
	UserID          int           `json:"userId"`
	Customer        Customer      `json:"customer"`
	OrderDetails    []OrderDetail `json:"orderDetails"`
}

func (s *Service) ListOrders(ctx context.Context) ([]Order, error) {
	var resp struct {
		Orders []Order `json:"orders"`
	}
	if err := s.api.Get(ctx, endpoints.Orders, &resp); err != nil {
		return nil, errors.Wrapf(err, "[shop ListOrders]")
	}
	if resp.Orders == nil {
		return []Order{}, nil
	}
	return resp.Orders, nil
}

func (s *Service) GetOrder(ctx context.Context, id int) (*Order, error) {
	var order Order
	if err := s.api.Get(ctx, endpoints.Order(id), &order); err != nil {
		return nil, errors.Wrapf(err, "[shop GetOrder] %d", id)
	}
	return &order, nil
}

func (s *Service) UpdateOrderStatus(ctx context.Context, id int, status string) error {
	parsed, err := ParseOrderStatus(status)
	if err != nil {
		return err
	}
	body := map[string]OrderStatus{"status": parsed}
	return errors.Wrapf(s.api.Put(ctx, endpoints.OrderStatus(id), body, nil), "[shop UpdateOrderStatus] %d", id)
}
