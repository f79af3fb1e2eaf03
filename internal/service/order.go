package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nexora/go-shop-api/internal/dto"
	"github.com/nexora/go-shop-api/internal/model"
	"github.com/nexora/go-shop-api/internal/repository"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderService struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

// Create stores the order as submitted. The total price is taken from the
// caller, not recomputed from the line items.
func (s *OrderService) Create(ctx context.Context, req dto.CreateOrderRequest) error {
	products := make([]model.OrderItem, 0, len(req.Products))
	for _, p := range req.Products {
		products = append(products, model.OrderItem{
			ProductID: p.Product,
			Quantity:  p.Quantity,
			Price:     p.Price,
		})
	}

	order := &model.Order{
		UserID:          req.User,
		Products:        products,
		TotalPrice:      req.TotalPrice,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		Status:          model.OrderStatusPending,
		PaymentStatus:   model.PaymentStatusPending,
		ShippingStatus:  model.ShippingStatusProcessing,
		CreatedAt:       time.Now(),
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func (s *OrderService) Get(ctx context.Context, id primitive.ObjectID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID)
}

// Update overwrites only the non-zero fields of the request.
func (s *OrderService) Update(ctx context.Context, id primitive.ObjectID, req dto.UpdateOrderRequest) error {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return ErrOrderNotFound
	}

	if !req.User.IsZero() {
		order.UserID = req.User
	}
	if len(req.Products) > 0 {
		products := make([]model.OrderItem, 0, len(req.Products))
		for _, p := range req.Products {
			products = append(products, model.OrderItem{
				ProductID: p.Product,
				Quantity:  p.Quantity,
				Price:     p.Price,
			})
		}
		order.Products = products
	}
	if !req.TotalPrice.IsZero() {
		order.TotalPrice = req.TotalPrice
	}
	if req.ShippingAddress != "" {
		order.ShippingAddress = req.ShippingAddress
	}
	if req.PaymentMethod != "" {
		order.PaymentMethod = req.PaymentMethod
	}

	return s.orderRepo.Update(ctx, order)
}

func (s *OrderService) Delete(ctx context.Context, id primitive.ObjectID) error {
	found, err := s.orderRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if !found {
		return ErrOrderNotFound
	}
	return nil
}

// Status-field updates below are unconditional overwrites; any status is
// reachable from any other, including out of terminal states.

func (s *OrderService) Cancel(ctx context.Context, id primitive.ObjectID) (*model.Order, error) {
	return s.setStatusField(ctx, id, "status", model.OrderStatusCancelled)
}

func (s *OrderService) MarkDelivered(ctx context.Context, id primitive.ObjectID) (*model.Order, error) {
	return s.setStatusField(ctx, id, "status", model.OrderStatusDelivered)
}

func (s *OrderService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*model.Order, error) {
	return s.setStatusField(ctx, id, "status", status)
}

func (s *OrderService) UpdateShippingStatus(ctx context.Context, id primitive.ObjectID, status string) (*model.Order, error) {
	return s.setStatusField(ctx, id, "shippingStatus", status)
}

func (s *OrderService) setStatusField(ctx context.Context, id primitive.ObjectID, field, value string) (*model.Order, error) {
	order, err := s.orderRepo.SetStatusField(ctx, id, field, value)
	if err != nil {
		return nil, fmt.Errorf("update order %s: %w", field, err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}
