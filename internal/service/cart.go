package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nexora/go-shop-api/internal/model"
	"github.com/nexora/go-shop-api/internal/repository"
)

var (
	ErrCartNotFound     = errors.New("cart not found")
	ErrCartItemNotFound = errors.New("product not found in cart")
)

type CartService struct {
	cartRepo repository.CartRepository
}

func NewCartService(cartRepo repository.CartRepository) *CartService {
	return &CartService{cartRepo: cartRepo}
}

// AddItem creates the cart lazily on first use. Re-adding a product merges
// into the existing line item instead of appending a duplicate.
//
// The read-modify-write below is not transactional: two concurrent cart
// mutations for the same user race and the last full-document write wins.
func (s *CartService) AddItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) error {
	cart, err := s.cartRepo.GetByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("get cart: %w", err)
	}

	var items []model.CartItem
	if cart != nil {
		items = cart.Items
	}

	merged := false
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, model.CartItem{ProductID: productID, Quantity: quantity})
	}

	return s.cartRepo.SaveItems(ctx, userID, items)
}

func (s *CartService) UpdateItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) error {
	cart, err := s.cartRepo.GetByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("get cart: %w", err)
	}
	if cart == nil {
		return ErrCartNotFound
	}

	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = quantity
			return s.cartRepo.SaveItems(ctx, userID, cart.Items)
		}
	}
	return ErrCartItemNotFound
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) error {
	cart, err := s.cartRepo.GetByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("get cart: %w", err)
	}
	if cart == nil {
		return ErrCartNotFound
	}

	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			items := append(cart.Items[:i], cart.Items[i+1:]...)
			return s.cartRepo.SaveItems(ctx, userID, items)
		}
	}
	return ErrCartItemNotFound
}
