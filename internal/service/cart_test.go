package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nexora/go-shop-api/internal/model"
)

type mockCartRepo struct {
	carts map[primitive.ObjectID]*model.Cart // keyed by user ID
}

func newMockCartRepo() *mockCartRepo {
	return &mockCartRepo{carts: make(map[primitive.ObjectID]*model.Cart)}
}

func (m *mockCartRepo) GetByUser(_ context.Context, userID primitive.ObjectID) (*model.Cart, error) {
	return m.carts[userID], nil
}

func (m *mockCartRepo) SaveItems(_ context.Context, userID primitive.ObjectID, items []model.CartItem) error {
	cart, ok := m.carts[userID]
	if !ok {
		cart = &model.Cart{ID: primitive.NewObjectID(), UserID: userID}
		m.carts[userID] = cart
	}
	cart.Items = items
	return nil
}

func TestCartService_AddItem_CreatesCart(t *testing.T) {
	repo := newMockCartRepo()
	svc := NewCartService(repo)
	userID, productID := primitive.NewObjectID(), primitive.NewObjectID()

	err := svc.AddItem(context.Background(), userID, productID, 2)
	require.NoError(t, err)

	cart := repo.carts[userID]
	require.NotNil(t, cart)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

// Re-adding the same product merges quantities into one line item.
func TestCartService_AddItem_MergesExistingLineItem(t *testing.T) {
	repo := newMockCartRepo()
	svc := NewCartService(repo)
	userID, productID := primitive.NewObjectID(), primitive.NewObjectID()

	require.NoError(t, svc.AddItem(context.Background(), userID, productID, 2))
	require.NoError(t, svc.AddItem(context.Background(), userID, productID, 3))

	cart := repo.carts[userID]
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestCartService_UpdateItem(t *testing.T) {
	repo := newMockCartRepo()
	svc := NewCartService(repo)
	userID, productID := primitive.NewObjectID(), primitive.NewObjectID()

	require.NoError(t, svc.AddItem(context.Background(), userID, productID, 2))
	require.NoError(t, svc.UpdateItem(context.Background(), userID, productID, 7))

	assert.Equal(t, 7, repo.carts[userID].Items[0].Quantity)
}

func TestCartService_UpdateItem_NoCart(t *testing.T) {
	svc := NewCartService(newMockCartRepo())
	err := svc.UpdateItem(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), 1)
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestCartService_UpdateItem_ItemMissing(t *testing.T) {
	repo := newMockCartRepo()
	svc := NewCartService(repo)
	userID := primitive.NewObjectID()

	require.NoError(t, svc.AddItem(context.Background(), userID, primitive.NewObjectID(), 2))

	err := svc.UpdateItem(context.Background(), userID, primitive.NewObjectID(), 1)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartService_RemoveItem(t *testing.T) {
	repo := newMockCartRepo()
	svc := NewCartService(repo)
	userID, productID := primitive.NewObjectID(), primitive.NewObjectID()

	require.NoError(t, svc.AddItem(context.Background(), userID, productID, 2))
	require.NoError(t, svc.RemoveItem(context.Background(), userID, productID))

	assert.Empty(t, repo.carts[userID].Items)
}

// Removing an absent product fails and leaves the cart untouched.
func TestCartService_RemoveItem_ItemMissing(t *testing.T) {
	repo := newMockCartRepo()
	svc := NewCartService(repo)
	userID, productID := primitive.NewObjectID(), primitive.NewObjectID()

	require.NoError(t, svc.AddItem(context.Background(), userID, productID, 2))

	err := svc.RemoveItem(context.Background(), userID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrCartItemNotFound)

	cart := repo.carts[userID]
	require.Len(t, cart.Items, 1)
	assert.Equal(t, productID, cart.Items[0].ProductID)
}
