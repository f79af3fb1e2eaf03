package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nexora/go-shop-api/internal/model"
)

// Integration tests run against a real MongoDB instance. Set
// TEST_MONGO_URL (e.g. mongodb://localhost:27017) to enable them.
var testDB *mongo.Database

func TestMain(m *testing.M) {
	url := os.Getenv("TEST_MONGO_URL")
	if url == "" {
		os.Exit(m.Run())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := Connect(ctx, url)
	cancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect to test MongoDB: %v\n", err)
		os.Exit(1)
	}

	testDB = client.Database(fmt.Sprintf("shop_test_%d", time.Now().UnixNano()))
	if err := EnsureIndexes(context.Background(), testDB); err != nil {
		fmt.Fprintf(os.Stderr, "ensure indexes: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	_ = testDB.Drop(context.Background())
	_ = client.Disconnect(context.Background())
	os.Exit(code)
}

func requireMongo(t *testing.T) {
	t.Helper()
	if testDB == nil {
		t.Skip("TEST_MONGO_URL not set")
	}
}

func TestProductRepository_CRUD(t *testing.T) {
	requireMongo(t)
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	p := &model.Product{
		Name:              "Walnut Desk",
		Description:       "Solid walnut standing desk",
		Price:             decimal.RequireFromString("499.99"),
		QuantityAvailable: 12,
		Category:          "furniture",
		Featured:          true,
	}
	require.NoError(t, repo.Create(ctx, p))
	require.False(t, p.ID.IsZero())

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	// Price survives the Decimal128 round trip exactly.
	assert.True(t, got.Price.Equal(decimal.RequireFromString("499.99")))
	assert.Equal(t, "Walnut Desk", got.Name)

	got.Price = decimal.RequireFromString("450.00")
	require.NoError(t, repo.Update(ctx, got))

	updated, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("450.00")))

	ok, err := repo.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	gone, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestProductRepository_SearchAndCategories(t *testing.T) {
	requireMongo(t)
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	for _, p := range []*model.Product{
		{Name: "Trail Runner", Description: "Lightweight trail shoe", Price: decimal.NewFromInt(89), Category: "shoes"},
		{Name: "Road Runner", Description: "Cushioned road shoe", Price: decimal.NewFromInt(99), Category: "shoes"},
		{Name: "Rain Jacket", Description: "Waterproof shell", Price: decimal.NewFromInt(120), Category: "apparel", Featured: true},
	} {
		require.NoError(t, repo.Create(ctx, p))
	}

	// Case-insensitive match on name or description.
	results, err := repo.Search(ctx, "runner")
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = repo.Search(ctx, "WATERPROOF")
	require.NoError(t, err)
	assert.Len(t, results, 1)

	cats, err := repo.Categories(ctx)
	require.NoError(t, err)
	assert.Contains(t, cats, "shoes")
	assert.Contains(t, cats, "apparel")

	featured, err := repo.Featured(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, featured)
	for _, p := range featured {
		assert.True(t, p.Featured)
	}
}

func TestUserRepository_UniqueEmail(t *testing.T) {
	requireMongo(t)
	repo := NewUserRepository(testDB)
	ctx := context.Background()

	u := &model.User{
		Name:      "Dana",
		Email:     fmt.Sprintf("dana-%d@example.com", time.Now().UnixNano()),
		Password:  "hashed",
		Role:      model.RoleUser,
		Active:    true,
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(ctx, u))

	dup := *u
	dup.ID = primitive.NilObjectID
	err := repo.Create(ctx, &dup)
	assert.True(t, mongo.IsDuplicateKeyError(err))

	got, err := repo.GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Dana", got.Name)

	missing, err := repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCartRepository_UpsertReplacesItems(t *testing.T) {
	requireMongo(t)
	repo := NewCartRepository(testDB)
	ctx := context.Background()

	userID := primitive.NewObjectID()
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()

	// First save creates the cart.
	require.NoError(t, repo.SaveItems(ctx, userID, []model.CartItem{{ProductID: first, Quantity: 2}}))

	cart, err := repo.GetByUser(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, cart)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)

	// Second save replaces the whole item list.
	require.NoError(t, repo.SaveItems(ctx, userID, []model.CartItem{
		{ProductID: first, Quantity: 5},
		{ProductID: second, Quantity: 1},
	}))

	cart, err = repo.GetByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestOrderRepository_SetStatusField(t *testing.T) {
	requireMongo(t)
	repo := NewOrderRepository(testDB)
	ctx := context.Background()

	order := &model.Order{
		UserID: primitive.NewObjectID(),
		Products: []model.OrderItem{
			{ProductID: primitive.NewObjectID(), Quantity: 1, Price: decimal.NewFromInt(25)},
		},
		TotalPrice:      decimal.NewFromInt(25),
		ShippingAddress: "1 Main St",
		PaymentMethod:   "card",
		Status:          model.OrderStatusPending,
		PaymentStatus:   model.PaymentStatusPending,
		ShippingStatus:  model.ShippingStatusProcessing,
		CreatedAt:       time.Now(),
	}
	require.NoError(t, repo.Create(ctx, order))
	require.False(t, order.ID.IsZero())

	updated, err := repo.SetStatusField(ctx, order.ID, "status", model.OrderStatusDelivered)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, model.OrderStatusDelivered, updated.Status)

	missing, err := repo.SetStatusField(ctx, primitive.NewObjectID(), "status", model.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
