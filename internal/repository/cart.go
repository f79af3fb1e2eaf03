package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nexora/go-shop-api/internal/model"
)

type CartRepository interface {
	GetByUser(ctx context.Context, userID primitive.ObjectID) (*model.Cart, error)
	// SaveItems rewrites the full line-item array for the user's cart,
	// creating the cart document if it does not exist yet. Last write wins.
	SaveItems(ctx context.Context, userID primitive.ObjectID, items []model.CartItem) error
}

type mongoCartRepo struct {
	coll *mongo.Collection
}

func NewCartRepository(db *mongo.Database) CartRepository {
	return &mongoCartRepo{coll: db.Collection("carts")}
}

func (r *mongoCartRepo) GetByUser(ctx context.Context, userID primitive.ObjectID) (*model.Cart, error) {
	cart := &model.Cart{}
	err := r.coll.FindOne(ctx, bson.M{"user": userID}).Decode(cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return cart, nil
}

func (r *mongoCartRepo) SaveItems(ctx context.Context, userID primitive.ObjectID, items []model.CartItem) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"user": userID},
		bson.M{"$set": bson.M{"products": items}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("save cart items: %w", err)
	}
	return nil
}
