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

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Order, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Order, error)
	Update(ctx context.Context, order *model.Order) error
	// SetStatusField overwrites a single status-like field and returns the
	// updated order, or nil if no order matched. No transition legality is
	// checked.
	SetStatusField(ctx context.Context, id primitive.ObjectID, field, value string) (*model.Order, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type mongoOrderRepo struct {
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) OrderRepository {
	return &mongoOrderRepo{coll: db.Collection("orders")}
}

func (r *mongoOrderRepo) Create(ctx context.Context, order *model.Order) error {
	res, err := r.coll.InsertOne(ctx, order)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	order.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoOrderRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Order, error) {
	order := &model.Order{}
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order by id: %w", err)
	}
	return order, nil
}

func (r *mongoOrderRepo) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Order, error) {
	cur, err := r.coll.Find(ctx, bson.M{"user": userID})
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	var orders []model.Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

func (r *mongoOrderRepo) Update(ctx context.Context, order *model.Order) error {
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": order.ID}, order)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

func (r *mongoOrderRepo) SetStatusField(ctx context.Context, id primitive.ObjectID, field, value string) (*model.Order, error) {
	order := &model.Order{}
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{field: value}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("set order %s: %w", field, err)
	}
	return order, nil
}

func (r *mongoOrderRepo) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("delete order: %w", err)
	}
	return res.DeletedCount > 0, nil
}
