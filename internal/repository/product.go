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

// curatedListingCap bounds the curated listings (featured, related); the
// plain list and search endpoints stay unbounded.
const curatedListingCap = 5

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	Search(ctx context.Context, keyword string) ([]model.Product, error)
	Categories(ctx context.Context) ([]string, error)
	Featured(ctx context.Context) ([]model.Product, error)
	ByCategory(ctx context.Context, category string) ([]model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type mongoProductRepo struct {
	coll *mongo.Collection
}

func NewProductRepository(db *mongo.Database) ProductRepository {
	return &mongoProductRepo{coll: db.Collection("products")}
}

func (r *mongoProductRepo) Create(ctx context.Context, product *model.Product) error {
	res, err := r.coll.InsertOne(ctx, product)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	product.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoProductRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error) {
	product := &model.Product{}
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return product, nil
}

func (r *mongoProductRepo) List(ctx context.Context) ([]model.Product, error) {
	return r.find(ctx, bson.M{}, nil)
}

func (r *mongoProductRepo) Search(ctx context.Context, keyword string) ([]model.Product, error) {
	pattern := primitive.Regex{Pattern: keyword, Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"name": pattern},
		bson.M{"description": pattern},
	}}
	return r.find(ctx, filter, nil)
}

func (r *mongoProductRepo) Categories(ctx context.Context) ([]string, error) {
	values, err := r.coll.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("distinct categories: %w", err)
	}
	categories := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			categories = append(categories, s)
		}
	}
	return categories, nil
}

func (r *mongoProductRepo) Featured(ctx context.Context) ([]model.Product, error) {
	return r.find(ctx, bson.M{"featured": true}, options.Find().SetLimit(curatedListingCap))
}

func (r *mongoProductRepo) ByCategory(ctx context.Context, category string) ([]model.Product, error) {
	return r.find(ctx, bson.M{"category": category}, options.Find().SetLimit(curatedListingCap))
}

func (r *mongoProductRepo) Update(ctx context.Context, product *model.Product) error {
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

func (r *mongoProductRepo) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *mongoProductRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]model.Product, error) {
	var cur *mongo.Cursor
	var err error
	if opts != nil {
		cur, err = r.coll.Find(ctx, filter, opts)
	} else {
		cur, err = r.coll.Find(ctx, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	var products []model.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}
