package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nexora/go-shop-api/internal/dto"
	"github.com/nexora/go-shop-api/internal/model"
	"github.com/nexora/go-shop-api/internal/repository"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrNegativePrice   = errors.New("price must not be negative")
)

type ProductService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

func (s *ProductService) Create(ctx context.Context, req dto.CreateProductRequest) error {
	if req.Price.IsNegative() {
		return ErrNegativePrice
	}
	product := &model.Product{
		Name:              req.Name,
		Description:       req.Description,
		Price:             req.Price,
		QuantityAvailable: req.QuantityAvailable,
		Category:          req.Category,
		Featured:          req.Featured,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (s *ProductService) Get(ctx context.Context, id primitive.ObjectID) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *ProductService) List(ctx context.Context) ([]model.Product, error) {
	return s.productRepo.List(ctx)
}

func (s *ProductService) Search(ctx context.Context, keyword string) ([]model.Product, error) {
	return s.productRepo.Search(ctx, keyword)
}

func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	return s.productRepo.Categories(ctx)
}

func (s *ProductService) Featured(ctx context.Context) ([]model.Product, error) {
	return s.productRepo.Featured(ctx)
}

func (s *ProductService) Related(ctx context.Context, category string) ([]model.Product, error) {
	return s.productRepo.ByCategory(ctx, category)
}

// Update overwrites only the fields with non-zero values in the request; a
// zero price or quantity keeps the stored value.
func (s *ProductService) Update(ctx context.Context, id primitive.ObjectID, req dto.UpdateProductRequest) error {
	if req.Price.IsNegative() {
		return ErrNegativePrice
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return ErrProductNotFound
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if !req.Price.IsZero() {
		product.Price = req.Price
	}
	if req.QuantityAvailable != 0 {
		product.QuantityAvailable = req.QuantityAvailable
	}
	if req.Category != "" {
		product.Category = req.Category
	}

	return s.productRepo.Update(ctx, product)
}

func (s *ProductService) Delete(ctx context.Context, id primitive.ObjectID) error {
	found, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if !found {
		return ErrProductNotFound
	}
	return nil
}
