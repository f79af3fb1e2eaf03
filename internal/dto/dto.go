package dto

import (
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Auth ---

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// --- User ---

// Zero-valued fields are treated as "not provided" and keep the stored value.
type UpdateProfileRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email" binding:"omitempty,email"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// --- Product ---

type CreateProductRequest struct {
	Name              string          `json:"name" binding:"required"`
	Description       string          `json:"description" binding:"required"`
	Price             decimal.Decimal `json:"price"`
	QuantityAvailable int             `json:"quantityAvailable" binding:"gte=0"`
	Category          string          `json:"category"`
	Featured          bool            `json:"featured"`
}

type UpdateProductRequest struct {
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"`
	QuantityAvailable int             `json:"quantityAvailable" binding:"omitempty,gte=0"`
	Category          string          `json:"category"`
}

// --- Cart ---

type AddCartItemRequest struct {
	ProductID primitive.ObjectID `json:"productId" binding:"required"`
	Quantity  int                `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	ProductID primitive.ObjectID `json:"productId" binding:"required"`
	Quantity  int                `json:"quantity" binding:"required,min=1"`
}

type RemoveCartItemRequest struct {
	ProductID primitive.ObjectID `json:"productId" binding:"required"`
}

// --- Order ---

type OrderItemRequest struct {
	Product  primitive.ObjectID `json:"product" binding:"required"`
	Quantity int                `json:"quantity" binding:"required,min=1"`
	Price    decimal.Decimal    `json:"price"`
}

type CreateOrderRequest struct {
	User            primitive.ObjectID `json:"user" binding:"required"`
	Products        []OrderItemRequest `json:"products" binding:"required,min=1,dive"`
	TotalPrice      decimal.Decimal    `json:"totalPrice"`
	ShippingAddress string             `json:"shippingAddress" binding:"required"`
	PaymentMethod   string             `json:"paymentMethod" binding:"required"`
}

type UpdateOrderRequest struct {
	User            primitive.ObjectID `json:"user"`
	Products        []OrderItemRequest `json:"products" binding:"omitempty,min=1,dive"`
	TotalPrice      decimal.Decimal    `json:"totalPrice"`
	ShippingAddress string             `json:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdateShippingStatusRequest struct {
	ShippingStatus string `json:"shippingStatus" binding:"required"`
}
