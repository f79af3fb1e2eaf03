package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nexora/go-shop-api/internal/dto"
	"github.com/nexora/go-shop-api/internal/middleware"
	"github.com/nexora/go-shop-api/internal/service"
)

type CartHandler struct {
	svc *service.CartService
	log *zap.Logger
}

func NewCartHandler(svc *service.CartService, log *zap.Logger) *CartHandler {
	return &CartHandler{svc: svc, log: log}
}

func (h *CartHandler) Add(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationFailed(c, err)
		return
	}

	err := h.svc.AddItem(c.Request.Context(), middleware.GetUserID(c), req.ProductID, req.Quantity)
	if err != nil {
		internalError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Product added to cart successfully"})
}

func (h *CartHandler) Update(c *gin.Context) {
	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationFailed(c, err)
		return
	}

	err := h.svc.UpdateItem(c.Request.Context(), middleware.GetUserID(c), req.ProductID, req.Quantity)
	if err != nil {
		h.respondCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Cart updated successfully"})
}

func (h *CartHandler) Remove(c *gin.Context) {
	var req dto.RemoveCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationFailed(c, err)
		return
	}

	err := h.svc.RemoveItem(c.Request.Context(), middleware.GetUserID(c), req.ProductID)
	if err != nil {
		h.respondCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Product removed from cart successfully"})
}

func (h *CartHandler) respondCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCartNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
	case errors.Is(err, service.ErrCartItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found in cart"})
	default:
		internalError(c, h.log, err)
	}
}
