package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/nexora/go-shop-api/internal/dto"
	"github.com/nexora/go-shop-api/internal/service"
)

type ProductHandler struct {
	svc *service.ProductService
	log *zap.Logger
}

func NewProductHandler(svc *service.ProductService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{svc: svc, log: log}
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationFailed(c, err)
		return
	}

	if err := h.svc.Create(c.Request.Context(), req); err != nil {
		if errors.Is(err, service.ErrNegativePrice) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []fieldError{{Field: "price", Msg: "Price must not be negative"}}})
			return
		}
		internalError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"msg": "Product created successfully"})
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return
	}

	product, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "Product not found"})
			return
		}
		internalError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.svc.List(c.Request.Context())
	if err != nil {
		internalError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Search(c *gin.Context) {
	products, err := h.svc.Search(c.Request.Context(), c.Query("keyword"))
	if err != nil {
		internalError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Categories(c *gin.Context) {
	categories, err := h.svc.Categories(c.Request.Context())
	if err != nil {
		internalError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *ProductHandler) Featured(c *gin.Context) {
	products, err := h.svc.Featured(c.Request.Context())
	if err != nil {
		internalError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Related(c *gin.Context) {
	products, err := h.svc.Related(c.Request.Context(), c.Param("category"))
	if err != nil {
		internalError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return
	}

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationFailed(c, err)
		return
	}

	if err := h.svc.Update(c.Request.Context(), id, req); err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"msg": "Product not found"})
		case errors.Is(err, service.ErrNegativePrice):
			c.JSON(http.StatusBadRequest, gin.H{"errors": []fieldError{{Field: "price", Msg: "Price must not be negative"}}})
		default:
			internalError(c, h.log, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Product updated successfully"})
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "Product not found"})
			return
		}
		internalError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Product deleted successfully"})
}
