package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/nexora/go-shop-api/internal/dto"
	"github.com/nexora/go-shop-api/internal/model"
	"github.com/nexora/go-shop-api/internal/service"
)

type OrderHandler struct {
	svc *service.OrderService
	log *zap.Logger
}

func NewOrderHandler(svc *service.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, log: log}
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationFailed(c, err)
		return
	}

	if err := h.svc.Create(c.Request.Context(), req); err != nil {
		internalError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"msg": "Order created successfully"})
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	order, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) GetStatus(c *gin.Context) {
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	order, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": order.Status})
}

func (h *OrderHandler) ListByUser(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}

	orders, err := h.svc.ListByUser(c.Request.Context(), userID)
	if err != nil {
		internalError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationFailed(c, err)
		return
	}

	if err := h.svc.Update(c.Request.Context(), id, req); err != nil {
		h.respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Order updated successfully"})
}

func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Order deleted successfully"})
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := h.orderID(c)
	if !ok {
		return
	}
	h.respondUpdated(c, func() (*model.Order, error) {
		return h.svc.Cancel(c.Request.Context(), id)
	})
}

func (h *OrderHandler) MarkDelivered(c *gin.Context) {
	id, ok := h.orderID(c)
	if !ok {
		return
	}
	h.respondUpdated(c, func() (*model.Order, error) {
		return h.svc.MarkDelivered(c.Request.Context(), id)
	})
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationFailed(c, err)
		return
	}

	h.respondUpdated(c, func() (*model.Order, error) {
		return h.svc.UpdateStatus(c.Request.Context(), id, req.Status)
	})
}

func (h *OrderHandler) UpdateShippingStatus(c *gin.Context) {
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	var req dto.UpdateShippingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationFailed(c, err)
		return
	}

	h.respondUpdated(c, func() (*model.Order, error) {
		return h.svc.UpdateShippingStatus(c.Request.Context(), id, req.ShippingStatus)
	})
}

func (h *OrderHandler) orderID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
		return primitive.NilObjectID, false
	}
	return id, true
}

func (h *OrderHandler) respondUpdated(c *gin.Context, update func() (*model.Order, error)) {
	order, err := update()
	if err != nil {
		h.respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) respondOrderError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrOrderNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Order not found"})
		return
	}
	internalError(c, h.log, err)
}
