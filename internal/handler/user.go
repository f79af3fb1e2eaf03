package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/nexora/go-shop-api/internal/dto"
	"github.com/nexora/go-shop-api/internal/middleware"
	"github.com/nexora/go-shop-api/internal/service"
)

type UserHandler struct {
	svc *service.UserService
	log *zap.Logger
}

func NewUserHandler(svc *service.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationFailed(c, err)
		return
	}

	err := h.svc.UpdateProfile(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "User not found"})
			return
		}
		internalError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Profile updated successfully"})
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationFailed(c, err)
		return
	}

	err := h.svc.ChangePassword(c.Request.Context(), middleware.GetUserID(c), req.OldPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"msg": "User not found"})
		case errors.Is(err, service.ErrInvalidOldPassword):
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid old password"})
		default:
			internalError(c, h.log, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Password updated successfully"})
}

func (h *UserHandler) DeleteAccount(c *gin.Context) {
	err := h.svc.DeleteAccount(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "User not found"})
			return
		}
		internalError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "User account deleted successfully"})
}

func (h *UserHandler) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}

	user, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "User not found"})
			return
		}
		internalError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.svc.List(c.Request.Context())
	if err != nil {
		internalError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Activate(c *gin.Context) {
	h.setActive(c, true, "User account activated successfully")
}

func (h *UserHandler) Deactivate(c *gin.Context) {
	h.setActive(c, false, "User account deactivated successfully")
}

func (h *UserHandler) setActive(c *gin.Context, active bool, msg string) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}

	if err := h.svc.SetActive(c.Request.Context(), id, active); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "User not found"})
			return
		}
		internalError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": msg})
}
