package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

type HealthHandler struct {
	client *mongo.Client
}

func NewHealthHandler(client *mongo.Client) *HealthHandler {
	return &HealthHandler{client: client}
}

func (h *HealthHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *HealthHandler) Readyz(c *gin.Context) {
	if err := h.client.Ping(c.Request.Context(), nil); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "mongo": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "mongo": "connected"})
}
