package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nexora/go-shop-api/internal/auth"
	"github.com/nexora/go-shop-api/internal/model"
)

const (
	// TokenHeader is the request header clients send the token in. Kept as
	// the non-standard x-auth-token header existing clients already use.
	TokenHeader = "x-auth-token"

	ctxUserID   = "userID"
	ctxUserRole = "userRole"
)

func AuthRequired(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.GetHeader(TokenHeader)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
			return
		}

		claims, err := auth.Parse(secret, tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
			return
		}

		c.Set(ctxUserID, userID)
		c.Set(ctxUserRole, claims.Role)
		c.Next()
	}
}

// AdminOnly rejects non-admin users with 401. Clients treat any 401 as a
// prompt to re-authenticate, so role failures use the same status as token
// failures.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserRole(c) != model.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Unauthorized access"})
			return
		}
		c.Next()
	}
}

func GetUserID(c *gin.Context) primitive.ObjectID {
	id, _ := c.Get(ctxUserID)
	uid, _ := id.(primitive.ObjectID)
	return uid
}

func GetUserRole(c *gin.Context) string {
	role, _ := c.Get(ctxUserRole)
	r, _ := role.(string)
	return r
}
