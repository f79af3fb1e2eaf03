package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nexora/go-shop-api/internal/auth"
)

var testSecret = []byte("test-secret")

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/user", AuthRequired(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": GetUserID(c).Hex(), "role": GetUserRole(c)})
	})
	r.GET("/admin", AuthRequired(testSecret), AdminOnly(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "ok"})
	})
	return r
}

func doRequest(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(TokenHeader, token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired_MissingToken(t *testing.T) {
	w := doRequest(setupRouter(), "/user", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "No token, authorization denied")
}

func TestAuthRequired_InvalidToken(t *testing.T) {
	w := doRequest(setupRouter(), "/user", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token is not valid")
}

func TestAuthRequired_ExpiredToken(t *testing.T) {
	token, err := auth.Generate(testSecret, primitive.NewObjectID().Hex(), "user", -time.Minute)
	require.NoError(t, err)

	w := doRequest(setupRouter(), "/user", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequired_ValidToken(t *testing.T) {
	id := primitive.NewObjectID()
	token, err := auth.Generate(testSecret, id.Hex(), "user", time.Hour)
	require.NoError(t, err)

	w := doRequest(setupRouter(), "/user", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), id.Hex())
}

func TestAdminOnly_NonAdmin(t *testing.T) {
	token, err := auth.Generate(testSecret, primitive.NewObjectID().Hex(), "user", time.Hour)
	require.NoError(t, err)

	// Role failures use 401, same as token failures.
	w := doRequest(setupRouter(), "/admin", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Unauthorized access")
}

func TestAdminOnly_Admin(t *testing.T) {
	token, err := auth.Generate(testSecret, primitive.NewObjectID().Hex(), "admin", time.Hour)
	require.NoError(t, err)

	w := doRequest(setupRouter(), "/admin", token)
	assert.Equal(t, http.StatusOK, w.Code)
}
