package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/nexora/go-shop-api/internal/model"
	"github.com/nexora/go-shop-api/internal/service"
)

type fakeUserRepo struct {
	byEmail map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*model.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	user.ID = primitive.NewObjectID()
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	return r.byEmail[email], nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(r.byEmail))
	for _, u := range r.byEmail {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) SetActive(_ context.Context, id primitive.ObjectID, active bool) (bool, error) {
	u, _ := r.GetByID(context.Background(), id)
	if u == nil {
		return false, nil
	}
	u.Active = active
	return true, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	for email, u := range r.byEmail {
		if u.ID == id {
			delete(r.byEmail, email)
			return true, nil
		}
	}
	return false, nil
}

func newAuthRouter(t *testing.T) (*gin.Engine, *fakeUserRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newFakeUserRepo()
	svc := service.NewAuthService(repo, []byte("test-secret"), time.Hour)
	h := NewAuthHandler(svc, zap.NewNop())

	r := gin.New()
	r.POST("/api/users/register", h.Register)
	r.POST("/api/users/login", h.Login)
	return r, repo
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	r, repo := newAuthRouter(t)

	w := postJSON(r, "/api/users/register",
		`{"name":"Alice","email":"alice@example.com","password":"hunter2hunter2"}`)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.NotNil(t, repo.byEmail["alice@example.com"])
}

func TestAuthHandler_Register_CollectsAllFieldErrors(t *testing.T) {
	r, _ := newAuthRouter(t)

	w := postJSON(r, "/api/users/register",
		`{"name":"","email":"not-an-email","password":"short"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Errors []fieldError `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Errors, 3)

	fields := make(map[string]string, len(resp.Errors))
	for _, fe := range resp.Errors {
		fields[fe.Field] = fe.Msg
	}
	assert.Equal(t, "Name is required", fields["Name"])
	assert.Equal(t, "Invalid email format", fields["Email"])
	assert.Equal(t, "Password must be at least 8 characters long", fields["Password"])
}

func TestAuthHandler_Register_MalformedBody(t *testing.T) {
	r, _ := newAuthRouter(t)

	w := postJSON(r, "/api/users/register", `{"name":`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request body")
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	r, _ := newAuthRouter(t)

	body := `{"name":"Alice","email":"alice@example.com","password":"hunter2hunter2"}`
	require.Equal(t, http.StatusCreated, postJSON(r, "/api/users/register", body).Code)

	w := postJSON(r, "/api/users/register", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"msg":"User already exists"}`, w.Body.String())
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	r, _ := newAuthRouter(t)

	body := `{"name":"Alice","email":"alice@example.com","password":"hunter2hunter2"}`
	require.Equal(t, http.StatusCreated, postJSON(r, "/api/users/register", body).Code)

	w := postJSON(r, "/api/users/login",
		`{"email":"alice@example.com","password":"wrong-password"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"msg":"Invalid credentials"}`, w.Body.String())

	w = postJSON(r, "/api/users/login",
		`{"email":"alice@example.com","password":"hunter2hunter2"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}
