package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/nexora/go-shop-api/internal/auth"
	"github.com/nexora/go-shop-api/internal/dto"
	"github.com/nexora/go-shop-api/internal/model"
	"github.com/nexora/go-shop-api/internal/repository"
)

var (
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// a caller cannot probe which one was at fault.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type AuthService struct {
	userRepo repository.UserRepository
	secret   []byte
	expiry   time.Duration
}

func NewAuthService(userRepo repository.UserRepository, secret []byte, expiry time.Duration) *AuthService {
	return &AuthService{userRepo: userRepo, secret: secret, expiry: expiry}
}

func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (string, error) {
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", fmt.Errorf("check user: %w", err)
	}
	if existing != nil {
		return "", ErrUserAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hashed),
		Role:      model.RoleUser,
		Active:    true,
		CreatedAt: time.Now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}

	token, err := auth.Generate(s.secret, user.ID.Hex(), user.Role, s.expiry)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}

func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := auth.Generate(s.secret, user.ID.Hex(), user.Role, s.expiry)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}
