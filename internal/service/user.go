package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/nexora/go-shop-api/internal/dto"
	"github.com/nexora/go-shop-api/internal/model"
	"github.com/nexora/go-shop-api/internal/repository"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidOldPassword = errors.New("invalid old password")
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// UpdateProfile overwrites only the fields present and non-empty in the
// request; an empty value keeps the stored one.
func (s *UserService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, req dto.UpdateProfileRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Address != "" {
		user.Address = req.Address
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}

	return s.userRepo.Update(ctx, user)
}

func (s *UserService) ChangePassword(ctx context.Context, userID primitive.ObjectID, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return ErrInvalidOldPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.Password = string(hashed)

	return s.userRepo.Update(ctx, user)
}

// DeleteAccount removes the user document only; orders referencing the user
// are left in place.
func (s *UserService) DeleteAccount(ctx context.Context, userID primitive.ObjectID) error {
	found, err := s.userRepo.Delete(ctx, userID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if !found {
		return ErrUserNotFound
	}
	return nil
}

func (s *UserService) Get(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

func (s *UserService) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	found, err := s.userRepo.SetActive(ctx, id, active)
	if err != nil {
		return fmt.Errorf("set user active: %w", err)
	}
	if !found {
		return ErrUserNotFound
	}
	return nil
}
