package credentials

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/apperr"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/db"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/models"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/validation"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyRegistered  = errors.New("credentials already exist")
)

const msgAlreadyRegistered = "Email already registered"

// UserStore is the slice of the user repository the service needs.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// SignupInput is the signup request body. Field order is the order checks run in.
type SignupInput struct {
	Name     string `json:"name" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,simpleemail"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone" validate:"required,digits10"`
	Type     string `json:"type" validate:"omitempty,oneof=admin user"`
	Address  string `json:"address" validate:"required"`
}

var signupMessages = validation.Messages{
	"name":     "Name is required and should be at least 3 characters long.",
	"email":    "Email is required and should be a valid email",
	"password": "Password is required and should be at least 8 characters",
	"phone":    "Phone is required and should be exactly 10 digits",
	"type":     "type must be admin or user",
	"address":  "Address is required",
}

type Service struct {
	users     UserStore
	validator *validation.Validator
}

func NewService(users UserStore, v *validation.Validator) *Service {
	return &Service{users: users, validator: v}
}

// Register validates in, hashes the password and stores a new user. The
// unique email index decides duplicates.
func (s *Service) Register(ctx context.Context, in SignupInput) (*models.User, error) {
	in.Email = normalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)

	res := s.validator.Check(&in, validation.FailFast, signupMessages)
	if first, failed := res.First(); failed {
		return nil, apperr.ValidationFields(first.Message, res.Errors)
	}

	userType := models.UserType(in.Type)
	if userType == "" {
		userType = models.UserTypeUser
	}

	hash, _, err := HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("credentials: hash: %w", err))
	}

	u := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Phone:    in.Phone,
		Type:     userType,
		Address:  in.Address,
	}

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, apperr.Conflict(msgAlreadyRegistered, fmt.Errorf("%w: %w", ErrAlreadyRegistered, err))
		}
		return nil, apperr.Internal(err)
	}

	return u, nil
}

// Authenticate returns the user owning email and password. A missing user
// and a wrong password both give ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email string, password string) (*models.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, db.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := VerifyPassword(u.Password, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
