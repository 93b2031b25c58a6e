package services

import (
	"context"
	"strings"
	"time"

	"github.com/Kalaitechtubee/ratan-decor-api/internal/auth"
	"github.com/Kalaitechtubee/ratan-decor-api/internal/domain"
	"github.com/Kalaitechtubee/ratan-decor-api/internal/repository"
	"github.com/sirupsen/logrus"
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     string
}

type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

type AuthService struct {
	store repository.Store
	jwt   *auth.JWTService
	log   *logrus.Logger
}

func NewAuthService(store repository.Store, jwt *auth.JWTService, log *logrus.Logger) *AuthService {
	return &AuthService{store: store, jwt: jwt, log: log}
}

// Register creates a customer account. Only the three customer tiers are
// self-assignable; staff roles are provisioned out of band.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if in.Name == "" || in.Email == "" {
		return nil, NewValidationError("name and email are required")
	}

	role := domain.Role(in.Role)
	switch role {
	case domain.RoleArchitect, domain.RoleDealer:
	default:
		role = domain.RoleGeneral
	}

	existing, err := s.store.Users().FindByEmail(ctx, strings.ToLower(in.Email))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, NewValidationError("email already registered")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, NewValidationError(err.Error())
	}

	user := &domain.User{
		Name:         in.Name,
		Email:        strings.ToLower(in.Email),
		PasswordHash: hash,
		Phone:        in.Phone,
		Role:         role,
	}
	if err := s.store.Users().Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"userId": user.ID, "role": user.Role}).Info("registered user")

	return s.issueToken(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.store.Users().FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.CheckPassword(password, user.PasswordHash) {
		return nil, NewValidationError("invalid email or password")
	}

	return s.issueToken(user)
}

func (s *AuthService) issueToken(user *domain.User) (*AuthResult, error) {
	token, expiresAt, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}
