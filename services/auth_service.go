package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/appdotbuilder/food-catalog/models"
	"github.com/appdotbuilder/food-catalog/utils"
)

type AuthService struct {
	db     *gorm.DB
	secret []byte
	ttl    time.Duration
	log    *slog.Logger
}

func NewAuthService(db *gorm.DB, secret string, ttl time.Duration, log *slog.Logger) *AuthService {
	if log == nil {
		log = slog.Default()
	}
	return &AuthService{db: db, secret: []byte(secret), ttl: ttl, log: log}
}

// Login checks an admin's credentials and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", &UnauthorizedError{Reason: "email and password are required"}
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", &UnauthorizedError{Reason: "invalid credentials"}
		}
		return "", fmt.Errorf("looking up admin: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		s.log.WarnContext(ctx, "admin login rejected", "email", email)
		return "", &UnauthorizedError{Reason: "invalid credentials"}
	}

	token, err := utils.GenerateJWT(s.secret, user.ID, user.Email, s.ttl)
	if err != nil {
		return "", err
	}
	s.log.InfoContext(ctx, "admin logged in", "user_id", user.ID)
	return token, nil
}

// EnsureAdmin creates the admin account, or resets its password and name
// when the email already exists.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password, name string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, errors.New("admin email and password are required")
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing admin password: %w", err)
	}

	var user models.User
	err = s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{Email: email, Password: hashed, Name: name}
		if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
			return nil, fmt.Errorf("creating admin: %w", err)
		}
		s.log.InfoContext(ctx, "admin created", "email", email)
	case err != nil:
		return nil, fmt.Errorf("looking up admin: %w", err)
	default:
		user.Password = hashed
		user.Name = name
		if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
			return nil, fmt.Errorf("updating admin: %w", err)
		}
		s.log.InfoContext(ctx, "admin updated", "email", email)
	}
	return &user, nil
}
