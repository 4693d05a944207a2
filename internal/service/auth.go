package service

import (
	"strings"
	"time"

	"github.com/muhammadarssy/backend-finances/internal/models"
	"github.com/muhammadarssy/backend-finances/internal/util"

	"gorm.io/gorm"
)

// AuthService handles registration, login, and profile updates.
type AuthService struct {
	DB        *gorm.DB
	JWTSecret string
	TokenTTL  time.Duration
}

func NewAuthService(db *gorm.DB, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{DB: db, JWTSecret: jwtSecret, TokenTTL: tokenTTL}
}

type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	DefaultCurrency string
	Timezone        string
}

// Register creates a user with a bcrypt password hash. Emails are stored
// lowercased and must be unique.
func (s *AuthService) Register(data RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(data.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, util.NewValidationError("a valid email is required")
	}
	if len(data.Password) < 8 {
		return nil, util.NewValidationError("password must be at least 8 characters")
	}

	var count int64
	if err := s.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, util.NewConflictError("Email is already registered")
	}

	hash, err := util.HashPassword(data.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         data.Name,
		Email:        email,
		PasswordHash: hash,
	}
	if data.DefaultCurrency != "" {
		user.DefaultCurrency = data.DefaultCurrency
	}
	if data.Timezone != "" {
		user.Timezone = data.Timezone
	}
	if err := s.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Login verifies credentials and returns the user with a signed JWT.
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, "", util.NewUnauthorizedError("Invalid email or password")
		}
		return nil, "", err
	}
	if !util.CheckPassword(user.PasswordHash, password) {
		return nil, "", util.NewUnauthorizedError("Invalid email or password")
	}

	token, err := util.GenerateToken(s.JWTSecret, user.ID, s.TokenTTL)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// UpdateProfile patches display name, default currency, and timezone.
func (s *AuthService) UpdateProfile(userID string, name, currency, timezone *string) (*models.User, error) {
	updates := map[string]interface{}{}
	if name != nil {
		updates["name"] = *name
	}
	if currency != nil {
		updates["default_currency"] = *currency
	}
	if timezone != nil {
		updates["timezone"] = *timezone
	}
	if len(updates) > 0 {
		if err := s.DB.Model(&models.User{}).Where("id = ?", userID).
			Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	var user models.User
	if err := s.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword verifies the old password before storing a new hash.
func (s *AuthService) ChangePassword(userID, oldPassword, newPassword string) error {
	var user models.User
	if err := s.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return err
	}
	if !util.CheckPassword(user.PasswordHash, oldPassword) {
		return util.NewUnauthorizedError("Current password is incorrect")
	}
	if len(newPassword) < 8 {
		return util.NewValidationError("password must be at least 8 characters")
	}

	hash, err := util.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("password_hash", hash).Error
}
