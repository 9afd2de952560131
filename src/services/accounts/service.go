package accounts

import (
	"context"
	"errors"
	"strings"
	"time"

	"attendance-backend/src/models"
	"attendance-backend/src/utils"

	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	FindByID(ctx context.Context, userID string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type Service struct {
	users UserRepository
	now   func() time.Time
}

func NewService(users UserRepository) *Service {
	return &Service{users: users, now: time.Now}
}

// Signup สร้างผู้ใช้ใหม่ในสถานะยังไม่ได้เช็คอิน
func (s *Service) Signup(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	_, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, models.ErrUserExists
	case !errors.Is(err, models.ErrUserNotFound):
		return nil, models.NewInternalError("Error during signup", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError("Error during signup", err)
	}

	user := &models.User{
		Email:         email,
		Password:      string(hash),
		Name:          req.Name,
		Number:        req.Number,
		CheckIn:       false,
		LastCheckedIn: "",
		CreatedAt:     s.now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, models.ErrUserExists) {
			return nil, models.ErrUserExists
		}
		return nil, models.NewInternalError("Error during signup", err)
	}
	return user, nil
}

// Login คืนข้อมูลผู้ใช้ (รวมสถานะเช็คอิน) พร้อม JWT
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*models.User, string, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, "", models.ErrUserNotFound
		}
		return nil, "", models.NewInternalError("Error during login", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, "", models.ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Email)
	if err != nil {
		return nil, "", models.NewInternalError("Error during login", err)
	}
	return user, token, nil
}

func (s *Service) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, models.NewInternalError("Internal Server Error", err)
	}
	return user, nil
}
