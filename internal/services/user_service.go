package services

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"go-todo-api/backend/internal/models"
	"go-todo-api/backend/internal/repositories"
)

// UserService はユーザー関連のビジネスロジックを扱います。
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService は新しいUserServiceを作成します。
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// RegisterUser はユーザーを登録します。IDにはUUIDを発行します。
func (s *UserService) RegisterUser(req models.UserRegisterRequest) (*models.User, error) {
	hashedPassword, err := repositories.HashPassword(req.Password)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	newUser := &models.User{
		ID:           uuid.NewString(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	createdUser, err := s.userRepo.Create(newUser)
	if err != nil {
		return nil, err
	}
	createdUser.PasswordHash = "" // レスポンスにパスワードを含めない
	return createdUser, nil
}

// AuthenticateUser はユーザーを認証し、成功したらユーザーを返します。
func (s *UserService) AuthenticateUser(req models.UserLoginRequest) (*models.User, error) {
	foundUser, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, err
	}

	if err := repositories.VerifyPassword(foundUser.PasswordHash, req.Password); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	foundUser.PasswordHash = "" // レスポンスにパスワードを含めない
	return foundUser, nil
}
