package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-todo-api/backend/internal/models"
	"go-todo-api/backend/internal/repositories"
	"go-todo-api/backend/internal/services"
)

// UserHandler はユーザー関連のハンドラーを管理します。
type UserHandler struct {
	userService *services.UserService
	jwtService  *services.JWTService
}

// NewUserHandler は新しいUserHandlerを作成します。
func NewUserHandler(userService *services.UserService, jwtService *services.JWTService) *UserHandler {
	return &UserHandler{userService: userService, jwtService: jwtService}
}

// RegisterHandler はユーザー登録を処理します。
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var req models.UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	user, err := h.userService.RegisterUser(req)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	c.JSON(http.StatusCreated, user)
}

// LoginHandler はユーザーログインを処理します。
func (h *UserHandler) LoginHandler(c *gin.Context) {
	var req models.UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	user, err := h.userService.AuthenticateUser(req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user_id": user.ID})
}
