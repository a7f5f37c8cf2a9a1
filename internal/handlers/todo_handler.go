// Package handlers はGinのリクエストハンドラーを提供します。
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-todo-api/backend/internal/mapper"
	"go-todo-api/backend/internal/models"
	"go-todo-api/backend/internal/repositories"
	"go-todo-api/backend/internal/services"
)

// TodoHandler はTodo関連のハンドラーを管理します。
type TodoHandler struct {
	todoService *services.TodoService
}

// NewTodoHandler は新しいTodoHandlerを作成します。
func NewTodoHandler(todoService *services.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

// currentUserID はミドルウェアがコンテキストに設定した呼び出し元のユーザーIDを取り出します。
func currentUserID(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return "", false
	}
	userID, ok := userIDVal.(string)
	return userID, ok
}

// GetTodosHandler は全ユーザーのTodoリストを取得します。所有者フィルタはありません。
func (h *TodoHandler) GetTodosHandler(c *gin.Context) {
	todos, err := h.todoService.GetAllTodos()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch todos"})
		return
	}
	c.JSON(http.StatusOK, mapper.ToTodoResponses(todos))
}

// GetUserTodosHandler はメールアドレスで指定したユーザーのTodoリストを取得します。
// ユーザーが存在しない場合もTodoが1件もない場合も404を返します。
func (h *TodoHandler) GetUserTodosHandler(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email query parameter required"})
		return
	}

	todos, err := h.todoService.GetUserTodos(email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if errors.Is(err, repositories.ErrTodoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No todos found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch todos"})
		return
	}
	c.JSON(http.StatusOK, mapper.ToTodoResponses(todos))
}

// CreateTodoHandler は新しいTodoを作成します。
func (h *TodoHandler) CreateTodoHandler(c *gin.Context) {
	var req models.AddTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	createdTodo, err := h.todoService.AddTodo(userID, req)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save todo to database"})
		return
	}
	c.JSON(http.StatusCreated, mapper.ToTodoResponse(createdTodo))
}

// UpdateTodoHandler はTodoのタイトルを更新します。完了状態は変更しません。
func (h *TodoHandler) UpdateTodoHandler(c *gin.Context) {
	var req models.UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	updatedTodo, err := h.todoService.UpdateTodoTitle(userID, req)
	if err != nil {
		h.respondTodoError(c, err, "Failed to update todo")
		return
	}
	c.JSON(http.StatusOK, mapper.ToTodoResponse(updatedTodo))
}

// DeleteTodoHandler はTodoを削除します。
func (h *TodoHandler) DeleteTodoHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	if err := h.todoService.DeleteTodo(userID, id); err != nil {
		h.respondTodoError(c, err, "Failed to delete todo")
		return
	}
	c.Status(http.StatusNoContent)
}

// CompleteTodoHandler はTodoを完了状態にします。
func (h *TodoHandler) CompleteTodoHandler(c *gin.Context) {
	h.setCompletionHandler(c, true, "Todo marked as completed")
}

// IncompleteTodoHandler はTodoを未完了状態に戻します。
func (h *TodoHandler) IncompleteTodoHandler(c *gin.Context) {
	h.setCompletionHandler(c, false, "Todo marked as not completed")
}

func (h *TodoHandler) setCompletionHandler(c *gin.Context, completed bool, message string) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	if _, err := h.todoService.SetTodoCompletion(userID, id, completed); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.respondTodoError(c, err, "Failed to update todo")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// respondTodoError はサービス層のエラーをHTTPステータスに対応付けます。
func (h *TodoHandler) respondTodoError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, repositories.ErrTodoNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
		return
	}
	if errors.Is(err, repositories.ErrTodoForbidden) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "This todo does not belong to you"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
}
