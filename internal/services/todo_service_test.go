package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-todo-api/backend/internal/models"
	"go-todo-api/backend/internal/repositories"
	"go-todo-api/backend/internal/services"
)

func setupTodoService(t *testing.T) (*services.TodoService, *repositories.MemoryTodoRepo, *repositories.MemoryUserRepo) {
	t.Helper()
	todoRepo := repositories.NewMemoryTodoRepo()
	userRepo := repositories.NewMemoryUserRepo()
	return services.NewTodoService(todoRepo, userRepo), todoRepo, userRepo
}

func seedUser(t *testing.T, userRepo *repositories.MemoryUserRepo, id, email string) {
	t.Helper()
	now := time.Now()
	_, err := userRepo.Create(&models.User{
		ID:        id,
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)
}

func TestAddTodo_SetsOwnerAndDefaults(t *testing.T) {
	svc, _, _ := setupTodoService(t)

	created, err := svc.AddTodo("user-1", models.AddTodoRequest{Title: "Buy milk"})
	require.NoError(t, err)

	assert.Equal(t, 1, created.ID)
	assert.Equal(t, "user-1", created.UserID)
	assert.Equal(t, "Buy milk", created.Title)
	assert.False(t, created.Completed)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt, "created_at and updated_at must match on creation")
	assert.WithinDuration(t, time.Now(), created.CreatedAt, 5*time.Second)
}

func TestAddTodo_EmptyCallerID(t *testing.T) {
	svc, todoRepo, _ := setupTodoService(t)

	_, err := svc.AddTodo("", models.AddTodoRequest{Title: "Buy milk"})
	require.ErrorIs(t, err, repositories.ErrUserNotFound)

	todos, err := todoRepo.FindAll()
	require.NoError(t, err)
	assert.Empty(t, todos, "no todo may be created without a resolved caller")
}

func TestUpdateTodoTitle_Success(t *testing.T) {
	svc, _, _ := setupTodoService(t)

	created, err := svc.AddTodo("user-1", models.AddTodoRequest{Title: "Old title"})
	require.NoError(t, err)

	updated, err := svc.UpdateTodoTitle("user-1", models.UpdateTodoRequest{ID: created.ID, Title: "New title"})
	require.NoError(t, err)

	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, "user-1", updated.UserID, "ownership must never change")
	assert.False(t, updated.Completed, "updating the title must not touch completion state")
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
}

func TestUpdateTodoTitle_NotOwner(t *testing.T) {
	svc, todoRepo, _ := setupTodoService(t)

	created, err := svc.AddTodo("user-1", models.AddTodoRequest{Title: "Mine"})
	require.NoError(t, err)

	_, err = svc.UpdateTodoTitle("user-2", models.UpdateTodoRequest{ID: created.ID, Title: "Stolen"})
	require.ErrorIs(t, err, repositories.ErrTodoForbidden)

	stored, err := todoRepo.FindByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mine", stored.Title, "a rejected update must leave the record unchanged")
	assert.Equal(t, created.UpdatedAt, stored.UpdatedAt)
}

func TestUpdateTodoTitle_NotFound(t *testing.T) {
	svc, _, _ := setupTodoService(t)

	_, err := svc.UpdateTodoTitle("user-1", models.UpdateTodoRequest{ID: 99, Title: "Nope"})
	require.ErrorIs(t, err, repositories.ErrTodoNotFound)
}

func TestDeleteTodo_NotOwner(t *testing.T) {
	svc, todoRepo, _ := setupTodoService(t)

	created, err := svc.AddTodo("user-1", models.AddTodoRequest{Title: "Mine"})
	require.NoError(t, err)

	err = svc.DeleteTodo("user-2", created.ID)
	require.ErrorIs(t, err, repositories.ErrTodoForbidden)

	_, err = todoRepo.FindByID(created.ID)
	require.NoError(t, err, "the todo must survive a rejected delete")
}

func TestDeleteTodo_EmptyCallerIsNotOwner(t *testing.T) {
	svc, _, _ := setupTodoService(t)

	created, err := svc.AddTodo("user-1", models.AddTodoRequest{Title: "Mine"})
	require.NoError(t, err)

	err = svc.DeleteTodo("", created.ID)
	require.ErrorIs(t, err, repositories.ErrTodoForbidden, "an empty caller id can never match an owner")
}

func TestDeleteTodo_Success(t *testing.T) {
	svc, todoRepo, _ := setupTodoService(t)

	created, err := svc.AddTodo("user-1", models.AddTodoRequest{Title: "Mine"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTodo("user-1", created.ID))

	_, err = todoRepo.FindByID(created.ID)
	require.ErrorIs(t, err, repositories.ErrTodoNotFound)

	// 削除後の更新はNotFound
	_, err = svc.UpdateTodoTitle("user-1", models.UpdateTodoRequest{ID: created.ID, Title: "Too late"})
	require.ErrorIs(t, err, repositories.ErrTodoNotFound)
}

func TestSetTodoCompletion_Idempotent(t *testing.T) {
	svc, _, _ := setupTodoService(t)

	created, err := svc.AddTodo("user-1", models.AddTodoRequest{Title: "Task"})
	require.NoError(t, err)

	first, err := svc.SetTodoCompletion("user-1", created.ID, true)
	require.NoError(t, err)
	assert.True(t, first.Completed)

	second, err := svc.SetTodoCompletion("user-1", created.ID, true)
	require.NoError(t, err, "completing an already completed todo must succeed")
	assert.True(t, second.Completed)
	assert.False(t, second.UpdatedAt.Before(first.UpdatedAt), "updated_at must advance on every call")

	undone, err := svc.SetTodoCompletion("user-1", created.ID, false)
	require.NoError(t, err)
	assert.False(t, undone.Completed)
}

func TestSetTodoCompletion_Guards(t *testing.T) {
	svc, _, _ := setupTodoService(t)

	created, err := svc.AddTodo("user-1", models.AddTodoRequest{Title: "Task"})
	require.NoError(t, err)

	_, err = svc.SetTodoCompletion("", created.ID, true)
	require.ErrorIs(t, err, repositories.ErrUserNotFound)

	_, err = svc.SetTodoCompletion("user-2", created.ID, true)
	require.ErrorIs(t, err, repositories.ErrTodoForbidden)

	_, err = svc.SetTodoCompletion("user-1", 99, true)
	require.ErrorIs(t, err, repositories.ErrTodoNotFound)
}

func TestGetAllTodos_ReturnsEveryOwner(t *testing.T) {
	svc, _, _ := setupTodoService(t)

	_, err := svc.AddTodo("user-1", models.AddTodoRequest{Title: "First"})
	require.NoError(t, err)
	_, err = svc.AddTodo("user-2", models.AddTodoRequest{Title: "Second"})
	require.NoError(t, err)

	todos, err := svc.GetAllTodos()
	require.NoError(t, err)
	require.Len(t, todos, 2)
	assert.Equal(t, "First", todos[0].Title, "insertion order must be preserved")
	assert.Equal(t, "Second", todos[1].Title)
}

func TestGetUserTodos_UnknownUser(t *testing.T) {
	svc, _, _ := setupTodoService(t)

	_, err := svc.GetUserTodos("nobody@example.com")
	require.ErrorIs(t, err, repositories.ErrUserNotFound)
}

func TestGetUserTodos_UserWithoutTodos(t *testing.T) {
	svc, _, userRepo := setupTodoService(t)
	seedUser(t, userRepo, "user-1", "user1@example.com")

	_, err := svc.GetUserTodos("user1@example.com")
	require.ErrorIs(t, err, repositories.ErrTodoNotFound, "a user with zero todos is reported as not found, not as an empty list")
}

func TestGetUserTodos_FiltersByOwner(t *testing.T) {
	svc, _, userRepo := setupTodoService(t)
	seedUser(t, userRepo, "user-1", "user1@example.com")
	seedUser(t, userRepo, "user-2", "user2@example.com")

	_, err := svc.AddTodo("user-1", models.AddTodoRequest{Title: "Mine"})
	require.NoError(t, err)
	_, err = svc.AddTodo("user-2", models.AddTodoRequest{Title: "Theirs"})
	require.NoError(t, err)

	todos, err := svc.GetUserTodos("user1@example.com")
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "Mine", todos[0].Title)
	assert.Equal(t, "user-1", todos[0].UserID)
}
