package mapper_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go-todo-api/backend/internal/mapper"
	"go-todo-api/backend/internal/models"
)

func TestTodoFromAddRequest_CopiesTitleOnly(t *testing.T) {
	req := models.AddTodoRequest{Title: "Buy milk"}

	todo := mapper.TodoFromAddRequest(req)

	assert.Equal(t, "Buy milk", todo.Title)
	assert.Zero(t, todo.ID, "ID must be assigned by the store, not the mapper")
	assert.Empty(t, todo.UserID, "UserID must be assigned by the service, not the mapper")
	assert.False(t, todo.Completed)
	assert.True(t, todo.CreatedAt.IsZero())
	assert.True(t, todo.UpdatedAt.IsZero())
}

func TestTodoFromUpdateRequest_CopiesIDAndTitleOnly(t *testing.T) {
	req := models.UpdateTodoRequest{ID: 42, Title: "New title"}

	todo := mapper.TodoFromUpdateRequest(req)

	assert.Equal(t, 42, todo.ID)
	assert.Equal(t, "New title", todo.Title)
	assert.Empty(t, todo.UserID)
	assert.False(t, todo.Completed)
	assert.True(t, todo.CreatedAt.IsZero())
	assert.True(t, todo.UpdatedAt.IsZero())
}

func TestToTodoResponse_KeepsAllFields(t *testing.T) {
	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	updated := time.Date(2025, 6, 2, 11, 30, 0, 0, time.UTC)
	todo := &models.Todo{
		ID:        7,
		UserID:    "user-abc",
		Title:     "Walk the dog",
		Completed: true,
		CreatedAt: created,
		UpdatedAt: updated,
	}

	resp := mapper.ToTodoResponse(todo)

	assert.Equal(t, todo.ID, resp.ID)
	assert.Equal(t, todo.UserID, resp.UserID)
	assert.Equal(t, todo.Title, resp.Title)
	assert.Equal(t, todo.Completed, resp.Completed)
	assert.Equal(t, todo.CreatedAt, resp.CreatedAt)
	assert.Equal(t, todo.UpdatedAt, resp.UpdatedAt)
}

func TestToTodoResponses_EmptyInputIsNotNil(t *testing.T) {
	resp := mapper.ToTodoResponses(nil)

	assert.NotNil(t, resp, "an empty set must serialize as [] rather than null")
	assert.Len(t, resp, 0)
}

func TestToTodoResponses_PreservesOrder(t *testing.T) {
	todos := []*models.Todo{
		{ID: 1, Title: "first"},
		{ID: 2, Title: "second"},
		{ID: 3, Title: "third"},
	}

	resp := mapper.ToTodoResponses(todos)

	assert.Len(t, resp, 3)
	for i, todo := range todos {
		assert.Equal(t, todo.ID, resp[i].ID)
		assert.Equal(t, todo.Title, resp[i].Title)
	}
}
