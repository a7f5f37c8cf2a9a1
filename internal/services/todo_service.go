// Package services はビジネスロジックを提供します。
package services

import (
	"time"

	"go-todo-api/backend/internal/mapper"
	"go-todo-api/backend/internal/models"
	"go-todo-api/backend/internal/repositories"
)

// TodoService はTodo関連のビジネスロジックを扱います。
// callerID はトランスポート層（認可ミドルウェア）で解決済みのユーザーIDです。
type TodoService struct {
	todoRepo repositories.TodoRepository
	userRepo repositories.UserRepository
}

// NewTodoService は新しいTodoServiceを作成します。
func NewTodoService(todoRepo repositories.TodoRepository, userRepo repositories.UserRepository) *TodoService {
	return &TodoService{todoRepo: todoRepo, userRepo: userRepo}
}

// GetAllTodos はすべてのユーザーのTodoを挿入順で取得します。
// 所有者によるフィルタは行いません（管理用途の全件取得）。
func (s *TodoService) GetAllTodos() ([]*models.Todo, error) {
	return s.todoRepo.FindAll()
}

// GetUserTodos はメールアドレスで指定したユーザーのTodoを取得します。
// ユーザーが存在しない場合は ErrUserNotFound、Todoが1件もない場合は
// ErrTodoNotFound を返します（空リストは返しません）。
func (s *TodoService) GetUserTodos(email string) ([]*models.Todo, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}

	todos, err := s.todoRepo.FindByUserID(user.ID)
	if err != nil {
		return nil, err
	}
	if len(todos) == 0 {
		return nil, repositories.ErrTodoNotFound
	}
	return todos, nil
}

// AddTodo は新しいTodoを作成します。所有者は呼び出し元に固定され、
// completed=false、created_at と updated_at は同一の現在時刻で初期化されます。
func (s *TodoService) AddTodo(callerID string, req models.AddTodoRequest) (*models.Todo, error) {
	if callerID == "" {
		return nil, repositories.ErrUserNotFound
	}

	newTodo := mapper.TodoFromAddRequest(req)
	now := time.Now()
	newTodo.UserID = callerID
	newTodo.Completed = false
	newTodo.CreatedAt = now
	newTodo.UpdatedAt = now

	return s.todoRepo.Create(newTodo)
}

// UpdateTodoTitle はTodoのタイトルを更新します。所有者チェックを行い、
// 呼び出し元が所有者でなければ ErrTodoForbidden を返します。
func (s *TodoService) UpdateTodoTitle(callerID string, req models.UpdateTodoRequest) (*models.Todo, error) {
	update := mapper.TodoFromUpdateRequest(req)

	existing, err := s.todoRepo.FindByID(update.ID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != callerID {
		return nil, repositories.ErrTodoForbidden
	}

	existing.Title = update.Title
	existing.UpdatedAt = time.Now()
	return s.todoRepo.Update(existing.ID, existing)
}

// DeleteTodo はTodoを削除します。所有者チェックを行います。
func (s *TodoService) DeleteTodo(callerID string, id int) error {
	existing, err := s.todoRepo.FindByID(id)
	if err != nil {
		return err
	}
	if existing.UserID != callerID {
		return repositories.ErrTodoForbidden
	}
	return s.todoRepo.Delete(id)
}

// SetTodoCompletion はTodoの完了状態を設定します。冪等な操作で、
// すでに同じ状態でも成功し updated_at だけが更新されます。
func (s *TodoService) SetTodoCompletion(callerID string, id int, completed bool) (*models.Todo, error) {
	if callerID == "" {
		return nil, repositories.ErrUserNotFound
	}

	existing, err := s.todoRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if existing.UserID != callerID {
		return nil, repositories.ErrTodoForbidden
	}

	existing.Completed = completed
	existing.UpdatedAt = time.Now()
	return s.todoRepo.Update(id, existing)
}
