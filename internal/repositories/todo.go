// Package repositories はデータベース操作を行うリポジトリを提供します。
package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"go-todo-api/backend/internal/models"
)

var (
	// ErrTodoNotFound はTODOが見つからない場合のエラーです。
	ErrTodoNotFound = errors.New("todo not found")
	// ErrTodoForbidden は呼び出し元が所有者でない場合のエラーです。
	ErrTodoForbidden = errors.New("todo does not belong to caller")
)

// TodoRepository はTodoの永続化操作を定義するインターフェースです。
type TodoRepository interface {
	Create(t *models.Todo) (*models.Todo, error)
	FindAll() ([]*models.Todo, error)
	FindByUserID(userID string) ([]*models.Todo, error)
	FindByID(id int) (*models.Todo, error)
	Update(id int, t *models.Todo) (*models.Todo, error)
	Delete(id int) error
}

// MySQLTodoRepo はTodoRepositoryのMySQL実装です。
type MySQLTodoRepo struct {
	DB *sql.DB
}

// NewMySQLTodoRepo は新しいMySQLTodoRepoインスタンスを作成します。
func NewMySQLTodoRepo(db *sql.DB) *MySQLTodoRepo {
	return &MySQLTodoRepo{DB: db}
}

// Create は新しいTodoタスクをデータベースに挿入します。
func (r *MySQLTodoRepo) Create(t *models.Todo) (*models.Todo, error) {
	query := "INSERT INTO todos (user_id, title, completed, created_at, updated_at) VALUES (?, ?, ?, ?, ?)"

	result, err := r.DB.Exec(query, t.UserID, t.Title, t.Completed, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		log.Printf("Failed to insert todo: %v", err)
		return nil, fmt.Errorf("could not insert todo: %w", err)
	}

	// 自動採番されたIDを取得
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("could not get last insert ID: %w", err)
	}
	t.ID = int(id)

	return t, nil
}

// FindAll はすべてのTodoタスクを挿入順で取得します。
func (r *MySQLTodoRepo) FindAll() ([]*models.Todo, error) {
	query := "SELECT id, user_id, title, completed, created_at, updated_at FROM todos ORDER BY id"

	rows, err := r.DB.Query(query)
	if err != nil {
		log.Printf("Failed to query todos: %v", err)
		return nil, fmt.Errorf("could not query todos: %w", err)
	}
	defer rows.Close()

	return scanTodos(rows)
}

// FindByUserID は指定ユーザーが所有するTodoタスクを挿入順で取得します。
func (r *MySQLTodoRepo) FindByUserID(userID string) ([]*models.Todo, error) {
	query := "SELECT id, user_id, title, completed, created_at, updated_at FROM todos WHERE user_id = ? ORDER BY id"

	rows, err := r.DB.Query(query, userID)
	if err != nil {
		log.Printf("Failed to query todos by user ID: %v", err)
		return nil, fmt.Errorf("could not query todos: %w", err)
	}
	defer rows.Close()

	return scanTodos(rows)
}

func scanTodos(rows *sql.Rows) ([]*models.Todo, error) {
	var todos []*models.Todo
	for rows.Next() {
		var t models.Todo
		err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			log.Printf("Failed to scan todo: %v", err)
			return nil, fmt.Errorf("could not scan todo: %w", err)
		}
		todos = append(todos, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating todos: %w", err)
	}

	return todos, nil
}

// FindByID は指定されたIDのTodoタスクをデータベースから取得します。
func (r *MySQLTodoRepo) FindByID(id int) (*models.Todo, error) {
	query := "SELECT id, user_id, title, completed, created_at, updated_at FROM todos WHERE id = ?"

	var t models.Todo
	err := r.DB.QueryRow(query, id).Scan(&t.ID, &t.UserID, &t.Title, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTodoNotFound
		}
		log.Printf("Failed to query todo by ID: %v", err)
		return nil, fmt.Errorf("could not query todo: %w", err)
	}

	return &t, nil
}

// Update は指定されたIDのTodoタスクを更新します。
// user_id と created_at は更新対象に含めません。
func (r *MySQLTodoRepo) Update(id int, t *models.Todo) (*models.Todo, error) {
	query := "UPDATE todos SET title = ?, completed = ?, updated_at = ? WHERE id = ?"

	result, err := r.DB.Exec(query, t.Title, t.Completed, t.UpdatedAt, id)
	if err != nil {
		log.Printf("Failed to update todo: %v", err)
		return nil, fmt.Errorf("could not update todo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("could not get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrTodoNotFound
	}

	return r.FindByID(id)
}

// Delete は指定されたIDのTodoタスクを削除します。
func (r *MySQLTodoRepo) Delete(id int) error {
	query := "DELETE FROM todos WHERE id = ?"

	result, err := r.DB.Exec(query, id)
	if err != nil {
		log.Printf("Failed to delete todo: %v", err)
		return fmt.Errorf("could not delete todo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrTodoNotFound
	}

	return nil
}
