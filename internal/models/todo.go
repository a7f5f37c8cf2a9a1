// Package models はエンティティとリクエスト/レスポンスの構造体を定義します。
package models

import "time"

// Todo はToDoタスクのデータベース構造体を表します。
// UserID は作成時に一度だけ設定され、以後変更されません。
type Todo struct {
	ID        int       `json:"id,omitempty"` // 主キー（自動採番）
	UserID    string    `json:"user_id"`      // 所有者のユーザーID
	Title     string    `json:"title"`        // タスクのタイトル
	Completed bool      `json:"completed"`    // 完了状態
	CreatedAt time.Time `json:"created_at"`   // 作成日時
	UpdatedAt time.Time `json:"updated_at"`   // 更新日時
}

// AddTodoRequest はTodo作成リクエストの構造体です。
// タイトル以外のフィールドはすべてサーバー側で設定されます。
type AddTodoRequest struct {
	Title string `json:"title" binding:"required"`
}

// UpdateTodoRequest はTodoタイトル更新リクエストの構造体です。
type UpdateTodoRequest struct {
	ID    int    `json:"id" binding:"required"`
	Title string `json:"title" binding:"required"`
}

// TodoResponse はクライアントに返すTodoの構造体です。
type TodoResponse struct {
	ID        int       `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
