// Package mapper はエンティティとリクエスト/レスポンス構造体の変換を行います。
// リフレクションを使わず、フィールドごとに明示的にコピーします。
package mapper

import "go-todo-api/backend/internal/models"

// TodoFromAddRequest は作成リクエストからTodoを生成します。
// コピーするのはタイトルのみで、他のフィールドはサーバー側で設定されます。
func TodoFromAddRequest(req models.AddTodoRequest) *models.Todo {
	return &models.Todo{
		Title: req.Title,
	}
}

// TodoFromUpdateRequest は更新リクエストからTodoを生成します。
// コピーするのはIDとタイトルのみです。
func TodoFromUpdateRequest(req models.UpdateTodoRequest) *models.Todo {
	return &models.Todo{
		ID:    req.ID,
		Title: req.Title,
	}
}

// ToTodoResponse はTodoをレスポンス構造体に変換します。全フィールドをコピーします。
func ToTodoResponse(t *models.Todo) models.TodoResponse {
	return models.TodoResponse{
		ID:        t.ID,
		UserID:    t.UserID,
		Title:     t.Title,
		Completed: t.Completed,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// ToTodoResponses はTodoのスライスをレスポンスのスライスに変換します。
// 空のスライスはnullではなく[]としてシリアライズされるよう、常に非nilを返します。
func ToTodoResponses(todos []*models.Todo) []models.TodoResponse {
	out := make([]models.TodoResponse, 0, len(todos))
	for _, t := range todos {
		out = append(out, ToTodoResponse(t))
	}
	return out
}
