// Package testutil はハンドラーテスト用の共通セットアップを提供します。
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"go-todo-api/backend/internal/models"
	"go-todo-api/backend/internal/repositories"
	"go-todo-api/backend/internal/routes"
	"go-todo-api/backend/internal/services"
)

// SetupTestRouter はインメモリのリポジトリでルーター全体を組み立て、
// 既定のテストユーザー2人を登録して返します。
//   - normal_user@example.com / password123
//   - other_user@example.com  / password456
func SetupTestRouter(t *testing.T) (*gin.Engine, *repositories.MemoryTodoRepo, *repositories.MemoryUserRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	todoRepo := repositories.NewMemoryTodoRepo()
	userRepo := repositories.NewMemoryUserRepo()
	jwtService := services.NewJWTService()

	r := routes.SetupRouter(todoRepo, userRepo, jwtService)

	RegisterTestUser(t, r, "Normal", "User", "normal_user@example.com", "password123")
	RegisterTestUser(t, r, "Other", "User", "other_user@example.com", "password456")

	return r, todoRepo, userRepo
}

// RegisterTestUser は登録エンドポイント経由でユーザーを作成します。
func RegisterTestUser(t *testing.T, r *gin.Engine, firstName, lastName, email, password string) models.User {
	t.Helper()

	payload := map[string]string{
		"first_name": firstName,
		"last_name":  lastName,
		"email":      email,
		"password":   password,
	}
	jsonValue, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal register payload: %v", err)
	}

	req, _ := http.NewRequest(http.MethodPost, "/api/register", bytes.NewBuffer(jsonValue))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("failed to register test user %s: status %d, body %s", email, w.Code, w.Body.String())
	}

	var user models.User
	if err := json.Unmarshal(w.Body.Bytes(), &user); err != nil {
		t.Fatalf("failed to unmarshal registered user: %v", err)
	}
	return user
}

// LoginAndGetToken はログインしてJWTトークンとユーザーIDを取得します。
func LoginAndGetToken(t *testing.T, r *gin.Engine, email, password string) (token, userID string) {
	t.Helper()

	payload := map[string]string{"email": email, "password": password}
	jsonValue, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal login payload: %v", err)
	}

	req, _ := http.NewRequest(http.MethodPost, "/api/login", bytes.NewBuffer(jsonValue))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("failed to login as %s: status %d, body %s", email, w.Code, w.Body.String())
	}

	var resp struct {
		Token  string `json:"token"`
		UserID string `json:"user_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal login response: %v", err)
	}
	return resp.Token, resp.UserID
}

// CreateTestTodo は作成エンドポイント経由でTodoを作成します。
func CreateTestTodo(t *testing.T, r *gin.Engine, token, title string) models.TodoResponse {
	t.Helper()

	jsonValue, err := json.Marshal(map[string]string{"title": title})
	if err != nil {
		t.Fatalf("failed to marshal todo payload: %v", err)
	}

	req, _ := http.NewRequest(http.MethodPost, "/api/todos", bytes.NewBuffer(jsonValue))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("failed to create test todo %q: status %d, body %s", title, w.Code, w.Body.String())
	}

	var todo models.TodoResponse
	if err := json.Unmarshal(w.Body.Bytes(), &todo); err != nil {
		t.Fatalf("failed to unmarshal created todo: %v", err)
	}
	return todo
}

// DoJSONRequest は任意のメソッド/パスにJSONリクエストを送ります。bodyはnil可。
func DoJSONRequest(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf *bytes.Buffer
	if body != nil {
		jsonValue, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		buf = bytes.NewBuffer(jsonValue)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, buf)
	if err != nil {
		t.Fatalf("failed to build request %s %s: %v", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
