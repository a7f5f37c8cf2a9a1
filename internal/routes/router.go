// Package routesはroutingを行います。
package routes

import (
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"go-todo-api/backend/internal/handlers"
	"go-todo-api/backend/internal/repositories"
	"go-todo-api/backend/internal/services"
)

// SetupRouter はGinルーターをセットアップし、すべてのエンドポイントを登録します。
// リポジトリは呼び出し元から注入します（本番はMySQL、テストはインメモリ）。
func SetupRouter(todoRepo repositories.TodoRepository, userRepo repositories.UserRepository, jwtService *services.JWTService) *gin.Engine {
	r := gin.Default()

	// CORS対策
	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{frontendURL}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	config.AllowCredentials = true
	r.Use(cors.New(config))

	// サービス
	todoService := services.NewTodoService(todoRepo, userRepo)
	userService := services.NewUserService(userRepo)

	// ハンドラー
	userHandler := handlers.NewUserHandler(userService, jwtService)
	todoHandler := handlers.NewTodoHandler(todoService)

	// ルーティング
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/api/register", userHandler.RegisterHandler)
	r.POST("/api/login", userHandler.LoginHandler)

	authorized := r.Group("/")
	authorized.Use(AuthMiddleware(jwtService))
	{
		authorized.GET("/api/todos", todoHandler.GetTodosHandler)
		authorized.GET("/api/todos/user", todoHandler.GetUserTodosHandler)
		authorized.POST("/api/todos", todoHandler.CreateTodoHandler)
		authorized.PUT("/api/todos", todoHandler.UpdateTodoHandler)
		authorized.DELETE("/api/todos/:id", todoHandler.DeleteTodoHandler)
		authorized.PUT("/api/todos/:id/complete", todoHandler.CompleteTodoHandler)
		authorized.PUT("/api/todos/:id/incomplete", todoHandler.IncompleteTodoHandler)
	}

	return r
}
