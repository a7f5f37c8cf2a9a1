package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"go-todo-api/backend/internal/database"
	"go-todo-api/backend/internal/repositories"
	"go-todo-api/backend/internal/routes"
	"go-todo-api/backend/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	db, err := database.Connect(database.GetDSN())
	if err != nil {
		log.Fatalf("Fatal: Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Successfully connected to MySQL database!")

	todoRepo := repositories.NewMySQLTodoRepo(db)
	userRepo := repositories.NewMySQLUserRepo(db)
	jwtService := services.NewJWTService()

	r := routes.SetupRouter(todoRepo, userRepo, jwtService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
