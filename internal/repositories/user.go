package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/go-sql-driver/mysql"

	"go-todo-api/backend/internal/models"

	"golang.org/x/crypto/bcrypt" // パスワードのハッシュ化用
)

var (
	ErrDuplicateEmail = errors.New("duplicate email")
	ErrUserNotFound   = errors.New("user not found")
)

// HashPassword は与えられたパスワードをbcryptでハッシュ化します。
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedPassword), nil
}

// VerifyPassword はハッシュ化されたパスワードと平文のパスワードを比較します。
func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// UserRepository はユーザーの永続化操作を定義するインターフェースです。
type UserRepository interface {
	Create(u *models.User) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
}

// MySQLUserRepo はUserRepositoryのMySQL実装です。
type MySQLUserRepo struct {
	DB *sql.DB
}

// NewMySQLUserRepo は新しいMySQLUserRepoインスタンスを作成します。
func NewMySQLUserRepo(db *sql.DB) *MySQLUserRepo {
	return &MySQLUserRepo{DB: db}
}

// Create は新しいユーザーをデータベースに挿入します。
// IDは呼び出し元（サービス層）で発行されたUUID文字列です。
func (r *MySQLUserRepo) Create(u *models.User) (*models.User, error) {
	query := "INSERT INTO users (id, first_name, last_name, email, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)"
	_, err := r.DB.Exec(query, u.ID, u.FirstName, u.LastName, u.Email, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		// MySQLの重複エントリーエラーコード1062をチェック
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return nil, ErrDuplicateEmail
		}
		log.Printf("Failed to insert user: %v", err)
		return nil, fmt.Errorf("could not insert user: %w", err)
	}

	return u, nil
}

// FindByEmail はメールアドレスでユーザーを検索します。
func (r *MySQLUserRepo) FindByEmail(email string) (*models.User, error) {
	query := "SELECT id, first_name, last_name, email, password_hash, created_at, updated_at FROM users WHERE email = ?"
	var u models.User
	err := r.DB.QueryRow(query, email).Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		log.Printf("Failed to query user by email: %v", err)
		return nil, fmt.Errorf("could not query user: %w", err)
	}
	return &u, nil
}
