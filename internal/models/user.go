package models

import "time"

// User はユーザーのデータベース構造体を表します。
// IDは登録時に発行されるUUID文字列で、TodoのUserIDとして参照されます。
// JSONタグ: クライアントとの通信用
// bindingタグ: Ginでのリクエストバリデーション用
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // JSONに出さない
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserRegisterRequest はユーザー登録リクエストの構造体です。
type UserRegisterRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"` // 生パスワード
}

// UserLoginRequest はユーザーログインリクエストの構造体です。
type UserLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"` // 生パスワード
}

// JWTClaims はトークン検証後に取り出すクレームの構造体です。
type JWTClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
