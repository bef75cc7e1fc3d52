package model

import (
	"time"

	"github.com/google/uuid"

	"bloghub-backend/internal/shared"
)

// Profile là public view của một user. Được tạo cùng transaction với Account
// khi sign-up; client chỉ đọc (kiểm tra is_admin).
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  *string   `json:"full_name"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// Author returns the display fields joined onto posts and comments.
func (p Profile) Author() shared.AuthorInfo {
	return shared.AuthorInfo{FullName: p.FullName, Email: p.Email}
}

// Account holds credentials. ID equals the profile id.
type Account struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
