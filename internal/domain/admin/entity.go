// internal/domain/admin/entity.go
package admin

import "time"

// DefaultUsername and DefaultPassword seed the first admin account
const (
	DefaultUsername = "admin"
	DefaultPassword = "admin123"
)

// Admin is a back-office account; Password holds a bcrypt hash
type Admin struct {
	Username  string    `gorm:"primaryKey;size:100" json:"username"`
	Password  string    `gorm:"not null;size:255" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Admin) TableName() string { return "admins" }

// LoginRequest is the credential form
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is returned on successful login
type LoginResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// UpdatePasswordRequest replaces an admin's password
type UpdatePasswordRequest struct {
	Username    string `json:"username" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}
