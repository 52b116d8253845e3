package models

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleUsuario Role = "usuario"
)

// User is the dashboard profile of an authenticated identity.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email     string    `json:"email" gorm:"not null"`
	FullName  *string   `json:"full_name"`
	Role      Role      `json:"role" gorm:"type:varchar(16);not null;default:usuario"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

// DisplayName prefers the full name over the email.
func (u User) DisplayName() string {
	if u.FullName != nil && *u.FullName != "" {
		return *u.FullName
	}
	return u.Email
}
