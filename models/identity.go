package models

import (
	"time"

	"gorm.io/datatypes"
)

// Identity is an authentication principal. Metadata carries the profile
// fields supplied at sign-up (full_name, role).
type Identity struct {
	ID           string            `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email        string            `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string            `json:"-" gorm:"not null"`
	Metadata     datatypes.JSONMap `json:"user_metadata"`
	CreatedAt    time.Time         `json:"created_at" gorm:"autoCreateTime"`
}

func (Identity) TableName() string {
	return "auth_identities"
}

// MetadataString returns a metadata entry when it is a non-empty string.
func (i Identity) MetadataString(key string) string {
	if i.Metadata == nil {
		return ""
	}
	s, _ := i.Metadata[key].(string)
	return s
}

type Session struct {
	Token      string    `gorm:"primaryKey;type:varchar(26)"`
	IdentityID string    `gorm:"index;not null"`
	ExpiresAt  time.Time `gorm:"index;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (Session) TableName() string {
	return "auth_sessions"
}
