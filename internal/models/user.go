package models

import (
	"time"

	"gorm.io/gorm"

	"fintrack/internal/uuid"
)

// User represents the identity record. Settings (full name, default view,
// avatar) live as attributes on the user, not as a separate entity.
type User struct {
	ID          string      `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string      `gorm:"uniqueIndex;not null" json:"email"`
	FullName    string      `json:"full_name"`
	DefaultView RangePreset `gorm:"default:last30days" json:"default_view"`
	Avatar      string      `json:"avatar,omitempty"`

	// Sign-in code state; hashes only, never the code itself.
	OTPHash      string     `gorm:"size:60" json:"-"`
	OTPExpiresAt *time.Time `json:"-"`

	RefreshTokenHash string     `gorm:"size:64" json:"-"`
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New()
	}
	return nil
}
