package models

import "time"

// Avatar is a stored blob keyed by its generated filename. It stands in for
// the hosted object bucket the identity record points at via User.Avatar.
type Avatar struct {
	Name        string    `gorm:"primaryKey" json:"name"`
	ContentType string    `json:"content_type"`
	Content     []byte    `gorm:"not null" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}
