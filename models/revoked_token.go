package models

import (
	"time"
)

// RevokedToken is one blacklist entry. Rows are only ever inserted (logout,
// refresh rotation) and purged after the token itself would have expired.
type RevokedToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	JTI       string    `json:"jti" gorm:"column:jti;uniqueIndex"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
}
