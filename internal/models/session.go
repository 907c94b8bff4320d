package models

import (
	"time"
)

// Session binds an opaque token to a user, together with the CSRF secret
// handed to that client. Sessions live until explicitly destroyed; there is
// no expiry policy. A user may hold any number of concurrent sessions.
type Session struct {
	Token      string    `gorm:"primaryKey" json:"token"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	User       User      `gorm:"foreignKey:UserID" json:"-"`
	CSRFSecret string    `gorm:"not null" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}
