// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered TicketX account. Username is the public
// identity used throughout the social graph; it is unique, case-sensitive
// and never changes after signup.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"unique;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"`
	Bio       string    `json:"bio"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Posts []Post `gorm:"foreignKey:UserID" json:"posts,omitempty"`

	// Followers/Following are the mirrored views of the follows table,
	// computed at query time.
	Followers []string `gorm:"-" json:"followers,omitempty"`
	Following []string `gorm:"-" json:"following,omitempty"`
}

// Follow is a directed edge in the social graph: Follower follows Followee.
// The pair is unique, so repeated follows are naturally idempotent, and both
// the follower's "following" set and the followee's "followers" set are
// derived from the same row.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follower_followee" json:"follower_id"`
	FolloweeID uint      `gorm:"not null;uniqueIndex:idx_follower_followee" json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`

	Follower User `gorm:"foreignKey:FollowerID" json:"-"`
	Followee User `gorm:"foreignKey:FolloweeID" json:"-"`
}
