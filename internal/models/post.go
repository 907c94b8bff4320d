package models

import (
	"time"
)

// Tag kinds stored in post_tags.
const (
	TagKindHashtag = "hashtag"
	TagKindMention = "mention"
)

// Post is a short message (at most 280 characters) with an optional image.
// Text is immutable after creation, as are the hashtag and mention sets
// derived from it.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	Text      string    `gorm:"not null" json:"text"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	Tags []PostTag `gorm:"foreignKey:PostID" json:"-"`

	// Hashtags/Mentions are split out of Tags at query time.
	Hashtags []string `gorm:"-" json:"hashtags"`
	Mentions []string `gorm:"-" json:"mentions"`
	// LikesCount is not persisted; scanned from a query-time subquery alias.
	LikesCount int `gorm:"->;-:migration" json:"likes_count"`
	// CommentsCount is not persisted; scanned from a query-time subquery alias.
	CommentsCount int `gorm:"->;-:migration" json:"comments_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked bool `gorm:"->;-:migration" json:"liked"`
}

// PostTag is one lower-cased hashtag or mention extracted from a post's text
// at creation. Rows are written once with the post and never updated.
type PostTag struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	PostID uint   `gorm:"not null;index:idx_tag_lookup,priority:3" json:"post_id"`
	Kind   string `gorm:"not null;index:idx_tag_lookup,priority:1" json:"kind"`
	Value  string `gorm:"not null;index:idx_tag_lookup,priority:2" json:"value"`
}

// Comment belongs to exactly one post. Comments are appended and never
// removed or reordered.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	Text      string    `gorm:"not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Like represents a user's like on a post.
// The combination of UserID and PostID must be unique.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
