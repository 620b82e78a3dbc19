package models

import (
	"time"
)

// Post represents a user-authored post.
//
// Likers is the set of users who liked the post, loaded explicitly from the
// likes join table. LikesCount is computed at query time and not persisted.
type Post struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Title   string `gorm:"uniqueIndex;not null" json:"title"`
	Content string `gorm:"type:text;not null" json:"content"`
	UserID  uint   `gorm:"not null;index" json:"author_id"`
	User    *User  `gorm:"foreignKey:UserID" json:"author,omitempty"`

	LikesCount int    `gorm:"->" json:"likes_count"`
	Likers     []User `gorm:"-" json:"user_likes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
