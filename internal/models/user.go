// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered account.
//
// Password holds the bcrypt hash and is never serialized. LikedPosts is
// populated from the likes join table by the repository, not by GORM
// relationship mutation.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	Password  string    `gorm:"not null" json:"-"`
	Disabled  bool      `gorm:"not null;default:false" json:"disabled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Posts      []Post `gorm:"foreignKey:UserID" json:"posts,omitempty"`
	LikedPosts []Post `gorm:"-" json:"post_likes,omitempty"`
}
