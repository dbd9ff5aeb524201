package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"size:20;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password;size:60;not null" json:"-"` // bcrypt hash, never plaintext
	CreatedAt    time.Time `json:"created_at"`
}

type Post struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title      string    `gorm:"size:100;not null" json:"title"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	DatePosted time.Time `gorm:"not null;autoCreateTime" json:"date_posted"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	Author     User      `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"author"`
}
