package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"socialblog/models"
)

type PostStore interface {
	Create(ctx context.Context, post *models.Post) error
	List(ctx context.Context) ([]models.Post, error)
}

type GormPostStore struct {
	db *gorm.DB
}

func NewPostStore(db *gorm.DB) *GormPostStore {
	return &GormPostStore{db: db}
}

// Create inserts a post after confirming its author exists.
func (s *GormPostStore) Create(ctx context.Context, post *models.Post) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var author models.User
		if err := tx.Select("id").First(&author, post.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("user %d: %w", post.UserID, ErrAuthorNotFound)
			}
			return err
		}
		if err := tx.Omit("Author").Create(post).Error; err != nil {
			return fmt.Errorf("create post: %w", translate(err))
		}
		return nil
	})
}

// List returns every post in insertion order with its author loaded.
func (s *GormPostStore) List(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := s.db.WithContext(ctx).Preload("Author").Order("id ASC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}
