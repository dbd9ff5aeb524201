package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"socialblog/models"
)

// UserLookup answers the uniqueness questions asked during registration.
type UserLookup interface {
	UsernameTaken(ctx context.Context, username string) (bool, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
}

type UserStore interface {
	UserLookup
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type GormUserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

func (s *GormUserStore) Create(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user %q: %w", user.Username, translate(err))
	}
	return nil
}

func (s *GormUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findBy(ctx, "email", email)
}

func (s *GormUserStore) UsernameTaken(ctx context.Context, username string) (bool, error) {
	return s.exists(ctx, "username", username)
}

func (s *GormUserStore) EmailTaken(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, "email", email)
}

// column is always one of the fixed names above, never user input.
func (s *GormUserStore) findBy(ctx context.Context, column, value string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where(column+" = ?", value).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormUserStore) exists(ctx context.Context, column, value string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Where(column+" = ?", value).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check %s: %w", column, err)
	}
	return count > 0, nil
}
