package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"socialblog/database"
	"socialblog/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.RunMigrations(db))
	return db
}

func createTestUser(t *testing.T, users *GormUserStore, username, email string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: email, PasswordHash: "hashedpassword"}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestUserStore_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	users := NewUserStore(setupTestDB(t))

	created := createTestUser(t, users, "alice", "a@x.com")
	assert.NotZero(t, created.ID)

	byEmail, err := users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
	assert.Equal(t, "alice", byEmail.Username)
}

func TestUserStore_FindMissing(t *testing.T) {
	users := NewUserStore(setupTestDB(t))

	user, err := users.FindByEmail(context.Background(), "nobody@x.com")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserStore_Taken(t *testing.T) {
	ctx := context.Background()
	users := NewUserStore(setupTestDB(t))
	createTestUser(t, users, "alice", "a@x.com")

	taken, err := users.UsernameTaken(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = users.EmailTaken(ctx, "b@x.com")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestUserStore_DuplicateRejectedByIndex(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	users := NewUserStore(db)
	createTestUser(t, users, "alice", "a@x.com")

	err := users.Create(ctx, &models.User{Username: "alice", Email: "other@x.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, ErrDuplicate)

	err = users.Create(ctx, &models.User{Username: "bob", Email: "a@x.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, ErrDuplicate)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPostStore_CreateAndListInOrder(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	users := NewUserStore(db)
	posts := NewPostStore(db)

	author := createTestUser(t, users, "alice", "a@x.com")
	first := &models.Post{Title: "first post", Content: "1st post content", UserID: author.ID}
	second := &models.Post{Title: "2nd post", Content: "2nd post content", UserID: author.ID,
		DatePosted: time.Date(1996, time.January, 14, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, posts.Create(ctx, first))
	require.NoError(t, posts.Create(ctx, second))

	listed, err := posts.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "first post", listed[0].Title)
	assert.Equal(t, "2nd post", listed[1].Title)
	assert.Equal(t, "alice", listed[0].Author.Username)
	assert.False(t, listed[0].DatePosted.IsZero())
	assert.Equal(t, 1996, listed[1].DatePosted.Year())
}

func TestPostStore_RequiresExistingAuthor(t *testing.T) {
	ctx := context.Background()
	posts := NewPostStore(setupTestDB(t))

	err := posts.Create(ctx, &models.Post{Title: "orphan", Content: "x", UserID: 42})
	assert.ErrorIs(t, err, ErrAuthorNotFound)

	listed, err := posts.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)
}
