package seed

import (
	"fmt"
	"testing"

	"vireo/internal/database"
	"vireo/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func TestSeedPopulatesBothPostCopies(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, Seed(db, Options{
		NumUsers:    3,
		NumPosts:    8,
		MaxComments: 2,
		SkipBcrypt:  true,
	}))

	var users, posts, indexed int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&posts).Error)
	require.NoError(t, db.Model(&models.AuthorPost{}).Count(&indexed).Error)

	assert.Equal(t, int64(3), users)
	assert.Equal(t, int64(8), posts)
	assert.Equal(t, posts, indexed, "every post has its author index copy")

	// Index copies keep publish-time state; only the global copy accrues likes.
	var all []models.Post
	require.NoError(t, db.Find(&all).Error)
	for _, p := range all {
		var entry models.AuthorPost
		require.NoError(t, db.First(&entry, "author_id = ? AND id = ?", p.AuthorID, p.ID).Error)
		assert.Equal(t, p.Title, entry.Title)
		assert.Zero(t, entry.Likes)
		assert.GreaterOrEqual(t, p.Likes, entry.Likes)
	}

	// Comments always hang off an existing post.
	var orphaned int64
	require.NoError(t, db.Model(&models.Comment{}).
		Where("post_id NOT IN (?)", db.Model(&models.Post{}).Select("id")).
		Count(&orphaned).Error)
	assert.Zero(t, orphaned)
}

func TestSeedCleanRemovesPreviousData(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, Seed(db, Options{NumUsers: 2, NumPosts: 3, SkipBcrypt: true}))
	require.NoError(t, Seed(db, Options{NumUsers: 1, NumPosts: 2, ShouldClean: true, SkipBcrypt: true}))

	var users, posts int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&posts).Error)
	assert.Equal(t, int64(1), users)
	assert.Equal(t, int64(2), posts)
}
