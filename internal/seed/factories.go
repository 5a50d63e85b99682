// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"vireo/internal/keys"
	"vireo/internal/models"
	"vireo/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	MaxComments int
	ShouldClean bool
	// SkipBcrypt stores a plaintext password; only for throwaway dev data.
	SkipBcrypt bool
}

var tagPool = []string{
	"go", "feeds", "media", "photography", "music", "travel", "food",
	"gaming", "books", "science", "art", "history", "fitness", "devops",
}

// Factory builds domain entities and persists them through the repositories,
// so seeded data honors the same invariants as production writes (dual-copy
// publish, push-key ordering).
type Factory struct {
	db       *gorm.DB
	posts    repository.PostRepository
	comments repository.CommentRepository
	users    repository.UserRepository
	opts     Options
	rng      *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:       db,
		posts:    repository.NewPostRepository(db),
		comments: repository.NewCommentRepository(db),
		users:    repository.NewUserRepository(db),
		opts:     opts,
		// #nosec G404: acceptable for seeding
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username:    strings.ToLower(gofakeit.Username()) + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:       gofakeit.Email(),
		DisplayName: gofakeit.Name(),
		AvatarURL:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "SeededPass12!"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("SeededPass12!"), bcrypt.MinCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.users.Create(context.Background(), user); err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost publishes a sample post for the given user through the post
// repository, writing both the global record and the author index entry.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		ID:        keys.New(),
		AuthorID:  user.ID,
		Title:     gofakeit.Sentence(5),
		Body:      fmt.Sprintf("<p>%s</p>", gofakeit.Paragraph(1, 3, 8, " ")),
		Tags:      f.randomTags(),
		FileURL:   fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()),
		MediaType: models.MediaTypeImage,
	}
	if f.rng.Intn(10) == 0 {
		post.MediaType = models.MediaTypeVideo
		post.FileURL = fmt.Sprintf("https://picsum.photos/seed/v-%s/1280/720", gofakeit.UUID())
	}

	for _, override := range overrides {
		override(post)
	}

	if err := f.posts.Create(context.Background(), post); err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment constructs and persists a sample `models.Comment` on the
// provided post authored by the provided user.
func (f *Factory) CreateComment(user *models.User, post *models.Post, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		ID:       keys.New(),
		PostID:   post.ID,
		AuthorID: user.ID,
		Text:     gofakeit.Sentence(8),
	}

	for _, override := range overrides {
		override(comment)
	}

	if err := f.comments.Create(context.Background(), comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// SpreadLikes applies a random number of like increments to the global copy,
// leaving the author index copy behind, the same divergence live traffic
// produces.
func (f *Factory) SpreadLikes(post *models.Post, max int) error {
	if max <= 0 {
		return nil
	}
	likes := int64(f.rng.Intn(max + 1))
	if likes == 0 {
		return nil
	}
	return f.db.Model(&models.Post{}).
		Where("id = ?", post.ID).
		Update("likes", likes).Error
}

func (f *Factory) randomTags() string {
	n := 1 + f.rng.Intn(3)
	picked := make([]string, 0, n)
	for _, i := range f.rng.Perm(len(tagPool))[:n] {
		picked = append(picked, tagPool[i])
	}
	return strings.Join(picked, ",")
}
