package seed

import (
	"fmt"
	"log"

	"vireo/internal/models"

	"gorm.io/gorm"
)

// Seed populates the database with demo users, posts and comments.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding database with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	f := NewFactory(db, opts)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("created %d users", len(users))

	if len(users) == 0 {
		return nil
	}

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[f.rng.Intn(len(users))]
		post, err := f.CreatePost(author)
		if err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}
		if err := f.SpreadLikes(post, 40); err != nil {
			return fmt.Errorf("failed to spread likes: %w", err)
		}
		posts = append(posts, post)
	}
	log.Printf("created %d posts", len(posts))

	maxComments := opts.MaxComments
	if maxComments <= 0 {
		maxComments = 5
	}
	total := 0
	for _, post := range posts {
		for i := 0; i < f.rng.Intn(maxComments+1); i++ {
			commenter := users[f.rng.Intn(len(users))]
			if _, err := f.CreateComment(commenter, post); err != nil {
				return fmt.Errorf("failed to create comment: %w", err)
			}
			total++
		}
	}
	log.Printf("created %d comments", total)

	return nil
}

// clearData removes previously seeded rows, children first.
func clearData(db *gorm.DB) error {
	for _, model := range []interface{}{
		&models.Comment{},
		&models.AuthorPost{},
		&models.Post{},
		&models.User{},
	} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
