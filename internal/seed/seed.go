// Package seed fills the database with demo users, a follow mesh and posts
// for development and demos.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"

	"ticketx/internal/models"
	"ticketx/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	// Seed pins the random content; 0 means a different run every time.
	Seed uint64
}

// SeedPassword is the password every seeded account gets.
const SeedPassword = "password123"

var hashtagPool = []string{
	"concerts", "livemusic", "theater", "sports", "gameday",
	"weekend", "tickets", "frontrow", "encore", "tour",
}

// Seed populates the database per the options. It is not idempotent; use
// ShouldClean to start from an empty slate.
func Seed(db *gorm.DB, opts Options) error {
	f := gofakeit.New(int64(opts.Seed))
	rnd := rand.New(rand.NewSource(int64(opts.Seed)))

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("clearing data: %w", err)
		}
	}

	users, err := createUsers(db, f, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("creating users: %w", err)
	}
	if err := createFollowMesh(db, rnd, users); err != nil {
		return fmt.Errorf("creating follows: %w", err)
	}
	posts, err := createPosts(db, f, rnd, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("creating posts: %w", err)
	}
	if err := createEngagement(db, f, rnd, users, posts); err != nil {
		return fmt.Errorf("creating likes and comments: %w", err)
	}

	log.Printf("seeded %d users, %d posts", len(users), len(posts))
	return nil
}

func clearData(db *gorm.DB) error {
	// Child tables first so foreign keys never dangle mid-wipe.
	for _, model := range []any{
		&models.Like{}, &models.Comment{}, &models.PostTag{},
		&models.Post{}, &models.Follow{}, &models.Session{}, &models.User{},
	} {
		if err := db.Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(db *gorm.DB, f *gofakeit.Faker, count int) ([]models.User, error) {
	// MinCost keeps seeding fast; these are throwaway demo accounts.
	hashed, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		users = append(users, models.User{
			Username: strings.ToLower(f.Username()) + fmt.Sprintf("%d", f.Number(100, 999)),
			Password: string(hashed),
			Bio:      f.Sentence(10),
			Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", f.UUID()),
		})
	}
	if err := db.Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// createFollowMesh gives each user a random set of roughly a third of the
// others to follow.
func createFollowMesh(db *gorm.DB, rnd *rand.Rand, users []models.User) error {
	var edges []models.Follow
	for i := range users {
		for j := range users {
			if i == j {
				continue
			}
			if rnd.Float64() < 0.33 {
				edges = append(edges, models.Follow{
					FollowerID: users[i].ID,
					FolloweeID: users[j].ID,
				})
			}
		}
	}
	if len(edges) == 0 {
		return nil
	}
	return db.Create(&edges).Error
}

func createPosts(db *gorm.DB, f *gofakeit.Faker, rnd *rand.Rand, users []models.User, count int) ([]models.Post, error) {
	posts := make([]models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[rnd.Intn(len(users))]

		text := f.Sentence(f.Number(5, 15))
		if rnd.Float64() < 0.6 {
			text += " #" + hashtagPool[rnd.Intn(len(hashtagPool))]
		}
		if rnd.Float64() < 0.3 {
			text += " @" + users[rnd.Intn(len(users))].Username
		}

		post := models.Post{
			UserID: author.ID,
			Text:   service.Truncate(text, 280),
		}
		if rnd.Float64() < 0.25 {
			post.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", f.UUID())
		}
		if err := db.Create(&post).Error; err != nil {
			return nil, err
		}

		hashtags, mentions := service.ExtractTags(text)
		var tags []models.PostTag
		for _, h := range hashtags {
			tags = append(tags, models.PostTag{PostID: post.ID, Kind: models.TagKindHashtag, Value: h})
		}
		for _, m := range mentions {
			tags = append(tags, models.PostTag{PostID: post.ID, Kind: models.TagKindMention, Value: m})
		}
		if len(tags) > 0 {
			if err := db.Create(&tags).Error; err != nil {
				return nil, err
			}
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func createEngagement(db *gorm.DB, f *gofakeit.Faker, rnd *rand.Rand, users []models.User, posts []models.Post) error {
	for _, post := range posts {
		for _, user := range users {
			if rnd.Float64() < 0.2 {
				like := models.Like{UserID: user.ID, PostID: post.ID}
				if err := db.Create(&like).Error; err != nil {
					return err
				}
			}
			if rnd.Float64() < 0.08 {
				comment := models.Comment{
					UserID: user.ID,
					PostID: post.ID,
					Text:   service.Truncate(f.Sentence(8), 200),
				}
				if err := db.Create(&comment).Error; err != nil {
					return err
				}
			}
		}
	}
	return nil
}
