// Package seed populates the database with demo data for development
// and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"ripple/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls how much data the seeder generates.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seeder builds and persists demo users, follows, posts, and engagement.
type Seeder struct {
	db  *gorm.DB
	rng *rand.Rand
}

func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll truncates every seeded table.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE comments, likes, follows, posts, users RESTART IDENTITY CASCADE;`
	return s.db.Exec(sql).Error
}

// Run seeds users, a follow mesh, posts (some scheduled), likes, and comments.
func (s *Seeder) Run(opts Options) error {
	log.Printf("Seeding %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return fmt.Errorf("cleanup failed: %w", err)
		}
	}

	users, err := s.CreateUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d users", len(users))

	follows, err := s.CreateFollowMesh(users)
	if err != nil {
		return fmt.Errorf("failed to create follows: %w", err)
	}
	log.Printf("created %d follow edges", follows)

	posts, err := s.CreatePosts(users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("created %d posts", len(posts))

	likes, comments, err := s.CreateEngagement(users, posts)
	if err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}
	log.Printf("created %d likes and %d comments", likes, comments)

	log.Println("Seeding complete. All users have the password: password123")
	return nil
}

// CreateUsers persists n users with predictable credentials.
func (s *Seeder) CreateUsers(n int) ([]*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		users = append(users, &models.User{
			Username:     fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
			Email:        gofakeit.Email(),
			PasswordHash: string(hash),
			FullName:     gofakeit.Name(),
		})
	}
	if err := s.db.Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CreateFollowMesh gives each user a handful of random followees.
func (s *Seeder) CreateFollowMesh(users []*models.User) (int, error) {
	if len(users) < 2 {
		return 0, nil
	}

	seen := make(map[[2]uint]bool)
	var edges []*models.Follow
	for _, u := range users {
		targets := s.rng.Intn(len(users)/2 + 1)
		for j := 0; j < targets; j++ {
			other := users[s.rng.Intn(len(users))]
			if other.ID == u.ID {
				continue
			}
			key := [2]uint{u.ID, other.ID}
			if seen[key] {
				continue
			}
			seen[key] = true
			edges = append(edges, &models.Follow{
				FollowerID:  u.ID,
				FollowingID: other.ID,
			})
		}
	}
	if len(edges) == 0 {
		return 0, nil
	}
	if err := s.db.Create(&edges).Error; err != nil {
		return 0, err
	}
	return len(edges), nil
}

// CreatePosts spreads n posts over the users with realistic timestamps.
// Roughly one post in ten is scheduled for the future instead of
// published.
func (s *Seeder) CreatePosts(users []*models.User, n int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}

	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.rng.Intn(len(users))]
		post := &models.Post{
			UserID:          author.ID,
			Content:         gofakeit.Paragraph(1, 3, 8, "\n"),
			CommentsEnabled: s.rng.Intn(10) != 0,
			Status:          models.PostStatusPublished,
		}

		if s.rng.Intn(10) == 0 {
			at := time.Now().Add(time.Duration(1+s.rng.Intn(72)) * time.Hour)
			post.Status = models.PostStatusScheduled
			post.ScheduledAt = &at
		} else {
			daysBack := s.rng.Intn(30)
			post.CreatedAt = time.Now().
				Add(-time.Duration(daysBack)*24*time.Hour).
				Add(-time.Duration(s.rng.Intn(24)) * time.Hour)
		}

		if s.rng.Intn(4) == 0 {
			post.MediaURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
		}
		posts = append(posts, post)
	}
	if err := s.db.Create(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// CreateEngagement sprinkles likes and comments over published posts.
func (s *Seeder) CreateEngagement(users []*models.User, posts []*models.Post) (int, int, error) {
	if len(users) == 0 || len(posts) == 0 {
		return 0, 0, nil
	}

	seen := make(map[[2]uint]bool)
	var likes []*models.Like
	var comments []*models.Comment
	for _, p := range posts {
		if p.Status != models.PostStatusPublished {
			continue
		}

		for j := 0; j < s.rng.Intn(len(users)); j++ {
			liker := users[s.rng.Intn(len(users))]
			key := [2]uint{liker.ID, p.ID}
			if seen[key] {
				continue
			}
			seen[key] = true
			likes = append(likes, &models.Like{UserID: liker.ID, PostID: p.ID})
		}

		if p.CommentsEnabled {
			for j := 0; j < s.rng.Intn(5); j++ {
				comments = append(comments, &models.Comment{
					UserID:  users[s.rng.Intn(len(users))].ID,
					PostID:  p.ID,
					Content: gofakeit.Sentence(8 + s.rng.Intn(10)),
				})
			}
		}
	}

	if len(likes) > 0 {
		if err := s.db.Create(&likes).Error; err != nil {
			return 0, 0, err
		}
	}
	if len(comments) > 0 {
		if err := s.db.Create(&comments).Error; err != nil {
			return len(likes), 0, err
		}
	}
	return len(likes), len(comments), nil
}
