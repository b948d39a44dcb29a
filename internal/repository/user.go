package repository

import (
	"context"
	"errors"
	"strings"

	"ripple/internal/database"
	"ripple/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Search(ctx context.Context, query string, limit, offset int) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	err := database.WithRetry(ctx, "users.create", func() error {
		return r.db.WithContext(ctx).Create(user).Error
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Username or email already taken")
		}
		return err
	}
	return nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

// GetByID returns nil without error when the user is absent or deleted.
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := database.WithRetry(ctx, "users.get", func() error {
		return r.db.WithContext(ctx).First(&user, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := database.WithRetry(ctx, "users.get_by_email", func() error {
		return r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := database.WithRetry(ctx, "users.get_by_username", func() error {
		return r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Search matches users by username or full name fragment.
func (r *userRepository) Search(ctx context.Context, query string, limit, offset int) ([]*models.User, error) {
	var users []*models.User
	like := "%" + query + "%"
	err := database.WithRetry(ctx, "users.search", func() error {
		return r.db.WithContext(ctx).
			Where("username ILIKE ? OR full_name ILIKE ?", like, like).
			Order("username ASC").
			Limit(limit).
			Offset(offset).
			Find(&users).Error
	})
	return users, err
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return database.WithRetry(ctx, "users.update", func() error {
		return r.db.WithContext(ctx).Save(user).Error
	})
}
