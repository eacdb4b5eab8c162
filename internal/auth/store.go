package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/fragancia/fragancia-api/internal/db"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken   = errors.New("email already registered")
	ErrUserNotFound = errors.New("user not found")
)

type Store struct {
	db *gorm.DB
}

func NewStore(d *gorm.DB) *Store {
	return &Store{db: d}
}

// EmailExists includes deactivated accounts; the unique index does too.
func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&User{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return false, fmt.Errorf("count users by email: %w", err)
	}
	return n > 0, nil
}

func (s *Store) Create(ctx context.Context, u *User) error {
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *Store) FindActiveByEmail(ctx context.Context, email string) (*User, error) {
	return s.findActive(ctx, "email = ?", email)
}

func (s *Store) FindActiveByID(ctx context.Context, id string) (*User, error) {
	return s.findActive(ctx, "id = ?", id)
}

func (s *Store) findActive(ctx context.Context, where string, arg any) (*User, error) {
	var u User
	err := s.db.WithContext(ctx).Where(where, arg).Where("active = ?", true).First(&u).Error
	if db.IsNotFound(err) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

// Deactivate soft-deletes the account. Issued tokens are unaffected.
func (s *Store) Deactivate(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Model(&User{}).
		Where("id = ? AND active = ?", id, true).
		Update("active", false)
	if res.Error != nil {
		return fmt.Errorf("deactivate user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
