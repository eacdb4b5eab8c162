package quiz

import (
	"context"
	"errors"
	"fmt"

	"github.com/fragancia/fragancia-api/internal/db"
	"gorm.io/gorm"
)

var ErrNoQuiz = errors.New("no quiz taken")

type Store struct {
	db *gorm.DB
}

func NewStore(d *gorm.DB) *Store {
	return &Store{db: d}
}

func (s *Store) Create(ctx context.Context, resp *Response) error {
	if err := s.db.WithContext(ctx).Create(resp).Error; err != nil {
		return fmt.Errorf("create quiz response: %w", err)
	}
	return nil
}

func (s *Store) History(ctx context.Context, userID string) ([]Response, error) {
	out := []Response{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("taken_at DESC, id DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("quiz history: %w", err)
	}
	return out, nil
}

func (s *Store) Latest(ctx context.Context, userID string) (*Response, error) {
	var resp Response
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("taken_at DESC, id DESC").
		First(&resp).Error
	if db.IsNotFound(err) {
		return nil, ErrNoQuiz
	}
	if err != nil {
		return nil, fmt.Errorf("latest quiz: %w", err)
	}
	return &resp, nil
}
