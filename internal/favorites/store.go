package favorites

import (
	"context"
	"errors"
	"fmt"

	"github.com/fragancia/fragancia-api/internal/db"
	"github.com/fragancia/fragancia-api/internal/perfumes"
	"gorm.io/gorm"
)

var (
	ErrPerfumeNotFound  = errors.New("perfume not found")
	ErrAlreadyFavorited = errors.New("perfume already favorited")
	ErrNotFavorited     = errors.New("favorite not found")
)

type Store struct {
	db       *gorm.DB
	perfumes *perfumes.Store
}

func NewStore(d *gorm.DB, catalog *perfumes.Store) *Store {
	return &Store{db: d, perfumes: catalog}
}

// List returns every favorite row, including perfumes deactivated since;
// Active tells them apart.
func (s *Store) List(ctx context.Context, userID string) ([]Entry, error) {
	out := []Entry{}
	err := s.perfumes.Everything(ctx, "p.active AS active", "fav.added_at AS added_at").
		Joins("JOIN favorites fav ON fav.perfume_id = p.id").
		Where("fav.user_id = ?", userID).
		Order("fav.added_at DESC, fav.id DESC").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return out, nil
}

// Add favorites an active perfume. The unique index decides duplicates; the
// pre-check only saves a failed insert.
func (s *Store) Add(ctx context.Context, userID string, perfumeID uint) (*Favorite, error) {
	ok, err := s.perfumes.Exists(ctx, perfumeID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPerfumeNotFound
	}

	exists, err := s.Has(ctx, userID, perfumeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyFavorited
	}

	fav := &Favorite{UserID: userID, PerfumeID: perfumeID}
	if err := s.db.WithContext(ctx).Create(fav).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrAlreadyFavorited
		}
		return nil, fmt.Errorf("create favorite: %w", err)
	}
	return fav, nil
}

func (s *Store) Remove(ctx context.Context, userID string, perfumeID uint) error {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND perfume_id = ?", userID, perfumeID).
		Delete(&Favorite{})
	if res.Error != nil {
		return fmt.Errorf("delete favorite: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFavorited
	}
	return nil
}

func (s *Store) Has(ctx context.Context, userID string, perfumeID uint) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&Favorite{}).
		Where("user_id = ? AND perfume_id = ?", userID, perfumeID).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("check favorite: %w", err)
	}
	return n > 0, nil
}
