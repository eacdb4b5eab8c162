package reviews

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fragancia/fragancia-api/internal/db"
	"github.com/fragancia/fragancia-api/internal/perfumes"
	"gorm.io/gorm"
)

var (
	ErrPerfumeNotFound = errors.New("perfume not found")
	ErrAlreadyReviewed = errors.New("perfume already reviewed by user")
	ErrReviewNotFound  = errors.New("review not found or not owned")
)

type Store struct {
	db       *gorm.DB
	perfumes *perfumes.Store
	now      func() time.Time
}

func NewStore(d *gorm.DB, catalog *perfumes.Store) *Store {
	return &Store{db: d, perfumes: catalog, now: time.Now}
}

func (s *Store) ListForPerfume(ctx context.Context, perfumeID uint) ([]PerfumeReview, error) {
	out := []PerfumeReview{}
	err := s.db.WithContext(ctx).
		Table("reviews rv").
		Select("rv.id, rv.user_id, u.name AS user_name, rv.rating, rv.comment, rv.reviewed_at").
		Joins("JOIN users u ON u.id = rv.user_id").
		Where("rv.perfume_id = ?", perfumeID).
		Order("rv.reviewed_at DESC, rv.id DESC").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return out, nil
}

func (s *Store) ListByUser(ctx context.Context, userID string) ([]OwnReview, error) {
	out := []OwnReview{}
	err := s.db.WithContext(ctx).
		Table("reviews rv").
		Select(`rv.id, rv.perfume_id, p.name AS perfume_name, p.image_url,
			b.name AS brand_name, rv.rating, rv.comment, rv.reviewed_at`).
		Joins("JOIN perfumes p ON p.id = rv.perfume_id").
		Joins("LEFT JOIN brands b ON b.id = p.brand_id").
		Where("rv.user_id = ?", userID).
		Order("rv.reviewed_at DESC, rv.id DESC").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list own reviews: %w", err)
	}
	return out, nil
}

// Create writes one review per (user, perfume); the unique index is the
// guarantee, the pre-check a shortcut.
func (s *Store) Create(ctx context.Context, userID string, perfumeID uint, rating int, comment string) (*Review, error) {
	ok, err := s.perfumes.Exists(ctx, perfumeID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPerfumeNotFound
	}

	var n int64
	err = s.db.WithContext(ctx).Model(&Review{}).
		Where("user_id = ? AND perfume_id = ?", userID, perfumeID).
		Count(&n).Error
	if err != nil {
		return nil, fmt.Errorf("check review: %w", err)
	}
	if n > 0 {
		return nil, ErrAlreadyReviewed
	}

	rv := &Review{
		UserID:     userID,
		PerfumeID:  perfumeID,
		Rating:     rating,
		Comment:    comment,
		ReviewedAt: s.now().UTC(),
	}
	if err := s.insert(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

// insert maps a unique-index hit to ErrAlreadyReviewed. Two requests that
// both pass the pre-check end here.
func (s *Store) insert(ctx context.Context, rv *Review) error {
	if err := s.db.WithContext(ctx).Create(rv).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return ErrAlreadyReviewed
		}
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

// Update rewrites a review in place. Ownership is part of the WHERE clause,
// so someone else's review looks missing.
func (s *Store) Update(ctx context.Context, id uint, userID string, rating int, comment string) (*Review, error) {
	res := s.db.WithContext(ctx).Model(&Review{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{
			"rating":      rating,
			"comment":     comment,
			"reviewed_at": s.now().UTC(),
		})
	if res.Error != nil {
		return nil, fmt.Errorf("update review: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrReviewNotFound
	}

	var rv Review
	if err := s.db.WithContext(ctx).First(&rv, id).Error; err != nil {
		return nil, fmt.Errorf("reload review: %w", err)
	}
	return &rv, nil
}

func (s *Store) Delete(ctx context.Context, id uint, userID string) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Review{})
	if res.Error != nil {
		return fmt.Errorf("delete review: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}
