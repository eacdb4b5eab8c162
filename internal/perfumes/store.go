package perfumes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fragancia/fragancia-api/internal/db"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("perfume not found")

const summaryColumns = `p.id, p.name, p.description, p.image_url, p.brand_id,
	b.name AS brand_name, b.country AS brand_country,
	p.gender, p.price_min, p.price_max, p.longevity, p.sillage, p.season, p.occasion,
	CAST(COALESCE(rv.average_rating, 0) AS FLOAT) AS average_rating,
	COALESCE(rv.review_count, 0) AS review_count,
	COALESCE(fv.favorite_count, 0) AS favorite_count`

const (
	reviewAggregate   = `LEFT JOIN (SELECT perfume_id, AVG(rating) AS average_rating, COUNT(*) AS review_count FROM reviews GROUP BY perfume_id) rv ON rv.perfume_id = p.id`
	favoriteAggregate = `LEFT JOIN (SELECT perfume_id, COUNT(*) AS favorite_count FROM favorites GROUP BY perfume_id) fv ON fv.perfume_id = p.id`
)

const noteOrder = `CASE n.type WHEN 'top' THEN 1 WHEN 'heart' THEN 2 WHEN 'base' THEN 3 ELSE 4 END`

type Store struct {
	db *gorm.DB
}

func NewStore(d *gorm.DB) *Store {
	return &Store{db: d}
}

// Catalog starts a query over active perfumes with brand and aggregate
// columns, aliased p, b, rv and fv. Extra columns are appended to the select.
func (s *Store) Catalog(ctx context.Context, extra ...string) *gorm.DB {
	return s.Everything(ctx, extra...).Where("p.active = ?", true)
}

// Everything is Catalog without the active filter.
func (s *Store) Everything(ctx context.Context, extra ...string) *gorm.DB {
	cols := summaryColumns
	if len(extra) > 0 {
		cols += ", " + strings.Join(extra, ", ")
	}
	return s.db.WithContext(ctx).
		Table("perfumes p").
		Select(cols).
		Joins("LEFT JOIN brands b ON b.id = p.brand_id").
		Joins(reviewAggregate).
		Joins(favoriteAggregate)
}

func (s *Store) List(ctx context.Context) ([]Summary, error) {
	out := []Summary{}
	if err := s.Catalog(ctx).Order("p.name ASC, p.id ASC").Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("list perfumes: %w", err)
	}
	return out, nil
}

func (s *Store) Search(ctx context.Context, f Filter) ([]Summary, error) {
	q := s.Catalog(ctx)
	if f.Gender != "" {
		q = q.Where("LOWER(p.gender) = ?", strings.ToLower(f.Gender))
	}
	if f.BrandID != nil {
		q = q.Where("p.brand_id = ?", *f.BrandID)
	}
	if f.MaxPrice != nil {
		q = q.Where("p.price_min <= ?", *f.MaxPrice)
	}
	if f.Season != "" {
		q = q.Where("LOWER(p.season) LIKE ?", "%"+strings.ToLower(f.Season)+"%")
	}

	out := []Summary{}
	if err := q.Order("p.name ASC, p.id ASC").Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("search perfumes: %w", err)
	}
	return out, nil
}

func (s *Store) Popular(ctx context.Context, limit int) ([]Summary, error) {
	out := []Summary{}
	err := s.Catalog(ctx).
		Order("favorite_count DESC, average_rating DESC, p.id ASC").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("popular perfumes: %w", err)
	}
	return out, nil
}

// Random samples active perfumes with no regard to the caller.
func (s *Store) Random(ctx context.Context, limit int) ([]Summary, error) {
	out := []Summary{}
	if err := s.Catalog(ctx).Order("RANDOM()").Limit(limit).Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("random perfumes: %w", err)
	}
	return out, nil
}

func (s *Store) Get(ctx context.Context, id uint) (*Detail, error) {
	var rows []Detail
	err := s.Catalog(ctx, "b.description AS brand_description").
		Where("p.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("get perfume: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}

	d := rows[0]
	d.Notes = []NoteEntry{}
	err = s.db.WithContext(ctx).
		Table("perfume_notes pn").
		Select("n.id, n.name, n.type, pn.intensity").
		Joins("JOIN notes n ON n.id = pn.note_id").
		Where("pn.perfume_id = ?", id).
		Order(noteOrder + ", n.name ASC").
		Scan(&d.Notes).Error
	if err != nil {
		return nil, fmt.Errorf("get perfume notes: %w", err)
	}
	return &d, nil
}

// Exists reports whether id names an active perfume.
func (s *Store) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&Perfume{}).
		Where("id = ? AND active = ?", id, true).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("check perfume: %w", err)
	}
	return n > 0, nil
}

func (s *Store) Brands(ctx context.Context) ([]Brand, error) {
	out := []Brand{}
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	return out, nil
}

// FavoritedBy returns the set of perfume ids the user has favorited.
func (s *Store) FavoritedBy(ctx context.Context, userID string) (map[uint]bool, error) {
	var ids []uint
	err := s.db.WithContext(ctx).Table("favorites").
		Where("user_id = ?", userID).
		Pluck("perfume_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("favorite ids: %w", err)
	}
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || db.IsNotFound(err)
}
