package favorites

import (
	"time"

	"github.com/fragancia/fragancia-api/internal/perfumes"
)

type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_favorites_user_perfume" json:"user_id"`
	PerfumeID uint      `gorm:"not null;uniqueIndex:idx_favorites_user_perfume;index" json:"perfume_id"`
	AddedAt   time.Time `gorm:"not null;autoCreateTime" json:"added_at"`
}

func (Favorite) TableName() string { return "favorites" }

// Entry is a favorited perfume as listed to its owner.
type Entry struct {
	perfumes.Summary
	Active  bool      `json:"active"`
	AddedAt time.Time `json:"added_at"`
}
