package perfumes

import "time"

// Note types, in pyramid order.
const (
	NoteTop   = "top"
	NoteHeart = "heart"
	NoteBase  = "base"
)

type Brand struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null;uniqueIndex" json:"name"`
	Country     string `json:"country"`
	Description string `json:"description"`
}

type Perfume struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null;index" json:"name"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	BrandID     uint      `gorm:"not null;index" json:"brand_id"`
	Gender      string    `json:"gender"`
	PriceMin    float64   `json:"price_min"`
	PriceMax    float64   `json:"price_max"`
	Longevity   string    `json:"longevity"`
	Sillage     string    `json:"sillage"`
	Season      string    `json:"season"`
	Occasion    string    `json:"occasion"`
	Active      bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time `json:"-"`
}

type Note struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null;uniqueIndex" json:"name"`
	Type string `gorm:"not null" json:"type"`
}

type PerfumeNote struct {
	PerfumeID uint `gorm:"primaryKey"`
	NoteID    uint `gorm:"primaryKey"`
	Intensity int  `gorm:"not null;default:1"`
}

func (Brand) TableName() string       { return "brands" }
func (Perfume) TableName() string     { return "perfumes" }
func (Note) TableName() string        { return "notes" }
func (PerfumeNote) TableName() string { return "perfume_notes" }

// Summary is a catalog row with its read-time aggregates.
type Summary struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	ImageURL      string  `json:"image_url"`
	BrandID       uint    `json:"brand_id"`
	BrandName     string  `json:"brand_name"`
	BrandCountry  string  `json:"brand_country"`
	Gender        string  `json:"gender"`
	PriceMin      float64 `json:"price_min"`
	PriceMax      float64 `json:"price_max"`
	Longevity     string  `json:"longevity"`
	Sillage       string  `json:"sillage"`
	Season        string  `json:"season"`
	Occasion      string  `json:"occasion"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
	FavoriteCount int64   `json:"favorite_count"`
	IsFavorite    *bool   `gorm:"-" json:"is_favorite,omitempty"`
}

type NoteEntry struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Intensity int    `json:"intensity"`
}

type Detail struct {
	Summary
	BrandDescription string      `json:"brand_description"`
	Notes            []NoteEntry `gorm:"-" json:"notes"`
}

// Filter narrows Search. Nil fields are ignored.
type Filter struct {
	Gender   string
	BrandID  *uint
	MaxPrice *float64
	Season   string
}
