package reviews

import "time"

type Review struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_reviews_user_perfume" json:"user_id"`
	PerfumeID  uint      `gorm:"not null;uniqueIndex:idx_reviews_user_perfume;index" json:"perfume_id"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `gorm:"type:varchar(1000)" json:"comment"`
	ReviewedAt time.Time `gorm:"not null" json:"reviewed_at"`
}

func (Review) TableName() string { return "reviews" }

// PerfumeReview is a review listed on its perfume's page.
type PerfumeReview struct {
	ID         uint      `json:"id"`
	UserID     string    `json:"-"`
	UserName   string    `json:"user_name"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	ReviewedAt time.Time `json:"reviewed_at"`
	Mine       *bool     `gorm:"-" json:"mine,omitempty"`
}

// OwnReview is one of the caller's reviews with its perfume.
type OwnReview struct {
	ID          uint      `json:"id"`
	PerfumeID   uint      `json:"perfume_id"`
	PerfumeName string    `json:"perfume_name"`
	ImageURL    string    `json:"image_url"`
	BrandName   string    `json:"brand_name"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	ReviewedAt  time.Time `json:"reviewed_at"`
}

// Rating is a pointer so a missing value is told apart from zero.
type reviewRequest struct {
	Rating  *int   `json:"rating" validate:"required,min=1,max=5" msg:"Rating deve ser entre 1 e 5"`
	Comment string `json:"comment" validate:"max=1000" msg:"Comentário deve ter no máximo 1000 caracteres"`
}
