package quiz

import (
	"time"

	"github.com/fragancia/fragancia-api/internal/recommend"
)

// Response is one submitted quiz. Rows are never updated.
type Response struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     string    `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Period     string    `gorm:"not null" json:"period"`
	Event      string    `gorm:"not null" json:"event"`
	Family     string    `gorm:"not null" json:"family"`
	Intensity  string    `gorm:"not null" json:"intensity"`
	Impression string    `gorm:"not null" json:"impression"`
	TakenAt    time.Time `gorm:"not null;autoCreateTime" json:"taken_at"`
}

func (Response) TableName() string { return "quiz_responses" }

func (r Response) Answers() recommend.Answers {
	return recommend.Answers{
		Period:     r.Period,
		Event:      r.Event,
		Family:     r.Family,
		Intensity:  r.Intensity,
		Impression: r.Impression,
	}
}

type submitRequest struct {
	Period     string `json:"period" validate:"required"`
	Event      string `json:"event" validate:"required"`
	Family     string `json:"family" validate:"required"`
	Intensity  string `json:"intensity" validate:"required"`
	Impression string `json:"impression" validate:"required"`
}
