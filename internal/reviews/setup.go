package reviews

import (
	"github.com/fragancia/fragancia-api/internal/db"
	"gorm.io/gorm"
)

func Init(d *gorm.DB) error {
	return db.Migrate(d, "reviews", &Review{})
}
