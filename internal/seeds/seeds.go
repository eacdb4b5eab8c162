// Package seeds loads the embedded perfume catalog into the database.
// Seeding is idempotent: rows are matched by name and skipped when present.
package seeds

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/fragancia/fragancia-api/internal/db"
	"github.com/fragancia/fragancia-api/internal/logging"
	"github.com/fragancia/fragancia-api/internal/perfumes"
	"github.com/goccy/go-yaml"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed data/catalog.yaml
var catalogYAML []byte

type Catalog struct {
	Brands   []seedBrand   `yaml:"brands"`
	Notes    []seedNote    `yaml:"notes"`
	Perfumes []seedPerfume `yaml:"perfumes"`
}

type seedBrand struct {
	Name        string `yaml:"name"`
	Country     string `yaml:"country"`
	Description string `yaml:"description"`
}

type seedNote struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type seedPerfume struct {
	Name        string  `yaml:"name"`
	Brand       string  `yaml:"brand"`
	Description string  `yaml:"description"`
	ImageURL    string  `yaml:"image_url"`
	Gender      string  `yaml:"gender"`
	PriceMin    float64 `yaml:"price_min"`
	PriceMax    float64 `yaml:"price_max"`
	Longevity   string  `yaml:"longevity"`
	Sillage     string  `yaml:"sillage"`
	Season      string  `yaml:"season"`
	Occasion    string  `yaml:"occasion"`
	Notes       []struct {
		Name      string `yaml:"name"`
		Intensity int    `yaml:"intensity"`
	} `yaml:"notes"`
}

// Counts reports how many rows a run inserted.
type Counts struct {
	Brands   int
	Notes    int
	Perfumes int
}

func LoadCatalog() (*Catalog, error) {
	return ParseCatalog(catalogYAML)
}

func ParseCatalog(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	brands := map[string]bool{}
	for _, b := range c.Brands {
		brands[b.Name] = true
	}
	notes := map[string]bool{}
	for _, n := range c.Notes {
		switch n.Type {
		case perfumes.NoteTop, perfumes.NoteHeart, perfumes.NoteBase:
		default:
			return fmt.Errorf("note %q: unknown type %q", n.Name, n.Type)
		}
		notes[n.Name] = true
	}
	for _, p := range c.Perfumes {
		if !brands[p.Brand] {
			return fmt.Errorf("perfume %q: unknown brand %q", p.Name, p.Brand)
		}
		for _, n := range p.Notes {
			if !notes[n.Name] {
				return fmt.Errorf("perfume %q: unknown note %q", p.Name, n.Name)
			}
		}
	}
	return nil
}

// SeedAll migrates the catalog tables and inserts the embedded catalog.
func SeedAll(ctx context.Context, d *gorm.DB) (Counts, error) {
	c, err := LoadCatalog()
	if err != nil {
		return Counts{}, err
	}
	if err := perfumes.Init(d); err != nil {
		return Counts{}, err
	}
	return Seed(ctx, d, c)
}

// Seed inserts c in one transaction.
func Seed(ctx context.Context, d *gorm.DB, c *Catalog) (Counts, error) {
	var counts Counts
	err := d.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		brandIDs, n, err := seedBrands(tx, c.Brands)
		if err != nil {
			return err
		}
		counts.Brands = n

		noteIDs, n, err := seedNotes(tx, c.Notes)
		if err != nil {
			return err
		}
		counts.Notes = n

		counts.Perfumes, err = seedPerfumes(tx, c.Perfumes, brandIDs, noteIDs)
		return err
	})
	if err != nil {
		return Counts{}, err
	}

	logging.Info().
		Int("brands", counts.Brands).
		Int("notes", counts.Notes).
		Int("perfumes", counts.Perfumes).
		Msg("catalog seeded")
	return counts, nil
}

func seedBrands(tx *gorm.DB, brands []seedBrand) (map[string]uint, int, error) {
	ids := map[string]uint{}
	created := 0
	for _, sb := range brands {
		var existing perfumes.Brand
		err := tx.Where("name = ?", sb.Name).First(&existing).Error
		if err == nil {
			logging.Debug().Str("brand", sb.Name).Msg("brand exists, skipping")
			ids[sb.Name] = existing.ID
			continue
		}
		if !db.IsNotFound(err) {
			return nil, 0, fmt.Errorf("brand %s: %w", sb.Name, err)
		}

		b := perfumes.Brand{Name: sb.Name, Country: sb.Country, Description: sb.Description}
		if err := tx.Create(&b).Error; err != nil {
			return nil, 0, fmt.Errorf("create brand %s: %w", b.Name, err)
		}
		ids[b.Name] = b.ID
		created++
	}
	return ids, created, nil
}

func seedNotes(tx *gorm.DB, notes []seedNote) (map[string]uint, int, error) {
	ids := map[string]uint{}
	created := 0
	for _, n := range notes {
		note := perfumes.Note{Name: n.Name, Type: n.Type}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&note)
		if res.Error != nil {
			return nil, 0, fmt.Errorf("create note %s: %w", n.Name, res.Error)
		}
		if res.RowsAffected == 0 {
			var existing perfumes.Note
			if err := tx.Where("name = ?", n.Name).First(&existing).Error; err != nil {
				return nil, 0, fmt.Errorf("note %s: %w", n.Name, err)
			}
			note = existing
		} else {
			created++
		}
		ids[n.Name] = note.ID
	}
	return ids, created, nil
}

func seedPerfumes(tx *gorm.DB, list []seedPerfume, brandIDs, noteIDs map[string]uint) (int, error) {
	created := 0
	for _, sp := range list {
		var n int64
		if err := tx.Model(&perfumes.Perfume{}).Where("name = ?", sp.Name).Count(&n).Error; err != nil {
			return 0, fmt.Errorf("perfume %s: %w", sp.Name, err)
		}
		if n > 0 {
			logging.Debug().Str("perfume", sp.Name).Msg("perfume exists, skipping")
			continue
		}

		p := perfumes.Perfume{
			Name:        sp.Name,
			Description: sp.Description,
			ImageURL:    sp.ImageURL,
			BrandID:     brandIDs[sp.Brand],
			Gender:      sp.Gender,
			PriceMin:    sp.PriceMin,
			PriceMax:    sp.PriceMax,
			Longevity:   sp.Longevity,
			Sillage:     sp.Sillage,
			Season:      sp.Season,
			Occasion:    sp.Occasion,
			Active:      true,
		}
		if err := tx.Create(&p).Error; err != nil {
			return 0, fmt.Errorf("create perfume %s: %w", sp.Name, err)
		}
		for _, note := range sp.Notes {
			pn := perfumes.PerfumeNote{PerfumeID: p.ID, NoteID: noteIDs[note.Name], Intensity: note.Intensity}
			if err := tx.Create(&pn).Error; err != nil {
				return 0, fmt.Errorf("perfume %s note %s: %w", sp.Name, note.Name, err)
			}
		}
		created++
	}
	return created, nil
}
