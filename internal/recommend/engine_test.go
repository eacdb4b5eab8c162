package recommend_test

import (
	"context"
	"testing"

	"github.com/fragancia/fragancia-api/internal/db"
	"github.com/fragancia/fragancia-api/internal/dbtest"
	"github.com/fragancia/fragancia-api/internal/favorites"
	"github.com/fragancia/fragancia-api/internal/perfumes"
	"github.com/fragancia/fragancia-api/internal/recommend"
	"github.com/fragancia/fragancia-api/internal/reviews"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type catalog struct {
	t     *testing.T
	db    *gorm.DB
	brand perfumes.Brand
}

func newCatalog(t *testing.T) *catalog {
	t.Helper()
	d := dbtest.Open(t)
	require.NoError(t, perfumes.Init(d))
	require.NoError(t, favorites.Init(d))
	require.NoError(t, reviews.Init(d))

	brand := perfumes.Brand{Name: "Maison Test", Country: "França"}
	require.NoError(t, d.Create(&brand).Error)
	return &catalog{t: t, db: d, brand: brand}
}

func (c *catalog) add(name, occasion, sillage string) uint {
	c.t.Helper()
	p := perfumes.Perfume{Name: name, BrandID: c.brand.ID, Occasion: occasion, Sillage: sillage, Active: true}
	require.NoError(c.t, c.db.Create(&p).Error)
	return p.ID
}

func (c *catalog) deactivate(id uint) {
	c.t.Helper()
	require.NoError(c.t, c.db.Model(&perfumes.Perfume{}).Where("id = ?", id).Update("active", false).Error)
}

func (c *catalog) rate(perfumeID uint, ratings ...int) {
	c.t.Helper()
	for _, r := range ratings {
		rv := reviews.Review{UserID: uuid.NewString(), PerfumeID: perfumeID, Rating: r}
		require.NoError(c.t, c.db.Create(&rv).Error)
	}
}

func (c *catalog) engine() *recommend.Engine {
	return recommend.NewEngine(perfumes.NewStore(c.db))
}

func ids(list []perfumes.Summary) []uint {
	out := make([]uint, 0, len(list))
	for _, p := range list {
		out = append(out, p.ID)
	}
	return out
}

// A perfume matching only one of the OR-combined conditions is returned.
func TestRecommend_ORMatchesEitherCondition(t *testing.T) {
	c := newCatalog(t)
	nightStrong := c.add("Nuit", "Noite, Especial", "Forte")
	dayLight := c.add("Matin", "Dia", "Leve")
	c.add("Midi", "Dia", "Forte")

	got := c.engine().Recommend(context.Background(), recommend.Answers{
		Period: "night", Event: "casual", Family: "woody", Intensity: "discreet", Impression: "elegant",
	})

	assert.ElementsMatch(t, []uint{nightStrong, dayLight}, ids(got))
}

func TestRecommend_RanksByRatingThenID(t *testing.T) {
	c := newCatalog(t)
	a := c.add("A", "noite", "forte")
	b := c.add("B", "noite", "forte")
	c.add("C", "noite", "forte")
	d := c.add("D", "noite", "forte")
	c.rate(b, 5)
	c.rate(d, 4, 4)
	c.rate(a, 2)

	got := c.engine().Recommend(context.Background(), recommend.Answers{Period: "noite", Intensity: "marcante"})

	assert.Equal(t, []uint{b, d, a}, ids(got))
	assert.InDelta(t, 5.0, got[0].AverageRating, 0.001)
	assert.EqualValues(t, 2, got[1].ReviewCount)
}

func TestRecommend_FallbackLowestIDs(t *testing.T) {
	c := newCatalog(t)
	var all []uint
	for _, n := range []string{"E", "D", "C", "B", "A"} {
		all = append(all, c.add(n, "Dia", "Moderado"))
	}
	c.rate(all[4], 5)

	got := c.engine().Recommend(context.Background(), recommend.Answers{Period: "noite", Intensity: "marcante"})

	assert.Equal(t, all[:3], ids(got))
}

func TestRecommend_FallbackSmallCatalog(t *testing.T) {
	c := newCatalog(t)
	only := c.add("Solo", "Dia", "Leve")

	got := c.engine().Recommend(context.Background(), recommend.Answers{Period: "night"})
	assert.Equal(t, []uint{only}, ids(got))
}

func TestRecommend_EmptyCatalog(t *testing.T) {
	c := newCatalog(t)
	got := c.engine().Recommend(context.Background(), recommend.Answers{Period: "night"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRecommend_NoRulesRanksWholeCatalog(t *testing.T) {
	c := newCatalog(t)
	a := c.add("A", "Dia", "Leve")
	b := c.add("B", "Dia", "Leve")
	c.add("C", "Dia", "Leve")
	c.add("D", "Dia", "Leve")
	c.rate(b, 5)
	c.rate(a, 3)

	got := c.engine().Recommend(context.Background(), recommend.Answers{Period: "morning", Intensity: "medium"})
	require.Len(t, got, 3)
	assert.Equal(t, []uint{b, a}, ids(got)[:2])
}

func TestRecommend_SkipsInactive(t *testing.T) {
	c := newCatalog(t)
	hidden := c.add("Hidden", "noite", "forte")
	shown := c.add("Shown", "noite", "forte")
	c.deactivate(hidden)

	got := c.engine().Recommend(context.Background(), recommend.Answers{Period: "noite"})
	assert.Equal(t, []uint{shown}, ids(got))
}

func TestRecommend_StoreErrorYieldsEmpty(t *testing.T) {
	c := newCatalog(t)
	c.add("A", "noite", "forte")
	require.NoError(t, db.Close(c.db))

	got := c.engine().Recommend(context.Background(), recommend.Answers{Period: "noite"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
