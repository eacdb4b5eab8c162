package reviews

import (
	"context"
	"testing"
	"time"

	"github.com/fragancia/fragancia-api/internal/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsert_UniqueIndexWithoutPrecheck(t *testing.T) {
	d := dbtest.Open(t)
	require.NoError(t, Init(d))
	s := NewStore(d, nil)
	ctx := context.Background()

	first := &Review{UserID: "u1", PerfumeID: 7, Rating: 4, ReviewedAt: time.Now()}
	require.NoError(t, s.insert(ctx, first))

	second := &Review{UserID: "u1", PerfumeID: 7, Rating: 2, ReviewedAt: time.Now()}
	assert.ErrorIs(t, s.insert(ctx, second), ErrAlreadyReviewed)

	var n int64
	require.NoError(t, d.Model(&Review{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	// Another user's review of the same perfume is a different pair.
	require.NoError(t, s.insert(ctx, &Review{UserID: "u2", PerfumeID: 7, Rating: 5, ReviewedAt: time.Now()}))
}
