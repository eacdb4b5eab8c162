package recommend

import (
	"context"

	"github.com/fragancia/fragancia-api/internal/logging"
	"github.com/fragancia/fragancia-api/internal/metrics"
	"github.com/fragancia/fragancia-api/internal/perfumes"
)

const DefaultLimit = 3

type Engine struct {
	catalog *perfumes.Store
	limit   int
}

func NewEngine(catalog *perfumes.Store) *Engine {
	return &Engine{catalog: catalog, limit: DefaultLimit}
}

// Recommend returns up to limit perfumes for the answers, best rated first.
// When nothing matches it falls back to the lowest ids. It never fails: a
// store error is logged and yields an empty list.
func (e *Engine) Recommend(ctx context.Context, a Answers) []perfumes.Summary {
	f := BuildFilter(a)
	log := logging.Ctx(ctx)

	matched := []perfumes.Summary{}
	err := f.Apply(e.catalog.Catalog(ctx)).
		Order("average_rating DESC, p.id ASC").
		Limit(e.limit).
		Scan(&matched).Error
	if err != nil {
		metrics.RecommendationsTotal.WithLabelValues("error").Inc()
		log.Error().Err(err).Strs("rules", f.Rules).Msg("recommendation query failed")
		return []perfumes.Summary{}
	}
	if len(matched) > 0 {
		metrics.RecommendationsTotal.WithLabelValues("matched").Inc()
		return matched
	}

	fallback := []perfumes.Summary{}
	err = e.catalog.Catalog(ctx).
		Order("p.id ASC").
		Limit(e.limit).
		Scan(&fallback).Error
	if err != nil {
		metrics.RecommendationsTotal.WithLabelValues("error").Inc()
		log.Error().Err(err).Msg("recommendation fallback failed")
		return []perfumes.Summary{}
	}
	metrics.RecommendationsTotal.WithLabelValues("fallback").Inc()
	log.Debug().Strs("rules", f.Rules).Int("count", len(fallback)).Msg("no match, using fallback")
	return fallback
}
