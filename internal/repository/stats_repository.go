package repository

import (
	"context"
	"errors"

	"github.com/SilverKain/Orthography/internal/docstore"
	"github.com/SilverKain/Orthography/internal/model"
)

// StatsRepository ведёт документ users/{uid}/stats/overall. Счётчики
// меняются только атомарными инкрементами хранилища, поэтому они
// безопасны при конкурентных запросах — в отличие от детальных записей.
type StatsRepository struct {
	Store docstore.Store
}

func NewStatsRepository(store docstore.Store) *StatsRepository {
	return &StatsRepository{Store: store}
}

func (r *StatsRepository) Get(ctx context.Context, uid string) (*model.UserStats, error) {
	doc, err := r.Store.Get(ctx, userPath(uid, "stats", "overall"))
	if errors.Is(err, docstore.ErrNotFound) {
		// Нулевые счётчики для пользователя без статистики.
		return &model.UserStats{}, nil
	}
	if err != nil {
		return nil, err
	}
	var stats model.UserStats
	if err := decodeDocument(doc, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *StatsRepository) Add(ctx context.Context, uid string, deltas map[string]float64) error {
	fields := map[string]interface{}{
		"updatedAt": docstore.ServerTimestamp(),
	}
	for key, delta := range deltas {
		fields[key] = docstore.Increment(delta)
	}
	return r.Store.Set(ctx, userPath(uid, "stats", "overall"), fields, true)
}
