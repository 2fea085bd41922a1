package repository

import (
	"context"
	"errors"

	"github.com/SilverKain/Orthography/internal/docstore"
	"github.com/SilverKain/Orthography/internal/model"
)

type ExerciseRepository struct {
	Store docstore.Store
}

func NewExerciseRepository(store docstore.Store) *ExerciseRepository {
	return &ExerciseRepository{Store: store}
}

// Get возвращает (nil, nil), если попыток ещё не было.
func (r *ExerciseRepository) Get(ctx context.Context, uid, exerciseID string) (*model.ExerciseResult, error) {
	doc, err := r.Store.Get(ctx, userPath(uid, "exerciseResults", exerciseID))
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var result model.ExerciseResult
	if err := decodeDocument(doc, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *ExerciseRepository) List(ctx context.Context, uid string) ([]model.ExerciseResult, error) {
	docs, err := r.Store.List(ctx, userCollection(uid, "exerciseResults"))
	if err != nil {
		return nil, err
	}
	out := make([]model.ExerciseResult, 0, len(docs))
	for _, doc := range docs {
		var result model.ExerciseResult
		if err := decodeDocument(doc, &result); err != nil {
			return nil, err
		}
		out = append(out, result)
	}
	return out, nil
}

// Save пишет последнюю попытку и дозаписывает её в attemptHistory.
// История только растёт, поля последней попытки перезаписываются.
func (r *ExerciseRepository) Save(ctx context.Context, uid string, result *model.ExerciseResult, attempt model.AttemptRecord) error {
	fields := map[string]interface{}{
		"exerciseId":     result.ExerciseID,
		"score":          result.Score,
		"attempts":       result.Attempts,
		"completed":      result.Completed,
		"lastAttempt":    docstore.ServerTimestamp(),
		"answers":        result.Answers,
		"mistakes":       result.Mistakes,
		"taskResults":    result.TaskResults,
		"attemptHistory": docstore.ArrayUnion(attempt),
	}
	return r.Store.Set(ctx, userPath(uid, "exerciseResults", result.ExerciseID), fields, true)
}
