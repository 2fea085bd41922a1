package repository

import (
	"context"
	"errors"

	"github.com/SilverKain/Orthography/internal/docstore"
	"github.com/SilverKain/Orthography/internal/model"
)

type ProgressRepository struct {
	Store docstore.Store
}

func NewProgressRepository(store docstore.Store) *ProgressRepository {
	return &ProgressRepository{Store: store}
}

// Get возвращает (nil, nil) для урока без прогресса: отсутствие записи
// не ошибка.
func (r *ProgressRepository) Get(ctx context.Context, uid, lessonID string) (*model.LessonProgress, error) {
	doc, err := r.Store.Get(ctx, userPath(uid, "lessonProgress", lessonID))
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var progress model.LessonProgress
	if err := decodeDocument(doc, &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *ProgressRepository) List(ctx context.Context, uid string) ([]model.LessonProgress, error) {
	docs, err := r.Store.List(ctx, userCollection(uid, "lessonProgress"))
	if err != nil {
		return nil, err
	}
	out := make([]model.LessonProgress, 0, len(docs))
	for _, doc := range docs {
		var progress model.LessonProgress
		if err := decodeDocument(doc, &progress); err != nil {
			return nil, err
		}
		out = append(out, progress)
	}
	return out, nil
}

func (r *ProgressRepository) Save(ctx context.Context, uid string, p model.LessonProgress) error {
	fields := map[string]interface{}{
		"lessonId":     p.LessonID,
		"completed":    p.Completed,
		"score":        p.Score,
		"timeSpent":    p.TimeSpent,
		"lastAccessed": docstore.ServerTimestamp(),
	}
	return r.Store.Set(ctx, userPath(uid, "lessonProgress", p.LessonID), fields, true)
}

func (r *ProgressRepository) Complete(ctx context.Context, uid, lessonID string, score int) error {
	fields := map[string]interface{}{
		"lessonId":     lessonID,
		"completed":    true,
		"score":        score,
		"completedAt":  docstore.ServerTimestamp(),
		"lastAccessed": docstore.ServerTimestamp(),
	}
	return r.Store.Set(ctx, userPath(uid, "lessonProgress", lessonID), fields, true)
}

func (r *ProgressRepository) AddStudyTime(ctx context.Context, uid, lessonID string, minutes int) error {
	fields := map[string]interface{}{
		"lessonId":     lessonID,
		"timeSpent":    docstore.Increment(float64(minutes)),
		"lastAccessed": docstore.ServerTimestamp(),
	}
	return r.Store.Set(ctx, userPath(uid, "lessonProgress", lessonID), fields, true)
}
