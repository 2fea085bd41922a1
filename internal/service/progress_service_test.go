package service

import (
	"context"
	"testing"
	"time"

	"github.com/SilverKain/Orthography/internal/docstore"
	"github.com/SilverKain/Orthography/internal/model"
	"github.com/SilverKain/Orthography/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProgressFixture() (*ProgressService, *docstore.MemStore) {
	store := docstore.NewMemStore()
	svc := NewProgressService(
		repository.NewProgressRepository(store),
		repository.NewStatsRepository(store),
	)
	return svc, store
}

func TestSaveAndGetProgress(t *testing.T) {
	ctx := context.Background()
	svc, _ := newProgressFixture()

	require.NoError(t, svc.SaveProgress(ctx, "u1", model.LessonProgress{
		LessonID: "lesson-01",
		Score:    80,
	}))

	p, err := svc.GetLessonProgress(ctx, "u1", "lesson-01")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 80, p.Score)
	assert.False(t, p.Completed)
	assert.NotNil(t, p.LastAccessed)

	missing, err := svc.GetLessonProgress(ctx, "u1", "lesson-99")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCompleteLesson(t *testing.T) {
	ctx := context.Background()
	svc, _ := newProgressFixture()

	require.NoError(t, svc.CompleteLesson(ctx, "u1", "lesson-01", 85))

	p, err := svc.GetLessonProgress(ctx, "u1", "lesson-01")
	require.NoError(t, err)
	assert.True(t, p.Completed)
	assert.Equal(t, 85, p.Score)
	assert.NotNil(t, p.CompletedAt)

	stats, err := svc.UserStats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.LessonsCompleted)

	// повторное завершение двигает счётчик снова: пересчёта задним
	// числом нет
	require.NoError(t, svc.CompleteLesson(ctx, "u1", "lesson-01", 90))
	stats, err = svc.UserStats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.LessonsCompleted)
}

func TestCompleteLessonDefaultScore(t *testing.T) {
	ctx := context.Background()
	svc, _ := newProgressFixture()

	require.NoError(t, svc.CompleteLesson(ctx, "u1", "lesson-01", 0))

	p, err := svc.GetLessonProgress(ctx, "u1", "lesson-01")
	require.NoError(t, err)
	assert.Equal(t, 100, p.Score)
}

func TestUpdateStudyTime(t *testing.T) {
	ctx := context.Background()
	svc, _ := newProgressFixture()

	require.NoError(t, svc.UpdateStudyTime(ctx, "u1", "lesson-01", 15))
	require.NoError(t, svc.UpdateStudyTime(ctx, "u1", "lesson-01", 10))

	p, err := svc.GetLessonProgress(ctx, "u1", "lesson-01")
	require.NoError(t, err)
	assert.Equal(t, 25, p.TimeSpent)

	stats, err := svc.UserStats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 25, stats.TotalTimeSpent)
}

func TestModuleStats(t *testing.T) {
	ctx := context.Background()
	svc, _ := newProgressFixture()

	require.NoError(t, svc.CompleteLesson(ctx, "u1", "lesson-01", 80))
	require.NoError(t, svc.CompleteLesson(ctx, "u1", "lesson-02", 90))
	require.NoError(t, svc.SaveProgress(ctx, "u1", model.LessonProgress{LessonID: "lesson-03", Score: 40}))
	// lesson-04 модуля не начат, lesson-other вне модуля
	require.NoError(t, svc.CompleteLesson(ctx, "u1", "lesson-other", 100))

	stats, err := svc.ModuleStats(ctx, "u1", []string{"lesson-01", "lesson-02", "lesson-03", "lesson-04"})
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.Completed)
	assert.Equal(t, 50, stats.Percentage)
	// средний балл по начатым урокам: (80+90+40)/3
	assert.Equal(t, 70, stats.AverageScore)
}

func TestModuleStatsEmpty(t *testing.T) {
	ctx := context.Background()
	svc, _ := newProgressFixture()

	stats, err := svc.ModuleStats(ctx, "u1", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0, stats.Percentage)
	assert.Equal(t, 0, stats.AverageScore)
}

func TestRecentLessons(t *testing.T) {
	ctx := context.Background()
	svc, store := newProgressFixture()

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"lesson-01", "lesson-02", "lesson-03"} {
		day := i
		store.Now = func() time.Time { return base.AddDate(0, 0, day) }
		require.NoError(t, svc.SaveProgress(ctx, "u1", model.LessonProgress{LessonID: id}))
	}

	recent, err := svc.RecentLessons(ctx, "u1", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "lesson-03", recent[0].LessonID)
	assert.Equal(t, "lesson-02", recent[1].LessonID)
}

func TestUserStatsEmpty(t *testing.T) {
	ctx := context.Background()
	svc, _ := newProgressFixture()

	stats, err := svc.UserStats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.LessonsCompleted)
	assert.Equal(t, 0, stats.ExercisesCompleted)
	assert.Equal(t, 0, stats.TotalTimeSpent)
}
