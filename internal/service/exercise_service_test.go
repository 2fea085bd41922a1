package service

import (
	"context"
	"testing"
	"time"

	"github.com/SilverKain/Orthography/internal/docstore"
	"github.com/SilverKain/Orthography/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExerciseFixture() (*ExerciseService, *repository.StatsRepository, *docstore.MemStore) {
	store := docstore.NewMemStore()
	stats := repository.NewStatsRepository(store)
	svc := NewExerciseService(repository.NewExerciseRepository(store), stats, 80)
	return svc, stats, store
}

func TestSaveResultFirstAttempt(t *testing.T) {
	ctx := context.Background()
	svc, stats, _ := newExerciseFixture()

	result, err := svc.SaveResult(ctx, "u1", "exercise-01", ExerciseAttempt{
		Score:    85,
		Mistakes: []string{"тся/ться"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Attempts)
	assert.True(t, result.Completed)

	userStats, err := stats.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, userStats.ExercisesCompleted)
}

func TestSaveResultRepeatedAttempts(t *testing.T) {
	ctx := context.Background()
	svc, stats, _ := newExerciseFixture()

	// первая попытка ниже порога
	result, err := svc.SaveResult(ctx, "u1", "exercise-01", ExerciseAttempt{Score: 60})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Attempts)
	assert.False(t, result.Completed)

	// вторая попытка проходит порог, но счётчик упражнений уже не
	// двигается: зачёт учитывается только с первой попытки
	result, err = svc.SaveResult(ctx, "u1", "exercise-01", ExerciseAttempt{Score: 90})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Attempts)
	assert.True(t, result.Completed)

	userStats, err := stats.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, userStats.ExercisesCompleted)

	saved, err := svc.GetResult(ctx, "u1", "exercise-01")
	require.NoError(t, err)
	require.Len(t, saved.AttemptHistory, 2)
	assert.Equal(t, 60, saved.AttemptHistory[0].Score)
	assert.Equal(t, 90, saved.AttemptHistory[1].Score)
}

func TestGetResultMissing(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newExerciseFixture()

	result, err := svc.GetResult(ctx, "u1", "no-such-exercise")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestExerciseStatsEmpty(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newExerciseFixture()

	stats, err := svc.ExerciseStats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0, stats.Percentage)
	assert.Equal(t, 0, stats.AverageScore)
	assert.Empty(t, stats.TopMistakes)
	assert.NotNil(t, stats.TopMistakes)
}

func TestExerciseStatsTopMistakes(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newExerciseFixture()

	_, err := svc.SaveResult(ctx, "u1", "e1", ExerciseAttempt{
		Score:    80,
		Mistakes: []string{"а", "б", "а"},
	})
	require.NoError(t, err)
	_, err = svc.SaveResult(ctx, "u1", "e2", ExerciseAttempt{
		Score:    60,
		Mistakes: []string{"а", "б", "в"},
	})
	require.NoError(t, err)

	stats, err := svc.ExerciseStats(ctx, "u1")
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 50, stats.Percentage)
	assert.Equal(t, 70, stats.AverageScore)

	require.Len(t, stats.TopMistakes, 3)
	assert.Equal(t, "а", stats.TopMistakes[0].Mistake)
	assert.Equal(t, 3, stats.TopMistakes[0].Count)
	// при равенстве частот раньше идёт встретившаяся первой
	assert.Equal(t, "б", stats.TopMistakes[1].Mistake)
	assert.Equal(t, 2, stats.TopMistakes[1].Count)
	assert.Equal(t, "в", stats.TopMistakes[2].Mistake)
	assert.Equal(t, 1, stats.TopMistakes[2].Count)
}

func TestExerciseStatsTopMistakesLimit(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newExerciseFixture()

	mistakes := []string{"м1", "м2", "м3", "м4", "м5", "м6", "м7", "м8", "м9", "м10", "м11", "м12"}
	_, err := svc.SaveResult(ctx, "u1", "e1", ExerciseAttempt{Score: 50, Mistakes: mistakes})
	require.NoError(t, err)

	stats, err := svc.ExerciseStats(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, stats.TopMistakes, 10)
}

func TestNeedingReview(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newExerciseFixture()

	_, err := svc.SaveResult(ctx, "u1", "e-low", ExerciseAttempt{Score: 55})
	require.NoError(t, err)
	_, err = svc.SaveResult(ctx, "u1", "e-mid", ExerciseAttempt{Score: 75})
	require.NoError(t, err)
	_, err = svc.SaveResult(ctx, "u1", "e-high", ExerciseAttempt{Score: 95})
	require.NoError(t, err)

	// порог по умолчанию 70: e-low ниже порога, e-mid без зачёта
	needing, err := svc.NeedingReview(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, needing, 2)

	ids := []string{needing[0].ExerciseID, needing[1].ExerciseID}
	assert.Contains(t, ids, "e-low")
	assert.Contains(t, ids, "e-mid")
}

func TestRecentAttempts(t *testing.T) {
	ctx := context.Background()
	svc, _, store := newExerciseFixture()

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"e1", "e2", "e3"} {
		day := i
		store.Now = func() time.Time { return base.AddDate(0, 0, day) }
		_, err := svc.SaveResult(ctx, "u1", id, ExerciseAttempt{Score: 80})
		require.NoError(t, err)
	}

	recent, err := svc.RecentAttempts(ctx, "u1", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "e3", recent[0].ExerciseID)
	assert.Equal(t, "e2", recent[1].ExerciseID)
}
