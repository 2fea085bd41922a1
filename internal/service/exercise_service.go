package service

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/SilverKain/Orthography/internal/model"
	"github.com/SilverKain/Orthography/internal/repository"
)

// ExerciseAttempt — данные одной сдачи упражнения.
type ExerciseAttempt struct {
	Score       int                `json:"score" binding:"min=0,max=100"`
	Answers     []string           `json:"answers"`
	Mistakes    []string           `json:"mistakes"`
	TaskResults []model.TaskResult `json:"taskResults"`
}

// ExerciseService хранит результаты упражнений: последняя попытка
// перезаписывается, история попыток только дописывается.
type ExerciseService struct {
	Repo  *repository.ExerciseRepository
	Stats *repository.StatsRepository

	// PassingScore — порог зачёта упражнения, по умолчанию 80.
	PassingScore int
}

func NewExerciseService(repo *repository.ExerciseRepository, stats *repository.StatsRepository, passingScore int) *ExerciseService {
	if passingScore <= 0 {
		passingScore = 80
	}
	return &ExerciseService{Repo: repo, Stats: stats, PassingScore: passingScore}
}

func (s *ExerciseService) GetResult(ctx context.Context, uid, exerciseID string) (*model.ExerciseResult, error) {
	return s.Repo.Get(ctx, uid, exerciseID)
}

// SaveResult фиксирует попытку. Счётчик выполненных упражнений
// двигается только при зачёте с первой попытки — как и счётчики
// уроков, он не пересчитывается задним числом.
func (s *ExerciseService) SaveResult(ctx context.Context, uid, exerciseID string, attempt ExerciseAttempt) (*model.ExerciseResult, error) {
	existing, err := s.Repo.Get(ctx, uid, exerciseID)
	if err != nil {
		return nil, err
	}
	priorAttempts := 0
	if existing != nil {
		priorAttempts = existing.Attempts
	}

	result := &model.ExerciseResult{
		ExerciseID:  exerciseID,
		Score:       attempt.Score,
		Attempts:    priorAttempts + 1,
		Completed:   attempt.Score >= s.PassingScore,
		Answers:     emptyIfNil(attempt.Answers),
		Mistakes:    emptyIfNil(attempt.Mistakes),
		TaskResults: attempt.TaskResults,
	}

	record := model.AttemptRecord{
		Score:     attempt.Score,
		Timestamp: time.Now().UTC(),
		Mistakes:  emptyIfNil(attempt.Mistakes),
	}

	if err := s.Repo.Save(ctx, uid, result, record); err != nil {
		return nil, err
	}

	if result.Completed && priorAttempts == 0 {
		if err := s.Stats.Add(ctx, uid, map[string]float64{"exercisesCompleted": 1}); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (s *ExerciseService) GetAllResults(ctx context.Context, uid string) ([]model.ExerciseResult, error) {
	return s.Repo.List(ctx, uid)
}

// ExerciseStats сводит все результаты пользователя, включая таблицу
// типичных ошибок: топ-10 по частоте, при равенстве частот раньше идёт
// ошибка, встретившаяся первой.
func (s *ExerciseService) ExerciseStats(ctx context.Context, uid string) (*model.ExerciseStats, error) {
	results, err := s.Repo.List(ctx, uid)
	if err != nil {
		return nil, err
	}

	stats := &model.ExerciseStats{
		Total:       len(results),
		TopMistakes: []model.MistakeCount{},
	}

	scoreSum := 0
	counts := map[string]int{}
	var firstSeen []string

	for _, r := range results {
		if r.Completed {
			stats.Completed++
		}
		scoreSum += r.Score
		stats.TotalAttempts += r.Attempts

		for _, mistake := range r.Mistakes {
			if _, seen := counts[mistake]; !seen {
				firstSeen = append(firstSeen, mistake)
			}
			counts[mistake]++
		}
	}

	if stats.Total > 0 {
		stats.Percentage = int(math.Round(float64(stats.Completed) / float64(stats.Total) * 100))
		stats.AverageScore = int(math.Round(float64(scoreSum) / float64(stats.Total)))
	}

	ranked := make([]model.MistakeCount, 0, len(firstSeen))
	for _, mistake := range firstSeen {
		ranked = append(ranked, model.MistakeCount{Mistake: mistake, Count: counts[mistake]})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Count > ranked[j].Count })
	if len(ranked) > 10 {
		ranked = ranked[:10]
	}
	stats.TopMistakes = ranked

	return stats, nil
}

// NeedingReview — упражнения с баллом ниже порога или без зачёта.
func (s *ExerciseService) NeedingReview(ctx context.Context, uid string, threshold int) ([]model.ExerciseResult, error) {
	if threshold <= 0 {
		threshold = 70
	}
	results, err := s.Repo.List(ctx, uid)
	if err != nil {
		return nil, err
	}

	needing := make([]model.ExerciseResult, 0, len(results))
	for _, r := range results {
		if r.Score < threshold || !r.Completed {
			needing = append(needing, r)
		}
	}
	return needing, nil
}

// RecentAttempts — последние попытки, новые первыми.
func (s *ExerciseService) RecentAttempts(ctx context.Context, uid string, limit int) ([]model.ExerciseResult, error) {
	results, err := s.Repo.List(ctx, uid)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i].LastAttempt, results[j].LastAttempt
		switch {
		case b == nil:
			return a != nil
		case a == nil:
			return false
		default:
			return a.After(*b)
		}
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
