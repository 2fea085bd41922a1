package service

import (
	"context"
	"math"
	"sort"

	"github.com/SilverKain/Orthography/internal/model"
	"github.com/SilverKain/Orthography/internal/repository"
)

// ProgressService ведёт прогресс по урокам и глобальные счётчики
// пользователя. Детальные записи и счётчики не связаны ссылочной
// целостностью: статистика может разойтись с пересчётом по урокам.
type ProgressService struct {
	Repo  *repository.ProgressRepository
	Stats *repository.StatsRepository
}

func NewProgressService(repo *repository.ProgressRepository, stats *repository.StatsRepository) *ProgressService {
	return &ProgressService{Repo: repo, Stats: stats}
}

func (s *ProgressService) GetLessonProgress(ctx context.Context, uid, lessonID string) (*model.LessonProgress, error) {
	return s.Repo.Get(ctx, uid, lessonID)
}

func (s *ProgressService) SaveProgress(ctx context.Context, uid string, p model.LessonProgress) error {
	return s.Repo.Save(ctx, uid, p)
}

func (s *ProgressService) GetAllProgress(ctx context.Context, uid string) ([]model.LessonProgress, error) {
	return s.Repo.List(ctx, uid)
}

// CompleteLesson отмечает урок завершённым и атомарно двигает
// глобальный счётчик завершённых уроков.
func (s *ProgressService) CompleteLesson(ctx context.Context, uid, lessonID string, score int) error {
	if score == 0 {
		score = 100
	}
	if err := s.Repo.Complete(ctx, uid, lessonID, score); err != nil {
		return err
	}
	return s.Stats.Add(ctx, uid, map[string]float64{"lessonsCompleted": 1})
}

// UpdateStudyTime доливает минуты в урок и в суммарное время обучения.
func (s *ProgressService) UpdateStudyTime(ctx context.Context, uid, lessonID string, minutes int) error {
	if err := s.Repo.AddStudyTime(ctx, uid, lessonID, minutes); err != nil {
		return err
	}
	return s.Stats.Add(ctx, uid, map[string]float64{"totalTimeSpent": float64(minutes)})
}

// ModuleStats сводит прогресс по набору уроков одного модуля.
func (s *ProgressService) ModuleStats(ctx context.Context, uid string, lessonIDs []string) (*model.ModuleStats, error) {
	all, err := s.Repo.List(ctx, uid)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(lessonIDs))
	for _, id := range lessonIDs {
		wanted[id] = true
	}

	var module []model.LessonProgress
	for _, p := range all {
		if wanted[p.LessonID] {
			module = append(module, p)
		}
	}

	stats := &model.ModuleStats{Total: len(lessonIDs)}
	scoreSum := 0
	for _, p := range module {
		if p.Completed {
			stats.Completed++
		}
		scoreSum += p.Score
		stats.TotalTime += p.TimeSpent
	}
	if len(module) > 0 {
		stats.AverageScore = int(math.Round(float64(scoreSum) / float64(len(module))))
	}
	if stats.Total > 0 {
		stats.Percentage = int(math.Round(float64(stats.Completed) / float64(stats.Total) * 100))
	}
	return stats, nil
}

// RecentLessons — последние изученные уроки, новые первыми.
func (s *ProgressService) RecentLessons(ctx context.Context, uid string, limit int) ([]model.LessonProgress, error) {
	all, err := s.Repo.List(ctx, uid)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i].LastAccessed, all[j].LastAccessed
		switch {
		case b == nil:
			return a != nil
		case a == nil:
			return false
		default:
			return a.After(*b)
		}
	})

	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (s *ProgressService) UserStats(ctx context.Context, uid string) (*model.UserStats, error) {
	return s.Stats.Get(ctx, uid)
}
