package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"github.com/SilverKain/Orthography/internal/catalog"
	"github.com/SilverKain/Orthography/internal/docstore"
	"github.com/SilverKain/Orthography/internal/model"
	"github.com/SilverKain/Orthography/internal/repository"
	"github.com/SilverKain/Orthography/internal/util"
)

// SkillService — матрица навыков: инициализация каталога для новых
// пользователей и пересчёт уровня по накопленной точности.
//
// Чтение-изменение-запись счётчиков здесь сознательно не обёрнуто в
// транзакцию: два одновременных обновления одного навыка могут затереть
// друг друга, как и в исходной системе.
type SkillService struct {
	Repo    *repository.SkillRepository
	Catalog *catalog.Catalog

	now func() time.Time
}

func NewSkillService(repo *repository.SkillRepository, cat *catalog.Catalog) *SkillService {
	return &SkillService{
		Repo:    repo,
		Catalog: cat,
		now:     time.Now,
	}
}

// Initialize создаёт нулевую запись для каждого навыка каталога.
// Повторный вызов перезаписывает накопленный прогресс, поэтому снаружи
// он делается только при пустой коллекции.
func (s *SkillService) Initialize(ctx context.Context, uid string) error {
	for _, def := range s.Catalog.All() {
		if err := s.Repo.Create(ctx, uid, model.NewSkill(def)); err != nil {
			return err
		}
	}
	return nil
}

// GetAll возвращает навыки пользователя, отсортированные по порядку
// курса. Пустая коллекция лечится однократной инициализацией; если и
// после неё список пуст, значит хранилище неисправно.
func (s *SkillService) GetAll(ctx context.Context, uid string) ([]model.Skill, error) {
	skills, err := s.Repo.List(ctx, uid)
	if err != nil {
		return nil, err
	}
	if len(skills) == 0 {
		if err := s.Initialize(ctx, uid); err != nil {
			return nil, err
		}
		skills, err = s.Repo.List(ctx, uid)
		if err != nil {
			return nil, err
		}
		if len(skills) == 0 {
			return nil, util.ErrSkillsNotInitialized
		}
	}
	sort.Slice(skills, func(i, j int) bool { return skills[i].Order < skills[j].Order })
	return skills, nil
}

func (s *SkillService) Get(ctx context.Context, uid, skillID string) (*model.Skill, error) {
	skill, err := s.Repo.Get(ctx, uid, skillID)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, util.ErrSkillNotFound
	}
	return skill, err
}

func (s *SkillService) GetByCategory(ctx context.Context, uid string, category catalog.Category) ([]model.Skill, error) {
	skills, err := s.GetAll(ctx, uid)
	if err != nil {
		return nil, err
	}
	filtered := make([]model.Skill, 0, len(skills))
	for _, skill := range skills {
		if skill.Category == category {
			filtered = append(filtered, skill)
		}
	}
	return filtered, nil
}

// UpdateFromPractice доливает результаты одной практики в накопленные
// счётчики и пересчитывает уровень.
func (s *SkillService) UpdateFromPractice(ctx context.Context, uid, skillID string, correct, total int) (*model.PracticeResult, error) {
	if correct < 0 || total < correct {
		return nil, util.ErrInvalidPractice
	}

	skill, err := s.Repo.Get(ctx, uid, skillID)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, util.ErrSkillNotFound
	}
	if err != nil {
		return nil, err
	}

	skill.CorrectAnswers += correct
	skill.TotalAnswers += total
	if skill.TotalAnswers == 0 {
		// Нулевая суммарная выборка не даёт посчитать точность.
		return nil, util.ErrInvalidPractice
	}
	skill.Progress = roundPercent(skill.CorrectAnswers, skill.TotalAnswers)
	skill.PracticeCount++
	skill.Level = ladderLevel(skill.Progress, skill.PracticeCount, skill.Level)

	if err := s.Repo.SaveProgress(ctx, uid, skill, true); err != nil {
		return nil, err
	}
	return &model.PracticeResult{
		Progress:      skill.Progress,
		Level:         skill.Level,
		PracticeCount: skill.PracticeCount,
	}, nil
}

// UpdateDirect перезаписывает счётчики абсолютными значениями,
// посчитанными снаружи (например, суммой по нескольким упражнениям).
// practiceCount не меняется; для ни разу не практикованного навыка
// лестница оценивается как при одной практике.
func (s *SkillService) UpdateDirect(ctx context.Context, uid, skillID string, progress, correctAnswers, totalAnswers int) (*model.PracticeResult, error) {
	if progress < 0 || progress > 100 || correctAnswers < 0 || totalAnswers < correctAnswers {
		return nil, util.ErrInvalidPractice
	}

	skill, err := s.Repo.Get(ctx, uid, skillID)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, util.ErrSkillNotFound
	}
	if err != nil {
		return nil, err
	}

	practiceCount := skill.PracticeCount
	if practiceCount == 0 {
		practiceCount = 1
	}

	skill.CorrectAnswers = correctAnswers
	skill.TotalAnswers = totalAnswers
	skill.Progress = progress
	skill.Level = ladderLevel(progress, practiceCount, skill.Level)

	if err := s.Repo.SaveProgress(ctx, uid, skill, false); err != nil {
		return nil, err
	}
	return &model.PracticeResult{
		Progress: skill.Progress,
		Level:    skill.Level,
	}, nil
}

// Stats сводит список навыков в гистограммы по уровням и категориям.
func (s *SkillService) Stats(ctx context.Context, uid string) (*model.SkillStats, error) {
	skills, err := s.GetAll(ctx, uid)
	if err != nil {
		return nil, err
	}

	stats := &model.SkillStats{
		Total:      len(skills),
		ByLevel:    map[int]int{0: 0, 1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
		ByCategory: map[string]int{string(catalog.Orthography): 0, string(catalog.Punctuation): 0},
	}

	totalProgress := 0
	for _, skill := range skills {
		stats.ByLevel[skill.Level]++
		stats.ByCategory[string(skill.Category)]++
		totalProgress += skill.Progress

		if skill.Level == 5 {
			stats.MasterSkills++
		}
		if skill.Level > 0 && skill.Level < 5 {
			stats.InProgress++
		}
	}
	stats.AverageProgress = int(math.Round(float64(totalProgress) / float64(len(skills))))

	return stats, nil
}

// NeedingPractice отдаёт изученные, но не доведённые до мастерства
// навыки, которые не практиковались дольше days дней. Никогда не
// практиковавшиеся считаются самыми старыми и идут первыми.
func (s *SkillService) NeedingPractice(ctx context.Context, uid string, days int) ([]model.Skill, error) {
	skills, err := s.GetAll(ctx, uid)
	if err != nil {
		return nil, err
	}

	threshold := s.now().Add(-time.Duration(days) * 24 * time.Hour)

	needing := make([]model.Skill, 0, len(skills))
	for _, skill := range skills {
		if skill.Level <= 0 || skill.Level >= 5 {
			continue
		}
		if skill.LastPracticed == nil || skill.LastPracticed.Before(threshold) {
			needing = append(needing, skill)
		}
	}

	sort.SliceStable(needing, func(i, j int) bool {
		a, b := needing[i].LastPracticed, needing[j].LastPracticed
		switch {
		case a == nil:
			return b != nil
		case b == nil:
			return false
		default:
			return a.Before(*b)
		}
	})
	return needing, nil
}

// Reset возвращает навык в нулевое состояние для повторного изучения.
func (s *SkillService) Reset(ctx context.Context, uid, skillID string) error {
	err := s.Repo.Reset(ctx, uid, skillID)
	if errors.Is(err, docstore.ErrNotFound) {
		return util.ErrSkillNotFound
	}
	return err
}

// ladderLevel — лестница уровней. Проверки идут сверху вниз, первая
// сработавшая побеждает; при несработавших порогах уровень сохраняется.
// Лестница оценивается по текущим значениям, поэтому уровень может и
// опуститься вслед за точностью.
func ladderLevel(progress, practiceCount, current int) int {
	switch {
	case progress >= 90 && practiceCount >= 10:
		return 5
	case progress >= 80 && practiceCount >= 7:
		return 4
	case progress >= 70 && practiceCount >= 5:
		return 3
	case progress >= 50 && practiceCount >= 3:
		return 2
	case practiceCount >= 1:
		return 1
	default:
		return current
	}
}

func roundPercent(part, whole int) int {
	return int(math.Round(float64(part) / float64(whole) * 100))
}
