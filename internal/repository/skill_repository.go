package repository

import (
	"context"

	"github.com/SilverKain/Orthography/internal/docstore"
	"github.com/SilverKain/Orthography/internal/model"
)

type SkillRepository struct {
	Store docstore.Store
}

func NewSkillRepository(store docstore.Store) *SkillRepository {
	return &SkillRepository{Store: store}
}

func (r *SkillRepository) Get(ctx context.Context, uid, skillID string) (*model.Skill, error) {
	doc, err := r.Store.Get(ctx, userPath(uid, "skills", skillID))
	if err != nil {
		return nil, err
	}
	var skill model.Skill
	if err := decodeDocument(doc, &skill); err != nil {
		return nil, err
	}
	return &skill, nil
}

func (r *SkillRepository) List(ctx context.Context, uid string) ([]model.Skill, error) {
	docs, err := r.Store.List(ctx, userCollection(uid, "skills"))
	if err != nil {
		return nil, err
	}
	skills := make([]model.Skill, 0, len(docs))
	for _, doc := range docs {
		var skill model.Skill
		if err := decodeDocument(doc, &skill); err != nil {
			return nil, err
		}
		skills = append(skills, skill)
	}
	return skills, nil
}

// Create перезаписывает документ целиком: повторная инициализация
// намеренно обнуляет накопленный прогресс.
func (r *SkillRepository) Create(ctx context.Context, uid string, skill model.Skill) error {
	if err := skill.Validate(); err != nil {
		return err
	}
	fields := map[string]interface{}{
		"skillId":          skill.SkillID,
		"name":             skill.Name,
		"category":         skill.Category,
		"description":      skill.Description,
		"relatedLessons":   skill.RelatedLessons,
		"relatedExercises": skill.RelatedExercises,
		"order":            skill.Order,
		"level":            skill.Level,
		"progress":         skill.Progress,
		"practiceCount":    skill.PracticeCount,
		"correctAnswers":   skill.CorrectAnswers,
		"totalAnswers":     skill.TotalAnswers,
		"lastPracticed":    nil,
		"createdAt":        docstore.ServerTimestamp(),
	}
	return r.Store.Set(ctx, userPath(uid, "skills", skill.SkillID), fields, false)
}

// SaveProgress записывает пересчитанные счётчики; lastPracticed
// выставляет сервер. practiceCount пишется только по запросу — прямое
// обновление прогресса его не трогает.
func (r *SkillRepository) SaveProgress(ctx context.Context, uid string, skill *model.Skill, withPracticeCount bool) error {
	if err := skill.Validate(); err != nil {
		return err
	}
	fields := map[string]interface{}{
		"correctAnswers": skill.CorrectAnswers,
		"totalAnswers":   skill.TotalAnswers,
		"progress":       skill.Progress,
		"level":          skill.Level,
		"lastPracticed":  docstore.ServerTimestamp(),
	}
	if withPracticeCount {
		fields["practiceCount"] = skill.PracticeCount
	}
	return r.Store.Update(ctx, userPath(uid, "skills", skill.SkillID), fields)
}

// Reset обнуляет изменяемые счётчики, поля каталога не трогает.
func (r *SkillRepository) Reset(ctx context.Context, uid, skillID string) error {
	fields := map[string]interface{}{
		"level":          0,
		"progress":       0,
		"practiceCount":  0,
		"correctAnswers": 0,
		"totalAnswers":   0,
		"lastPracticed":  nil,
	}
	return r.Store.Update(ctx, userPath(uid, "skills", skillID), fields)
}
