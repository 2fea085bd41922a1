package model

import (
	"fmt"
	"time"

	"github.com/SilverKain/Orthography/internal/catalog"
)

// Skill — запись навыка пользователя: статические поля каталога плюс
// накопленные счётчики практики. Ровно одна запись на пару
// (пользователь, навык).
type Skill struct {
	SkillID          string           `json:"skillId"`
	Name             string           `json:"name"`
	Category         catalog.Category `json:"category"`
	Description      string           `json:"description"`
	RelatedLessons   []string         `json:"relatedLessons"`
	RelatedExercises []string         `json:"relatedExercises"`
	Order            int              `json:"order"`

	Level          int        `json:"level"`
	Progress       int        `json:"progress"`
	PracticeCount  int        `json:"practiceCount"`
	CorrectAnswers int        `json:"correctAnswers"`
	TotalAnswers   int        `json:"totalAnswers"`
	LastPracticed  *time.Time `json:"lastPracticed"`
}

// NewSkill возвращает нулевую запись для определения из каталога.
func NewSkill(def catalog.Definition) Skill {
	return Skill{
		SkillID:          def.SkillID,
		Name:             def.Name,
		Category:         def.Category,
		Description:      def.Description,
		RelatedLessons:   def.RelatedLessons,
		RelatedExercises: def.RelatedExercises,
		Order:            def.Order,
	}
}

// Validate проверяет инварианты записи перед сохранением.
func (s *Skill) Validate() error {
	if s.SkillID == "" {
		return fmt.Errorf("skill: empty skillId")
	}
	if s.Level < 0 || s.Level > 5 {
		return fmt.Errorf("skill %s: level %d out of range", s.SkillID, s.Level)
	}
	if s.Progress < 0 || s.Progress > 100 {
		return fmt.Errorf("skill %s: progress %d out of range", s.SkillID, s.Progress)
	}
	if s.PracticeCount < 0 || s.CorrectAnswers < 0 || s.TotalAnswers < 0 {
		return fmt.Errorf("skill %s: negative counter", s.SkillID)
	}
	if s.CorrectAnswers > s.TotalAnswers {
		return fmt.Errorf("skill %s: correctAnswers %d exceeds totalAnswers %d", s.SkillID, s.CorrectAnswers, s.TotalAnswers)
	}
	return nil
}

// SkillStats — свёртка по всем навыкам пользователя.
type SkillStats struct {
	Total           int            `json:"total"`
	ByLevel         map[int]int    `json:"byLevel"`
	ByCategory      map[string]int `json:"byCategory"`
	AverageProgress int            `json:"averageProgress"`
	MasterSkills    int            `json:"masterSkills"`
	InProgress      int            `json:"inProgressSkills"`
}

// PracticeResult — итог одного обновления навыка.
type PracticeResult struct {
	Progress      int `json:"progress"`
	Level         int `json:"level"`
	PracticeCount int `json:"practiceCount,omitempty"`
}
