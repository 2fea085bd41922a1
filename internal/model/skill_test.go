package model

import (
	"testing"

	"github.com/SilverKain/Orthography/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSkill(t *testing.T) {
	def, ok := catalog.Default().Get("vowels-checked")
	require.True(t, ok)

	skill := NewSkill(def)
	assert.Equal(t, def.SkillID, skill.SkillID)
	assert.Equal(t, def.Name, skill.Name)
	assert.Equal(t, 0, skill.Level)
	assert.Equal(t, 0, skill.Progress)
	assert.Nil(t, skill.LastPracticed)
	assert.NoError(t, skill.Validate())
}

func TestSkillValidate(t *testing.T) {
	valid := Skill{SkillID: "s1", Level: 3, Progress: 70, PracticeCount: 5, CorrectAnswers: 7, TotalAnswers: 10}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name  string
		skill Skill
	}{
		{"пустой идентификатор", Skill{}},
		{"уровень выше пяти", Skill{SkillID: "s1", Level: 6}},
		{"отрицательный уровень", Skill{SkillID: "s1", Level: -1}},
		{"прогресс выше ста", Skill{SkillID: "s1", Progress: 101}},
		{"отрицательный счётчик", Skill{SkillID: "s1", PracticeCount: -1}},
		{"правильных больше, чем всего", Skill{SkillID: "s1", CorrectAnswers: 5, TotalAnswers: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.skill.Validate())
		})
	}
}
