package service

import (
	"context"
	"testing"
	"time"

	"github.com/SilverKain/Orthography/internal/catalog"
	"github.com/SilverKain/Orthography/internal/docstore"
	"github.com/SilverKain/Orthography/internal/repository"
	"github.com/SilverKain/Orthography/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSkillFixture() (*SkillService, *docstore.MemStore) {
	store := docstore.NewMemStore()
	repo := repository.NewSkillRepository(store)
	svc := NewSkillService(repo, catalog.Default())
	return svc, store
}

func TestLadderLevel(t *testing.T) {
	tests := []struct {
		name          string
		progress      int
		practiceCount int
		current       int
		want          int
	}{
		{"мастер", 92, 10, 0, 5},
		{"ровно на пороге мастера", 90, 10, 3, 5},
		{"высокая точность, мало практики", 85, 6, 0, 3},
		{"опытный", 85, 7, 0, 4},
		{"практикующий", 70, 5, 0, 3},
		{"начинающий", 50, 3, 0, 2},
		{"низкая точность, много практики", 40, 20, 0, 1},
		{"одна практика", 10, 1, 0, 1},
		{"без практики уровень сохраняется", 0, 0, 3, 3},
		{"точность упала — уровень падает", 60, 12, 5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ladderLevel(tt.progress, tt.practiceCount, tt.current))
		})
	}
}

func TestGetAllInitializesMatrix(t *testing.T) {
	ctx := context.Background()
	svc, store := newSkillFixture()

	skills, err := svc.GetAll(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, skills, 31)

	// порядок курса
	for i := 1; i < len(skills); i++ {
		assert.Less(t, skills[i-1].Order, skills[i].Order)
	}

	// каждый навык каталога представлен нулевой записью
	for _, skill := range skills {
		def, ok := svc.Catalog.Get(skill.SkillID)
		require.True(t, ok, skill.SkillID)
		assert.Equal(t, def.Name, skill.Name)
		assert.Equal(t, 0, skill.Level)
		assert.Equal(t, 0, skill.Progress)
		assert.Nil(t, skill.LastPracticed)
	}

	// повторный вызов не инициализирует заново
	writes := store.Writes()
	_, err = svc.GetAll(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, writes, store.Writes())
}

func TestGetUnknownSkill(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSkillFixture()
	require.NoError(t, svc.Initialize(ctx, "u1"))

	_, err := svc.Get(ctx, "u1", "no-such-skill")
	assert.ErrorIs(t, err, util.ErrSkillNotFound)
}

func TestUpdateFromPracticeAccumulates(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSkillFixture()
	require.NoError(t, svc.Initialize(ctx, "u1"))

	result, err := svc.UpdateFromPractice(ctx, "u1", "vowels-checked", 9, 10)
	require.NoError(t, err)
	assert.Equal(t, 90, result.Progress)
	assert.Equal(t, 1, result.PracticeCount)
	assert.Equal(t, 1, result.Level)

	result, err = svc.UpdateFromPractice(ctx, "u1", "vowels-checked", 7, 10)
	require.NoError(t, err)
	// 16 из 20
	assert.Equal(t, 80, result.Progress)
	assert.Equal(t, 2, result.PracticeCount)

	skill, err := svc.Get(ctx, "u1", "vowels-checked")
	require.NoError(t, err)
	assert.Equal(t, 16, skill.CorrectAnswers)
	assert.Equal(t, 20, skill.TotalAnswers)
	assert.NotNil(t, skill.LastPracticed)
}

func TestUpdateFromPracticeReachesMastery(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSkillFixture()
	require.NoError(t, svc.Initialize(ctx, "u1"))

	var last int
	for i := 0; i < 10; i++ {
		result, err := svc.UpdateFromPractice(ctx, "u1", "vowels-checked", 9, 10)
		require.NoError(t, err)
		last = result.Level
	}
	assert.Equal(t, 5, last)
}

func TestUpdateFromPracticeValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSkillFixture()
	require.NoError(t, svc.Initialize(ctx, "u1"))

	_, err := svc.UpdateFromPractice(ctx, "u1", "vowels-checked", -1, 10)
	assert.ErrorIs(t, err, util.ErrInvalidPractice)

	_, err = svc.UpdateFromPractice(ctx, "u1", "vowels-checked", 5, 3)
	assert.ErrorIs(t, err, util.ErrInvalidPractice)

	// нулевая суммарная выборка
	_, err = svc.UpdateFromPractice(ctx, "u1", "vowels-checked", 0, 0)
	assert.ErrorIs(t, err, util.ErrInvalidPractice)

	_, err = svc.UpdateFromPractice(ctx, "u1", "no-such-skill", 5, 10)
	assert.ErrorIs(t, err, util.ErrSkillNotFound)
}

func TestUpdateDirect(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSkillFixture()
	require.NoError(t, svc.Initialize(ctx, "u1"))

	// practiceCount не менялся, лестница считает его за единицу
	result, err := svc.UpdateDirect(ctx, "u1", "vowels-checked", 95, 19, 20)
	require.NoError(t, err)
	assert.Equal(t, 95, result.Progress)
	assert.Equal(t, 1, result.Level)

	skill, err := svc.Get(ctx, "u1", "vowels-checked")
	require.NoError(t, err)
	assert.Equal(t, 0, skill.PracticeCount)
	assert.Equal(t, 19, skill.CorrectAnswers)
	assert.Equal(t, 20, skill.TotalAnswers)

	_, err = svc.UpdateDirect(ctx, "u1", "vowels-checked", 101, 0, 0)
	assert.ErrorIs(t, err, util.ErrInvalidPractice)
}

func TestNeedingPractice(t *testing.T) {
	ctx := context.Background()
	svc, store := newSkillFixture()

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	store.Now = func() time.Time { return base }
	require.NoError(t, svc.Initialize(ctx, "u1"))

	// давняя практика до второго уровня
	store.Now = func() time.Time { return base }
	for i := 0; i < 3; i++ {
		_, err := svc.UpdateFromPractice(ctx, "u1", "vowels-checked", 6, 10)
		require.NoError(t, err)
	}

	// свежая практика до второго уровня
	store.Now = func() time.Time { return base.AddDate(0, 0, 9) }
	for i := 0; i < 3; i++ {
		_, err := svc.UpdateFromPractice(ctx, "u1", "vowels-unchecked", 6, 10)
		require.NoError(t, err)
	}

	// мастер с давней практикой — не попадает в выдачу
	store.Now = func() time.Time { return base }
	for i := 0; i < 10; i++ {
		_, err := svc.UpdateFromPractice(ctx, "u1", "vowels-alternating", 10, 10)
		require.NoError(t, err)
	}

	// изученный навык, у которого практика не записана
	require.NoError(t, store.Update(ctx, "users/u1/skills/consonants-checked", map[string]interface{}{
		"level":         2,
		"lastPracticed": nil,
	}))

	svc.now = func() time.Time { return base.AddDate(0, 0, 10) }
	needing, err := svc.NeedingPractice(ctx, "u1", 7)
	require.NoError(t, err)

	require.Len(t, needing, 2)
	// никогда не практиковавшийся идёт первым
	assert.Equal(t, "consonants-checked", needing[0].SkillID)
	assert.Equal(t, "vowels-checked", needing[1].SkillID)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSkillFixture()
	require.NoError(t, svc.Initialize(ctx, "u1"))

	_, err := svc.UpdateFromPractice(ctx, "u1", "vowels-checked", 9, 10)
	require.NoError(t, err)

	require.NoError(t, svc.Reset(ctx, "u1", "vowels-checked"))

	skill, err := svc.Get(ctx, "u1", "vowels-checked")
	require.NoError(t, err)
	assert.Equal(t, 0, skill.Level)
	assert.Equal(t, 0, skill.Progress)
	assert.Equal(t, 0, skill.PracticeCount)
	assert.Equal(t, 0, skill.CorrectAnswers)
	assert.Equal(t, 0, skill.TotalAnswers)
	assert.Nil(t, skill.LastPracticed)

	assert.ErrorIs(t, svc.Reset(ctx, "u1", "no-such-skill"), util.ErrSkillNotFound)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSkillFixture()
	require.NoError(t, svc.Initialize(ctx, "u1"))

	for i := 0; i < 10; i++ {
		_, err := svc.UpdateFromPractice(ctx, "u1", "vowels-checked", 10, 10)
		require.NoError(t, err)
	}
	_, err := svc.UpdateFromPractice(ctx, "u1", "comma-placement", 5, 10)
	require.NoError(t, err)

	stats, err := svc.Stats(ctx, "u1")
	require.NoError(t, err)

	assert.Equal(t, 31, stats.Total)
	assert.Equal(t, 1, stats.MasterSkills)
	assert.Equal(t, 1, stats.InProgress)
	assert.Equal(t, 29, stats.ByLevel[0])
	assert.Equal(t, 1, stats.ByLevel[1])
	assert.Equal(t, 1, stats.ByLevel[5])
	assert.Equal(t, 15, stats.ByCategory[string(catalog.Orthography)])
	assert.Equal(t, 16, stats.ByCategory[string(catalog.Punctuation)])
}

func TestGetByCategory(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSkillFixture()

	orthography, err := svc.GetByCategory(ctx, "u1", catalog.Orthography)
	require.NoError(t, err)
	assert.Len(t, orthography, 15)

	punctuation, err := svc.GetByCategory(ctx, "u1", catalog.Punctuation)
	require.NoError(t, err)
	assert.Len(t, punctuation, 16)
}
