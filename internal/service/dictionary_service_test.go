package service

import (
	"context"
	"testing"
	"time"

	"github.com/SilverKain/Orthography/internal/docstore"
	"github.com/SilverKain/Orthography/internal/repository"
	"github.com/SilverKain/Orthography/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDictionaryFixture() (*DictionaryService, *docstore.MemStore) {
	store := docstore.NewMemStore()
	svc := NewDictionaryService(repository.NewDictionaryRepository(store))
	return svc, store
}

func TestAddWordNormalizesID(t *testing.T) {
	ctx := context.Background()
	svc, _ := newDictionaryFixture()

	first, err := svc.AddWord(ctx, "u1", "Орфография", "раздел языкознания", "")
	require.NoError(t, err)
	assert.Equal(t, "орфография", first.ID)

	// то же слово с другим регистром и хвостовым пробелом — та же
	// запись, последняя версия побеждает
	second, err := svc.AddWord(ctx, "u1", "орфография ", "новое определение", "пример")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "новое определение", second.Definition)

	words, err := svc.GetAllWords(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, words, 1)
	assert.Equal(t, "орфография ", words[0].Word)
}

func TestAddWordMultiWordPhrase(t *testing.T) {
	ctx := context.Background()
	svc, _ := newDictionaryFixture()

	word, err := svc.AddWord(ctx, "u1", "Вводные  слова", "", "")
	require.NoError(t, err)
	assert.Equal(t, "вводные-слова", word.ID)
}

func TestAddWordEmpty(t *testing.T) {
	ctx := context.Background()
	svc, _ := newDictionaryFixture()

	_, err := svc.AddWord(ctx, "u1", "   ", "", "")
	assert.ErrorIs(t, err, util.ErrWordNotFound)
}

func TestGetAllWordsNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc, store := newDictionaryFixture()

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i, w := range []string{"первое", "второе", "третье"} {
		day := i
		store.Now = func() time.Time { return base.AddDate(0, 0, day) }
		_, err := svc.AddWord(ctx, "u1", w, "", "")
		require.NoError(t, err)
	}

	words, err := svc.GetAllWords(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, words, 3)
	assert.Equal(t, "третье", words[0].Word)
	assert.Equal(t, "второе", words[1].Word)
	assert.Equal(t, "первое", words[2].Word)
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	svc, _ := newDictionaryFixture()

	_, err := svc.AddWord(ctx, "u1", "деепричастие", "особая форма глагола", "читая книгу")
	require.NoError(t, err)
	_, err = svc.AddWord(ctx, "u1", "наречие", "неизменяемая часть речи", "")
	require.NoError(t, err)

	// поиск без учёта регистра по слову
	found, err := svc.Search(ctx, "u1", "ДЕЕПРИЧ")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "деепричастие", found[0].Word)

	// поиск по определению
	found, err = svc.Search(ctx, "u1", "часть речи")
	require.NoError(t, err)
	require.Len(t, found, 1)

	// поиск по примеру
	found, err = svc.Search(ctx, "u1", "книгу")
	require.NoError(t, err)
	require.Len(t, found, 1)

	found, err = svc.Search(ctx, "u1", "ничего")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestMarkMastered(t *testing.T) {
	ctx := context.Background()
	svc, _ := newDictionaryFixture()

	word, err := svc.AddWord(ctx, "u1", "причастие", "", "")
	require.NoError(t, err)

	require.NoError(t, svc.MarkMastered(ctx, "u1", word.ID, true))

	words, err := svc.GetAllWords(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, words, 1)
	assert.True(t, words[0].Mastered)
	assert.NotNil(t, words[0].MasteredAt)

	require.NoError(t, svc.MarkMastered(ctx, "u1", word.ID, false))
	words, err = svc.GetAllWords(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, words[0].Mastered)

	assert.ErrorIs(t, svc.MarkMastered(ctx, "u1", "нет-такого", true), util.ErrWordNotFound)
}

func TestUnmasteredWords(t *testing.T) {
	ctx := context.Background()
	svc, _ := newDictionaryFixture()

	a, err := svc.AddWord(ctx, "u1", "первое", "", "")
	require.NoError(t, err)
	_, err = svc.AddWord(ctx, "u1", "второе", "", "")
	require.NoError(t, err)

	require.NoError(t, svc.MarkMastered(ctx, "u1", a.ID, true))

	unmastered, err := svc.UnmasteredWords(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, unmastered, 1)
	assert.Equal(t, "второе", unmastered[0].Word)
}

func TestUpdateWord(t *testing.T) {
	ctx := context.Background()
	svc, _ := newDictionaryFixture()

	word, err := svc.AddWord(ctx, "u1", "слово", "старое", "")
	require.NoError(t, err)

	require.NoError(t, svc.UpdateWord(ctx, "u1", word.ID, "новое", "новый пример"))

	words, err := svc.GetAllWords(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "новое", words[0].Definition)
	assert.Equal(t, "новый пример", words[0].Example)

	assert.ErrorIs(t, svc.UpdateWord(ctx, "u1", "нет-такого", "", ""), util.ErrWordNotFound)
}

func TestDeleteWord(t *testing.T) {
	ctx := context.Background()
	svc, _ := newDictionaryFixture()

	word, err := svc.AddWord(ctx, "u1", "слово", "", "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteWord(ctx, "u1", word.ID))

	words, err := svc.GetAllWords(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, words)
}

func TestDictionaryStats(t *testing.T) {
	ctx := context.Background()
	svc, _ := newDictionaryFixture()

	// пустой словарь — нули без деления на ноль
	stats, err := svc.DictionaryStats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0, stats.Percentage)

	a, err := svc.AddWord(ctx, "u1", "первое", "", "")
	require.NoError(t, err)
	_, err = svc.AddWord(ctx, "u1", "второе", "", "")
	require.NoError(t, err)
	_, err = svc.AddWord(ctx, "u1", "третье", "", "")
	require.NoError(t, err)
	require.NoError(t, svc.MarkMastered(ctx, "u1", a.ID, true))

	stats, err = svc.DictionaryStats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Mastered)
	assert.Equal(t, 2, stats.Unmastered)
	assert.Equal(t, 33, stats.Percentage)
}

func TestExportXLSX(t *testing.T) {
	ctx := context.Background()
	svc, _ := newDictionaryFixture()

	_, err := svc.AddWord(ctx, "u1", "орфография", "раздел языкознания", "урок орфографии")
	require.NoError(t, err)

	buf, err := svc.ExportXLSX(ctx, "u1")
	require.NoError(t, err)
	assert.Greater(t, buf.Len(), 0)
}
