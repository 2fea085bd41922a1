package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/SilverKain/Orthography/internal/docstore"
	"github.com/SilverKain/Orthography/internal/model"
	"github.com/SilverKain/Orthography/internal/repository"
	"github.com/SilverKain/Orthography/internal/util"
	"github.com/xuri/excelize/v2"
)

// Word — словарная запись вместе с её документным идентификатором
// (нормализованной формой слова).
type Word struct {
	ID string `json:"id"`
	model.DictionaryEntry
}

// DictionaryService — личный словарь пользователя. Идентификатор
// записи выводится из самого слова, поэтому «Орфография» и
// «орфография » — одна и та же запись.
type DictionaryService struct {
	Repo *repository.DictionaryRepository
}

func NewDictionaryService(repo *repository.DictionaryRepository) *DictionaryService {
	return &DictionaryService{Repo: repo}
}

func (s *DictionaryService) AddWord(ctx context.Context, uid, word, definition, example string) (*Word, error) {
	wordID := model.NormalizeWord(word)
	if wordID == "" {
		return nil, util.ErrWordNotFound
	}

	entry := model.DictionaryEntry{
		Word:       word,
		Definition: definition,
		Example:    example,
	}
	if err := s.Repo.Save(ctx, uid, wordID, entry); err != nil {
		return nil, err
	}

	saved, err := s.Repo.Get(ctx, uid, wordID)
	if err != nil {
		return nil, err
	}
	return &Word{ID: wordID, DictionaryEntry: *saved}, nil
}

// GetAllWords — весь словарь, новые слова первыми.
func (s *DictionaryService) GetAllWords(ctx context.Context, uid string) ([]Word, error) {
	entries, err := s.Repo.List(ctx, uid)
	if err != nil {
		return nil, err
	}

	words := make([]Word, 0, len(entries))
	for id, entry := range entries {
		words = append(words, Word{ID: id, DictionaryEntry: entry})
	}
	sort.SliceStable(words, func(i, j int) bool {
		a, b := words[i].AddedAt, words[j].AddedAt
		switch {
		case b == nil:
			return a != nil
		case a == nil:
			return false
		default:
			return a.After(*b)
		}
	})
	return words, nil
}

// Search ищет подстроку без учёта регистра в слове, определении и
// примере.
func (s *DictionaryService) Search(ctx context.Context, uid, query string) ([]Word, error) {
	words, err := s.GetAllWords(ctx, uid)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	matched := make([]Word, 0, len(words))
	for _, w := range words {
		if strings.Contains(strings.ToLower(w.Word), q) ||
			strings.Contains(strings.ToLower(w.Definition), q) ||
			strings.Contains(strings.ToLower(w.Example), q) {
			matched = append(matched, w)
		}
	}
	return matched, nil
}

func (s *DictionaryService) MarkMastered(ctx context.Context, uid, wordID string, mastered bool) error {
	err := s.Repo.SetMastered(ctx, uid, wordID, mastered)
	if errors.Is(err, docstore.ErrNotFound) {
		return util.ErrWordNotFound
	}
	return err
}

func (s *DictionaryService) UnmasteredWords(ctx context.Context, uid string) ([]Word, error) {
	words, err := s.GetAllWords(ctx, uid)
	if err != nil {
		return nil, err
	}
	unmastered := make([]Word, 0, len(words))
	for _, w := range words {
		if !w.Mastered {
			unmastered = append(unmastered, w)
		}
	}
	return unmastered, nil
}

func (s *DictionaryService) DeleteWord(ctx context.Context, uid, wordID string) error {
	return s.Repo.Delete(ctx, uid, wordID)
}

func (s *DictionaryService) UpdateWord(ctx context.Context, uid, wordID string, definition, example string) error {
	updates := map[string]interface{}{
		"definition": definition,
		"example":    example,
	}
	err := s.Repo.Update(ctx, uid, wordID, updates)
	if errors.Is(err, docstore.ErrNotFound) {
		return util.ErrWordNotFound
	}
	return err
}

func (s *DictionaryService) DictionaryStats(ctx context.Context, uid string) (*model.DictionaryStats, error) {
	words, err := s.GetAllWords(ctx, uid)
	if err != nil {
		return nil, err
	}

	stats := &model.DictionaryStats{Total: len(words)}
	for _, w := range words {
		if w.Mastered {
			stats.Mastered++
		}
	}
	stats.Unmastered = stats.Total - stats.Mastered
	if stats.Total > 0 {
		stats.Percentage = int(math.Round(float64(stats.Mastered) / float64(stats.Total) * 100))
	}
	return stats, nil
}

// ExportXLSX выгружает словарь в таблицу для офлайн-повторения.
func (s *DictionaryService) ExportXLSX(ctx context.Context, uid string) (*bytes.Buffer, error) {
	words, err := s.GetAllWords(ctx, uid)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Словарь"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Слово", "Определение", "Пример", "Изучено", "Добавлено"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, w := range words {
		mastered := "нет"
		if w.Mastered {
			mastered = "да"
		}
		added := ""
		if w.AddedAt != nil {
			added = w.AddedAt.Format("02.01.2006")
		}
		values := []interface{}{w.Word, w.Definition, w.Example, mastered, added}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write dictionary workbook: %w", err)
	}
	return buf, nil
}
