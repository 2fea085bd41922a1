package model

import (
	"strings"
	"time"
)

// DictionaryEntry — слово личного словаря. Идентификатор документа —
// нормализованная форма слова, поэтому записи, отличающиеся только
// регистром или пробелами, схлопываются в одну (последняя запись
// побеждает).
type DictionaryEntry struct {
	Word       string     `json:"word"`
	Definition string     `json:"definition"`
	Example    string     `json:"example"`
	Mastered   bool       `json:"mastered"`
	AddedAt    *time.Time `json:"addedAt"`
	MasteredAt *time.Time `json:"masteredAt,omitempty"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

// DictionaryStats — свёртка словаря.
type DictionaryStats struct {
	Total      int `json:"total"`
	Mastered   int `json:"mastered"`
	Unmastered int `json:"unmastered"`
	Percentage int `json:"percentage"`
}

// NormalizeWord приводит слово к ключевой форме: нижний регистр,
// пробельные серии заменяются одним дефисом.
func NormalizeWord(word string) string {
	return strings.Join(strings.Fields(strings.ToLower(word)), "-")
}
