package model

import "time"

// ExerciseResult — одна запись на пару (пользователь, упражнение).
// Attempts растёт с каждым сохранением, AttemptHistory только
// дописывается.
type ExerciseResult struct {
	ExerciseID     string          `json:"exerciseId"`
	Score          int             `json:"score"`
	Attempts       int             `json:"attempts"`
	Completed      bool            `json:"completed"`
	LastAttempt    *time.Time      `json:"lastAttempt"`
	Answers        []string        `json:"answers"`
	Mistakes       []string        `json:"mistakes"`
	TaskResults    []TaskResult    `json:"taskResults"`
	AttemptHistory []AttemptRecord `json:"attemptHistory,omitempty"`
}

// TaskResult — результат отдельного задания внутри упражнения.
type TaskResult struct {
	TaskID  string `json:"taskId"`
	Correct int    `json:"correct"`
	Total   int    `json:"total"`
}

// AttemptRecord — элемент истории попыток.
type AttemptRecord struct {
	Score     int       `json:"score"`
	Timestamp time.Time `json:"timestamp"`
	Mistakes  []string  `json:"mistakes"`
}

// MistakeCount — строка таблицы частот ошибок.
type MistakeCount struct {
	Mistake string `json:"mistake"`
	Count   int    `json:"count"`
}

// ExerciseStats — свёртка по всем результатам пользователя.
type ExerciseStats struct {
	Completed     int            `json:"completed"`
	Total         int            `json:"total"`
	Percentage    int            `json:"percentage"`
	AverageScore  int            `json:"averageScore"`
	TotalAttempts int            `json:"totalAttempts"`
	TopMistakes   []MistakeCount `json:"topMistakes"`
}
