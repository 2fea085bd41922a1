package model

import "time"

// LessonProgress — одна запись на пару (пользователь, урок).
// TimeSpent в минутах, только растёт.
type LessonProgress struct {
	LessonID     string     `json:"lessonId"`
	Completed    bool       `json:"completed"`
	Score        int        `json:"score"`
	TimeSpent    int        `json:"timeSpent"`
	LastAccessed *time.Time `json:"lastAccessed"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

// ModuleStats — свёртка по набору уроков одного модуля.
type ModuleStats struct {
	Completed    int `json:"completed"`
	Total        int `json:"total"`
	Percentage   int `json:"percentage"`
	AverageScore int `json:"averageScore"`
	TotalTime    int `json:"totalTime"`
}

// UserStats — глобальные счётчики пользователя. Ведутся атомарными
// инкрементами независимо от детальных записей, поэтому могут
// расходиться с пересчитанными значениями.
type UserStats struct {
	LessonsCompleted   int        `json:"lessonsCompleted"`
	ExercisesCompleted int        `json:"exercisesCompleted"`
	TotalTimeSpent     int        `json:"totalTimeSpent"`
	AverageScore       int        `json:"averageScore"`
	UpdatedAt          *time.Time `json:"updatedAt,omitempty"`
}
