package util

import "errors"

var (
	ErrSkillNotFound        = errors.New("Навык не найден")
	ErrSkillsNotInitialized = errors.New("Навыки не инициализированы")
	ErrUserNotFound         = errors.New("Пользователь не найден")
	ErrNotAuthenticated     = errors.New("Пользователь не авторизован")
	ErrInvalidPractice      = errors.New("Некорректные значения практики")
	ErrWordNotFound         = errors.New("Слово не найдено в словаре")
)
