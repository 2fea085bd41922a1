package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	UUIDBase
	DisplayName string    `gorm:"size:100" json:"displayName"`
	Email       string    `gorm:"size:100;unique;not null" json:"email"`
	Password    string    `gorm:"size:100" json:"-"`
	Role        UserRole  `gorm:"type:enum('student','admin');default:'student'" json:"role"`
	PhotoURL    string    `gorm:"size:255" json:"photoURL"`
	GoogleID    string    `gorm:"size:100;index" json:"-"`
	Disabled    bool      `gorm:"default:false" json:"disabled"`
	LastLogin   time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen    time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}

// UserInfo — публичное представление аккаунта, которое получают клиенты
// при входе и в событиях смены состояния аутентификации.
type UserInfo struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL,omitempty"`
}

func (u *User) Info() UserInfo {
	return UserInfo{
		UID:         u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		PhotoURL:    u.PhotoURL,
	}
}
