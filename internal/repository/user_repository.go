package repository

import (
	"time"

	"github.com/SilverKain/Orthography/internal/model"
	"gorm.io/gorm"
)

// UserRepository — единственный репозиторий поверх реляционной части:
// аккаунты живут в обычной таблице, а не в документном хранилище.
type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(id string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByGoogleID(googleID string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("google_id = ?", googleID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) UpdateLastSeen(userID string) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_seen", time.Now()).Error
}

// RecentlySeen отдаёт пользователей, заходивших после since; по ним
// фоновая задача считает заброшенные навыки.
func (r *UserRepository) RecentlySeen(since time.Time) ([]model.User, error) {
	var users []model.User
	err := r.DB.Where("last_seen >= ? AND disabled = ?", since, false).
		Find(&users).Error
	return users, err
}
