package repository

import (
	"errors"

	"hospital-management-backend/internal/models"
	"hospital-management-backend/pkg/apperr"

	"gorm.io/gorm"
)

// UserRepository is the storage contract for users. Users are keyed by the
// caller principal, so Get doubles as the registration lookup.
type UserRepository interface {
	Get(id string) (*models.User, error)
	Exists(id string) (bool, error)
	Put(user *models.User) error
	Delete(id string) error
	Scan() ([]models.User, error)
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepo returns a MySQL-backed user repository.
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Get(id string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Exists(id string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *userRepo) Put(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *userRepo) Delete(id string) error {
	return r.db.Delete(&models.User{}, "id = ?", id).Error
}

func (r *userRepo) Scan() ([]models.User, error) {
	var users []models.User
	err := r.db.Find(&users).Error
	return users, err
}
