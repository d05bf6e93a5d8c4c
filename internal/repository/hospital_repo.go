package repository

import (
	"errors"

	"hospital-management-backend/internal/models"
	"hospital-management-backend/pkg/apperr"

	"gorm.io/gorm"
)

// HospitalRepository is the storage contract for hospitals: point lookup,
// existence check, upsert, delete and full scan over an independent key space.
type HospitalRepository interface {
	Get(id string) (*models.Hospital, error)
	Exists(id string) (bool, error)
	Put(hospital *models.Hospital) error
	Delete(id string) error
	Scan() ([]models.Hospital, error)
}

type hospitalRepo struct {
	db *gorm.DB
}

// NewHospitalRepo returns a MySQL-backed hospital repository.
func NewHospitalRepo(db *gorm.DB) HospitalRepository {
	return &hospitalRepo{db: db}
}

func (r *hospitalRepo) Get(id string) (*models.Hospital, error) {
	var hospital models.Hospital
	err := r.db.First(&hospital, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("hospital not found")
		}
		return nil, err
	}
	return &hospital, nil
}

func (r *hospitalRepo) Exists(id string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Hospital{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *hospitalRepo) Put(hospital *models.Hospital) error {
	return r.db.Save(hospital).Error
}

func (r *hospitalRepo) Delete(id string) error {
	return r.db.Delete(&models.Hospital{}, "id = ?", id).Error
}

func (r *hospitalRepo) Scan() ([]models.Hospital, error) {
	var hospitals []models.Hospital
	err := r.db.Find(&hospitals).Error
	return hospitals, err
}
