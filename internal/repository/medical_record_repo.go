package repository

import (
	"errors"

	"hospital-management-backend/internal/models"
	"hospital-management-backend/pkg/apperr"

	"gorm.io/gorm"
)

// MedicalRecordRepository is the storage contract for medical records.
type MedicalRecordRepository interface {
	Get(id string) (*models.MedicalRecord, error)
	Exists(id string) (bool, error)
	Put(record *models.MedicalRecord) error
	Delete(id string) error
	Scan() ([]models.MedicalRecord, error)
}

type medicalRecordRepo struct {
	db *gorm.DB
}

// NewMedicalRecordRepo returns a MySQL-backed medical record repository.
func NewMedicalRecordRepo(db *gorm.DB) MedicalRecordRepository {
	return &medicalRecordRepo{db: db}
}

func (r *medicalRecordRepo) Get(id string) (*models.MedicalRecord, error) {
	var record models.MedicalRecord
	err := r.db.First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("medical record not found")
		}
		return nil, err
	}
	return &record, nil
}

func (r *medicalRecordRepo) Exists(id string) (bool, error) {
	var count int64
	err := r.db.Model(&models.MedicalRecord{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *medicalRecordRepo) Put(record *models.MedicalRecord) error {
	return r.db.Save(record).Error
}

func (r *medicalRecordRepo) Delete(id string) error {
	return r.db.Delete(&models.MedicalRecord{}, "id = ?", id).Error
}

func (r *medicalRecordRepo) Scan() ([]models.MedicalRecord, error) {
	var records []models.MedicalRecord
	err := r.db.Find(&records).Error
	return records, err
}
