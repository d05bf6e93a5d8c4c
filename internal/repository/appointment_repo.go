package repository

import (
	"errors"

	"hospital-management-backend/internal/models"
	"hospital-management-backend/pkg/apperr"

	"gorm.io/gorm"
)

// AppointmentRepository is the storage contract for appointments.
type AppointmentRepository interface {
	Get(id string) (*models.Appointment, error)
	Exists(id string) (bool, error)
	Put(appointment *models.Appointment) error
	Delete(id string) error
	Scan() ([]models.Appointment, error)
}

type appointmentRepo struct {
	db *gorm.DB
}

// NewAppointmentRepo returns a MySQL-backed appointment repository.
func NewAppointmentRepo(db *gorm.DB) AppointmentRepository {
	return &appointmentRepo{db: db}
}

func (r *appointmentRepo) Get(id string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.db.First(&appointment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("appointment not found")
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepo) Exists(id string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Appointment{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *appointmentRepo) Put(appointment *models.Appointment) error {
	return r.db.Save(appointment).Error
}

func (r *appointmentRepo) Delete(id string) error {
	return r.db.Delete(&models.Appointment{}, "id = ?", id).Error
}

func (r *appointmentRepo) Scan() ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.Find(&appointments).Error
	return appointments, err
}
