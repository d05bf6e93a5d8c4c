package repository

import (
	"hospital-management-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditRepository records privileged actions. Writes are best-effort: callers
// ignore the returned error so auditing never fails an operation.
type AuditRepository interface {
	CreateAuditLog(actorID *string, action, details string) error
	GetAllAuditLogs() ([]models.AuditLog, error)
}

type auditRepo struct {
	db *gorm.DB
}

// NewAuditRepo returns a MySQL-backed audit repository.
func NewAuditRepo(db *gorm.DB) AuditRepository {
	return &auditRepo{db: db}
}

func (r *auditRepo) CreateAuditLog(actorID *string, action, details string) error {
	log := models.AuditLog{
		ID:      uuid.New().String(),
		ActorID: actorID,
		Action:  action,
		Details: details,
	}
	return r.db.Create(&log).Error
}

func (r *auditRepo) GetAllAuditLogs() ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := r.db.Order("created_at DESC").Find(&logs).Error
	return logs, err
}
