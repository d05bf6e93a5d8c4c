package service

import (
	"hospital-management-backend/internal/models"
	"hospital-management-backend/internal/repository"
)

type AuditService struct {
	auditRepo repository.AuditRepository
}

func NewAuditService(auditRepo repository.AuditRepository) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

// GetAuditLogs returns the privileged-action trail, newest first (owner only).
func (s *AuditService) GetAuditLogs(caller *Caller) ([]models.AuditLog, error) {
	if err := RequireRole(caller, models.RoleOwner); err != nil {
		return nil, err
	}
	return s.auditRepo.GetAllAuditLogs()
}
