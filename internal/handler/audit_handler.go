package handler

import (
	"hospital-management-backend/internal/service"
	"hospital-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService  *service.AuditService
	accessService *service.AccessService
}

func NewAuditHandler(auditService *service.AuditService, accessService *service.AccessService) *AuditHandler {
	return &AuditHandler{
		auditService:  auditService,
		accessService: accessService,
	}
}

// GetAuditLogs returns the privileged-action trail (owner only)
func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	caller, ok := resolveCaller(c, h.accessService)
	if !ok {
		return
	}

	logs, err := h.auditService.GetAuditLogs(caller)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"logs":  logs,
		"count": len(logs),
	})
}
