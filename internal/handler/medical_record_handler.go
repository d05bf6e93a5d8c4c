package handler

import (
	"net/http"

	"hospital-management-backend/internal/service"
	"hospital-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type MedicalRecordHandler struct {
	medicalRecordService *service.MedicalRecordService
	accessService        *service.AccessService
}

func NewMedicalRecordHandler(medicalRecordService *service.MedicalRecordService, accessService *service.AccessService) *MedicalRecordHandler {
	return &MedicalRecordHandler{
		medicalRecordService: medicalRecordService,
		accessService:        accessService,
	}
}

// GetAllMedicalRecords returns every record (owner and admin only)
func (h *MedicalRecordHandler) GetAllMedicalRecords(c *gin.Context) {
	caller, ok := resolveCaller(c, h.accessService)
	if !ok {
		return
	}

	records, err := h.medicalRecordService.GetAllMedicalRecords(caller)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"records": records,
		"count":   len(records),
	})
}

// GetMedicalRecord returns one record by id
func (h *MedicalRecordHandler) GetMedicalRecord(c *gin.Context) {
	caller, ok := resolveCaller(c, h.accessService)
	if !ok {
		return
	}

	record, err := h.medicalRecordService.GetMedicalRecordByID(caller, c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, record)
}

// GetCallerMedicalRecords lists the caller's own records (patients only)
func (h *MedicalRecordHandler) GetCallerMedicalRecords(c *gin.Context) {
	caller, ok := resolveCaller(c, h.accessService)
	if !ok {
		return
	}

	records, err := h.medicalRecordService.GetCallerMedicalRecords(caller)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"records": records,
		"count":   len(records),
	})
}

// GetPatientMedicalRecords lists a patient's records (doctor and nurse only)
func (h *MedicalRecordHandler) GetPatientMedicalRecords(c *gin.Context) {
	caller, ok := resolveCaller(c, h.accessService)
	if !ok {
		return
	}

	records, err := h.medicalRecordService.GetPatientMedicalRecords(caller, c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"records": records,
		"count":   len(records),
	})
}

// GetUncompletedByDoctor lists records still waiting on the doctor's notes
func (h *MedicalRecordHandler) GetUncompletedByDoctor(c *gin.Context) {
	caller, ok := resolveCaller(c, h.accessService)
	if !ok {
		return
	}

	records, err := h.medicalRecordService.GetUncompletedMedicalRecordsByDoctor(caller)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"records": records,
		"count":   len(records),
	})
}

// GetUncompletedByNurse lists records still waiting on vital signs
func (h *MedicalRecordHandler) GetUncompletedByNurse(c *gin.Context) {
	caller, ok := resolveCaller(c, h.accessService)
	if !ok {
		return
	}

	records, err := h.medicalRecordService.GetUncompletedMedicalRecordsByNurse(caller)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"records": records,
		"count":   len(records),
	})
}

// UpdateMedicalRecord commits the caller-role subset of the record payload
func (h *MedicalRecordHandler) UpdateMedicalRecord(c *gin.Context) {
	caller, ok := resolveCaller(c, h.accessService)
	if !ok {
		return
	}

	var req service.UpdateMedicalRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	record, err := h.medicalRecordService.UpdatePatientMedicalRecord(caller, c.Param("id"), &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Medical record updated successfully",
		"record":  record,
	})
}
