package handler

import (
	"net/http"

	"hospital-management-backend/internal/service"
	"hospital-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type HospitalHandler struct {
	hospitalService *service.HospitalService
	accessService   *service.AccessService
}

func NewHospitalHandler(hospitalService *service.HospitalService, accessService *service.AccessService) *HospitalHandler {
	return &HospitalHandler{
		hospitalService: hospitalService,
		accessService:   accessService,
	}
}

// GetAllHospitals retrieves every hospital. The route is public so the
// registration form can offer hospital choices before a profile exists.
func (h *HospitalHandler) GetAllHospitals(c *gin.Context) {
	hospitals, err := h.hospitalService.GetAllHospitals()
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"hospitals": hospitals,
		"count":     len(hospitals),
	})
}

// GetHospital retrieves a specific hospital by ID
func (h *HospitalHandler) GetHospital(c *gin.Context) {
	hospital, err := h.hospitalService.GetHospitalByID(c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, hospital)
}

// CreateHospital creates a new hospital (owner only)
func (h *HospitalHandler) CreateHospital(c *gin.Context) {
	caller, ok := resolveCaller(c, h.accessService)
	if !ok {
		return
	}

	var req service.HospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	hospital, err := h.hospitalService.CreateHospital(caller, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  "Hospital created successfully",
		"hospital": hospital,
	})
}

// UpdateHospital updates an existing hospital (owner only)
func (h *HospitalHandler) UpdateHospital(c *gin.Context) {
	caller, ok := resolveCaller(c, h.accessService)
	if !ok {
		return
	}

	var req service.HospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	hospital, err := h.hospitalService.UpdateHospital(caller, c.Param("id"), &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  "Hospital updated successfully",
		"hospital": hospital,
	})
}
