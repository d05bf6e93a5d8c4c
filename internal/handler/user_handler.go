package handler

import (
	"net/http"

	"hospital-management-backend/internal/middleware"
	"hospital-management-backend/internal/models"
	"hospital-management-backend/internal/service"
	"hospital-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService   *service.UserService
	accessService *service.AccessService
}

func NewUserHandler(userService *service.UserService, accessService *service.AccessService) *UserHandler {
	return &UserHandler{
		userService:   userService,
		accessService: accessService,
	}
}

// IsRegistered reports whether the authenticated principal has a profile
func (h *UserHandler) IsRegistered(c *gin.Context) {
	registered, err := h.userService.IsRegistered(c.GetString(middleware.CallerKey))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"registered": registered})
}

// Register creates the caller's user profile
func (h *UserHandler) Register(c *gin.Context) {
	var req service.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.userService.Register(c.GetString(middleware.CallerKey), &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Registration successful",
		"user":    user,
	})
}

// GetProfile returns the caller's own profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	caller, ok := resolveCaller(c, h.accessService)
	if !ok {
		return
	}

	user, err := h.userService.GetProfile(caller)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, user)
}

// GetUser returns a user by id
func (h *UserHandler) GetUser(c *gin.Context) {
	caller, ok := resolveCaller(c, h.accessService)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(caller, c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, user)
}

// GetAllUsers returns every user (owner and admin only)
func (h *UserHandler) GetAllUsers(c *gin.Context) {
	caller, ok := resolveCaller(c, h.accessService)
	if !ok {
		return
	}

	users, err := h.userService.GetAllUsers(caller)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"users": users,
		"count": len(users),
	})
}

// GetUnverifiedUsers lists accounts awaiting review
func (h *UserHandler) GetUnverifiedUsers(c *gin.Context) {
	caller, ok := resolveCaller(c, h.accessService)
	if !ok {
		return
	}

	users, err := h.userService.GetUnverifiedUsers(caller)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"users": users,
		"count": len(users),
	})
}

// ReviewUserRequest is the approval decision for an unverified account.
type ReviewUserRequest struct {
	Approve *bool `json:"approve" binding:"required"`
}

// ReviewUser approves or rejects an unverified account
func (h *UserHandler) ReviewUser(c *gin.Context) {
	caller, ok := resolveCaller(c, h.accessService)
	if !ok {
		return
	}

	var req ReviewUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.userService.ReviewUser(caller, c.Param("id"), *req.Approve)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	if user == nil {
		utils.MessageResponse(c, "User rejected and removed")
		return
	}
	utils.SuccessResponse(c, gin.H{
		"message": "User approved",
		"user":    user,
	})
}

// UpdateSchedulesRequest is a doctor's full weekly schedule.
type UpdateSchedulesRequest struct {
	Schedules []models.Schedule `json:"schedules" binding:"required"`
}

// UpdateSchedules replaces the caller's weekly practice schedule (doctors only)
func (h *UserHandler) UpdateSchedules(c *gin.Context) {
	caller, ok := resolveCaller(c, h.accessService)
	if !ok {
		return
	}

	var req UpdateSchedulesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.userService.UpdateSchedules(caller, req.Schedules)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Schedules updated successfully",
		"user":    user,
	})
}

// GetSpecializations lists the specializations available at a hospital
func (h *UserHandler) GetSpecializations(c *gin.Context) {
	caller, ok := resolveCaller(c, h.accessService)
	if !ok {
		return
	}

	specializations, err := h.userService.GetSpecializationsByHospital(caller, c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"specializations": specializations})
}

// GetDoctors lists a hospital's verified doctors for one specialization
func (h *UserHandler) GetDoctors(c *gin.Context) {
	caller, ok := resolveCaller(c, h.accessService)
	if !ok {
		return
	}

	doctors, err := h.userService.GetDoctorsByHospitalAndSpecialization(caller, c.Param("id"), c.Query("specialization"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"doctors": doctors,
		"count":   len(doctors),
	})
}
