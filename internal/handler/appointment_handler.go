package handler

import (
	"net/http"

	"hospital-management-backend/internal/service"
	"hospital-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	appointmentService *service.AppointmentService
	accessService      *service.AccessService
}

func NewAppointmentHandler(appointmentService *service.AppointmentService, accessService *service.AccessService) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentService: appointmentService,
		accessService:      accessService,
	}
}

// CreateAppointment books a pending appointment (patient only)
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	caller, ok := resolveCaller(c, h.accessService)
	if !ok {
		return
	}

	var req service.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	appointment, err := h.appointmentService.CreateAppointment(caller, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":     "Appointment requested successfully",
		"appointment": appointment,
	})
}

// GetAllAppointments returns every appointment (owner and admin only)
func (h *AppointmentHandler) GetAllAppointments(c *gin.Context) {
	caller, ok := resolveCaller(c, h.accessService)
	if !ok {
		return
	}

	appointments, err := h.appointmentService.GetAllAppointments(caller)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"appointments": appointments,
		"count":        len(appointments),
	})
}

// GetAppointment returns one appointment by id
func (h *AppointmentHandler) GetAppointment(c *gin.Context) {
	caller, ok := resolveCaller(c, h.accessService)
	if !ok {
		return
	}

	appointment, err := h.appointmentService.GetAppointmentByID(caller, c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, appointment)
}

// GetUpcomingCallerAppointments lists the caller's future appointments
func (h *AppointmentHandler) GetUpcomingCallerAppointments(c *gin.Context) {
	caller, ok := resolveCaller(c, h.accessService)
	if !ok {
		return
	}

	appointments, err := h.appointmentService.GetUpcomingCallerAppointments(caller)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"appointments": appointments,
		"count":        len(appointments),
	})
}

// GetPastCallerAppointments lists the caller's past appointments
func (h *AppointmentHandler) GetPastCallerAppointments(c *gin.Context) {
	caller, ok := resolveCaller(c, h.accessService)
	if !ok {
		return
	}

	appointments, err := h.appointmentService.GetPastCallerAppointments(caller)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"appointments": appointments,
		"count":        len(appointments),
	})
}

// GetUpcomingDoctorAppointments lists a doctor's future appointments
func (h *AppointmentHandler) GetUpcomingDoctorAppointments(c *gin.Context) {
	caller, ok := resolveCaller(c, h.accessService)
	if !ok {
		return
	}

	appointments, err := h.appointmentService.GetUpcomingDoctorAppointments(caller, c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"appointments": appointments,
		"count":        len(appointments),
	})
}

// DeleteAppointment withdraws a pending appointment (the booking patient only)
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	caller, ok := resolveCaller(c, h.accessService)
	if !ok {
		return
	}

	if err := h.appointmentService.DeleteAppointment(caller, c.Param("id")); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.MessageResponse(c, "Appointment cancelled successfully")
}

// ReviewAppointmentRequest is the doctor's decision on a pending appointment.
type ReviewAppointmentRequest struct {
	Confirm *bool `json:"confirm" binding:"required"`
}

// ReviewAppointment confirms or rejects a pending appointment (target doctor only)
func (h *AppointmentHandler) ReviewAppointment(c *gin.Context) {
	caller, ok := resolveCaller(c, h.accessService)
	if !ok {
		return
	}

	var req ReviewAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	appointment, err := h.appointmentService.ReviewAppointment(caller, c.Param("id"), *req.Confirm)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	if appointment == nil {
		utils.MessageResponse(c, "Appointment rejected")
		return
	}
	utils.SuccessResponse(c, gin.H{
		"message":     "Appointment confirmed",
		"appointment": appointment,
	})
}
