package service

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"hospital-management-backend/internal/models"
	"hospital-management-backend/internal/repository"
	"hospital-management-backend/pkg/apperr"

	"github.com/google/uuid"
)

// AppointmentService owns the booking workflow: patients create pending
// appointments, the target doctor reviews them once, and confirmation spawns
// the linked medical record. All mutating paths run under one mutex so the
// multi-step confirm sequence behaves as a single critical section.
type AppointmentService struct {
	mu sync.Mutex

	appointmentRepo   repository.AppointmentRepository
	userRepo          repository.UserRepository
	hospitalRepo      repository.HospitalRepository
	medicalRecordRepo repository.MedicalRecordRepository
	auditRepo         repository.AuditRepository
	availability      *AvailabilityService
}

func NewAppointmentService(
	appointmentRepo repository.AppointmentRepository,
	userRepo repository.UserRepository,
	hospitalRepo repository.HospitalRepository,
	medicalRecordRepo repository.MedicalRecordRepository,
	auditRepo repository.AuditRepository,
	availability *AvailabilityService,
) *AppointmentService {
	return &AppointmentService{
		appointmentRepo:   appointmentRepo,
		userRepo:          userRepo,
		hospitalRepo:      hospitalRepo,
		medicalRecordRepo: medicalRecordRepo,
		auditRepo:         auditRepo,
		availability:      availability,
	}
}

// CreateAppointmentRequest is the booking form submitted by a patient.
type CreateAppointmentRequest struct {
	HospitalID string `json:"hospitalId" binding:"required"`
	DoctorID   string `json:"doctorId" binding:"required"`
	StartTime  int64  `json:"startTime" binding:"required"`
	Complaint  string `json:"complaint"`
}

// CreateAppointment books a pending appointment (patient only). The doctor
// must be a verified doctor of the requested hospital, the start time must be
// in the future and the slot must be free.
func (s *AppointmentService) CreateAppointment(caller *Caller, req *CreateAppointmentRequest) (*models.Appointment, error) {
	if err := RequireRole(caller, models.RolePatient); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.hospitalRepo.Get(req.HospitalID); err != nil {
		return nil, err
	}

	doctor, err := s.userRepo.Get(req.DoctorID)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, apperr.NotFound("doctor not found")
		}
		return nil, err
	}
	if doctor.Role != models.RoleDoctor || !doctor.IsVerified {
		return nil, apperr.BadRequest("appointments can only be made with a verified doctor")
	}
	if doctor.HospitalID == nil || *doctor.HospitalID != req.HospitalID {
		return nil, apperr.BadRequest("doctor does not practice at this hospital")
	}

	now := time.Now().UnixNano()
	if req.StartTime <= now {
		return nil, apperr.BadRequest("appointment must be scheduled in the future")
	}

	available, err := s.availability.IsDoctorAvailable(doctor.ID, req.StartTime)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, apperr.BadRequest("doctor is not available at the requested time")
	}

	specialization := ""
	if doctor.Specialization != nil {
		specialization = *doctor.Specialization
	}

	appointment := &models.Appointment{
		ID:             uuid.New().String(),
		HospitalID:     req.HospitalID,
		PatientID:      caller.ID,
		DoctorID:       doctor.ID,
		Specialization: specialization,
		StartTime:      req.StartTime,
		EndTime:        req.StartTime + s.availability.SlotDuration().Nanoseconds(),
		Complaint:      req.Complaint,
		IsConfirmed:    false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.appointmentRepo.Put(appointment); err != nil {
		return nil, err
	}

	_ = s.auditRepo.CreateAuditLog(&caller.ID, "appointment_create", fmt.Sprintf("Booked appointment %s with doctor %s", appointment.ID, doctor.ID))

	return appointment, nil
}

// ReviewAppointment confirms or rejects a pending appointment (the target
// doctor only, and only while the appointment has not started).
//
// Confirmation marks the booking confirmed, creates the linked empty medical
// record, and discards every other still-pending booking for the same doctor
// at the same exact start time: the first confirmation wins the race that the
// availability check deliberately leaves open. Rejection deletes the booking.
func (s *AppointmentService) ReviewAppointment(caller *Caller, id string, confirm bool) (*models.Appointment, error) {
	if err := RequireRole(caller, models.RoleDoctor); err != nil {
		return nil, err
	}
	if err := RequireVerified(caller); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	appointment, err := s.appointmentRepo.Get(id)
	if err != nil {
		return nil, err
	}
	if appointment.DoctorID != caller.ID {
		return nil, apperr.Forbidden("you can only review your own appointments")
	}
	if appointment.IsConfirmed {
		return nil, apperr.BadRequest("appointment has already been confirmed")
	}

	now := time.Now().UnixNano()
	if appointment.StartTime <= now {
		return nil, apperr.BadRequest("appointment has already started")
	}

	if !confirm {
		if err := s.appointmentRepo.Delete(appointment.ID); err != nil {
			return nil, err
		}
		_ = s.auditRepo.CreateAuditLog(&caller.ID, "appointment_reject", fmt.Sprintf("Rejected appointment %s", appointment.ID))
		return nil, nil
	}

	appointment.IsConfirmed = true
	appointment.UpdatedAt = now
	if err := s.appointmentRepo.Put(appointment); err != nil {
		return nil, err
	}

	record := &models.MedicalRecord{
		ID:            uuid.New().String(),
		PatientID:     appointment.PatientID,
		DoctorID:      appointment.DoctorID,
		AppointmentID: appointment.ID,
		HospitalID:    appointment.HospitalID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.medicalRecordRepo.Put(record); err != nil {
		return nil, err
	}

	// Competing pending claims on the exact same slot lost the race.
	others, err := s.appointmentRepo.Scan()
	if err != nil {
		return nil, err
	}
	for _, other := range others {
		if other.ID == appointment.ID || other.IsConfirmed {
			continue
		}
		if other.DoctorID == appointment.DoctorID && other.StartTime == appointment.StartTime {
			if err := s.appointmentRepo.Delete(other.ID); err != nil {
				return nil, err
			}
		}
	}

	_ = s.auditRepo.CreateAuditLog(&caller.ID, "appointment_confirm", fmt.Sprintf("Confirmed appointment %s", appointment.ID))

	return appointment, nil
}

// DeleteAppointment withdraws a pending appointment (the booking patient
// only). Confirmed appointments can no longer be withdrawn.
func (s *AppointmentService) DeleteAppointment(caller *Caller, id string) error {
	if err := RequireRole(caller, models.RolePatient); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	appointment, err := s.appointmentRepo.Get(id)
	if err != nil {
		return err
	}
	if appointment.PatientID != caller.ID {
		return apperr.Forbidden("you can only cancel your own appointments")
	}
	if appointment.IsConfirmed {
		return apperr.BadRequest("confirmed appointments can no longer be cancelled")
	}

	if err := s.appointmentRepo.Delete(appointment.ID); err != nil {
		return err
	}

	_ = s.auditRepo.CreateAuditLog(&caller.ID, "appointment_cancel", fmt.Sprintf("Cancelled appointment %s", appointment.ID))

	return nil
}

// GetAllAppointments returns every appointment (owner and admin only).
func (s *AppointmentService) GetAllAppointments(caller *Caller) ([]models.AppointmentDetail, error) {
	if err := RequireRole(caller, models.RoleOwner, models.RoleAdmin); err != nil {
		return nil, err
	}
	appointments, err := s.appointmentRepo.Scan()
	if err != nil {
		return nil, err
	}
	return s.composeAll(appointments), nil
}

// GetAppointmentByID returns one appointment. Owner and admin may read any;
// a patient or doctor only their own.
func (s *AppointmentService) GetAppointmentByID(caller *Caller, id string) (*models.AppointmentDetail, error) {
	appointment, err := s.appointmentRepo.Get(id)
	if err != nil {
		return nil, err
	}
	switch caller.Role {
	case models.RoleOwner, models.RoleAdmin:
	default:
		if appointment.PatientID != caller.ID && appointment.DoctorID != caller.ID {
			return nil, apperr.Forbidden("you can only view your own appointments")
		}
	}
	detail := s.compose(appointment)
	return &detail, nil
}

// GetUpcomingCallerAppointments lists the caller's own appointments that have
// not started yet (patients and doctors).
func (s *AppointmentService) GetUpcomingCallerAppointments(caller *Caller) ([]models.AppointmentDetail, error) {
	return s.callerAppointments(caller, true)
}

// GetPastCallerAppointments lists the caller's own appointments that have
// already started (patients and doctors).
func (s *AppointmentService) GetPastCallerAppointments(caller *Caller) ([]models.AppointmentDetail, error) {
	return s.callerAppointments(caller, false)
}

func (s *AppointmentService) callerAppointments(caller *Caller, upcoming bool) ([]models.AppointmentDetail, error) {
	if err := RequireRole(caller, models.RolePatient, models.RoleDoctor); err != nil {
		return nil, err
	}

	appointments, err := s.appointmentRepo.Scan()
	if err != nil {
		return nil, err
	}

	now := time.Now().UnixNano()
	matched := make([]models.Appointment, 0)
	for _, appointment := range appointments {
		if caller.Role == models.RolePatient && appointment.PatientID != caller.ID {
			continue
		}
		if caller.Role == models.RoleDoctor && appointment.DoctorID != caller.ID {
			continue
		}
		if upcoming != (appointment.StartTime > now) {
			continue
		}
		matched = append(matched, appointment)
	}
	return s.composeAll(matched), nil
}

// GetUpcomingDoctorAppointments lists a doctor's future appointments. Any
// registered caller may read them; the booking form uses this to show which
// slots are already claimed.
func (s *AppointmentService) GetUpcomingDoctorAppointments(caller *Caller, doctorID string) ([]models.AppointmentDetail, error) {
	appointments, err := s.appointmentRepo.Scan()
	if err != nil {
		return nil, err
	}

	now := time.Now().UnixNano()
	matched := make([]models.Appointment, 0)
	for _, appointment := range appointments {
		if appointment.DoctorID == doctorID && appointment.StartTime > now {
			matched = append(matched, appointment)
		}
	}
	return s.composeAll(matched), nil
}

func (s *AppointmentService) composeAll(appointments []models.Appointment) []models.AppointmentDetail {
	sort.Slice(appointments, func(i, j int) bool {
		return appointments[i].StartTime < appointments[j].StartTime
	})
	details := make([]models.AppointmentDetail, 0, len(appointments))
	for i := range appointments {
		details = append(details, s.compose(&appointments[i]))
	}
	return details
}

// compose embeds the related entities. Lookup failures leave the embed empty
// rather than failing the read.
func (s *AppointmentService) compose(appointment *models.Appointment) models.AppointmentDetail {
	detail := models.AppointmentDetail{Appointment: *appointment}
	if hospital, err := s.hospitalRepo.Get(appointment.HospitalID); err == nil {
		detail.Hospital = hospital
	}
	if patient, err := s.userRepo.Get(appointment.PatientID); err == nil {
		detail.Patient = patient
	}
	if doctor, err := s.userRepo.Get(appointment.DoctorID); err == nil {
		detail.Doctor = doctor
	}
	return detail
}
