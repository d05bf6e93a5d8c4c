package service

import (
	"time"

	"hospital-management-backend/internal/config"
	"hospital-management-backend/internal/repository"
)

// AvailabilityService decides whether a doctor can take a booking at a
// proposed start time. Every consultation occupies a fixed slot, and a start
// time inside the guard buffer before an existing booking is rejected so the
// doctor has preparation room.
type AvailabilityService struct {
	appointmentRepo repository.AppointmentRepository
	slotDuration    time.Duration
	bookingBuffer   time.Duration
}

func NewAvailabilityService(appointmentRepo repository.AppointmentRepository, cfg config.ClinicConfig) *AvailabilityService {
	return &AvailabilityService{
		appointmentRepo: appointmentRepo,
		slotDuration:    cfg.SlotDuration,
		bookingBuffer:   cfg.BookingBuffer,
	}
}

// SlotDuration returns the fixed consultation slot length.
func (s *AvailabilityService) SlotDuration() time.Duration {
	return s.slotDuration
}

// IsDoctorAvailable reports whether the slot starting at startTime is free
// for the doctor. The proposed start must fall outside
// [existing.start - buffer, existing.end) for every existing appointment,
// pending ones included. A start exactly at another appointment's end is
// allowed.
func (s *AvailabilityService) IsDoctorAvailable(doctorID string, startTime int64) (bool, error) {
	appointments, err := s.appointmentRepo.Scan()
	if err != nil {
		return false, err
	}

	buffer := s.bookingBuffer.Nanoseconds()
	for _, appointment := range appointments {
		if appointment.DoctorID != doctorID {
			continue
		}
		if startTime >= appointment.StartTime-buffer && startTime < appointment.EndTime {
			return false, nil
		}
	}
	return true, nil
}
