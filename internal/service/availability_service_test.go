package service

import (
	"testing"
	"time"

	"hospital-management-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAppointment(t *testing.T, env *testEnv, doctorID string, start int64, confirmed bool) *models.Appointment {
	t.Helper()
	appointment := &models.Appointment{
		ID:          uuid.New().String(),
		HospitalID:  uuid.New().String(),
		PatientID:   "patient-" + uuid.New().String(),
		DoctorID:    doctorID,
		StartTime:   start,
		EndTime:     start + (30 * time.Minute).Nanoseconds(),
		IsConfirmed: confirmed,
	}
	require.NoError(t, env.appointments.Put(appointment))
	return appointment
}

func TestIsDoctorAvailableNoAppointments(t *testing.T) {
	env := newTestEnv(t)

	available, err := env.availability.IsDoctorAvailable("doctor-1", inHours(2))
	require.NoError(t, err)
	assert.True(t, available)
}

func TestIsDoctorAvailableConflicts(t *testing.T) {
	env := newTestEnv(t)

	start := inHours(4)
	minute := time.Minute.Nanoseconds()
	seedAppointment(t, env, "doctor-1", start, false)

	cases := []struct {
		name     string
		proposed int64
		want     bool
	}{
		{"same start", start, false},
		{"inside slot", start + 10*minute, false},
		{"last instant of slot", start + 30*minute - 1, false},
		{"exactly at end", start + 30*minute, true},
		{"after end", start + 45*minute, true},
		{"one minute before", start - minute, false},
		{"buffer boundary", start - 30*minute, false},
		{"just outside buffer", start - 30*minute - 1, true},
		{"well before", start - 2*60*minute, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			available, err := env.availability.IsDoctorAvailable("doctor-1", tc.proposed)
			require.NoError(t, err)
			assert.Equal(t, tc.want, available)
		})
	}
}

func TestIsDoctorAvailableIgnoresOtherDoctors(t *testing.T) {
	env := newTestEnv(t)

	start := inHours(4)
	seedAppointment(t, env, "doctor-1", start, true)

	available, err := env.availability.IsDoctorAvailable("doctor-2", start)
	require.NoError(t, err)
	assert.True(t, available)
}

func TestIsDoctorAvailableCountsPendingAppointments(t *testing.T) {
	env := newTestEnv(t)

	// Pending bookings block the slot just like confirmed ones; the race
	// between two patients is settled at confirmation instead.
	start := inHours(4)
	seedAppointment(t, env, "doctor-1", start, false)

	available, err := env.availability.IsDoctorAvailable("doctor-1", start)
	require.NoError(t, err)
	assert.False(t, available)
}
