package service

import (
	"testing"
	"time"

	"hospital-management-backend/internal/config"
	"hospital-management-backend/internal/models"
	"hospital-management-backend/internal/repository"

	"github.com/google/uuid"
)

// testEnv wires every service against fresh in-memory repositories.
type testEnv struct {
	hospitals    repository.HospitalRepository
	users        repository.UserRepository
	appointments repository.AppointmentRepository
	records      repository.MedicalRecordRepository
	audit        repository.AuditRepository

	access         *AccessService
	availability   *AvailabilityService
	hospitalSvc    *HospitalService
	userSvc        *UserService
	appointmentSvc *AppointmentService
	recordSvc      *MedicalRecordService
	auditSvc       *AuditService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		hospitals:    repository.NewMemoryHospitalRepo(),
		users:        repository.NewMemoryUserRepo(),
		appointments: repository.NewMemoryAppointmentRepo(),
		records:      repository.NewMemoryMedicalRecordRepo(),
		audit:        repository.NewMemoryAuditRepo(),
	}

	clinic := config.ClinicConfig{
		SlotDuration:  30 * time.Minute,
		BookingBuffer: 30 * time.Minute,
	}

	env.access = NewAccessService(env.users)
	env.availability = NewAvailabilityService(env.appointments, clinic)
	env.hospitalSvc = NewHospitalService(env.hospitals, env.audit)
	env.userSvc = NewUserService(env.users, env.hospitals, env.audit)
	env.appointmentSvc = NewAppointmentService(env.appointments, env.users, env.hospitals, env.records, env.audit, env.availability)
	env.recordSvc = NewMedicalRecordService(env.records, env.appointments, env.users, env.hospitals, env.audit)
	env.auditSvc = NewAuditService(env.audit)

	return env
}

func (env *testEnv) seedHospital(t *testing.T) *models.Hospital {
	t.Helper()
	now := time.Now().UnixNano()
	hospital := &models.Hospital{
		ID:          uuid.New().String(),
		Name:        "RSUD Harapan Sehat",
		Address:     "Jl. Melati No. 1",
		SubDistrict: "Menteng",
		District:    "Menteng",
		City:        "Jakarta Pusat",
		Province:    "DKI Jakarta",
		PostalCode:  "10310",
		Country:     "Indonesia",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := env.hospitals.Put(hospital); err != nil {
		t.Fatalf("seed hospital: %v", err)
	}
	return hospital
}

// seedUser inserts a user directly, bypassing registration, so tests can set
// up any role and verification state in one line.
func (env *testEnv) seedUser(t *testing.T, role models.Role, hospitalID *string, verified bool) *models.User {
	t.Helper()
	now := time.Now().UnixNano()
	user := &models.User{
		ID:         "principal-" + uuid.New().String(),
		Role:       role,
		HospitalID: hospitalID,
		Name:       "Test " + string(role),
		Gender:     "female",
		Email:      string(role) + "@example.com",
		IsVerified: verified,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	switch role {
	case models.RolePatient:
		user.NIK = strPtr("3171234567890001")
	case models.RoleAdmin, models.RoleNurse:
		user.NIP = strPtr("197001011990011001")
	case models.RoleDoctor:
		user.NIP = strPtr("197001011990011001")
		user.Specialization = strPtr("Cardiology")
		user.Schedules = make([]models.Schedule, models.ScheduleDays)
	}
	if err := env.users.Put(user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func callerOf(user *models.User) *Caller {
	return &Caller{
		ID:         user.ID,
		Role:       user.Role,
		HospitalID: user.HospitalID,
		Verified:   user.IsVerified,
	}
}

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }
func intPtr(i int) *int         { return &i }

func inHours(h int) int64 {
	return time.Now().Add(time.Duration(h) * time.Hour).UnixNano()
}
