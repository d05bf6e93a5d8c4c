package service

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"hospital-management-backend/internal/models"
	"hospital-management-backend/internal/repository"
	"hospital-management-backend/pkg/apperr"
)

// MedicalRecordService owns the record-completion workflow. Records are
// created by appointment confirmation only; here they are read and filled,
// never created or deleted. Updates run under one mutex so the two writer
// roles cannot interleave their read-modify-write sequences.
type MedicalRecordService struct {
	mu sync.Mutex

	medicalRecordRepo repository.MedicalRecordRepository
	appointmentRepo   repository.AppointmentRepository
	userRepo          repository.UserRepository
	hospitalRepo      repository.HospitalRepository
	auditRepo         repository.AuditRepository
}

func NewMedicalRecordService(
	medicalRecordRepo repository.MedicalRecordRepository,
	appointmentRepo repository.AppointmentRepository,
	userRepo repository.UserRepository,
	hospitalRepo repository.HospitalRepository,
	auditRepo repository.AuditRepository,
) *MedicalRecordService {
	return &MedicalRecordService{
		medicalRecordRepo: medicalRecordRepo,
		appointmentRepo:   appointmentRepo,
		userRepo:          userRepo,
		hospitalRepo:      hospitalRepo,
		auditRepo:         auditRepo,
	}
}

// UpdateMedicalRecordRequest carries the full record payload. Only the subset
// matching the caller's role is committed; the rest is ignored.
type UpdateMedicalRecordRequest struct {
	Height        *float64 `json:"height"`
	Weight        *float64 `json:"weight"`
	BloodPressure *string  `json:"bloodPressure"`
	Pulse         *int     `json:"pulse"`
	Temperature   *float64 `json:"temperature"`
	Respiration   *int     `json:"respiration"`

	Subjective *string `json:"subjective"`
	Objective  *string `json:"objective"`
	Assessment *string `json:"assessment"`
	Plan       *string `json:"plan"`
	Education  *string `json:"education"`

	Prescriptions []models.Prescription `json:"prescriptions"`
}

// UpdatePatientMedicalRecord commits the caller-role subset of the payload: a
// nurse writes the vital signs, a doctor writes the clinical assessment and
// prescriptions. The other role's fields are preserved untouched, absent ones
// included.
func (s *MedicalRecordService) UpdatePatientMedicalRecord(caller *Caller, id string, req *UpdateMedicalRecordRequest) (*models.MedicalRecord, error) {
	if err := RequireRole(caller, models.RoleDoctor, models.RoleNurse); err != nil {
		return nil, err
	}
	if err := RequireVerified(caller); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.medicalRecordRepo.Get(id)
	if err != nil {
		return nil, err
	}

	switch caller.Role {
	case models.RoleDoctor:
		if record.DoctorID != caller.ID {
			return nil, apperr.Forbidden("you can only update records of your own patients")
		}
		record.Subjective = req.Subjective
		record.Objective = req.Objective
		record.Assessment = req.Assessment
		record.Plan = req.Plan
		record.Education = req.Education
		record.Prescriptions = req.Prescriptions
	case models.RoleNurse:
		if caller.HospitalID == nil || record.HospitalID != *caller.HospitalID {
			return nil, apperr.Forbidden("you can only update records of your own hospital")
		}
		record.Height = req.Height
		record.Weight = req.Weight
		record.BloodPressure = req.BloodPressure
		record.Pulse = req.Pulse
		record.Temperature = req.Temperature
		record.Respiration = req.Respiration
	}

	record.UpdatedAt = time.Now().UnixNano()
	if err := s.medicalRecordRepo.Put(record); err != nil {
		return nil, err
	}

	_ = s.auditRepo.CreateAuditLog(&caller.ID, "medical_record_update", fmt.Sprintf("Updated record %s as %s", record.ID, caller.Role))

	return record, nil
}

// GetAllMedicalRecords returns every record (owner and admin only).
func (s *MedicalRecordService) GetAllMedicalRecords(caller *Caller) ([]models.MedicalRecordDetail, error) {
	if err := RequireRole(caller, models.RoleOwner, models.RoleAdmin); err != nil {
		return nil, err
	}
	records, err := s.medicalRecordRepo.Scan()
	if err != nil {
		return nil, err
	}
	return s.composeAll(records), nil
}

// GetMedicalRecordByID returns one record. Staff roles may read any record;
// a patient only their own.
func (s *MedicalRecordService) GetMedicalRecordByID(caller *Caller, id string) (*models.MedicalRecordDetail, error) {
	record, err := s.medicalRecordRepo.Get(id)
	if err != nil {
		return nil, err
	}
	if caller.Role == models.RolePatient && record.PatientID != caller.ID {
		return nil, apperr.Forbidden("you can only view your own medical records")
	}
	detail := s.compose(record)
	return &detail, nil
}

// GetCallerMedicalRecords lists the caller's own records (patients only).
func (s *MedicalRecordService) GetCallerMedicalRecords(caller *Caller) ([]models.MedicalRecordDetail, error) {
	if err := RequireRole(caller, models.RolePatient); err != nil {
		return nil, err
	}
	return s.recordsWhere(func(record *models.MedicalRecord) bool {
		return record.PatientID == caller.ID
	})
}

// GetPatientMedicalRecords lists a patient's records (doctor and nurse only).
func (s *MedicalRecordService) GetPatientMedicalRecords(caller *Caller, patientID string) ([]models.MedicalRecordDetail, error) {
	if err := RequireRole(caller, models.RoleDoctor, models.RoleNurse); err != nil {
		return nil, err
	}
	if err := RequireVerified(caller); err != nil {
		return nil, err
	}
	return s.recordsWhere(func(record *models.MedicalRecord) bool {
		return record.PatientID == patientID
	})
}

// GetUncompletedMedicalRecordsByDoctor lists the caller's records whose
// consult has started but whose clinical assessment is still entirely absent.
func (s *MedicalRecordService) GetUncompletedMedicalRecordsByDoctor(caller *Caller) ([]models.MedicalRecordDetail, error) {
	if err := RequireRole(caller, models.RoleDoctor); err != nil {
		return nil, err
	}
	if err := RequireVerified(caller); err != nil {
		return nil, err
	}
	now := time.Now().UnixNano()
	return s.recordsWhere(func(record *models.MedicalRecord) bool {
		return record.DoctorID == caller.ID && !record.HasClinical() && s.consultStarted(record, now)
	})
}

// GetUncompletedMedicalRecordsByNurse lists the caller's hospital records
// whose consult has started but whose vital signs are still entirely absent.
func (s *MedicalRecordService) GetUncompletedMedicalRecordsByNurse(caller *Caller) ([]models.MedicalRecordDetail, error) {
	if err := RequireRole(caller, models.RoleNurse); err != nil {
		return nil, err
	}
	if err := RequireVerified(caller); err != nil {
		return nil, err
	}
	now := time.Now().UnixNano()
	return s.recordsWhere(func(record *models.MedicalRecord) bool {
		return caller.HospitalID != nil && record.HospitalID == *caller.HospitalID &&
			!record.HasVitals() && s.consultStarted(record, now)
	})
}

func (s *MedicalRecordService) consultStarted(record *models.MedicalRecord, now int64) bool {
	appointment, err := s.appointmentRepo.Get(record.AppointmentID)
	if err != nil {
		return false
	}
	return appointment.StartTime <= now
}

func (s *MedicalRecordService) recordsWhere(match func(*models.MedicalRecord) bool) ([]models.MedicalRecordDetail, error) {
	records, err := s.medicalRecordRepo.Scan()
	if err != nil {
		return nil, err
	}
	matched := make([]models.MedicalRecord, 0)
	for i := range records {
		if match(&records[i]) {
			matched = append(matched, records[i])
		}
	}
	return s.composeAll(matched), nil
}

func (s *MedicalRecordService) composeAll(records []models.MedicalRecord) []models.MedicalRecordDetail {
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt < records[j].CreatedAt
	})
	details := make([]models.MedicalRecordDetail, 0, len(records))
	for i := range records {
		details = append(details, s.compose(&records[i]))
	}
	return details
}

// compose embeds the related entities. Lookup failures leave the embed empty
// rather than failing the read.
func (s *MedicalRecordService) compose(record *models.MedicalRecord) models.MedicalRecordDetail {
	detail := models.MedicalRecordDetail{MedicalRecord: *record}
	if hospital, err := s.hospitalRepo.Get(record.HospitalID); err == nil {
		detail.Hospital = hospital
	}
	if patient, err := s.userRepo.Get(record.PatientID); err == nil {
		detail.Patient = patient
	}
	if doctor, err := s.userRepo.Get(record.DoctorID); err == nil {
		detail.Doctor = doctor
	}
	if appointment, err := s.appointmentRepo.Get(record.AppointmentID); err == nil {
		detail.Appointment = appointment
	}
	return detail
}
