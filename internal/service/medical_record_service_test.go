package service

import (
	"sync"
	"testing"
	"time"

	"hospital-management-backend/internal/models"
	"hospital-management-backend/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedRecord stores an appointment plus its (confirmed) medical record
// directly, so tests can place the consult start time in the past.
func seedRecord(t *testing.T, env *testEnv, hospitalID, patientID, doctorID string, start int64) *models.MedicalRecord {
	t.Helper()
	now := time.Now().UnixNano()
	appointment := &models.Appointment{
		ID:          uuid.New().String(),
		HospitalID:  hospitalID,
		PatientID:   patientID,
		DoctorID:    doctorID,
		StartTime:   start,
		EndTime:     start + (30 * time.Minute).Nanoseconds(),
		IsConfirmed: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, env.appointments.Put(appointment))

	record := &models.MedicalRecord{
		ID:            uuid.New().String(),
		PatientID:     patientID,
		DoctorID:      doctorID,
		AppointmentID: appointment.ID,
		HospitalID:    hospitalID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, env.records.Put(record))
	return record
}

func TestUpdateMedicalRecordRolePartition(t *testing.T) {
	env := newTestEnv(t)
	hospital := env.seedHospital(t)
	doctor := env.seedUser(t, models.RoleDoctor, &hospital.ID, true)
	nurse := env.seedUser(t, models.RoleNurse, &hospital.ID, true)
	patient := env.seedUser(t, models.RolePatient, nil, true)

	record := seedRecord(t, env, hospital.ID, patient.ID, doctor.ID, inHours(1))

	// The nurse writes the vital signs first.
	_, err := env.recordSvc.UpdatePatientMedicalRecord(callerOf(nurse), record.ID, &UpdateMedicalRecordRequest{
		Height:        f64Ptr(172),
		Weight:        f64Ptr(68.5),
		BloodPressure: strPtr("120/80"),
		Pulse:         intPtr(72),
		Temperature:   f64Ptr(36.6),
		Respiration:   intPtr(18),
	})
	require.NoError(t, err)

	// The doctor's write carries no vitals but must not erase them.
	updated, err := env.recordSvc.UpdatePatientMedicalRecord(callerOf(doctor), record.ID, &UpdateMedicalRecordRequest{
		Subjective: strPtr("Recurring headache"),
		Objective:  strPtr("No neurological deficit"),
		Assessment: strPtr("Tension headache"),
		Plan:       strPtr("Analgesics, follow up in two weeks"),
		Education:  strPtr("Reduce screen time"),
		Prescriptions: []models.Prescription{
			{Medicine: "Paracetamol 500mg", Dosage: "3x1", Amount: "15", Note: "After meals"},
		},
	})
	require.NoError(t, err)

	require.NotNil(t, updated.Height)
	assert.Equal(t, float64(172), *updated.Height)
	require.NotNil(t, updated.Pulse)
	assert.Equal(t, 72, *updated.Pulse)
	require.NotNil(t, updated.Assessment)
	assert.Equal(t, "Tension headache", *updated.Assessment)
	require.Len(t, updated.Prescriptions, 1)
	assert.True(t, updated.IsComplete())

	// A nurse re-submitting without a field clears that field, but leaves the
	// doctor's half untouched.
	updated, err = env.recordSvc.UpdatePatientMedicalRecord(callerOf(nurse), record.ID, &UpdateMedicalRecordRequest{
		Height: f64Ptr(172),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Pulse)
	require.NotNil(t, updated.Assessment)
	assert.False(t, updated.IsComplete())
}

func TestUpdateMedicalRecordCompleteWithEmptyPrescriptions(t *testing.T) {
	env := newTestEnv(t)
	hospital := env.seedHospital(t)
	doctor := env.seedUser(t, models.RoleDoctor, &hospital.ID, true)
	nurse := env.seedUser(t, models.RoleNurse, &hospital.ID, true)
	patient := env.seedUser(t, models.RolePatient, nil, true)

	record := seedRecord(t, env, hospital.ID, patient.ID, doctor.ID, inHours(1))

	_, err := env.recordSvc.UpdatePatientMedicalRecord(callerOf(nurse), record.ID, &UpdateMedicalRecordRequest{
		Height:        f64Ptr(160),
		Weight:        f64Ptr(55),
		BloodPressure: strPtr("110/70"),
		Pulse:         intPtr(68),
		Temperature:   f64Ptr(36.4),
		Respiration:   intPtr(16),
	})
	require.NoError(t, err)

	// No medication prescribed: an empty list still counts as filled in.
	updated, err := env.recordSvc.UpdatePatientMedicalRecord(callerOf(doctor), record.ID, &UpdateMedicalRecordRequest{
		Subjective:    strPtr("Routine check"),
		Objective:     strPtr("Unremarkable"),
		Assessment:    strPtr("Healthy"),
		Plan:          strPtr("None"),
		Education:     strPtr("Keep exercising"),
		Prescriptions: []models.Prescription{},
	})
	require.NoError(t, err)
	assert.True(t, updated.IsComplete())
}

func TestUpdateMedicalRecordConcurrentWriters(t *testing.T) {
	env := newTestEnv(t)
	hospital := env.seedHospital(t)
	doctor := env.seedUser(t, models.RoleDoctor, &hospital.ID, true)
	nurse := env.seedUser(t, models.RoleNurse, &hospital.ID, true)
	patient := env.seedUser(t, models.RolePatient, nil, true)

	// A simultaneous nurse and doctor write must never erase the other
	// role's half, regardless of interleaving.
	for i := 0; i < 200; i++ {
		record := seedRecord(t, env, hospital.ID, patient.ID, doctor.ID, inHours(1))

		start := make(chan struct{})
		var wg sync.WaitGroup
		wg.Add(2)
		var nurseErr, doctorErr error
		go func() {
			defer wg.Done()
			<-start
			_, nurseErr = env.recordSvc.UpdatePatientMedicalRecord(callerOf(nurse), record.ID, &UpdateMedicalRecordRequest{
				Height:        f64Ptr(170),
				Weight:        f64Ptr(70),
				BloodPressure: strPtr("120/80"),
				Pulse:         intPtr(72),
				Temperature:   f64Ptr(36.6),
				Respiration:   intPtr(18),
			})
		}()
		go func() {
			defer wg.Done()
			<-start
			_, doctorErr = env.recordSvc.UpdatePatientMedicalRecord(callerOf(doctor), record.ID, &UpdateMedicalRecordRequest{
				Subjective:    strPtr("Fatigue"),
				Objective:     strPtr("Mild anemia"),
				Assessment:    strPtr("Iron deficiency"),
				Plan:          strPtr("Supplements"),
				Education:     strPtr("Dietary advice"),
				Prescriptions: []models.Prescription{},
			})
		}()
		close(start)
		wg.Wait()

		require.NoError(t, nurseErr)
		require.NoError(t, doctorErr)

		stored, err := env.records.Get(record.ID)
		require.NoError(t, err)
		assert.True(t, stored.HasVitals(), "vitals lost on iteration %d", i)
		assert.True(t, stored.HasClinical(), "clinical fields lost on iteration %d", i)
		assert.True(t, stored.IsComplete(), "record incomplete on iteration %d", i)
	}
}

func TestUpdateMedicalRecordGuards(t *testing.T) {
	env := newTestEnv(t)
	hospital := env.seedHospital(t)
	otherHospital := env.seedHospital(t)
	doctor := env.seedUser(t, models.RoleDoctor, &hospital.ID, true)
	otherDoctor := env.seedUser(t, models.RoleDoctor, &hospital.ID, true)
	nurseElsewhere := env.seedUser(t, models.RoleNurse, &otherHospital.ID, true)
	unverifiedNurse := env.seedUser(t, models.RoleNurse, &hospital.ID, false)
	patient := env.seedUser(t, models.RolePatient, nil, true)

	record := seedRecord(t, env, hospital.ID, patient.ID, doctor.ID, inHours(1))

	t.Run("patients cannot write", func(t *testing.T) {
		_, err := env.recordSvc.UpdatePatientMedicalRecord(callerOf(patient), record.ID, &UpdateMedicalRecordRequest{})
		assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
	})

	t.Run("unverified staff cannot write", func(t *testing.T) {
		_, err := env.recordSvc.UpdatePatientMedicalRecord(callerOf(unverifiedNurse), record.ID, &UpdateMedicalRecordRequest{})
		assert.True(t, apperr.IsKind(err, apperr.KindBadRequest))
	})

	t.Run("doctor must own the record", func(t *testing.T) {
		_, err := env.recordSvc.UpdatePatientMedicalRecord(callerOf(otherDoctor), record.ID, &UpdateMedicalRecordRequest{})
		assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
	})

	t.Run("nurse must match the hospital", func(t *testing.T) {
		_, err := env.recordSvc.UpdatePatientMedicalRecord(callerOf(nurseElsewhere), record.ID, &UpdateMedicalRecordRequest{})
		assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
	})

	t.Run("unknown record", func(t *testing.T) {
		_, err := env.recordSvc.UpdatePatientMedicalRecord(callerOf(doctor), uuid.New().String(), &UpdateMedicalRecordRequest{})
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})
}

func TestMedicalRecordViews(t *testing.T) {
	env := newTestEnv(t)
	hospital := env.seedHospital(t)
	doctor := env.seedUser(t, models.RoleDoctor, &hospital.ID, true)
	nurse := env.seedUser(t, models.RoleNurse, &hospital.ID, true)
	admin := env.seedUser(t, models.RoleAdmin, &hospital.ID, true)
	patient := env.seedUser(t, models.RolePatient, nil, true)
	other := env.seedUser(t, models.RolePatient, nil, true)

	record := seedRecord(t, env, hospital.ID, patient.ID, doctor.ID, inHours(1))
	seedRecord(t, env, hospital.ID, other.ID, doctor.ID, inHours(2))

	t.Run("admin sees all", func(t *testing.T) {
		details, err := env.recordSvc.GetAllMedicalRecords(callerOf(admin))
		require.NoError(t, err)
		assert.Len(t, details, 2)
	})

	t.Run("patient cannot list all", func(t *testing.T) {
		_, err := env.recordSvc.GetAllMedicalRecords(callerOf(patient))
		assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
	})

	t.Run("patient sees only own", func(t *testing.T) {
		details, err := env.recordSvc.GetCallerMedicalRecords(callerOf(patient))
		require.NoError(t, err)
		require.Len(t, details, 1)
		assert.Equal(t, record.ID, details[0].ID)
		require.NotNil(t, details[0].Doctor)
		assert.Equal(t, doctor.ID, details[0].Doctor.ID)
	})

	t.Run("by id access", func(t *testing.T) {
		_, err := env.recordSvc.GetMedicalRecordByID(callerOf(other), record.ID)
		assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

		detail, err := env.recordSvc.GetMedicalRecordByID(callerOf(nurse), record.ID)
		require.NoError(t, err)
		assert.Equal(t, record.ID, detail.ID)
	})

	t.Run("staff patient lookup", func(t *testing.T) {
		details, err := env.recordSvc.GetPatientMedicalRecords(callerOf(nurse), patient.ID)
		require.NoError(t, err)
		require.Len(t, details, 1)
		assert.Equal(t, record.ID, details[0].ID)

		_, err = env.recordSvc.GetPatientMedicalRecords(callerOf(patient), other.ID)
		assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
	})
}

func TestUncompletedMedicalRecordQueues(t *testing.T) {
	env := newTestEnv(t)
	hospital := env.seedHospital(t)
	otherHospital := env.seedHospital(t)
	doctor := env.seedUser(t, models.RoleDoctor, &hospital.ID, true)
	otherDoctor := env.seedUser(t, models.RoleDoctor, &otherHospital.ID, true)
	nurse := env.seedUser(t, models.RoleNurse, &hospital.ID, true)
	patient := env.seedUser(t, models.RolePatient, nil, true)

	started := seedRecord(t, env, hospital.ID, patient.ID, doctor.ID, time.Now().Add(-time.Hour).UnixNano())
	// Consult not started yet: must not show up in any queue.
	seedRecord(t, env, hospital.ID, patient.ID, doctor.ID, inHours(2))
	// Another hospital's consult: the nurse queue must not see it.
	seedRecord(t, env, otherHospital.ID, patient.ID, otherDoctor.ID, time.Now().Add(-time.Hour).UnixNano())

	t.Run("doctor queue", func(t *testing.T) {
		details, err := env.recordSvc.GetUncompletedMedicalRecordsByDoctor(callerOf(doctor))
		require.NoError(t, err)
		require.Len(t, details, 1)
		assert.Equal(t, started.ID, details[0].ID)
	})

	t.Run("nurse queue", func(t *testing.T) {
		details, err := env.recordSvc.GetUncompletedMedicalRecordsByNurse(callerOf(nurse))
		require.NoError(t, err)
		require.Len(t, details, 1)
		assert.Equal(t, started.ID, details[0].ID)
	})

	t.Run("completed half leaves the queue", func(t *testing.T) {
		_, err := env.recordSvc.UpdatePatientMedicalRecord(callerOf(nurse), started.ID, &UpdateMedicalRecordRequest{
			Height:        f64Ptr(170),
			Weight:        f64Ptr(70),
			BloodPressure: strPtr("118/76"),
			Pulse:         intPtr(70),
			Temperature:   f64Ptr(36.7),
			Respiration:   intPtr(17),
		})
		require.NoError(t, err)

		details, err := env.recordSvc.GetUncompletedMedicalRecordsByNurse(callerOf(nurse))
		require.NoError(t, err)
		assert.Empty(t, details)

		// The clinical half is still open, so the doctor's queue keeps it.
		details, err = env.recordSvc.GetUncompletedMedicalRecordsByDoctor(callerOf(doctor))
		require.NoError(t, err)
		assert.Len(t, details, 1)
	})
}
