package repository

import (
	"sort"
	"sync"
	"time"

	"hospital-management-backend/internal/models"
	"hospital-management-backend/pkg/apperr"

	"github.com/google/uuid"
)

// memtable is an in-process key-value table. Rows are stored by value, so
// every read hands out an independent copy and Scan is a fresh snapshot.
// A RWMutex gives the reference semantics: one writer, concurrent readers.
type memtable[T any] struct {
	mu   sync.RWMutex
	rows map[string]T
}

func newMemtable[T any]() *memtable[T] {
	return &memtable[T]{rows: make(map[string]T)}
}

func (t *memtable[T]) get(id string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	return row, ok
}

func (t *memtable[T]) exists(id string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.rows[id]
	return ok
}

func (t *memtable[T]) put(id string, row T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows[id] = row
}

func (t *memtable[T]) delete(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.rows, id)
}

func (t *memtable[T]) scan() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	rows := make([]T, 0, len(t.rows))
	for _, row := range t.rows {
		rows = append(rows, row)
	}
	return rows
}

type memoryHospitalRepo struct {
	table *memtable[models.Hospital]
}

// NewMemoryHospitalRepo returns an in-memory hospital repository.
func NewMemoryHospitalRepo() HospitalRepository {
	return &memoryHospitalRepo{table: newMemtable[models.Hospital]()}
}

func (r *memoryHospitalRepo) Get(id string) (*models.Hospital, error) {
	hospital, ok := r.table.get(id)
	if !ok {
		return nil, apperr.NotFound("hospital not found")
	}
	return &hospital, nil
}

func (r *memoryHospitalRepo) Exists(id string) (bool, error) {
	return r.table.exists(id), nil
}

func (r *memoryHospitalRepo) Put(hospital *models.Hospital) error {
	r.table.put(hospital.ID, *hospital)
	return nil
}

func (r *memoryHospitalRepo) Delete(id string) error {
	r.table.delete(id)
	return nil
}

func (r *memoryHospitalRepo) Scan() ([]models.Hospital, error) {
	return r.table.scan(), nil
}

type memoryUserRepo struct {
	table *memtable[models.User]
}

// NewMemoryUserRepo returns an in-memory user repository.
func NewMemoryUserRepo() UserRepository {
	return &memoryUserRepo{table: newMemtable[models.User]()}
}

func (r *memoryUserRepo) Get(id string) (*models.User, error) {
	user, ok := r.table.get(id)
	if !ok {
		return nil, apperr.NotFound("user not found")
	}
	return &user, nil
}

func (r *memoryUserRepo) Exists(id string) (bool, error) {
	return r.table.exists(id), nil
}

func (r *memoryUserRepo) Put(user *models.User) error {
	r.table.put(user.ID, *user)
	return nil
}

func (r *memoryUserRepo) Delete(id string) error {
	r.table.delete(id)
	return nil
}

func (r *memoryUserRepo) Scan() ([]models.User, error) {
	return r.table.scan(), nil
}

type memoryAppointmentRepo struct {
	table *memtable[models.Appointment]
}

// NewMemoryAppointmentRepo returns an in-memory appointment repository.
func NewMemoryAppointmentRepo() AppointmentRepository {
	return &memoryAppointmentRepo{table: newMemtable[models.Appointment]()}
}

func (r *memoryAppointmentRepo) Get(id string) (*models.Appointment, error) {
	appointment, ok := r.table.get(id)
	if !ok {
		return nil, apperr.NotFound("appointment not found")
	}
	return &appointment, nil
}

func (r *memoryAppointmentRepo) Exists(id string) (bool, error) {
	return r.table.exists(id), nil
}

func (r *memoryAppointmentRepo) Put(appointment *models.Appointment) error {
	r.table.put(appointment.ID, *appointment)
	return nil
}

func (r *memoryAppointmentRepo) Delete(id string) error {
	r.table.delete(id)
	return nil
}

func (r *memoryAppointmentRepo) Scan() ([]models.Appointment, error) {
	return r.table.scan(), nil
}

type memoryMedicalRecordRepo struct {
	table *memtable[models.MedicalRecord]
}

// NewMemoryMedicalRecordRepo returns an in-memory medical record repository.
func NewMemoryMedicalRecordRepo() MedicalRecordRepository {
	return &memoryMedicalRecordRepo{table: newMemtable[models.MedicalRecord]()}
}

func (r *memoryMedicalRecordRepo) Get(id string) (*models.MedicalRecord, error) {
	record, ok := r.table.get(id)
	if !ok {
		return nil, apperr.NotFound("medical record not found")
	}
	return &record, nil
}

func (r *memoryMedicalRecordRepo) Exists(id string) (bool, error) {
	return r.table.exists(id), nil
}

func (r *memoryMedicalRecordRepo) Put(record *models.MedicalRecord) error {
	r.table.put(record.ID, *record)
	return nil
}

func (r *memoryMedicalRecordRepo) Delete(id string) error {
	r.table.delete(id)
	return nil
}

func (r *memoryMedicalRecordRepo) Scan() ([]models.MedicalRecord, error) {
	return r.table.scan(), nil
}

type memoryAuditRepo struct {
	table *memtable[models.AuditLog]
}

// NewMemoryAuditRepo returns an in-memory audit repository.
func NewMemoryAuditRepo() AuditRepository {
	return &memoryAuditRepo{table: newMemtable[models.AuditLog]()}
}

func (r *memoryAuditRepo) CreateAuditLog(actorID *string, action, details string) error {
	log := models.AuditLog{
		ID:        uuid.New().String(),
		ActorID:   actorID,
		Action:    action,
		Details:   details,
		CreatedAt: time.Now().UnixNano(),
	}
	r.table.put(log.ID, log)
	return nil
}

func (r *memoryAuditRepo) GetAllAuditLogs() ([]models.AuditLog, error) {
	logs := r.table.scan()
	sort.Slice(logs, func(i, j int) bool {
		return logs[i].CreatedAt > logs[j].CreatedAt
	})
	return logs, nil
}
