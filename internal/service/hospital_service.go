package service

import (
	"fmt"
	"sort"
	"time"

	"hospital-management-backend/internal/models"
	"hospital-management-backend/internal/repository"

	"github.com/google/uuid"
)

type HospitalService struct {
	hospitalRepo repository.HospitalRepository
	auditRepo    repository.AuditRepository
}

func NewHospitalService(hospitalRepo repository.HospitalRepository, auditRepo repository.AuditRepository) *HospitalService {
	return &HospitalService{
		hospitalRepo: hospitalRepo,
		auditRepo:    auditRepo,
	}
}

// HospitalRequest carries the writable hospital fields for create and update.
type HospitalRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Address     string `json:"address" binding:"required"`
	SubDistrict string `json:"subDistrict" binding:"required"`
	District    string `json:"district" binding:"required"`
	City        string `json:"city" binding:"required"`
	Province    string `json:"province" binding:"required"`
	PostalCode  string `json:"postalCode" binding:"required,len=5,numeric"`
	Country     string `json:"country" binding:"required"`
}

// CreateHospital creates a new hospital (owner only).
func (s *HospitalService) CreateHospital(caller *Caller, req *HospitalRequest) (*models.Hospital, error) {
	if err := RequireRole(caller, models.RoleOwner); err != nil {
		return nil, err
	}

	now := time.Now().UnixNano()
	hospital := &models.Hospital{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		SubDistrict: req.SubDistrict,
		District:    req.District,
		City:        req.City,
		Province:    req.Province,
		PostalCode:  req.PostalCode,
		Country:     req.Country,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.hospitalRepo.Put(hospital); err != nil {
		return nil, err
	}

	_ = s.auditRepo.CreateAuditLog(&caller.ID, "hospital_create", fmt.Sprintf("Created hospital %s (%s)", hospital.Name, hospital.ID))

	return hospital, nil
}

// GetAllHospitals retrieves every hospital, sorted by name.
func (s *HospitalService) GetAllHospitals() ([]models.Hospital, error) {
	hospitals, err := s.hospitalRepo.Scan()
	if err != nil {
		return nil, err
	}
	sort.Slice(hospitals, func(i, j int) bool {
		return hospitals[i].Name < hospitals[j].Name
	})
	return hospitals, nil
}

// GetHospitalByID retrieves a hospital by ID.
func (s *HospitalService) GetHospitalByID(id string) (*models.Hospital, error) {
	return s.hospitalRepo.Get(id)
}

// UpdateHospital replaces the writable fields of an existing hospital (owner only).
func (s *HospitalService) UpdateHospital(caller *Caller, id string, req *HospitalRequest) (*models.Hospital, error) {
	if err := RequireRole(caller, models.RoleOwner); err != nil {
		return nil, err
	}

	hospital, err := s.hospitalRepo.Get(id)
	if err != nil {
		return nil, err
	}

	hospital.Name = req.Name
	hospital.Description = req.Description
	hospital.Address = req.Address
	hospital.SubDistrict = req.SubDistrict
	hospital.District = req.District
	hospital.City = req.City
	hospital.Province = req.Province
	hospital.PostalCode = req.PostalCode
	hospital.Country = req.Country
	hospital.UpdatedAt = time.Now().UnixNano()

	if err := s.hospitalRepo.Put(hospital); err != nil {
		return nil, err
	}

	_ = s.auditRepo.CreateAuditLog(&caller.ID, "hospital_update", fmt.Sprintf("Updated hospital %s (%s)", hospital.Name, hospital.ID))

	return hospital, nil
}
