package service

import (
	"fmt"
	"regexp"
	"sort"
	"sync"
	"time"

	"hospital-management-backend/internal/models"
	"hospital-management-backend/internal/repository"
	"hospital-management-backend/pkg/apperr"
)

var digitsOnly = regexp.MustCompile(`^[0-9]+$`)

// UserService owns registration and the staff review workflow. Mutating
// methods run under one mutex so their check-then-write sequences cannot
// interleave.
type UserService struct {
	mu sync.Mutex

	userRepo     repository.UserRepository
	hospitalRepo repository.HospitalRepository
	auditRepo    repository.AuditRepository
}

func NewUserService(
	userRepo repository.UserRepository,
	hospitalRepo repository.HospitalRepository,
	auditRepo repository.AuditRepository,
) *UserService {
	return &UserService{
		userRepo:     userRepo,
		hospitalRepo: hospitalRepo,
		auditRepo:    auditRepo,
	}
}

// RegisterUserRequest carries the registration form. Which optional fields
// are required depends on the role.
type RegisterUserRequest struct {
	Role           string  `json:"role" binding:"required"`
	HospitalID     *string `json:"hospitalId"`
	NIK            *string `json:"nik"`
	NIP            *string `json:"nip"`
	Name           string  `json:"name" binding:"required"`
	Specialization *string `json:"specialization"`
	Gender         string  `json:"gender" binding:"required,oneof=male female"`
	Email          string  `json:"email" binding:"required,email"`
	Phone          string  `json:"phone" binding:"required,min=10,max=13,numeric"`
	BirthPlace     string  `json:"birthPlace" binding:"required"`
	BirthDate      int64   `json:"birthDate" binding:"required"`
	BloodType      string  `json:"bloodType" binding:"required,oneof=A B AB O"`
	BloodRhesus    string  `json:"bloodRhesus" binding:"required,oneof=+ -"`
	Religion       string  `json:"religion" binding:"required"`
	Address        string  `json:"address" binding:"required"`
	SubDistrict    string  `json:"subDistrict" binding:"required"`
	District       string  `json:"district" binding:"required"`
	City           string  `json:"city" binding:"required"`
	Province       string  `json:"province" binding:"required"`
	PostalCode     string  `json:"postalCode" binding:"required,len=5,numeric"`
	Country        string  `json:"country" binding:"required"`
}

// IsRegistered reports whether the principal already has a user profile.
func (s *UserService) IsRegistered(principal string) (bool, error) {
	return s.userRepo.Exists(principal)
}

// Register creates the one user profile a principal may hold. A second call
// from the same principal is always rejected. Patients and the owner start
// verified; staff must be approved through ReviewUser before they can act.
func (s *UserService) Register(principal string, req *RegisterUserRequest) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.userRepo.Exists(principal)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.BadRequest("user is already registered")
	}

	role := models.Role(req.Role)
	if !models.ValidRole(role) {
		return nil, apperr.BadRequest("invalid role")
	}

	user := &models.User{
		ID:          principal,
		Role:        role,
		Name:        req.Name,
		Gender:      req.Gender,
		Email:       req.Email,
		Phone:       req.Phone,
		BirthPlace:  req.BirthPlace,
		BirthDate:   req.BirthDate,
		BloodType:   req.BloodType,
		BloodRhesus: req.BloodRhesus,
		Religion:    req.Religion,
		Address:     req.Address,
		SubDistrict: req.SubDistrict,
		District:    req.District,
		City:        req.City,
		Province:    req.Province,
		PostalCode:  req.PostalCode,
		Country:     req.Country,
	}

	switch {
	case role == models.RolePatient:
		if req.NIK == nil || len(*req.NIK) != 16 || !digitsOnly.MatchString(*req.NIK) {
			return nil, apperr.BadRequest("nik must be a 16 digit number")
		}
		user.NIK = req.NIK
	case role.IsStaff():
		if req.NIP == nil || len(*req.NIP) != 18 || !digitsOnly.MatchString(*req.NIP) {
			return nil, apperr.BadRequest("nip must be an 18 digit number")
		}
		user.NIP = req.NIP
	}

	if role.IsStaff() {
		if req.HospitalID == nil {
			return nil, apperr.BadRequest("hospital affiliation is required for this role")
		}
		if _, err := s.hospitalRepo.Get(*req.HospitalID); err != nil {
			return nil, err
		}
		user.HospitalID = req.HospitalID
	} else if req.HospitalID != nil {
		return nil, apperr.BadRequest("hospital affiliation is not allowed for this role")
	}

	if role == models.RoleDoctor {
		if req.Specialization == nil || *req.Specialization == "" {
			return nil, apperr.BadRequest("specialization is required for doctors")
		}
		user.Specialization = req.Specialization
		user.Schedules = make([]models.Schedule, models.ScheduleDays)
	}

	// Patients and the owner can act immediately; staff wait for approval.
	user.IsVerified = role == models.RolePatient || role == models.RoleOwner

	now := time.Now().UnixNano()
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := s.userRepo.Put(user); err != nil {
		return nil, err
	}

	_ = s.auditRepo.CreateAuditLog(&user.ID, "user_register", fmt.Sprintf("Registered as %s", role))

	return user, nil
}

// GetProfile returns the caller's own user profile.
func (s *UserService) GetProfile(caller *Caller) (*models.User, error) {
	return s.userRepo.Get(caller.ID)
}

// GetUser returns a user by id. Any registered caller may look up a user;
// appointment and record views embed these lookups anyway.
func (s *UserService) GetUser(caller *Caller, id string) (*models.User, error) {
	return s.userRepo.Get(id)
}

// GetAllUsers returns every user, sorted by name (owner and admin only).
func (s *UserService) GetAllUsers(caller *Caller) ([]models.User, error) {
	if err := RequireRole(caller, models.RoleOwner, models.RoleAdmin); err != nil {
		return nil, err
	}
	users, err := s.userRepo.Scan()
	if err != nil {
		return nil, err
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].Name < users[j].Name
	})
	return users, nil
}

// GetUnverifiedUsers lists accounts awaiting review. The owner sees every
// unverified account; an admin sees the doctors and nurses of their own
// hospital.
func (s *UserService) GetUnverifiedUsers(caller *Caller) ([]models.User, error) {
	if err := RequireRole(caller, models.RoleOwner, models.RoleAdmin); err != nil {
		return nil, err
	}
	if caller.Role == models.RoleAdmin {
		if err := RequireVerified(caller); err != nil {
			return nil, err
		}
	}

	users, err := s.userRepo.Scan()
	if err != nil {
		return nil, err
	}

	unverified := make([]models.User, 0)
	for _, user := range users {
		if user.IsVerified {
			continue
		}
		if caller.Role == models.RoleAdmin {
			if user.Role != models.RoleDoctor && user.Role != models.RoleNurse {
				continue
			}
			if user.HospitalID == nil || caller.HospitalID == nil || *user.HospitalID != *caller.HospitalID {
				continue
			}
		}
		unverified = append(unverified, user)
	}
	sort.Slice(unverified, func(i, j int) bool {
		return unverified[i].CreatedAt < unverified[j].CreatedAt
	})
	return unverified, nil
}

// ReviewUser approves or rejects an unverified account. Approval flips the
// verification flag; rejection deletes the account. Admin accounts are
// reviewed by the owner alone and are never deleted.
func (s *UserService) ReviewUser(caller *Caller, id string, approve bool) (*models.User, error) {
	if err := RequireRole(caller, models.RoleOwner, models.RoleAdmin); err != nil {
		return nil, err
	}
	if caller.Role == models.RoleAdmin {
		if err := RequireVerified(caller); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	target, err := s.userRepo.Get(id)
	if err != nil {
		return nil, err
	}
	if target.IsVerified {
		return nil, apperr.BadRequest("user has already been verified")
	}

	if target.Role == models.RoleAdmin && caller.Role != models.RoleOwner {
		return nil, apperr.Forbidden("only the owner can review admin accounts")
	}
	if caller.Role == models.RoleAdmin {
		if target.Role != models.RoleDoctor && target.Role != models.RoleNurse {
			return nil, apperr.Forbidden("admins can only review doctors and nurses")
		}
		if target.HospitalID == nil || caller.HospitalID == nil || *target.HospitalID != *caller.HospitalID {
			return nil, apperr.Forbidden("you can only review staff of your own hospital")
		}
	}

	if !approve {
		if target.Role == models.RoleAdmin {
			return nil, apperr.BadRequest("admin accounts cannot be removed")
		}
		if err := s.userRepo.Delete(target.ID); err != nil {
			return nil, err
		}
		_ = s.auditRepo.CreateAuditLog(&caller.ID, "user_reject", fmt.Sprintf("Rejected %s %s", target.Role, target.ID))
		return nil, nil
	}

	target.IsVerified = true
	target.UpdatedAt = time.Now().UnixNano()
	if err := s.userRepo.Put(target); err != nil {
		return nil, err
	}

	_ = s.auditRepo.CreateAuditLog(&caller.ID, "user_approve", fmt.Sprintf("Approved %s %s", target.Role, target.ID))

	return target, nil
}

// UpdateSchedules replaces the caller's weekly practice schedule (doctors
// only). Exactly one entry per day of the week is required.
func (s *UserService) UpdateSchedules(caller *Caller, schedules []models.Schedule) (*models.User, error) {
	if err := RequireRole(caller, models.RoleDoctor); err != nil {
		return nil, err
	}
	if err := RequireVerified(caller); err != nil {
		return nil, err
	}
	if len(schedules) != models.ScheduleDays {
		return nil, apperr.BadRequest("schedule must contain exactly %d entries", models.ScheduleDays)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.userRepo.Get(caller.ID)
	if err != nil {
		return nil, err
	}

	user.Schedules = schedules
	user.UpdatedAt = time.Now().UnixNano()
	if err := s.userRepo.Put(user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetSpecializationsByHospital lists the distinct specializations of the
// verified doctors practicing at a hospital.
func (s *UserService) GetSpecializationsByHospital(caller *Caller, hospitalID string) ([]string, error) {
	if _, err := s.hospitalRepo.Get(hospitalID); err != nil {
		return nil, err
	}

	users, err := s.userRepo.Scan()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	specializations := make([]string, 0)
	for _, user := range users {
		if !isPracticingDoctorAt(&user, hospitalID) || user.Specialization == nil {
			continue
		}
		if !seen[*user.Specialization] {
			seen[*user.Specialization] = true
			specializations = append(specializations, *user.Specialization)
		}
	}
	sort.Strings(specializations)
	return specializations, nil
}

// GetDoctorsByHospitalAndSpecialization lists the verified doctors of a
// hospital holding the given specialization.
func (s *UserService) GetDoctorsByHospitalAndSpecialization(caller *Caller, hospitalID, specialization string) ([]models.User, error) {
	if _, err := s.hospitalRepo.Get(hospitalID); err != nil {
		return nil, err
	}

	users, err := s.userRepo.Scan()
	if err != nil {
		return nil, err
	}

	doctors := make([]models.User, 0)
	for _, user := range users {
		if !isPracticingDoctorAt(&user, hospitalID) {
			continue
		}
		if user.Specialization == nil || *user.Specialization != specialization {
			continue
		}
		doctors = append(doctors, user)
	}
	sort.Slice(doctors, func(i, j int) bool {
		return doctors[i].Name < doctors[j].Name
	})
	return doctors, nil
}

func isPracticingDoctorAt(user *models.User, hospitalID string) bool {
	return user.Role == models.RoleDoctor && user.IsVerified &&
		user.HospitalID != nil && *user.HospitalID == hospitalID
}
