package service

import (
	"hospital-management-backend/internal/models"
	"hospital-management-backend/internal/repository"
	"hospital-management-backend/pkg/apperr"
)

// Caller is the resolved identity invoking an operation. Every service method
// receives one explicitly; there is no ambient caller state.
type Caller struct {
	ID         string
	Role       models.Role
	HospitalID *string
	Verified   bool
}

// AccessService derives the caller's role and hospital affiliation from the
// registered user behind a principal.
type AccessService struct {
	userRepo repository.UserRepository
}

func NewAccessService(userRepo repository.UserRepository) *AccessService {
	return &AccessService{userRepo: userRepo}
}

// Resolve looks up the principal's registered user and returns the caller
// context. Unregistered principals get a not-found error.
func (s *AccessService) Resolve(principal string) (*Caller, error) {
	user, err := s.userRepo.Get(principal)
	if err != nil {
		return nil, err
	}
	return &Caller{
		ID:         user.ID,
		Role:       user.Role,
		HospitalID: user.HospitalID,
		Verified:   user.IsVerified,
	}, nil
}

// RoleOf returns the principal's role, or an error if unregistered.
func (s *AccessService) RoleOf(principal string) (models.Role, error) {
	caller, err := s.Resolve(principal)
	if err != nil {
		return "", err
	}
	return caller.Role, nil
}

// IsRole reports whether the principal is registered with the given role.
func (s *AccessService) IsRole(principal string, role models.Role) bool {
	caller, err := s.Resolve(principal)
	return err == nil && caller.Role == role
}

// IsVerified reports whether the principal is registered and verified.
func (s *AccessService) IsVerified(principal string) bool {
	caller, err := s.Resolve(principal)
	return err == nil && caller.Verified
}

// RequireRole returns a forbidden error unless the caller holds one of the
// given roles.
func RequireRole(caller *Caller, roles ...models.Role) error {
	for _, role := range roles {
		if caller.Role == role {
			return nil
		}
	}
	return apperr.Forbidden("your role is not allowed to perform this action")
}

// RequireVerified returns a bad-request error unless the caller has passed
// verification.
func RequireVerified(caller *Caller) error {
	if !caller.Verified {
		return apperr.BadRequest("your account has not been verified yet")
	}
	return nil
}
