package models

// Role identifies what a user is allowed to do. It is fixed at registration
// and never changes afterwards.
type Role string

const (
	RoleOwner   Role = "owner"
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RoleNurse   Role = "nurse"
	RolePatient Role = "patient"
)

// ValidRole reports whether r is one of the five known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleDoctor, RoleNurse, RolePatient:
		return true
	}
	return false
}

// IsStaff reports whether the role requires a hospital affiliation and an
// employee id (nip).
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleDoctor || r == RoleNurse
}

// ScheduleDays is the fixed length of a doctor's weekly schedule.
const ScheduleDays = 7

// Schedule is one day of a doctor's weekly practice schedule.
// Times are wall-clock strings in HH:mm format.
type Schedule struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsActive  bool   `json:"isActive"`
}

// User represents the users table. The primary key is the caller principal
// issued by the identity provider, so there is exactly one row per caller.
type User struct {
	ID             string  `gorm:"primaryKey;size:64" json:"id"`
	HospitalID     *string `gorm:"size:36;index" json:"hospitalId,omitempty"`
	Role           Role    `gorm:"size:20;not null" json:"role"`
	NIK            *string `gorm:"column:nik;size:16" json:"nik,omitempty"`
	NIP            *string `gorm:"column:nip;size:18" json:"nip,omitempty"`
	Name           string  `gorm:"size:255;not null" json:"name"`
	Specialization *string `gorm:"size:100" json:"specialization,omitempty"`
	Gender         string  `gorm:"size:10" json:"gender"`
	Email          string  `gorm:"size:255" json:"email"`
	Phone          string  `gorm:"size:13" json:"phone"`
	BirthPlace     string  `gorm:"size:100" json:"birthPlace"`
	BirthDate      int64   `json:"birthDate"`
	BloodType      string  `gorm:"size:2" json:"bloodType"`
	BloodRhesus    string  `gorm:"size:1" json:"bloodRhesus"`
	Religion       string  `gorm:"size:20" json:"religion"`
	Address        string  `gorm:"type:text" json:"address"`
	SubDistrict    string  `gorm:"size:100" json:"subDistrict"`
	District       string  `gorm:"size:100" json:"district"`
	City           string  `gorm:"size:100" json:"city"`
	Province       string  `gorm:"size:100" json:"province"`
	PostalCode     string  `gorm:"size:5" json:"postalCode"`
	Country        string  `gorm:"size:100" json:"country"`

	// Doctors only: fixed 7-day weekly schedule, index 0 = Sunday.
	Schedules []Schedule `gorm:"serializer:json" json:"schedules,omitempty"`

	IsVerified bool  `gorm:"default:false" json:"isVerified"`
	CreatedAt  int64 `gorm:"autoCreateTime:nano" json:"createdAt"`
	UpdatedAt  int64 `gorm:"autoUpdateTime:nano" json:"updatedAt"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}
