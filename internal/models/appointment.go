package models

// Appointment represents the appointments table. EndTime is always
// StartTime plus the fixed consultation slot duration, computed at creation.
type Appointment struct {
	ID             string `gorm:"primaryKey;size:36" json:"id"`
	HospitalID     string `gorm:"size:36;not null;index" json:"hospitalId"`
	PatientID      string `gorm:"size:64;not null;index" json:"patientId"`
	DoctorID       string `gorm:"size:64;not null;index" json:"doctorId"`
	Specialization string `gorm:"size:100" json:"specialization"`
	StartTime      int64  `gorm:"not null" json:"startTime"`
	EndTime        int64  `gorm:"not null" json:"endTime"`
	Complaint      string `gorm:"type:text" json:"complaint"`
	IsConfirmed    bool   `gorm:"default:false" json:"isConfirmed"`
	CreatedAt      int64  `gorm:"autoCreateTime:nano" json:"createdAt"`
	UpdatedAt      int64  `gorm:"autoUpdateTime:nano" json:"updatedAt"`
}

// TableName specifies the table name for Appointment model
func (Appointment) TableName() string {
	return "appointments"
}

// AppointmentDetail is the read shape returned to clients. It embeds the
// related entities so the caller never has to chase ids.
type AppointmentDetail struct {
	Appointment
	Hospital *Hospital `json:"hospital,omitempty"`
	Patient  *User     `json:"patient,omitempty"`
	Doctor   *User     `json:"doctor,omitempty"`
}
