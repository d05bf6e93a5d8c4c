package models

// Prescription is a single prescribed medicine inside a medical record.
type Prescription struct {
	Medicine string `json:"medicine"`
	Dosage   string `json:"dosage"`
	Amount   string `json:"amount"`
	Note     string `json:"note"`
}

// MedicalRecord represents the medical_records table. One record exists per
// confirmed appointment; it starts with every data field absent and is filled
// incrementally by the nurse (vitals) and the doctor (clinical assessment).
// Nil means the field has never been written.
type MedicalRecord struct {
	ID            string `gorm:"primaryKey;size:36" json:"id"`
	PatientID     string `gorm:"size:64;not null;index" json:"patientId"`
	DoctorID      string `gorm:"size:64;not null;index" json:"doctorId"`
	AppointmentID string `gorm:"size:36;not null;uniqueIndex" json:"appointmentId"`
	HospitalID    string `gorm:"size:36;not null;index" json:"hospitalId"`

	// Vital signs, written by the nurse.
	Height        *float64 `json:"height,omitempty"`
	Weight        *float64 `json:"weight,omitempty"`
	BloodPressure *string  `gorm:"size:10" json:"bloodPressure,omitempty"`
	Pulse         *int     `json:"pulse,omitempty"`
	Temperature   *float64 `json:"temperature,omitempty"`
	Respiration   *int     `json:"respiration,omitempty"`

	// Clinical assessment, written by the doctor.
	Subjective *string `gorm:"type:text" json:"subjective,omitempty"`
	Objective  *string `gorm:"type:text" json:"objective,omitempty"`
	Assessment *string `gorm:"type:text" json:"assessment,omitempty"`
	Plan       *string `gorm:"type:text" json:"plan,omitempty"`
	Education  *string `gorm:"type:text" json:"education,omitempty"`

	// Nil means never written; an empty non-nil list counts as written.
	Prescriptions []Prescription `gorm:"serializer:json" json:"prescriptions,omitempty"`

	CreatedAt int64 `gorm:"autoCreateTime:nano" json:"createdAt"`
	UpdatedAt int64 `gorm:"autoUpdateTime:nano" json:"updatedAt"`
}

// TableName specifies the table name for MedicalRecord model
func (MedicalRecord) TableName() string {
	return "medical_records"
}

// HasVitals reports whether any vital-sign field has been written.
func (r *MedicalRecord) HasVitals() bool {
	return r.Height != nil || r.Weight != nil || r.BloodPressure != nil ||
		r.Pulse != nil || r.Temperature != nil || r.Respiration != nil
}

// HasClinical reports whether any clinical field or the prescriptions slot
// has been written.
func (r *MedicalRecord) HasClinical() bool {
	return r.Subjective != nil || r.Objective != nil || r.Assessment != nil ||
		r.Plan != nil || r.Education != nil || r.Prescriptions != nil
}

// IsComplete reports whether every vital and clinical field plus the
// prescriptions slot is populated. Content is not inspected; an empty
// prescriptions list still counts.
func (r *MedicalRecord) IsComplete() bool {
	return r.Height != nil && r.Weight != nil && r.BloodPressure != nil &&
		r.Pulse != nil && r.Temperature != nil && r.Respiration != nil &&
		r.Subjective != nil && r.Objective != nil && r.Assessment != nil &&
		r.Plan != nil && r.Education != nil && r.Prescriptions != nil
}

// MedicalRecordDetail is the read shape returned to clients, embedding the
// related entities by id lookup.
type MedicalRecordDetail struct {
	MedicalRecord
	Hospital    *Hospital    `json:"hospital,omitempty"`
	Patient     *User        `json:"patient,omitempty"`
	Doctor      *User        `json:"doctor,omitempty"`
	Appointment *Appointment `json:"appointment,omitempty"`
}
