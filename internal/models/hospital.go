package models

// Hospital represents the hospitals table
type Hospital struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Address     string `gorm:"type:text" json:"address"`
	SubDistrict string `gorm:"size:100" json:"subDistrict"`
	District    string `gorm:"size:100" json:"district"`
	City        string `gorm:"size:100" json:"city"`
	Province    string `gorm:"size:100" json:"province"`
	PostalCode  string `gorm:"size:5" json:"postalCode"`
	Country     string `gorm:"size:100" json:"country"`
	CreatedAt   int64  `gorm:"autoCreateTime:nano" json:"createdAt"`
	UpdatedAt   int64  `gorm:"autoUpdateTime:nano" json:"updatedAt"`
}

// TableName specifies the table name for Hospital model
func (Hospital) TableName() string {
	return "hospitals"
}
