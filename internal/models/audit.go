package models

// AuditLog represents the audit_logs table
// Used for security tracking and privileged action logging
type AuditLog struct {
	ID        string  `gorm:"primaryKey;size:36" json:"id"`
	ActorID   *string `gorm:"size:64;index" json:"actorId"`
	Action    string  `gorm:"size:100;not null" json:"action"`
	Details   string  `gorm:"type:text" json:"details"`
	CreatedAt int64   `gorm:"autoCreateTime:nano" json:"createdAt"`
}

// TableName specifies the table name for AuditLog model
func (AuditLog) TableName() string {
	return "audit_logs"
}
