package models

import "time"

// NurseAssignment records which nurse filled a slot on a staffing request
type NurseAssignment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	RequestID  uint      `gorm:"not null;uniqueIndex:idx_request_nurse" json:"request_id"`
	NurseID    uint      `gorm:"not null;uniqueIndex:idx_request_nurse;index" json:"nurse_id"`
	AssignedBy *uint     `json:"assigned_by,omitempty"`
	AssignedAt time.Time `gorm:"autoCreateTime" json:"assigned_at"`

	// Relationships
	Nurse Nurse `gorm:"foreignKey:NurseID" json:"nurse,omitempty"`
}

// TableName specifies the table name for NurseAssignment model
func (NurseAssignment) TableName() string {
	return "nurse_assignments"
}
