package models

import "time"

// RequestStatus is the derived fulfilment state of a staffing request.
type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusCompleted RequestStatus = "completed"
)

// DeriveStatus computes the status implied by the assigned and required counts.
func DeriveStatus(assigned, required int) RequestStatus {
	if assigned >= required {
		return StatusCompleted
	}
	return StatusPending
}

// StaffingRequest represents the staffing_requests table
// Status is denormalized from AssignedNurses/RequiredNurses and rewritten on every assignment
type StaffingRequest struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	HospitalName   string        `gorm:"size:255;not null" json:"hospital_name"`
	ContactPerson  string        `gorm:"size:255" json:"contact_person"`
	ContactPhone   string        `gorm:"size:30" json:"contact_phone"`
	Department     string        `gorm:"size:100;not null;index" json:"department"`
	Shift          string        `gorm:"size:50;not null" json:"shift"`
	DateRequired   time.Time     `gorm:"type:date;not null" json:"date_required"`
	RequiredNurses int           `gorm:"not null" json:"required_nurses"`
	AssignedNurses int           `gorm:"not null;default:0" json:"assigned_nurses"`
	Status         RequestStatus `gorm:"size:20;default:'pending';index" json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
}

// TableName specifies the table name for StaffingRequest model
func (StaffingRequest) TableName() string {
	return "staffing_requests"
}

// EffectiveStatus treats a missing status as pending.
func (r StaffingRequest) EffectiveStatus() RequestStatus {
	if r.Status == "" {
		return StatusPending
	}
	return r.Status
}

// Remaining is the number of nurses still needed, never negative.
func (r StaffingRequest) Remaining() int {
	if left := r.RequiredNurses - r.AssignedNurses; left > 0 {
		return left
	}
	return 0
}
