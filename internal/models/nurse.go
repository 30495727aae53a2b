package models

import "time"

// Nurse represents the nurses table
// A nurse is never hard-deleted; deactivation flips IsActive to false
type Nurse struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FullName   string    `gorm:"size:255;not null" json:"full_name"`
	Email      string    `gorm:"size:255;not null;index" json:"email"`
	Phone      string    `gorm:"size:30" json:"phone"`
	Department string    `gorm:"size:100;not null;index" json:"department"`
	Experience int       `gorm:"not null;default:0" json:"experience"`
	IsActive   bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for Nurse model
func (Nurse) TableName() string {
	return "nurses"
}
