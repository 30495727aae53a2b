package service

import (
	"context"

	"github.com/Mithilesh71320/nextera-code/internal/models"
	"github.com/Mithilesh71320/nextera-code/internal/repository"
)

// NurseStore is the nurse collection of the record store.
type NurseStore interface {
	CreateNurse(ctx context.Context, nurse *models.Nurse) error
	GetNurseByID(ctx context.Context, id uint) (*models.Nurse, error)
	ListNurses(ctx context.Context, q repository.NurseQuery) ([]models.Nurse, error)
	ListDepartments(ctx context.Context) ([]string, error)
	DeactivateNurse(ctx context.Context, id uint) error
}

// RequestStore is the staffing request collection of the record store.
type RequestStore interface {
	CreateRequest(ctx context.Context, req *models.StaffingRequest) error
	GetRequestByID(ctx context.Context, id uint) (*models.StaffingRequest, error)
	ListRequests(ctx context.Context, q repository.RequestQuery) ([]models.StaffingRequest, error)
	UpdateAssignment(ctx context.Context, id uint, expectedAssigned, newAssigned int, status models.RequestStatus, nurseIDs []uint, assignedBy *uint) error
	ListAssignedNurseIDs(ctx context.Context, requestID uint) ([]uint, error)
	ListAssignments(ctx context.Context, requestID uint) ([]models.NurseAssignment, error)
}

// AuditStore records admin actions.
type AuditStore interface {
	CreateAuditLog(ctx context.Context, userID *uint, action string, details string) error
}

var (
	_ NurseStore   = (*repository.NurseRepository)(nil)
	_ RequestStore = (*repository.RequestRepository)(nil)
	_ AuditStore   = (*repository.AuditRepository)(nil)
)
