package repository

import (
	"context"
	"errors"

	"github.com/Mithilesh71320/nextera-code/internal/models"

	"gorm.io/gorm"
)

// pendingClause matches pending requests including rows with no status set
const pendingClause = "(status = ? OR status IS NULL OR status = '')"

// RequestQuery narrows a staffing request listing. An empty Status lists every request.
type RequestQuery struct {
	Status models.RequestStatus
	Limit  int
}

type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepo(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// CreateRequest inserts a staffing request
func (r *RequestRepository) CreateRequest(ctx context.Context, req *models.StaffingRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

// GetRequestByID retrieves a staffing request by ID
func (r *RequestRepository) GetRequestByID(ctx context.Context, id uint) (*models.StaffingRequest, error) {
	var req models.StaffingRequest
	err := r.db.WithContext(ctx).First(&req, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// ListRequests retrieves staffing requests newest first
func (r *RequestRepository) ListRequests(ctx context.Context, q RequestQuery) ([]models.StaffingRequest, error) {
	var requests []models.StaffingRequest
	tx := r.db.WithContext(ctx).Model(&models.StaffingRequest{})
	tx = whereStatus(tx, q.Status)
	tx = tx.Order("created_at DESC").Order("id DESC")
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	err := tx.Find(&requests).Error
	return requests, err
}

// CountRequests counts staffing requests with the given effective status
func (r *RequestRepository) CountRequests(ctx context.Context, status models.RequestStatus) (int64, error) {
	var count int64
	tx := whereStatus(r.db.WithContext(ctx).Model(&models.StaffingRequest{}), status)
	err := tx.Count(&count).Error
	return count, err
}

func whereStatus(tx *gorm.DB, status models.RequestStatus) *gorm.DB {
	switch status {
	case "":
		return tx
	case models.StatusPending:
		return tx.Where(pendingClause, models.StatusPending)
	default:
		return tx.Where("status = ?", status)
	}
}

// UpdateAssignment moves a request from expectedAssigned to newAssigned and records the
// placed nurses in one transaction. The update only applies when the stored count still
// equals expectedAssigned; otherwise ErrConflict is returned and nothing is written.
func (r *RequestRepository) UpdateAssignment(
	ctx context.Context,
	id uint,
	expectedAssigned int,
	newAssigned int,
	status models.RequestStatus,
	nurseIDs []uint,
	assignedBy *uint,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.StaffingRequest{}).
			Where("id = ? AND assigned_nurses = ?", id, expectedAssigned).
			Updates(map[string]interface{}{
				"assigned_nurses": newAssigned,
				"status":          status,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.StaffingRequest{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrNotFound
			}
			return ErrConflict
		}

		if len(nurseIDs) == 0 {
			return nil
		}
		rows := make([]models.NurseAssignment, 0, len(nurseIDs))
		for _, nurseID := range nurseIDs {
			rows = append(rows, models.NurseAssignment{
				RequestID:  id,
				NurseID:    nurseID,
				AssignedBy: assignedBy,
			})
		}
		return tx.Create(&rows).Error
	})
}

// ListAssignedNurseIDs returns the IDs of nurses already placed on a request
func (r *RequestRepository) ListAssignedNurseIDs(ctx context.Context, requestID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.NurseAssignment{}).
		Where("request_id = ?", requestID).
		Order("id ASC").
		Pluck("nurse_id", &ids).Error
	return ids, err
}

// ListAssignments returns the assignment rows of a request with the nurse preloaded
func (r *RequestRepository) ListAssignments(ctx context.Context, requestID uint) ([]models.NurseAssignment, error) {
	var rows []models.NurseAssignment
	err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Preload("Nurse").
		Order("assigned_at ASC").Order("id ASC").
		Find(&rows).Error
	return rows, err
}
