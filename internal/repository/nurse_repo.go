package repository

import (
	"context"
	"errors"

	"github.com/Mithilesh71320/nextera-code/internal/models"

	"gorm.io/gorm"
)

// NurseQuery narrows a nurse listing. Zero values mean "no filter".
type NurseQuery struct {
	ActiveOnly bool
	Department string
	OrderBy    string
	Limit      int
}

type NurseRepository struct {
	db *gorm.DB
}

func NewNurseRepo(db *gorm.DB) *NurseRepository {
	return &NurseRepository{db: db}
}

// CreateNurse inserts a nurse
func (r *NurseRepository) CreateNurse(ctx context.Context, nurse *models.Nurse) error {
	return r.db.WithContext(ctx).Create(nurse).Error
}

// GetNurseByID retrieves a nurse by ID regardless of active state
func (r *NurseRepository) GetNurseByID(ctx context.Context, id uint) (*models.Nurse, error) {
	var nurse models.Nurse
	err := r.db.WithContext(ctx).First(&nurse, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &nurse, nil
}

// ListNurses retrieves nurses matching the query, newest first unless OrderBy is set
func (r *NurseRepository) ListNurses(ctx context.Context, q NurseQuery) ([]models.Nurse, error) {
	var nurses []models.Nurse
	tx := r.db.WithContext(ctx).Model(&models.Nurse{})
	if q.ActiveOnly {
		tx = tx.Where("is_active = ?", true)
	}
	if q.Department != "" {
		tx = tx.Where("department = ?", q.Department)
	}
	if q.OrderBy != "" {
		tx = tx.Order(q.OrderBy)
	} else {
		tx = tx.Order("created_at DESC").Order("id DESC")
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	err := tx.Find(&nurses).Error
	return nurses, err
}

// CountActiveNurses counts nurses with is_active = true
func (r *NurseRepository) CountActiveNurses(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Nurse{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

// ListDepartments returns the distinct departments of active nurses in alphabetical order
func (r *NurseRepository) ListDepartments(ctx context.Context) ([]string, error) {
	var departments []string
	err := r.db.WithContext(ctx).Model(&models.Nurse{}).
		Where("is_active = ? AND department <> ''", true).
		Distinct().
		Order("department ASC").
		Pluck("department", &departments).Error
	return departments, err
}

// DeactivateNurse soft deletes a nurse by setting is_active to false
// Deactivating an already inactive nurse succeeds; an unknown ID returns ErrNotFound
func (r *NurseRepository) DeactivateNurse(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&models.Nurse{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// MySQL reports zero affected rows when the value is unchanged
		if _, err := r.GetNurseByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
