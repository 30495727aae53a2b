package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Mithilesh71320/nextera-code/internal/ctxutil"
	"github.com/Mithilesh71320/nextera-code/internal/models"
	"github.com/Mithilesh71320/nextera-code/internal/repository"
	"github.com/Mithilesh71320/nextera-code/internal/stats"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Nurse list orderings.
const (
	SortLatest     = "latest"
	SortName       = "name"
	SortExperience = "experience"
)

type NurseService struct {
	nurses   NurseStore
	audit    AuditStore
	log      *zap.Logger
	validate *validator.Validate
}

func NewNurseService(nurses NurseStore, audit AuditStore, log *zap.Logger) *NurseService {
	return &NurseService{
		nurses:   nurses,
		audit:    audit,
		log:      log,
		validate: newValidator(),
	}
}

// NurseInput is the registration payload for a nurse
type NurseInput struct {
	FullName   string `json:"full_name" validate:"required,max=255"`
	Email      string `json:"email" validate:"required,email,max=255"`
	Phone      string `json:"phone" validate:"omitempty,phone"`
	Department string `json:"department" validate:"required,max=100"`
	Experience int    `json:"experience" validate:"min=0,max=80"`
}

// NurseFilter narrows the roster view
type NurseFilter struct {
	Department string `form:"department"`
	Query      string `form:"q"`
	Sort       string `form:"sort" validate:"omitempty,oneof=latest name experience"`
}

// NurseListResult is the roster view with its summary cards
type NurseListResult struct {
	Nurses            []models.Nurse `json:"nurses"`
	Shown             int            `json:"shown"`
	ActiveTotal       int            `json:"active_total"`
	Departments       []string       `json:"departments"`
	AverageExperience float64        `json:"average_experience"`
}

// Register creates an active nurse
func (s *NurseService) Register(ctx context.Context, input NurseInput) (*models.Nurse, error) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.Email = strings.TrimSpace(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Department = strings.TrimSpace(input.Department)

	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}

	nurse := &models.Nurse{
		FullName:   input.FullName,
		Email:      input.Email,
		Phone:      input.Phone,
		Department: input.Department,
		Experience: input.Experience,
		IsActive:   true,
	}
	if err := s.nurses.CreateNurse(ctx, nurse); err != nil {
		return nil, storeFailuref("could not add nurse: %w", err)
	}

	details := fmt.Sprintf("Registered nurse: %s (ID: %d, department: %s)", nurse.FullName, nurse.ID, nurse.Department)
	_ = s.audit.CreateAuditLog(ctx, ctxutil.ActorFromContext(ctx), "nurse_create", details)
	s.log.Info("nurse registered", zap.Uint("nurse_id", nurse.ID), zap.String("department", nurse.Department))

	return nurse, nil
}

// Deactivate marks a nurse inactive. Repeating it on an inactive nurse succeeds.
func (s *NurseService) Deactivate(ctx context.Context, id uint) error {
	nurse, err := s.nurses.GetNurseByID(ctx, id)
	if err != nil {
		return storeFailuref("could not deactivate nurse: %w", err)
	}
	if !nurse.IsActive {
		return nil
	}

	if err := s.nurses.DeactivateNurse(ctx, id); err != nil {
		return storeFailuref("could not deactivate nurse: %w", err)
	}

	details := fmt.Sprintf("Deactivated nurse: %s (ID: %d)", nurse.FullName, id)
	_ = s.audit.CreateAuditLog(ctx, ctxutil.ActorFromContext(ctx), "nurse_deactivate", details)
	s.log.Info("nurse deactivated", zap.Uint("nurse_id", id))

	return nil
}

// List returns active nurses filtered and sorted for the roster. The summary covers
// every active nurse, not just the ones shown.
func (s *NurseService) List(ctx context.Context, filter NurseFilter) (*NurseListResult, error) {
	if err := validateStruct(s.validate, filter); err != nil {
		return nil, err
	}

	active, err := s.nurses.ListNurses(ctx, repository.NurseQuery{ActiveOnly: true})
	if err != nil {
		return nil, storeFailuref("unable to load nurses: %w", err)
	}

	shown := filterNurses(active, filter)
	return &NurseListResult{
		Nurses:            shown,
		Shown:             len(shown),
		ActiveTotal:       len(active),
		Departments:       departmentsOf(active),
		AverageExperience: stats.AverageExperience(active),
	}, nil
}

// Departments lists the departments that currently have active nurses
func (s *NurseService) Departments(ctx context.Context) ([]string, error) {
	departments, err := s.nurses.ListDepartments(ctx)
	if err != nil {
		return nil, storeFailuref("unable to load departments: %w", err)
	}
	return departments, nil
}

func filterNurses(nurses []models.Nurse, filter NurseFilter) []models.Nurse {
	q := strings.ToLower(strings.TrimSpace(filter.Query))

	out := make([]models.Nurse, 0, len(nurses))
	for _, n := range nurses {
		if filter.Department != "" && n.Department != filter.Department {
			continue
		}
		if q != "" {
			searchable := strings.ToLower(strings.Join([]string{n.FullName, n.Email, n.Phone, n.Department}, " "))
			if !strings.Contains(searchable, q) {
				continue
			}
		}
		out = append(out, n)
	}

	switch filter.Sort {
	case SortName:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].FullName) < strings.ToLower(out[j].FullName)
		})
	case SortExperience:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Experience > out[j].Experience
		})
	}
	return out
}

func departmentsOf(nurses []models.Nurse) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, n := range nurses {
		if n.Department != "" && !seen[n.Department] {
			seen[n.Department] = true
			out = append(out, n.Department)
		}
	}
	sort.Strings(out)
	return out
}
