package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Mithilesh71320/nextera-code/internal/metrics"
	"github.com/Mithilesh71320/nextera-code/internal/models"
	"github.com/Mithilesh71320/nextera-code/internal/repository"
	"github.com/Mithilesh71320/nextera-code/internal/stats"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	dateLayout         = "2006-01-02"
	defaultRecentLimit = 5
)

// Status filter values accepted by List.
const (
	StatusFilterAll = "all"
)

type RequestService struct {
	requests RequestStore
	audit    AuditStore
	log      *zap.Logger
	validate *validator.Validate
	now      func() time.Time
}

func NewRequestService(requests RequestStore, audit AuditStore, log *zap.Logger) *RequestService {
	return &RequestService{
		requests: requests,
		audit:    audit,
		log:      log,
		validate: newValidator(),
		now:      time.Now,
	}
}

// RequestInput is the hospital submission payload. Field order is the order in which
// problems are reported.
type RequestInput struct {
	HospitalName   string `json:"hospital_name" validate:"required,max=255"`
	Department     string `json:"department" validate:"required,max=100"`
	Shift          string `json:"shift" validate:"required,max=50"`
	RequiredNurses int    `json:"required_nurses" validate:"min=1,max=200"`
	DateRequired   string `json:"date_required" validate:"required"`
	ContactPerson  string `json:"contact_person" validate:"max=255"`
	ContactPhone   string `json:"contact_phone" validate:"omitempty,phone"`
}

// RequestFilter narrows the request management view
type RequestFilter struct {
	Status string `form:"status" validate:"omitempty,oneof=all pending completed"`
	Query  string `form:"q"`
}

// RequestView is a request with its effective status and derived progress
type RequestView struct {
	models.StaffingRequest
	Remaining         int     `json:"remaining"`
	Progress          float64 `json:"progress"`
	OpenForAssignment bool    `json:"open_for_assignment"`
}

// RequestListResult is the request management view with its summary cards
type RequestListResult struct {
	Requests      []RequestView `json:"requests"`
	Shown         int           `json:"shown"`
	Total         int           `json:"total"`
	Pending       int           `json:"pending"`
	Completed     int           `json:"completed"`
	TotalRequired int           `json:"total_required"`
	TotalAssigned int           `json:"total_assigned"`
}

// NewRequestView normalizes status and derives remaining/progress for display
func NewRequestView(r models.StaffingRequest) RequestView {
	r.Status = r.EffectiveStatus()
	return RequestView{
		StaffingRequest:   r,
		Remaining:         r.Remaining(),
		Progress:          stats.Progress(r),
		OpenForAssignment: r.Status != models.StatusCompleted && r.Remaining() > 0,
	}
}

// Submit validates and stores a hospital staffing request
func (s *RequestService) Submit(ctx context.Context, input RequestInput) (*models.StaffingRequest, error) {
	req, err := s.build(input)
	if err != nil {
		metrics.RequestsSubmitted.WithLabelValues("invalid").Inc()
		return nil, err
	}

	if err := s.requests.CreateRequest(ctx, req); err != nil {
		metrics.RequestsSubmitted.WithLabelValues("store_failure").Inc()
		return nil, storeFailuref("could not submit request: %w", err)
	}
	metrics.RequestsSubmitted.WithLabelValues("accepted").Inc()

	details := fmt.Sprintf("Hospital %s requested %d %s nurse(s) for %s (%s)",
		req.HospitalName, req.RequiredNurses, req.Department, req.DateRequired.Format(dateLayout), req.Shift)
	_ = s.audit.CreateAuditLog(ctx, nil, "request_submit", details)
	s.log.Info("staffing request submitted",
		zap.Uint("request_id", req.ID),
		zap.String("hospital", req.HospitalName),
		zap.Int("required_nurses", req.RequiredNurses),
	)

	return req, nil
}

func (s *RequestService) build(input RequestInput) (*models.StaffingRequest, error) {
	input.HospitalName = strings.TrimSpace(input.HospitalName)
	input.ContactPerson = strings.TrimSpace(input.ContactPerson)
	input.ContactPhone = strings.TrimSpace(input.ContactPhone)
	input.Department = strings.TrimSpace(input.Department)
	input.Shift = strings.TrimSpace(input.Shift)
	input.DateRequired = strings.TrimSpace(input.DateRequired)

	// Struct rules run in field order, so the date check slots in after required_nurses
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}

	date, err := time.Parse(dateLayout, input.DateRequired)
	if err != nil {
		return nil, InvalidInput("date_required", "must be a date in YYYY-MM-DD format")
	}
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.Before(today) {
		return nil, InvalidInput("date_required", "cannot be in the past")
	}

	return &models.StaffingRequest{
		HospitalName:   input.HospitalName,
		ContactPerson:  input.ContactPerson,
		ContactPhone:   input.ContactPhone,
		Department:     input.Department,
		Shift:          input.Shift,
		DateRequired:   date,
		RequiredNurses: input.RequiredNurses,
		AssignedNurses: 0,
		Status:         models.StatusPending,
	}, nil
}

// List returns requests newest first, filtered by effective status and search text.
// The summary counts cover every request.
func (s *RequestService) List(ctx context.Context, filter RequestFilter) (*RequestListResult, error) {
	if err := validateStruct(s.validate, filter); err != nil {
		return nil, err
	}

	all, err := s.requests.ListRequests(ctx, repository.RequestQuery{})
	if err != nil {
		return nil, storeFailuref("unable to load requests: %w", err)
	}

	summary := stats.ComputeDashboardStats(nil, all)
	q := strings.ToLower(strings.TrimSpace(filter.Query))

	views := make([]RequestView, 0, len(all))
	for _, r := range all {
		if filter.Status != "" && filter.Status != StatusFilterAll && string(r.EffectiveStatus()) != filter.Status {
			continue
		}
		if q != "" {
			searchable := strings.ToLower(r.HospitalName + " " + r.Department + " " + r.Shift)
			if !strings.Contains(searchable, q) {
				continue
			}
		}
		views = append(views, NewRequestView(r))
	}

	return &RequestListResult{
		Requests:      views,
		Shown:         len(views),
		Total:         len(all),
		Pending:       summary.PendingRequests,
		Completed:     summary.CompletedRequests,
		TotalRequired: summary.TotalRequired,
		TotalAssigned: summary.TotalAssigned,
	}, nil
}

// Get returns one request view
func (s *RequestService) Get(ctx context.Context, id uint) (*RequestView, error) {
	req, err := s.requests.GetRequestByID(ctx, id)
	if err != nil {
		return nil, storeFailuref("unable to load request: %w", err)
	}
	view := NewRequestView(*req)
	return &view, nil
}

// Recent returns the newest requests, five unless limit says otherwise
func (s *RequestService) Recent(ctx context.Context, limit int) ([]RequestView, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	requests, err := s.requests.ListRequests(ctx, repository.RequestQuery{Limit: limit})
	if err != nil {
		return nil, storeFailuref("unable to load recent requests: %w", err)
	}
	views := make([]RequestView, 0, len(requests))
	for _, r := range requests {
		views = append(views, NewRequestView(r))
	}
	return views, nil
}
