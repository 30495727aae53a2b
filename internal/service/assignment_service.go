package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Mithilesh71320/nextera-code/internal/ctxutil"
	"github.com/Mithilesh71320/nextera-code/internal/metrics"
	"github.com/Mithilesh71320/nextera-code/internal/models"
	"github.com/Mithilesh71320/nextera-code/internal/repository"

	"go.uber.org/zap"
)

const defaultMaxAttempts = 3

// errConcurrentUpdate is reported once every compare-and-swap attempt lost to another writer.
var errConcurrentUpdate = errors.New("staffing request was modified concurrently, please retry")

type AssignmentService struct {
	requests    RequestStore
	nurses      NurseStore
	audit       AuditStore
	log         *zap.Logger
	maxAttempts int
}

func NewAssignmentService(
	requests RequestStore,
	nurses NurseStore,
	audit AuditStore,
	log *zap.Logger,
	maxAttempts int,
) *AssignmentService {
	if maxAttempts < 1 {
		maxAttempts = defaultMaxAttempts
	}
	return &AssignmentService{
		requests:    requests,
		nurses:      nurses,
		audit:       audit,
		log:         log,
		maxAttempts: maxAttempts,
	}
}

// AssignmentResult is the state of the request after a successful assignment.
type AssignmentResult struct {
	RequestID        uint                 `json:"request_id"`
	Assigned         int                  `json:"assigned"`
	NewAssignedCount int                  `json:"new_assigned_count"`
	RequiredCount    int                  `json:"required_count"`
	NewStatus        models.RequestStatus `json:"new_status"`
}

// Assign places the selected nurses on a staffing request.
//
// Duplicate IDs count once. The selection must fit in the remaining capacity of a fresh
// read of the request, and the write only lands if the assigned count is still the value
// that was read; on conflict the request is re-read and the checks run again.
func (s *AssignmentService) Assign(ctx context.Context, requestID uint, nurseIDs []uint) (*AssignmentResult, error) {
	start := time.Now()
	result, err := s.assign(ctx, requestID, nurseIDs)
	metrics.AssignmentDuration.Observe(time.Since(start).Seconds())
	metrics.AssignmentsTotal.WithLabelValues(outcomeOf(err)).Inc()

	if err != nil {
		s.log.Warn("assignment rejected",
			zap.Uint("request_id", requestID),
			zap.Int("selected", len(nurseIDs)),
			zap.Error(err),
		)
		return nil, err
	}

	metrics.NursesAssigned.Add(float64(result.Assigned))
	s.log.Info("nurses assigned",
		zap.Uint("request_id", requestID),
		zap.Int("assigned", result.Assigned),
		zap.Int("assigned_total", result.NewAssignedCount),
		zap.String("status", string(result.NewStatus)),
	)
	return result, nil
}

func (s *AssignmentService) assign(ctx context.Context, requestID uint, nurseIDs []uint) (*AssignmentResult, error) {
	selected := distinctIDs(nurseIDs)
	if len(selected) == 0 {
		return nil, NoSelection()
	}
	actor := ctxutil.ActorFromContext(ctx)

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		req, err := s.loadRequest(ctx, requestID)
		if err != nil {
			return nil, err
		}

		remaining := req.Remaining()
		if len(selected) > remaining {
			return nil, CapacityExceeded(remaining)
		}

		if err := s.checkEligible(ctx, req, selected); err != nil {
			return nil, err
		}

		newAssigned := req.AssignedNurses + len(selected)
		status := models.DeriveStatus(newAssigned, req.RequiredNurses)

		err = s.requests.UpdateAssignment(ctx, req.ID, req.AssignedNurses, newAssigned, status, selected, actor)
		if errors.Is(err, repository.ErrConflict) {
			metrics.AssignmentConflicts.Inc()
			s.log.Debug("assignment conflict, retrying",
				zap.Uint("request_id", requestID),
				zap.Int("attempt", attempt),
			)
			continue
		}
		if err != nil {
			return nil, storeFailuref("failed to assign nurses: %w", err)
		}

		details := fmt.Sprintf("Assigned %d nurse(s) %v to request ID %d (%d/%d, %s)",
			len(selected), selected, req.ID, newAssigned, req.RequiredNurses, status)
		_ = s.audit.CreateAuditLog(ctx, actor, "request_assign", details)

		return &AssignmentResult{
			RequestID:        req.ID,
			Assigned:         len(selected),
			NewAssignedCount: newAssigned,
			RequiredCount:    req.RequiredNurses,
			NewStatus:        status,
		}, nil
	}

	return nil, StoreFailure(errConcurrentUpdate)
}

// checkEligible rejects nurses that are not active candidates for the request or are
// already placed on it.
func (s *AssignmentService) checkEligible(ctx context.Context, req *models.StaffingRequest, selected []uint) error {
	candidates, err := s.nurses.ListNurses(ctx, repository.NurseQuery{
		ActiveOnly: true,
		Department: req.Department,
	})
	if err != nil {
		return storeFailuref("failed to load candidate nurses: %w", err)
	}
	eligible := make(map[uint]bool, len(candidates))
	for _, n := range candidates {
		eligible[n.ID] = true
	}

	assigned, err := s.requests.ListAssignedNurseIDs(ctx, req.ID)
	if err != nil {
		return storeFailuref("failed to load current assignments: %w", err)
	}
	already := make(map[uint]bool, len(assigned))
	for _, id := range assigned {
		already[id] = true
	}

	for _, id := range selected {
		if already[id] {
			return InvalidInput("nurse_ids", fmt.Sprintf("nurse %d is already assigned to this request", id))
		}
		if !eligible[id] {
			return InvalidInput("nurse_ids", fmt.Sprintf("nurse %d is not an active %s nurse", id, req.Department))
		}
	}
	return nil
}

// ListCandidates returns active nurses of the request's department that are not yet
// placed on it. Nothing is reserved; concurrent callers may see the same nurses.
func (s *AssignmentService) ListCandidates(ctx context.Context, requestID uint) ([]models.Nurse, error) {
	req, err := s.loadRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	nurses, err := s.nurses.ListNurses(ctx, repository.NurseQuery{
		ActiveOnly: true,
		Department: req.Department,
	})
	if err != nil {
		return nil, storeFailuref("failed to fetch matching nurses: %w", err)
	}

	assigned, err := s.requests.ListAssignedNurseIDs(ctx, requestID)
	if err != nil {
		return nil, storeFailuref("failed to load current assignments: %w", err)
	}
	if len(assigned) == 0 {
		return nurses, nil
	}

	skip := make(map[uint]bool, len(assigned))
	for _, id := range assigned {
		skip[id] = true
	}
	candidates := make([]models.Nurse, 0, len(nurses))
	for _, n := range nurses {
		if !skip[n.ID] {
			candidates = append(candidates, n)
		}
	}
	return candidates, nil
}

// ListAssignments returns who has been placed on a request.
func (s *AssignmentService) ListAssignments(ctx context.Context, requestID uint) ([]models.NurseAssignment, error) {
	if _, err := s.loadRequest(ctx, requestID); err != nil {
		return nil, err
	}
	rows, err := s.requests.ListAssignments(ctx, requestID)
	if err != nil {
		return nil, storeFailuref("failed to load assignments: %w", err)
	}
	return rows, nil
}

func (s *AssignmentService) loadRequest(ctx context.Context, id uint) (*models.StaffingRequest, error) {
	req, err := s.requests.GetRequestByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, storeFailuref("staffing request %w", err)
		}
		return nil, storeFailuref("failed to load staffing request: %w", err)
	}
	return req, nil
}

func distinctIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrNoSelection):
		return metrics.OutcomeNoSelection
	case errors.Is(err, ErrCapacityExceeded):
		return metrics.OutcomeCapacityExceeded
	case errors.Is(err, ErrInvalidInput):
		return metrics.OutcomeInvalidInput
	default:
		return metrics.OutcomeStoreFailure
	}
}
