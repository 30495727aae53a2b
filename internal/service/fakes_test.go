package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Mithilesh71320/nextera-code/internal/models"
	"github.com/Mithilesh71320/nextera-code/internal/repository"
)

// memStore is an in-memory record store with the same compare-and-swap semantics as
// RequestRepository.UpdateAssignment.
type memStore struct {
	mu          sync.Mutex
	nurses      map[uint]models.Nurse
	requests    map[uint]models.StaffingRequest
	assignments []models.NurseAssignment
	audits      []string
	nextID      uint

	// afterRead runs after GetRequestByID has copied the request, outside the lock
	afterRead func()
}

func newMemStore() *memStore {
	return &memStore{
		nurses:   make(map[uint]models.Nurse),
		requests: make(map[uint]models.StaffingRequest),
	}
}

func (m *memStore) CreateNurse(_ context.Context, nurse *models.Nurse) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	nurse.ID = m.nextID
	m.nurses[nurse.ID] = *nurse
	return nil
}

func (m *memStore) GetNurseByID(_ context.Context, id uint) (*models.Nurse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.nurses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &n, nil
}

func (m *memStore) ListNurses(_ context.Context, q repository.NurseQuery) ([]models.Nurse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Nurse{}
	for _, n := range m.nurses {
		if q.ActiveOnly && !n.IsActive {
			continue
		}
		if q.Department != "" && n.Department != q.Department {
			continue
		}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (m *memStore) ListDepartments(ctx context.Context) ([]string, error) {
	nurses, _ := m.ListNurses(ctx, repository.NurseQuery{ActiveOnly: true})
	return departmentsOf(nurses), nil
}

func (m *memStore) DeactivateNurse(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.nurses[id]
	if !ok {
		return repository.ErrNotFound
	}
	n.IsActive = false
	m.nurses[id] = n
	return nil
}

func (m *memStore) CreateRequest(_ context.Context, req *models.StaffingRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	req.ID = m.nextID
	m.requests[req.ID] = *req
	return nil
}

func (m *memStore) GetRequestByID(_ context.Context, id uint) (*models.StaffingRequest, error) {
	m.mu.Lock()
	r, ok := m.requests[id]
	hook := m.afterRead
	m.mu.Unlock()

	if !ok {
		return nil, repository.ErrNotFound
	}
	if hook != nil {
		hook()
	}
	return &r, nil
}

func (m *memStore) ListRequests(_ context.Context, q repository.RequestQuery) ([]models.StaffingRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.StaffingRequest{}
	for _, r := range m.requests {
		if q.Status != "" && r.EffectiveStatus() != q.Status {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (m *memStore) UpdateAssignment(_ context.Context, id uint, expectedAssigned, newAssigned int, status models.RequestStatus, nurseIDs []uint, assignedBy *uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[id]
	if !ok {
		return repository.ErrNotFound
	}
	if r.AssignedNurses != expectedAssigned {
		return repository.ErrConflict
	}
	for _, a := range m.assignments {
		for _, nid := range nurseIDs {
			if a.RequestID == id && a.NurseID == nid {
				return errors.New("UNIQUE constraint failed: nurse_assignments.request_id, nurse_assignments.nurse_id")
			}
		}
	}
	r.AssignedNurses = newAssigned
	r.Status = status
	m.requests[id] = r
	for _, nid := range nurseIDs {
		m.assignments = append(m.assignments, models.NurseAssignment{
			ID:         uint(len(m.assignments) + 1),
			RequestID:  id,
			NurseID:    nid,
			AssignedBy: assignedBy,
			Nurse:      m.nurses[nid],
		})
	}
	return nil
}

func (m *memStore) ListAssignedNurseIDs(_ context.Context, requestID uint) ([]uint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := []uint{}
	for _, a := range m.assignments {
		if a.RequestID == requestID {
			ids = append(ids, a.NurseID)
		}
	}
	return ids, nil
}

func (m *memStore) ListAssignments(_ context.Context, requestID uint) ([]models.NurseAssignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := []models.NurseAssignment{}
	for _, a := range m.assignments {
		if a.RequestID == requestID {
			rows = append(rows, a)
		}
	}
	return rows, nil
}

func (m *memStore) CreateAuditLog(_ context.Context, _ *uint, action string, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.audits = append(m.audits, action)
	return nil
}

func (m *memStore) request(t *testing.T, id uint) models.StaffingRequest {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[id]
	require.True(t, ok, "request %d missing", id)
	return r
}

func (m *memStore) addNurse(t *testing.T, name, dept string, active bool) uint {
	t.Helper()
	n := &models.Nurse{FullName: name, Email: name + "@example.com", Department: dept, IsActive: active}
	require.NoError(t, m.CreateNurse(context.Background(), n))
	if !active {
		require.NoError(t, m.DeactivateNurse(context.Background(), n.ID))
	}
	return n.ID
}

func (m *memStore) addRequest(t *testing.T, dept string, required, assigned int) uint {
	t.Helper()
	r := &models.StaffingRequest{
		HospitalName:   "City General",
		Department:     dept,
		Shift:          "Night",
		RequiredNurses: required,
		AssignedNurses: assigned,
		Status:         models.DeriveStatus(assigned, required),
	}
	require.NoError(t, m.CreateRequest(context.Background(), r))
	return r.ID
}

func newTestAssignmentService(store *memStore, maxAttempts int) *AssignmentService {
	return NewAssignmentService(store, store, store, zap.NewNop(), maxAttempts)
}
