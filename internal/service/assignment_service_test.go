package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Mithilesh71320/nextera-code/internal/ctxutil"
	"github.com/Mithilesh71320/nextera-code/internal/models"
	"github.com/Mithilesh71320/nextera-code/internal/repository"
)

func requireKind(t *testing.T, err error, kind ErrorKind) *AssignmentError {
	t.Helper()
	var ae *AssignmentError
	require.ErrorAs(t, err, &ae)
	require.Equal(t, kind, ae.Kind, "unexpected error: %v", err)
	return ae
}

func TestAssign_Walkthrough(t *testing.T) {
	store := newMemStore()
	n1 := store.addNurse(t, "alice", "ICU", true)
	n2 := store.addNurse(t, "bola", "ICU", true)
	n3 := store.addNurse(t, "chen", "ICU", true)
	reqID := store.addRequest(t, "ICU", 2, 0)
	svc := newTestAssignmentService(store, 3)
	ctx := ctxutil.WithActorID(context.Background(), 42)

	res, err := svc.Assign(ctx, reqID, []uint{n1})
	require.NoError(t, err)
	assert.Equal(t, 1, res.NewAssignedCount)
	assert.Equal(t, models.StatusPending, res.NewStatus)

	_, err = svc.Assign(ctx, reqID, []uint{n2, n3})
	ae := requireKind(t, err, KindCapacityExceeded)
	assert.Equal(t, 1, ae.Remaining)
	assert.Equal(t, "you can assign only 1 nurse(s) for this request", ae.Message)

	res, err = svc.Assign(ctx, reqID, []uint{n2})
	require.NoError(t, err)
	assert.Equal(t, 2, res.NewAssignedCount)
	assert.Equal(t, 2, res.RequiredCount)
	assert.Equal(t, models.StatusCompleted, res.NewStatus)

	_, err = svc.Assign(ctx, reqID, []uint{n3})
	ae = requireKind(t, err, KindCapacityExceeded)
	assert.Equal(t, 0, ae.Remaining)

	r := store.request(t, reqID)
	assert.Equal(t, 2, r.AssignedNurses)
	assert.Equal(t, models.StatusCompleted, r.Status)

	rows, err := svc.ListAssignments(ctx, reqID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.NotNil(t, rows[0].AssignedBy)
	assert.Equal(t, uint(42), *rows[0].AssignedBy)
	assert.Equal(t, []string{"request_assign", "request_assign"}, store.audits)
}

func TestAssign_EmptySelection(t *testing.T) {
	store := newMemStore()
	reqID := store.addRequest(t, "ICU", 2, 0)
	svc := newTestAssignmentService(store, 3)

	_, err := svc.Assign(context.Background(), reqID, nil)
	requireKind(t, err, KindNoSelection)
	assert.True(t, errors.Is(err, ErrNoSelection))

	assert.Equal(t, 0, store.request(t, reqID).AssignedNurses)
}

func TestAssign_DuplicateIDsCountOnce(t *testing.T) {
	store := newMemStore()
	n1 := store.addNurse(t, "alice", "ER", true)
	reqID := store.addRequest(t, "ER", 1, 0)
	svc := newTestAssignmentService(store, 3)

	res, err := svc.Assign(context.Background(), reqID, []uint{n1, n1, n1})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Assigned)
	assert.Equal(t, models.StatusCompleted, res.NewStatus)
}

func TestAssign_RejectsIneligibleNurses(t *testing.T) {
	store := newMemStore()
	icu := store.addNurse(t, "alice", "ICU", true)
	er := store.addNurse(t, "bola", "ER", true)
	inactive := store.addNurse(t, "chen", "ICU", false)
	reqID := store.addRequest(t, "ICU", 3, 0)
	svc := newTestAssignmentService(store, 3)
	ctx := context.Background()

	tests := []struct {
		name     string
		selected []uint
	}{
		{"other department", []uint{icu, er}},
		{"inactive nurse", []uint{inactive}},
		{"unknown nurse", []uint{999}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Assign(ctx, reqID, tt.selected)
			ae := requireKind(t, err, KindInvalidInput)
			assert.Equal(t, "nurse_ids", ae.Field)
			assert.Equal(t, 0, store.request(t, reqID).AssignedNurses)
		})
	}

	_, err := svc.Assign(ctx, reqID, []uint{icu})
	require.NoError(t, err)
	_, err = svc.Assign(ctx, reqID, []uint{icu})
	ae := requireKind(t, err, KindInvalidInput)
	assert.Contains(t, ae.Reason, "already assigned")
	assert.Equal(t, 1, store.request(t, reqID).AssignedNurses)
}

func TestAssign_UnknownRequest(t *testing.T) {
	store := newMemStore()
	svc := newTestAssignmentService(store, 3)

	_, err := svc.Assign(context.Background(), 404, []uint{1})
	ae := requireKind(t, err, KindStoreFailure)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "staffing request not found", ae.Message)
}

// Two admins read the same request before either writes.
func TestAssign_ConcurrentSelectionsCannotOverfill(t *testing.T) {
	tests := []struct {
		name          string
		required      int
		wantAssigned  int
		wantRejected  bool
		wantRemaining int
	}{
		{name: "second admin sees reduced capacity", required: 3, wantAssigned: 2, wantRejected: true, wantRemaining: 1},
		{name: "both fit after retry", required: 4, wantAssigned: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			a1 := store.addNurse(t, "a1", "ICU", true)
			a2 := store.addNurse(t, "a2", "ICU", true)
			b1 := store.addNurse(t, "b1", "ICU", true)
			b2 := store.addNurse(t, "b2", "ICU", true)
			reqID := store.addRequest(t, "ICU", tt.required, 0)
			svc := newTestAssignmentService(store, 3)

			var reads atomic.Int32
			var barrier sync.WaitGroup
			barrier.Add(2)
			store.afterRead = func() {
				if reads.Add(1) <= 2 {
					barrier.Done()
					barrier.Wait()
				}
			}

			selections := [][]uint{{a1, a2}, {b1, b2}}
			errs := make([]error, len(selections))
			var wg sync.WaitGroup
			for i, sel := range selections {
				i, sel := i, sel
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, errs[i] = svc.Assign(context.Background(), reqID, sel)
				}()
			}
			wg.Wait()

			r := store.request(t, reqID)
			assert.Equal(t, tt.wantAssigned, r.AssignedNurses)
			assert.LessOrEqual(t, r.AssignedNurses, r.RequiredNurses)
			assert.Equal(t, models.DeriveStatus(r.AssignedNurses, r.RequiredNurses), r.Status)

			var failures []error
			for _, err := range errs {
				if err != nil {
					failures = append(failures, err)
				}
			}
			if !tt.wantRejected {
				assert.Empty(t, failures)
				return
			}
			require.Len(t, failures, 1)
			ae := requireKind(t, failures[0], KindCapacityExceeded)
			assert.Equal(t, tt.wantRemaining, ae.Remaining)
		})
	}
}

func TestAssign_ConcurrentStress(t *testing.T) {
	const workers = 12
	store := newMemStore()
	ids := make([]uint, workers)
	for i := range ids {
		ids[i] = store.addNurse(t, "nurse", "ER", true)
	}
	reqID := store.addRequest(t, "ER", 5, 0)
	svc := newTestAssignmentService(store, workers+1)

	var successes atomic.Int32
	var wg sync.WaitGroup
	for _, id := range ids {
		id := id
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Assign(context.Background(), reqID, []uint{id})
			if err == nil {
				successes.Add(1)
				return
			}
			assert.True(t, errors.Is(err, ErrCapacityExceeded), "unexpected error: %v", err)
		}()
	}
	wg.Wait()

	r := store.request(t, reqID)
	assert.Equal(t, 5, r.AssignedNurses)
	assert.Equal(t, int32(5), successes.Load())
	assert.Equal(t, models.StatusCompleted, r.Status)

	assigned, err := store.ListAssignedNurseIDs(context.Background(), reqID)
	require.NoError(t, err)
	assert.Len(t, assigned, 5)
}

func TestListCandidates_ExcludesAssigned(t *testing.T) {
	store := newMemStore()
	n1 := store.addNurse(t, "alice", "ICU", true)
	n2 := store.addNurse(t, "bola", "ICU", true)
	store.addNurse(t, "chen", "ER", true)
	store.addNurse(t, "dede", "ICU", false)
	reqID := store.addRequest(t, "ICU", 3, 0)
	svc := newTestAssignmentService(store, 3)
	ctx := context.Background()

	candidates, err := svc.ListCandidates(ctx, reqID)
	require.NoError(t, err)
	assert.Len(t, candidates, 2)

	_, err = svc.Assign(ctx, reqID, []uint{n1})
	require.NoError(t, err)

	candidates, err = svc.ListCandidates(ctx, reqID)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, n2, candidates[0].ID)
}

type mockRequestStore struct {
	mock.Mock
}

func (m *mockRequestStore) CreateRequest(ctx context.Context, req *models.StaffingRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockRequestStore) GetRequestByID(ctx context.Context, id uint) (*models.StaffingRequest, error) {
	args := m.Called(ctx, id)
	req, _ := args.Get(0).(*models.StaffingRequest)
	return req, args.Error(1)
}

func (m *mockRequestStore) ListRequests(ctx context.Context, q repository.RequestQuery) ([]models.StaffingRequest, error) {
	args := m.Called(ctx, q)
	reqs, _ := args.Get(0).([]models.StaffingRequest)
	return reqs, args.Error(1)
}

func (m *mockRequestStore) UpdateAssignment(ctx context.Context, id uint, expectedAssigned, newAssigned int, status models.RequestStatus, nurseIDs []uint, assignedBy *uint) error {
	return m.Called(ctx, id, expectedAssigned, newAssigned, status, nurseIDs, assignedBy).Error(0)
}

func (m *mockRequestStore) ListAssignedNurseIDs(ctx context.Context, requestID uint) ([]uint, error) {
	args := m.Called(ctx, requestID)
	ids, _ := args.Get(0).([]uint)
	return ids, args.Error(1)
}

func (m *mockRequestStore) ListAssignments(ctx context.Context, requestID uint) ([]models.NurseAssignment, error) {
	args := m.Called(ctx, requestID)
	rows, _ := args.Get(0).([]models.NurseAssignment)
	return rows, args.Error(1)
}

func TestAssign_StoreFailures(t *testing.T) {
	nurses := newMemStore()
	n1 := nurses.addNurse(t, "alice", "ICU", true)
	pending := &models.StaffingRequest{ID: 9, Department: "ICU", RequiredNurses: 2, Status: models.StatusPending}

	t.Run("read failure keeps store message", func(t *testing.T) {
		requests := new(mockRequestStore)
		requests.On("GetRequestByID", mock.Anything, uint(9)).Return(nil, errors.New("connection refused"))
		svc := NewAssignmentService(requests, nurses, nurses, zap.NewNop(), 3)

		_, err := svc.Assign(context.Background(), 9, []uint{n1})
		ae := requireKind(t, err, KindStoreFailure)
		assert.Contains(t, ae.Message, "connection refused")
		requests.AssertNotCalled(t, "UpdateAssignment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("write failure", func(t *testing.T) {
		requests := new(mockRequestStore)
		requests.On("GetRequestByID", mock.Anything, uint(9)).Return(pending, nil)
		requests.On("ListAssignedNurseIDs", mock.Anything, uint(9)).Return([]uint{}, nil)
		requests.On("UpdateAssignment", mock.Anything, uint(9), 0, 1, models.StatusPending, []uint{n1}, (*uint)(nil)).
			Return(errors.New("deadlock detected"))
		svc := NewAssignmentService(requests, nurses, nurses, zap.NewNop(), 3)

		_, err := svc.Assign(context.Background(), 9, []uint{n1})
		ae := requireKind(t, err, KindStoreFailure)
		assert.Contains(t, ae.Message, "deadlock detected")
		requests.AssertNumberOfCalls(t, "UpdateAssignment", 1)
	})

	t.Run("conflicts exhaust attempts", func(t *testing.T) {
		requests := new(mockRequestStore)
		requests.On("GetRequestByID", mock.Anything, uint(9)).Return(pending, nil)
		requests.On("ListAssignedNurseIDs", mock.Anything, uint(9)).Return([]uint{}, nil)
		requests.On("UpdateAssignment", mock.Anything, uint(9), 0, 1, models.StatusPending, []uint{n1}, (*uint)(nil)).
			Return(repository.ErrConflict)
		svc := NewAssignmentService(requests, nurses, nurses, zap.NewNop(), 3)

		_, err := svc.Assign(context.Background(), 9, []uint{n1})
		requireKind(t, err, KindStoreFailure)
		assert.ErrorIs(t, err, errConcurrentUpdate)
		requests.AssertNumberOfCalls(t, "UpdateAssignment", 3)
		requests.AssertNumberOfCalls(t, "GetRequestByID", 3)
	})
}

func TestOutcomeOf(t *testing.T) {
	assert.Equal(t, "success", outcomeOf(nil))
	assert.Equal(t, "no_selection", outcomeOf(NoSelection()))
	assert.Equal(t, "capacity_exceeded", outcomeOf(CapacityExceeded(0)))
	assert.Equal(t, "invalid_input", outcomeOf(InvalidInput("nurse_ids", "bad")))
	assert.Equal(t, "store_failure", outcomeOf(StoreFailure(errors.New("x"))))
}
