package service

import (
	"context"
	"time"

	"github.com/Mithilesh71320/nextera-code/internal/models"
	"github.com/Mithilesh71320/nextera-code/internal/repository"
	"github.com/Mithilesh71320/nextera-code/internal/stats"
)

type DashboardService struct {
	nurses   NurseStore
	requests RequestStore
	now      func() time.Time
}

func NewDashboardService(nurses NurseStore, requests RequestStore) *DashboardService {
	return &DashboardService{
		nurses:   nurses,
		requests: requests,
		now:      time.Now,
	}
}

// DashboardOverview is everything the admin overview page shows
type DashboardOverview struct {
	Stats         stats.DashboardStats    `json:"stats"`
	Departments   []stats.DepartmentCount `json:"departments"`
	TopDepartment *stats.DepartmentCount  `json:"top_department"`
	Recent        []RequestView           `json:"recent"`
	OpenDemand    int                     `json:"open_demand"`
	GeneratedAt   time.Time               `json:"generated_at"`
}

// Snapshot reads both collections once
func (s *DashboardService) Snapshot(ctx context.Context) ([]models.Nurse, []models.StaffingRequest, error) {
	nurses, err := s.nurses.ListNurses(ctx, repository.NurseQuery{})
	if err != nil {
		return nil, nil, storeFailuref("unable to load dashboard data: %w", err)
	}
	requests, err := s.requests.ListRequests(ctx, repository.RequestQuery{})
	if err != nil {
		return nil, nil, storeFailuref("unable to load dashboard data: %w", err)
	}
	return nurses, requests, nil
}

// Overview aggregates a fresh snapshot; nothing is cached between calls
func (s *DashboardService) Overview(ctx context.Context) (*DashboardOverview, error) {
	nurses, requests, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	// Requests arrive newest first
	recent := requests
	if len(recent) > defaultRecentLimit {
		recent = recent[:defaultRecentLimit]
	}
	views := make([]RequestView, 0, len(recent))
	for _, r := range recent {
		views = append(views, NewRequestView(r))
	}

	overview := &DashboardOverview{
		Stats:       stats.ComputeDashboardStats(nurses, requests),
		Departments: stats.GroupNursesByDepartment(nurses),
		Recent:      views,
		OpenDemand:  stats.OpenDemand(recent),
		GeneratedAt: s.now().UTC(),
	}
	if top, ok := stats.TopDepartment(nurses); ok {
		overview.TopDepartment = &top
	}
	return overview, nil
}
