// Package stats derives dashboard aggregates from snapshots of the nurse and request
// collections. Every function is pure and tolerates zero-valued fields.
package stats

import (
	"math"
	"sort"

	"github.com/Mithilesh71320/nextera-code/internal/models"
)

// DashboardStats summarizes both collections for the admin overview.
type DashboardStats struct {
	ActiveNurses      int `json:"active_nurses"`
	PendingRequests   int `json:"pending_requests"`
	CompletedRequests int `json:"completed_requests"`
	TotalAssigned     int `json:"total_assigned"`
	TotalRequired     int `json:"total_required"`
	FillRate          int `json:"fill_rate"`
}

// DepartmentCount is the number of active nurses in one department.
type DepartmentCount struct {
	Department string `json:"department"`
	Count      int    `json:"count"`
}

// ComputeDashboardStats aggregates counts, totals and the fill rate.
func ComputeDashboardStats(nurses []models.Nurse, requests []models.StaffingRequest) DashboardStats {
	var s DashboardStats
	for _, n := range nurses {
		if n.IsActive {
			s.ActiveNurses++
		}
	}
	for _, r := range requests {
		switch r.EffectiveStatus() {
		case models.StatusPending:
			s.PendingRequests++
		case models.StatusCompleted:
			s.CompletedRequests++
		}
		s.TotalRequired += max(r.RequiredNurses, 0)
		s.TotalAssigned += max(r.AssignedNurses, 0)
	}
	s.FillRate = FillRate(s.TotalAssigned, s.TotalRequired)
	return s
}

// FillRate is round(100*assigned/required) clamped to [0,100]; 0 when nothing is required.
func FillRate(assigned, required int) int {
	if required <= 0 {
		return 0
	}
	rate := int(math.Round(100 * float64(assigned) / float64(required)))
	return min(max(rate, 0), 100)
}

// GroupNursesByDepartment counts active nurses per department, largest first.
// Departments with equal counts keep the order in which they were first seen.
func GroupNursesByDepartment(nurses []models.Nurse) []DepartmentCount {
	index := make(map[string]int)
	groups := []DepartmentCount{}
	for _, n := range nurses {
		if !n.IsActive {
			continue
		}
		i, ok := index[n.Department]
		if !ok {
			i = len(groups)
			index[n.Department] = i
			groups = append(groups, DepartmentCount{Department: n.Department})
		}
		groups[i].Count++
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Count > groups[j].Count
	})
	return groups
}

// TopDepartment returns the department with the most active nurses.
func TopDepartment(nurses []models.Nurse) (DepartmentCount, bool) {
	groups := GroupNursesByDepartment(nurses)
	if len(groups) == 0 {
		return DepartmentCount{}, false
	}
	return groups[0], true
}

// AverageExperience is the mean experience of the supplied nurses rounded to one decimal.
func AverageExperience(nurses []models.Nurse) float64 {
	if len(nurses) == 0 {
		return 0
	}
	sum := 0
	for _, n := range nurses {
		sum += max(n.Experience, 0)
	}
	return math.Round(float64(sum)/float64(len(nurses))*10) / 10
}

// OpenDemand sums the unfilled slots across requests.
func OpenDemand(requests []models.StaffingRequest) int {
	total := 0
	for _, r := range requests {
		total += r.Remaining()
	}
	return total
}

// Progress is the assigned percentage of a single request, capped at 100.
func Progress(r models.StaffingRequest) float64 {
	if r.RequiredNurses <= 0 {
		return 0
	}
	return math.Min(100, 100*float64(r.AssignedNurses)/float64(r.RequiredNurses))
}
