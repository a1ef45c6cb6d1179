package service

import (
	"context"
	"sort"

	"github.com/aidar/capstone-api/internal/domain"
	"github.com/aidar/capstone-api/internal/repository"
)

// GroupStats represents counts of groups by status
type GroupStats struct {
	Total    int                        `json:"total"`
	ByStatus map[domain.GroupStatus]int `json:"by_status"`
}

// StudentStats represents how many students are bound to an active group
type StudentStats struct {
	Total      int      `json:"total"`
	Registered int      `json:"registered"`
	Unassigned []string `json:"unassigned"` // IDs of students without an active group
}

// Stats represents combined registration statistics
type Stats struct {
	Groups      GroupStats   `json:"groups"`
	Students    StudentStats `json:"students"`
	ActiveRules int          `json:"active_rules"`
}

// StatsService handles registration statistics queries
type StatsService struct {
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
	ruleRepo  repository.RuleRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	ruleRepo repository.RuleRepository,
) *StatsService {
	return &StatsService{
		groupRepo: groupRepo,
		userRepo:  userRepo,
		ruleRepo:  ruleRepo,
	}
}

// GetStats returns overall registration statistics
func (s *StatsService) GetStats(ctx context.Context) (*Stats, error) {
	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	rules, err := s.ruleRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		Groups: GroupStats{
			Total:    len(groups),
			ByStatus: make(map[domain.GroupStatus]int),
		},
		Students:    StudentStats{Unassigned: []string{}},
		ActiveRules: len(rules),
	}

	bound := make(map[string]struct{})
	for _, g := range groups {
		stats.Groups.ByStatus[g.Status]++
		if !g.IsActive() {
			continue
		}
		for _, m := range g.Members {
			bound[m] = struct{}{}
		}
	}

	for _, u := range users {
		if u.Role != domain.RoleStudent {
			continue
		}
		stats.Students.Total++
		if _, ok := bound[u.ID]; ok {
			stats.Students.Registered++
			continue
		}
		stats.Students.Unassigned = append(stats.Students.Unassigned, u.ID)
	}
	sort.Strings(stats.Students.Unassigned)

	return stats, nil
}
