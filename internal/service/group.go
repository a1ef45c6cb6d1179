package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aidar/capstone-api/internal/domain"
	"github.com/aidar/capstone-api/internal/repository"
)

const unknownCreatorName = "Unknown"

// GroupPatch carries optional field updates; empty values are left unchanged
type GroupPatch struct {
	GroupName string
	BatchID   string
	Status    domain.GroupStatus
}

// GroupService handles admin lifecycle operations on groups
type GroupService struct {
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
	groupsMu  *sync.Mutex
	logger    *slog.Logger

	newID func() string
	now   func() time.Time
}

// NewGroupService creates a new GroupService
func NewGroupService(
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	groupsMu *sync.Mutex,
	logger *slog.Logger,
) *GroupService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GroupService{
		groupRepo: groupRepo,
		userRepo:  userRepo,
		groupsMu:  groupsMu,
		logger:    logger,
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

// Create creates an empty draft group owned by the calling admin
func (s *GroupService) Create(ctx context.Context, principal domain.Principal, groupName, batchID string) (*domain.Group, error) {
	groupName = sanitizeText(groupName)
	batchID = sanitizeText(batchID)

	fields := make(map[string]string)
	if groupName == "" {
		fields["group_name"] = "group_name is required"
	}
	if batchID == "" {
		fields["batch_id"] = "batch_id is required"
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationError("some required fields are missing", fields)
	}

	s.groupsMu.Lock()
	defer s.groupsMu.Unlock()

	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load groups: %w", err)
	}

	now := s.now().UTC()
	group := &domain.Group{
		ID:             s.newID(),
		GroupName:      groupName,
		BatchID:        batchID,
		CreatorUserRef: principal.ID,
		Status:         domain.StatusDraft,
		CreatedAt:      &now,
	}

	if err := s.groupRepo.SaveAll(ctx, append(groups, group)); err != nil {
		return nil, fmt.Errorf("failed to save groups: %w", err)
	}

	return group, nil
}

// Update applies non-empty patch fields to the group
func (s *GroupService) Update(ctx context.Context, groupID string, patch GroupPatch) (*domain.Group, error) {
	if patch.Status != "" && !patch.Status.IsValid() {
		return nil, domain.NewValidationError("invalid group status", map[string]string{
			"status": fmt.Sprintf("status %q is not supported", patch.Status),
		})
	}

	return s.mutate(ctx, groupID, func(g *domain.Group) error {
		if name := sanitizeText(patch.GroupName); name != "" {
			g.GroupName = name
		}
		if batch := sanitizeText(patch.BatchID); batch != "" {
			g.BatchID = batch
		}
		if patch.Status != "" {
			g.Status = patch.Status
		}
		return nil
	})
}

// StartProject moves the group into in_progress
func (s *GroupService) StartProject(ctx context.Context, groupID string) (*domain.Group, error) {
	return s.mutate(ctx, groupID, func(g *domain.Group) error {
		g.Status = domain.StatusInProgress
		return nil
	})
}

// Validate records the admin decision on a registered team: accepted or rejected.
// Rejection releases the members for another registration.
func (s *GroupService) Validate(ctx context.Context, groupID string, status domain.GroupStatus) (*domain.Group, error) {
	if status != domain.StatusAccepted && status != domain.StatusRejected {
		return nil, domain.NewValidationError("invalid validation status", map[string]string{
			"status": "status must be 'accepted' or 'rejected'",
		})
	}

	group, err := s.mutate(ctx, groupID, func(g *domain.Group) error {
		g.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Group validated", "group_id", group.ID, "status", group.Status)
	return group, nil
}

// List returns every group with the creator's name resolved
func (s *GroupService) List(ctx context.Context) ([]*domain.GroupSummary, error) {
	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.FullName
	}

	summaries := make([]*domain.GroupSummary, 0, len(groups))
	for _, g := range groups {
		creator, ok := names[g.CreatorUserRef]
		if !ok {
			creator = unknownCreatorName
		}
		members := g.Members
		if members == nil {
			members = []string{}
		}
		summaries = append(summaries, &domain.GroupSummary{
			ID:          g.ID,
			GroupName:   g.GroupName,
			BatchID:     g.BatchID,
			Status:      g.Status,
			Members:     members,
			CreatorName: creator,
			CreatedAt:   g.CreatedAt,
		})
	}

	return summaries, nil
}

// GetByID retrieves a group by ID
func (s *GroupService) GetByID(ctx context.Context, groupID string) (*domain.Group, error) {
	return s.groupRepo.GetByID(ctx, groupID)
}

// mutate runs fn on the stored group under the groups lock and persists the collection.
// A rejected group with members cannot become active again while any of them
// is bound to another active group.
func (s *GroupService) mutate(ctx context.Context, groupID string, fn func(g *domain.Group) error) (*domain.Group, error) {
	s.groupsMu.Lock()
	defer s.groupsMu.Unlock()

	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load groups: %w", err)
	}

	idx := -1
	for i, g := range groups {
		if g.ID == groupID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, domain.ErrGroupNotFound
	}

	group := groups[idx]
	wasActive := group.IsActive()

	if err := fn(group); err != nil {
		return nil, err
	}

	if !wasActive && group.IsActive() && len(group.Members) > 0 {
		others := make([]*domain.Group, 0, len(groups)-1)
		others = append(others, groups[:idx]...)
		others = append(others, groups[idx+1:]...)
		if err := CheckDoubleSubmission(group.Members, others); err != nil {
			return nil, err
		}
	}

	now := s.now().UTC()
	group.UpdatedAt = &now

	if err := s.groupRepo.SaveAll(ctx, groups); err != nil {
		return nil, fmt.Errorf("failed to save groups: %w", err)
	}

	return group, nil
}
