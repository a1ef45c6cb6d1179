package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aidar/capstone-api/internal/domain"
	"github.com/aidar/capstone-api/internal/repository"
)

// RegistrationResult is returned for an accepted team registration
type RegistrationResult struct {
	GroupID string             `json:"group_id"`
	Status  domain.GroupStatus `json:"status"`
}

// RegistrationService registers student teams subject to the double-submission
// guard and the active composition rules
type RegistrationService struct {
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
	ruleRepo  repository.RuleRepository
	groupsMu  *sync.Mutex
	logger    *slog.Logger

	newID func() string
	now   func() time.Time
}

// NewRegistrationService creates a new RegistrationService.
// groupsMu must be shared with every other writer of the groups collection.
func NewRegistrationService(
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	ruleRepo repository.RuleRepository,
	groupsMu *sync.Mutex,
	logger *slog.Logger,
) *RegistrationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RegistrationService{
		groupRepo: groupRepo,
		userRepo:  userRepo,
		ruleRepo:  ruleRepo,
		groupsMu:  groupsMu,
		logger:    logger,
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

// RegisterTeam validates the candidate team and persists it as pending_validation.
// Nothing is written unless every check passes.
func (s *RegistrationService) RegisterTeam(
	ctx context.Context,
	principal domain.Principal,
	groupName string,
	memberIDs []string,
) (*RegistrationResult, error) {
	groupName = sanitizeText(groupName)
	if err := validateRegistration(groupName, memberIDs); err != nil {
		return nil, err
	}

	// Read-validate-write must not interleave with another writer of groups
	s.groupsMu.Lock()
	defer s.groupsMu.Unlock()

	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load groups: %w", err)
	}
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	if err := CheckDoubleSubmission(memberIDs, groups); err != nil {
		return nil, err
	}

	members, err := ResolveMembers(memberIDs, users)
	if err != nil {
		return nil, err
	}

	rules, err := s.ruleRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}
	if err := EvaluateRules(members, rules); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	group := &domain.Group{
		ID:             s.newID(),
		GroupName:      groupName,
		Members:        append([]string(nil), memberIDs...),
		CreatorUserRef: principal.ID,
		Status:         domain.StatusPendingValidation,
		CreatedAt:      &now,
	}

	if err := s.groupRepo.SaveAll(ctx, append(groups, group)); err != nil {
		return nil, fmt.Errorf("failed to save groups: %w", err)
	}

	s.logger.Info("Team registered",
		"group_id", group.ID,
		"creator", principal.ID,
		"members", group.Members,
	)

	return &RegistrationResult{GroupID: group.ID, Status: group.Status}, nil
}

func validateRegistration(groupName string, memberIDs []string) error {
	fields := make(map[string]string)
	if groupName == "" {
		fields["group_name"] = "group_name is required"
	}

	if len(memberIDs) == 0 {
		fields["member_ids"] = "member_ids must contain at least one member"
	} else {
		seen := make(map[string]struct{}, len(memberIDs))
		for _, id := range memberIDs {
			if strings.TrimSpace(id) == "" {
				fields["member_ids"] = "member ids must not be blank"
				break
			}
			if _, dup := seen[id]; dup {
				fields["member_ids"] = fmt.Sprintf("duplicate member id %q", id)
				break
			}
			seen[id] = struct{}{}
		}
	}

	if len(fields) > 0 {
		return domain.NewValidationError("group name and member list are required", fields)
	}
	return nil
}
