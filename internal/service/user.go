package service

import (
	"context"

	"github.com/aidar/capstone-api/internal/domain"
	"github.com/aidar/capstone-api/internal/repository"
)

const (
	defaultUniversity    = "Universitas Mocking"
	defaultLearningGroup = "Batch 1"
)

// UserService handles business logic for users
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// Profile returns the profile of the authenticated user
func (s *UserService) Profile(ctx context.Context, principal domain.Principal) (*domain.Profile, error) {
	user, err := s.userRepo.GetByID(ctx, principal.ID)
	if err != nil {
		return nil, err
	}

	profile := &domain.Profile{
		Name:          user.FullName,
		Email:         user.Email,
		Role:          user.Role,
		University:    defaultUniversity,
		LearningGroup: defaultLearningGroup,
	}
	if v := user.Attributes["university"]; v != "" {
		profile.University = v
	}
	if v := user.Attributes["learning_group"]; v != "" {
		profile.LearningGroup = v
	}

	return profile, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}
