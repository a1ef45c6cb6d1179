package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aidar/capstone-api/internal/domain"
	"github.com/aidar/capstone-api/internal/repository"
)

// ContentService serves reference collections and stores documents uploaded by groups
type ContentService struct {
	contentRepo  repository.ContentRepository
	groupDocRepo repository.GroupDocRepository

	newID func() string
	now   func() time.Time
}

// NewContentService creates a new ContentService
func NewContentService(contentRepo repository.ContentRepository, groupDocRepo repository.GroupDocRepository) *ContentService {
	return &ContentService{
		contentRepo:  contentRepo,
		groupDocRepo: groupDocRepo,
		newID:        uuid.NewString,
		now:          time.Now,
	}
}

// Docs returns the available reference documents
func (s *ContentService) Docs(ctx context.Context) ([]domain.Record, error) {
	return s.contentRepo.ListDocs(ctx)
}

// Timeline returns the project timeline
func (s *ContentService) Timeline(ctx context.Context) ([]domain.Record, error) {
	return s.contentRepo.ListTimeline(ctx)
}

// UseCases returns the project use cases
func (s *ContentService) UseCases(ctx context.Context) ([]domain.Record, error) {
	return s.contentRepo.ListUseCases(ctx)
}

// UploadDoc records a document link submitted for a group
func (s *ContentService) UploadDoc(ctx context.Context, principal domain.Principal, groupID, url string) (*domain.GroupDoc, error) {
	groupID = strings.TrimSpace(groupID)
	url = strings.TrimSpace(url)

	if groupID == "" || url == "" {
		fields := make(map[string]string)
		if groupID == "" {
			fields["group_id"] = "group_id is required"
		}
		if url == "" {
			fields["url"] = "url is required"
		}
		return nil, domain.NewValidationError("group_id and url are required", fields)
	}

	now := s.now().UTC()
	doc := &domain.GroupDoc{
		ID:         s.newID(),
		GroupID:    groupID,
		URL:        url,
		UploadedBy: principal.ID,
		UploadedAt: &now,
	}

	if err := s.groupDocRepo.Append(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to save document: %w", err)
	}

	return doc, nil
}
