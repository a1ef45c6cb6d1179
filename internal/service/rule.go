package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/aidar/capstone-api/internal/domain"
	"github.com/aidar/capstone-api/internal/repository"
)

// RuleService manages the composition rule set
type RuleService struct {
	ruleRepo          repository.RuleRepository
	allowedAttributes map[string]struct{}
	logger            *slog.Logger

	newID func() string
}

// NewRuleService creates a new RuleService.
// Rules may only reference attributes from allowedAttributes.
func NewRuleService(ruleRepo repository.RuleRepository, allowedAttributes []string, logger *slog.Logger) *RuleService {
	if logger == nil {
		logger = slog.Default()
	}
	allowed := make(map[string]struct{}, len(allowedAttributes))
	for _, a := range allowedAttributes {
		if a = strings.TrimSpace(a); a != "" {
			allowed[a] = struct{}{}
		}
	}
	return &RuleService{
		ruleRepo:          ruleRepo,
		allowedAttributes: allowed,
		logger:            logger,
		newID:             uuid.NewString,
	}
}

// ListActive returns the active rules in evaluation order
func (s *RuleService) ListActive(ctx context.Context) ([]domain.Rule, error) {
	return s.ruleRepo.ListActive(ctx)
}

// SetRules validates and replaces the whole rule set. New rules are active
// and tagged with batchID.
func (s *RuleService) SetRules(ctx context.Context, batchID string, rules []domain.Rule) ([]domain.Rule, error) {
	batchID = strings.TrimSpace(batchID)

	fields := make(map[string]string)
	if batchID == "" {
		fields["batch_id"] = "batch_id is required"
	}
	for i, rule := range rules {
		for field, msg := range s.validateRule(rule) {
			fields[fmt.Sprintf("rules[%d].%s", i, field)] = msg
		}
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationError("invalid rule set", fields)
	}

	stored := make([]domain.Rule, 0, len(rules))
	for _, rule := range rules {
		active := true
		if rule.IsActive != nil {
			active = *rule.IsActive
		}
		stored = append(stored, domain.Rule{
			ID:             s.newID(),
			BatchID:        batchID,
			UserAttribute:  strings.TrimSpace(rule.UserAttribute),
			AttributeValue: rule.AttributeValue,
			Operator:       rule.Operator,
			Value:          strings.TrimSpace(rule.Value),
			IsActive:       &active,
		})
	}

	if err := s.ruleRepo.ReplaceAll(ctx, stored); err != nil {
		return nil, fmt.Errorf("failed to save rules: %w", err)
	}

	s.logger.Info("Composition rules replaced", "batch_id", batchID, "count", len(stored))
	return stored, nil
}

func (s *RuleService) validateRule(rule domain.Rule) map[string]string {
	errs := make(map[string]string)

	attr := strings.TrimSpace(rule.UserAttribute)
	switch {
	case attr == "":
		errs["user_attribute"] = "user_attribute is required"
	case !s.attributeAllowed(attr):
		errs["user_attribute"] = fmt.Sprintf("attribute %q is not supported", attr)
	}

	if rule.AttributeValue == "" {
		errs["attribute_value"] = "attribute_value is required"
	}

	if !rule.Operator.IsValid() {
		errs["operator"] = "operator must be one of >=, <=, =="
	}

	if n, err := strconv.Atoi(strings.TrimSpace(rule.Value)); err != nil || n < 0 {
		errs["value"] = "value must be a non-negative integer"
	}

	return errs
}

func (s *RuleService) attributeAllowed(attr string) bool {
	// Пустой список разрешает любые атрибуты
	if len(s.allowedAttributes) == 0 {
		return true
	}
	_, ok := s.allowedAttributes[attr]
	return ok
}
