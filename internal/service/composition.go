package service

import (
	"fmt"
	"strconv"

	"github.com/aidar/capstone-api/internal/domain"
)

// CheckDoubleSubmission reports every candidate that already belongs to a group
// whose status is not rejected. Inputs are not modified.
func CheckDoubleSubmission(memberIDs []string, groups []*domain.Group) error {
	taken := make(map[string]struct{})
	for _, g := range groups {
		if !g.IsActive() {
			continue
		}
		for _, m := range g.Members {
			taken[m] = struct{}{}
		}
	}

	var conflicting []string
	for _, id := range memberIDs {
		if _, ok := taken[id]; ok {
			conflicting = append(conflicting, id)
		}
	}

	if len(conflicting) > 0 {
		return &domain.DoubleSubmissionError{UserIDs: conflicting}
	}
	return nil
}

// ResolveMembers maps member IDs to user records, preserving the order of memberIDs.
// Every unknown ID is reported in a single UnknownMemberError.
func ResolveMembers(memberIDs []string, users []*domain.User) ([]*domain.User, error) {
	byID := make(map[string]*domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	members := make([]*domain.User, 0, len(memberIDs))
	var unknown []string
	for _, id := range memberIDs {
		u, ok := byID[id]
		if !ok {
			unknown = append(unknown, id)
			continue
		}
		members = append(members, u)
	}

	if len(unknown) > 0 {
		return nil, &domain.UnknownMemberError{UserIDs: unknown}
	}
	return members, nil
}

// ValidateComposition resolves the candidate team and checks it against the rules.
// Unknown members fail before any rule is evaluated.
func ValidateComposition(memberIDs []string, users []*domain.User, rules []domain.Rule) error {
	members, err := ResolveMembers(memberIDs, users)
	if err != nil {
		return err
	}
	return EvaluateRules(members, rules)
}

// EvaluateRules checks active rules in order and returns the first violation.
// Inactive rules are skipped; an empty rule set always passes.
func EvaluateRules(members []*domain.User, rules []domain.Rule) error {
	for _, rule := range rules {
		if !rule.Active() {
			continue
		}

		ok, count, err := EvaluateRule(rule, members)
		if err != nil {
			return err
		}
		if !ok {
			return &domain.CompositionViolationError{Rule: rule, ActualCount: count}
		}
	}
	return nil
}

// EvaluateRule counts members whose attribute equals the rule value and compares
// the count using the rule operator.
func EvaluateRule(rule domain.Rule, members []*domain.User) (bool, int, error) {
	required, err := strconv.Atoi(rule.Value)
	if err != nil {
		return false, 0, &domain.MalformedRuleError{
			Rule:   rule,
			Reason: fmt.Sprintf("value %q is not a decimal integer", rule.Value),
		}
	}

	count := CountMatching(rule, members)

	switch rule.Operator {
	case domain.OpGreaterOrEqual:
		return count >= required, count, nil
	case domain.OpLessOrEqual:
		return count <= required, count, nil
	case domain.OpEqual:
		return count == required, count, nil
	default:
		return false, count, &domain.MalformedRuleError{
			Rule:   rule,
			Reason: fmt.Sprintf("unknown operator %q", rule.Operator),
		}
	}
}

// CountMatching returns how many members carry rule.AttributeValue in rule.UserAttribute
func CountMatching(rule domain.Rule, members []*domain.User) int {
	count := 0
	for _, m := range members {
		if v, ok := m.Attribute(rule.UserAttribute); ok && v == rule.AttributeValue {
			count++
		}
	}
	return count
}
