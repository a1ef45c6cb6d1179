package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidar/capstone-api/internal/domain"
)

func TestRuleService_SetRulesReplacesSet(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, mlRule("1"), mlRule("2"))

	stored, err := env.rules.SetRules(ctx, " BATCH-002 ", []domain.Rule{mlRule(" 3 ")})
	require.NoError(t, err)
	require.Len(t, stored, 1)

	assert.NotEmpty(t, stored[0].ID)
	assert.Equal(t, "BATCH-002", stored[0].BatchID)
	assert.Equal(t, "3", stored[0].Value)
	require.NotNil(t, stored[0].IsActive)
	assert.True(t, *stored[0].IsActive)

	active, err := env.rules.ListActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, stored, active)
}

func TestRuleService_SetRulesKeepsInactiveFlag(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	inactive := mlRule("1")
	inactive.IsActive = boolPtr(false)

	_, err := env.rules.SetRules(ctx, "BATCH-001", []domain.Rule{inactive, mlRule("2")})
	require.NoError(t, err)

	active, err := env.rules.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "2", active[0].Value)
}

func TestRuleService_SetRulesValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		batchID string
		rule    domain.Rule
		field   string
	}{
		{"missing batch", "", mlRule("1"), "batch_id"},
		{"unsupported attribute", "B", domain.Rule{UserAttribute: "password", AttributeValue: "x", Operator: domain.OpEqual, Value: "1"}, "rules[0].user_attribute"},
		{"missing attribute value", "B", domain.Rule{UserAttribute: "learning_path", Operator: domain.OpEqual, Value: "1"}, "rules[0].attribute_value"},
		{"unknown operator", "B", domain.Rule{UserAttribute: "learning_path", AttributeValue: "x", Operator: ">", Value: "1"}, "rules[0].operator"},
		{"non-numeric value", "B", domain.Rule{UserAttribute: "learning_path", AttributeValue: "x", Operator: domain.OpEqual, Value: "two"}, "rules[0].value"},
		{"negative value", "B", domain.Rule{UserAttribute: "learning_path", AttributeValue: "x", Operator: domain.OpEqual, Value: "-1"}, "rules[0].value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, mlRule("1"))

			_, err := env.rules.SetRules(ctx, tt.batchID, []domain.Rule{tt.rule})

			var validationErr *domain.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Contains(t, validationErr.Fields, tt.field)

			active, err := env.rules.ListActive(ctx)
			require.NoError(t, err)
			assert.Len(t, active, 1, "набор правил не меняется при ошибке")
		})
	}
}

func TestRuleService_EmptyAllowListPermitsAnyAttribute(t *testing.T) {
	env := newTestEnv(t)
	svc := NewRuleService(env.rules.ruleRepo, nil, discardLogger())

	_, err := svc.SetRules(context.Background(), "B", []domain.Rule{
		{UserAttribute: "hobby", AttributeValue: "chess", Operator: domain.OpLessOrEqual, Value: "1"},
	})

	assert.NoError(t, err)
}
