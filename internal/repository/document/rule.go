package document

import (
	"context"

	"github.com/aidar/capstone-api/internal/domain"
	"github.com/aidar/capstone-api/internal/storage"
)

// RuleRepository реализует repository.RuleRepository поверх storage.DocumentStore
type RuleRepository struct {
	store storage.DocumentStore
}

// NewRuleRepository создает новый экземпляр RuleRepository
func NewRuleRepository(store storage.DocumentStore) *RuleRepository {
	return &RuleRepository{store: store}
}

// List возвращает все правила
func (r *RuleRepository) List(ctx context.Context) ([]domain.Rule, error) {
	rules := []domain.Rule{}
	if err := r.store.Read(ctx, storage.CollectionRules, &rules); err != nil {
		return nil, err
	}
	if rules == nil {
		rules = []domain.Rule{}
	}
	return rules, nil
}

// ListActive возвращает активные правила в порядке хранения
func (r *RuleRepository) ListActive(ctx context.Context) ([]domain.Rule, error) {
	rules, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	active := make([]domain.Rule, 0, len(rules))
	for _, rule := range rules {
		if rule.Active() {
			active = append(active, rule)
		}
	}
	return active, nil
}

// ReplaceAll заменяет набор правил
func (r *RuleRepository) ReplaceAll(ctx context.Context, rules []domain.Rule) error {
	if rules == nil {
		rules = []domain.Rule{}
	}
	return r.store.Write(ctx, storage.CollectionRules, rules)
}
