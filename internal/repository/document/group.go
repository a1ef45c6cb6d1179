package document

import (
	"context"

	"github.com/aidar/capstone-api/internal/domain"
	"github.com/aidar/capstone-api/internal/storage"
)

// GroupRepository реализует repository.GroupRepository поверх storage.DocumentStore.
// Сериализация read-modify-write лежит на вызывающем сервисе.
type GroupRepository struct {
	store storage.DocumentStore
}

// NewGroupRepository создает новый экземпляр GroupRepository
func NewGroupRepository(store storage.DocumentStore) *GroupRepository {
	return &GroupRepository{store: store}
}

// List возвращает все группы
func (r *GroupRepository) List(ctx context.Context) ([]*domain.Group, error) {
	groups := []*domain.Group{}
	if err := r.store.Read(ctx, storage.CollectionGroups, &groups); err != nil {
		return nil, err
	}
	if groups == nil {
		groups = []*domain.Group{}
	}
	return groups, nil
}

// GetByID получает группу по ID
func (r *GroupRepository) GetByID(ctx context.Context, groupID string) (*domain.Group, error) {
	groups, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, g := range groups {
		if g.ID == groupID {
			return g, nil
		}
	}
	return nil, domain.ErrGroupNotFound
}

// SaveAll заменяет всю коллекцию групп
func (r *GroupRepository) SaveAll(ctx context.Context, groups []*domain.Group) error {
	return r.store.Write(ctx, storage.CollectionGroups, groups)
}
