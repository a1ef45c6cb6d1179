package document

import (
	"context"
	"sync"

	"github.com/aidar/capstone-api/internal/domain"
	"github.com/aidar/capstone-api/internal/storage"
)

// ContentRepository реализует repository.ContentRepository поверх storage.DocumentStore
type ContentRepository struct {
	store storage.DocumentStore
}

// NewContentRepository создает новый экземпляр ContentRepository
func NewContentRepository(store storage.DocumentStore) *ContentRepository {
	return &ContentRepository{store: store}
}

// ListDocs возвращает список доступных документов
func (r *ContentRepository) ListDocs(ctx context.Context) ([]domain.Record, error) {
	return r.list(ctx, storage.CollectionDocs)
}

// ListTimeline возвращает таймлайн проекта
func (r *ContentRepository) ListTimeline(ctx context.Context) ([]domain.Record, error) {
	return r.list(ctx, storage.CollectionTimeline)
}

// ListUseCases возвращает список use cases
func (r *ContentRepository) ListUseCases(ctx context.Context) ([]domain.Record, error) {
	return r.list(ctx, storage.CollectionUseCases)
}

func (r *ContentRepository) list(ctx context.Context, collection string) ([]domain.Record, error) {
	records := []domain.Record{}
	if err := r.store.Read(ctx, collection, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []domain.Record{}
	}
	return records, nil
}

// GroupDocRepository реализует repository.GroupDocRepository поверх storage.DocumentStore
type GroupDocRepository struct {
	store storage.DocumentStore
	mu    sync.Mutex
}

// NewGroupDocRepository создает новый экземпляр GroupDocRepository
func NewGroupDocRepository(store storage.DocumentStore) *GroupDocRepository {
	return &GroupDocRepository{store: store}
}

// List возвращает все загруженные документы
func (r *GroupDocRepository) List(ctx context.Context) ([]*domain.GroupDoc, error) {
	docs := []*domain.GroupDoc{}
	if err := r.store.Read(ctx, storage.CollectionGroupDocs, &docs); err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []*domain.GroupDoc{}
	}
	return docs, nil
}

// Append добавляет документ в коллекцию
func (r *GroupDocRepository) Append(ctx context.Context, doc *domain.GroupDoc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	docs, err := r.List(ctx)
	if err != nil {
		return err
	}

	docs = append(docs, doc)
	return r.store.Write(ctx, storage.CollectionGroupDocs, docs)
}
