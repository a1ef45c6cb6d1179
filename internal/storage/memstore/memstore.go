// Package memstore хранит коллекции в памяти процесса.
// Записи копируются через JSON, поэтому вызывающий код не может изменить сохраненное состояние.
package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/aidar/capstone-api/internal/domain"
)

// Store реализует storage.DocumentStore в памяти
type Store struct {
	mu          sync.RWMutex
	collections map[string][]byte
	writes      int
	failWrites  bool
}

// New создает пустой Store
func New() *Store {
	return &Store{collections: make(map[string][]byte)}
}

// Read загружает коллекцию в dst
func (s *Store) Read(ctx context.Context, collection string, dst any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	data, ok := s.collections[collection]
	s.mu.RUnlock()

	if !ok {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s: %w", collection, err)
	}
	return nil
}

// Write заменяет коллекцию целиком
func (s *Store) Write(ctx context.Context, collection string, records any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWrites {
		return fmt.Errorf("%w: write %s: store is read-only", domain.ErrPersistence, collection)
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", domain.ErrPersistence, collection, err)
	}
	s.collections[collection] = data
	s.writes++
	return nil
}

// SetFailWrites переключает режим, в котором Write всегда возвращает ошибку
func (s *Store) SetFailWrites(fail bool) {
	s.mu.Lock()
	s.failWrites = fail
	s.mu.Unlock()
}

// Writes возвращает количество успешных вызовов Write
func (s *Store) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}
