// Package filestore хранит каждую коллекцию в отдельном JSON файле.
package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"sync"

	"github.com/aidar/capstone-api/internal/domain"
)

// Store реализует storage.DocumentStore поверх каталога с JSON файлами
type Store struct {
	dir    string
	logger *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.RWMutex
}

// New создает Store и при необходимости создает каталог данных
func New(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir %s: %w", dir, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		dir:    dir,
		logger: logger,
		locks:  make(map[string]*sync.RWMutex),
	}, nil
}

// Dir возвращает каталог данных
func (s *Store) Dir() string {
	return s.dir
}

// Read загружает коллекцию. Отсутствующий или поврежденный файл дает пустую коллекцию.
func (s *Store) Read(ctx context.Context, collection string, dst any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target := reflect.ValueOf(dst)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		return fmt.Errorf("read %s: destination must be a non-nil pointer", collection)
	}

	lock := s.lock(collection)
	lock.RLock()
	data, err := os.ReadFile(s.path(collection))
	lock.RUnlock()

	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("Collection file not found, returning empty collection", "collection", collection)
			return nil
		}
		s.logger.Error("Failed to read collection file", "collection", collection, "error", err)
		return nil
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	// Декодируем во временное значение, чтобы не оставить dst частично заполненным
	tmp := reflect.New(target.Elem().Type())
	if err := json.Unmarshal(data, tmp.Interface()); err != nil {
		s.logger.Error("Failed to decode collection file", "collection", collection, "error", err)
		return nil
	}
	target.Elem().Set(tmp.Elem())

	return nil
}

// Write атомарно заменяет файл коллекции через временный файл и rename
func (s *Store) Write(ctx context.Context, collection string, records any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", domain.ErrPersistence, collection, err)
	}

	lock := s.lock(collection)
	lock.Lock()
	defer lock.Unlock()

	tmp, err := os.CreateTemp(s.dir, collection+"-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp file for %s: %v", domain.ErrPersistence, collection, err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName) // после успешного rename файла уже нет
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: write %s: %v", domain.ErrPersistence, collection, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: sync %s: %v", domain.ErrPersistence, collection, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", domain.ErrPersistence, collection, err)
	}

	if err := os.Rename(tmpName, s.path(collection)); err != nil {
		s.logger.Error("Failed to replace collection file", "collection", collection, "error", err)
		return fmt.Errorf("%w: replace %s: %v", domain.ErrPersistence, collection, err)
	}

	return nil
}

func (s *Store) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

func (s *Store) lock(collection string) *sync.RWMutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[collection]
	if !ok {
		l = &sync.RWMutex{}
		s.locks[collection] = l
	}
	return l
}
