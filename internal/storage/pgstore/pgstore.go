// Package pgstore хранит каждую коллекцию одной jsonb строкой в PostgreSQL.
package pgstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/capstone-api/internal/domain"
)

// Store реализует storage.DocumentStore для PostgreSQL
type Store struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

// New создает новый экземпляр Store
func New(db *pgxpool.Pool, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger}
}

// Read загружает коллекцию. Отсутствующая строка дает пустую коллекцию.
func (s *Store) Read(ctx context.Context, collection string, dst any) error {
	query := `SELECT body FROM collections WHERE name = $1`

	var body []byte
	err := s.db.QueryRow(ctx, query, collection).Scan(&body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn("Collection not found, returning empty collection", "collection", collection)
			return nil
		}
		return fmt.Errorf("read collection %s: %w", collection, err)
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode collection %s: %w", collection, err)
	}
	return nil
}

// Write заменяет коллекцию целиком и увеличивает ее версию
func (s *Store) Write(ctx context.Context, collection string, records any) error {
	body, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", domain.ErrPersistence, collection, err)
	}

	query := `
		INSERT INTO collections (name, body, version, updated_at)
		VALUES ($1, $2::jsonb, 1, NOW())
		ON CONFLICT (name) DO UPDATE
		SET body = EXCLUDED.body,
		    version = collections.version + 1,
		    updated_at = NOW()
	`

	if _, err := s.db.Exec(ctx, query, collection, string(body)); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "42P01" { // undefined_table
			return fmt.Errorf("%w: collections table is missing, apply migrations: %v", domain.ErrPersistence, err)
		}
		s.logger.Error("Failed to write collection", "collection", collection, "error", err)
		return fmt.Errorf("%w: write %s: %v", domain.ErrPersistence, collection, err)
	}

	return nil
}

// Version возвращает текущую версию коллекции (0 если коллекции нет)
func (s *Store) Version(ctx context.Context, collection string) (int64, error) {
	query := `SELECT version FROM collections WHERE name = $1`

	var version int64
	err := s.db.QueryRow(ctx, query, collection).Scan(&version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}

	return version, nil
}
