// Package storage описывает хранилище коллекций JSON документов.
package storage

import "context"

// Имена коллекций совпадают с именами файлов в каталоге данных
const (
	CollectionUsers     = "user"
	CollectionGroups    = "groups"
	CollectionRules     = "rules"
	CollectionDocs      = "docs"
	CollectionTimeline  = "timeline"
	CollectionUseCases  = "use_cases"
	CollectionGroupDocs = "group_docs"
)

// DocumentStore хранит коллекции записей целиком: чтение всей коллекции и замена всей коллекции.
// Транзакций между коллекциями нет.
type DocumentStore interface {
	// Read загружает коллекцию в dst (указатель на срез).
	// Отсутствующая коллекция не является ошибкой: dst остается без изменений.
	Read(ctx context.Context, collection string, dst any) error

	// Write заменяет коллекцию целиком. Ошибки оборачивают domain.ErrPersistence.
	Write(ctx context.Context, collection string, records any) error
}
