package repository

import (
	"context"

	"github.com/aidar/capstone-api/internal/domain"
)

// UserRepository определяет методы для работы с данными пользователей
type UserRepository interface {
	// List возвращает всех пользователей
	List(ctx context.Context) ([]*domain.User, error)

	// GetByID получает пользователя по ID
	GetByID(ctx context.Context, userID string) (*domain.User, error)

	// GetByEmail получает пользователя по email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Create добавляет нового пользователя, email должен быть уникальным
	Create(ctx context.Context, user *domain.User) error
}

// GroupRepository определяет методы для работы с данными групп
type GroupRepository interface {
	// List возвращает все группы
	List(ctx context.Context) ([]*domain.Group, error)

	// GetByID получает группу по ID
	GetByID(ctx context.Context, groupID string) (*domain.Group, error)

	// SaveAll заменяет всю коллекцию групп одной записью
	SaveAll(ctx context.Context, groups []*domain.Group) error
}

// RuleRepository определяет методы для работы с правилами состава команды
type RuleRepository interface {
	// List возвращает все правила
	List(ctx context.Context) ([]domain.Rule, error)

	// ListActive возвращает активные правила в порядке хранения
	ListActive(ctx context.Context) ([]domain.Rule, error)

	// ReplaceAll заменяет набор правил
	ReplaceAll(ctx context.Context, rules []domain.Rule) error
}

// ContentRepository определяет методы для справочных коллекций
type ContentRepository interface {
	// ListDocs возвращает список доступных документов
	ListDocs(ctx context.Context) ([]domain.Record, error)

	// ListTimeline возвращает таймлайн проекта
	ListTimeline(ctx context.Context) ([]domain.Record, error)

	// ListUseCases возвращает список use cases
	ListUseCases(ctx context.Context) ([]domain.Record, error)
}

// GroupDocRepository определяет методы для документов, загруженных группами
type GroupDocRepository interface {
	// List возвращает все загруженные документы
	List(ctx context.Context) ([]*domain.GroupDoc, error)

	// Append добавляет документ
	Append(ctx context.Context, doc *domain.GroupDoc) error
}
