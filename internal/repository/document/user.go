package document

import (
	"context"
	"strings"
	"sync"

	"github.com/aidar/capstone-api/internal/domain"
	"github.com/aidar/capstone-api/internal/storage"
)

// UserRepository реализует repository.UserRepository поверх storage.DocumentStore
type UserRepository struct {
	store storage.DocumentStore
	mu    sync.Mutex // сериализует Create
}

// NewUserRepository создает новый экземпляр UserRepository
func NewUserRepository(store storage.DocumentStore) *UserRepository {
	return &UserRepository{store: store}
}

// List возвращает всех пользователей
func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	users := []*domain.User{}
	if err := r.store.Read(ctx, storage.CollectionUsers, &users); err != nil {
		return nil, err
	}
	if users == nil { // коллекция сохранена как null
		users = []*domain.User{}
	}
	return users, nil
}

// GetByID получает пользователя по ID
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// GetByEmail получает пользователя по email (без учета регистра)
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// Create добавляет нового пользователя
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.List(ctx)
	if err != nil {
		return err
	}

	for _, u := range users {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrEmailExists
		}
	}

	users = append(users, user)
	return r.store.Write(ctx, storage.CollectionUsers, users)
}
