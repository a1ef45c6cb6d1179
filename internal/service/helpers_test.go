package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aidar/capstone-api/internal/domain"
	"github.com/aidar/capstone-api/internal/repository/document"
	"github.com/aidar/capstone-api/internal/storage"
	"github.com/aidar/capstone-api/internal/storage/memstore"
)

const (
	damarID = "f51ddb99-9c0b-4ef8-bb6d-6bb9bd380a16"
	tugusID = "g62eee99-9c0b-4ef8-bb6d-6bb9bd380a17"
	sariID  = "c73fff99-9c0b-4ef8-bb6d-6bb9bd380a18"
	adminID = "a10aa01b-1c2d-4e5f-8a9b-0c1d2e3f4a50"
)

var fixedNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

// testEnv собирает сервисы поверх хранилища в памяти
type testEnv struct {
	store        *memstore.Store
	registration *RegistrationService
	groups       *GroupService
	rules        *RuleService
	auth         *AuthService
	users        *UserService
	content      *ContentService
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedUsers() []*domain.User {
	return []*domain.User{
		{ID: adminID, Email: "dedek@kampus.com", Password: "12345678", FullName: "Dedek Admin", Role: domain.RoleAdmin},
		{ID: damarID, Email: "damar@kampus.com", Password: "12345678", FullName: "Damar", Role: domain.RoleStudent,
			Attributes: map[string]string{"learning_path": "Machine Learning", "university": "Universitas Indonesia"}},
		{ID: tugusID, Email: "tugus@kampus.com", Password: "12345678", FullName: "Tugus", Role: domain.RoleStudent,
			Attributes: map[string]string{"learning_path": "Machine Learning"}},
		{ID: sariID, Email: "sari@kampus.com", Password: "12345678", FullName: "Sari", Role: domain.RoleStudent,
			Attributes: map[string]string{"learning_path": "Front-End Web"}},
	}
}

func mlRule(value string) domain.Rule {
	return domain.Rule{
		UserAttribute:  "learning_path",
		AttributeValue: "Machine Learning",
		Operator:       domain.OpGreaterOrEqual,
		Value:          value,
	}
}

func newTestEnv(t *testing.T, rules ...domain.Rule) *testEnv {
	t.Helper()
	ctx := context.Background()

	store := memstore.New()
	require.NoError(t, store.Write(ctx, storage.CollectionUsers, seedUsers()))
	if rules == nil {
		rules = []domain.Rule{}
	}
	require.NoError(t, store.Write(ctx, storage.CollectionRules, rules))

	userRepo := document.NewUserRepository(store)
	groupRepo := document.NewGroupRepository(store)
	ruleRepo := document.NewRuleRepository(store)
	groupsMu := &sync.Mutex{}
	logger := discardLogger()

	auth := NewAuthService(userRepo, "test-secret", time.Hour)
	auth.bcryptCost = 4

	registration := NewRegistrationService(groupRepo, userRepo, ruleRepo, groupsMu, logger)
	registration.now = func() time.Time { return fixedNow }

	return &testEnv{
		store:        store,
		registration: registration,
		groups:       NewGroupService(groupRepo, userRepo, groupsMu, logger),
		rules:        NewRuleService(ruleRepo, []string{"learning_path", "university"}, logger),
		auth:         auth,
		users:        NewUserService(userRepo),
		content:      NewContentService(document.NewContentRepository(store), document.NewGroupDocRepository(store)),
	}
}

func (e *testEnv) storedGroups(t *testing.T) []*domain.Group {
	t.Helper()
	var groups []*domain.Group
	require.NoError(t, e.store.Read(context.Background(), storage.CollectionGroups, &groups))
	return groups
}

func student(id string) domain.Principal {
	return domain.Principal{ID: id, Role: domain.RoleStudent}
}

func admin() domain.Principal {
	return domain.Principal{ID: adminID, Role: domain.RoleAdmin}
}
