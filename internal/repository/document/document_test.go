package document

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidar/capstone-api/internal/domain"
	"github.com/aidar/capstone-api/internal/storage"
	"github.com/aidar/capstone-api/internal/storage/memstore"
)

func boolPtr(b bool) *bool { return &b }

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(memstore.New())

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, users, "пустая коллекция возвращается как пустой срез")
	assert.Empty(t, users)

	require.NoError(t, repo.Create(ctx, &domain.User{ID: "u1", Email: "Damar@Kampus.com", Role: domain.RoleStudent}))

	t.Run("GetByEmail is case-insensitive", func(t *testing.T) {
		u, err := repo.GetByEmail(ctx, "damar@kampus.com")
		require.NoError(t, err)
		assert.Equal(t, "u1", u.ID)
	})

	t.Run("GetByID not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("Create rejects duplicate email", func(t *testing.T) {
		err := repo.Create(ctx, &domain.User{ID: "u2", Email: "DAMAR@kampus.com"})
		assert.ErrorIs(t, err, domain.ErrEmailExists)
	})
}

func TestGroupRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGroupRepository(memstore.New())

	groups := []*domain.Group{
		{ID: "g1", GroupName: "A", Status: domain.StatusDraft},
		{ID: "g2", GroupName: "B", Status: domain.StatusAccepted, Members: []string{"u1"}},
	}
	require.NoError(t, repo.SaveAll(ctx, groups))

	got, err := repo.GetByID(ctx, "g2")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, got.Members)

	_, err = repo.GetByID(ctx, "g3")
	assert.ErrorIs(t, err, domain.ErrGroupNotFound)
}

func TestRuleRepository_ListActive(t *testing.T) {
	ctx := context.Background()
	repo := NewRuleRepository(memstore.New())

	require.NoError(t, repo.ReplaceAll(ctx, []domain.Rule{
		{ID: "r1", Value: "1"},
		{ID: "r2", Value: "2", IsActive: boolPtr(false)},
		{ID: "r3", Value: "3", IsActive: boolPtr(true)},
	}))

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "r1", active[0].ID)
	assert.Equal(t, "r3", active[1].ID)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestContentRepository(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	require.NoError(t, store.Write(ctx, storage.CollectionDocs, []map[string]any{{"id": "doc-1", "title": "Guide"}}))

	repo := NewContentRepository(store)

	docs, err := repo.ListDocs(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Guide", docs[0]["title"])

	timeline, err := repo.ListTimeline(ctx)
	require.NoError(t, err)
	assert.NotNil(t, timeline)
	assert.Empty(t, timeline)
}

func TestGroupDocRepository_Append(t *testing.T) {
	ctx := context.Background()
	repo := NewGroupDocRepository(memstore.New())

	require.NoError(t, repo.Append(ctx, &domain.GroupDoc{ID: "d1", GroupID: "g1", URL: "https://a"}))
	require.NoError(t, repo.Append(ctx, &domain.GroupDoc{ID: "d2", GroupID: "g1", URL: "https://b"}))

	docs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "d1", docs[0].ID)
	assert.Equal(t, "d2", docs[1].ID)
}
