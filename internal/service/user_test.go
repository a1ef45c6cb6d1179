package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidar/capstone-api/internal/domain"
	"github.com/aidar/capstone-api/internal/storage"
)

func TestUserService_Profile(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	t.Run("attributes override defaults", func(t *testing.T) {
		profile, err := env.users.Profile(ctx, student(damarID))
		require.NoError(t, err)
		assert.Equal(t, "Damar", profile.Name)
		assert.Equal(t, "Universitas Indonesia", profile.University)
		assert.Equal(t, "Batch 1", profile.LearningGroup)
	})

	t.Run("defaults", func(t *testing.T) {
		profile, err := env.users.Profile(ctx, student(tugusID))
		require.NoError(t, err)
		assert.Equal(t, "Universitas Mocking", profile.University)
		assert.Equal(t, domain.RoleStudent, profile.Role)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := env.users.Profile(ctx, student("ghost"))
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestContentService(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	require.NoError(t, env.store.Write(ctx, storage.CollectionTimeline, []map[string]any{{"phase": "Registration"}}))

	timeline, err := env.content.Timeline(ctx)
	require.NoError(t, err)
	require.Len(t, timeline, 1)
	assert.Equal(t, "Registration", timeline[0]["phase"])

	useCases, err := env.content.UseCases(ctx)
	require.NoError(t, err)
	assert.Empty(t, useCases)

	t.Run("upload doc", func(t *testing.T) {
		doc, err := env.content.UploadDoc(ctx, student(damarID), "g1", " https://drive/doc ")
		require.NoError(t, err)
		assert.NotEmpty(t, doc.ID)
		assert.Equal(t, "https://drive/doc", doc.URL)
		assert.Equal(t, damarID, doc.UploadedBy)
	})

	t.Run("upload doc requires fields", func(t *testing.T) {
		_, err := env.content.UploadDoc(ctx, student(damarID), "", "")

		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Fields, "group_id")
		assert.Contains(t, validationErr.Fields, "url")
	})
}
