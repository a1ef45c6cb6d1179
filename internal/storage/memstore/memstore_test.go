package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidar/capstone-api/internal/domain"
)

func TestStore_ReadWrite(t *testing.T) {
	store := New()
	ctx := context.Background()

	groups := []*domain.Group{{ID: "g1", Members: []string{"u1"}}}
	require.NoError(t, store.Write(ctx, "groups", groups))

	// Изменение исходного среза не влияет на сохраненные данные
	groups[0].Members[0] = "changed"

	var out []*domain.Group
	require.NoError(t, store.Read(ctx, "groups", &out))
	require.Len(t, out, 1)
	assert.Equal(t, []string{"u1"}, out[0].Members)
	assert.Equal(t, 1, store.Writes())
}

func TestStore_FailWrites(t *testing.T) {
	store := New()
	ctx := context.Background()
	store.SetFailWrites(true)

	err := store.Write(ctx, "groups", []string{})

	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Equal(t, 0, store.Writes())

	var out []string
	require.NoError(t, store.Read(ctx, "groups", &out))
	assert.Nil(t, out)
}
