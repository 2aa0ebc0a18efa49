package sqlitestore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/pantry/internal/store"
)

var _ store.Store = (*Store)(nil)

func TestStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "pantry.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)

	_, ok, err := s.Get(ctx, "pantryChefUser")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "pantryChefUser", []byte(`{"name":"ada"}`)))
	require.NoError(t, s.Set(ctx, "pantryChefUser", []byte(`{"name":"grace"}`)))

	b, ok, err := s.Get(ctx, "pantryChefUser")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"name":"grace"}`, string(b))

	require.NoError(t, s.Close())

	// values survive a reopen
	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	b, ok, err = s.Get(ctx, "pantryChefUser")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"name":"grace"}`, string(b))

	require.NoError(t, s.Delete(ctx, "pantryChefUser"))
	_, ok, err = s.Get(ctx, "pantryChefUser")
	require.NoError(t, err)
	assert.False(t, ok)
}
