package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreContract exercises the behavior every backend must share.
func runStoreContract(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, found, err := store.Get(ctx, "persona_missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "persona_money", []byte(`42`)))
	v, found, err := store.Get(ctx, "persona_money")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `42`, string(v))

	// Upsert replaces the whole document.
	require.NoError(t, store.Set(ctx, "persona_money", []byte(`-1000`)))
	v, _, err = store.Get(ctx, "persona_money")
	require.NoError(t, err)
	assert.JSONEq(t, `-1000`, string(v))

	require.NoError(t, store.Set(ctx, "persona_settings", []byte(`{"darkMode":false}`)))
	require.NoError(t, store.Delete(ctx, "persona_money"))
	_, found, err = store.Get(ctx, "persona_money")
	require.NoError(t, err)
	assert.False(t, found)

	// Other keys are untouched.
	v, found, err = store.Get(ctx, "persona_settings")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"darkMode":false}`, string(v))

	require.NoError(t, store.Delete(ctx, "persona_never_written"))

	_, _, err = store.Get(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyKey)
	assert.ErrorIs(t, store.Set(ctx, " ", []byte(`1`)), ErrEmptyKey)
}

func TestMemoryStore_Contract(t *testing.T) {
	runStoreContract(t, NewMemoryStore())
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	in := []byte(`[1,2]`)
	require.NoError(t, store.Set(ctx, "k", in))
	in[1] = '9'

	out, _, err := store.Get(ctx, "k")
	require.NoError(t, err)
	out[1] = '8'

	again, _, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, string(again))
}
