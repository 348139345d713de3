package redisstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/academy-api/internal/infrastructure/redisstore"
)

func newTestStore(t *testing.T) (*redisstore.StateStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return redisstore.NewStateStore(rdb), mr
}

func TestStateStore_IssueYConsume(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	state, err := store.Issue(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, state)

	ok, err := store.Consume(ctx, state)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStateStore_ConsumeEsDeUnSoloUso(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	state, err := store.Issue(ctx)
	require.NoError(t, err)

	ok, err := store.Consume(ctx, state)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = store.Consume(ctx, state)
	require.NoError(t, err)
	assert.False(t, ok, "el segundo consume del mismo state debe fallar")
}

func TestStateStore_StateDesconocido_NoValida(t *testing.T) {
	store, _ := newTestStore(t)

	ok, err := store.Consume(context.Background(), "state-inventado")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStateStore_StateVacio_NoValida(t *testing.T) {
	store, _ := newTestStore(t)

	ok, err := store.Consume(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStateStore_StateExpirado_NoValida(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	state, err := store.Issue(ctx)
	require.NoError(t, err)

	// La ventana de login es de 10 minutos; pasado el TTL el state muere.
	mr.FastForward(11 * time.Minute)

	ok, err := store.Consume(ctx, state)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStateStore_StatesIndependientes(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	s1, err := store.Issue(ctx)
	require.NoError(t, err)
	s2, err := store.Issue(ctx)
	require.NoError(t, err)
	require.NotEqual(t, s1, s2)

	ok, err := store.Consume(ctx, s1)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = store.Consume(ctx, s2)
	require.NoError(t, err)
	assert.True(t, ok, "consumir un state no invalida los demás")
}
