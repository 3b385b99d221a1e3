package cachetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stampcard/pkg/cache"
)

func TestMemoryGetSetExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }

	require.NoError(t, m.Set(ctx, "k", map[string]int{"a": 1}, time.Minute))
	var got map[string]int
	require.NoError(t, m.Get(ctx, "k", &got))
	assert.Equal(t, 1, got["a"])
	assert.True(t, m.Exists(ctx, "k"))

	clock = clock.Add(time.Minute)
	assert.ErrorIs(t, m.Get(ctx, "k", &got), cache.ErrCacheMiss)
	assert.Equal(t, 0, m.Len())
}

func TestMemorySetNXAndRelease(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	ok, err := m.SetNX(ctx, "lock", "a", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.SetNX(ctx, "lock", "b", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.ReleaseIfOwner(ctx, "lock", "b"))
	assert.True(t, m.Exists(ctx, "lock"))
	require.NoError(t, m.ReleaseIfOwner(ctx, "lock", "a"))
	assert.False(t, m.Exists(ctx, "lock"))
}

func TestMemoryDeletePatternAndGetOrSet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Set(ctx, "stampcard:draws:history:limit:20", 1, 0))
	require.NoError(t, m.Set(ctx, "stampcard:draws:history:limit:5", 1, 0))
	require.NoError(t, m.Set(ctx, "stampcard:teams:all", 1, 0))

	require.NoError(t, m.DeletePattern(ctx, "stampcard:draws:history:*"))
	assert.Equal(t, 1, m.Len())

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return []string{"CMG"}, nil
	}
	var teams []string
	require.NoError(t, m.GetOrSet(ctx, "t", time.Minute, fetch, &teams))
	require.NoError(t, m.GetOrSet(ctx, "t", time.Minute, fetch, &teams))
	assert.Equal(t, []string{"CMG"}, teams)
	assert.Equal(t, 1, calls)

	boom := errors.New("boom")
	err := m.GetOrSet(ctx, "u", time.Minute, func() (interface{}, error) { return nil, boom }, &teams)
	assert.ErrorIs(t, err, boom)
}
