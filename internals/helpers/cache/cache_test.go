package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *Redis {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return NewRedis(client)
}

func stores(t *testing.T) map[string]Store {
	return map[string]Store{
		"memory": NewMemory(),
		"redis":  setupTestRedis(t),
	}
}

func TestTagFormats(t *testing.T) {
	assert.Equal(t, "global:planning", GlobalTag(TagPlanning))
	assert.Equal(t, "user:u1-user", UserTag("u1", TagUser))
	assert.Equal(t, "id:c1-calendar", IDTag("c1", TagCalendar))

	assert.Equal(t, []string{"global:site"}, Revalidation{Tag: TagSite}.Tags())
	assert.Equal(t,
		[]string{"global:user", "user:u1-user", "id:u1-user"},
		Revalidation{Tag: TagUser, UserID: "u1", ID: "u1"}.Tags())
}

func TestRevalidateDropsOnlyTaggedEntries(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set(ctx, "a", []byte("1"), []string{GlobalTag(TagSite), AllTag}, time.Minute))
			require.NoError(t, s.Set(ctx, "b", []byte("2"), []string{IDTag("x", TagUser), AllTag}, time.Minute))

			Revalidate(ctx, s, Revalidation{Tag: TagSite})

			_, ok, err := s.Get(ctx, "a")
			require.NoError(t, err)
			assert.False(t, ok)
			v, ok, err := s.Get(ctx, "b")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, []byte("2"), v)

			Revalidate(ctx, s, Revalidation{Tag: TagUser, ID: "x"})
			_, ok, _ = s.Get(ctx, "b")
			assert.False(t, ok)
		})
	}
}

func TestClearRemovesEverything(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for _, k := range []string{"a", "b", "c"} {
				require.NoError(t, s.Set(ctx, k, []byte(k), []string{GlobalTag(k), AllTag}, time.Minute))
			}
			require.NoError(t, s.Clear(ctx))
			for _, k := range []string{"a", "b", "c"} {
				_, ok, err := s.Get(ctx, k)
				require.NoError(t, err)
				assert.False(t, ok, k)
			}
		})
	}
}

func TestRememberComputesOnce(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			calls := 0
			fn := func() ([]string, error) {
				calls++
				return []string{"x", "y"}, nil
			}
			tags := []string{GlobalTag(TagPricing)}

			v, err := Remember(ctx, s, "pricing:all", tags, fn)
			require.NoError(t, err)
			assert.Equal(t, []string{"x", "y"}, v)

			v, err = Remember(ctx, s, "pricing:all", tags, fn)
			require.NoError(t, err)
			assert.Equal(t, []string{"x", "y"}, v)
			assert.Equal(t, 1, calls)

			// "*" is added to every entry
			require.NoError(t, s.Clear(ctx))
			_, _ = Remember(ctx, s, "pricing:all", tags, fn)
			assert.Equal(t, 2, calls)
		})
	}
}

func TestRememberDoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	boom := errors.New("boom")
	_, err := Remember(ctx, s, "k", nil, func() (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, s.Len())
}

func TestNoopAndNilStore(t *testing.T) {
	ctx := context.Background()
	calls := 0
	fn := func() (int, error) { calls++; return 7, nil }
	for _, s := range []Store{Noop{}, nil} {
		v, err := Remember(ctx, s, "k", nil, fn)
		require.NoError(t, err)
		assert.Equal(t, 7, v)
	}
	assert.Equal(t, 2, calls)
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	require.NoError(t, m.Set(ctx, "k", []byte("v"), []string{AllTag}, time.Minute))
	now = now.Add(2 * time.Minute)
	_, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}
