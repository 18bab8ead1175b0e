package cache

import (
	"context"
	"fmt"
	"testing"

	"ft-server/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(capacity int) map[string]Store {
	return map[string]Store{
		"fifo":  NewFIFOStore("test", capacity),
		"redis": NewRedisStore("test", capacity, db.NewMemoryRedisClient(context.Background())),
	}
}

func TestStore_GetSet(t *testing.T) {
	for name, s := range stores(10) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.Get("density-5-14-0-high")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Set("density-5-14-0-high", []byte(`{"points":[]}`)))
			v, ok, err := s.Get("density-5-14-0-high")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `{"points":[]}`, string(v))
		})
	}
}

func TestStore_EvictsOldestAtCapacity(t *testing.T) {
	for name, s := range stores(3) {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 5; i++ {
				require.NoError(t, s.Set(fmt.Sprintf("k%d", i), []byte{byte(i)}))
			}

			n, err := s.Len()
			require.NoError(t, err)
			assert.Equal(t, 3, n)

			for _, gone := range []string{"k0", "k1"} {
				_, ok, _ := s.Get(gone)
				assert.False(t, ok, gone)
			}
			for _, kept := range []string{"k2", "k3", "k4"} {
				_, ok, _ := s.Get(kept)
				assert.True(t, ok, kept)
			}
		})
	}
}

func TestStore_ResetKeepsPosition(t *testing.T) {
	for name, s := range stores(2) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set("a", []byte("1")))
			require.NoError(t, s.Set("b", []byte("2")))
			require.NoError(t, s.Set("a", []byte("3")))
			require.NoError(t, s.Set("c", []byte("4")))

			_, ok, _ := s.Get("a")
			assert.False(t, ok, "a is still the oldest entry")
			v, ok, _ := s.Get("b")
			assert.True(t, ok)
			assert.Equal(t, "2", string(v))
		})
	}
}

func TestStore_Clear(t *testing.T) {
	for name, s := range stores(5) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set("a", []byte("1")))
			require.NoError(t, s.Set("b", []byte("2")))
			require.NoError(t, s.Clear())

			n, err := s.Len()
			require.NoError(t, err)
			assert.Zero(t, n)
			_, ok, _ := s.Get("a")
			assert.False(t, ok)

			require.NoError(t, s.Set("c", []byte("3")))
			n, _ = s.Len()
			assert.Equal(t, 1, n)
		})
	}
}

func TestRedisStore_Namespaces(t *testing.T) {
	client := db.NewMemoryRedisClient(context.Background())
	density := NewRedisStore("density", 5, client)
	traffic := NewRedisStore("traffic", 5, client)

	require.NoError(t, density.Set("5-14", []byte("d")))
	require.NoError(t, traffic.Set("5-14", []byte("t")))
	require.NoError(t, density.Clear())

	_, ok, _ := density.Get("5-14")
	assert.False(t, ok)
	v, ok, _ := traffic.Get("5-14")
	assert.True(t, ok)
	assert.Equal(t, "t", string(v))

	raw, err := client.Get("ft_cache_v1:traffic:5-14")
	require.NoError(t, err)
	assert.Equal(t, "t", raw)
}

func TestFIFOStore_Keys(t *testing.T) {
	s := NewFIFOStore("keys", 0)
	_ = s.Set("x", nil)
	_ = s.Set("y", nil)
	assert.Equal(t, []string{"x", "y"}, s.Keys())
	assert.Equal(t, DEFAULT_CAPACITY, s.capacity)
}

type payload struct {
	Hour int `json:"hour"`
}

func TestJSONHelpers(t *testing.T) {
	s := NewFIFOStore("json", 2)
	require.NoError(t, SetJSON(s, "k", payload{Hour: 14}))

	got, ok, err := GetJSON[payload](s, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 14, got.Hour)

	_, ok, err = GetJSON[payload](s, "missing")
	assert.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("bad", []byte("{")))
	_, _, err = GetJSON[payload](s, "bad")
	assert.Error(t, err)
}
