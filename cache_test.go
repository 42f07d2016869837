package readable

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirCache(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "assets")
	cache := NewDirCache(dir)
	ctx := context.Background()

	_, err := cache.Get(ctx, "positive.json")
	assert.ErrorIs(t, err, ErrArtifactNotFound)

	require.NoError(t, cache.Put(ctx, "positive.json", []byte(`{"keywords":["a"]}`)))
	require.NoError(t, cache.Put(ctx, "positive.json", []byte(`{"keywords":["b"]}`)))

	data, err := cache.Get(ctx, "positive.json")
	require.NoError(t, err)
	assert.Equal(t, `{"keywords":["b"]}`, string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")
}

func TestMemoryCacheCopies(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	data := []byte("abc")
	require.NoError(t, cache.Put(ctx, "x", data))
	data[0] = 'z'

	got, err := cache.Get(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
	assert.Equal(t, 1, cache.Puts("x"))
}

func TestRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cache := NewRedisCache(client, "", time.Hour)
	ctx := context.Background()

	_, err := cache.Get(ctx, "negative.json")
	assert.ErrorIs(t, err, ErrArtifactNotFound)

	require.NoError(t, cache.Put(ctx, "negative.json", []byte(`{"keywords":["bad"]}`)))
	assert.True(t, mr.Exists(DefaultRedisPrefix+"negative.json"))
	assert.Equal(t, time.Hour, mr.TTL(DefaultRedisPrefix+"negative.json"))

	data, err := cache.Get(ctx, "negative.json")
	require.NoError(t, err)
	assert.Equal(t, `{"keywords":["bad"]}`, string(data))
}

func TestRedisCacheBacksLexiconStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sources := fstest.MapFS{"positive.txt": {Data: []byte("good\ngreat\n")}}
	cache := NewRedisCache(client, "test:", 0)

	lex, err := NewLexiconStore(sources, cache).Ensure(context.Background(), "positive.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"good", "great"}, lex.Keywords)

	stored, err := mr.Get("test:positive.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"keywords":["good","great"]}`, stored)
}

func TestRedisCacheUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	sources := fstest.MapFS{"positive.txt": {Data: []byte("good\n")}}
	_, err := NewLexiconStore(sources, NewRedisCache(client, "", 0)).Ensure(context.Background(), "positive.txt")
	require.Error(t, err)
	assert.True(t, IsFatal(err))
}
