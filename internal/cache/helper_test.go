package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profile struct {
	Username string `json:"username"`
	Bio      string `json:"bio"`
}

func useMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	prev := GetClient()
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(prev) })
	return mr
}

func TestGetSetJSON_RoundTrip(t *testing.T) {
	mr := useMiniredis(t)
	ctx := context.Background()

	in := profile{Username: "alice", Bio: "hello"}
	require.NoError(t, SetJSON(ctx, UserKey("alice"), in, UserTTL))

	var out profile
	found, err := GetJSON(ctx, UserKey("alice"), &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)

	// TTL is attached to the key.
	assert.Greater(t, mr.TTL(UserKey("alice")), time.Duration(0))

	found, err = GetJSON(ctx, UserKey("nobody"), &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetSetJSON_NilClientIsNoOp(t *testing.T) {
	prev := GetClient()
	SetClient(nil)
	t.Cleanup(func() { SetClient(prev) })
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, "k", profile{Username: "x"}, time.Minute))

	var out profile
	found, err := GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAside_MissFetchesAndStores(t *testing.T) {
	mr := useMiniredis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *profile) func() error {
		return func() error {
			calls++
			*dest = profile{Username: "alice", Bio: "fetched"}
			return nil
		}
	}

	var first profile
	require.NoError(t, Aside(ctx, UserKey("alice"), &first, UserTTL, fetch(&first)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "fetched", first.Bio)
	assert.True(t, mr.Exists(UserKey("alice")))

	// Second read is served from the cache.
	var second profile
	require.NoError(t, Aside(ctx, UserKey("alice"), &second, UserTTL, fetch(&second)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

func TestAside_FetchErrorPropagatesAndSkipsStore(t *testing.T) {
	mr := useMiniredis(t)
	ctx := context.Background()

	boom := errors.New("db down")
	var out profile
	err := Aside(ctx, UserKey("alice"), &out, UserTTL, func() error { return boom })
	require.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists(UserKey("alice")))
}

func TestAside_RedisErrorFallsThroughToFetch(t *testing.T) {
	mr := useMiniredis(t)
	ctx := context.Background()

	// Kill the server so every command errors; reads must still succeed.
	mr.Close()

	var out profile
	err := Aside(ctx, UserKey("alice"), &out, UserTTL, func() error {
		out = profile{Username: "alice"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", out.Username)
}

func TestInvalidate(t *testing.T) {
	mr := useMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, UserKey("alice"), profile{Username: "alice"}, UserTTL))
	require.NoError(t, SetJSON(ctx, GlobalFeedKey, []int{1, 2}, GlobalFeedTTL))

	InvalidateUser(ctx, "alice")
	assert.False(t, mr.Exists(UserKey("alice")))

	InvalidateGlobalFeed(ctx)
	assert.False(t, mr.Exists(GlobalFeedKey))
}
