package service

import (
	"context"
	"testing"

	"ticketx/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSocialGraphService_Follow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	alice := &models.User{ID: 1, Username: "alice"}
	bob := &models.User{ID: 2, Username: "bob"}

	t.Run("self follow rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewSocialGraphService(knownUsersRepo(alice), noopFollowRepo())
		err := svc.Follow(ctx, "alice", "alice")
		assertErrCode(t, err, "VALIDATION_ERROR")
	})

	t.Run("unknown target rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewSocialGraphService(knownUsersRepo(alice), noopFollowRepo())
		err := svc.Follow(ctx, "alice", "ghost")
		assertErrCode(t, err, "NOT_FOUND")
	})

	t.Run("unknown follower rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewSocialGraphService(knownUsersRepo(bob), noopFollowRepo())
		err := svc.Follow(ctx, "ghost", "bob")
		assertErrCode(t, err, "NOT_FOUND")
	})

	t.Run("edge created with resolved ids", func(t *testing.T) {
		t.Parallel()
		follows := noopFollowRepo()
		var gotFollower, gotFollowee uint
		follows.createFn = func(_ context.Context, followerID, followeeID uint) error {
			gotFollower, gotFollowee = followerID, followeeID
			return nil
		}

		svc := NewSocialGraphService(knownUsersRepo(alice, bob), follows)
		require.NoError(t, svc.Follow(ctx, "alice", "bob"))
		assert.Equal(t, uint(1), gotFollower)
		assert.Equal(t, uint(2), gotFollowee)
	})
}

func TestSocialGraphService_Unfollow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	alice := &models.User{ID: 1, Username: "alice"}
	bob := &models.User{ID: 2, Username: "bob"}

	follows := noopFollowRepo()
	deleted := 0
	follows.deleteFn = func(_ context.Context, _, _ uint) error {
		deleted++
		return nil
	}

	svc := NewSocialGraphService(knownUsersRepo(alice, bob), follows)

	// Unfollowing someone not followed is still a success; the repository
	// delete is a no-op.
	require.NoError(t, svc.Unfollow(ctx, "alice", "bob"))
	require.NoError(t, svc.Unfollow(ctx, "alice", "bob"))
	assert.Equal(t, 2, deleted)

	// Self-unfollow also succeeds: the edge cannot exist, so the delete
	// simply removes nothing. Only follow rejects the self pair.
	require.NoError(t, svc.Unfollow(ctx, "alice", "alice"))
	assert.Equal(t, 3, deleted)

	err := svc.Unfollow(ctx, "alice", "ghost")
	assertErrCode(t, err, "NOT_FOUND")
}

func TestSocialGraphService_FollowerViews(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	alice := &models.User{ID: 1, Username: "alice"}
	follows := noopFollowRepo()
	follows.followingUsernamesFn = func(_ context.Context, id uint) ([]string, error) {
		assert.Equal(t, uint(1), id)
		return []string{"bob", "carol"}, nil
	}
	follows.followerUsernamesFn = func(_ context.Context, id uint) ([]string, error) {
		return []string{"dave"}, nil
	}

	svc := NewSocialGraphService(knownUsersRepo(alice), follows)

	following, err := svc.Following(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob", "carol"}, following)

	followers, err := svc.Followers(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"dave"}, followers)

	// Unknown users read as empty sets, not errors.
	following, err = svc.Following(ctx, "ghost")
	require.NoError(t, err)
	assert.Empty(t, following)

	ok, err := svc.IsFollowing(ctx, "ghost", "alice")
	require.NoError(t, err)
	assert.False(t, ok)
}
