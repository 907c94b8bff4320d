package service

import (
	"context"
	"testing"
	"time"

	"ticketx/internal/models"
	"ticketx/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFeedService(users *userRepoStub, follows *followRepoStub, posts *postRepoStub) *FeedService {
	return NewFeedService(users, follows, posts, DefaultFeedOptions())
}

func TestFeedService_Score(t *testing.T) {
	t.Parallel()
	svc := newTestFeedService(noopUserRepo(), noopFollowRepo(), noopPostRepo())

	t.Run("weights", func(t *testing.T) {
		t.Parallel()
		// At one hour: (likes*3 + comments*2 + 1) / 1^0.7.
		assert.InDelta(t, 1.0, svc.Score(0, 0, time.Hour), 1e-9)
		assert.InDelta(t, 4.0, svc.Score(1, 0, time.Hour), 1e-9)
		assert.InDelta(t, 3.0, svc.Score(0, 1, time.Hour), 1e-9)
		assert.InDelta(t, 18.0, svc.Score(3, 4, time.Hour), 1e-9)
	})

	t.Run("age floors at one hour", func(t *testing.T) {
		t.Parallel()
		fresh := svc.Score(2, 2, 0)
		atFloor := svc.Score(2, 2, time.Hour)
		assert.InDelta(t, atFloor, fresh, 1e-9)
	})

	t.Run("score decays monotonically with age", func(t *testing.T) {
		t.Parallel()
		prev := svc.Score(5, 5, time.Hour)
		for hours := 2; hours <= 96; hours *= 2 {
			cur := svc.Score(5, 5, time.Duration(hours)*time.Hour)
			assert.Less(t, cur, prev, "score at %dh should be below the previous step", hours)
			prev = cur
		}
	})

	t.Run("more engagement never scores lower at equal age", func(t *testing.T) {
		t.Parallel()
		age := 6 * time.Hour
		assert.Greater(t, svc.Score(10, 0, age), svc.Score(9, 0, age))
		assert.Greater(t, svc.Score(0, 10, age), svc.Score(0, 9, age))
	})
}

func TestPaginate(t *testing.T) {
	t.Parallel()

	items := make([]int, 0, 25)
	for i := 1; i <= 25; i++ {
		items = append(items, i)
	}

	t.Run("first page", func(t *testing.T) {
		t.Parallel()
		page, n, total := Paginate(items, 1, 10)
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, page)
		assert.Equal(t, 1, n)
		assert.Equal(t, 3, total)
	})

	t.Run("last partial page", func(t *testing.T) {
		t.Parallel()
		page, n, total := Paginate(items, 3, 10)
		assert.Equal(t, []int{21, 22, 23, 24, 25}, page)
		assert.Equal(t, 3, n)
		assert.Equal(t, 3, total)
	})

	t.Run("page beyond range clamps to last", func(t *testing.T) {
		t.Parallel()
		page, n, _ := Paginate(items, 99, 10)
		assert.Equal(t, []int{21, 22, 23, 24, 25}, page)
		assert.Equal(t, 3, n)
	})

	t.Run("page below range clamps to first", func(t *testing.T) {
		t.Parallel()
		page, n, _ := Paginate(items, 0, 10)
		assert.Equal(t, 10, len(page))
		assert.Equal(t, 1, n)

		page, n, _ = Paginate(items, -5, 10)
		assert.Equal(t, 10, len(page))
		assert.Equal(t, 1, n)
	})

	t.Run("empty input still reports one page", func(t *testing.T) {
		t.Parallel()
		page, n, total := Paginate([]int{}, 5, 10)
		assert.Empty(t, page)
		assert.Equal(t, 1, n)
		assert.Equal(t, 1, total)
	})
}

func TestFeedService_FollowingFeed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	alice := &models.User{ID: 1, Username: "alice"}

	t.Run("unknown user gets empty feed", func(t *testing.T) {
		t.Parallel()
		svc := newTestFeedService(noopUserRepo(), noopFollowRepo(), noopPostRepo())
		posts, err := svc.FollowingFeed(ctx, "ghost")
		require.NoError(t, err)
		assert.NotNil(t, posts)
		assert.Empty(t, posts)
	})

	t.Run("filter includes followees and self", func(t *testing.T) {
		t.Parallel()
		follows := noopFollowRepo()
		follows.followeeIDsFn = func(_ context.Context, _ uint) ([]uint, error) {
			return []uint{2, 3}, nil
		}
		posts := noopPostRepo()
		var gotFilter repository.PostFilter
		var gotViewer uint
		posts.listFn = func(_ context.Context, f repository.PostFilter, viewer uint) ([]*models.Post, error) {
			gotFilter = f
			gotViewer = viewer
			return []*models.Post{}, nil
		}

		svc := newTestFeedService(knownUsersRepo(alice), follows, posts)
		_, err := svc.FollowingFeed(ctx, "alice")
		require.NoError(t, err)
		assert.ElementsMatch(t, []uint{1, 2, 3}, gotFilter.AuthorIDs)
		assert.Equal(t, uint(1), gotViewer)
	})

	t.Run("follows nobody sees only own posts", func(t *testing.T) {
		t.Parallel()
		posts := noopPostRepo()
		var gotFilter repository.PostFilter
		posts.listFn = func(_ context.Context, f repository.PostFilter, _ uint) ([]*models.Post, error) {
			gotFilter = f
			return []*models.Post{}, nil
		}

		svc := newTestFeedService(knownUsersRepo(alice), noopFollowRepo(), posts)
		_, err := svc.FollowingFeed(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, []uint{1}, gotFilter.AuthorIDs)
	})
}

func TestFeedService_TagFeeds(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	posts := noopPostRepo()
	var gotFilter repository.PostFilter
	posts.listFn = func(_ context.Context, f repository.PostFilter, _ uint) ([]*models.Post, error) {
		gotFilter = f
		return []*models.Post{}, nil
	}
	svc := newTestFeedService(noopUserRepo(), noopFollowRepo(), posts)

	_, err := svc.ByHashtag(ctx, "GameDay", 0)
	require.NoError(t, err)
	assert.Equal(t, models.TagKindHashtag, gotFilter.TagKind)
	assert.Equal(t, "gameday", gotFilter.TagValue, "hashtag lookup lower-cases")

	_, err = svc.ByMention(ctx, "Alice", 0)
	require.NoError(t, err)
	assert.Equal(t, models.TagKindMention, gotFilter.TagKind)
	assert.Equal(t, "alice", gotFilter.TagValue, "mention lookup lower-cases")
}

func TestFeedService_Trending(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)

	// Newest-first input, as the repository returns it.
	fresh := &models.Post{ID: 3, CreatedAt: now.Add(-30 * time.Minute)}
	popularOld := &models.Post{ID: 2, CreatedAt: now.Add(-10 * time.Hour), LikesCount: 50, CommentsCount: 20}
	quietOld := &models.Post{ID: 1, CreatedAt: now.Add(-10 * time.Hour)}

	posts := noopPostRepo()
	posts.listFn = func(_ context.Context, _ repository.PostFilter, _ uint) ([]*models.Post, error) {
		return []*models.Post{fresh, popularOld, quietOld}, nil
	}

	svc := newTestFeedService(noopUserRepo(), noopFollowRepo(), posts)
	svc.now = func() time.Time { return now }

	ranked, err := svc.Trending(ctx, 0)
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	// Heavy engagement beats freshness here: (50*3+20*2+1)/10^0.7 ≈ 38
	// versus the fresh post's 1.0 at the one-hour floor.
	assert.Equal(t, uint(2), ranked[0].ID)
	assert.Equal(t, uint(3), ranked[1].ID)
	assert.Equal(t, uint(1), ranked[2].ID)
}

func TestFeedService_Trending_TieBreakKeepsNewestFirst(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)

	// Identical engagement and age: both score the same, so the incoming
	// newest-first order must survive the sort.
	newer := &models.Post{ID: 5, CreatedAt: now.Add(-2 * time.Hour), LikesCount: 1}
	older := &models.Post{ID: 4, CreatedAt: now.Add(-2 * time.Hour), LikesCount: 1}

	posts := noopPostRepo()
	posts.listFn = func(_ context.Context, _ repository.PostFilter, _ uint) ([]*models.Post, error) {
		return []*models.Post{newer, older}, nil
	}

	svc := newTestFeedService(noopUserRepo(), noopFollowRepo(), posts)
	svc.now = func() time.Time { return now }

	ranked, err := svc.Trending(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, uint(5), ranked[0].ID)
	assert.Equal(t, uint(4), ranked[1].ID)
}
