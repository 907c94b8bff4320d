package service

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"ticketx/internal/cache"
	"ticketx/internal/models"
	"ticketx/internal/observability"
	"ticketx/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// FeedOptions tunes feed ranking. The zero value is unusable; use
// DefaultFeedOptions or fill from config.
type FeedOptions struct {
	LikeWeight    float64
	CommentWeight float64
	Decay         float64
	PageSize      int
}

// DefaultFeedOptions mirrors the config defaults.
func DefaultFeedOptions() FeedOptions {
	return FeedOptions{
		LikeWeight:    3.0,
		CommentWeight: 2.0,
		Decay:         0.7,
		PageSize:      10,
	}
}

// FeedService assembles the feed variants: following, global, hashtag,
// mention and trending. Every variant orders posts newest first except
// trending, which ranks by engagement score.
type FeedService struct {
	users   repository.UserRepository
	follows repository.FollowRepository
	posts   repository.PostRepository
	opts    FeedOptions

	// now is swapped in tests to pin trending scores.
	now func() time.Time
}

// NewFeedService creates a new FeedService.
func NewFeedService(users repository.UserRepository, follows repository.FollowRepository, posts repository.PostRepository, opts FeedOptions) *FeedService {
	return &FeedService{
		users:   users,
		follows: follows,
		posts:   posts,
		opts:    opts,
		now:     time.Now,
	}
}

// PageSize returns the configured page length.
func (s *FeedService) PageSize() int {
	return s.opts.PageSize
}

// FollowingFeed returns posts by the users username follows plus their own,
// newest first. An unknown username gets an empty feed rather than an error.
func (s *FeedService) FollowingFeed(ctx context.Context, username string) ([]*models.Post, error) {
	span, ctx := observability.NewSpan(ctx, "feed.following")
	defer span.End()
	defer observability.ObserveFeedQuery("following", s.now())
	span.AddAttributes(attribute.String("feed.user", username))

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	if user == nil {
		return []*models.Post{}, nil
	}

	authorIDs, err := s.follows.FolloweeIDs(ctx, user.ID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	// Own posts always appear in the following feed.
	authorIDs = append(authorIDs, user.ID)

	posts, err := s.posts.List(ctx, repository.PostFilter{AuthorIDs: authorIDs}, user.ID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	return posts, nil
}

// GlobalFeed returns every post, newest first. The anonymous view is served
// cache-aside; logged-in views carry a per-viewer liked flag and skip the
// cache.
func (s *FeedService) GlobalFeed(ctx context.Context, currentUserID uint) ([]*models.Post, error) {
	span, ctx := observability.NewSpan(ctx, "feed.global")
	defer span.End()
	defer observability.ObserveFeedQuery("global", s.now())

	if currentUserID == 0 {
		var posts []*models.Post
		err := cache.Aside(ctx, cache.GlobalFeedKey, &posts, cache.GlobalFeedTTL, func() error {
			fetched, err := s.posts.List(ctx, repository.PostFilter{}, 0)
			if err != nil {
				return err
			}
			posts = fetched
			return nil
		})
		if err != nil {
			span.SetError(err)
			return nil, err
		}
		return posts, nil
	}

	posts, err := s.posts.List(ctx, repository.PostFilter{}, currentUserID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	return posts, nil
}

// ByHashtag returns posts carrying the hashtag, newest first. Lookup is
// case-insensitive; tags are stored lower-cased.
func (s *FeedService) ByHashtag(ctx context.Context, tag string, currentUserID uint) ([]*models.Post, error) {
	span, ctx := observability.NewSpan(ctx, "feed.hashtag")
	defer span.End()
	defer observability.ObserveFeedQuery("hashtag", s.now())
	span.AddAttributes(attribute.String("feed.tag", tag))

	posts, err := s.posts.List(ctx, repository.PostFilter{
		TagKind:  models.TagKindHashtag,
		TagValue: strings.ToLower(tag),
	}, currentUserID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	return posts, nil
}

// ByMention returns posts mentioning the username, newest first. Lookup is
// case-insensitive and independent of whether the username exists.
func (s *FeedService) ByMention(ctx context.Context, username string, currentUserID uint) ([]*models.Post, error) {
	span, ctx := observability.NewSpan(ctx, "feed.mention")
	defer span.End()
	defer observability.ObserveFeedQuery("mention", s.now())
	span.AddAttributes(attribute.String("feed.mention", username))

	posts, err := s.posts.List(ctx, repository.PostFilter{
		TagKind:  models.TagKindMention,
		TagValue: strings.ToLower(username),
	}, currentUserID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	return posts, nil
}

// Trending returns every post ranked by engagement score, highest first.
// Equal scores fall back to the newest-first ordering.
func (s *FeedService) Trending(ctx context.Context, currentUserID uint) ([]*models.Post, error) {
	span, ctx := observability.NewSpan(ctx, "feed.trending")
	defer span.End()
	defer observability.ObserveFeedQuery("trending", s.now())

	posts, err := s.posts.List(ctx, repository.PostFilter{}, currentUserID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	now := s.now()
	scores := make(map[uint]float64, len(posts))
	for _, p := range posts {
		scores[p.ID] = s.Score(p.LikesCount, p.CommentsCount, now.Sub(p.CreatedAt))
	}
	// The input is already newest first, so a stable sort keeps that
	// ordering among equal scores.
	sort.SliceStable(posts, func(i, j int) bool {
		return scores[posts[i].ID] > scores[posts[j].ID]
	})
	return posts, nil
}

// Score computes the trending score for a post with the given engagement
// and age: (likes*likeWeight + comments*commentWeight + 1) / hours^decay,
// with age floored at one hour so brand-new posts are not divided by ~0.
func (s *FeedService) Score(likes, comments int, age time.Duration) float64 {
	hours := age.Hours()
	if hours < 1 {
		hours = 1
	}
	engagement := float64(likes)*s.opts.LikeWeight + float64(comments)*s.opts.CommentWeight + 1
	return engagement / math.Pow(hours, s.opts.Decay)
}

// Paginate slices items into the requested 1-based page. An out-of-range
// page clamps to the nearest valid one instead of erroring, so the returned
// page number may differ from the requested one. The page count is at least
// 1 even for an empty slice.
func Paginate[T any](items []T, page, pageSize int) (pageItems []T, clampedPage, totalPages int) {
	totalPages = (len(items) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], page, totalPages
}
