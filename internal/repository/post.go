// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"ticketx/internal/cache"
	"ticketx/internal/models"

	"gorm.io/gorm"
)

// PostFilter narrows a post listing. The zero value selects every post.
// All feed variants (global, following, hashtag, mention) are expressed
// through this one filter rather than separate query paths.
type PostFilter struct {
	// AuthorIDs restricts posts to the given authors when non-nil. A non-nil
	// empty slice matches nothing (a user that follows nobody and does not
	// exist yields an empty feed, not the global one).
	AuthorIDs []uint
	// TagKind/TagValue restrict posts to those carrying the given
	// lower-cased hashtag or mention.
	TagKind  string
	TagValue string
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post, tags []models.PostTag) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	List(ctx context.Context, filter PostFilter, currentUserID uint) ([]*models.Post, error)
	ToggleLike(ctx context.Context, userID, postID uint) (liked bool, err error)
	Exists(ctx context.Context, id uint) (bool, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create persists the post together with its extracted tag rows in one
// transaction so a failed tag write never leaves a half-indexed post.
func (r *postRepository) Create(ctx context.Context, post *models.Post, tags []models.PostTag) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		if len(tags) == 0 {
			return nil
		}
		for i := range tags {
			tags[i].PostID = post.ID
		}
		return tx.Create(&tags).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateGlobalFeed(ctx)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	var post models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	posts := []*models.Post{&post}
	if err := r.enrichTags(ctx, posts); err != nil {
		return nil, err
	}
	return &post, nil
}

// List returns matching posts newest first. Ties on created_at break by id
// descending, which is stable across calls because ids are monotonic.
func (r *postRepository) List(ctx context.Context, filter PostFilter, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post

	q := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User")
	if filter.AuthorIDs != nil {
		q = q.Where("posts.user_id IN ?", filter.AuthorIDs)
	}
	if filter.TagKind != "" {
		q = q.Where(
			"posts.id IN (SELECT post_id FROM post_tags WHERE kind = ? AND value = ?)",
			filter.TagKind, filter.TagValue,
		)
	}

	if err := q.Order("posts.created_at DESC, posts.id DESC").Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.enrichTags(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// applyPostDetails adds subqueries to fetch counts and liked status in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) as comments_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) as liked", currentUserID)
	}

	return db.Select(selectQuery)
}

// enrichTags loads the tag rows for the given posts in one query and splits
// them into the Hashtags/Mentions views.
func (r *postRepository) enrichTags(ctx context.Context, posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(posts))
	byID := make(map[uint]*models.Post, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
		byID[p.ID] = p
		p.Hashtags = []string{}
		p.Mentions = []string{}
	}

	var tags []models.PostTag
	if err := r.db.WithContext(ctx).
		Where("post_id IN ?", ids).
		Order("value").
		Find(&tags).Error; err != nil {
		return models.NewInternalError(err)
	}

	for _, t := range tags {
		p := byID[t.PostID]
		if p == nil {
			continue
		}
		switch t.Kind {
		case models.TagKindHashtag:
			p.Hashtags = append(p.Hashtags, t.Value)
		case models.TagKindMention:
			p.Mentions = append(p.Mentions, t.Value)
		}
	}
	return nil
}

// ToggleLike flips the like membership for (userID, postID) inside a
// transaction so the read-then-write pair cannot interleave with another
// toggle for the same pair. Returns the resulting state.
func (r *postRepository) ToggleLike(ctx context.Context, userID, postID uint) (bool, error) {
	var liked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Like
		err := tx.Where("user_id = ? AND post_id = ?", userID, postID).First(&existing).Error
		switch {
		case err == nil:
			liked = false
			return tx.Delete(&existing).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			liked = true
			return tx.Create(&models.Like{UserID: userID, PostID: postID}).Error
		default:
			return err
		}
	})
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return liked, nil
}

func (r *postRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
