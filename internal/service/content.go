package service

import (
	"context"

	"ticketx/internal/models"
	"ticketx/internal/observability"
	"ticketx/internal/repository"
)

const (
	maxPostLen    = 280
	maxCommentLen = 200
)

// ContentService manages posts, likes and comments.
type ContentService struct {
	users    repository.UserRepository
	posts    repository.PostRepository
	comments repository.CommentRepository
}

// NewContentService creates a new ContentService.
func NewContentService(users repository.UserRepository, posts repository.PostRepository, comments repository.CommentRepository) *ContentService {
	return &ContentService{users: users, posts: posts, comments: comments}
}

// CreatePost publishes a post for author. A post needs text or an image (or
// both). Hashtags and mentions are extracted from the full text before it
// is clipped to the storage limit, so a tag straddling the cutoff still
// indexes the post.
func (s *ContentService) CreatePost(ctx context.Context, author, text, imageURL string) (*models.Post, error) {
	user, err := s.users.GetByUsername(ctx, author)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", author)
	}
	if text == "" && imageURL == "" {
		return nil, models.NewValidationError("Post needs text or an image")
	}

	hashtags, mentions := ExtractTags(text)
	tags := make([]models.PostTag, 0, len(hashtags)+len(mentions))
	for _, h := range hashtags {
		tags = append(tags, models.PostTag{Kind: models.TagKindHashtag, Value: h})
	}
	for _, m := range mentions {
		tags = append(tags, models.PostTag{Kind: models.TagKindMention, Value: m})
	}

	post := &models.Post{
		UserID:   user.ID,
		Text:     Truncate(text, maxPostLen),
		ImageURL: imageURL,
	}
	if err := s.posts.Create(ctx, post, tags); err != nil {
		return nil, err
	}
	observability.PostsCreated.Inc()

	// Re-read so the caller gets the post with counts, liked flag and tag
	// views populated the same way list queries return them.
	return s.posts.GetByID(ctx, post.ID, user.ID)
}

// GetPost returns one post with counts and, when currentUserID is set, the
// viewer's liked flag.
func (s *ContentService) GetPost(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	return s.posts.GetByID(ctx, id, currentUserID)
}

// ToggleLike flips username's like on the post and returns the resulting
// state: true when the post is now liked, false when the like was removed.
func (s *ContentService) ToggleLike(ctx context.Context, postID uint, username string) (bool, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, models.NewNotFoundError("User", username)
	}
	exists, err := s.posts.Exists(ctx, postID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, models.NewNotFoundError("Post", postID)
	}
	return s.posts.ToggleLike(ctx, user.ID, postID)
}

// AddComment appends a comment to the post. Comment text is required and
// clipped, never rejected, for length.
func (s *ContentService) AddComment(ctx context.Context, postID uint, author, text string) (*models.Comment, error) {
	user, err := s.users.GetByUsername(ctx, author)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", author)
	}
	exists, err := s.posts.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("Post", postID)
	}
	if text == "" {
		return nil, models.NewValidationError("Comment text is required")
	}

	comment := &models.Comment{
		PostID: postID,
		UserID: user.ID,
		Text:   Truncate(text, maxCommentLen),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	comment.User = *user
	return comment, nil
}

// Comments returns the post's comments oldest first.
func (s *ContentService) Comments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	exists, err := s.posts.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("Post", postID)
	}
	return s.comments.ListByPost(ctx, postID)
}
