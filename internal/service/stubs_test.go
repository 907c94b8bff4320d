package service

import (
	"context"

	"ticketx/internal/models"
	"ticketx/internal/repository"
)

// Repository stubs with per-method function fields, so each test overrides
// only what it exercises.

type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	listFn          func(context.Context, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(_ context.Context, _ uint) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		listFn:          func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
	}
}

// knownUsersRepo resolves the given users by username and ID.
func knownUsersRepo(users ...*models.User) *userRepoStub {
	stub := noopUserRepo()
	stub.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		for _, u := range users {
			if u.Username == username {
				return u, nil
			}
		}
		return nil, nil
	}
	stub.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		for _, u := range users {
			if u.ID == id {
				return u, nil
			}
		}
		return nil, models.NewNotFoundError("User", id)
	}
	return stub
}

type sessionRepoStub struct {
	createFn     func(context.Context, *models.Session) error
	getByTokenFn func(context.Context, string) (*models.Session, error)
	deleteFn     func(context.Context, string) error
}

func (s *sessionRepoStub) Create(ctx context.Context, session *models.Session) error {
	return s.createFn(ctx, session)
}
func (s *sessionRepoStub) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	return s.getByTokenFn(ctx, token)
}
func (s *sessionRepoStub) Delete(ctx context.Context, token string) error {
	return s.deleteFn(ctx, token)
}

func noopSessionRepo() *sessionRepoStub {
	return &sessionRepoStub{
		createFn:     func(_ context.Context, _ *models.Session) error { return nil },
		getByTokenFn: func(_ context.Context, _ string) (*models.Session, error) { return nil, nil },
		deleteFn:     func(_ context.Context, _ string) error { return nil },
	}
}

type followRepoStub struct {
	createFn             func(context.Context, uint, uint) error
	deleteFn             func(context.Context, uint, uint) error
	existsFn             func(context.Context, uint, uint) (bool, error)
	followeeIDsFn        func(context.Context, uint) ([]uint, error)
	followingUsernamesFn func(context.Context, uint) ([]string, error)
	followerUsernamesFn  func(context.Context, uint) ([]string, error)
}

func (s *followRepoStub) Create(ctx context.Context, followerID, followeeID uint) error {
	return s.createFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) Delete(ctx context.Context, followerID, followeeID uint) error {
	return s.deleteFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) Exists(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.existsFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) FolloweeIDs(ctx context.Context, followerID uint) ([]uint, error) {
	return s.followeeIDsFn(ctx, followerID)
}
func (s *followRepoStub) FollowingUsernames(ctx context.Context, userID uint) ([]string, error) {
	return s.followingUsernamesFn(ctx, userID)
}
func (s *followRepoStub) FollowerUsernames(ctx context.Context, userID uint) ([]string, error) {
	return s.followerUsernamesFn(ctx, userID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		createFn:             func(_ context.Context, _, _ uint) error { return nil },
		deleteFn:             func(_ context.Context, _, _ uint) error { return nil },
		existsFn:             func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		followeeIDsFn:        func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
		followingUsernamesFn: func(_ context.Context, _ uint) ([]string, error) { return nil, nil },
		followerUsernamesFn:  func(_ context.Context, _ uint) ([]string, error) { return nil, nil },
	}
}

type postRepoStub struct {
	createFn     func(context.Context, *models.Post, []models.PostTag) error
	getByIDFn    func(context.Context, uint, uint) (*models.Post, error)
	listFn       func(context.Context, repository.PostFilter, uint) ([]*models.Post, error)
	toggleLikeFn func(context.Context, uint, uint) (bool, error)
	existsFn     func(context.Context, uint) (bool, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post, tags []models.PostTag) error {
	return s.createFn(ctx, post, tags)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) List(ctx context.Context, filter repository.PostFilter, currentUserID uint) ([]*models.Post, error) {
	return s.listFn(ctx, filter, currentUserID)
}
func (s *postRepoStub) ToggleLike(ctx context.Context, userID, postID uint) (bool, error) {
	return s.toggleLikeFn(ctx, userID, postID)
}
func (s *postRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:  func(_ context.Context, _ *models.Post, _ []models.PostTag) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		listFn: func(_ context.Context, _ repository.PostFilter, _ uint) ([]*models.Post, error) {
			return []*models.Post{}, nil
		},
		toggleLikeFn: func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		existsFn:     func(_ context.Context, _ uint) (bool, error) { return true, nil },
	}
}

type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	listByPostFn func(context.Context, uint) ([]*models.Comment, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		listByPostFn: func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
	}
}
