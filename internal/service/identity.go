package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"ticketx/internal/models"
	"ticketx/internal/observability"
	"ticketx/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

const maxBioLen = 200

// IdentityService manages accounts and the sessions bound to them.
type IdentityService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
}

// NewIdentityService creates a new IdentityService.
func NewIdentityService(users repository.UserRepository, sessions repository.SessionRepository) *IdentityService {
	return &IdentityService{users: users, sessions: sessions}
}

// CreateUser registers a new account. Usernames are unique and
// case-sensitive; passwords are stored as bcrypt hashes. Nothing is
// persisted when registration fails.
func (s *IdentityService) CreateUser(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, models.NewValidationError("Username and password are required")
	}

	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError("User already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: username,
		Password: string(hashed),
	}
	// The unique index backstops the existence check above under
	// concurrent signups for the same name.
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// VerifyLogin checks the given credentials and returns the matching user.
// Unknown usernames and wrong passwords produce the same error so the
// response does not reveal which accounts exist.
func (s *IdentityService) VerifyLogin(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}

// CreateSession mints a new session for the user: an opaque random token
// plus an independent CSRF secret for that client. flow labels the metric
// ("signup" or "login").
func (s *IdentityService) CreateSession(ctx context.Context, user *models.User, flow string) (*models.Session, error) {
	token, err := randomToken()
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	csrf, err := randomToken()
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	session := &models.Session{
		Token:      token,
		UserID:     user.ID,
		CSRFSecret: csrf,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	observability.SessionsCreated.WithLabelValues(flow).Inc()
	return session, nil
}

// ResolveSession returns the session for the token, or (nil, nil) when the
// token is unknown, empty or already destroyed.
func (s *IdentityService) ResolveSession(ctx context.Context, token string) (*models.Session, error) {
	return s.sessions.GetByToken(ctx, token)
}

// DestroySession invalidates the token. Destroying an unknown token is a
// no-op, so logout is idempotent.
func (s *IdentityService) DestroySession(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// UpdateProfile applies the provided profile fields to the user. Nil fields
// are left untouched. Bio is clipped, never rejected, for length.
func (s *IdentityService) UpdateProfile(ctx context.Context, username string, bio, avatar *string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", username)
	}

	if bio != nil {
		user.Bio = Truncate(*bio, maxBioLen)
	}
	if avatar != nil {
		user.Avatar = *avatar
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// randomToken returns 16 bytes of cryptographic randomness hex-encoded,
// a 32-character opaque string.
func randomToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
