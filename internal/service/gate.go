package service

import (
	"context"
	"crypto/subtle"

	"ticketx/internal/models"
	"ticketx/internal/observability"
	"ticketx/internal/repository"
)

// SessionGate decides whether a request may act as a user. Reads need a
// valid session token; state-changing requests additionally need the CSRF
// secret issued with that session.
type SessionGate struct {
	sessions repository.SessionRepository
}

// NewSessionGate creates a new SessionGate.
func NewSessionGate(sessions repository.SessionRepository) *SessionGate {
	return &SessionGate{sessions: sessions}
}

// Authorize resolves the token to its session, or (nil, nil) when the token
// is unknown. The gate fails closed: any doubt reads as logged out.
func (g *SessionGate) Authorize(ctx context.Context, token string) (*models.Session, error) {
	return g.sessions.GetByToken(ctx, token)
}

// VerifyCSRF checks the supplied CSRF value against the secret issued with
// the session. The comparison is constant-time. A missing session, an empty
// supplied value and a mismatch all read as false.
func (g *SessionGate) VerifyCSRF(ctx context.Context, token, supplied string) (bool, error) {
	session, err := g.sessions.GetByToken(ctx, token)
	if err != nil {
		return false, err
	}
	if session == nil || supplied == "" {
		observability.CSRFRejections.Inc()
		return false, nil
	}
	if subtle.ConstantTimeCompare([]byte(session.CSRFSecret), []byte(supplied)) != 1 {
		observability.CSRFRejections.Inc()
		return false, nil
	}
	return true, nil
}
