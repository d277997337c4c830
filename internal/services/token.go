package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/GregMSThompson/steps-backend/internal/dto"
	"github.com/GregMSThompson/steps-backend/internal/errs"
	"github.com/GregMSThompson/steps-backend/pkg/logger"
)

// DefaultTokenTTL sits under Google's 60 minute access token lifetime.
const DefaultTokenTTL = 50 * time.Minute

type sessionKV interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, keys ...string) error
}

type tokenSealer interface {
	Seal(ctx context.Context, plaintext string) (string, error)
	Open(ctx context.Context, sealed string) (string, error)
}

type tokenService struct {
	kv       sessionKV
	sealer   tokenSealer
	ttl      time.Duration
	clockNow func() time.Time
	newID    func() string
}

func NewTokenService(kv sessionKV, sealer tokenSealer, ttl time.Duration) *tokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &tokenService{
		kv:       kv,
		sealer:   sealer,
		ttl:      ttl,
		clockNow: time.Now,
		newID:    func() string { return uuid.New().String() },
	}
}

// Scope names the storage slot of one client session.
func Scope(uid, sessionID string) string {
	return uid + ":" + sessionID
}

func tokenKey(scope string) string  { return scope + ":token" }
func expiryKey(scope string) string { return scope + ":expiry" }

// Put stores token for scope until now+ttl, replacing any previous token.
// A non-positive ttl uses the service default.
func (s *tokenService) Put(ctx context.Context, scope, token string, ttl time.Duration) (time.Time, error) {
	if ttl <= 0 {
		ttl = s.ttl
	}
	expiresAt := s.clockNow().Add(ttl)

	sealed, err := s.sealer.Seal(ctx, token)
	if err != nil {
		return time.Time{}, err
	}
	if err := s.kv.Set(ctx, tokenKey(scope), sealed, ttl); err != nil {
		return time.Time{}, err
	}
	if err := s.kv.Set(ctx, expiryKey(scope), strconv.FormatInt(expiresAt.UnixMilli(), 10), ttl); err != nil {
		return time.Time{}, err
	}
	return expiresAt, nil
}

// Get returns the stored token while it is unexpired. A missing, expired or
// unreadable entry is cleared and reported as TokenUnavailableError; the
// service never refreshes tokens itself.
func (s *tokenService) Get(ctx context.Context, scope string) (string, error) {
	sealed, err := s.kv.Get(ctx, tokenKey(scope))
	if err != nil {
		return "", s.unavailable(ctx, scope, err)
	}
	rawExpiry, err := s.kv.Get(ctx, expiryKey(scope))
	if err != nil {
		return "", s.unavailable(ctx, scope, err)
	}
	expiry, err := strconv.ParseInt(rawExpiry, 10, 64)
	if err != nil {
		return "", s.unavailable(ctx, scope, nil)
	}
	if !s.clockNow().Before(time.UnixMilli(expiry)) {
		return "", s.unavailable(ctx, scope, nil)
	}
	return s.sealer.Open(ctx, sealed)
}

// Clear removes both keys of scope. Clearing an empty scope is not an error.
func (s *tokenService) Clear(ctx context.Context, scope string) error {
	return s.kv.Delete(ctx, tokenKey(scope), expiryKey(scope))
}

// unavailable clears scope and converts a lookup failure into
// TokenUnavailableError. Backend failures other than not-found are returned
// as they are so they surface as retryable.
func (s *tokenService) unavailable(ctx context.Context, scope string, cause error) error {
	var nf *errs.NotFoundError
	if cause != nil && !errors.As(cause, &nf) {
		return cause
	}
	if err := s.Clear(ctx, scope); err != nil {
		logger.FromContext(ctx).Warn("failed to clear google fit token", "error", err)
	}
	return errs.NewTokenUnavailableError()
}

// StartSession registers the Google access token handed over after sign-in
// under a new session id.
func (s *tokenService) StartSession(ctx context.Context, uid string, req dto.FitSessionRequest) (dto.FitSession, error) {
	if req.AccessToken == "" {
		return dto.FitSession{}, errs.NewValidationError("accessToken is required")
	}

	ttl := s.ttl
	if req.ExpiresIn > 0 {
		if provider := time.Duration(req.ExpiresIn) * time.Second; provider < ttl {
			ttl = provider
		}
	}

	id := s.newID()
	expiresAt, err := s.Put(ctx, Scope(uid, id), req.AccessToken, ttl)
	if err != nil {
		return dto.FitSession{}, err
	}

	logger.FromContext(ctx).Info("google fit session started", "session_id", id, "expires_at", expiresAt)
	return dto.FitSession{SessionID: id, ExpiresAt: expiresAt}, nil
}

func (s *tokenService) EndSession(ctx context.Context, uid, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.Clear(ctx, Scope(uid, sessionID)); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("google fit session ended", "session_id", sessionID)
	return nil
}

// Token returns the access token of a session.
func (s *tokenService) Token(ctx context.Context, uid, sessionID string) (string, error) {
	if sessionID == "" {
		return "", errs.NewTokenUnavailableError()
	}
	return s.Get(ctx, Scope(uid, sessionID))
}
