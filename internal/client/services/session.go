package services

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/Breathless11/Tamamla/internal/client/repositories/kv"
	"github.com/Breathless11/Tamamla/internal/client/session"
	"github.com/Breathless11/Tamamla/internal/common"
	"github.com/Breathless11/Tamamla/internal/logging"
	"github.com/Breathless11/Tamamla/internal/timex"
)

const (
	// SessionKey holds the signed marker of the logged-in user.
	SessionKey = "session"
	// SessionSecretKey holds the hex signing secret, created on first login.
	SessionSecretKey = "session_secret"

	secretSize = 32
)

// SessionState remembers which user is logged in across restarts.
type SessionState struct {
	*base
	clock  timex.Clock
	ttl    time.Duration
	logger logging.Logger
}

func (s *SessionState) store() kv.Store {
	return s.rm.Store(s.db)
}

// SetCurrent makes username the active session. An empty username logs out.
func (s *SessionState) SetCurrent(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if username == "" {
		if err := s.store().Delete(ctx, SessionKey); err != nil {
			return storageFailure(ctx, s.logger, "clear session", err)
		}
		return nil
	}

	secret, err := s.secret(ctx)
	if err != nil {
		return storageFailure(ctx, s.logger, "set session", err)
	}
	token, err := session.GenerateToken(username, secret, s.clock.Now(), s.ttl)
	if err != nil {
		return fmt.Errorf("failed to sign session: %w", err)
	}
	if err := s.store().SetString(ctx, SessionKey, token); err != nil {
		return storageFailure(ctx, s.logger, "set session", err)
	}
	return nil
}

// GetCurrent returns the logged-in username. Missing, expired or forged
// markers read as no session.
func (s *SessionState) GetCurrent(ctx context.Context) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok, err := s.store().GetString(ctx, SessionKey)
	if err != nil {
		return "", false, storageFailure(ctx, s.logger, "get session", err)
	}
	if !ok {
		return "", false, nil
	}

	raw, ok, err := s.store().GetString(ctx, SessionSecretKey)
	if err != nil {
		return "", false, storageFailure(ctx, s.logger, "get session", err)
	}
	secret, decErr := hex.DecodeString(raw)
	if !ok || decErr != nil {
		s.logger.Warn(ctx, "session marker present without a usable secret")
		return "", false, nil
	}

	username, err := session.UsernameFromToken(token, secret, s.clock.Now())
	if err != nil {
		s.logger.Info(ctx, "discarding session marker", "error", err)
		return "", false, nil
	}
	return username, true, nil
}

// secret loads the signing secret, creating it on first use.
func (s *SessionState) secret(ctx context.Context) ([]byte, error) {
	raw, ok, err := s.store().GetString(ctx, SessionSecretKey)
	if err != nil {
		return nil, err
	}
	if ok {
		if secret, err := hex.DecodeString(raw); err == nil && len(secret) > 0 {
			return secret, nil
		}
		s.logger.Warn(ctx, "replacing unreadable session secret")
	}

	raw, err = common.MakeRandHexString(secretSize)
	if err != nil {
		return nil, err
	}
	if err := s.store().SetString(ctx, SessionSecretKey, raw); err != nil {
		return nil, err
	}
	return hex.DecodeString(raw)
}
