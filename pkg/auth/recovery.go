package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/reelay/cli/pkg/api"
	"github.com/reelay/cli/pkg/client"
	"github.com/reelay/cli/pkg/credentials"
	"github.com/reelay/cli/pkg/logger"
)

// SessionRecovery handles automatic session recovery
type SessionRecovery struct {
	maxRetries int
	retryDelay time.Duration
}

// NewSessionRecovery creates a new session recovery handler
func NewSessionRecovery() *SessionRecovery {
	return &SessionRecovery{
		maxRetries: 3,
		retryDelay: 2 * time.Second,
	}
}

// RecoverSession attempts to refresh an expired session using the stored
// refresh token.
func (sr *SessionRecovery) RecoverSession() error {
	logger.Debug("Attempting to recover session")

	creds, err := credentials.Load()
	if err != nil {
		return fmt.Errorf("failed to load credentials: %w", err)
	}

	if creds == nil || creds.RefreshToken == "" {
		return fmt.Errorf("no refresh token available - please log in again")
	}

	for attempt := 1; attempt <= sr.maxRetries; attempt++ {
		logger.Debug("Refreshing token", "attempt", attempt)

		refreshResp, err := api.Refresh(creds.RefreshToken)
		if err == nil {
			creds.AccessToken = refreshResp.AccessToken
			creds.ExpiresAt = time.Now().Add(time.Duration(refreshResp.ExpiresIn) * time.Second)
			if err := credentials.Save(creds); err != nil {
				logger.Error("Failed to save updated credentials", "error", err)
			}
			client.SetAuthToken(creds.AccessToken)
			return nil
		}

		// A rejected refresh token will not start working on retry.
		if api.IsUnauthorized(err) {
			break
		}

		if attempt < sr.maxRetries {
			time.Sleep(sr.retryDelay)
		}
	}

	return fmt.Errorf("failed to recover session - please log in again")
}

// IsSessionError checks if an error is a session-related error
func IsSessionError(err error) bool {
	if err == nil {
		return false
	}

	if api.IsUnauthorized(err) {
		return true
	}

	errMsg := err.Error()
	return errMsg == "401" ||
		strings.Contains(errMsg, "unauthorized") ||
		strings.Contains(errMsg, "session expired") ||
		strings.Contains(errMsg, "token expired")
}

// HandleSessionError recovers the session when err is a session error,
// and passes every other error through unchanged.
func (sr *SessionRecovery) HandleSessionError(err error) error {
	if !IsSessionError(err) {
		return err
	}

	logger.Debug("Handling session error with recovery")

	if recoveryErr := sr.RecoverSession(); recoveryErr != nil {
		logger.Error("Session recovery failed", "error", recoveryErr)
		return fmt.Errorf("session expired: %w", recoveryErr)
	}

	return nil
}
