package service

import (
	"fmt"
	"time"

	"github.com/reelay/cli/pkg/api"
	"github.com/reelay/cli/pkg/client"
	"github.com/reelay/cli/pkg/credentials"
	"github.com/reelay/cli/pkg/formatter"
	"github.com/reelay/cli/pkg/logger"
	"github.com/reelay/cli/pkg/prompter"
)

type AuthService struct{}

// NewAuthService creates a new auth service
func NewAuthService() *AuthService {
	return &AuthService{}
}

// Login handles user login
func (s *AuthService) Login() error {
	creds, err := credentials.Load()
	if err != nil {
		logger.Error("Failed to load credentials", err)
		return err
	}

	if creds != nil && creds.IsValid() {
		formatter.PrintWarning("Already logged in as %s", creds.Username)
		confirm, err := prompter.PromptConfirm("Continue with new login?")
		if err != nil {
			return err
		}
		if !confirm {
			return nil
		}
	}

	email, err := prompter.PromptString("Email: ")
	if err != nil {
		return err
	}
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	password, err := prompter.PromptPassword("Password: ")
	if err != nil {
		return err
	}
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	client.Init()

	formatter.PrintInfo("Authenticating...")
	loginResp, err := api.Login(email, password)
	if err != nil {
		formatter.PrintError("Login failed: %v", err)
		return err
	}

	client.SetAuthToken(loginResp.AccessToken)

	expiresAt := time.Now().Add(time.Duration(loginResp.ExpiresIn) * time.Second)

	creds = &credentials.Credentials{
		AccessToken:  loginResp.AccessToken,
		RefreshToken: loginResp.RefreshToken,
		ExpiresAt:    expiresAt,
		UserID:       loginResp.User.ID,
		Username:     loginResp.User.Username,
		Email:        loginResp.User.Email,
	}

	if err := credentials.Save(creds); err != nil {
		formatter.PrintError("Failed to save credentials: %v", err)
		return err
	}

	formatter.PrintSuccess("✓ Login successful!")
	formatter.PrintInfo("Logged in as %s", formatter.Bold.Sprint(loginResp.User.Username))
	fmt.Printf("\n")
	formatter.PrintKeyValue(map[string]interface{}{
		"Username":     loginResp.User.Username,
		"Email":        loginResp.User.Email,
		"Display Name": loginResp.User.DisplayName,
		"Followers":    loginResp.User.FollowerCount,
		"Following":    loginResp.User.FollowingCount,
		"Videos":       loginResp.User.VideoCount,
	})

	return nil
}

// Logout handles user logout
func (s *AuthService) Logout() error {
	creds, err := credentials.Load()
	if err != nil {
		logger.Error("Failed to load credentials", err)
		return err
	}

	if creds == nil {
		formatter.PrintWarning("Not logged in")
		return nil
	}

	confirm, err := prompter.PromptConfirm("Logout?")
	if err != nil {
		return err
	}
	if !confirm {
		return nil
	}

	// Best-effort server-side invalidation; local credentials are
	// deleted regardless.
	client.Init()
	client.SetAuthToken(creds.AccessToken)
	if err := api.Logout(); err != nil {
		logger.Debug("Server-side logout failed", "error", err)
	}

	if err := credentials.Delete(); err != nil {
		formatter.PrintError("Failed to delete credentials: %v", err)
		return err
	}

	client.ClearAuthToken()

	formatter.PrintSuccess("✓ Logged out successfully")
	return nil
}

// Status shows the current session and account information
func (s *AuthService) Status() error {
	if _, err := s.EnsureAuthenticated(); err != nil {
		return err
	}

	formatter.PrintInfo("Fetching account information...")
	user, err := api.GetCurrentUser()
	if err != nil {
		if api.IsUnauthorized(err) {
			formatter.PrintError("Session expired. Please login again.")
			credentials.Delete()
			return fmt.Errorf("unauthorized")
		}
		formatter.PrintError("Failed to fetch account: %v", err)
		return err
	}

	fmt.Printf("\n")
	formatter.PrintKeyValue(map[string]interface{}{
		"Username":     user.Username,
		"Email":        user.Email,
		"Display Name": user.DisplayName,
		"Bio":          user.Bio,
		"Followers":    user.FollowerCount,
		"Following":    user.FollowingCount,
		"Videos":       user.VideoCount,
		"Private":      user.IsPrivate,
		"Verified":     user.IsVerified,
		"Created":      user.CreatedAt.Format("2006-01-02 15:04:05"),
	})

	return nil
}

// RefreshToken refreshes the access token
func (s *AuthService) RefreshToken() error {
	creds, err := credentials.Load()
	if err != nil {
		return err
	}

	if creds == nil {
		return fmt.Errorf("not logged in")
	}

	client.Init()

	logger.Debug("Refreshing token")
	refreshResp, err := api.Refresh(creds.RefreshToken)
	if err != nil {
		if api.IsUnauthorized(err) {
			credentials.Delete()
			return fmt.Errorf("refresh token expired, please login again")
		}
		return err
	}

	creds.AccessToken = refreshResp.AccessToken
	creds.ExpiresAt = time.Now().Add(time.Duration(refreshResp.ExpiresIn) * time.Second)

	if err := credentials.Save(creds); err != nil {
		return err
	}

	logger.Debug("Token refreshed successfully")
	return nil
}

// EnsureAuthenticated loads stored credentials, refreshing the access
// token if it has expired, and configures the HTTP client with them.
// Returns an error when no valid session exists.
func (s *AuthService) EnsureAuthenticated() (*credentials.Credentials, error) {
	creds, err := credentials.Load()
	if err != nil {
		logger.Error("Failed to load credentials", err)
		return nil, err
	}

	if creds == nil || !creds.IsValid() {
		formatter.PrintError("Not logged in. Please run 'reelay-cli auth login'")
		return nil, fmt.Errorf("not authenticated")
	}

	client.Init()
	client.SetAuthToken(creds.AccessToken)

	if creds.IsExpired() {
		if err := s.RefreshToken(); err != nil {
			formatter.PrintError("Failed to refresh token. Please login again.")
			return nil, err
		}
		creds, err = credentials.Load()
		if err != nil {
			return nil, err
		}
		client.SetAuthToken(creds.AccessToken)
	}

	return creds, nil
}

// CurrentCredentials returns stored credentials without failing when
// the user is anonymous. A nil result means no session.
func (s *AuthService) CurrentCredentials() *credentials.Credentials {
	creds, err := credentials.Load()
	if err != nil || creds == nil || !creds.IsValid() {
		return nil
	}
	return creds
}
